// Package engine implements the context-aware word replacement pipeline at
// the core of Respeak.
//
// Given a sentence, a selected word, and freshly spoken replacement content,
// the engine decides whether to substitute just that word or to rewrite a
// small surrounding phrase so the sentence stays grammatically coherent —
// replacing "Monday" with "tomorrow" must also drop the now-redundant
// preposition "on". The pipeline has five stages:
//
//  1. Tokenize: split text into word and whitespace runs, preserving the
//     original spacing exactly.
//  2. Classify: assign each word a coarse [WordType] via fixed pattern
//     tables (no parsing, no statistics).
//  3. [ResolvePhrase]: walk outward from the target to collect the handful
//     of neighbours that form its local phrase.
//  4. [ApplyRules]: type-pair-specific grammar repair — which neighbours to
//     blank or rewrite, and how to trim the replacement content itself.
//  5. [Reassemble]: drop blanked tokens, merge whitespace, and join the
//     result back into a string with no doubled spaces.
//
// The rule set is intentionally narrow: it encodes the minimal repair needed
// for the common deictic, temporal, and locative substitutions spoken
// editing produces. It was tuned example by example and must not be
// generalised into a grammar.
//
// All functions in this package are pure; the engine holds no state and is
// safe for concurrent use.
package engine

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token is an atomic slice of document text: either a run of non-whitespace
// characters (a word) or a run of whitespace. Tokens are immutable once
// created; edits produce a fresh token list from the reassembled string.
type Token struct {
	// Text is the exact substring, whitespace included.
	Text string

	// IsWhitespace reports whether this token is a whitespace run.
	IsWhitespace bool

	// OriginalIndex is the token's position in the list it was created in.
	OriginalIndex int
}

// Tokenize splits text into an ordered token list, alternating between word
// runs and whitespace runs. Every whitespace run is preserved verbatim, so
// multi-space gaps survive tokenization (the reassembler only normalises
// whitespace adjacent to an edit). The concatenation of all token texts
// always reproduces text exactly. An empty input yields an empty list.
func Tokenize(text string) []Token {
	if text == "" {
		return nil
	}

	var tokens []Token
	runStart := 0
	first, _ := utf8.DecodeRuneInString(text)
	runIsSpace := unicode.IsSpace(first)

	flush := func(end int) {
		tokens = append(tokens, Token{
			Text:          text[runStart:end],
			IsWhitespace:  runIsSpace,
			OriginalIndex: len(tokens),
		})
	}

	for i, r := range text {
		isSpace := unicode.IsSpace(r)
		if isSpace == runIsSpace {
			continue
		}
		flush(i)
		runStart = i
		runIsSpace = isSpace
	}
	flush(len(text))

	return tokens
}

// Words returns the non-whitespace tokens of the list, in order. The
// returned tokens keep their OriginalIndex into the full list.
func Words(tokens []Token) []Token {
	words := make([]Token, 0, (len(tokens)+1)/2)
	for _, t := range tokens {
		if !t.IsWhitespace {
			words = append(words, t)
		}
	}
	return words
}

// Concat joins the token texts back together without any normalisation.
// For a freshly tokenized list this is the inverse of [Tokenize].
func Concat(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Text)
	}
	return b.String()
}
