package editor

import "github.com/MrWong99/respeak/internal/engine"

// Document is the current editing surface: a text and its token view. It is
// immutable; every edit produces a fresh Document from the reassembled text.
type Document struct {
	text   string
	tokens []engine.Token
}

// NewDocument tokenizes text into a Document.
func NewDocument(text string) Document {
	return Document{text: text, tokens: engine.Tokenize(text)}
}

// Text returns the document text.
func (d Document) Text() string { return d.text }

// Tokens returns a copy of the document's token list, whitespace runs
// included, for rendering layers that highlight per word.
func (d Document) Tokens() []engine.Token {
	out := make([]engine.Token, len(d.tokens))
	copy(out, d.tokens)
	return out
}

// Vocabulary returns the document's distinct words in first-seen order,
// original casing preserved. Used as the candidate set for phonetic
// correction of spoken content.
func (d Document) Vocabulary() []string {
	seen := make(map[string]struct{}, len(d.tokens)/2)
	var words []string
	for _, t := range d.tokens {
		if t.IsWhitespace {
			continue
		}
		if _, ok := seen[t.Text]; ok {
			continue
		}
		seen[t.Text] = struct{}{}
		words = append(words, t.Text)
	}
	return words
}
