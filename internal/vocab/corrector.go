// Package vocab corrects misheard spoken content against the words already
// in the document before an edit is dispatched.
//
// Speech recognizers routinely mangle names and uncommon nouns ("studdio"
// for "Studio") while the intended word usually sits in the sentence being
// edited. The corrector runs two stages per content word:
//
//  1. Phonetic candidate filtering: Double Metaphone codes of the word and
//     each vocabulary entry; any shared code makes the entry a candidate.
//  2. Jaro-Winkler ranking: the candidate with the highest similarity wins,
//     provided it clears the phonetic threshold. Without any phonetic
//     candidate, a pure-similarity pass applies the stricter fuzzy
//     threshold.
//
// Words that classify as anything but Other are never touched, so the
// replacement keywords the rule engine dispatches on ("tomorrow", "online",
// weekday names, clock times) always survive verbatim.
package vocab

import (
	"strings"

	"github.com/antzucaro/matchr"

	"github.com/MrWong99/respeak/internal/engine"
)

const (
	defaultPhoneticThreshold = 0.70
	defaultFuzzyThreshold    = 0.85
	defaultMinWordLen        = 3
)

// Option is a functional option for configuring a [Corrector].
type Option func(*Corrector)

// WithPhoneticThreshold sets the minimum Jaro-Winkler score required for a
// phonetically-matched vocabulary word to be accepted. Default: 0.70.
func WithPhoneticThreshold(threshold float64) Option {
	return func(c *Corrector) {
		c.phoneticThreshold = threshold
	}
}

// WithFuzzyThreshold sets the minimum Jaro-Winkler score required when no
// phonetic match is found and the corrector falls back to pure string
// similarity. Default: 0.85.
func WithFuzzyThreshold(threshold float64) Option {
	return func(c *Corrector) {
		c.fuzzyThreshold = threshold
	}
}

// WithMinWordLen sets the minimum length for a word to be considered on
// either side of a correction. Default: 3.
func WithMinWordLen(n int) Option {
	return func(c *Corrector) {
		if n > 0 {
			c.minWordLen = n
		}
	}
}

// Corrector rewrites spoken content words to their closest phonetic match
// in a document vocabulary.
// All methods are safe for concurrent use — the Corrector is read-only
// after construction.
type Corrector struct {
	phoneticThreshold float64
	fuzzyThreshold    float64
	minWordLen        int
}

// New returns a Corrector configured with the supplied options.
func New(opts ...Option) *Corrector {
	c := &Corrector{
		phoneticThreshold: defaultPhoneticThreshold,
		fuzzyThreshold:    defaultFuzzyThreshold,
		minWordLen:        defaultMinWordLen,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Correct rewrites each eligible word of content to its best vocabulary
// match and reports whether anything changed. Ineligible words pass through
// unchanged: words shorter than the minimum length, words that classify as
// anything but Other, and words with no vocabulary match above threshold.
//
// When a correction happens the content is rebuilt with single spaces;
// otherwise it is returned verbatim.
func (c *Corrector) Correct(content string, vocabulary []string) (string, bool) {
	fields := strings.Fields(content)
	if len(fields) == 0 || len(vocabulary) == 0 {
		return content, false
	}

	changed := false
	for i, f := range fields {
		if len(f) < c.minWordLen {
			continue
		}
		if engine.ClassifyContent(f) != engine.Other {
			continue
		}
		if fixed, ok := c.matchWord(f, vocabulary); ok && fixed != f {
			fields[i] = fixed
			changed = true
		}
	}

	if !changed {
		return content, false
	}
	return strings.Join(fields, " "), true
}

// matchWord finds the vocabulary word most phonetically similar to word,
// returning it in its document casing.
func (c *Corrector) matchWord(word string, vocabulary []string) (string, bool) {
	lower := strings.ToLower(word)
	primary, secondary := matchr.DoubleMetaphone(lower)

	type candidate struct {
		word     string
		score    float64
		phonetic bool
	}
	var best candidate

	for _, v := range vocabulary {
		if len(v) < c.minWordLen {
			continue
		}
		vLower := strings.ToLower(v)
		vp, vs := matchr.DoubleMetaphone(vLower)

		score := matchr.JaroWinkler(lower, vLower, false)

		if codesOverlap(primary, secondary, vp, vs) {
			if score >= c.phoneticThreshold && (!best.phonetic || score > best.score) {
				best = candidate{word: v, score: score, phonetic: true}
			}
		} else if !best.phonetic && score >= c.fuzzyThreshold && score > best.score {
			best = candidate{word: v, score: score, phonetic: false}
		}
	}

	if best.word == "" {
		return word, false
	}
	return best.word, true
}

// codesOverlap reports whether the two Double Metaphone code pairs share a
// non-empty code.
func codesOverlap(p1, s1, p2, s2 string) bool {
	if p1 != "" && (p1 == p2 || p1 == s2) {
		return true
	}
	if s1 != "" && (s1 == p2 || s1 == s2) {
		return true
	}
	return false
}
