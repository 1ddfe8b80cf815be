package engine

import "strings"

// ClassifiedWord is the typed view of one non-whitespace token. It is
// derived per edit and never stored.
type ClassifiedWord struct {
	// OriginalIndex is the underlying token's position in the full token
	// list, whitespace included.
	OriginalIndex int

	// Text is the word lowercased for pattern matching.
	Text string

	// Type is the word's classification.
	Type WordType
}

// ClassifyWords derives the typed word view of a token list. Whitespace
// tokens are skipped; each word keeps its index into the full list.
func ClassifyWords(tokens []Token) []ClassifiedWord {
	words := make([]ClassifiedWord, 0, (len(tokens)+1)/2)
	for _, t := range tokens {
		if t.IsWhitespace {
			continue
		}
		words = append(words, ClassifiedWord{
			OriginalIndex: t.OriginalIndex,
			Text:          strings.ToLower(t.Text),
			Type:          Classify(t.Text),
		})
	}
	return words
}

// scanCap bounds how many words the resolver examines on each side of the
// target. Scanned positions count toward the cap whether or not they join
// the phrase.
const scanCap = 3

// ResolvePhrase collects the words forming the target's local phrase, in
// document order, always including the target itself.
//
// Backward from the target it gathers prepositions, articles, and temporal
// modifiers; a word of any other type different from the target's ends the
// scan without being included, while words of the target's own type are
// passed over. Forward it gathers words of the target's type or articles,
// stops at the first preposition or temporal modifier, and passes over
// everything else. Both directions give up after scanCap positions.
func ResolvePhrase(words []ClassifiedWord, target ClassifiedWord) []ClassifiedWord {
	pos := -1
	for i, w := range words {
		if w.OriginalIndex == target.OriginalIndex {
			pos = i
			break
		}
	}
	if pos < 0 {
		return []ClassifiedWord{target}
	}

	var before []ClassifiedWord
back:
	for i, scanned := pos-1, 0; i >= 0 && scanned < scanCap; i, scanned = i-1, scanned+1 {
		switch w := words[i]; w.Type {
		case Preposition, Article, Temporal:
			before = append(before, w)
		case target.Type:
			// Same-type words neither join nor end the backward scan.
		default:
			break back
		}
	}

	var after []ClassifiedWord
fwd:
	for i, scanned := pos+1, 0; i < len(words) && scanned < scanCap; i, scanned = i+1, scanned+1 {
		switch w := words[i]; w.Type {
		case Preposition, Temporal:
			break fwd
		case target.Type, Article:
			after = append(after, w)
		default:
			// Unrelated words are passed over without ending the scan.
		}
	}

	phrase := make([]ClassifiedWord, 0, len(before)+len(after)+1)
	for i := len(before) - 1; i >= 0; i-- {
		phrase = append(phrase, before[i])
	}
	phrase = append(phrase, target)
	phrase = append(phrase, after...)
	return phrase
}
