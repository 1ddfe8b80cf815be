package engine

import "errors"

// ErrNoTarget is returned when a selection index does not resolve to a word
// token, either because it is out of range or because it points at
// whitespace.
var ErrNoTarget = errors.New("engine: selection does not resolve to a word")

// Result describes one applied replacement.
type Result struct {
	// Text is the reassembled document text.
	Text string

	// Rule names the repair branch that fired, empty for a plain swap.
	Rule string

	// TargetType and ContentType are the classifications the rule dispatch
	// saw. Useful in logs when chasing why a phrase was or wasn't rewritten.
	TargetType  WordType
	ContentType WordType
}

// Replace runs the full pipeline against a token list: classify the words,
// resolve the target's phrase, pick the repair rule for the type pair, and
// reassemble. The input tokens are not modified; the new document is the
// returned text, which callers re-tokenize.
//
// Content is substituted as given, so callers should trim it first. Returns
// [ErrNoTarget] if targetIndex is out of range or points at whitespace.
func Replace(tokens []Token, targetIndex int, content string) (Result, error) {
	if targetIndex < 0 || targetIndex >= len(tokens) || tokens[targetIndex].IsWhitespace {
		return Result{}, ErrNoTarget
	}

	words := ClassifyWords(tokens)
	var target ClassifiedWord
	for _, w := range words {
		if w.OriginalIndex == targetIndex {
			target = w
			break
		}
	}

	phrase := ResolvePhrase(words, target)
	contentType := ClassifyContent(content)
	plan := ApplyRules(phrase, target.Type, contentType, content)

	return Result{
		Text:        Reassemble(tokens, plan, targetIndex),
		Rule:        plan.Rule,
		TargetType:  target.Type,
		ContentType: contentType,
	}, nil
}

// Delete removes a single word token and merges the whitespace around it,
// with the same edge guarantees as [Reassemble]. Returns [ErrNoTarget] if
// targetIndex is out of range or points at whitespace.
func Delete(tokens []Token, targetIndex int) (string, error) {
	if targetIndex < 0 || targetIndex >= len(tokens) || tokens[targetIndex].IsWhitespace {
		return "", ErrNoTarget
	}
	plan := Plan{Blanks: map[int]bool{targetIndex: true}}
	return Reassemble(tokens, plan, -1), nil
}
