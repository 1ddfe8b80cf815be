package engine

import "strings"

// Reassemble rebuilds the document text after applying a plan to a token
// list. targetIndex selects the token whose text becomes plan.Content; pass
// a negative index when there is no target (the delete path blanks only).
//
// The output satisfies, in combination:
//   - the target token's text is replaced with plan.Content
//   - blanked tokens and tokens whose text became empty are dropped
//   - whitespace runs that become adjacent through dropping collapse into
//     the first run, narrowed to a single space
//   - adjacent surviving words with no whitespace between them are joined
//     by exactly one space
//   - whitespace exposed at either end by dropping is removed, while
//     whitespace that already opened or closed the document stays
//
// Untouched tokens keep their text verbatim, so with nothing blanked and no
// target the output equals the original text, multi-space gaps included.
func Reassemble(tokens []Token, plan Plan, targetIndex int) string {
	kept := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		text := t.Text
		switch {
		case t.OriginalIndex == targetIndex:
			text = plan.Content
		case plan.Blanks[t.OriginalIndex]:
			text = ""
		default:
			if rw, ok := plan.Rewrites[t.OriginalIndex]; ok {
				text = rw
			}
		}
		if text == "" {
			continue
		}
		kept = append(kept, Token{
			Text:          text,
			IsWhitespace:  t.IsWhitespace,
			OriginalIndex: t.OriginalIndex,
		})
	}

	merged := make([]Token, 0, len(kept))
	for _, t := range kept {
		if t.IsWhitespace && len(merged) > 0 && merged[len(merged)-1].IsWhitespace {
			merged[len(merged)-1].Text = " "
			continue
		}
		merged = append(merged, t)
	}

	if len(merged) > 0 && merged[0].IsWhitespace && merged[0].OriginalIndex != 0 {
		merged = merged[1:]
	}
	if n := len(merged); n > 0 && merged[n-1].IsWhitespace && merged[n-1].OriginalIndex != len(tokens)-1 {
		merged = merged[:n-1]
	}

	var b strings.Builder
	for i, t := range merged {
		if i > 0 && !t.IsWhitespace && !merged[i-1].IsWhitespace {
			b.WriteByte(' ')
		}
		b.WriteString(t.Text)
	}
	return b.String()
}
