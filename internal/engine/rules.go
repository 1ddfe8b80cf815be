package engine

import "strings"

// Plan is the outcome of rule dispatch: which tokens to blank, which to
// rewrite in place, and the content that will replace the target itself.
type Plan struct {
	// Blanks marks tokens for removal, keyed by index into the full token
	// list.
	Blanks map[int]bool

	// Rewrites replaces a token's text in place, keyed like Blanks.
	Rewrites map[int]string

	// Content is the text that replaces the target token, after any leading
	// particle consumed by a rewrite has been stripped.
	Content string

	// Rule names the branch that fired. It is empty when no rule matched
	// and the target is swapped for the raw content verbatim.
	Rule string
}

// Matched reports whether a type-pair rule fired, as opposed to the plain
// replacement fallback.
func (p Plan) Matched() bool { return p.Rule != "" }

// ApplyRules decides the structural repair for substituting content in for
// the phrase's target. Rules fire only when the target and the new content
// classify as the same type, dispatched by that shared type; every other
// pairing falls back to a verbatim swap with an empty Rule, so callers can
// tell a rule-driven edit from a plain one.
//
// The branch conditions below were tuned example by example against spoken
// edits. They are deliberately narrow: widening one (or folding them into a
// grammar) changes documents in ways the tests pin down.
func ApplyRules(phrase []ClassifiedWord, targetType, contentType WordType, content string) Plan {
	if targetType == contentType {
		var (
			p  Plan
			ok bool
		)
		switch targetType {
		case Day:
			p, ok = dayPlan(phrase, content)
		case Location:
			p, ok = locationPlan(phrase, content)
		case Time:
			p, ok = timePlan(phrase, content)
		}
		if ok {
			return p
		}
	}
	return newPlan(content, "")
}

// dayPlan repairs day-for-day substitutions.
//
// "on Monday" + "next Tuesday" rewrites "on" to "next" and strips the
// duplicate "next" from the content. "on Monday" + "tomorrow" drops the
// preposition (and any temporal modifier) since relative days take none.
// Any other day swap keeps the preposition exactly as it is, so
// "on Monday" + "Friday" yields "on Friday".
func dayPlan(phrase []ClassifiedWord, content string) (Plan, bool) {
	prep, hasPrep := firstOfType(phrase, Preposition)
	lower := strings.ToLower(content)

	switch {
	case hasPrep && prep.Text == "on" && strings.Contains(lower, "next"):
		p := newPlan(stripPrefixFold(content, "next "), "day/rewrite-next")
		p.Rewrites[prep.OriginalIndex] = "next"
		return p, true

	case hasPrep && lower == "tomorrow":
		p := newPlan(content, "day/drop-preposition")
		p.Blanks[prep.OriginalIndex] = true
		blankAll(p, phrase, Temporal)
		return p, true

	case hasPrep:
		return newPlan(content, "day/keep-preposition"), true
	}
	return Plan{}, false
}

// locationPlan repairs location-for-location substitutions.
//
// Content that arrives with its own "in " keeps it when the sentence has no
// preposition, or else takes over the existing preposition slot. "online"
// is preposition-less, so the existing preposition and article are dropped:
// "at the Studio" + "online" yields just "online".
func locationPlan(phrase []ClassifiedWord, content string) (Plan, bool) {
	prep, hasPrep := firstOfType(phrase, Preposition)
	lower := strings.ToLower(content)

	switch {
	case !hasPrep && strings.HasPrefix(lower, "in "):
		return newPlan(content, "location/own-preposition"), true

	case hasPrep && lower == "online":
		p := newPlan(content, "location/drop-preposition")
		p.Blanks[prep.OriginalIndex] = true
		blankAll(p, phrase, Article)
		return p, true

	case hasPrep && strings.HasPrefix(lower, "in ") && prep.Text != "in":
		p := newPlan(stripPrefixFold(content, "in "), "location/rewrite-in")
		p.Rewrites[prep.OriginalIndex] = "in"
		return p, true
	}
	return Plan{}, false
}

// timePlan repairs time-for-time substitutions, normalising the preposition
// to "at" when the content carries one.
func timePlan(phrase []ClassifiedWord, content string) (Plan, bool) {
	prep, hasPrep := firstOfType(phrase, Preposition)
	lower := strings.ToLower(content)

	switch {
	case !hasPrep && strings.HasPrefix(lower, "at "):
		return newPlan(content, "time/own-preposition"), true

	case hasPrep && strings.HasPrefix(lower, "at ") && prep.Text != "at":
		p := newPlan(stripPrefixFold(content, "at "), "time/rewrite-at")
		p.Rewrites[prep.OriginalIndex] = "at"
		return p, true
	}
	return Plan{}, false
}

func newPlan(content, rule string) Plan {
	return Plan{
		Blanks:   make(map[int]bool),
		Rewrites: make(map[int]string),
		Content:  content,
		Rule:     rule,
	}
}

// firstOfType returns the phrase's first word of type t, in document order.
func firstOfType(phrase []ClassifiedWord, t WordType) (ClassifiedWord, bool) {
	for _, w := range phrase {
		if w.Type == t {
			return w, true
		}
	}
	return ClassifiedWord{}, false
}

// blankAll marks every phrase word of type t for removal.
func blankAll(p Plan, phrase []ClassifiedWord, t WordType) {
	for _, w := range phrase {
		if w.Type == t {
			p.Blanks[w.OriginalIndex] = true
		}
	}
}

// stripPrefixFold removes prefix from s if it matches case-insensitively.
// The remainder keeps its original casing.
func stripPrefixFold(s, prefix string) string {
	if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
		return s[len(prefix):]
	}
	return s
}
