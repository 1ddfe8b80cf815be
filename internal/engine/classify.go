package engine

import (
	"regexp"
	"strings"
)

// WordType is the coarse grammatical category assigned to a word for
// rule-matching purposes. It is a flat enum over fixed pattern sets, not a
// parse result.
type WordType int

const (
	// Other is the catch-all for words matching no pattern.
	Other WordType = iota
	// Day matches weekday names, plus relative day words in spoken content.
	Day
	// Time matches clock expressions like "3pm" or "10:30am", plus "noon"
	// and "midnight".
	Time
	// Location matches a small set of place nouns, plus compound place
	// phrases in spoken content.
	Location
	// Preposition matches the prepositions the rule engine knows how to
	// drop or rewrite.
	Preposition
	// Article matches articles and demonstratives.
	Article
	// Temporal matches modifiers like "next" and "last".
	Temporal
)

// String returns the lowercase name used in logs and wire payloads.
func (t WordType) String() string {
	switch t {
	case Day:
		return "day"
	case Time:
		return "time"
	case Location:
		return "location"
	case Preposition:
		return "preposition"
	case Article:
		return "article"
	case Temporal:
		return "temporal"
	default:
		return "other"
	}
}

// typePattern pairs a WordType with its membership tests. Patterns are
// evaluated in declaration order and the first match wins, so a word
// belonging to several sets always gets the earliest type. The phrase
// resolver depends on this ordering ("this" must classify as Article, never
// Temporal).
type typePattern struct {
	Type WordType

	// Word reports whether an existing document word belongs to this type.
	Word func(w string) bool

	// Content reports whether spoken replacement content belongs to this
	// type. Nil means the type accepts the same set as Word.
	Content func(c string) bool
}

var typePatterns = []typePattern{
	{
		Type: Day,
		Word: weekdays.has,
		Content: func(c string) bool {
			return weekdays.has(c) || relativeDays.has(c)
		},
	},
	{
		Type: Time,
		Word: isClockWord,
	},
	{
		Type: Location,
		Word: placeNouns.has,
		Content: func(c string) bool {
			return placeNouns.has(c) || spokenPlaces.has(c)
		},
	},
	{
		Type: Preposition,
		Word: prepositions.has,
	},
	{
		Type: Article,
		Word: articles.has,
	},
	{
		Type: Temporal,
		Word: temporals.has,
	},
}

var (
	weekdays = newWordSet(
		"monday", "tuesday", "wednesday", "thursday",
		"friday", "saturday", "sunday",
	)

	// relativeDays classify as Day only when spoken as replacement content.
	// An existing "tomorrow" token in the document stays Other.
	relativeDays = newWordSet("tomorrow", "today", "yesterday")

	clockRe = regexp.MustCompile(`^\d{1,2}(:\d{2})?(am|pm)$`)

	clockWords = newWordSet("noon", "midnight")

	placeNouns = newWordSet("studio", "office", "room", "home", "building")

	// spokenPlaces classify as Location only when spoken as replacement
	// content. "conference room" matches as a whole phrase.
	spokenPlaces = newWordSet("conference room", "online")

	prepositions = newWordSet("at", "in", "on", "for", "with", "to", "by")

	articles = newWordSet("the", "a", "an", "this", "that", "these", "those")

	temporals = newWordSet("next", "last", "this", "coming", "previous")
)

func isClockWord(w string) bool {
	return clockWords.has(w) || clockRe.MatchString(w)
}

// Classify assigns a WordType to an existing document word. Matching is
// case-insensitive and the first matching pattern wins; unmatched words are
// Other.
//
// Freshly spoken replacement content goes through [ClassifyContent] instead.
// The two entry points deliberately differ: relative day words ("tomorrow",
// "today", "yesterday") and spoken place phrases ("conference room",
// "online") count as Day and Location only for new content, never for words
// already in the document.
func Classify(word string) WordType {
	w := strings.ToLower(word)
	for _, p := range typePatterns {
		if p.Word(w) {
			return p.Type
		}
	}
	return Other
}

// ClassifyContent assigns a WordType to spoken replacement content, which
// may span several words ("next Tuesday", "conference room", "at 4pm").
// Each pattern is tested against the whole normalised string and then
// against each individual field, still in priority order, so "next Tuesday"
// classifies as Day before the Temporal pattern ever sees "next".
func ClassifyContent(content string) WordType {
	norm := strings.ToLower(strings.TrimSpace(content))
	if norm == "" {
		return Other
	}
	fields := strings.Fields(norm)

	for _, p := range typePatterns {
		match := p.Content
		if match == nil {
			match = p.Word
		}
		if match(norm) {
			return p.Type
		}
		for _, f := range fields {
			if match(f) {
				return p.Type
			}
		}
	}
	return Other
}

type wordSet map[string]struct{}

func newWordSet(words ...string) wordSet {
	s := make(wordSet, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

func (s wordSet) has(w string) bool {
	_, ok := s[w]
	return ok
}
