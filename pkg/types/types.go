// Package types defines the shared types used across all Respeak packages.
//
// These types form the lingua franca between the upstream speech and
// selection providers, the replacement engine, and the gateway. They are
// intentionally minimal — each package defines its own domain types, but
// cross-cutting data structures live here to avoid circular imports.
package types

import "time"

// Transcript represents a finalized speech-to-text result handed to the
// editor. Respeak only consumes transcripts; producing them (the STT
// subsystem itself) is upstream of this module. Interim results must be
// filtered out before a transcript reaches the edit dispatcher — the editor
// acts only on IsFinal transcripts.
type Transcript struct {
	// Text is the transcribed speech content.
	Text string

	// IsFinal indicates whether this is a final (authoritative) or partial
	// (interim) transcript. The editor ignores non-final transcripts.
	IsFinal bool

	// Confidence is the overall confidence score (0.0–1.0). May be zero if
	// the provider does not report confidence.
	Confidence float64

	// Words contains per-word detail when available. May be nil for
	// providers that don't support word-level output.
	Words []WordDetail
}

// WordDetail holds per-word metadata from STT providers that support it.
type WordDetail struct {
	Word       string
	Start      time.Duration
	End        time.Duration
	Confidence float64
}

// Selection identifies the edit target supplied by the upstream focus
// provider (pointer, gaze, or equivalent). A nil *Selection means no word
// is selected and spoken content is appended as dictation.
type Selection struct {
	// TokenIndex is the index of the targeted token within the current
	// document's token list. The index must resolve to a non-whitespace
	// token; stale or whitespace indices are rejected by the dispatcher.
	TokenIndex int
}

// Select is a convenience constructor for a *Selection targeting the token
// at index i. It keeps call sites readable where a literal would need a
// temporary variable to take its address.
func Select(i int) *Selection {
	return &Selection{TokenIndex: i}
}
