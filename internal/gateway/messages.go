package gateway

// clientMessage is one request frame from an editing surface. Type selects
// the operation; the other fields are read per type and ignored otherwise.
type clientMessage struct {
	// Type is one of "open", "edit", "delete", "undo", "redo".
	Type string `json:"type"`

	// Text seeds the session document. Only read for "open".
	Text string `json:"text,omitempty"`

	// SelectedIndex is the token index of the edit target. Absent means
	// dictation mode: the content is appended to the document end. Only read
	// for "edit".
	SelectedIndex *int `json:"selected_index,omitempty"`

	// Content is the finalized transcript to apply. Only read for "edit".
	Content string `json:"content,omitempty"`

	// Index is the token to remove. Only read for "delete".
	Index int `json:"index,omitempty"`
}

// tokenView is the per-token rendering feed, enough for an editing surface
// to highlight and hit-test individual words.
type tokenView struct {
	Text         string `json:"text"`
	IsWhitespace bool   `json:"is_whitespace"`
	Index        int    `json:"index"`
}

// documentMessage carries the full document state after an accepted edit.
type documentMessage struct {
	Type    string      `json:"type"` // always "document"
	Seq     int         `json:"seq"`
	Text    string      `json:"text"`
	Tokens  []tokenView `json:"tokens"`
	CanUndo bool        `json:"can_undo"`
	CanRedo bool        `json:"can_redo"`
}

// Status codes sent to the client. Every processed frame produces exactly
// one statusMessage; accepted edits additionally produce a documentMessage.
const (
	statusApplied        = "applied"
	statusOpened         = "opened"
	statusEmptyContent   = "empty_content"
	statusTargetNotFound = "target_not_found"
	statusBoundary       = "history_boundary"
	statusBadMessage     = "bad_message"
)

// statusMessage reports the outcome of one client frame, accepted or dropped.
type statusMessage struct {
	Type string `json:"type"` // always "status"
	OK   bool   `json:"ok"`
	Code string `json:"code"`

	// Mode is the edit path that ran, empty for drops before dispatch.
	Mode string `json:"mode,omitempty"`

	// Rule names the grammar-repair rule that fired, "fallback" for plain
	// swaps, empty outside replace mode.
	Rule string `json:"rule,omitempty"`

	// Corrected reports whether the spoken content was phonetically
	// corrected before dispatch.
	Corrected bool `json:"corrected,omitempty"`

	// Detail is a short human-readable explanation for dropped frames.
	Detail string `json:"detail,omitempty"`
}
