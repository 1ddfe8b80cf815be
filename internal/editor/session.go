// Package editor owns per-session editing state: the current [Document],
// the undo/redo [History], and the dispatcher that routes incoming spoken
// content to either the word-replacement pipeline or the dictation append
// path.
//
// A [Session] is created per editing surface (one websocket connection in
// practice) and serializes its edits behind a mutex, so only one edit is
// ever in flight against a document. The engine underneath is pure; all
// state lives here.
package editor

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/MrWong99/respeak/internal/engine"
	"github.com/MrWong99/respeak/pkg/types"
)

var (
	// ErrEmptyContent is returned when spoken content is empty or
	// whitespace-only. The edit is dropped and history stays untouched.
	ErrEmptyContent = errors.New("editor: content is empty")

	// ErrTargetNotFound is returned when a selection index does not resolve
	// to a word token, so the caller can clear its stale selection.
	ErrTargetNotFound = errors.New("editor: selection does not resolve to a word")
)

// DefaultHistoryLimit bounds retained snapshots when no limit is configured.
const DefaultHistoryLimit = 100

// Mode identifies which edit path produced a result.
type Mode string

const (
	ModeReplace Mode = "replace"
	ModeDictate Mode = "dictate"
	ModeDelete  Mode = "delete"
	ModeUndo    Mode = "undo"
	ModeRedo    Mode = "redo"
)

// ContentCorrector rewrites spoken content against the document's own
// vocabulary before dispatch. Implementations report whether they changed
// anything.
type ContentCorrector interface {
	Correct(content string, vocabulary []string) (string, bool)
}

// Result describes one accepted edit.
type Result struct {
	// Seq is the session's edit sequence number, incremented on every
	// accepted state change including undo and redo.
	Seq int

	// Text is the document text after the edit.
	Text string

	// Mode is the edit path that ran.
	Mode Mode

	// Rule names the repair rule that fired for a replacement. Empty for
	// plain swaps and for every other mode.
	Rule string

	// Corrected reports whether the content was phonetically corrected
	// before dispatch.
	Corrected bool

	CanUndo bool
	CanRedo bool
}

// Snapshot is the rendering feed after an edit: the current text, its token
// view for per-word highlighting, and the history affordances.
type Snapshot struct {
	Seq     int
	Text    string
	Tokens  []engine.Token
	CanUndo bool
	CanRedo bool
}

// Session owns one user's document and edit history.
// All exported methods are safe for concurrent use; the mutex guarantees at
// most one edit is in flight.
type Session struct {
	mu      sync.Mutex
	id      string
	doc     Document
	history *History
	seq     int

	historyLimit int
	corrector    ContentCorrector
}

// Option configures a [Session].
type Option func(*Session)

// WithHistoryLimit bounds the retained undo snapshots. Values below 1 keep
// the default.
func WithHistoryLimit(n int) Option {
	return func(s *Session) {
		if n >= 1 {
			s.historyLimit = n
		}
	}
}

// WithCorrector installs a phonetic content corrector, applied to spoken
// content before dispatch.
func WithCorrector(c ContentCorrector) Option {
	return func(s *Session) { s.corrector = c }
}

// NewSession creates a Session seeded with the initial document text.
func NewSession(initialText string, opts ...Option) *Session {
	s := &Session{
		id:           uuid.NewString(),
		doc:          NewDocument(initialText),
		historyLimit: DefaultHistoryLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.history = NewHistory(initialText, s.historyLimit)
	return s
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// Apply routes one (selection, content) pair to the matching edit path:
// targeted replacement when sel is non-nil, dictation append otherwise.
//
// Content is trimmed first; if nothing remains, [ErrEmptyContent] is
// returned and neither document nor history changes. A selection that does
// not resolve to a word returns [ErrTargetNotFound] the same way.
func (s *Session) Apply(sel *types.Selection, content string) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	content = strings.TrimSpace(content)
	if content == "" {
		return Result{}, ErrEmptyContent
	}

	corrected := false
	if s.corrector != nil {
		if fixed, changed := s.corrector.Correct(content, s.doc.Vocabulary()); changed {
			slog.Debug("editor: content corrected",
				"session_id", s.id,
				"from", content,
				"to", fixed,
			)
			content = fixed
			corrected = true
		}
	}

	if sel == nil {
		return s.dictate(content, corrected), nil
	}
	return s.replace(sel.TokenIndex, content, corrected)
}

// DeleteWord removes the word token at index and merges the whitespace
// around it, pushing the result like any other edit.
func (s *Session) DeleteWord(index int) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	text, err := engine.Delete(s.doc.tokens, index)
	if errors.Is(err, engine.ErrNoTarget) {
		return Result{}, ErrTargetNotFound
	}
	if err != nil {
		return Result{}, fmt.Errorf("editor: delete word: %w", err)
	}

	s.commit(text)
	slog.Info("editor: edit applied",
		"session_id", s.id,
		"mode", ModeDelete,
		"seq", s.seq,
	)
	return s.result(ModeDelete, "", false), nil
}

// Undo moves one snapshot back. The second return is false at the start of
// history, with nothing changed.
func (s *Session) Undo() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	text, ok := s.history.Undo()
	if !ok {
		return Result{}, false
	}
	s.doc = NewDocument(text)
	s.seq++
	slog.Debug("editor: undo", "session_id", s.id, "seq", s.seq)
	return s.result(ModeUndo, "", false), true
}

// Redo moves one snapshot forward. The second return is false at the end of
// history, with nothing changed.
func (s *Session) Redo() (Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	text, ok := s.history.Redo()
	if !ok {
		return Result{}, false
	}
	s.doc = NewDocument(text)
	s.seq++
	slog.Debug("editor: redo", "session_id", s.id, "seq", s.seq)
	return s.result(ModeRedo, "", false), true
}

// Snapshot returns the current rendering feed.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Seq:     s.seq,
		Text:    s.doc.Text(),
		Tokens:  s.doc.Tokens(),
		CanUndo: s.history.CanUndo(),
		CanRedo: s.history.CanRedo(),
	}
}

// replace runs the replacement pipeline against the current document.
// Callers hold s.mu.
func (s *Session) replace(index int, content string, corrected bool) (Result, error) {
	res, err := engine.Replace(s.doc.tokens, index, content)
	if errors.Is(err, engine.ErrNoTarget) {
		return Result{}, ErrTargetNotFound
	}
	if err != nil {
		return Result{}, fmt.Errorf("editor: replace: %w", err)
	}

	if res.Rule == "" {
		slog.Debug("editor: no repair rule matched, plain swap",
			"session_id", s.id,
			"target_type", res.TargetType.String(),
			"content_type", res.ContentType.String(),
		)
	}

	s.commit(res.Text)
	slog.Info("editor: edit applied",
		"session_id", s.id,
		"mode", ModeReplace,
		"rule", res.Rule,
		"seq", s.seq,
	)
	return s.result(ModeReplace, res.Rule, corrected), nil
}

// dictate appends content to the document end, inserting one space first
// only when the text is non-empty and does not already end in whitespace.
// Callers hold s.mu.
func (s *Session) dictate(content string, corrected bool) Result {
	text := s.doc.Text()
	if text != "" && !endsInWhitespace(text) {
		text += " "
	}
	text += content

	s.commit(text)
	slog.Info("editor: edit applied",
		"session_id", s.id,
		"mode", ModeDictate,
		"seq", s.seq,
	)
	return s.result(ModeDictate, "", corrected)
}

// commit replaces the document, pushes the snapshot, and advances the edit
// sequence. Callers hold s.mu.
func (s *Session) commit(text string) {
	s.doc = NewDocument(text)
	s.history.Push(text)
	s.seq++
}

// result builds a Result from the current state. Callers hold s.mu.
func (s *Session) result(mode Mode, rule string, corrected bool) Result {
	return Result{
		Seq:       s.seq,
		Text:      s.doc.Text(),
		Mode:      mode,
		Rule:      rule,
		Corrected: corrected,
		CanUndo:   s.history.CanUndo(),
		CanRedo:   s.history.CanRedo(),
	}
}

func endsInWhitespace(s string) bool {
	r, _ := utf8.DecodeLastRuneInString(s)
	return unicode.IsSpace(r)
}
