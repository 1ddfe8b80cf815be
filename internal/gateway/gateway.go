// Package gateway exposes the editing engine over a websocket connection.
//
// One connection carries one editing session. The client opens the session
// with its initial text, then sends edit, delete, undo, and redo frames as
// the user works; the server answers every frame with a status message and,
// for accepted edits, the full document state for re-rendering. Frames are
// read one at a time off the connection, so a session never sees more than
// one pending edit.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/MrWong99/respeak/internal/editor"
	"github.com/MrWong99/respeak/internal/observe"
	"github.com/MrWong99/respeak/pkg/types"
)

// defaultMaxMessageBytes caps one incoming frame. Transcripts are short;
// a generous cap still keeps a misbehaving client from ballooning memory.
const defaultMaxMessageBytes = 64 * 1024

// Gateway accepts websocket connections and bridges them to editing
// sessions. Safe for concurrent use; per-connection state lives in the
// handler goroutine.
type Gateway struct {
	metrics         *observe.Metrics
	maxMessageBytes int64

	mu           sync.RWMutex
	historyLimit int
	corrector    editor.ContentCorrector
}

// Option is a functional option for configuring a [Gateway].
type Option func(*Gateway)

// WithHistoryLimit sets the undo snapshot bound for sessions opened after
// the call. Values below 1 keep the editor default.
func WithHistoryLimit(n int) Option {
	return func(g *Gateway) {
		if n >= 1 {
			g.historyLimit = n
		}
	}
}

// WithCorrector installs a phonetic content corrector for new sessions.
func WithCorrector(c editor.ContentCorrector) Option {
	return func(g *Gateway) { g.corrector = c }
}

// WithMaxMessageBytes caps the size of one incoming websocket frame.
func WithMaxMessageBytes(n int64) Option {
	return func(g *Gateway) {
		if n > 0 {
			g.maxMessageBytes = n
		}
	}
}

// WithMetrics injects a metrics instance. Defaults to [observe.DefaultMetrics].
func WithMetrics(m *observe.Metrics) Option {
	return func(g *Gateway) { g.metrics = m }
}

// New creates a Gateway configured with the supplied options.
func New(opts ...Option) *Gateway {
	g := &Gateway{
		maxMessageBytes: defaultMaxMessageBytes,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.metrics == nil {
		g.metrics = observe.DefaultMetrics()
	}
	return g
}

// SetCorrector swaps the corrector used for sessions opened from now on.
// Live sessions keep the corrector they were created with. Pass nil to
// disable correction.
func (g *Gateway) SetCorrector(c editor.ContentCorrector) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.corrector = c
}

// SetHistoryLimit swaps the history limit for sessions opened from now on.
// Values below 1 restore the editor default.
func (g *Gateway) SetHistoryLimit(n int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if n < 1 {
		n = 0
	}
	g.historyLimit = n
}

// Register adds the websocket endpoint to mux.
func (g *Gateway) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /session", g.handle)
}

// newSession builds a session with the gateway's current settings.
func (g *Gateway) newSession(text string) *editor.Session {
	g.mu.RLock()
	limit, corr := g.historyLimit, g.corrector
	g.mu.RUnlock()

	var opts []editor.Option
	if limit >= 1 {
		opts = append(opts, editor.WithHistoryLimit(limit))
	}
	if corr != nil {
		opts = append(opts, editor.WithCorrector(corr))
	}
	return editor.NewSession(text, opts...)
}

// handle upgrades the request and runs the per-connection read loop until
// the client disconnects or the request context is cancelled.
func (g *Gateway) handle(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		slog.Warn("gateway: websocket accept failed", "err", err)
		return
	}
	defer conn.Close(websocket.StatusInternalError, "connection closed")
	conn.SetReadLimit(g.maxMessageBytes)

	ctx := r.Context()
	g.metrics.ActiveSessions.Add(ctx, 1)
	defer g.metrics.ActiveSessions.Add(context.WithoutCancel(ctx), -1)

	// An empty session exists from the start so that edit frames arriving
	// before an explicit open still have a document to land in.
	sess := g.newSession("")
	slog.Info("gateway: session connected", "session_id", sess.ID())
	defer slog.Info("gateway: session closed", "session_id", sess.ID())

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			if ctx.Err() == nil && websocket.CloseStatus(err) != websocket.StatusNormalClosure &&
				websocket.CloseStatus(err) != websocket.StatusGoingAway {
				slog.Debug("gateway: read ended", "session_id", sess.ID(), "err", err)
			}
			conn.Close(websocket.StatusNormalClosure, "bye")
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			g.writeStatus(ctx, conn, statusMessage{
				Type: "status", OK: false, Code: statusBadMessage,
				Detail: "invalid JSON frame",
			})
			continue
		}

		if newSess := g.dispatch(ctx, conn, sess, &msg); newSess != nil {
			sess = newSess
		}
	}
}

// dispatch processes one client frame against sess, writing the status and
// document responses. The return is non-nil only for "open", which replaces
// the connection's session.
func (g *Gateway) dispatch(ctx context.Context, conn *websocket.Conn, sess *editor.Session, msg *clientMessage) *editor.Session {
	switch msg.Type {
	case "open":
		fresh := g.newSession(msg.Text)
		slog.Info("gateway: document opened",
			"session_id", fresh.ID(),
			"text_len", len(msg.Text),
		)
		g.writeStatus(ctx, conn, statusMessage{Type: "status", OK: true, Code: statusOpened})
		g.writeDocument(ctx, conn, fresh.Snapshot())
		return fresh

	case "edit":
		g.handleEdit(ctx, conn, sess, msg)

	case "delete":
		start := time.Now()
		res, err := sess.DeleteWord(msg.Index)
		if err != nil {
			g.metrics.RecordEdit(ctx, string(editor.ModeDelete), statusTargetNotFound, 0)
			g.writeStatus(ctx, conn, statusMessage{
				Type: "status", OK: false, Code: statusTargetNotFound,
				Mode: string(editor.ModeDelete), Detail: "index does not resolve to a word",
			})
			return nil
		}
		g.metrics.RecordEdit(ctx, string(editor.ModeDelete), "ok", time.Since(start).Seconds())
		g.writeStatus(ctx, conn, statusMessage{Type: "status", OK: true, Code: statusApplied, Mode: string(res.Mode)})
		g.writeDocument(ctx, conn, sess.Snapshot())

	case "undo", "redo":
		var (
			res editor.Result
			ok  bool
		)
		if msg.Type == "undo" {
			res, ok = sess.Undo()
		} else {
			res, ok = sess.Redo()
		}
		g.metrics.RecordHistoryOp(ctx, msg.Type, ok)
		if !ok {
			g.writeStatus(ctx, conn, statusMessage{
				Type: "status", OK: false, Code: statusBoundary,
				Mode: msg.Type, Detail: "nothing to " + msg.Type,
			})
			return nil
		}
		g.writeStatus(ctx, conn, statusMessage{Type: "status", OK: true, Code: statusApplied, Mode: string(res.Mode)})
		g.writeDocument(ctx, conn, sess.Snapshot())

	default:
		g.writeStatus(ctx, conn, statusMessage{
			Type: "status", OK: false, Code: statusBadMessage,
			Detail: "unknown message type " + msg.Type,
		})
	}
	return nil
}

// handleEdit runs the replacement or dictation path for one edit frame.
func (g *Gateway) handleEdit(ctx context.Context, conn *websocket.Conn, sess *editor.Session, msg *clientMessage) {
	var sel *types.Selection
	mode := editor.ModeDictate
	if msg.SelectedIndex != nil {
		sel = types.Select(*msg.SelectedIndex)
		mode = editor.ModeReplace
	}

	start := time.Now()
	res, err := sess.Apply(sel, msg.Content)
	switch {
	case errors.Is(err, editor.ErrEmptyContent):
		g.metrics.RecordEdit(ctx, string(mode), statusEmptyContent, 0)
		g.writeStatus(ctx, conn, statusMessage{
			Type: "status", OK: false, Code: statusEmptyContent,
			Mode: string(mode), Detail: "content is empty",
		})
		return
	case errors.Is(err, editor.ErrTargetNotFound):
		g.metrics.RecordEdit(ctx, string(mode), statusTargetNotFound, 0)
		g.writeStatus(ctx, conn, statusMessage{
			Type: "status", OK: false, Code: statusTargetNotFound,
			Mode: string(mode), Detail: "selection does not resolve to a word",
		})
		return
	case err != nil:
		slog.Error("gateway: edit failed", "session_id", sess.ID(), "err", err)
		g.writeStatus(ctx, conn, statusMessage{
			Type: "status", OK: false, Code: statusBadMessage, Detail: err.Error(),
		})
		return
	}

	g.metrics.RecordEdit(ctx, string(res.Mode), "ok", time.Since(start).Seconds())
	if res.Mode == editor.ModeReplace {
		g.metrics.RecordRule(ctx, res.Rule)
	}
	if res.Corrected {
		g.metrics.Corrections.Add(ctx, 1)
	}

	rule := res.Rule
	if res.Mode == editor.ModeReplace && rule == "" {
		rule = "fallback"
	}
	g.writeStatus(ctx, conn, statusMessage{
		Type: "status", OK: true, Code: statusApplied,
		Mode: string(res.Mode), Rule: rule, Corrected: res.Corrected,
	})
	g.writeDocument(ctx, conn, sess.Snapshot())
}

// writeDocument sends the post-edit document state.
func (g *Gateway) writeDocument(ctx context.Context, conn *websocket.Conn, snap editor.Snapshot) {
	tokens := make([]tokenView, len(snap.Tokens))
	for i, tok := range snap.Tokens {
		tokens[i] = tokenView{
			Text:         tok.Text,
			IsWhitespace: tok.IsWhitespace,
			Index:        tok.OriginalIndex,
		}
	}
	g.writeJSON(ctx, conn, documentMessage{
		Type:    "document",
		Seq:     snap.Seq,
		Text:    snap.Text,
		Tokens:  tokens,
		CanUndo: snap.CanUndo,
		CanRedo: snap.CanRedo,
	})
}

func (g *Gateway) writeStatus(ctx context.Context, conn *websocket.Conn, st statusMessage) {
	g.writeJSON(ctx, conn, st)
}

// writeJSON marshals v and writes it as a text frame. Write failures are
// logged only; the read loop notices the dead connection on its next read.
func (g *Gateway) writeJSON(ctx context.Context, conn *websocket.Conn, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("gateway: marshal response", "err", err)
		return
	}
	if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
		slog.Debug("gateway: write failed", "err", err)
	}
}
