package editor

// History is a linear undo/redo stack of document snapshots with a cursor
// pointing at the current state. Pushing a new snapshot truncates any redo
// tail beyond the cursor first, so the sequence is always a single timeline.
//
// History enforces a maximum snapshot count. When a push exceeds it, the
// oldest snapshots are evicted and the cursor is re-based; undo depth
// shrinks but the current state is never evicted.
//
// History is not safe for concurrent use; [Session] serializes access.
type History struct {
	snapshots []string
	cursor    int
	maxSize   int
}

// NewHistory creates a History seeded with the initial document text.
// maxSize bounds the retained snapshots; values below 1 mean unbounded.
func NewHistory(initial string, maxSize int) *History {
	return &History{
		snapshots: []string{initial},
		cursor:    0,
		maxSize:   maxSize,
	}
}

// Push records a new current snapshot, dropping any redo entries.
func (h *History) Push(snapshot string) {
	h.snapshots = append(h.snapshots[:h.cursor+1], snapshot)
	h.cursor = len(h.snapshots) - 1
	h.evict()
}

// Undo moves the cursor one snapshot back and returns it. The second return
// is false at the start of history, with the cursor unmoved.
func (h *History) Undo() (string, bool) {
	if h.cursor == 0 {
		return "", false
	}
	h.cursor--
	return h.snapshots[h.cursor], true
}

// Redo moves the cursor one snapshot forward and returns it. The second
// return is false at the end of history, with the cursor unmoved.
func (h *History) Redo() (string, bool) {
	if h.cursor >= len(h.snapshots)-1 {
		return "", false
	}
	h.cursor++
	return h.snapshots[h.cursor], true
}

// Current returns the snapshot at the cursor.
func (h *History) Current() string { return h.snapshots[h.cursor] }

// CanUndo reports whether a snapshot exists before the cursor.
func (h *History) CanUndo() bool { return h.cursor > 0 }

// CanRedo reports whether a snapshot exists past the cursor.
func (h *History) CanRedo() bool { return h.cursor < len(h.snapshots)-1 }

// Len returns the number of retained snapshots.
func (h *History) Len() int { return len(h.snapshots) }

// evict drops the oldest snapshots once the count exceeds maxSize. Only
// called from Push, where the cursor sits on the newest snapshot.
//
// Survivors are copied to a fresh backing array so evicted snapshots do not
// pin memory for the lifetime of the session.
func (h *History) evict() {
	if h.maxSize < 1 || len(h.snapshots) <= h.maxSize {
		return
	}
	drop := len(h.snapshots) - h.maxSize

	fresh := make([]string, h.maxSize)
	copy(fresh, h.snapshots[drop:])
	h.snapshots = fresh
	h.cursor -= drop
}
