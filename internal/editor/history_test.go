package editor

import "testing"

func TestHistory_SeededWithInitial(t *testing.T) {
	t.Parallel()

	h := NewHistory("first draft", 10)

	if got := h.Current(); got != "first draft" {
		t.Errorf("Current() = %q, want %q", got, "first draft")
	}
	if h.CanUndo() {
		t.Error("CanUndo() = true on a fresh history")
	}
	if h.CanRedo() {
		t.Error("CanRedo() = true on a fresh history")
	}
	if h.Len() != 1 {
		t.Errorf("Len() = %d, want 1", h.Len())
	}
}

func TestHistory_UndoRedoWalk(t *testing.T) {
	t.Parallel()

	h := NewHistory("zero", 10)
	h.Push("one")
	h.Push("two")

	if got, ok := h.Undo(); !ok || got != "one" {
		t.Fatalf("Undo() = %q, %v, want %q, true", got, ok, "one")
	}
	if got, ok := h.Undo(); !ok || got != "zero" {
		t.Fatalf("Undo() = %q, %v, want %q, true", got, ok, "zero")
	}
	if _, ok := h.Undo(); ok {
		t.Fatal("Undo() past the start should report false")
	}
	if got := h.Current(); got != "zero" {
		t.Errorf("Current() after boundary undo = %q, want %q (cursor unmoved)", got, "zero")
	}

	if got, ok := h.Redo(); !ok || got != "one" {
		t.Fatalf("Redo() = %q, %v, want %q, true", got, ok, "one")
	}
	if got, ok := h.Redo(); !ok || got != "two" {
		t.Fatalf("Redo() = %q, %v, want %q, true", got, ok, "two")
	}
	if _, ok := h.Redo(); ok {
		t.Fatal("Redo() past the end should report false")
	}
}

func TestHistory_UndoRedoExactness(t *testing.T) {
	t.Parallel()

	h := NewHistory("a", 10)
	h.Push("a b")
	h.Push("a b c")

	before := h.Current()
	if _, ok := h.Undo(); !ok {
		t.Fatal("Undo() failed")
	}
	after, ok := h.Redo()
	if !ok {
		t.Fatal("Redo() failed")
	}
	if after != before {
		t.Errorf("undo then redo: got %q, want byte-identical %q", after, before)
	}
}

func TestHistory_PushTruncatesRedoTail(t *testing.T) {
	t.Parallel()

	h := NewHistory("zero", 10)
	h.Push("one")
	h.Push("two")

	if _, ok := h.Undo(); !ok {
		t.Fatal("Undo() failed")
	}
	h.Push("three")

	if h.CanRedo() {
		t.Error("CanRedo() = true after push, want redo tail truncated")
	}
	if got := h.Current(); got != "three" {
		t.Errorf("Current() = %q, want %q", got, "three")
	}
	if got, ok := h.Undo(); !ok || got != "one" {
		t.Errorf("Undo() = %q, %v, want %q, true", got, ok, "one")
	}
	if h.Len() != 3 {
		t.Errorf("Len() = %d, want 3 (zero, one, three)", h.Len())
	}
}

func TestHistory_EvictionKeepsCursorValid(t *testing.T) {
	t.Parallel()

	h := NewHistory("s0", 3)
	for _, s := range []string{"s1", "s2", "s3", "s4"} {
		h.Push(s)
	}

	if h.Len() != 3 {
		t.Fatalf("Len() = %d, want 3 after eviction", h.Len())
	}
	if got := h.Current(); got != "s4" {
		t.Fatalf("Current() = %q, want %q", got, "s4")
	}

	// Undo depth shrank with the eviction: only the retained snapshots are
	// reachable.
	if got, ok := h.Undo(); !ok || got != "s3" {
		t.Fatalf("Undo() = %q, %v, want %q, true", got, ok, "s3")
	}
	if got, ok := h.Undo(); !ok || got != "s2" {
		t.Fatalf("Undo() = %q, %v, want %q, true", got, ok, "s2")
	}
	if _, ok := h.Undo(); ok {
		t.Fatal("Undo() should hit the evicted boundary")
	}
}

func TestHistory_UnboundedBelowOne(t *testing.T) {
	t.Parallel()

	h := NewHistory("s0", 0)
	for i := 0; i < 50; i++ {
		h.Push("snapshot")
	}
	if h.Len() != 51 {
		t.Errorf("Len() = %d, want 51 (no eviction)", h.Len())
	}
}
