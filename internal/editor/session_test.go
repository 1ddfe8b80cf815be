package editor_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/MrWong99/respeak/internal/editor"
	"github.com/MrWong99/respeak/pkg/types"
)

// stubCorrector rewrites content to a fixed string when changed is set.
type stubCorrector struct {
	fixed   string
	changed bool
}

func (c stubCorrector) Correct(content string, _ []string) (string, bool) {
	if c.changed {
		return c.fixed, true
	}
	return content, false
}

func TestSession_TargetedReplacement(t *testing.T) {
	t.Parallel()

	sess := editor.NewSession("Meeting on Monday at 3pm")

	res, err := sess.Apply(types.Select(4), "tomorrow")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if res.Text != "Meeting tomorrow at 3pm" {
		t.Errorf("text = %q, want %q", res.Text, "Meeting tomorrow at 3pm")
	}
	if res.Mode != editor.ModeReplace {
		t.Errorf("mode = %q, want %q", res.Mode, editor.ModeReplace)
	}
	if res.Rule != "day/drop-preposition" {
		t.Errorf("rule = %q, want day/drop-preposition", res.Rule)
	}
	if !res.CanUndo || res.CanRedo {
		t.Errorf("affordances = undo:%v redo:%v, want undo:true redo:false", res.CanUndo, res.CanRedo)
	}
	if res.Seq != 1 {
		t.Errorf("seq = %d, want 1", res.Seq)
	}
}

func TestSession_DictationAppends(t *testing.T) {
	t.Parallel()

	sess := editor.NewSession("Meeting tomorrow at noon")

	res, err := sess.Apply(nil, "bring laptop")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if res.Text != "Meeting tomorrow at noon bring laptop" {
		t.Errorf("text = %q, want %q", res.Text, "Meeting tomorrow at noon bring laptop")
	}
	if res.Mode != editor.ModeDictate {
		t.Errorf("mode = %q, want %q", res.Mode, editor.ModeDictate)
	}
}

func TestSession_DictationSpacing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		initial string
		content string
		want    string
	}{
		{"joins with one space", "hello", "world", "hello world"},
		{"empty document", "", "hello", "hello"},
		{"trailing whitespace already present", "hello ", "world", "hello world"},
		{"trailing tab", "hello\t", "world", "hello\tworld"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sess := editor.NewSession(tt.initial)
			res, err := sess.Apply(nil, tt.content)
			if err != nil {
				t.Fatalf("Apply: %v", err)
			}
			if res.Text != tt.want {
				t.Errorf("text = %q, want %q", res.Text, tt.want)
			}
		})
	}
}

func TestSession_EmptyContentDropped(t *testing.T) {
	t.Parallel()

	sess := editor.NewSession("Meeting on Monday")

	for _, content := range []string{"", "   ", "\t\n"} {
		_, err := sess.Apply(nil, content)
		if !errors.Is(err, editor.ErrEmptyContent) {
			t.Errorf("Apply(%q): err = %v, want ErrEmptyContent", content, err)
		}
	}

	snap := sess.Snapshot()
	if snap.Text != "Meeting on Monday" {
		t.Errorf("text = %q, want unchanged", snap.Text)
	}
	if snap.CanUndo {
		t.Error("CanUndo = true, want no history entries for dropped edits")
	}
	if snap.Seq != 0 {
		t.Errorf("seq = %d, want 0", snap.Seq)
	}
}

func TestSession_StaleSelectionDropped(t *testing.T) {
	t.Parallel()

	sess := editor.NewSession("Meeting on Monday")

	// Index 1 is the whitespace run, 99 is out of range.
	for _, idx := range []int{1, 99, -3} {
		_, err := sess.Apply(types.Select(idx), "tomorrow")
		if !errors.Is(err, editor.ErrTargetNotFound) {
			t.Errorf("Apply(index %d): err = %v, want ErrTargetNotFound", idx, err)
		}
	}

	if snap := sess.Snapshot(); snap.Text != "Meeting on Monday" {
		t.Errorf("text = %q, want unchanged", snap.Text)
	}
}

func TestSession_UndoRedoExactness(t *testing.T) {
	t.Parallel()

	sess := editor.NewSession("Meeting on Monday at 3pm")

	res, err := sess.Apply(types.Select(4), "next Tuesday")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	edited := res.Text

	undone, ok := sess.Undo()
	if !ok {
		t.Fatal("Undo reported boundary on a one-edit history")
	}
	if undone.Text != "Meeting on Monday at 3pm" {
		t.Errorf("after undo: text = %q, want the original", undone.Text)
	}
	if undone.Mode != editor.ModeUndo {
		t.Errorf("mode = %q, want %q", undone.Mode, editor.ModeUndo)
	}

	redone, ok := sess.Redo()
	if !ok {
		t.Fatal("Redo reported boundary with a redo entry available")
	}
	if redone.Text != edited {
		t.Errorf("after redo: text = %q, want byte-identical %q", redone.Text, edited)
	}
}

func TestSession_HistoryBoundariesAreNoOps(t *testing.T) {
	t.Parallel()

	sess := editor.NewSession("untouched")

	if _, ok := sess.Undo(); ok {
		t.Error("Undo on a fresh session should report a boundary")
	}
	if _, ok := sess.Redo(); ok {
		t.Error("Redo on a fresh session should report a boundary")
	}
	if snap := sess.Snapshot(); snap.Text != "untouched" || snap.Seq != 0 {
		t.Errorf("snapshot = %q seq %d, want unchanged document", snap.Text, snap.Seq)
	}
}

func TestSession_NewEditTruncatesRedo(t *testing.T) {
	t.Parallel()

	sess := editor.NewSession("draft zero")

	if _, err := sess.Apply(nil, "one"); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if _, err := sess.Apply(nil, "two"); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if _, ok := sess.Undo(); !ok {
		t.Fatal("Undo failed")
	}

	res, err := sess.Apply(nil, "three")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if res.CanRedo {
		t.Error("CanRedo = true after a fresh edit, want the redo tail gone")
	}
	if res.Text != "draft zero one three" {
		t.Errorf("text = %q, want %q", res.Text, "draft zero one three")
	}
}

func TestSession_DeleteWord(t *testing.T) {
	t.Parallel()

	sess := editor.NewSession("Meeting on Monday")

	res, err := sess.DeleteWord(2)
	if err != nil {
		t.Fatalf("DeleteWord: %v", err)
	}
	if res.Text != "Meeting Monday" {
		t.Errorf("text = %q, want %q", res.Text, "Meeting Monday")
	}
	if res.Mode != editor.ModeDelete {
		t.Errorf("mode = %q, want %q", res.Mode, editor.ModeDelete)
	}

	// Deletion is undoable like any other edit.
	undone, ok := sess.Undo()
	if !ok {
		t.Fatal("Undo after delete reported boundary")
	}
	if undone.Text != "Meeting on Monday" {
		t.Errorf("after undo: text = %q, want the original", undone.Text)
	}
}

func TestSession_DeleteWordInvalidTarget(t *testing.T) {
	t.Parallel()

	sess := editor.NewSession("Meeting on Monday")

	for _, idx := range []int{1, 3, -1, 42} {
		if _, err := sess.DeleteWord(idx); !errors.Is(err, editor.ErrTargetNotFound) {
			t.Errorf("DeleteWord(%d): err = %v, want ErrTargetNotFound", idx, err)
		}
	}
}

func TestSession_HistoryLimitShrinksUndoDepth(t *testing.T) {
	t.Parallel()

	sess := editor.NewSession("seed", editor.WithHistoryLimit(3))

	for _, word := range []string{"one", "two", "three"} {
		if _, err := sess.Apply(nil, word); err != nil {
			t.Fatalf("Apply(%q): %v", word, err)
		}
	}

	// Four snapshots were pushed (seed + three edits) but only three are
	// retained, so exactly two undos are possible.
	if _, ok := sess.Undo(); !ok {
		t.Fatal("first Undo failed")
	}
	if _, ok := sess.Undo(); !ok {
		t.Fatal("second Undo failed")
	}
	if _, ok := sess.Undo(); ok {
		t.Error("third Undo should hit the evicted boundary")
	}
}

func TestSession_CorrectorRewritesContent(t *testing.T) {
	t.Parallel()

	sess := editor.NewSession("see the Studio", editor.WithCorrector(stubCorrector{
		fixed:   "Studio",
		changed: true,
	}))

	res, err := sess.Apply(nil, "studdio")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !res.Corrected {
		t.Error("Corrected = false, want true")
	}
	if !strings.HasSuffix(res.Text, " Studio") {
		t.Errorf("text = %q, want the corrected word appended", res.Text)
	}
}

func TestSession_SequenceAdvancesPerAcceptedEdit(t *testing.T) {
	t.Parallel()

	sess := editor.NewSession("Meeting on Monday")

	res, err := sess.Apply(types.Select(4), "Friday")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if res.Seq != 1 {
		t.Errorf("seq after edit = %d, want 1", res.Seq)
	}

	undone, _ := sess.Undo()
	if undone.Seq != 2 {
		t.Errorf("seq after undo = %d, want 2", undone.Seq)
	}
	redone, _ := sess.Redo()
	if redone.Seq != 3 {
		t.Errorf("seq after redo = %d, want 3", redone.Seq)
	}

	// Dropped edits do not advance the sequence.
	if _, err := sess.Apply(nil, "  "); !errors.Is(err, editor.ErrEmptyContent) {
		t.Fatalf("err = %v, want ErrEmptyContent", err)
	}
	if snap := sess.Snapshot(); snap.Seq != 3 {
		t.Errorf("seq after dropped edit = %d, want 3", snap.Seq)
	}
}

func TestSession_SnapshotTokensMatchText(t *testing.T) {
	t.Parallel()

	sess := editor.NewSession("Meet me at the Studio")

	if _, err := sess.Apply(types.Select(8), "online"); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	snap := sess.Snapshot()
	if snap.Text != "Meet me online" {
		t.Fatalf("text = %q, want %q", snap.Text, "Meet me online")
	}

	var rebuilt strings.Builder
	for _, tok := range snap.Tokens {
		rebuilt.WriteString(tok.Text)
	}
	if rebuilt.String() != snap.Text {
		t.Errorf("token concatenation = %q, want %q", rebuilt.String(), snap.Text)
	}
}
