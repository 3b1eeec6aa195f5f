package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func snapWithValue(v int) Snapshot {
	var s Snapshot
	s.board[0] = v
	return s
}

var snapCmp = cmp.Options{cmp.AllowUnexported(Snapshot{})}

func TestUndoRedoRoundTrip(t *testing.T) {
	before := snapWithValue(1)
	h := NewHistory(before)
	h.Push(snapWithValue(2))

	got, ok := h.Undo()
	if !ok {
		t.Fatal("undo rejected with one push on the stack")
	}
	if diff := cmp.Diff(before, got, snapCmp); diff != "" {
		t.Errorf("undo after push did not restore prior snapshot (-want +got):\n%s", diff)
	}

	got, ok = h.Redo()
	if !ok {
		t.Fatal("redo rejected after an undo")
	}
	if diff := cmp.Diff(snapWithValue(2), got, snapCmp); diff != "" {
		t.Errorf("redo mismatch (-want +got):\n%s", diff)
	}
}

func TestUndoRedoBoundaries(t *testing.T) {
	h := NewHistory(snapWithValue(1))
	if h.CanUndo() {
		t.Fatal("seeded history claims undo is possible")
	}
	if _, ok := h.Undo(); ok {
		t.Fatal("undo succeeded at the bottom")
	}
	if h.CanRedo() {
		t.Fatal("seeded history claims redo is possible")
	}
	if _, ok := h.Redo(); ok {
		t.Fatal("redo succeeded at the top")
	}
}

func TestPushTruncatesRedoBranch(t *testing.T) {
	h := NewHistory(snapWithValue(1))
	h.Push(snapWithValue(2))
	h.Push(snapWithValue(3))
	h.Undo()
	h.Undo()
	// A new action after undos abandons the old future.
	h.Push(snapWithValue(9))

	if h.CanRedo() {
		t.Fatal("redo branch survived a push")
	}
	if h.Len() != 2 {
		t.Fatalf("len = %d, want 2", h.Len())
	}
	got, _ := h.Undo()
	if diff := cmp.Diff(snapWithValue(1), got, snapCmp); diff != "" {
		t.Errorf("base snapshot corrupted (-want +got):\n%s", diff)
	}
}

func TestCapacityEvictsOldest(t *testing.T) {
	var h History
	for v := 1; v <= 21; v++ {
		h.Push(snapWithValue(v))
	}
	if h.Len() != maxHistory {
		t.Fatalf("len = %d, want %d", h.Len(), maxHistory)
	}
	// Walk back as far as possible; the first push must be gone.
	var last Snapshot
	for {
		snap, ok := h.Undo()
		if !ok {
			break
		}
		last = snap
	}
	if diff := cmp.Diff(snapWithValue(2), last, snapCmp); diff != "" {
		t.Errorf("oldest reachable snapshot (-want +got):\n%s", diff)
	}
}

func TestSnapshotIsIndependentCopy(t *testing.T) {
	s := testSession()
	idx := cellIndex(3, 0)
	s.ToggleCandidate(idx, 4)
	snap := s.Snapshot()

	s.SetValue(idx, 9)
	s.ToggleCandidate(cellIndex(3, 1), 2)

	if snap.board[idx] != 0 || !maskHas(snap.cands[idx], 4) {
		t.Fatal("snapshot changed after later session mutations")
	}

	s.Restore(snap)
	if s.Value(idx) != 0 || !maskHas(s.Candidates(idx), 4) {
		t.Fatal("restore did not bring back snapshot state")
	}
	if s.Candidates(cellIndex(3, 1)) != 0 {
		t.Fatal("restore kept state from after the snapshot")
	}
}

func TestResetReseedsSingleSnapshot(t *testing.T) {
	h := NewHistory(snapWithValue(1))
	h.Push(snapWithValue(2))
	h.Push(snapWithValue(3))
	h.Reset(snapWithValue(7))
	if h.Len() != 1 || h.CanUndo() || h.CanRedo() {
		t.Fatalf("reset left len=%d undo=%v redo=%v", h.Len(), h.CanUndo(), h.CanRedo())
	}
}
