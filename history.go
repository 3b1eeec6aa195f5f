package main

// maxHistory bounds the undo depth; the oldest snapshot is evicted first.
const maxHistory = 20

// Snapshot is a full copy of the mutable game state at one instant. All
// fields are fixed-size arrays, so assignment is a deep copy and a snapshot
// is immutable once taken.
type Snapshot struct {
	board   [N]int
	cands   [N]uint16
	removed [N]uint16
}

func (s *Session) Snapshot() Snapshot {
	return Snapshot{board: s.board, cands: s.cands, removed: s.removed}
}

// Restore replaces the board and pencil state wholesale. Conflict and error
// highlights are derived state and must be recomputed by the caller.
func (s *Session) Restore(snap Snapshot) {
	s.board = snap.board
	s.cands = snap.cands
	s.removed = snap.removed
}

// History is a bounded snapshot stack with a pointer into it. Pushing while
// the pointer sits before the tail truncates the abandoned redo branch.
type History struct {
	snaps []Snapshot
	ptr   int
}

// NewHistory seeds the stack with the starting snapshot so the first user
// action has something to undo back to.
func NewHistory(initial Snapshot) *History {
	h := &History{}
	h.Reset(initial)
	return h
}

func (h *History) Reset(initial Snapshot) {
	h.snaps = append(h.snaps[:0], initial)
	h.ptr = 0
}

func (h *History) Push(snap Snapshot) {
	if h.ptr+1 < len(h.snaps) {
		h.snaps = h.snaps[:h.ptr+1]
	}
	if len(h.snaps) == maxHistory {
		copy(h.snaps, h.snaps[1:])
		h.snaps = h.snaps[:maxHistory-1]
	}
	h.snaps = append(h.snaps, snap)
	h.ptr = len(h.snaps) - 1
}

func (h *History) CanUndo() bool { return h.ptr > 0 }

func (h *History) CanRedo() bool { return h.ptr < len(h.snaps)-1 }

func (h *History) Undo() (Snapshot, bool) {
	if !h.CanUndo() {
		return Snapshot{}, false
	}
	h.ptr--
	return h.snaps[h.ptr], true
}

func (h *History) Redo() (Snapshot, bool) {
	if !h.CanRedo() {
		return Snapshot{}, false
	}
	h.ptr++
	return h.snaps[h.ptr], true
}

func (h *History) Len() int { return len(h.snaps) }
