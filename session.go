package main

const N = 81

// Session holds everything mutable about one puzzle instance: the working
// board, the immutable clue mask, the target solution, and the per-cell
// candidate and manual-removal masks. The board/clues/solution triple is set
// once at construction and only replaced wholesale by a new Session.
type Session struct {
	board    [N]int
	clues    [N]int
	solution [N]int

	cands   [N]uint16 // pencil marks, bits 1..9
	removed [N]uint16 // digits the user struck; never auto-restored
}

func NewSession(board, clues, solution [N]int) *Session {
	return &Session{board: board, clues: clues, solution: solution}
}

func cellIndex(r, c int) int { return r*9 + c }

func cellCoords(idx int) (r, c int) { return idx / 9, idx % 9 }

// IsClue reports whether the cell is a fixed given.
func (s *Session) IsClue(idx int) bool { return s.clues[idx] != 0 }

func (s *Session) Value(idx int) int { return s.board[idx] }

func (s *Session) Candidates(idx int) uint16 { return s.cands[idx] }

func (s *Session) Removed(idx int) uint16 { return s.removed[idx] }

func (s *Session) Board() [N]int { return s.board }

// SetValue commits a digit to a non-clue cell and drops its pencil marks.
// Clue cells are untouchable.
func (s *Session) SetValue(idx, v int) {
	if s.IsClue(idx) {
		return
	}
	s.board[idx] = v
	s.cands[idx] = 0
}

// Clear empties a non-clue cell, including its pencil marks and strikes.
func (s *Session) Clear(idx int) {
	if s.IsClue(idx) {
		return
	}
	s.board[idx] = 0
	s.cands[idx] = 0
	s.removed[idx] = 0
}

// ResetToClues restores the board to its givens and wipes all pencil state.
func (s *Session) ResetToClues() {
	s.board = s.clues
	s.cands = [N]uint16{}
	s.removed = [N]uint16{}
}

// Complete reports whether every non-clue cell holds a digit.
func (s *Session) Complete() bool {
	for i := 0; i < N; i++ {
		if s.clues[i] == 0 && s.board[i] == 0 {
			return false
		}
	}
	return true
}

// forEachPeer visits every cell sharing a row, column or 3x3 box with idx,
// excluding idx itself. Cells in both the box and the row/col are visited once
// per containing group; callers must be idempotent per cell.
func forEachPeer(idx int, fn func(peer int)) {
	row, col := cellCoords(idx)
	for i := 0; i < 9; i++ {
		if p := row*9 + i; p != idx {
			fn(p)
		}
		if p := i*9 + col; p != idx {
			fn(p)
		}
	}
	br := (row / 3) * 3
	bc := (col / 3) * 3
	for dr := 0; dr < 3; dr++ {
		for dc := 0; dc < 3; dc++ {
			if p := (br+dr)*9 + (bc + dc); p != idx {
				fn(p)
			}
		}
	}
}
