package main

// cellSet is a set of cell indexes, used for conflict and error highlights.
type cellSet map[int]struct{}

func (cs cellSet) add(idx int) { cs[idx] = struct{}{} }

func (cs cellSet) has(idx int) bool { _, ok := cs[idx]; return ok }

// FindConflicts returns the peers of (row,col) that already hold num, plus the
// cell itself when any exist, so the UI can flag both sides of the clash.
// num=0 never conflicts.
func (s *Session) FindConflicts(row, col, num int) cellSet {
	out := cellSet{}
	if num == 0 {
		return out
	}
	idx := cellIndex(row, col)
	for i := 0; i < 9; i++ {
		if p := row*9 + i; p != idx && s.board[p] == num {
			out.add(p)
		}
		if p := i*9 + col; p != idx && s.board[p] == num {
			out.add(p)
		}
	}
	br := (row / 3) * 3
	bc := (col / 3) * 3
	for dr := 0; dr < 3; dr++ {
		for dc := 0; dc < 3; dc++ {
			if p := (br+dr)*9 + (bc + dc); p != idx && s.board[p] == num {
				out.add(p)
			}
		}
	}
	if len(out) > 0 {
		out.add(idx)
	}
	return out
}

// FindErrors flags every user-filled cell that disagrees with the solution.
// Stricter than conflict detection: a locally consistent digit can still be
// wrong against the unique solution.
func (s *Session) FindErrors() cellSet {
	out := cellSet{}
	for i := 0; i < N; i++ {
		if s.clues[i] == 0 && s.board[i] != 0 && s.board[i] != s.solution[i] {
			out.add(i)
		}
	}
	return out
}

// Solved reports whether the board matches the solution cell for cell.
func (s *Session) Solved() bool {
	return s.board == s.solution
}
