package main

import "math/bits"

// Candidate sets are uint16 bitmasks using bits 1..9; bit 0 is never set.

const allDigits uint16 = 0b1111111110

func digitBit(d int) uint16 { return 1 << d }

func maskHas(mask uint16, d int) bool { return mask&digitBit(d) != 0 }

func maskCount(mask uint16) int { return bits.OnesCount16(mask) }

func maskToDigits(mask uint16) []int {
	out := make([]int, 0, 9)
	for d := 1; d <= 9; d++ {
		if mask&(1<<d) != 0 {
			out = append(out, d)
		}
	}
	return out
}

func digitsToMask(digits []int) (uint16, bool) {
	var m uint16
	for _, d := range digits {
		if d < 1 || d > 9 {
			return 0, false
		}
		m |= 1 << d
	}
	return m, true
}

// ToggleCandidate flips a pencil mark. Removing a mark records it as a manual
// strike; adding one forgives a prior strike. Pencilling always empties the
// cell's committed value.
func (s *Session) ToggleCandidate(idx, v int) {
	if s.IsClue(idx) || v < 1 || v > 9 {
		return
	}
	b := digitBit(v)
	if s.cands[idx]&b != 0 {
		s.cands[idx] &^= b
		s.removed[idx] |= b
	} else {
		s.cands[idx] |= b
		s.removed[idx] &^= b
	}
	s.board[idx] = 0
}

// PropagateElimination strikes v from the pencil marks of every peer of idx.
// It never touches the manual-removal masks, so nothing is resurrected later.
func (s *Session) PropagateElimination(idx, v int) {
	if v < 1 || v > 9 {
		return
	}
	b := digitBit(v)
	forEachPeer(idx, func(p int) {
		s.cands[p] &^= b
	})
}

// ReplaceCandidates overwrites the pencil marks of an empty cell, keeping the
// user's manual strikes in force. No-op on filled cells and clues.
func (s *Session) ReplaceCandidates(idx int, mask uint16) {
	if s.IsClue(idx) || s.board[idx] != 0 {
		return
	}
	s.cands[idx] = mask & allDigits &^ s.removed[idx]
}
