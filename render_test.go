package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestComputeDisplayPriority(t *testing.T) {
	s := testSession()
	clue := cellIndex(0, 0)
	user := cellIndex(5, 0)
	pencilled := cellIndex(5, 1)
	blank := cellIndex(5, 2)

	s.SetValue(user, 5)
	s.ToggleCandidate(pencilled, 3)
	s.ToggleCandidate(pencilled, 8)

	disp := computeDisplay(s, cellSet{}, cellSet{})

	if d := disp[clue]; d.value != 1 || d.class&classClue == 0 {
		t.Fatalf("clue display = %+v", d)
	}
	if d := disp[user]; d.value != 5 || d.class&classUser == 0 || d.cands != 0 {
		t.Fatalf("user display = %+v", d)
	}
	wantMask, _ := digitsToMask([]int{3, 8})
	if d := disp[pencilled]; d.value != 0 || d.cands != wantMask {
		t.Fatalf("pencil display = %+v", d)
	}
	if d := disp[blank]; d != (cellDisplay{}) {
		t.Fatalf("blank display = %+v", d)
	}
}

func TestComputeDisplayClueWinsOverValue(t *testing.T) {
	// A clue takes display priority even if the board array were to diverge.
	s := testSession()
	s.board[cellIndex(0, 2)] = 7 // bypasses SetValue's clue guard on purpose
	disp := computeDisplay(s, cellSet{}, cellSet{})
	if d := disp[cellIndex(0, 2)]; d.value != 3 || d.class&classClue == 0 {
		t.Fatalf("display = %+v, want clue value 3", d)
	}
}

func TestComputeDisplayHighlightClasses(t *testing.T) {
	s := testSession()
	a := cellIndex(4, 4)
	b := cellIndex(4, 7)
	s.SetValue(a, 9)
	s.SetValue(b, 9)

	conflicts := cellSet{}
	conflicts.add(a)
	conflicts.add(b)
	errors := cellSet{}
	errors.add(b)

	disp := computeDisplay(s, conflicts, errors)
	if disp[a].class&classConflict == 0 {
		t.Fatal("conflict class missing on trigger cell")
	}
	if disp[b].class&classConflict == 0 || disp[b].class&classError == 0 {
		t.Fatalf("peer class = %b, want conflict|error", disp[b].class)
	}
}

func TestDiffCellsMarksOnlyChanges(t *testing.T) {
	var prev, cur [N]cellDisplay
	prev[10] = cellDisplay{value: 4, class: classUser}
	cur[10] = prev[10]

	cur[11] = cellDisplay{value: 2, class: classUser}
	cur[12] = cellDisplay{cands: 0b1010}

	if diff := cmp.Diff([]int{11, 12}, diffCells(&prev, &cur, false), cmp.AllowUnexported(cellDisplay{})); diff != "" {
		t.Errorf("dirty set (-want +got):\n%s", diff)
	}
	if got := diffCells(&prev, &cur, true); len(got) != N {
		t.Fatalf("forced diff marked %d cells, want %d", len(got), N)
	}
	if got := diffCells(&cur, &cur, false); len(got) != 0 {
		t.Fatalf("identical states marked %d cells dirty", len(got))
	}
}

func TestDiffCellsSeesClassOnlyChanges(t *testing.T) {
	var prev, cur [N]cellDisplay
	prev[40] = cellDisplay{value: 6, class: classUser}
	cur[40] = cellDisplay{value: 6, class: classUser | classConflict}
	got := diffCells(&prev, &cur, false)
	if len(got) != 1 || got[0] != 40 {
		t.Fatalf("dirty = %v, want [40]", got)
	}
}
