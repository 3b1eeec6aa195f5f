package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

type cellClass uint8

const (
	classClue cellClass = 1 << iota
	classUser
	classConflict
	classError
)

// cellDisplay is the effective display state of one cell: the digit shown (a
// clue wins over a placed value), the pencil marks shown when no digit is,
// and the class set driving its styling. Comparable, so the render diff is a
// struct equality check.
type cellDisplay struct {
	value int
	cands uint16
	class cellClass
}

// computeDisplay derives display state for the whole grid from game truth
// plus the transient conflict/error highlight sets.
func computeDisplay(s *Session, conflicts, errors cellSet) [N]cellDisplay {
	var out [N]cellDisplay
	for i := 0; i < N; i++ {
		d := &out[i]
		if s.IsClue(i) {
			d.value = s.clues[i]
			d.class |= classClue
		} else if v := s.board[i]; v != 0 {
			d.value = v
			d.class |= classUser
		} else {
			d.cands = s.cands[i]
		}
		if conflicts.has(i) {
			d.class |= classConflict
		}
		if errors.has(i) {
			d.class |= classError
		}
	}
	return out
}

// diffCells returns the indexes whose display state changed since the last
// render. force repaints everything (first frame, theme switch).
func diffCells(prev, cur *[N]cellDisplay, force bool) []int {
	var dirty []int
	for i := 0; i < N; i++ {
		if force || prev[i] != cur[i] {
			dirty = append(dirty, i)
		}
	}
	return dirty
}

// Renderer keeps one cached tile image per cell and repaints a tile only when
// its display state differs from the previously rendered one. The snapshot is
// overwritten after every sync whether or not a patch happened.
type Renderer struct {
	tiles  [N]*ebiten.Image
	last   [N]cellDisplay
	theme  string
	seeded bool
}

func NewRenderer() *Renderer {
	rd := &Renderer{}
	for i := range rd.tiles {
		rd.tiles[i] = ebiten.NewImage(cellSize, cellSize)
	}
	return rd
}

func (rd *Renderer) Tile(idx int) *ebiten.Image { return rd.tiles[idx] }

// Sync reconciles the tile cache against the current display state and
// returns how many tiles were repainted.
func (rd *Renderer) Sync(cur *[N]cellDisplay, th *Theme) int {
	force := !rd.seeded || rd.theme != th.Name
	dirty := diffCells(&rd.last, cur, force)
	for _, i := range dirty {
		rd.paintTile(i, cur[i], th)
	}
	rd.last = *cur
	rd.seeded = true
	rd.theme = th.Name
	return len(dirty)
}

func (rd *Renderer) digitColor(d cellDisplay, th *Theme) color.RGBA {
	switch {
	case d.class&classConflict != 0:
		return th.ConflictText
	case d.class&classClue != 0:
		return th.ClueText
	default:
		return th.UserText
	}
}

func (rd *Renderer) paintTile(idx int, d cellDisplay, th *Theme) {
	tile := rd.tiles[idx]
	tile.Clear()

	face := basicfont.Face7x13
	if d.value != 0 {
		text.Draw(tile, fmt.Sprintf("%d", d.value), face,
			cellSize/2-4, cellSize/2+6, rd.digitColor(d, th))
	} else if d.cands != 0 {
		// 3x3 mini-grid of pencil marks inside the cell
		for dig := 1; dig <= 9; dig++ {
			if !maskHas(d.cands, dig) {
				continue
			}
			rr := (dig - 1) / 3
			cc := (dig - 1) % 3
			text.Draw(tile, fmt.Sprintf("%d", dig), face,
				8+cc*18, 18+rr*18, th.PencilText)
		}
	}

	if d.class&classError != 0 {
		vector.StrokeLine(tile, 10, 10, cellSize-10, cellSize-10, 3, th.ErrorMark, true)
	}
}
