package main

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

type rect struct {
	x, y, w, h int
}

func (r rect) contains(mx, my int) bool {
	return mx >= r.x && my >= r.y && mx < r.x+r.w && my < r.y+r.h
}

func difficultyButtons() [3]rect {
	const bw, bh, gap = 330, 55, 10
	bx := (screenW - bw) / 2
	by := (screenH-3*bh-2*gap)/2 + 20
	return [3]rect{
		{bx, by, bw, bh},
		{bx, by + bh + gap, bw, bh},
		{bx, by + 2*(bh+gap), bw, bh},
	}
}

var sidebarLabels = [sidebarCount]string{
	"New (N)",
	"Restart (S)",
	"Pencil (P)",
	"Hints (H)",
	"Check (C)",
	"Help (I)",
	"Quit (Q)",
}

func sidebarButtons() [sidebarCount]rect {
	const bw, bh, step = 130, 36, 48
	var out [sidebarCount]rect
	for i := range out {
		out[i] = rect{15, boardY + i*step, bw, bh}
	}
	return out
}

func (g *Game) drawSidebar(screen *ebiten.Image) {
	th := g.theme
	for i, r := range sidebarButtons() {
		g.drawRect(screen, r.x, r.y, r.w, r.h, th.ButtonBg)
		g.drawOutline(screen, r.x, r.y, r.w, r.h, 2, th.DialogBox)
		label := sidebarLabels[i]
		if i == sidebarPencil {
			label = fmt.Sprintf("Pencil %s", onOff(g.pencil))
		}
		g.drawTextCentered(screen, label, r.x+r.w/2, r.y+r.h/2, th.ButtonTxt)
	}
}

func (g *Game) drawRect(screen *ebiten.Image, x, y, w, h int, clr color.Color) {
	limits := math.MaxUint16
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w), float64(h))
	op.GeoM.Translate(float64(x), float64(y))

	red, green, blue, a := clr.RGBA()
	op.ColorScale.Scale(float32(red)/float32(limits), float32(green)/float32(limits), float32(blue)/float32(limits), float32(a)/float32(limits))
	screen.DrawImage(g.pixel, op)
}

func (g *Game) drawOutline(screen *ebiten.Image, x, y, w, h, t int, col color.Color) {
	g.drawRect(screen, x, y, w, t, col)
	g.drawRect(screen, x, y+h-t, w, t, col)
	g.drawRect(screen, x, y, t, h, col)
	g.drawRect(screen, x+w-t, y, t, h, col)
}

func (g *Game) drawTextCentered(screen *ebiten.Image, s string, cx, cy int, col color.Color) {
	text.Draw(screen, s, basicfont.Face7x13, cx-len(s)*7/2, cy+4, col)
}

func (g *Game) Draw(screen *ebiten.Image) {
	th := g.theme
	screen.Fill(th.Bg)

	if g.sess != nil {
		g.drawBoard(screen)
	} else {
		g.drawTextCentered(screen, "Fetching puzzle from the service...", screenW/2, screenH/2, th.HudText)
	}
	g.drawSidebar(screen)
	g.drawHUD(screen)
	g.drawStatus(screen)

	switch g.state {
	case statePickDifficulty:
		g.drawDifficultyDialog(screen)
	case stateSolved:
		g.drawSolvedDialog(screen)
	case stateHelp:
		g.drawHelpDialog(screen)
	}
}

func (g *Game) drawBoard(screen *ebiten.Image) {
	th := g.theme

	g.drawRect(screen, boardX-6, boardY-6, cellSize*9+12, cellSize*9+12, th.BoardBg)

	// Dynamic backgrounds first: selection and same-value highlight are
	// recomputed from scratch every frame, never cached in the tiles.
	for i := 0; i < N; i++ {
		r, c := cellCoords(i)
		x := boardX + c*cellSize
		y := boardY + r*cellSize

		base := th.CellBase
		if g.highlight != 0 && g.sess.Value(i) == g.highlight {
			base = th.Highlight
		}
		if i == g.selected {
			base = th.CellSelected
		}
		g.drawRect(screen, x, y, cellSize, cellSize, base)
	}

	// Reconcile the tile cache, then blit every tile.
	disp := computeDisplay(g.sess, g.conflicts, g.errors)
	g.renderer.Sync(&disp, th)
	for i := 0; i < N; i++ {
		r, c := cellCoords(i)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(boardX+c*cellSize), float64(boardY+r*cellSize))
		screen.DrawImage(g.renderer.Tile(i), op)
	}

	for i := 0; i <= 9; i++ {
		w := 2
		col := th.GridThin
		if i%3 == 0 {
			w = 5
			col = th.GridThick
		}
		g.drawRect(screen, boardX+i*cellSize-w/2, boardY, w, cellSize*9, col)
		g.drawRect(screen, boardX, boardY+i*cellSize-w/2, cellSize*9, w, col)
	}

	r, c := cellCoords(g.selected)
	g.drawOutline(screen, boardX+c*cellSize+2, boardY+r*cellSize+2, cellSize-4, cellSize-4, 3, th.CellSelected)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	th := g.theme
	face := basicfont.Face7x13
	y := 18

	text.Draw(screen,
		"Sudoku |  N new  |  S start over  |  P pencil  |  H hints  |  C check  |  U/Y undo/redo  |  A auto-elim  |  T theme  |  I help  |  Q quit",
		face, 10, y, th.HudText)

	y += 22
	line := fmt.Sprintf("Time: %s   |   Difficulty: %s   |   Pencil: %s   |   Auto-eliminate: %s",
		g.watch.Clock(), g.difficulty, onOff(g.pencil), onOff(g.settings.AutoEliminate))
	if g.busy() {
		line += "   |   waiting for service..."
	}
	text.Draw(screen, line, face, 10, y, th.HudText)

	if g.sess != nil {
		y += 22
		r, c := cellCoords(g.selected)
		var detail string
		if v := g.sess.Value(g.selected); v != 0 {
			detail = fmt.Sprintf("Selected r%d c%d value: %d", r+1, c+1, v)
		} else {
			detail = fmt.Sprintf("Selected r%d c%d candidates: %v", r+1, c+1, maskToDigits(g.sess.Candidates(g.selected)))
		}
		text.Draw(screen, detail, face, 10, y, th.HudText)
	}
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	col := g.theme.Info
	switch g.statusKind {
	case statusSuccess:
		col = g.theme.Success
	case statusFailure:
		col = g.theme.Failure
	}
	g.drawTextCentered(screen, g.status, screenW/2, screenH-24, col)
}

func (g *Game) drawDialogBox(screen *ebiten.Image, w, h int) rect {
	th := g.theme
	g.drawRect(screen, 0, 0, screenW, screenH, th.Overlay)
	box := rect{(screenW - w) / 2, (screenH - h) / 2, w, h}
	g.drawRect(screen, box.x, box.y, box.w, box.h, th.DialogBg)
	g.drawOutline(screen, box.x, box.y, box.w, box.h, 3, th.DialogBox)
	return box
}

func (g *Game) drawDifficultyDialog(screen *ebiten.Image) {
	th := g.theme
	box := g.drawDialogBox(screen, 440, 350)
	g.drawTextCentered(screen, "Select Difficulty", box.x+box.w/2, box.y+40, th.HudText)

	labels := [3]string{"Easy (E)", "Medium (M)", "Hard (H)"}
	for i, r := range difficultyButtons() {
		g.drawRect(screen, r.x, r.y, r.w, r.h, th.ButtonBg)
		g.drawOutline(screen, r.x, r.y, r.w, r.h, 2, th.DialogBox)
		g.drawTextCentered(screen, labels[i], r.x+r.w/2, r.y+r.h/2, th.ButtonTxt)
	}
}

func (g *Game) drawSolvedDialog(screen *ebiten.Image) {
	th := g.theme
	box := g.drawDialogBox(screen, 550, 300)
	g.drawTextCentered(screen, "Congratulations!", box.x+box.w/2, box.y+80, th.Success)
	g.drawTextCentered(screen, fmt.Sprintf("You solved the puzzle in %s.", g.watch.Clock()), box.x+box.w/2, box.y+150, th.HudText)
	g.drawTextCentered(screen, "Click anywhere to start a new game", box.x+box.w/2, box.y+220, th.ButtonTxt)
}

var helpLines = []string{
	"Keyboard Shortcuts:",
	"  Q - Quit",
	"  N - New Game",
	"  S - Start Over",
	"  P - Toggle Pencil Mode",
	"  H - Fill Hint Pencils (from the service)",
	"  C - Check Solution",
	"  U / Ctrl+Z - Undo        Y - Redo",
	"  A - Toggle Auto-Eliminate",
	"  T - Toggle Dark/Light Theme",
	"  1-9 - Enter / Pencil Number",
	"  Backspace - Delete Number",
	"",
	"Basic Strategy:",
	"  1. Naked singles: cells where only one digit fits.",
	"     Use hint pencils (H) to see the candidates.",
	"  2. Hidden singles: a digit that fits only one cell",
	"     within a row, column, or 3x3 box.",
	"",
	"Press any key to close this window.",
}

func (g *Game) drawHelpDialog(screen *ebiten.Image) {
	th := g.theme
	box := g.drawDialogBox(screen, 620, 560)
	g.drawTextCentered(screen, "Help & Strategy", box.x+box.w/2, box.y+40, th.HudText)
	y := box.y + 90
	for _, line := range helpLines {
		text.Draw(screen, line, basicfont.Face7x13, box.x+40, y, th.ButtonTxt)
		y += 21
	}
}
