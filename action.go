package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var digitKeys = [10][2]ebiten.Key{
	1: {ebiten.Key1, ebiten.KeyKP1},
	2: {ebiten.Key2, ebiten.KeyKP2},
	3: {ebiten.Key3, ebiten.KeyKP3},
	4: {ebiten.Key4, ebiten.KeyKP4},
	5: {ebiten.Key5, ebiten.KeyKP5},
	6: {ebiten.Key6, ebiten.KeyKP6},
	7: {ebiten.Key7, ebiten.KeyKP7},
	8: {ebiten.Key8, ebiten.KeyKP8},
	9: {ebiten.Key9, ebiten.KeyKP9},
}

// pressedDigit reports a 1..9 key (top row or keypad) going down this tick.
func pressedDigit() (int, bool) {
	for d := 1; d <= 9; d++ {
		if inpututil.IsKeyJustPressed(digitKeys[d][0]) || inpututil.IsKeyJustPressed(digitKeys[d][1]) {
			return d, true
		}
	}
	return 0, false
}

type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusFailure
)

func pointToCell(mx, my int) (int, bool) {
	if mx < boardX || my < boardY || mx >= boardX+cellSize*9 || my >= boardY+cellSize*9 {
		return 0, false
	}
	c := (mx - boardX) / cellSize
	r := (my - boardY) / cellSize
	return r*9 + c, true
}
