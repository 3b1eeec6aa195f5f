package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	log "github.com/sirupsen/logrus"
)

const (
	screenW  = 820
	screenH  = 780
	cellSize = 60
	boardX   = 160
	boardY   = 120
)

type gameState int

const (
	statePlaying gameState = iota
	statePickDifficulty
	stateSolved
	stateHelp
)

var difficulties = []string{"easy", "medium", "hard"}

// Sidebar button order, matching sidebarButtons and sidebarLabels.
const (
	sidebarNew = iota
	sidebarRestart
	sidebarPencil
	sidebarHints
	sidebarCheck
	sidebarHelp
	sidebarQuit
	sidebarCount
)

type Game struct {
	client *Client

	sess *Session
	hist *History

	state      gameState
	difficulty string
	selected   int
	highlight  int // digit lit up across the board, 0 = none
	pencil     bool

	conflicts cellSet
	errors    cellSet

	status     string
	statusKind statusKind

	watch Stopwatch

	settings Settings
	theme    *Theme

	renderer *Renderer
	pixel    *ebiten.Image

	// non-nil while a service call is outstanding; every state-mutating
	// entry point is rejected until the response closure has been applied
	pending chan func(*Game)

	quit bool
}

func (g *Game) busy() bool { return g.pending != nil }

func (g *Game) setStatus(msg string, kind statusKind) {
	g.status = msg
	g.statusKind = kind
}

func (g *Game) Layout(outsideW, outsideH int) (int, int) { return screenW, screenH }

// ---- service calls ----

func (g *Game) fetchNewGame(diff string) {
	if g.busy() {
		return
	}
	g.setStatus(fmt.Sprintf("Generating '%s' puzzle...", diff), statusInfo)
	g.state = statePlaying
	done := make(chan func(*Game), 1)
	g.pending = done
	client := g.client
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		res, err := client.NewGame(ctx, diff)
		done <- func(g *Game) {
			if err != nil {
				g.setStatus("Could not reach the puzzle service.", statusFailure)
				return
			}
			g.applyNewGame(diff, res)
		}
	}()
}

func (g *Game) applyNewGame(diff string, res *NewGameResult) {
	g.sess = NewSession(res.Board, res.Clues, res.Solution)
	g.hist = NewHistory(g.sess.Snapshot())
	g.difficulty = diff
	g.selected = 0
	g.highlight = 0
	g.conflicts = cellSet{}
	g.errors = cellSet{}
	g.state = statePlaying
	g.watch.Reset()
	g.watch.Start()
	g.setStatus(fmt.Sprintf("New '%s' game started.", diff), statusInfo)
}

func (g *Game) fetchHints() {
	if g.busy() || g.sess == nil {
		return
	}
	g.setStatus("Fetching pencil marks...", statusInfo)
	done := make(chan func(*Game), 1)
	g.pending = done
	client := g.client
	board := g.sess.Board()
	removed := g.sess.removed
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
		defer cancel()
		res, err := client.Hints(ctx, board, removed)
		done <- func(g *Game) {
			if err != nil {
				g.setStatus("Could not fetch hints from the puzzle service.", statusFailure)
				return
			}
			g.applyHints(res)
		}
	}()
}

func (g *Game) applyHints(res *HintResult) {
	before := g.sess.Snapshot()
	for i := 0; i < N; i++ {
		if res.Valid[i] && g.sess.Value(i) == 0 {
			g.sess.ReplaceCandidates(i, res.Masks[i])
		}
	}
	if after := g.sess.Snapshot(); after != before {
		g.hist.Push(after)
	}
	g.setStatus("Filled in all possible pencil marks.", statusInfo)
}

// ---- board mutations ----

func (g *Game) commitDigit(d int) {
	idx := g.selected
	if g.sess.IsClue(idx) {
		return
	}
	if g.pencil {
		g.sess.ToggleCandidate(idx, d)
		g.highlight = 0
		g.conflicts = cellSet{}
		g.errors = g.sess.FindErrors()
		g.hist.Push(g.sess.Snapshot())
		return
	}
	g.sess.SetValue(idx, d)
	if g.settings.AutoEliminate {
		g.sess.PropagateElimination(idx, d)
	}
	g.highlight = d
	r, c := cellCoords(idx)
	g.conflicts = g.sess.FindConflicts(r, c, d)
	g.errors = g.sess.FindErrors()
	g.hist.Push(g.sess.Snapshot())
	g.checkCompletion(false)
}

func (g *Game) clearCell() {
	idx := g.selected
	if g.sess.IsClue(idx) {
		return
	}
	if g.sess.Value(idx) == 0 && g.sess.Candidates(idx) == 0 && g.sess.Removed(idx) == 0 {
		return
	}
	g.sess.Clear(idx)
	g.highlight = 0
	g.conflicts = cellSet{}
	g.errors = g.sess.FindErrors()
	g.hist.Push(g.sess.Snapshot())
}

func (g *Game) checkCompletion(manual bool) {
	if !g.sess.Complete() {
		if manual {
			g.setStatus("Board is not yet complete.", statusInfo)
		}
		return
	}
	if g.sess.Solved() {
		g.conflicts = cellSet{}
		g.errors = cellSet{}
		g.watch.Stop()
		g.state = stateSolved
		g.setStatus(fmt.Sprintf("Solved in %s. Congratulations!", g.watch.Clock()), statusSuccess)
		log.WithFields(log.Fields{"difficulty": g.difficulty, "elapsed": g.watch.Elapsed()}).Info("puzzle solved")
		return
	}
	g.errors = g.sess.FindErrors()
	if manual {
		g.setStatus("Incorrect cells are marked in red.", statusFailure)
	}
}

func (g *Game) restart() {
	g.sess.ResetToClues()
	g.hist.Reset(g.sess.Snapshot())
	g.highlight = 0
	g.conflicts = cellSet{}
	g.errors = cellSet{}
	g.state = statePlaying
	g.watch.Reset()
	g.watch.Start()
	g.setStatus("Game restarted. Good luck!", statusInfo)
}

func (g *Game) undo() {
	snap, ok := g.hist.Undo()
	if !ok {
		return
	}
	g.sess.Restore(snap)
	g.highlight = 0
	g.conflicts = cellSet{}
	g.errors = g.sess.FindErrors()
}

func (g *Game) redo() {
	snap, ok := g.hist.Redo()
	if !ok {
		return
	}
	g.sess.Restore(snap)
	g.highlight = 0
	g.conflicts = cellSet{}
	g.errors = g.sess.FindErrors()
}

// ---- input ----

func anyInput() bool {
	return len(inpututil.AppendJustPressedKeys(nil)) > 0 ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
}

func (g *Game) toggleTheme() {
	if g.settings.Theme == "dark" {
		g.settings.Theme = "light"
	} else {
		g.settings.Theme = "dark"
	}
	g.theme = themeByName(g.settings.Theme)
	saveSettings(g.settings)
}

func (g *Game) Update() error {
	// Deliver at most one completed service response per tick.
	if g.pending != nil {
		select {
		case fn := <-g.pending:
			g.pending = nil
			fn(g)
		default:
		}
	}

	if g.quit || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.toggleTheme()
	}

	switch g.state {
	case stateHelp:
		if anyInput() {
			g.state = statePlaying
		}
		return nil
	case stateSolved:
		if anyInput() {
			g.state = statePickDifficulty
		}
		return nil
	case statePickDifficulty:
		g.updatePickDifficulty()
		return nil
	}

	g.updatePlaying()
	return nil
}

func (g *Game) updatePickDifficulty() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && g.sess != nil {
		g.state = statePlaying
		return
	}
	hotkeys := [][2]ebiten.Key{
		{ebiten.KeyE, ebiten.Key1},
		{ebiten.KeyM, ebiten.Key2},
		{ebiten.KeyH, ebiten.Key3},
	}
	for i, keys := range hotkeys {
		if inpututil.IsKeyJustPressed(keys[0]) || inpututil.IsKeyJustPressed(keys[1]) {
			g.fetchNewGame(difficulties[i])
			return
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		for i, r := range difficultyButtons() {
			if r.contains(mx, my) {
				g.fetchNewGame(difficulties[i])
				return
			}
		}
	}
}

func (g *Game) updatePlaying() {
	// Selection and overlays stay live even while a request is in flight.
	if inpututil.IsKeyJustPressed(ebiten.KeyI) {
		g.state = stateHelp
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		if !g.busy() {
			g.state = statePickDifficulty
		}
		return
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		if g.clickSidebar(mx, my) {
			return
		}
		if g.sess != nil {
			if idx, ok := pointToCell(mx, my); ok {
				g.selected = idx
				g.highlight = g.sess.Value(idx)
			}
		}
	}

	if g.sess == nil {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) {
		g.selected = (g.selected/9)*9 + (g.selected%9+8)%9
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) {
		g.selected = (g.selected/9)*9 + (g.selected%9+1)%9
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		r := (g.selected/9 + 8) % 9
		g.selected = r*9 + (g.selected % 9)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
		r := (g.selected/9 + 1) % 9
		g.selected = r*9 + (g.selected % 9)
	}

	// Everything below mutates game state and is gated on the busy flag.
	if g.busy() {
		return
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		g.restart()
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.pencil = !g.pencil
		g.setStatus(fmt.Sprintf("Pencil mode %s.", onOff(g.pencil)), statusInfo)
	case inpututil.IsKeyJustPressed(ebiten.KeyA):
		g.settings.AutoEliminate = !g.settings.AutoEliminate
		saveSettings(g.settings)
		g.setStatus(fmt.Sprintf("Auto-eliminate %s.", onOff(g.settings.AutoEliminate)), statusInfo)
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		g.fetchHints()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.checkCompletion(true)
	case inpututil.IsKeyJustPressed(ebiten.KeyU),
		ebiten.IsKeyPressed(ebiten.KeyControl) && inpututil.IsKeyJustPressed(ebiten.KeyZ):
		g.undo()
	case inpututil.IsKeyJustPressed(ebiten.KeyY):
		g.redo()
	case inpututil.IsKeyJustPressed(ebiten.KeyBackspace),
		inpututil.IsKeyJustPressed(ebiten.KeyDelete):
		g.clearCell()
	default:
		if d, ok := pressedDigit(); ok {
			g.commitDigit(d)
		}
	}
}

func (g *Game) clickSidebar(mx, my int) bool {
	for i, r := range sidebarButtons() {
		if r.contains(mx, my) {
			g.sidebarAction(i)
			return true
		}
	}
	return false
}

// sidebarAction mirrors the hotkeys; the mutating buttons honor the same
// busy-flag gate as keyboard input.
func (g *Game) sidebarAction(i int) {
	switch i {
	case sidebarHelp:
		g.state = stateHelp
		return
	case sidebarQuit:
		g.quit = true
		return
	}
	if g.busy() {
		return
	}
	if g.sess == nil && i != sidebarNew {
		return
	}
	switch i {
	case sidebarNew:
		g.state = statePickDifficulty
	case sidebarRestart:
		g.restart()
	case sidebarPencil:
		g.pencil = !g.pencil
		g.setStatus(fmt.Sprintf("Pencil mode %s.", onOff(g.pencil)), statusInfo)
	case sidebarHints:
		g.fetchHints()
	case sidebarCheck:
		g.checkCompletion(true)
	}
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}

// ---- setup ----

func NewGameApp(service string) *Game {
	g := &Game{
		client:    NewClient(service),
		settings:  loadSettings(),
		renderer:  NewRenderer(),
		conflicts: cellSet{},
		errors:    cellSet{},
	}
	g.theme = themeByName(g.settings.Theme)
	g.pixel = ebiten.NewImage(1, 1)
	g.pixel.Fill(color.White)
	g.fetchNewGame("hard")
	return g
}

func defaultService() string {
	if v := os.Getenv("SUDOKU_SERVICE"); v != "" {
		return v
	}
	return "http://localhost:8000/sudoku"
}

func main() {
	service := flag.String("service", defaultService(), "base URL of the puzzle service")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	ebiten.SetWindowTitle("Sudoku")
	ebiten.SetWindowSize(screenW, screenH)
	if err := ebiten.RunGame(NewGameApp(*service)); err != nil {
		log.Fatal(err)
	}
}
