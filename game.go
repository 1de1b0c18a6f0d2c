package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"skyraid/bridge"
	"skyraid/editor"
	"skyraid/events"
	"skyraid/repo"
	"skyraid/res"
)

const (
	screenWidth  = 800
	screenHeight = 600
)

var backgroundColor = color.RGBA{R: 0x12, G: 0x12, B: 0x1a, A: 0xff}

// Game hosts one editing session: the state store, the design surface, the
// test bridge and the workflow step machine, all sharing a single event bus.
type Game struct {
	bus      *events.Bus
	state    *editor.StateStore
	surface  *editor.Surface
	workflow *editor.Workflow

	exiting bool
}

// NewGame wires the session together. repos is the primary store, export is
// the directory-backed store published levels are copied into (and the one
// the browse step watches); startLevel optionally jumps straight into design.
func NewGame(repos repo.Repository, export *repo.FileRepository, startLevel string) *Game {
	g := &Game{bus: events.NewBus()}

	g.state = editor.NewStateStore(g.bus)
	g.surface = editor.NewSurface(g.state, repos, screenWidth, screenHeight)
	g.workflow = editor.NewWorkflow(g.state, func() { g.exiting = true })

	br := bridge.New(g.bus, func() {
		g.workflow.ChangeStep(editor.StepDesign, g.state.CurrentLevelID())
	})

	table := res.NewTable()
	watchDir := ""
	if export != nil {
		watchDir = export.Dir()
	}

	g.workflow.AddStep(editor.StepSetup, editor.NewSetupStep(repos, g.workflow))
	g.workflow.AddStep(editor.StepDesign, editor.NewDesignStep(g.state, repos, g.surface, g.workflow, table))
	g.workflow.AddStep(editor.StepTest, editor.NewTestStep(g.state, repos, g.surface, br, table))
	g.workflow.AddStep(editor.StepPublish, editor.NewPublishStep(repos, export, g.surface, g.workflow))
	g.workflow.AddStep(editor.StepBrowse, editor.NewBrowseStep(repos, watchDir, g.workflow))

	if startLevel != "" {
		g.workflow.ChangeStep(editor.StepDesign, startLevel)
	} else {
		g.workflow.ChangeStep(editor.StepBrowse, "")
	}
	return g
}

func (g *Game) Update() error {
	if g.exiting {
		g.surface.Teardown()
		return ebiten.Termination
	}

	if g.workflow.ExitConfirmPending() {
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyY) {
			g.workflow.ConfirmExit()
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyN) {
			g.workflow.CancelExit()
		}
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.workflow.HandleEscape()
		return nil
	}

	g.workflow.Update()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)
	g.workflow.Draw(screen)
	if g.workflow.ExitConfirmPending() {
		ebitenutil.DebugPrintAt(screen, "Exit the editor? Unsaved changes are lost.\n(enter: exit, esc: stay)", screenWidth/2-140, screenHeight/2)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}
