package editor

import (
	"fmt"

	"github.com/ebitenui/ebitenui"
	ebuiinput "github.com/ebitenui/ebitenui/input"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"skyraid/repo"
	"skyraid/res"
)

// DesignStep is the interactive canvas step. The palette/toolbar UI is built
// once on first activation and reused; activating twice never duplicates it.
type DesignStep struct {
	state    *StateStore
	repos    repo.Repository
	surface  *Surface
	workflow *Workflow
	table    *res.Table

	ui      *ebitenui.UI
	gridImg *ebiten.Image
	built   bool
	active  bool
}

func NewDesignStep(state *StateStore, repos repo.Repository, surface *Surface, workflow *Workflow, table *res.Table) *DesignStep {
	return &DesignStep{
		state:    state,
		repos:    repos,
		surface:  surface,
		workflow: workflow,
		table:    table,
	}
}

func (d *DesignStep) Activate(levelID string) {
	if !d.built && d.table != nil {
		d.ui = BuildEditorUI(d.state, d.surface, d.workflow)
		d.built = true
	}
	// Returning from a test or publish keeps the live working set; only an
	// explicit different id (or an empty surface) loads from the repository.
	current := ""
	if d.surface.Level() != nil {
		current = d.surface.Level().ID
	}
	if levelID != "" && levelID != current {
		d.surface.LoadLevel(repo.Resolve(d.repos, levelID, d.surface.EntityRecords()))
	} else if d.surface.Level() == nil {
		d.surface.LoadLevel(repo.Resolve(d.repos, "", nil))
	}
	d.active = true
}

func (d *DesignStep) Deactivate() {
	if !d.active {
		return
	}
	d.active = false
	// The grid overlay is rebuilt on the next activation.
	d.gridImg = nil
}

func (d *DesignStep) Update() {
	if !d.active {
		return
	}
	suppressHotkeys := false
	if d.ui != nil {
		if fw := d.ui.GetFocusedWidget(); fw != nil {
			if _, ok := fw.(*widget.TextInput); ok {
				suppressHotkeys = true
			}
		}
		d.ui.Update()
	}
	if !suppressHotkeys && inpututil.IsKeyJustPressed(ebiten.KeyT) && ebiten.IsKeyPressed(ebiten.KeyControl) {
		d.workflow.ChangeStep(StepTest, d.state.CurrentLevelID())
		return
	}
	d.surface.HandleInput(ebuiinput.UIHovered, suppressHotkeys)
}

func (d *DesignStep) Draw(screen *ebiten.Image) {
	if !d.active {
		return
	}
	if d.table != nil {
		d.surface.Draw(screen, d.table, &d.gridImg)
	}
	if d.ui != nil {
		d.ui.Draw(screen)
	}
	dirty := ""
	if d.state.IsDirty() {
		dirty = " *"
	}
	name := ""
	if lvl := d.surface.Level(); lvl != nil {
		name = lvl.Settings.Name
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s%s  tool: %s  grid: %d", name, dirty, d.state.Tool(), d.state.GridSize()))
}
