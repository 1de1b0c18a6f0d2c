package editor

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"skyraid/bridge"
	"skyraid/repo"
	"skyraid/res"
)

// TestStep runs the level in place. Editor visuals are hidden for the
// duration simply because only the active step draws; stopping restores them
// by returning to the design step.
type TestStep struct {
	state   *StateStore
	repos   repo.Repository
	surface *Surface
	bridge  *bridge.Bridge
	table   *res.Table

	active bool
}

func NewTestStep(state *StateStore, repos repo.Repository, surface *Surface, br *bridge.Bridge, table *res.Table) *TestStep {
	return &TestStep{
		state:   state,
		repos:   repos,
		surface: surface,
		bridge:  br,
		table:   table,
	}
}

func (t *TestStep) Activate(levelID string) {
	if t.active {
		return
	}
	// Test exactly what the designer sees: the live working set when one
	// exists, the stored level otherwise.
	lvl := t.surface.Level()
	if lvl != nil {
		lvl = lvl.Clone()
		lvl.Entities = t.surface.EntityRecords()
	} else {
		lvl = repo.Resolve(t.repos, levelID, nil)
	}

	cam := t.surface.Camera
	vw, vh := cam.Viewport()
	sess := bridge.NewSession(lvl, cam.ViewportCenterScreen(), cam.ViewportCenterWorld(), vw, vh)
	if err := t.bridge.Start(sess); err != nil {
		log.Printf("test launch refused: %v", err)
		return
	}
	t.active = true
}

func (t *TestStep) Deactivate() {
	if !t.active {
		return
	}
	t.active = false
	t.bridge.Stop()
}

func (t *TestStep) Update() {
	if !t.active {
		return
	}
	t.bridge.Update()
}

func (t *TestStep) Draw(screen *ebiten.Image) {
	if !t.active || t.table == nil {
		return
	}
	r := t.bridge.Runner()
	if r == nil {
		return
	}
	img := t.table.Image(res.MarkerEnemySpawner)
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	for _, e := range r.ActiveEnemies() {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(e.Pos.X-float64(w)/2, e.Pos.Y-float64(h)/2)
		screen.DrawImage(img, op)
	}
	s := r.Snapshot()
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"TEST  kills: %d/%d  score: %d  deaths: %d  (esc to stop)",
		s.EnemiesDefeated, t.bridge.ExpectedEnemiesToDefeat(), s.Score, s.PlayerDeaths))
}
