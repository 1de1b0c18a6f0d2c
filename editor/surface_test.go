package editor

import (
	"testing"

	"skyraid/events"
	"skyraid/levels"
	"skyraid/repo"
)

func newTestSurface(t *testing.T) (*Surface, *StateStore, *repo.MemoryRepository) {
	t.Helper()
	bus := events.NewBus()
	state := NewStateStore(bus)
	repos := repo.NewMemoryRepository()
	s := NewSurface(state, repos, 800, 600)
	t.Cleanup(s.Teardown)
	s.LoadLevel(repos.CreateEmptyLevel(levels.Settings{Name: "t"}))
	return s, state, repos
}

func TestPlaceFromPaletteAtViewportCenter(t *testing.T) {
	s, state, _ := newTestSurface(t)

	c := s.PlaceFromPalette(levels.TypeEnemySpawner)
	s.DragEnd()

	want := Snap(levels.Position{X: 400, Y: 300}, state.GridSize())
	if c.Pos != want {
		t.Fatalf("placed at %+v, want snapped viewport center %+v", c.Pos, want)
	}
	if !state.IsSelected(c.ID()) {
		t.Fatalf("new entity must be selected")
	}
	if !state.IsDirty() {
		t.Fatalf("placement must dirty the level")
	}
}

func TestPlaceFollowsCamera(t *testing.T) {
	s, state, _ := newTestSurface(t)
	s.Pan(-4)

	c := s.PlaceFromPalette(levels.TypeObstacle)
	s.DragEnd()

	want := Snap(s.Camera.ViewportCenterWorld(), state.GridSize())
	if c.Pos != want {
		t.Fatalf("placed at %+v, want %+v", c.Pos, want)
	}
}

func TestClickSelection(t *testing.T) {
	s, state, _ := newTestSurface(t)

	a := s.PlaceFromPalette(levels.TypeObstacle)
	s.DragEnd()
	a.Pos = levels.Position{X: 100, Y: 100}
	a.Commit()
	b := s.PlaceFromPalette(levels.TypeObstacle)
	s.DragEnd()
	b.Pos = levels.Position{X: 300, Y: 300}
	b.Commit()

	s.Click(levels.Position{X: 100, Y: 100}, false)
	if !state.IsSelected(a.ID()) || state.IsSelected(b.ID()) {
		t.Fatalf("plain click should select exactly a: %v", state.SelectedIDs())
	}
	s.DragEnd()

	// Shift-click adds, a second shift-click removes.
	s.Click(levels.Position{X: 300, Y: 300}, true)
	s.DragEnd()
	if len(state.SelectedIDs()) != 2 {
		t.Fatalf("shift click should extend: %v", state.SelectedIDs())
	}
	s.Click(levels.Position{X: 300, Y: 300}, true)
	if state.IsSelected(b.ID()) {
		t.Fatalf("shift click should toggle off")
	}

	// Clicking empty canvas clears the selection.
	s.Click(levels.Position{X: 700, Y: 50}, false)
	if len(state.SelectedIDs()) != 0 {
		t.Fatalf("empty-canvas click should clear: %v", state.SelectedIDs())
	}
}

func TestDragSnapsAndCommits(t *testing.T) {
	s, state, _ := newTestSurface(t)

	c := s.PlaceFromPalette(levels.TypeEnemySpawner)
	s.DragEnd()
	state.SetDirty(false)

	start := c.Pos
	s.Click(levels.Position{X: start.X, Y: start.Y}, false)
	if !s.Dragging() {
		t.Fatalf("clicking an unlocked entity should start a drag")
	}

	s.DragTo(levels.Position{X: start.X + 50, Y: start.Y + 50})
	if got := c.Pos; got != Snap(levels.Position{X: start.X + 50, Y: start.Y + 50}, state.GridSize()) {
		t.Fatalf("drag position not snapped: %+v", got)
	}
	// The stored record holds the old position until the drag commits.
	if c.StoredRecord().Position != start {
		t.Fatalf("record mutated mid-drag: %+v", c.StoredRecord().Position)
	}

	s.DragEnd()
	if c.StoredRecord().Position != c.Pos {
		t.Fatalf("DragEnd must commit the final position")
	}
	if !state.IsDirty() {
		t.Fatalf("a committed move must dirty the level")
	}
}

func TestLockedEntityInvariants(t *testing.T) {
	s, state, _ := newTestSurface(t)

	c := s.PlaceFromPalette(levels.TypeObstacle)
	s.DragEnd()
	pos := c.Pos
	s.ToggleLock(c.ID())

	// A locked entity is still selectable but never draggable.
	s.Click(levels.Position{X: pos.X, Y: pos.Y}, false)
	if !state.IsSelected(c.ID()) {
		t.Fatalf("locked entity should still select")
	}
	if s.Dragging() {
		t.Fatalf("locked entity must not start a drag")
	}

	// Deleting a locked entity is a silent no-op.
	s.Delete(c.ID())
	if len(s.Entities()) != 1 {
		t.Fatalf("locked entity was deleted")
	}
	s.DeleteSelected()
	if len(s.Entities()) != 1 {
		t.Fatalf("DeleteSelected removed a locked entity")
	}

	// Unlocking restores both.
	s.ToggleLock(c.ID())
	s.Delete(c.ID())
	if len(s.Entities()) != 0 {
		t.Fatalf("unlocked entity should delete")
	}
}

func TestDeleteDeselects(t *testing.T) {
	s, state, _ := newTestSurface(t)
	c := s.PlaceFromPalette(levels.TypeDecoration)
	s.DragEnd()

	s.Delete(c.ID())
	if state.IsSelected(c.ID()) {
		t.Fatalf("deleted entity left in selection")
	}
	if len(s.Entities()) != 0 {
		t.Fatalf("entity not removed")
	}
}

func TestSavePropagatesAuthoritativeID(t *testing.T) {
	s, state, repos := newTestSurface(t)
	s.Level().ID = ""
	s.PlaceFromPalette(levels.TypeEnemySpawner)
	s.DragEnd()

	id, err := s.Save()
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if id == "" {
		t.Fatalf("save must return an id")
	}
	if s.Level().ID != id || state.CurrentLevelID() != id {
		t.Fatalf("authoritative id not propagated: level=%s state=%s", s.Level().ID, state.CurrentLevelID())
	}
	if state.IsDirty() {
		t.Fatalf("save must clear the dirty flag")
	}

	stored, err := repos.LoadLevel(id)
	if err != nil {
		t.Fatalf("load back: %v", err)
	}
	if !stored.HasPlayerStart() {
		t.Fatalf("save must synthesize a spawn point")
	}
	// The synthesized spawn point shows up in the working set too.
	found := false
	for _, c := range s.Entities() {
		if c.Type() == levels.TypePlayerStart {
			found = true
		}
	}
	if !found {
		t.Fatalf("working set not refreshed after save")
	}
}

func TestUndoRestoresSnapshot(t *testing.T) {
	s, state, _ := newTestSurface(t)

	a := s.PlaceFromPalette(levels.TypeObstacle)
	s.DragEnd()
	s.PlaceFromPalette(levels.TypeTrigger)
	s.DragEnd()
	if len(s.Entities()) != 2 {
		t.Fatalf("setup: %d entities", len(s.Entities()))
	}

	s.Undo()
	if len(s.Entities()) != 1 {
		t.Fatalf("undo should drop the second placement, have %d", len(s.Entities()))
	}
	if s.Entities()[0].ID() != a.ID() {
		t.Fatalf("wrong entity survived undo")
	}
	if !state.IsDirty() {
		t.Fatalf("undo is an edit; level must stay dirty")
	}

	s.Undo()
	if len(s.Entities()) != 0 {
		t.Fatalf("second undo should drop the first placement")
	}
	// Undo on an empty stack is a no-op.
	s.Undo()
}

func TestUndoMoveRestoresPosition(t *testing.T) {
	s, _, _ := newTestSurface(t)

	c := s.PlaceFromPalette(levels.TypeObstacle)
	s.DragEnd()
	orig := c.Pos

	s.Click(levels.Position{X: orig.X, Y: orig.Y}, false)
	s.DragTo(levels.Position{X: orig.X + 100, Y: orig.Y})
	s.DragEnd()
	if s.Entities()[0].Pos == orig {
		t.Fatalf("setup: move did not apply")
	}

	s.Undo()
	if got := s.Entities()[0].Pos; got != orig {
		t.Fatalf("undo restored %+v, want %+v", got, orig)
	}
}
