package editor

import (
	"log"
	"math"

	"skyraid/events"
	"skyraid/levels"
	"skyraid/repo"
)

// hitExtent is the half-size of an entity's clickable box at scale 1.
const hitExtent = 16.0

// maxUndo bounds the undo stack.
const maxUndo = 100

// Surface is the interactive design canvas: camera, grid, and the in-memory
// entity containers with placement, selection, drag, lock, delete and save.
// All editor state it shares with other components lives in the StateStore;
// the surface never caches a copy of it.
type Surface struct {
	state  *StateStore
	repos  repo.Repository
	Camera *Camera

	level    *levels.LevelData
	entities []*Container

	dragID     string
	dragOffset levels.Position

	undoStack []surfaceSnapshot

	// set when the grid overlay must be rebuilt before the next draw
	gridStale bool

	unsubs []func()
}

type snapEntity struct {
	record levels.BaseEntity
	locked bool
}

type surfaceSnapshot struct {
	entities []snapEntity
}

// NewSurface builds a surface bound to the shared state store and repository.
func NewSurface(state *StateStore, repos repo.Repository, viewportW, viewportH int) *Surface {
	s := &Surface{
		state:     state,
		repos:     repos,
		Camera:    NewCamera(viewportW, viewportH),
		gridStale: true,
	}
	s.unsubs = append(s.unsubs,
		state.Bus().Subscribe(events.GridSizeChange, func(any) { s.gridStale = true }),
		state.Bus().Subscribe(events.GridVisibilityChange, func(any) { s.gridStale = true }),
	)
	return s
}

// Teardown releases the surface's subscriptions. Safe to call twice.
func (s *Surface) Teardown() {
	for _, u := range s.unsubs {
		u()
	}
	s.unsubs = nil
}

// LoadLevel replaces the working set with the given level's entities.
func (s *Surface) LoadLevel(lvl *levels.LevelData) {
	s.level = lvl
	s.entities = s.entities[:0]
	for _, rec := range lvl.Entities {
		s.entities = append(s.entities, NewContainer(rec))
	}
	s.dragID = ""
	s.undoStack = nil
	s.Camera.Reset()
	s.gridStale = true
	s.state.ClearSelection()
	s.state.SetCurrentLevelID(lvl.ID)
	s.state.SetDirty(false)
}

// Level returns the level record backing the surface (settings/metadata; the
// entity list is only refreshed on save).
func (s *Surface) Level() *levels.LevelData {
	return s.level
}

// Entities returns the live containers.
func (s *Surface) Entities() []*Container {
	return s.entities
}

// EntityRecords serializes the working set, preserving every variant field
// already present on the records.
func (s *Surface) EntityRecords() []levels.BaseEntity {
	out := make([]levels.BaseEntity, 0, len(s.entities))
	for _, c := range s.entities {
		out = append(out, c.Record())
	}
	return out
}

func (s *Surface) find(id string) *Container {
	for _, c := range s.entities {
		if c.ID() == id {
			return c
		}
	}
	return nil
}

// EntityAt returns the topmost container whose hit box contains the world
// point, or nil.
func (s *Surface) EntityAt(world levels.Position) *Container {
	for i := len(s.entities) - 1; i >= 0; i-- {
		c := s.entities[i]
		ext := hitExtent * c.Scale
		if math.Abs(world.X-c.Pos.X) <= ext && math.Abs(world.Y-c.Pos.Y) <= ext {
			return c
		}
	}
	return nil
}

// PlaceFromPalette spawns a new entity of type t at the viewport center,
// snapped to the grid, and leaves it selected and draggable. Palette clicks
// deliberately do not place at the cursor.
func (s *Surface) PlaceFromPalette(t levels.EntityType) *Container {
	s.pushUndo()
	pos := Snap(s.Camera.ViewportCenterWorld(), s.state.GridSize())
	c := NewContainer(levels.NewEntity(t, pos))
	s.entities = append(s.entities, c)
	s.state.SelectEntity(c.ID(), false)
	s.beginDrag(c, pos)
	s.state.SetDirty(true)
	return c
}

// Click handles a primary-button press at a screen point. Plain click
// replaces the selection with the hit entity (or clears it on empty canvas);
// shift-click toggles membership. Hitting an unlocked entity starts a drag.
func (s *Surface) Click(screen levels.Position, shift bool) {
	world := s.Camera.ScreenToWorld(screen)
	c := s.EntityAt(world)
	if c == nil {
		if !shift {
			s.state.ClearSelection()
		}
		return
	}
	if shift {
		if s.state.IsSelected(c.ID()) {
			s.state.DeselectEntity(c.ID())
			return
		}
		s.state.SelectEntity(c.ID(), true)
	} else {
		s.state.SelectEntity(c.ID(), false)
	}
	if !c.Locked {
		s.beginDrag(c, world)
	}
}

func (s *Surface) beginDrag(c *Container, pointerWorld levels.Position) {
	s.dragID = c.ID()
	s.dragOffset = levels.Position{X: c.Pos.X - pointerWorld.X, Y: c.Pos.Y - pointerWorld.Y}
}

// Dragging reports whether a drag is in progress.
func (s *Surface) Dragging() bool {
	return s.dragID != ""
}

// DragTo moves the dragged entity so it follows the pointer plus the captured
// offset, snapped to the grid. Locked entities never get here; the record's
// stored position is untouched until DragEnd commits.
func (s *Surface) DragTo(screen levels.Position) {
	c := s.find(s.dragID)
	if c == nil || c.Locked {
		return
	}
	world := s.Camera.ScreenToWorld(screen)
	target := levels.Position{X: world.X + s.dragOffset.X, Y: world.Y + s.dragOffset.Y}
	c.Pos = Snap(target, s.state.GridSize())
}

// DragEnd commits the final snapped position into the persisted record.
func (s *Surface) DragEnd() {
	c := s.find(s.dragID)
	s.dragID = ""
	if c == nil {
		return
	}
	if c.Pos != c.record.Position {
		s.pushUndo()
		c.Commit()
		s.state.SetDirty(true)
	}
}

// ToggleLock flips the lock flag. Locking has no side effect beyond blocking
// drag and delete.
func (s *Surface) ToggleLock(id string) {
	if c := s.find(id); c != nil {
		c.Locked = !c.Locked
	}
}

// Delete removes the entity and deselects it. Deleting a locked entity is a
// no-op, not an error.
func (s *Surface) Delete(id string) {
	for i, c := range s.entities {
		if c.ID() != id {
			continue
		}
		if c.Locked {
			return
		}
		s.pushUndo()
		s.entities = append(s.entities[:i], s.entities[i+1:]...)
		if s.dragID == id {
			s.dragID = ""
		}
		s.state.DeselectEntity(id)
		s.state.SetDirty(true)
		return
	}
}

// DeleteSelected deletes every selected, unlocked entity.
func (s *Surface) DeleteSelected() {
	for _, id := range s.state.SelectedIDs() {
		s.Delete(id)
	}
}

// Pan scrolls the camera vertically and marks the grid stale only when the
// rounded scroll position actually moved.
func (s *Surface) Pan(wheelDY float64) {
	if s.Camera.Pan(wheelDY) {
		s.gridStale = true
	}
}

// Save serializes the working set, synthesizes a spawn point if the level has
// none, and persists through the repository. The returned id is authoritative
// and is propagated into both the surface and the state store before the
// dirty flag clears.
func (s *Surface) Save() (string, error) {
	if s.level == nil {
		s.level = s.repos.CreateEmptyLevel(levels.Settings{})
	}
	s.level.Entities = s.EntityRecords()
	s.level.EnsurePlayerStart()

	id, err := s.repos.SaveLevel(s.level)
	if err != nil {
		return "", err
	}
	if id != s.level.ID {
		log.Printf("save returned authoritative level id %s (was %s)", id, s.level.ID)
		s.level.ID = id
	}
	s.state.SetCurrentLevelID(id)

	// Pick up anything SaveLevel synthesized (spawn point, assigned ids).
	s.entities = s.entities[:0]
	for _, rec := range s.level.Entities {
		s.entities = append(s.entities, NewContainer(rec))
	}
	s.state.SetDirty(false)
	return id, nil
}

func (s *Surface) pushUndo() {
	snap := surfaceSnapshot{entities: make([]snapEntity, 0, len(s.entities))}
	for _, c := range s.entities {
		snap.entities = append(snap.entities, snapEntity{record: c.StoredRecord(), locked: c.Locked})
	}
	if len(s.undoStack) >= maxUndo {
		s.undoStack = s.undoStack[1:]
	}
	s.undoStack = append(s.undoStack, snap)
}

// Undo restores the previous entity snapshot.
func (s *Surface) Undo() {
	if len(s.undoStack) == 0 {
		return
	}
	snap := s.undoStack[len(s.undoStack)-1]
	s.undoStack = s.undoStack[:len(s.undoStack)-1]
	s.entities = s.entities[:0]
	for _, se := range snap.entities {
		c := NewContainer(se.record)
		c.Locked = se.locked
		s.entities = append(s.entities, c)
	}
	s.dragID = ""
	s.state.ClearSelection()
	s.state.SetDirty(true)
}
