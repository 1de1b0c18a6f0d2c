package editor

import (
	"sort"

	"github.com/zyedidia/generic/mapset"

	"skyraid/events"
	"skyraid/levels"
)

// Tool is the active design-surface tool.
type Tool int

const (
	ToolSelect Tool = iota
	ToolPlace
	ToolLock
	ToolDelete
)

func (t Tool) String() string {
	switch t {
	case ToolSelect:
		return "Select"
	case ToolPlace:
		return "Place"
	case ToolLock:
		return "Lock"
	case ToolDelete:
		return "Delete"
	default:
		return "Unknown"
	}
}

// Grid size bounds. Values outside are clamped, never rejected.
const (
	MinGridSize = 8
	MaxGridSize = 64
)

// StateStore is the single authoritative holder of editor state for one
// editing session. Every mutation goes through a method here and fires a
// named change event, so the design surface and the workflow controller
// react without polling and never cache a divergent copy.
//
// No mutator returns an error; invalid input is clamped or ignored.
type StateStore struct {
	bus *events.Bus

	tool          Tool
	placeableType levels.EntityType
	gridSize      int
	gridVisible   bool
	selection     mapset.Set[string]
	dirty         bool
	levelID       string
}

// NewStateStore builds a store with the session defaults.
func NewStateStore(bus *events.Bus) *StateStore {
	return &StateStore{
		bus:           bus,
		tool:          ToolSelect,
		placeableType: levels.TypeEnemySpawner,
		gridSize:      32,
		gridVisible:   true,
		selection:     mapset.New[string](),
	}
}

// Bus exposes the change-notification bus for subscribers.
func (s *StateStore) Bus() *events.Bus {
	return s.bus
}

func (s *StateStore) Tool() Tool { return s.tool }

func (s *StateStore) SetTool(t Tool) {
	if t < ToolSelect || t > ToolDelete || t == s.tool {
		return
	}
	s.tool = t
	s.bus.Emit(events.ToolChange, t)
}

func (s *StateStore) PlaceableType() levels.EntityType { return s.placeableType }

func (s *StateStore) SetPlaceableType(t levels.EntityType) {
	switch t {
	case levels.TypeEnemySpawner, levels.TypePlayerStart, levels.TypeObstacle,
		levels.TypePowerupSpawner, levels.TypeDecoration, levels.TypeTrigger:
	default:
		return
	}
	if t == s.placeableType {
		return
	}
	s.placeableType = t
	s.bus.Emit(events.EntityTypeChange, t)
}

func (s *StateStore) GridSize() int { return s.gridSize }

// SetGridSize clamps n into [MinGridSize, MaxGridSize].
func (s *StateStore) SetGridSize(n int) {
	if n < MinGridSize {
		n = MinGridSize
	}
	if n > MaxGridSize {
		n = MaxGridSize
	}
	if n == s.gridSize {
		return
	}
	s.gridSize = n
	s.bus.Emit(events.GridSizeChange, n)
}

func (s *StateStore) GridVisible() bool { return s.gridVisible }

func (s *StateStore) SetGridVisible(v bool) {
	if v == s.gridVisible {
		return
	}
	s.gridVisible = v
	s.bus.Emit(events.GridVisibilityChange, v)
}

// SelectEntity adds id to the selection. When additive is false the selection
// is replaced with exactly this entity.
func (s *StateStore) SelectEntity(id string, additive bool) {
	if id == "" {
		return
	}
	if !additive {
		s.selection = mapset.New[string]()
	}
	s.selection.Put(id)
	s.emitSelection()
}

func (s *StateStore) DeselectEntity(id string) {
	if !s.selection.Has(id) {
		return
	}
	s.selection.Remove(id)
	s.emitSelection()
}

// ClearSelection empties the selection set.
func (s *StateStore) ClearSelection() {
	if s.selection.Size() == 0 {
		return
	}
	s.selection = mapset.New[string]()
	s.emitSelection()
}

func (s *StateStore) IsSelected(id string) bool {
	return s.selection.Has(id)
}

// SelectedIDs returns the selection in a stable order.
func (s *StateStore) SelectedIDs() []string {
	ids := make([]string, 0, s.selection.Size())
	s.selection.Each(func(id string) {
		ids = append(ids, id)
	})
	sort.Strings(ids)
	return ids
}

func (s *StateStore) emitSelection() {
	s.bus.Emit(events.SelectionChange, s.SelectedIDs())
}

func (s *StateStore) IsDirty() bool { return s.dirty }

func (s *StateStore) SetDirty(d bool) {
	if d == s.dirty {
		return
	}
	s.dirty = d
	s.bus.Emit(events.LevelDirtyChange, d)
}

// CurrentLevelID returns the id of the level being edited ("" when none).
func (s *StateStore) CurrentLevelID() string { return s.levelID }

func (s *StateStore) SetCurrentLevelID(id string) {
	s.levelID = id
}
