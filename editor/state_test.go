package editor

import (
	"testing"

	"skyraid/events"
	"skyraid/levels"
)

func TestStateStoreDefaults(t *testing.T) {
	s := NewStateStore(events.NewBus())
	if s.Tool() != ToolSelect {
		t.Fatalf("default tool = %v", s.Tool())
	}
	if s.GridSize() != 32 || !s.GridVisible() {
		t.Fatalf("default grid = %d visible=%v", s.GridSize(), s.GridVisible())
	}
	if s.PlaceableType() != levels.TypeEnemySpawner {
		t.Fatalf("default placeable = %v", s.PlaceableType())
	}
	if s.IsDirty() {
		t.Fatalf("fresh store must be clean")
	}
}

func TestSetToolEmitsOnce(t *testing.T) {
	bus := events.NewBus()
	s := NewStateStore(bus)
	emits := 0
	bus.Subscribe(events.ToolChange, func(any) { emits++ })

	s.SetTool(ToolPlace)
	s.SetTool(ToolPlace) // no-op
	s.SetTool(Tool(99))  // invalid, ignored

	if s.Tool() != ToolPlace {
		t.Fatalf("tool = %v", s.Tool())
	}
	if emits != 1 {
		t.Fatalf("expected 1 emit, got %d", emits)
	}
}

func TestSetGridSizeClamps(t *testing.T) {
	cases := []struct {
		name string
		in   int
		want int
	}{
		{"below_min", 1, MinGridSize},
		{"above_max", 1000, MaxGridSize},
		{"in_range", 16, 16},
		{"negative", -5, MinGridSize},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := NewStateStore(events.NewBus())
			s.SetGridSize(c.in)
			if s.GridSize() != c.want {
				t.Fatalf("SetGridSize(%d): got %d, want %d", c.in, s.GridSize(), c.want)
			}
		})
	}
}

func TestSetPlaceableTypeRejectsUnknown(t *testing.T) {
	s := NewStateStore(events.NewBus())
	s.SetPlaceableType(levels.EntityType("WORMHOLE"))
	if s.PlaceableType() != levels.TypeEnemySpawner {
		t.Fatalf("unknown type accepted: %v", s.PlaceableType())
	}
	s.SetPlaceableType(levels.TypeTrigger)
	if s.PlaceableType() != levels.TypeTrigger {
		t.Fatalf("valid type rejected")
	}
}

func TestSelectionAlgebra(t *testing.T) {
	bus := events.NewBus()
	s := NewStateStore(bus)
	var last []string
	bus.Subscribe(events.SelectionChange, func(data any) {
		last = data.([]string)
	})

	s.SelectEntity("b", false)
	s.SelectEntity("a", true)
	if got := s.SelectedIDs(); len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("additive selection = %v", got)
	}
	if len(last) != 2 {
		t.Fatalf("event payload = %v", last)
	}

	// Plain select replaces the whole set.
	s.SelectEntity("c", false)
	if got := s.SelectedIDs(); len(got) != 1 || got[0] != "c" {
		t.Fatalf("replace selection = %v", got)
	}

	s.DeselectEntity("c")
	if len(s.SelectedIDs()) != 0 {
		t.Fatalf("deselect left residue: %v", s.SelectedIDs())
	}

	// Deselecting an id that isn't selected emits nothing.
	emits := 0
	bus.Subscribe(events.SelectionChange, func(any) { emits++ })
	s.DeselectEntity("ghost")
	s.ClearSelection()
	if emits != 0 {
		t.Fatalf("no-op selection ops emitted %d events", emits)
	}

	s.SelectEntity("", false)
	if len(s.SelectedIDs()) != 0 {
		t.Fatalf("empty id selected")
	}
}

func TestDirtyFlagEmitsOnChange(t *testing.T) {
	bus := events.NewBus()
	s := NewStateStore(bus)
	emits := 0
	bus.Subscribe(events.LevelDirtyChange, func(any) { emits++ })

	s.SetDirty(true)
	s.SetDirty(true)
	s.SetDirty(false)
	if emits != 2 {
		t.Fatalf("expected 2 emits, got %d", emits)
	}
}
