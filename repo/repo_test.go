package repo

import (
	"errors"
	"testing"
	"time"

	"skyraid/levels"
)

func TestMemoryRepositorySaveAssignsID(t *testing.T) {
	r := NewMemoryRepository()
	lvl := r.CreateEmptyLevel(levels.Settings{Name: "A"})
	lvl.ID = ""

	id, err := r.SaveLevel(lvl)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if id == "" {
		t.Fatalf("save must return a stable id")
	}

	got, err := r.LoadLevel(id)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Settings.Name != "A" {
		t.Fatalf("wrong record loaded: %+v", got.Settings)
	}
	if !got.HasPlayerStart() {
		t.Fatalf("save must synthesize a spawn point")
	}
}

func TestMemoryRepositoryLoadIsolation(t *testing.T) {
	r := NewMemoryRepository()
	lvl := r.CreateEmptyLevel(levels.Settings{})
	id, _ := r.SaveLevel(lvl)

	a, _ := r.LoadLevel(id)
	a.Entities = append(a.Entities, levels.NewEntity(levels.TypeObstacle, levels.Position{}))

	b, _ := r.LoadLevel(id)
	if len(b.Entities) == len(a.Entities) {
		t.Fatalf("loaded record shares entity slice with caller")
	}
}

func TestLoadLevelNotFound(t *testing.T) {
	r := NewMemoryRepository()
	if _, err := r.LoadLevel("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := r.LoadLevel(""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("empty id should be ErrNotFound, got %v", err)
	}
}

func TestResolveFallbackChain(t *testing.T) {
	t.Run("exact", func(t *testing.T) {
		r := NewMemoryRepository()
		lvl := r.CreateEmptyLevel(levels.Settings{Name: "exact"})
		id, _ := r.SaveLevel(lvl)

		got := Resolve(r, id, nil)
		if got.ID != id {
			t.Fatalf("expected exact match %s, got %s", id, got.ID)
		}
	})

	t.Run("prefix", func(t *testing.T) {
		r := NewMemoryRepository()
		lvl := r.CreateEmptyLevel(levels.Settings{Name: "prefixed"})
		id, _ := r.SaveLevel(lvl)

		got := Resolve(r, id[:8], nil)
		if got.ID != id {
			t.Fatalf("expected prefix match %s, got %s", id, got.ID)
		}
	})

	t.Run("most_recent", func(t *testing.T) {
		r := NewMemoryRepository()
		old := r.CreateEmptyLevel(levels.Settings{Name: "old"})
		oldID, _ := r.SaveLevel(old)
		// Force distinct LastModified values without sleeping.
		r.records[oldID].Metadata.LastModified = time.Now().Unix() - 100

		fresh := r.CreateEmptyLevel(levels.Settings{Name: "fresh"})
		freshID, _ := r.SaveLevel(fresh)

		got := Resolve(r, "zzz-no-such-id", nil)
		if got.ID != freshID {
			t.Fatalf("expected most recent %s, got %s", freshID, got.ID)
		}
	})

	t.Run("synthesized", func(t *testing.T) {
		r := NewMemoryRepository()
		inMemory := []levels.BaseEntity{levels.NewEntity(levels.TypeObstacle, levels.Position{X: 5, Y: 5})}

		got := Resolve(r, "missing", inMemory)
		if got == nil {
			t.Fatalf("Resolve must never return nil")
		}
		if len(got.Entities) < 2 {
			t.Fatalf("synthesized level should carry the in-memory entities plus a spawn point, got %d", len(got.Entities))
		}
		if !got.HasPlayerStart() {
			t.Fatalf("synthesized level missing spawn point")
		}
	})
}

func TestFileRepository(t *testing.T) {
	r, err := NewFileRepository(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	lvl := r.CreateEmptyLevel(levels.Settings{Name: "disk"})
	id, err := r.SaveLevel(lvl)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := r.LoadLevel(id)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Settings.Name != "disk" {
		t.Fatalf("wrong record: %+v", got.Settings)
	}

	list, err := r.LevelList()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != id || list[0].Name != "disk" {
		t.Fatalf("bad list: %+v", list)
	}

	if _, err := r.LoadLevel("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGdataRepository(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("APPDATA", dir)

	r, err := NewGdataRepository("skyraid-test")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}

	lvl := r.CreateEmptyLevel(levels.Settings{Name: "stored"})
	id, err := r.SaveLevel(lvl)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := r.LoadLevel(id)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Settings.Name != "stored" {
		t.Fatalf("wrong record: %+v", got.Settings)
	}

	list, err := r.LevelList()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != id {
		t.Fatalf("index out of sync: %+v", list)
	}

	// Saving the same level twice updates the index entry in place.
	got.Settings.Name = "renamed"
	if _, err := r.SaveLevel(got); err != nil {
		t.Fatalf("resave: %v", err)
	}
	list, _ = r.LevelList()
	if len(list) != 1 || list[0].Name != "renamed" {
		t.Fatalf("index should hold one updated entry: %+v", list)
	}
}
