package repo

import (
	"errors"
	"sort"
	"strings"
	"time"

	"skyraid/levels"
)

// ErrNotFound is returned by LoadLevel when no record exists for the id.
var ErrNotFound = errors.New("level not found")

// Entry is one row of the level list.
type Entry struct {
	ID           string `yaml:"id"`
	Name         string `yaml:"name"`
	LastModified int64  `yaml:"lastModified"`
}

// Repository is the durable store of level records, keyed by level id.
//
// SaveLevel always returns a stable id, assigning one when the record has
// none. Implementations must never lose the returned id silently; downstream
// editing keys everything on it.
type Repository interface {
	LoadLevel(id string) (*levels.LevelData, error)
	SaveLevel(lvl *levels.LevelData) (string, error)
	LevelList() ([]Entry, error)
	CreateEmptyLevel(partial levels.Settings) *levels.LevelData
}

// prepare applies the invariants every implementation shares before writing:
// id assignment, spawn-point synthesis, timestamp bump.
func prepare(lvl *levels.LevelData) {
	if lvl.ID == "" {
		lvl.ID = levels.NewID()
	}
	lvl.EnsurePlayerStart()
	now := time.Now().Unix()
	if lvl.Metadata.CreatedAt == 0 {
		lvl.Metadata.CreatedAt = now
	}
	lvl.Metadata.LastModified = now
	if lvl.Metadata.Version == "" {
		lvl.Metadata.Version = levels.FormatVersion
	}
}

// Resolve produces a usable level for id, falling back in order: exact load,
// id-prefix match against the level list, most recently modified level, and
// finally a level synthesized from the in-memory entities. It never returns
// nil; a raw "not found" is never surfaced mid-workflow.
func Resolve(r Repository, id string, inMemory []levels.BaseEntity) *levels.LevelData {
	if id != "" {
		if lvl, err := r.LoadLevel(id); err == nil && lvl != nil {
			return lvl
		}
	}

	list, err := r.LevelList()
	if err == nil && len(list) > 0 {
		if id != "" {
			for _, e := range list {
				if strings.HasPrefix(e.ID, id) {
					if lvl, err := r.LoadLevel(e.ID); err == nil && lvl != nil {
						return lvl
					}
				}
			}
		}
		sort.Slice(list, func(i, j int) bool { return list[i].LastModified > list[j].LastModified })
		if lvl, err := r.LoadLevel(list[0].ID); err == nil && lvl != nil {
			return lvl
		}
	}

	lvl := r.CreateEmptyLevel(levels.Settings{Name: "Recovered Level"})
	lvl.Entities = append(lvl.Entities, inMemory...)
	lvl.EnsurePlayerStart()
	return lvl
}
