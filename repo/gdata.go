package repo

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"skyraid/levels"
)

const (
	levelsObject = "levels"
	indexProp    = "index"
)

// GdataRepository stores level records through the cross-platform gdata
// store: one property per level id under the "levels" object, plus an index
// property holding the list.
type GdataRepository struct {
	m *gdata.Manager
}

// NewGdataRepository opens the app's local data store.
func NewGdataRepository(appName string) (*GdataRepository, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open level store: %w", err)
	}
	return &GdataRepository{m: m}, nil
}

func (r *GdataRepository) LoadLevel(id string) (*levels.LevelData, error) {
	if id == "" || !r.m.ObjectPropExists(levelsObject, id) {
		return nil, ErrNotFound
	}
	data, err := r.m.LoadObjectProp(levelsObject, id)
	if err != nil {
		return nil, fmt.Errorf("load level %s: %w", id, err)
	}
	return levels.Unmarshal(data)
}

func (r *GdataRepository) SaveLevel(lvl *levels.LevelData) (string, error) {
	prepare(lvl)
	data, err := levels.Marshal(lvl)
	if err != nil {
		return "", fmt.Errorf("encode level %s: %w", lvl.ID, err)
	}
	if err := r.m.SaveObjectProp(levelsObject, lvl.ID, data); err != nil {
		return "", fmt.Errorf("save level %s: %w", lvl.ID, err)
	}
	if err := r.updateIndex(lvl); err != nil {
		// The record itself is safe; a stale index only degrades listing.
		log.Printf("level index update failed: %v", err)
	}
	return lvl.ID, nil
}

func (r *GdataRepository) LevelList() ([]Entry, error) {
	if !r.m.ObjectPropExists(levelsObject, indexProp) {
		return nil, nil
	}
	data, err := r.m.LoadObjectProp(levelsObject, indexProp)
	if err != nil {
		return nil, fmt.Errorf("load level index: %w", err)
	}
	var list []Entry
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decode level index: %w", err)
	}
	return list, nil
}

func (r *GdataRepository) CreateEmptyLevel(partial levels.Settings) *levels.LevelData {
	return levels.New(partial)
}

func (r *GdataRepository) updateIndex(lvl *levels.LevelData) error {
	list, err := r.LevelList()
	if err != nil {
		list = nil
	}
	entry := Entry{ID: lvl.ID, Name: lvl.Settings.Name, LastModified: lvl.Metadata.LastModified}
	found := false
	for i := range list {
		if list[i].ID == lvl.ID {
			list[i] = entry
			found = true
			break
		}
	}
	if !found {
		list = append(list, entry)
	}
	data, err := yaml.Marshal(list)
	if err != nil {
		return err
	}
	return r.m.SaveObjectProp(levelsObject, indexProp, data)
}
