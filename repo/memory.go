package repo

import "skyraid/levels"

// MemoryRepository keeps levels in a map. Used in tests and as the degraded
// mode when the local data store cannot be opened.
type MemoryRepository struct {
	records map[string]*levels.LevelData
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[string]*levels.LevelData)}
}

func (r *MemoryRepository) LoadLevel(id string) (*levels.LevelData, error) {
	lvl, ok := r.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return lvl.Clone(), nil
}

func (r *MemoryRepository) SaveLevel(lvl *levels.LevelData) (string, error) {
	prepare(lvl)
	r.records[lvl.ID] = lvl.Clone()
	return lvl.ID, nil
}

func (r *MemoryRepository) LevelList() ([]Entry, error) {
	list := make([]Entry, 0, len(r.records))
	for _, lvl := range r.records {
		list = append(list, Entry{ID: lvl.ID, Name: lvl.Settings.Name, LastModified: lvl.Metadata.LastModified})
	}
	return list, nil
}

func (r *MemoryRepository) CreateEmptyLevel(partial levels.Settings) *levels.LevelData {
	return levels.New(partial)
}
