package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"skyraid/levels"
)

// FileRepository stores one YAML file per level in a directory. It backs the
// publish/export flow and keeps levels visible to external tools; the browse
// step watches this directory for changes.
type FileRepository struct {
	dir string
}

func NewFileRepository(dir string) (*FileRepository, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create levels dir: %w", err)
	}
	return &FileRepository{dir: dir}, nil
}

// Dir returns the directory holding the level files.
func (r *FileRepository) Dir() string {
	return r.dir
}

func (r *FileRepository) path(id string) string {
	return filepath.Join(r.dir, id+".yaml")
}

func (r *FileRepository) LoadLevel(id string) (*levels.LevelData, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	data, err := os.ReadFile(r.path(id))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read level %s: %w", id, err)
	}
	return levels.Unmarshal(data)
}

func (r *FileRepository) SaveLevel(lvl *levels.LevelData) (string, error) {
	prepare(lvl)
	data, err := levels.Marshal(lvl)
	if err != nil {
		return "", fmt.Errorf("encode level %s: %w", lvl.ID, err)
	}
	if err := os.WriteFile(r.path(lvl.ID), data, 0644); err != nil {
		return "", fmt.Errorf("write level %s: %w", lvl.ID, err)
	}
	return lvl.ID, nil
}

func (r *FileRepository) LevelList() ([]Entry, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, fmt.Errorf("list levels dir: %w", err)
	}
	var list []Entry
	for _, de := range entries {
		name := de.Name()
		if de.IsDir() || !strings.HasSuffix(name, ".yaml") {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		id := strings.TrimSuffix(name, ".yaml")
		entry := Entry{ID: id, LastModified: info.ModTime().Unix()}
		if lvl, err := r.LoadLevel(id); err == nil {
			entry.Name = lvl.Settings.Name
			if lvl.Metadata.LastModified > 0 {
				entry.LastModified = lvl.Metadata.LastModified
			}
		}
		list = append(list, entry)
	}
	return list, nil
}

func (r *FileRepository) CreateEmptyLevel(partial levels.Settings) *levels.LevelData {
	return levels.New(partial)
}
