package levels

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// FormatVersion is written into new level records.
const FormatVersion = "1.0"

// EntityType discriminates the BaseEntity union.
type EntityType string

const (
	TypeEnemySpawner   EntityType = "ENEMY_SPAWNER"
	TypePlayerStart    EntityType = "PLAYER_START"
	TypeObstacle       EntityType = "OBSTACLE"
	TypePowerupSpawner EntityType = "POWERUP_SPAWNER"
	TypeDecoration     EntityType = "DECORATION"
	TypeTrigger        EntityType = "TRIGGER"
)

// DefaultEnemyType is substituted when a spawner record carries no enemy type,
// so a malformed record never aborts a playtest.
const DefaultEnemyType = "FIGHTER"

// DefaultPlayerStart is where a spawn point is synthesized when a level is
// saved without one.
var DefaultPlayerStart = Position{X: 400, Y: 500}

// Position is a world-space point in pixels.
type Position struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// BaseEntity is one placed object in a level. Variant fields are only
// meaningful for the matching Type; the codec validates them at decode time.
// Rotation is radians. Scale is always > 0.
type BaseEntity struct {
	ID       string     `yaml:"id"`
	Type     EntityType `yaml:"type"`
	Position Position   `yaml:"position"`
	Rotation float64    `yaml:"rotation"`
	Scale    float64    `yaml:"scale"`

	// ENEMY_SPAWNER fields.
	EnemyType          string  `yaml:"enemyType,omitempty"`
	SpawnRate          float64 `yaml:"spawnRate,omitempty"`
	MaxEnemies         int     `yaml:"maxEnemies,omitempty"`
	ActivationDistance float64 `yaml:"activationDistance,omitempty"`

	// POWERUP_SPAWNER field.
	PowerupType string `yaml:"powerupType,omitempty"`

	// TRIGGER fields.
	TriggerEvent  string  `yaml:"triggerEvent,omitempty"`
	TriggerRadius float64 `yaml:"triggerRadius,omitempty"`
}

// Settings holds level-wide presentation and metadata fields.
type Settings struct {
	Name              string  `yaml:"name"`
	Author            string  `yaml:"author"`
	Difficulty        float64 `yaml:"difficulty"`
	BackgroundSpeed   float64 `yaml:"backgroundSpeed"`
	BackgroundTexture string  `yaml:"backgroundTexture"`
	MusicTrack        string  `yaml:"musicTrack"`
	Version           string  `yaml:"version"`
}

// Metadata tracks record lifecycle timestamps (unix seconds).
type Metadata struct {
	CreatedAt    int64  `yaml:"createdAt"`
	LastModified int64  `yaml:"lastModified"`
	Version      string `yaml:"version"`
}

// LevelData is the persisted record describing one level.
type LevelData struct {
	ID       string       `yaml:"id"`
	Settings Settings     `yaml:"settings"`
	Entities []BaseEntity `yaml:"entities"`
	Metadata Metadata     `yaml:"metadata"`
}

// NewID returns a fresh id usable for levels and entities.
func NewID() string {
	return uuid.NewString()
}

// NewEntity builds an entity of the given type at pos with identity transform
// and type-appropriate variant defaults.
func NewEntity(t EntityType, pos Position) BaseEntity {
	e := BaseEntity{
		ID:       NewID(),
		Type:     t,
		Position: pos,
		Rotation: 0,
		Scale:    1,
	}
	switch t {
	case TypeEnemySpawner:
		e.EnemyType = DefaultEnemyType
		e.SpawnRate = 1
		e.MaxEnemies = 3
		e.ActivationDistance = 600
	case TypePowerupSpawner:
		e.PowerupType = "SHIELD"
	case TypeTrigger:
		e.TriggerRadius = 64
	}
	return e
}

// New builds an empty level, filling any zero-valued settings with defaults.
func New(partial Settings) *LevelData {
	if partial.Name == "" {
		partial.Name = "Untitled Level"
	}
	if partial.Version == "" {
		partial.Version = FormatVersion
	}
	if partial.BackgroundSpeed == 0 {
		partial.BackgroundSpeed = 1
	}
	now := time.Now().Unix()
	return &LevelData{
		ID:       NewID(),
		Settings: partial,
		Metadata: Metadata{CreatedAt: now, LastModified: now, Version: FormatVersion},
	}
}

// normalize repairs a decoded entity so downstream code never needs to probe
// for missing variant fields.
func (e *BaseEntity) normalize() error {
	switch e.Type {
	case TypeEnemySpawner, TypePlayerStart, TypeObstacle, TypePowerupSpawner, TypeDecoration, TypeTrigger:
	default:
		return fmt.Errorf("unknown entity type %q", e.Type)
	}
	if e.ID == "" {
		e.ID = NewID()
	}
	if e.Scale <= 0 {
		e.Scale = 1
	}
	if e.Type == TypeEnemySpawner {
		if e.EnemyType == "" {
			e.EnemyType = DefaultEnemyType
		}
		if e.SpawnRate <= 0 {
			e.SpawnRate = 1
		}
		if e.MaxEnemies <= 0 {
			e.MaxEnemies = 1
		}
	}
	return nil
}

// Marshal encodes the level as YAML.
func Marshal(lvl *LevelData) ([]byte, error) {
	return yaml.Marshal(lvl)
}

// Unmarshal decodes and validates a level record. Entities with an unknown
// type fail the decode; repairable defects (missing id, bad scale, missing
// spawner fields) are fixed in place.
func Unmarshal(data []byte) (*LevelData, error) {
	var lvl LevelData
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("decode level: %w", err)
	}
	for i := range lvl.Entities {
		if err := lvl.Entities[i].normalize(); err != nil {
			return nil, fmt.Errorf("entity %d: %w", i, err)
		}
	}
	return &lvl, nil
}

// HasPlayerStart reports whether any entity is a PLAYER_START.
func (l *LevelData) HasPlayerStart() bool {
	for i := range l.Entities {
		if l.Entities[i].Type == TypePlayerStart {
			return true
		}
	}
	return false
}

// EnsurePlayerStart synthesizes a spawn point at the default position when
// the level has none. A level is never persisted without one.
func (l *LevelData) EnsurePlayerStart() {
	if l.HasPlayerStart() {
		return
	}
	l.Entities = append(l.Entities, NewEntity(TypePlayerStart, DefaultPlayerStart))
}

// SpawnerCount returns the number of ENEMY_SPAWNER entities.
func (l *LevelData) SpawnerCount() int {
	n := 0
	for i := range l.Entities {
		if l.Entities[i].Type == TypeEnemySpawner {
			n++
		}
	}
	return n
}

// Clone deep-copies the level so transient transforms never touch the
// persisted record.
func (l *LevelData) Clone() *LevelData {
	cp := *l
	cp.Entities = make([]BaseEntity, len(l.Entities))
	copy(cp.Entities, l.Entities)
	return &cp
}

// Translate offsets every entity position by (dx, dy). Used on the transient
// copy handed to gameplay, never on the stored level.
func (l *LevelData) Translate(dx, dy float64) {
	for i := range l.Entities {
		l.Entities[i].Position.X += dx
		l.Entities[i].Position.Y += dy
	}
}
