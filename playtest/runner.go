// Package playtest runs a live playthrough of a level. One Runner serves
// every playthrough variant (endless, custom level, build-mode test); the
// differences are carried by Config instead of an inheritance chain.
package playtest

import (
	"math/rand"

	"github.com/jakecoffman/cp"

	"skyraid/events"
	"skyraid/levels"
)

// Stats is the final statistics snapshot emitted with events.TestStats.
type Stats struct {
	Score             int
	EnemiesDefeated   int
	PlayerDeaths      int
	PowerupsCollected int
}

// EnemyRemoved is the payload of events.EnemyRemoved. Cause distinguishes a
// kill from despawn/escape; every removal is reported regardless of cause.
type EnemyRemoved struct {
	ID    string
	Cause RemovalCause
}

// RemovalCause enumerates why an enemy left play.
type RemovalCause string

const (
	CauseDefeated RemovalCause = "defeated"
	CauseEscaped  RemovalCause = "escaped"
	CauseDespawn  RemovalCause = "despawn"
)

// Flags are the test-session flags handed over by the editor.
type Flags struct {
	TestMode      bool
	BuildModeTest bool
}

// Config parameterizes one playthrough.
type Config struct {
	Level *levels.LevelData
	Flags Flags
	Bus   *events.Bus

	// DisableAmbientSpawns turns off the legacy random spawner. Build-mode
	// tests always set it: only tracked spawners may produce enemies, so the
	// exact-count and no-enemies-on-screen completion heuristics stay in
	// agreement.
	DisableAmbientSpawns bool

	// ScorePerKill feeds the score counter (default 100).
	ScorePerKill int
}

// Enemy is one live enemy in play space.
type Enemy struct {
	ID   string
	Type string
	Pos  cp.Vector
}

type spawnerState struct {
	rec      levels.BaseEntity
	spawned  int
	cooldown int
}

// ambientSpawnInterval is the legacy random-spawn period in ticks.
const ambientSpawnInterval = 180

// Runner drives one playthrough on the game tick. All mutation happens on the
// single frame loop; Update must be called once per tick.
type Runner struct {
	cfg      Config
	spawners []spawnerState
	enemies  []*Enemy
	stats    Stats
	running  bool

	ambientCooldown int

	unsubStop func()
}

// NewRunner prepares a playthrough from the (already translated) level.
// Malformed spawner records have been defaulted at decode time, so no
// structural probing happens here.
func NewRunner(cfg Config) *Runner {
	if cfg.ScorePerKill == 0 {
		cfg.ScorePerKill = 100
	}
	r := &Runner{cfg: cfg}
	for _, e := range cfg.Level.Entities {
		if e.Type != levels.TypeEnemySpawner {
			continue
		}
		r.spawners = append(r.spawners, spawnerState{rec: e})
	}
	return r
}

// SpawnerCount is the number of spawners accepted at launch. The bridge uses
// it as the expected-kill total.
func (r *Runner) SpawnerCount() int {
	return len(r.spawners)
}

// PendingSpawns reports how many enemies the tracked spawners can still
// produce. While it is non-zero a momentarily clear screen means a spawn
// cooldown gap, not a finished level.
func (r *Runner) PendingSpawns() int {
	n := 0
	for i := range r.spawners {
		if left := r.spawners[i].rec.MaxEnemies - r.spawners[i].spawned; left > 0 {
			n += left
		}
	}
	return n
}

// Start begins play and registers the stop listener.
func (r *Runner) Start() {
	if r.running {
		return
	}
	r.running = true
	r.stats = Stats{}
	r.unsubStop = r.cfg.Bus.Subscribe(events.TestStop, func(any) {
		r.Stop()
	})
}

// Running reports whether play is active.
func (r *Runner) Running() bool {
	return r.running
}

// Stop ends play, emits the final stats snapshot and the completion event,
// and detaches the stop listener. Safe to call twice.
func (r *Runner) Stop() {
	if !r.running {
		return
	}
	r.running = false
	if r.unsubStop != nil {
		r.unsubStop()
		r.unsubStop = nil
	}
	r.cfg.Bus.Emit(events.TestStats, r.stats)
	r.cfg.Bus.Emit(events.TestCompleted, nil)
}

// Update advances spawners by one tick.
func (r *Runner) Update() {
	if !r.running {
		return
	}
	for i := range r.spawners {
		s := &r.spawners[i]
		if s.spawned >= s.rec.MaxEnemies {
			continue
		}
		if s.cooldown > 0 {
			s.cooldown--
			continue
		}
		r.spawn(s.rec.EnemyType, cp.Vector{X: s.rec.Position.X, Y: s.rec.Position.Y})
		s.spawned++
		// SpawnRate is enemies per second at 60 ticks.
		s.cooldown = int(60 / s.rec.SpawnRate)
	}

	if !r.cfg.DisableAmbientSpawns {
		if r.ambientCooldown > 0 {
			r.ambientCooldown--
		} else {
			r.spawn(levels.DefaultEnemyType, cp.Vector{X: rand.Float64() * 800, Y: -32})
			r.ambientCooldown = ambientSpawnInterval
		}
	}
}

func (r *Runner) spawn(enemyType string, pos cp.Vector) {
	r.enemies = append(r.enemies, &Enemy{
		ID:   levels.NewID(),
		Type: enemyType,
		Pos:  pos,
	})
}

// ActiveEnemies returns the enemies currently in play.
func (r *Runner) ActiveEnemies() []*Enemy {
	return r.enemies
}

// ActiveEnemiesWithin counts live enemies inside the given region.
func (r *Runner) ActiveEnemiesWithin(bb cp.BB) int {
	n := 0
	for _, e := range r.enemies {
		if bb.ContainsVect(e.Pos) {
			n++
		}
	}
	return n
}

// RemoveEnemy takes the enemy out of play and reports it. Defeats feed the
// score and kill counters; every removal emits events.EnemyRemoved.
func (r *Runner) RemoveEnemy(id string, cause RemovalCause) {
	for i, e := range r.enemies {
		if e.ID != id {
			continue
		}
		r.enemies = append(r.enemies[:i], r.enemies[i+1:]...)
		if cause == CauseDefeated {
			r.stats.EnemiesDefeated++
			r.stats.Score += r.cfg.ScorePerKill
		}
		r.cfg.Bus.Emit(events.EnemyRemoved, EnemyRemoved{ID: id, Cause: cause})
		return
	}
}

// RecordPlayerDeath bumps the death counter.
func (r *Runner) RecordPlayerDeath() {
	r.stats.PlayerDeaths++
}

// RecordPowerup bumps the pickup counter.
func (r *Runner) RecordPowerup() {
	r.stats.PowerupsCollected++
}

// Snapshot returns the running statistics.
func (r *Runner) Snapshot() Stats {
	return r.stats
}
