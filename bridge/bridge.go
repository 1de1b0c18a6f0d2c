// Package bridge launches an in-place playtest of the level being edited and
// watches it for completion.
package bridge

import (
	"errors"

	"skyraid/events"
	"skyraid/playtest"
)

// pollInterval is how many ticks pass between completion checks. Completion
// is also evaluated immediately whenever an enemy leaves play.
const pollInterval = 30

// ErrTestRunning is returned when a launch is attempted before the previous
// run's teardown finished.
var ErrTestRunning = errors.New("a test is already running")

// Bridge runs one build-mode test at a time: it launches the playthrough with
// the translated level, listens for gameplay events, aggregates per-test
// counters and runs the dual completion heuristic.
type Bridge struct {
	bus            *events.Bus
	onReturnDesign func()

	session *Session
	runner  *playtest.Runner

	running   bool
	completed bool

	expected int
	defeated int

	pollTicks int
	unsubs    []func()
}

// New builds a bridge. onReturnDesign is invoked when a completed test should
// hand control back to the design step.
func New(bus *events.Bus, onReturnDesign func()) *Bridge {
	return &Bridge{bus: bus, onReturnDesign: onReturnDesign}
}

// Running reports whether a test is active.
func (b *Bridge) Running() bool {
	return b.running
}

// Runner exposes the active playthrough (nil between runs).
func (b *Bridge) Runner() *playtest.Runner {
	return b.runner
}

// ExpectedEnemiesToDefeat is the number of spawners handed off at launch.
func (b *Bridge) ExpectedEnemiesToDefeat() int {
	return b.expected
}

// Start resets the per-test counters and launches the playthrough. Starting
// while a previous run has not been torn down is an error.
func (b *Bridge) Start(sess *Session) error {
	if b.running {
		return ErrTestRunning
	}
	b.session = sess
	b.completed = false
	b.defeated = 0
	b.pollTicks = 0

	b.runner = playtest.NewRunner(playtest.Config{
		Level: sess.Level,
		Flags: sess.Flags,
		Bus:   b.bus,
		// Keep the two completion heuristics in agreement: no enemy may
		// enter play outside the tracked spawners during a build-mode test.
		DisableAmbientSpawns: true,
	})

	// Only spawners the runner accepted count toward the kill target. Zero
	// spawners means no auto-completion target at all.
	b.expected = b.runner.SpawnerCount()

	b.unsubs = append(b.unsubs, b.bus.Subscribe(events.EnemyRemoved, func(data any) {
		ev, ok := data.(playtest.EnemyRemoved)
		if !ok {
			return
		}
		if ev.Cause == playtest.CauseDefeated {
			b.defeated++
		}
		b.evaluate()
	}))

	b.running = true
	b.runner.Start()
	return nil
}

// Update advances the playthrough and polls completion on a fixed interval.
// Runs on the single game tick; there is no background timer.
func (b *Bridge) Update() {
	if !b.running {
		return
	}
	b.runner.Update()
	b.pollTicks++
	if b.pollTicks >= pollInterval {
		b.pollTicks = 0
		b.evaluate()
	}
}

// evaluate runs the dual completion heuristic. It never fires when no kill
// target exists and fires at most once per test.
func (b *Bridge) evaluate() {
	if !b.running || b.completed {
		return
	}
	if b.expected == 0 {
		// An empty level is a valid, indefinitely running test.
		return
	}
	if b.defeated >= b.expected {
		b.complete()
		return
	}
	// Fallback: every tracked spawner is exhausted and nothing hostile is
	// left near the screen. The defeated>0 guard prevents an instant
	// false-complete before any combat happened; the pending-spawns guard
	// keeps a spawn cooldown gap from reading as a finished level.
	if b.defeated > 0 && b.runner.PendingSpawns() == 0 && b.runner.ActiveEnemiesWithin(b.session.Region) == 0 {
		b.complete()
	}
}

// complete fires once: it tears down this run's listeners, requests the
// playthrough stop (which emits the final stats snapshot and the completion
// event) and returns the workflow to the design step.
func (b *Bridge) complete() {
	b.completed = true
	b.teardown()
	b.bus.Emit(events.TestStop, nil)
	if b.onReturnDesign != nil {
		b.onReturnDesign()
	}
}

// Stop is the manual stop path. It synchronously detaches every listener this
// run registered and cancels the completion polling before the stop request
// goes out, so repeated start/stop cycles never accumulate duplicates.
func (b *Bridge) Stop() {
	if !b.running {
		return
	}
	b.teardown()
	b.bus.Emit(events.TestStop, nil)
}

func (b *Bridge) teardown() {
	for _, u := range b.unsubs {
		u()
	}
	b.unsubs = nil
	b.pollTicks = 0
	b.running = false
}
