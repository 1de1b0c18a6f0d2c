package editor

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"skyraid/events"
	"skyraid/playtest"
)

// StepName identifies one workflow step.
type StepName string

const (
	StepSetup   StepName = "setup"
	StepDesign  StepName = "design"
	StepTest    StepName = "test"
	StepPublish StepName = "publish"
	StepBrowse  StepName = "browse"
)

// Step is one stage of the editing workflow. Deactivate must release every
// timer, listener and visual resource the step registered and must be safe to
// call on an already-inactive step; Activate must not duplicate resources
// when called twice in a row — each step tracks its own built state.
type Step interface {
	Activate(levelID string)
	Deactivate()
	Update()
	Draw(screen *ebiten.Image)
}

// Workflow is the step state machine: Setup, Design, Test, Publish, Browse.
// It owns step lifecycle and routes navigation and escape semantics.
type Workflow struct {
	state *StateStore
	steps map[StepName]Step

	active     StepName
	activeStep Step

	// exit confirmation shown from setup/browse before returning to the host
	// menu
	exitConfirmPending bool
	onExit             func()

	lastStats      playtest.Stats
	statsReceived  int
	completionSeen int

	unsubs []func()
}

// NewWorkflow builds the controller. Steps register afterwards with AddStep;
// onExit hands control back to the host menu.
func NewWorkflow(state *StateStore, onExit func()) *Workflow {
	w := &Workflow{
		state:  state,
		steps:  make(map[StepName]Step),
		onExit: onExit,
	}
	// These two subscriptions live for the whole session, not per test run.
	w.unsubs = append(w.unsubs,
		state.Bus().Subscribe(events.TestStats, func(data any) {
			if stats, ok := data.(playtest.Stats); ok {
				w.lastStats = stats
				w.statsReceived++
			}
		}),
		state.Bus().Subscribe(events.TestCompleted, func(any) {
			w.completionSeen++
		}),
	)
	return w
}

// AddStep registers a step under its name.
func (w *Workflow) AddStep(name StepName, s Step) {
	w.steps[name] = s
}

// Active returns the current step name ("" before the first transition).
func (w *Workflow) Active() StepName {
	return w.active
}

// LastStats returns the statistics snapshot from the most recent test run.
func (w *Workflow) LastStats() playtest.Stats {
	return w.lastStats
}

// CompletionCount reports how many test completions this session has seen.
func (w *Workflow) CompletionCount() int {
	return w.completionSeen
}

// ChangeStep deactivates the active step and activates the target, carrying
// an optional level id forward.
func (w *Workflow) ChangeStep(name StepName, levelID string) {
	next, ok := w.steps[name]
	if !ok {
		log.Printf("workflow: no step registered for %q", name)
		return
	}
	if w.activeStep != nil {
		w.activeStep.Deactivate()
	}
	w.active = name
	w.activeStep = next
	next.Activate(levelID)
}

// HandleEscape applies the state-dependent cancel semantics: design falls
// back to setup (or exits when no setup step exists), test and publish return
// to design, setup and browse ask for exit confirmation.
func (w *Workflow) HandleEscape() {
	switch w.active {
	case StepDesign:
		if _, ok := w.steps[StepSetup]; ok {
			w.ChangeStep(StepSetup, w.state.CurrentLevelID())
		} else {
			w.exitConfirmPending = true
		}
	case StepTest, StepPublish:
		w.ChangeStep(StepDesign, w.state.CurrentLevelID())
	case StepSetup, StepBrowse:
		w.exitConfirmPending = true
	}
}

// ExitConfirmPending reports whether the exit dialog should be shown.
func (w *Workflow) ExitConfirmPending() bool {
	return w.exitConfirmPending
}

// ConfirmExit tears the workflow down and returns to the host menu.
func (w *Workflow) ConfirmExit() {
	w.exitConfirmPending = false
	w.Teardown()
	if w.onExit != nil {
		w.onExit()
	}
}

// CancelExit dismisses the exit confirmation.
func (w *Workflow) CancelExit() {
	w.exitConfirmPending = false
}

// Update advances the active step.
func (w *Workflow) Update() {
	if w.activeStep != nil {
		w.activeStep.Update()
	}
}

// Draw renders the active step.
func (w *Workflow) Draw(screen *ebiten.Image) {
	if w.activeStep != nil {
		w.activeStep.Draw(screen)
	}
}

// Teardown deactivates the active step and drops the session subscriptions.
// The editing session's state store is discarded with the workflow; nothing
// leaks across sessions.
func (w *Workflow) Teardown() {
	if w.activeStep != nil {
		w.activeStep.Deactivate()
		w.activeStep = nil
		w.active = ""
	}
	for _, u := range w.unsubs {
		u()
	}
	w.unsubs = nil
}
