package editor

import (
	"fmt"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"skyraid/levels"
	"skyraid/repo"
)

// SetupStep prepares a level's settings before designing: either the settings
// of an existing level (when an id is carried in) or defaults for a new one.
type SetupStep struct {
	repos    repo.Repository
	workflow *Workflow

	level    *levels.LevelData
	settings levels.Settings
	active   bool
}

func NewSetupStep(repos repo.Repository, workflow *Workflow) *SetupStep {
	return &SetupStep{repos: repos, workflow: workflow}
}

func (s *SetupStep) Activate(levelID string) {
	if levelID != "" {
		s.level = repo.Resolve(s.repos, levelID, nil)
		s.settings = s.level.Settings
	} else {
		s.level = nil
		s.settings = levels.Settings{Name: "Untitled Level", Difficulty: 1, BackgroundSpeed: 1}
	}
	s.active = true
}

func (s *SetupStep) Deactivate() {
	s.active = false
}

// Settings returns the working settings.
func (s *SetupStep) Settings() levels.Settings {
	return s.settings
}

// SetSettings replaces the working settings (UI callbacks land here).
func (s *SetupStep) SetSettings(settings levels.Settings) {
	s.settings = settings
}

// Proceed applies the settings, persists the level and moves to design.
func (s *SetupStep) Proceed() {
	if s.level == nil {
		s.level = s.repos.CreateEmptyLevel(s.settings)
	} else {
		s.level.Settings = s.settings
	}
	id, err := s.repos.SaveLevel(s.level)
	if err != nil {
		log.Printf("setup: save failed: %v", err)
		return
	}
	s.workflow.ChangeStep(StepDesign, id)
}

func (s *SetupStep) Update() {
	if !s.active {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) && s.settings.Difficulty > 1 {
		s.settings.Difficulty--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) && s.settings.Difficulty < 10 {
		s.settings.Difficulty++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		s.Proceed()
	}
}

func (s *SetupStep) Draw(screen *ebiten.Image) {
	if !s.active {
		return
	}
	var sb strings.Builder
	sb.WriteString("LEVEL SETUP  (enter: design, esc: exit)\n\n")
	fmt.Fprintf(&sb, "  name:       %s\n", s.settings.Name)
	fmt.Fprintf(&sb, "  author:     %s\n", s.settings.Author)
	fmt.Fprintf(&sb, "  difficulty: %.0f  (left/right)\n", s.settings.Difficulty)
	ebitenutil.DebugPrint(screen, sb.String())
}
