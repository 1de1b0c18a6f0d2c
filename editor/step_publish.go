package editor

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"skyraid/repo"
)

// PublishStep bumps the level's version, persists it and exports a YAML copy
// into the shared levels directory.
type PublishStep struct {
	repos    repo.Repository
	export   *repo.FileRepository
	surface  *Surface
	workflow *Workflow

	message string
	active  bool
}

func NewPublishStep(repos repo.Repository, export *repo.FileRepository, surface *Surface, workflow *Workflow) *PublishStep {
	return &PublishStep{repos: repos, export: export, surface: surface, workflow: workflow}
}

func (p *PublishStep) Activate(levelID string) {
	lvl := p.surface.Level()
	if lvl == nil {
		lvl = repo.Resolve(p.repos, levelID, p.surface.EntityRecords())
	} else {
		lvl.Entities = p.surface.EntityRecords()
	}
	lvl.Settings.Version = bumpVersion(lvl.Settings.Version)

	id, err := p.repos.SaveLevel(lvl)
	if err != nil {
		p.message = fmt.Sprintf("publish failed: %v", err)
		log.Printf("publish: %v", err)
		p.active = true
		return
	}
	if p.export != nil {
		if _, err := p.export.SaveLevel(lvl); err != nil {
			log.Printf("publish: export failed: %v", err)
		}
	}
	p.message = fmt.Sprintf("published %q as v%s (id %s)", lvl.Settings.Name, lvl.Settings.Version, id)
	p.active = true
}

func (p *PublishStep) Deactivate() {
	p.active = false
}

func (p *PublishStep) Update() {
	if !p.active {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		p.workflow.ChangeStep(StepDesign, "")
	}
}

func (p *PublishStep) Draw(screen *ebiten.Image) {
	if !p.active {
		return
	}
	ebitenutil.DebugPrint(screen, "PUBLISH\n\n  "+p.message+"\n\n  (enter or esc: back to design)")
}

// bumpVersion increments the minor part of a "major.minor" version string.
func bumpVersion(v string) string {
	parts := strings.Split(v, ".")
	if len(parts) == 2 {
		if minor, err := strconv.Atoi(parts[1]); err == nil {
			return fmt.Sprintf("%s.%d", parts[0], minor+1)
		}
	}
	return "1.1"
}
