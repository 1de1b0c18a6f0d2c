package editor

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"skyraid/repo"
)

// BrowseStep lists stored levels, newest first. When the export directory is
// known it is watched so edits made by external tools show up without
// restarting the step.
type BrowseStep struct {
	repos    repo.Repository
	watchDir string
	workflow *Workflow

	list     []repo.Entry
	selected int
	watcher  *repo.Watcher
	active   bool
}

func NewBrowseStep(repos repo.Repository, watchDir string, workflow *Workflow) *BrowseStep {
	return &BrowseStep{repos: repos, watchDir: watchDir, workflow: workflow}
}

func (b *BrowseStep) Activate(string) {
	b.refresh()
	if b.watcher == nil && b.watchDir != "" {
		w, err := repo.NewWatcher(b.watchDir)
		if err != nil {
			log.Printf("browse: level watch unavailable: %v", err)
		} else {
			b.watcher = w
		}
	}
	b.active = true
}

func (b *BrowseStep) Deactivate() {
	if !b.active {
		return
	}
	b.active = false
	if b.watcher != nil {
		_ = b.watcher.Close()
		b.watcher = nil
	}
}

func (b *BrowseStep) refresh() {
	list, err := b.repos.LevelList()
	if err != nil {
		log.Printf("browse: level list failed: %v", err)
		return
	}
	sort.Slice(list, func(i, j int) bool { return list[i].LastModified > list[j].LastModified })
	b.list = list
	if b.selected >= len(b.list) {
		b.selected = 0
	}
}

func (b *BrowseStep) Update() {
	if !b.active {
		return
	}
	if b.watcher != nil {
		refresh := false
	drain:
		for {
			select {
			case _, ok := <-b.watcher.Events:
				if !ok {
					break drain
				}
				refresh = true
			default:
				break drain
			}
		}
		if refresh {
			b.refresh()
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && b.selected > 0 {
		b.selected--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && b.selected < len(b.list)-1 {
		b.selected++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) && b.selected < len(b.list) {
		b.workflow.ChangeStep(StepDesign, b.list[b.selected].ID)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		b.workflow.ChangeStep(StepSetup, "")
	}
}

func (b *BrowseStep) Draw(screen *ebiten.Image) {
	if !b.active {
		return
	}
	var sb strings.Builder
	sb.WriteString("LEVELS  (enter: edit, n: new, esc: exit)\n\n")
	if len(b.list) == 0 {
		sb.WriteString("  no levels yet")
	}
	for i, e := range b.list {
		cursor := "  "
		if i == b.selected {
			cursor = "> "
		}
		name := e.Name
		if name == "" {
			name = e.ID
		}
		fmt.Fprintf(&sb, "%s%s  %s\n", cursor, name, time.Unix(e.LastModified, 0).Format("2006-01-02 15:04"))
	}
	ebitenutil.DebugPrint(screen, sb.String())
}
