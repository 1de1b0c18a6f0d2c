package editor

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"skyraid/levels"
)

// HandleInput polls pointer and keyboard state for one tick. uiHovered
// suppresses canvas clicks so palette/toolbar presses don't also hit the
// canvas underneath; suppressHotkeys is set while a text widget has focus.
func (s *Surface) HandleInput(uiHovered, suppressHotkeys bool) {
	if _, wy := ebiten.Wheel(); wy != 0 {
		s.Pan(-wy)
	}

	if !suppressHotkeys {
		s.handleHotkeys()
	}

	cx, cy := ebiten.CursorPosition()
	cursor := levels.Position{X: float64(cx), Y: float64(cy)}
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)

	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) && s.Dragging() {
		s.DragEnd()
	}
	if uiHovered {
		return
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		switch s.state.Tool() {
		case ToolLock:
			if c := s.EntityAt(s.Camera.ScreenToWorld(cursor)); c != nil {
				s.ToggleLock(c.ID())
			}
		case ToolDelete:
			if c := s.EntityAt(s.Camera.ScreenToWorld(cursor)); c != nil {
				s.Delete(c.ID())
			}
		default:
			s.Click(cursor, shift)
		}
	}
	if s.Dragging() && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		s.DragTo(cursor)
	}
}

func (s *Surface) handleHotkeys() {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl)

	if inpututil.IsKeyJustPressed(ebiten.KeyZ) && ctrl {
		s.Undo()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) && ctrl {
		if _, err := s.Save(); err != nil {
			log.Printf("save failed: %v", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDelete) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		s.DeleteSelected()
	}

	// Tool hotkeys mirror the palette buttons.
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		s.state.SetTool(ToolSelect)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		s.state.SetTool(ToolPlace)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		s.state.SetTool(ToolLock)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		s.state.SetTool(ToolDelete)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		s.state.SetGridVisible(!s.state.GridVisible())
	}
}
