package editor

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"skyraid/levels"
	"skyraid/res"
)

// gridColor tints the 1px grid lines.
var gridColor = color.RGBA{R: 90, G: 90, B: 110, A: 255}

// Draw renders the grid overlay and every entity marker. The grid image is
// only rebuilt when the rounded scroll position or grid settings changed.
func (s *Surface) Draw(screen *ebiten.Image, table *res.Table, gridImg **ebiten.Image) {
	if s.state.GridVisible() {
		if *gridImg == nil {
			*gridImg = ebiten.NewImage(s.Camera.viewportW, s.Camera.viewportH)
			s.gridStale = true
		}
		if s.gridStale {
			s.rebuildGrid(*gridImg, table)
			s.gridStale = false
		}
		screen.DrawImage(*gridImg, nil)
	}

	for _, c := range s.entities {
		img := table.Marker(c.Type())
		w, h := img.Bounds().Dx(), img.Bounds().Dy()
		sp := s.Camera.WorldToScreen(c.Pos)

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-float64(w)/2, -float64(h)/2)
		op.GeoM.Rotate(c.Rotation)
		op.GeoM.Scale(c.Scale, c.Scale)
		op.GeoM.Translate(sp.X, sp.Y)
		screen.DrawImage(img, op)

		if s.state.IsSelected(c.ID()) {
			s.drawOverlay(screen, table.Image(res.MarkerSelected), sp, c.Scale)
		}
		if c.Locked {
			s.drawOverlay(screen, table.Image(res.MarkerLocked), sp, c.Scale)
		}
	}
}

func (s *Surface) drawOverlay(screen, img *ebiten.Image, sp levels.Position, scale float64) {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(w)/2, -float64(h)/2)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(sp.X, sp.Y)
	screen.DrawImage(img, op)
}

func (s *Surface) rebuildGrid(dst *ebiten.Image, table *res.Table) {
	dst.Clear()
	size := s.state.GridSize()
	if size <= 0 {
		return
	}
	px := table.Image(res.GridPixel)

	// Vertical lines are fixed; horizontal lines shift with scroll.
	offY := int(s.Camera.ScrollY()) % size
	for x := 0; x < s.Camera.viewportW; x += size {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(1, float64(s.Camera.viewportH))
		op.GeoM.Translate(float64(x), 0)
		op.ColorScale.ScaleWithColor(gridColor)
		dst.DrawImage(px, op)
	}
	for y := -offY - size; y < s.Camera.viewportH+size; y += size {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(float64(s.Camera.viewportW), 1)
		op.GeoM.Translate(0, float64(y))
		op.ColorScale.ScaleWithColor(gridColor)
		dst.DrawImage(px, op)
	}
}
