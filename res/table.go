// Package res builds the editor's image resources once at startup. Every
// consumer references images through a typed Handle, so there are no ad hoc
// existence checks scattered through drawing code.
package res

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"skyraid/levels"
)

// Handle identifies one image in the Table.
type Handle int

const (
	GridPixel Handle = iota
	MarkerEnemySpawner
	MarkerPlayerStart
	MarkerObstacle
	MarkerPowerupSpawner
	MarkerDecoration
	MarkerTrigger
	MarkerSelected
	MarkerLocked
	handleCount
)

// Table holds the generated placeholder images the editor draws with.
type Table struct {
	images [handleCount]*ebiten.Image
}

// markerSize is the edge length of generated entity markers in pixels.
const markerSize = 32

// NewTable generates every image up front.
func NewTable() *Table {
	t := &Table{}
	t.images[GridPixel] = solidImage(1, color.White)
	t.images[MarkerEnemySpawner] = triangleImage(markerSize, color.RGBA{R: 0xe0, G: 0x40, B: 0x40, A: 0xff})
	t.images[MarkerPlayerStart] = triangleImage(markerSize, color.RGBA{R: 0x40, G: 0xe0, B: 0x70, A: 0xff})
	t.images[MarkerObstacle] = solidImage(markerSize, color.RGBA{R: 0x80, G: 0x80, B: 0x90, A: 0xff})
	t.images[MarkerPowerupSpawner] = solidImage(markerSize, color.RGBA{R: 0x40, G: 0xa0, B: 0xe0, A: 0xff})
	t.images[MarkerDecoration] = solidImage(markerSize, color.RGBA{R: 0xc0, G: 0xc0, B: 0x60, A: 0xff})
	t.images[MarkerTrigger] = solidImage(markerSize, color.RGBA{R: 0xc0, G: 0x60, B: 0xc0, A: 0xff})
	t.images[MarkerSelected] = solidImage(markerSize, color.RGBA{R: 0xff, G: 0xdc, B: 0x50, A: 0xdc})
	t.images[MarkerLocked] = solidImage(markerSize, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0x60})
	return t
}

// Image returns the image for h.
func (t *Table) Image(h Handle) *ebiten.Image {
	return t.images[h]
}

// Marker returns the placement marker for an entity type.
func (t *Table) Marker(et levels.EntityType) *ebiten.Image {
	switch et {
	case levels.TypeEnemySpawner:
		return t.images[MarkerEnemySpawner]
	case levels.TypePlayerStart:
		return t.images[MarkerPlayerStart]
	case levels.TypeObstacle:
		return t.images[MarkerObstacle]
	case levels.TypePowerupSpawner:
		return t.images[MarkerPowerupSpawner]
	case levels.TypeDecoration:
		return t.images[MarkerDecoration]
	default:
		return t.images[MarkerTrigger]
	}
}

func solidImage(size int, c color.Color) *ebiten.Image {
	img := ebiten.NewImage(size, size)
	img.Fill(c)
	return img
}

// triangleImage builds an upward-pointing filled triangle marker.
func triangleImage(size int, col color.RGBA) *ebiten.Image {
	rgba := image.NewRGBA(image.Rect(0, 0, size, size))
	cx := float64(size) / 2
	for y := 0; y < size; y++ {
		progress := float64(y) / float64(size-1)
		rowWidth := progress * float64(size)
		left := cx - rowWidth/2
		right := cx + rowWidth/2
		for x := 0; x < size; x++ {
			fx := float64(x) + 0.5
			if fx >= left && fx <= right {
				rgba.Set(x, y, col)
			}
		}
	}
	return ebiten.NewImageFromImage(rgba)
}
