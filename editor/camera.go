package editor

import (
	"math"

	"skyraid/levels"
)

// wheelPanFactor converts one wheel notch into pixels of vertical scroll.
const wheelPanFactor = 24.0

// Camera is the design-surface viewport. Horizontal scroll is locked at zero
// and zoom is fixed at 1; the only navigation is vertical wheel panning.
// Scrolling downward is clamped at the level origin (scrollY <= 0) while
// scrolling upward is unbounded, because levels grow upward.
type Camera struct {
	scrollY   float64
	viewportW int
	viewportH int

	// last rounded scroll position, used to skip redundant grid redraws
	lastRounded int
}

func NewCamera(viewportW, viewportH int) *Camera {
	return &Camera{viewportW: viewportW, viewportH: viewportH}
}

// ScrollY returns the current vertical scroll (always <= 0).
func (c *Camera) ScrollY() float64 {
	return c.scrollY
}

// Viewport returns the viewport size in pixels.
func (c *Camera) Viewport() (int, int) {
	return c.viewportW, c.viewportH
}

// Zoom is fixed at 1; no zoom input is accepted.
func (c *Camera) Zoom() float64 {
	return 1
}

// Pan applies one wheel input. It reports whether the rounded scroll position
// changed, i.e. whether the grid actually needs a redraw.
func (c *Camera) Pan(wheelDY float64) bool {
	if wheelDY == 0 {
		return false
	}
	c.scrollY += wheelDY * wheelPanFactor
	if c.scrollY > 0 {
		c.scrollY = 0
	}
	rounded := int(math.Round(c.scrollY))
	if rounded == c.lastRounded {
		return false
	}
	c.lastRounded = rounded
	return true
}

// Reset recenters the camera at the level origin.
func (c *Camera) Reset() {
	c.scrollY = 0
	c.lastRounded = 0
}

// WorldToScreen maps a world point into viewport coordinates.
func (c *Camera) WorldToScreen(p levels.Position) levels.Position {
	return levels.Position{X: p.X, Y: p.Y - c.scrollY}
}

// ScreenToWorld maps a viewport point into world coordinates.
func (c *Camera) ScreenToWorld(p levels.Position) levels.Position {
	return levels.Position{X: p.X, Y: p.Y + c.scrollY}
}

// ViewportCenterScreen returns the center of the viewport in screen space.
func (c *Camera) ViewportCenterScreen() levels.Position {
	return levels.Position{X: float64(c.viewportW) / 2, Y: float64(c.viewportH) / 2}
}

// ViewportCenterWorld returns the world point currently at the viewport
// center. New entities are placed here.
func (c *Camera) ViewportCenterWorld() levels.Position {
	return c.ScreenToWorld(c.ViewportCenterScreen())
}
