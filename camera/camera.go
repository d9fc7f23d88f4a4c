// Package camera maps between screen pixels and the y-up world.
package camera

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

var (
	// ErrNoCursorInWindow is returned when the cursor is outside the window.
	ErrNoCursorInWindow = errors.New("cursor not in window")
	// ErrViewportUnprojection is returned when a screen point cannot be mapped to the world.
	ErrViewportUnprojection = errors.New("viewport unprojection failed")
)

// CursorSource reports the cursor in screen pixels (origin top-left, y down).
// ok is false when the cursor is not over the window.
type CursorSource interface {
	CursorPosition() (x, y float64, ok bool)
}

// Camera controls the viewport into the world.
// The camera center maps to the middle of the viewport; world Y grows upward.
type Camera struct {
	// Center is the camera position in world coordinates
	Center r2.Vec

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float64

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float64

	// Zoom constraints
	MinZoom, MaxZoom float64
}

// New creates a camera centered on the world origin with 1:1 zoom.
func New(viewportW, viewportH float64) *Camera {
	return &Camera{
		Zoom:      1.0,
		ViewportW: viewportW,
		ViewportH: viewportH,
		MinZoom:   0.25,
		MaxZoom:   4.0,
	}
}

// WorldToScreen converts world coordinates to screen pixels.
func (c *Camera) WorldToScreen(p r2.Vec) r2.Vec {
	d := r2.Scale(c.Zoom, r2.Sub(p, c.Center))
	return r2.Vec{X: c.ViewportW/2 + d.X, Y: c.ViewportH/2 - d.Y}
}

// ScreenToWorld converts screen pixels to world coordinates.
func (c *Camera) ScreenToWorld(s r2.Vec) r2.Vec {
	d := r2.Vec{X: s.X - c.ViewportW/2, Y: c.ViewportH/2 - s.Y}
	return r2.Add(c.Center, r2.Scale(1/c.Zoom, d))
}

// CursorWorld resolves the cursor to a world position.
func (c *Camera) CursorWorld(src CursorSource) (r2.Vec, error) {
	x, y, ok := src.CursorPosition()
	if !ok {
		return r2.Vec{}, ErrNoCursorInWindow
	}
	if !(c.Zoom > 0) || !(c.ViewportW > 0) || !(c.ViewportH > 0) {
		return r2.Vec{}, fmt.Errorf("%w: zoom %v viewport %vx%v", ErrViewportUnprojection, c.Zoom, c.ViewportW, c.ViewportH)
	}
	p := c.ScreenToWorld(r2.Vec{X: x, Y: y})
	if !finite(p.X) || !finite(p.Y) {
		return r2.Vec{}, fmt.Errorf("%w: screen (%v, %v)", ErrViewportUnprojection, x, y)
	}
	return p, nil
}

// IsVisible returns true if a circle at p with given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(p r2.Vec, radius float64) bool {
	d := r2.Sub(p, c.Center)
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	return math.Abs(d.X) <= halfW && math.Abs(d.Y) <= halfH
}

// GhostPositions returns extra screen positions for an entity that straddles
// the edge of a wrap region of the given size centered on the origin, so it
// appears on both sides while crossing. Returns up to 3 positions.
func (c *Camera) GhostPositions(p r2.Vec, radius float64, size r2.Vec) []r2.Vec {
	var ghosts []r2.Vec

	halfW, halfH := size.X/2, size.Y/2

	var hShift float64
	switch {
	case p.X > halfW-radius:
		hShift = -size.X
	case p.X < -halfW+radius:
		hShift = size.X
	}

	var vShift float64
	switch {
	case p.Y > halfH-radius:
		vShift = -size.Y
	case p.Y < -halfH+radius:
		vShift = size.Y
	}

	if hShift != 0 {
		ghosts = append(ghosts, c.WorldToScreen(r2.Vec{X: p.X + hShift, Y: p.Y}))
	}
	if vShift != 0 {
		ghosts = append(ghosts, c.WorldToScreen(r2.Vec{X: p.X, Y: p.Y + vShift}))
	}
	if hShift != 0 && vShift != 0 {
		ghosts = append(ghosts, c.WorldToScreen(r2.Vec{X: p.X + hShift, Y: p.Y + vShift}))
	}

	return ghosts
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float64) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float64) {
	c.Center.X += dx / c.Zoom
	c.Center.Y -= dy / c.Zoom
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float64) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float64) {
	c.SetZoom(c.Zoom * factor)
}

// Reset returns the camera to the origin at 1:1 zoom.
func (c *Camera) Reset() {
	c.Center = r2.Vec{}
	c.Zoom = 1.0
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
func (c *Camera) VisibleWorldBounds() (min, max r2.Vec) {
	half := r2.Vec{X: c.ViewportW / (2 * c.Zoom), Y: c.ViewportH / (2 * c.Zoom)}
	return r2.Sub(c.Center, half), r2.Add(c.Center, half)
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// clamp restricts a value to a range.
func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
