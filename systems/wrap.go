package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/nairan/components"
)

// WrapSystem keeps ScreenWrap entities inside a region slightly larger than
// the viewport, so they leave one edge fully before reappearing at the other.
type WrapSystem struct {
	filter *ecs.Filter1[components.Transform]
	margin float64
}

// NewWrapSystem creates a new wrap system.
func NewWrapSystem(w *ecs.World, margin float64) *WrapSystem {
	return &WrapSystem{
		filter: ecs.NewFilter1[components.Transform](w).With(ecs.C[components.ScreenWrap]()),
		margin: margin,
	}
}

// Size returns the wrap region for a viewport.
func (s *WrapSystem) Size(viewport r2.Vec) r2.Vec {
	return r2.Vec{X: viewport.X + s.margin, Y: viewport.Y + s.margin}
}

// Update wraps every tagged entity for the given viewport size. Z is untouched.
func (s *WrapSystem) Update(viewport r2.Vec) {
	size := s.Size(viewport)
	query := s.filter.Query()
	for query.Next() {
		tr := query.Get()
		tr.Position = Wrap(tr.Position, size)
	}
}

// Wrap maps p into [-size/2, size/2) on each axis.
func Wrap(p, size r2.Vec) r2.Vec {
	return r2.Vec{X: wrapAxis(p.X, size.X), Y: wrapAxis(p.Y, size.Y)}
}

func wrapAxis(p, size float64) float64 {
	half := size / 2
	m := math.Mod(p+half, size)
	if m < 0 {
		m += size
	}
	// A tiny negative remainder can round up to size
	if m >= size {
		m = 0
	}
	return m - half
}
