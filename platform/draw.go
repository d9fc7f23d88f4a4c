package platform

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/nairan/camera"
	"github.com/pthm-cable/nairan/components"
	"github.com/pthm-cable/nairan/config"
)

var (
	backgroundColor = rl.Color{R: 12, G: 14, B: 24, A: 255}
	shipColor       = rl.Color{R: 220, G: 230, B: 255, A: 255}
	walkColor       = rl.Color{R: 160, G: 200, B: 255, A: 255}
	projectileColor = rl.Color{R: 255, G: 220, B: 90, A: 255}
	exhaustColor    = rl.Color{R: 255, G: 140, B: 40, A: 255}
)

// shipHalfSize is the ship triangle's half extent before scaling.
const shipHalfSize = 8.0

// Renderer draws the world with raylib primitives in place of sprite sheets.
// Atlas indices still drive the shapes so animation is visible.
type Renderer struct {
	ships       *ecs.Filter2[components.Transform, components.Sprite]
	effects     *ecs.Filter3[components.Transform, components.Sprite, components.AnimationIndices]
	projectiles *ecs.Filter2[components.Transform, components.Projectile]

	walkFrames int
	idleFrames int
}

// NewRenderer creates a renderer for the given world.
func NewRenderer(w *ecs.World, cfg *config.Config) *Renderer {
	return &Renderer{
		ships:       ecs.NewFilter2[components.Transform, components.Sprite](w).With(ecs.C[components.Ship]()),
		effects:     ecs.NewFilter3[components.Transform, components.Sprite, components.AnimationIndices](w),
		projectiles: ecs.NewFilter2[components.Transform, components.Projectile](w),
		walkFrames:  cfg.Player.WalkFrames,
		idleFrames:  cfg.Player.IdleFrames,
	}
}

// Draw renders a frame. wrapSize is the screen wrap region used for ghost copies.
func (r *Renderer) Draw(cam *camera.Camera, wrapSize r2.Vec, paused bool) {
	rl.BeginDrawing()
	defer rl.EndDrawing()
	rl.ClearBackground(backgroundColor)

	// Effects first; they sit below the ship
	eq := r.effects.Query()
	for eq.Next() {
		tr, sprite, indices := eq.Get()
		if !sprite.Visible {
			continue
		}
		r.drawExhaust(cam, tr, sprite, indices)
	}

	sq := r.ships.Query()
	for sq.Next() {
		tr, sprite := sq.Get()
		if !sprite.Visible {
			continue
		}
		radius := shipHalfSize * tr.Scale
		r.drawShip(cam.WorldToScreen(tr.Position), tr, sprite, cam.Zoom)
		for _, ghost := range cam.GhostPositions(tr.Position, radius, wrapSize) {
			r.drawShip(ghost, tr, sprite, cam.Zoom)
		}
	}

	pq := r.projectiles.Query()
	for pq.Next() {
		tr, _ := pq.Get()
		if !cam.IsVisible(tr.Position, 4) {
			continue
		}
		rl.DrawCircleV(toRL(cam.WorldToScreen(tr.Position)), float32(math.Max(2, 100*tr.Scale*cam.Zoom)), projectileColor)
	}

	if paused {
		rl.DrawText("PAUSED", int32(cam.ViewportW/2)-40, 20, 20, rl.Yellow)
	}
}

// drawShip draws a triangle pointing along the ship's forward axis. Walk
// frames bob the nose so the animation reads without a sprite sheet.
func (r *Renderer) drawShip(center r2.Vec, tr *components.Transform, sprite *components.Sprite, zoom float64) {
	size := shipHalfSize * tr.Scale * zoom
	col := shipColor

	nose := 1.5
	if sprite.AtlasIndex >= r.idleFrames {
		frame := sprite.AtlasIndex - r.idleFrames
		nose += 0.15 * math.Sin(2*math.Pi*float64(frame)/float64(r.walkFrames))
		col = walkColor
	}

	// Screen space is y-down, so flip the rotation sense
	fwd := screenDir(tr.Forward())
	right := screenDir(tr.Right())

	tip := r2.Add(center, r2.Scale(size*nose, fwd))
	back := r2.Sub(center, r2.Scale(size, fwd))
	left := r2.Sub(back, r2.Scale(size, right))
	rightPt := r2.Add(back, r2.Scale(size, right))

	// raylib wants counter-clockwise winding on screen
	rl.DrawTriangle(toRL(tip), toRL(left), toRL(rightPt), col)

	// Facing marker on the side the sprite would face
	side := 0.4
	if sprite.FlipX {
		side = -side
	}
	rl.DrawCircleV(toRL(r2.Add(center, r2.Scale(size*side, right))), float32(size*0.2), backgroundColor)
}

// drawExhaust draws a flame whose length cycles with the animation frame.
func (r *Renderer) drawExhaust(cam *camera.Camera, tr *components.Transform, sprite *components.Sprite, indices *components.AnimationIndices) {
	span := indices.Last - indices.First + 1
	phase := float64(sprite.AtlasIndex-indices.First) / float64(span)
	length := (6 + 6*math.Sin(2*math.Pi*phase)) * tr.Scale * cam.Zoom

	center := cam.WorldToScreen(tr.Position)
	back := screenDir(r2.Scale(-1, tr.Forward()))
	rl.DrawCircleV(toRL(center), float32(3*tr.Scale*cam.Zoom), exhaustColor)
	rl.DrawLineEx(toRL(center), toRL(r2.Add(center, r2.Scale(length, back))), float32(2*tr.Scale*cam.Zoom), rl.Fade(exhaustColor, 0.6))
}

// screenDir converts a y-up world direction to y-down screen space.
func screenDir(v r2.Vec) r2.Vec {
	return r2.Vec{X: v.X, Y: -v.Y}
}

func toRL(v r2.Vec) rl.Vector2 {
	return rl.NewVector2(float32(v.X), float32(v.Y))
}
