package effect

import "math"

// Vec2 is a point or velocity in surface pixels
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// TrailGlow is a fading radial mark left at a past pointer position
type TrailGlow struct {
	Pos  Vec2
	ID   int
	Size float64 // radius in pixels, shrinks every frame
	Hue  int     // degrees, 0-359
}

// Particle is a ballistic burst mark subject to gravity and linear fade
type Particle struct {
	Pos  Vec2
	Vel  Vec2
	Life int // frames remaining
	Hue  int
	ID   int
}

// PointerState tracks the pointer between events
type PointerState struct {
	Pos     Vec2 // current position
	Last    Vec2 // position at the previous move, for velocity estimation
	Pressed bool
}
