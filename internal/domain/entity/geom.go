package entity

import "math"

// Vec2 is a 2D vector in world units. The Y axis points up.
type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Common unit directions
var (
	Up    = Vec2{0, 1}
	Down  = Vec2{0, -1}
	Left  = Vec2{-1, 0}
	Right = Vec2{1, 0}
)

// Add returns v + o
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v * s
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len returns the euclidean length of v
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Normalized returns v scaled to unit length, or the zero vector when v is
// too short to have a direction.
func (v Vec2) Normalized() Vec2 {
	l := v.Len()
	if l < 1e-9 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// LerpVec interpolates between a and b. t is clamped to [0, 1].
func LerpVec(a, b Vec2, t float64) Vec2 {
	return Vec2{Lerp(a.X, b.X, t), Lerp(a.Y, b.Y, t)}
}

// Lerp interpolates between a and b. t is clamped to [0, 1].
func Lerp(a, b, t float64) float64 {
	t = Clamp(t, 0, 1)
	return a + (b-a)*t
}

// InverseLerp returns where v sits between a and b, clamped to [0, 1].
// A degenerate range (a == b) yields 0.
func InverseLerp(a, b, v float64) float64 {
	if a == b {
		return 0
	}
	return Clamp((v-a)/(b-a), 0, 1)
}

// MoveTowards moves current toward target by at most maxDelta without
// overshooting.
func MoveTowards(current, target, maxDelta float64) float64 {
	if math.Abs(target-current) <= maxDelta {
		return target
	}
	return current + Sign(target-current)*maxDelta
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Sign returns 1 for v >= 0 and -1 otherwise.
func Sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
