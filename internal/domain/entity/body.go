package entity

import (
	"errors"
	"fmt"
)

// ErrNegativeSize is returned when a Bounds has a negative size component
var ErrNegativeSize = errors.New("bounds size must be non-negative")

// Bounds is the character's collision box relative to its position.
// Center is an offset from the position, Size is the full extent.
type Bounds struct {
	Center Vec2 `json:"center" yaml:"center"`
	Size   Vec2 `json:"size" yaml:"size"`
}

// Validate checks the size invariant
func (b Bounds) Validate() error {
	if b.Size.X < 0 || b.Size.Y < 0 {
		return fmt.Errorf("%w: got %.3fx%.3f", ErrNegativeSize, b.Size.X, b.Size.Y)
	}
	return nil
}

// At anchors the bounds to a character position
func (b Bounds) At(position Vec2) Box {
	return Box{Center: position.Add(b.Center), Size: b.Size}
}

// Box is an axis-aligned box in world coordinates
type Box struct {
	Center Vec2
	Size   Vec2
}

// Min returns the bottom-left corner
func (b Box) Min() Vec2 {
	return Vec2{b.Center.X - b.Size.X/2, b.Center.Y - b.Size.Y/2}
}

// Max returns the top-right corner
func (b Box) Max() Vec2 {
	return Vec2{b.Center.X + b.Size.X/2, b.Center.Y + b.Size.Y/2}
}

// Overlaps reports whether two boxes share interior area.
// Boxes that only touch along an edge do not overlap.
func (b Box) Overlaps(o Box) bool {
	bMin, bMax := b.Min(), b.Max()
	oMin, oMax := o.Min(), o.Max()
	return bMin.X < oMax.X && oMin.X < bMax.X &&
		bMin.Y < oMax.Y && oMin.Y < bMax.Y
}

// RayRange is one sampling edge of a box: detector rays start on the
// segment Start..End and are cast along Dir.
type RayRange struct {
	Start, End Vec2
	Dir        Vec2
}

// EdgeRays holds the four sampling edges of a box
type EdgeRays struct {
	Up, Down, Left, Right RayRange
}

// RayRanges builds the four sampling edges of box. Each edge is shortened by
// inset at both ends along its own axis so corner rays do not register the
// neighbouring surface.
func RayRanges(box Box, inset float64) EdgeRays {
	lo, hi := box.Min(), box.Max()
	return EdgeRays{
		Up:    RayRange{Start: Vec2{lo.X + inset, hi.Y}, End: Vec2{hi.X - inset, hi.Y}, Dir: Up},
		Down:  RayRange{Start: Vec2{lo.X + inset, lo.Y}, End: Vec2{hi.X - inset, lo.Y}, Dir: Down},
		Left:  RayRange{Start: Vec2{lo.X, lo.Y + inset}, End: Vec2{lo.X, hi.Y - inset}, Dir: Left},
		Right: RayRange{Start: Vec2{hi.X, lo.Y + inset}, End: Vec2{hi.X, hi.Y - inset}, Dir: Right},
	}
}

// All returns the edges in up, down, left, right order
func (e EdgeRays) All() [4]RayRange {
	return [4]RayRange{e.Up, e.Down, e.Left, e.Right}
}

// Samples returns count evenly spaced points from Start to End inclusive.
// count must be at least 2.
func (r RayRange) Samples(count int) []Vec2 {
	points := make([]Vec2, count)
	for i := 0; i < count; i++ {
		t := float64(i) / float64(count-1)
		points[i] = LerpVec(r.Start, r.End, t)
	}
	return points
}
