package entity

import "math"

// ContactState holds the contact flags derived from detector rays in a
// single tick. Side flags come from the ground layer, Wall flags from the
// wall layer.
type ContactState struct {
	Ground    bool
	Ceiling   bool
	SideLeft  bool
	SideRight bool
	WallLeft  bool
	WallRight bool
}

// TouchingWall reports contact with wall-layer geometry on either side
func (c ContactState) TouchingWall() bool {
	return c.WallLeft || c.WallRight
}

// BlockedLeft reports any contact on the left edge
func (c ContactState) BlockedLeft() bool {
	return c.SideLeft || c.WallLeft
}

// BlockedRight reports any contact on the right edge
func (c ContactState) BlockedRight() bool {
	return c.SideRight || c.WallRight
}

// MotionState is the persistent per-character movement state
type MotionState struct {
	Position     Vec2
	LastPosition Vec2
	// Velocity measured from the last tick's displacement
	MeasuredVelocity Vec2

	Horizontal float64
	Vertical   float64

	ApexRatio float64
	FallSpeed float64

	LastGrounded    float64
	LastJumpPressed float64
	CoyoteUsable    bool
	EarlyCutoff     bool

	Contacts ContactState
}

// Never is the timestamp used for "no such event yet"
var Never = math.Inf(-1)

// NewMotionState creates the state of a freshly spawned character
func NewMotionState(spawn Vec2) MotionState {
	return MotionState{
		Position:        spawn,
		LastPosition:    spawn,
		LastGrounded:    Never,
		LastJumpPressed: Never,
		EarlyCutoff:     true,
	}
}

// Velocity returns the commanded velocity
func (m *MotionState) Velocity() Vec2 {
	return Vec2{m.Horizontal, m.Vertical}
}
