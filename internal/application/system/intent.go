package system

import "github.com/younwookim/platformer/internal/domain/entity"

// InputIntent is the input snapshot the host captures once at tick start
type InputIntent struct {
	Axis         float64 // horizontal axis in [-1, 1]
	JumpHeld     bool
	JumpReleased bool // released during this tick
}

// Normalized clamps the axis into [-1, 1]
func (i InputIntent) Normalized() InputIntent {
	i.Axis = entity.Clamp(i.Axis, -1, 1)
	return i
}

// Idle reports whether there is no horizontal input
func (i InputIntent) Idle() bool {
	return i.Axis == 0
}
