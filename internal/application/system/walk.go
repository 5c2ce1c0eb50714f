package system

import "github.com/younwookim/platformer/internal/domain/entity"

// WalkParams are the horizontal movement tunables
type WalkParams struct {
	Acceleration float64
	Deceleration float64
	MoveClamp    float64
	ApexBonus    float64
}

// UpdateHorizontal returns the horizontal velocity after one tick.
// Input accelerates up to ±MoveClamp with extra push near the jump apex;
// no input decays toward zero. Moving into a side or wall contact stops.
func UpdateHorizontal(vx, axis float64, c entity.ContactState, apexRatio float64, p WalkParams, dt float64) float64 {
	if axis != 0 {
		vx += axis * p.Acceleration * dt
		vx = entity.Clamp(vx, -p.MoveClamp, p.MoveClamp)
		vx += entity.Sign(axis) * p.ApexBonus * apexRatio * dt
	} else {
		vx = entity.MoveTowards(vx, 0, p.Deceleration*dt)
	}

	if (vx > 0 && c.BlockedRight()) || (vx < 0 && c.BlockedLeft()) {
		vx = 0
	}
	return vx
}
