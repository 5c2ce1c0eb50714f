package system

import "github.com/younwookim/platformer/internal/domain/entity"

// CoyoteEligible reports whether a jump may still use the grace window
// after walking off a ledge.
func CoyoteEligible(m *entity.MotionState, grounded bool, coyoteTime, now float64) bool {
	return m.CoyoteUsable && !grounded && m.LastGrounded+coyoteTime > now
}

// BufferEligible reports whether a jump pressed shortly before landing
// should fire now.
func BufferEligible(m *entity.MotionState, grounded bool, buffer, now float64) bool {
	return grounded && m.LastJumpPressed+buffer > now
}

// DecideJump reports whether a jump triggers this tick. A buffered press
// fires on its own; coyote and wall jumps need the button held.
func DecideJump(in InputIntent, c entity.ContactState, coyote, buffered bool) bool {
	if in.JumpHeld && coyote {
		return true
	}
	if buffered {
		return true
	}
	return in.JumpHeld && c.TouchingWall()
}

// ApplyJump launches the character and consumes coyote time
func ApplyJump(m *entity.MotionState, height float64) {
	m.Vertical = height
	m.EarlyCutoff = false
	m.CoyoteUsable = false
	m.LastGrounded = entity.Never
}

// ShouldCutoffEarly reports whether releasing jump now truncates the rise
func ShouldCutoffEarly(in InputIntent, c entity.ContactState, active bool, vy float64) bool {
	return !c.Ground && in.JumpReleased && !active && vy > 0
}
