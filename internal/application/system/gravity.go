package system

import (
	"math"

	"github.com/younwookim/platformer/internal/domain/entity"
)

// UpdateApexAndFallSpeed returns how close an airborne character is to the
// top of its arc (1 at the apex, 0 at |vy| >= apexThreshold) and the fall
// speed blended from minFall to maxFall by that ratio. Grounded characters
// have an apex ratio of 0.
func UpdateApexAndFallSpeed(vy float64, grounded bool, apexThreshold, minFall, maxFall float64) (apexRatio, fallSpeed float64) {
	if grounded {
		return 0, minFall
	}
	apexRatio = entity.InverseLerp(apexThreshold, 0, math.Abs(vy))
	return apexRatio, entity.Lerp(minFall, maxFall, apexRatio)
}

// GravityParams are the per-tick inputs of ApplyGravity
type GravityParams struct {
	FallSpeed             float64
	EarlyCutoff           bool
	EarlyCutoffMultiplier float64
	FallClamp             float64 // terminal velocity, <= 0
	WallSlideSpeed        float64
}

// ApplyGravity returns the vertical velocity after one tick of gravity
func ApplyGravity(vy float64, c entity.ContactState, p GravityParams, dt float64) float64 {
	switch {
	case c.TouchingWall():
		if vy != 0 {
			vy = p.WallSlideSpeed
		}
	case c.Ground:
		if vy < 0 {
			vy = 0
		}
	default:
		fall := p.FallSpeed
		if p.EarlyCutoff && vy > 0 {
			fall *= p.EarlyCutoffMultiplier
		}
		vy -= fall * dt
		if vy < p.FallClamp {
			vy = p.FallClamp
		}
	}

	if c.Ceiling && vy > 0 {
		vy = 0
	}
	return vy
}
