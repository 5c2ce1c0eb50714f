package system

import "github.com/younwookim/platformer/internal/domain/entity"

// Resolution is the outcome of one resolver step
type Resolution struct {
	Position entity.Vec2
	Vertical float64
	Blocked  bool // the full move was not possible
	Pushed   bool // the first step collided and the push-out nudge ran
}

// Resolve moves a character at position by velocity*dt against geometry on
// mask. A free target is committed as is. Otherwise the segment is split
// into maxIterations steps and the last free step is committed. When the
// first step already collides, falling velocity is cleared and the
// character is nudged along obstacle->position by the length of the move.
//
// This is a stepped approximation, not continuous collision: thin geometry
// can be skipped and diagonal embedding is not handled specially.
func Resolve(env Environment, bounds entity.Bounds, position, velocity entity.Vec2, dt float64, mask entity.LayerMask, maxIterations int) Resolution {
	move := velocity.Scale(dt)
	target := position.Add(move)
	res := Resolution{Position: position, Vertical: velocity.Y}

	obstacle, hit := env.Overlap(bounds.At(target), mask)
	if !hit {
		res.Position = target
		return res
	}
	res.Blocked = true

	for i := 1; i < maxIterations; i++ {
		t := float64(i) / float64(maxIterations)
		try := entity.LerpVec(position, target, t)
		if _, hit := env.Overlap(bounds.At(try), mask); !hit {
			res.Position = try
			continue
		}
		if i == 1 {
			if res.Vertical < 0 {
				res.Vertical = 0
			}
			away := position.Sub(obstacle).Normalized()
			res.Position = position.Add(away.Scale(move.Len()))
			res.Pushed = true
		}
		return res
	}
	return res
}
