package system

import "github.com/younwookim/platformer/internal/domain/entity"

// Environment is the host's collision query interface
type Environment interface {
	// Overlap reports whether any geometry on mask overlaps box. When it
	// does, obstacle is the centre of one overlapping collider.
	Overlap(box entity.Box, mask entity.LayerMask) (obstacle entity.Vec2, hit bool)
	// Raycast reports whether a ray from origin along dir hits geometry on
	// mask within maxDistance.
	Raycast(origin, dir entity.Vec2, maxDistance float64, mask entity.LayerMask) bool
}

// DetectorParams configures ray sampling along the bounds edges
type DetectorParams struct {
	GroundMask entity.LayerMask
	WallMask   entity.LayerMask
	Count      int     // rays per edge, >= 2
	RayLength  float64 // length of each detector ray
	EdgeInset  float64 // shortening of each edge at both ends
}

// RunDetection casts count rays from the edge r and reports whether any of
// them hits geometry on mask.
func RunDetection(env Environment, r entity.RayRange, count int, length float64, mask entity.LayerMask) bool {
	if mask == entity.LayerNone {
		return false
	}
	for _, p := range r.Samples(count) {
		if env.Raycast(p, r.Dir, length, mask) {
			return true
		}
	}
	return false
}

// Detect samples all four edges of box and returns the fresh contact state.
// It has no side effects; the same inputs always give the same result.
func Detect(env Environment, box entity.Box, p DetectorParams) entity.ContactState {
	rays := entity.RayRanges(box, p.EdgeInset)
	run := func(r entity.RayRange, mask entity.LayerMask) bool {
		return RunDetection(env, r, p.Count, p.RayLength, mask)
	}

	return entity.ContactState{
		Ground:    run(rays.Down, p.GroundMask),
		Ceiling:   run(rays.Up, p.GroundMask),
		SideLeft:  run(rays.Left, p.GroundMask),
		SideRight: run(rays.Right, p.GroundMask),
		WallLeft:  run(rays.Left, p.WallMask),
		WallRight: run(rays.Right, p.WallMask),
	}
}

// ApplyContactTransition records ground edges between the previous tick's
// contacts (m.Contacts) and next, then stores next. Leaving the ground
// stamps LastGrounded; touching down arms coyote time and reports a
// landing, unless the ceiling is touched in the same tick.
func ApplyContactTransition(m *entity.MotionState, next entity.ContactState, now float64) (landed bool) {
	prev := m.Contacts
	switch {
	case prev.Ground && !next.Ground:
		m.LastGrounded = now
	case !prev.Ground && next.Ground && !next.Ceiling:
		m.CoyoteUsable = true
		landed = true
	}
	m.Contacts = next
	return landed
}
