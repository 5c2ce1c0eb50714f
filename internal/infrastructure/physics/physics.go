// Package physics provides the collision queries the mover runs against a
// tile stage. Three interchangeable backends answer the same queries: a
// direct tile grid, a chipmunk space and a resolv space.
package physics

import (
	"errors"
	"fmt"
	"math"

	"github.com/younwookim/platformer/internal/domain/entity"
)

// ErrUnknownBackend is returned by FromStage for an unrecognised backend name
var ErrUnknownBackend = errors.New("unknown physics backend")

// Backend names accepted by FromStage
const (
	BackendGrid     = "grid"
	BackendChipmunk = "chipmunk"
	BackendResolv   = "resolv"
)

// Backends lists every backend name in a stable order
var Backends = []string{BackendGrid, BackendChipmunk, BackendResolv}

// BorderTiles is how far past the stage edges the space-backed colliders
// model the solid ground that surrounds every stage.
const BorderTiles = 2

// Collider answers overlap and ray queries against static geometry.
// Overlap is strict: touching boxes do not overlap. Rays hit geometry they
// touch. When several colliders overlap a box the one with the lowest
// centre (then leftmost) is reported.
type Collider interface {
	Overlap(box entity.Box, mask entity.LayerMask) (obstacle entity.Vec2, hit bool)
	Raycast(origin, dir entity.Vec2, maxDistance float64, mask entity.LayerMask) bool
}

// FromStage builds the named backend for stage
func FromStage(stage *entity.Stage, backend string) (Collider, error) {
	switch backend {
	case BackendGrid, "":
		return NewGrid(stage), nil
	case BackendChipmunk:
		return NewChipmunk(stage), nil
	case BackendResolv:
		return NewResolv(stage), nil
	default:
		return nil, fmt.Errorf("failed to build collider: %w: %q", ErrUnknownBackend, backend)
	}
}

// forEachCollider calls fn with the box of every solid tile plus the ring
// of border ground tiles.
func forEachCollider(stage *entity.Stage, fn func(box entity.Box, layer entity.LayerMask)) {
	for ty := -BorderTiles; ty < stage.Height+BorderTiles; ty++ {
		for tx := -BorderTiles; tx < stage.Width+BorderTiles; tx++ {
			if tile := stage.GetTile(tx, ty); tile.Solid() {
				fn(stage.TileBox(tx, ty), tile.Layer)
			}
		}
	}
}

// lowerLeft reports whether a should be preferred over b as the reported obstacle
func lowerLeft(a, b entity.Vec2) bool {
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.X < b.X
}

// segmentHitsBox reports whether the closed segment origin + dir*[0, maxDistance]
// touches the closed box.
func segmentHitsBox(origin, dir entity.Vec2, maxDistance float64, box entity.Box) bool {
	lo, hi := box.Min(), box.Max()
	t0, t1 := 0.0, maxDistance
	return clipSlab(origin.X, dir.X, lo.X, hi.X, &t0, &t1) &&
		clipSlab(origin.Y, dir.Y, lo.Y, hi.Y, &t0, &t1)
}

func clipSlab(o, d, lo, hi float64, t0, t1 *float64) bool {
	if d == 0 {
		return o >= lo && o <= hi
	}
	a, b := (lo-o)/d, (hi-o)/d
	if a > b {
		a, b = b, a
	}
	*t0 = math.Max(*t0, a)
	*t1 = math.Min(*t1, b)
	return *t0 <= *t1
}
