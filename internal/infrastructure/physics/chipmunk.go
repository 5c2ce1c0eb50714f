package physics

import (
	"github.com/jakecoffman/cp"

	"github.com/younwookim/platformer/internal/domain/entity"
)

// Chipmunk answers queries from a chipmunk space holding one static box per
// solid tile. Shape categories carry the tile's layer bits.
type Chipmunk struct {
	space *cp.Space
}

// NewChipmunk builds a chipmunk space from stage
func NewChipmunk(stage *entity.Stage) *Chipmunk {
	space := cp.NewSpace()
	forEachCollider(stage, func(box entity.Box, layer entity.LayerMask) {
		shape := cp.NewBox2(space.StaticBody, toBB(box), 0)
		shape.SetFilter(cp.ShapeFilter{
			Group:      cp.NO_GROUP,
			Categories: uint(layer),
			Mask:       cp.ALL_CATEGORIES,
		})
		space.AddShape(shape)
	})
	return &Chipmunk{space: space}
}

// Overlap implements Collider
func (c *Chipmunk) Overlap(box entity.Box, mask entity.LayerMask) (entity.Vec2, bool) {
	var (
		obstacle entity.Vec2
		hit      bool
	)
	// BBQuery also reports touching boxes; keep strict overlaps only
	c.space.BBQuery(toBB(box), queryFilter(mask), func(shape *cp.Shape, _ interface{}) {
		other := fromBB(shape.BB())
		if !box.Overlaps(other) {
			return
		}
		if !hit || lowerLeft(other.Center, obstacle) {
			obstacle = other.Center
			hit = true
		}
	}, nil)
	return obstacle, hit
}

// Raycast implements Collider
func (c *Chipmunk) Raycast(origin, dir entity.Vec2, maxDistance float64, mask entity.LayerMask) bool {
	end := origin.Add(dir.Scale(maxDistance))
	info := c.space.SegmentQueryFirst(toVector(origin), toVector(end), 0, queryFilter(mask))
	return info.Shape != nil
}

func queryFilter(mask entity.LayerMask) cp.ShapeFilter {
	return cp.ShapeFilter{
		Group:      cp.NO_GROUP,
		Categories: cp.ALL_CATEGORIES,
		Mask:       uint(mask),
	}
}

func toVector(v entity.Vec2) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

func toBB(b entity.Box) cp.BB {
	lo, hi := b.Min(), b.Max()
	return cp.BB{L: lo.X, B: lo.Y, R: hi.X, T: hi.Y}
}

func fromBB(bb cp.BB) entity.Box {
	return entity.Box{
		Center: entity.Vec2{X: (bb.L + bb.R) / 2, Y: (bb.B + bb.T) / 2},
		Size:   entity.Vec2{X: bb.R - bb.L, Y: bb.T - bb.B},
	}
}
