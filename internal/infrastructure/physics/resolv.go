package physics

import (
	"github.com/solarlune/resolv"

	"github.com/younwookim/platformer/internal/domain/entity"
)

const (
	// resolv works in whole units with a one-unit edge convention, so world
	// tiles are scaled up before they enter the space.
	resolvScale = 16
	resolvCell  = resolvScale
)

var layerTags = map[entity.LayerMask]string{
	entity.LayerGround: "ground",
	entity.LayerWall:   "wall",
}

// Resolv answers queries from a resolv space. Queries add a temporary probe
// object, gather candidates from its cells and refine them exactly.
type Resolv struct {
	space  *resolv.Space
	offset entity.Vec2
}

// NewResolv builds a resolv space from stage. The space also covers the
// border ring around the stage.
func NewResolv(stage *entity.Stage) *Resolv {
	w := (stage.Width + 2*BorderTiles) * resolvScale
	h := (stage.Height + 2*BorderTiles) * resolvScale
	r := &Resolv{
		space:  resolv.NewSpace(w, h, resolvCell, resolvCell),
		offset: entity.Vec2{X: BorderTiles, Y: BorderTiles},
	}

	forEachCollider(stage, func(box entity.Box, layer entity.LayerMask) {
		x, y, bw, bh := r.toSpace(box)
		obj := resolv.NewObject(x, y, bw, bh, tagsFor(layer)...)
		obj.SetShape(resolv.NewRectangle(0, 0, bw, bh))
		r.space.Add(obj)
	})
	return r
}

// Overlap implements Collider
func (r *Resolv) Overlap(box entity.Box, mask entity.LayerMask) (entity.Vec2, bool) {
	var (
		obstacle entity.Vec2
		hit      bool
	)
	for _, other := range r.candidates(box, mask) {
		if !box.Overlaps(other) {
			continue
		}
		if !hit || lowerLeft(other.Center, obstacle) {
			obstacle = other.Center
			hit = true
		}
	}
	return obstacle, hit
}

// Raycast implements Collider
func (r *Resolv) Raycast(origin, dir entity.Vec2, maxDistance float64, mask entity.LayerMask) bool {
	end := origin.Add(dir.Scale(maxDistance))
	sweep := entity.Box{
		Center: entity.LerpVec(origin, end, 0.5),
		Size:   entity.Vec2{X: abs(end.X - origin.X), Y: abs(end.Y - origin.Y)},
	}
	for _, other := range r.candidates(sweep, mask) {
		if segmentHitsBox(origin, dir, maxDistance, other) {
			return true
		}
	}
	return false
}

// candidates returns the world boxes of objects on mask that share a cell
// with box grown by one space unit.
func (r *Resolv) candidates(box entity.Box, mask entity.LayerMask) []entity.Box {
	tags := tagsFor(mask)
	if len(tags) == 0 {
		return nil
	}

	x, y, w, h := r.toSpace(box)
	probe := resolv.NewObject(x-1, y-1, w+2, h+2)
	r.space.Add(probe)
	defer r.space.Remove(probe)

	check := probe.Check(0, 0, tags...)
	if check == nil {
		return nil
	}
	objects := check.ObjectsByTags(tags...)
	boxes := make([]entity.Box, 0, len(objects))
	for _, obj := range objects {
		boxes = append(boxes, r.fromSpace(obj))
	}
	return boxes
}

func (r *Resolv) toSpace(b entity.Box) (x, y, w, h float64) {
	lo := b.Min().Add(r.offset)
	return lo.X * resolvScale, lo.Y * resolvScale, b.Size.X * resolvScale, b.Size.Y * resolvScale
}

func (r *Resolv) fromSpace(obj *resolv.Object) entity.Box {
	size := entity.Vec2{X: obj.W / resolvScale, Y: obj.H / resolvScale}
	lo := entity.Vec2{X: obj.X / resolvScale, Y: obj.Y / resolvScale}.Sub(r.offset)
	return entity.Box{Center: lo.Add(size.Scale(0.5)), Size: size}
}

func tagsFor(mask entity.LayerMask) []string {
	var tags []string
	for _, layer := range []entity.LayerMask{entity.LayerGround, entity.LayerWall} {
		if mask.Has(layer) {
			tags = append(tags, layerTags[layer])
		}
	}
	return tags
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
