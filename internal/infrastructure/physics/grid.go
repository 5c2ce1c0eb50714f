package physics

import (
	"math"

	"github.com/younwookim/platformer/internal/domain/entity"
)

// Grid queries the stage tiles directly. Everything outside the stage is
// ground, without limit.
type Grid struct {
	stage *entity.Stage
}

// NewGrid creates a grid collider over stage
func NewGrid(stage *entity.Stage) *Grid {
	return &Grid{stage: stage}
}

// Overlap implements Collider
func (g *Grid) Overlap(box entity.Box, mask entity.LayerMask) (entity.Vec2, bool) {
	lo, hi := box.Min(), box.Max()
	for wy := int(math.Floor(lo.Y)); wy <= int(math.Floor(hi.Y)); wy++ {
		for tx := int(math.Floor(lo.X)); tx <= int(math.Floor(hi.X)); tx++ {
			ty := g.stage.Height - 1 - wy
			if !mask.Has(g.stage.GetTile(tx, ty).Layer) {
				continue
			}
			if tile := g.stage.TileBox(tx, ty); box.Overlaps(tile) {
				return tile.Center, true
			}
		}
	}
	return entity.Vec2{}, false
}

// Raycast implements Collider
func (g *Grid) Raycast(origin, dir entity.Vec2, maxDistance float64, mask entity.LayerMask) bool {
	end := origin.Add(dir.Scale(maxDistance))
	minX, maxX := math.Min(origin.X, end.X), math.Max(origin.X, end.X)
	minY, maxY := math.Min(origin.Y, end.Y), math.Max(origin.Y, end.Y)

	// A segment ending exactly on a tile edge touches the tile below that edge too
	for wy := int(math.Ceil(minY)) - 1; wy <= int(math.Floor(maxY)); wy++ {
		for tx := int(math.Ceil(minX)) - 1; tx <= int(math.Floor(maxX)); tx++ {
			ty := g.stage.Height - 1 - wy
			if !mask.Has(g.stage.GetTile(tx, ty).Layer) {
				continue
			}
			if segmentHitsBox(origin, dir, maxDistance, g.stage.TileBox(tx, ty)) {
				return true
			}
		}
	}
	return false
}
