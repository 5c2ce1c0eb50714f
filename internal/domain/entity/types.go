package entity

import "math"

// EntityID is a unique identifier for an entity
type EntityID uint32

// LayerMask selects collision layers. A query matches geometry whose layer
// bits intersect the mask.
type LayerMask uint32

const (
	// LayerGround is floor-like geometry: floors, ceilings, ledges
	LayerGround LayerMask = 1 << iota
	// LayerWall is climbable/blocking wall geometry
	LayerWall

	LayerNone LayerMask = 0
	LayerAll  LayerMask = math.MaxUint32
)

// Has reports whether m shares any bit with o
func (m LayerMask) Has(o LayerMask) bool {
	return m&o != 0
}

// TileType represents the type of a tile
type TileType int

const (
	TileEmpty TileType = iota
	TileGround
	TileWall
)

// Tile represents a single tile in the stage
type Tile struct {
	Type  TileType
	Layer LayerMask
}

// Solid reports whether the tile belongs to any collision layer
func (t Tile) Solid() bool {
	return t.Layer != LayerNone
}

// Stage represents the current stage's tile data.
// Tiles are stored row-major with row 0 at the top, as authored. World
// coordinates are in tile units with Y pointing up, so tile (tx, ty) covers
// x in [tx, tx+1) and y in [Height-ty-1, Height-ty).
type Stage struct {
	Width    int
	Height   int
	TileSize int // pixels per tile, rendering only
	Tiles    [][]Tile
	Spawn    Vec2
}

// GetTile returns the tile at the given tile coordinates.
// Everything outside the stage is ground.
func (s *Stage) GetTile(tx, ty int) Tile {
	if tx < 0 || tx >= s.Width || ty < 0 || ty >= s.Height {
		return Tile{Type: TileGround, Layer: LayerGround}
	}
	return s.Tiles[ty][tx]
}

// TileCoord converts a world point to tile coordinates
func (s *Stage) TileCoord(p Vec2) (tx, ty int) {
	tx = int(math.Floor(p.X))
	ty = s.Height - 1 - int(math.Floor(p.Y))
	return tx, ty
}

// TileAt returns the tile containing the world point p
func (s *Stage) TileAt(p Vec2) Tile {
	return s.GetTile(s.TileCoord(p))
}

// TileBox returns the world-space box covered by tile (tx, ty)
func (s *Stage) TileBox(tx, ty int) Box {
	return Box{
		Center: Vec2{float64(tx) + 0.5, float64(s.Height-ty-1) + 0.5},
		Size:   Vec2{1, 1},
	}
}

// ForEachSolid calls fn for every solid tile inside the stage
func (s *Stage) ForEachSolid(fn func(tx, ty int, tile Tile)) {
	for ty := 0; ty < s.Height; ty++ {
		for tx := 0; tx < s.Width; tx++ {
			if tile := s.Tiles[ty][tx]; tile.Solid() {
				fn(tx, ty, tile)
			}
		}
	}
}
