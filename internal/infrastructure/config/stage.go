package config

import "unicode/utf8"

// StageConfig is the root config for stage files.
// Collision rows are authored top to bottom, one character per tile.
type StageConfig struct {
	ID          string                       `json:"id"`
	Name        string                       `json:"name"`
	TileSize    int                          `json:"tileSize"`
	Background  BackgroundConfig             `json:"background"`
	PlayerSpawn PositionConfig               `json:"playerSpawn"`
	KillY       *float64                     `json:"killY,omitempty"`
	Layers      LayersConfig                 `json:"layers"`
	TileMapping map[string]TileMappingConfig `json:"tileMapping"`
}

type BackgroundConfig struct {
	Color string `json:"color"`
}

// PositionConfig is a world position in tile units, Y up
type PositionConfig struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type LayersConfig struct {
	Collision []string `json:"collision"`
}

// TileMappingConfig maps a collision character to a tile.
// Layer is one of the names accepted by ParseLayers.
type TileMappingConfig struct {
	Type  string `json:"type"`
	Layer string `json:"layer"`
}

// Tile characters used when a stage is imported from a TMX map
const (
	GroundChar = "#"
	WallChar   = "W"
	EmptyChar  = "."
)

// DefaultTileMapping is the mapping used by imported stages
func DefaultTileMapping() map[string]TileMappingConfig {
	return map[string]TileMappingConfig{
		GroundChar: {Type: "ground", Layer: "ground"},
		WallChar:   {Type: "wall", Layer: "wall"},
	}
}

// Width returns the widest collision row in tiles, counting runes
func (s *StageConfig) Width() int {
	w := 0
	for _, row := range s.Layers.Collision {
		if n := utf8.RuneCountInString(row); n > w {
			w = n
		}
	}
	return w
}

// Height returns the number of collision rows
func (s *StageConfig) Height() int {
	return len(s.Layers.Collision)
}
