package system

import (
	"fmt"

	"github.com/younwookim/platformer/internal/domain/entity"
	"github.com/younwookim/platformer/internal/infrastructure/config"
)

var tileTypes = map[string]entity.TileType{
	"ground": entity.TileGround,
	"wall":   entity.TileWall,
}

// LoadStage converts a StageConfig into a Stage entity.
// Unmapped characters are empty tiles; short rows are padded with empty tiles.
func LoadStage(cfg *config.StageConfig) (*entity.Stage, error) {
	width := cfg.Width()
	height := cfg.Height()
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("failed to load stage %q: %w: no collision rows", cfg.ID, config.ErrInvalidConfig)
	}

	lookup := make(map[rune]entity.Tile, len(cfg.TileMapping))
	for char, mapping := range cfg.TileMapping {
		runes := []rune(char)
		if len(runes) != 1 {
			return nil, fmt.Errorf("failed to load stage %q: %w: tile key %q must be one character", cfg.ID, config.ErrInvalidConfig, char)
		}
		var layer entity.LayerMask
		if mapping.Layer != "" {
			var err error
			if layer, err = config.ParseLayers([]string{mapping.Layer}); err != nil {
				return nil, fmt.Errorf("failed to load stage %q: %w", cfg.ID, err)
			}
		}
		lookup[runes[0]] = entity.Tile{Type: tileTypes[mapping.Type], Layer: layer}
	}

	tiles := make([][]entity.Tile, height)
	for y, row := range cfg.Layers.Collision {
		tiles[y] = make([]entity.Tile, width)
		x := 0
		for _, char := range row {
			tiles[y][x] = lookup[char]
			x++
		}
	}

	return &entity.Stage{
		Width:    width,
		Height:   height,
		TileSize: cfg.TileSize,
		Tiles:    tiles,
		Spawn:    entity.Vec2{X: cfg.PlayerSpawn.X, Y: cfg.PlayerSpawn.Y},
	}, nil
}
