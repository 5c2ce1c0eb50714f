package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/lafriks/go-tiled"
	"gopkg.in/yaml.v3"
)

// GameFiles are the accepted names of the game config, in lookup order
var GameFiles = []string{"game.yaml", "game.yml", "game.json"}

// Loader loads game configuration using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// BasePath returns the directory the loader reads from
func (l *Loader) BasePath() string {
	return l.basePath
}

// LoadGame loads the first game config found in GameFiles. Missing
// sections keep their defaults. The result is validated.
func (l *Loader) LoadGame() (*GameConfig, error) {
	for _, name := range GameFiles {
		data, err := fs.ReadFile(l.fsys, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		return ParseGame(name, data)
	}
	return nil, fmt.Errorf("failed to read game config: none of %s in %q: %w",
		strings.Join(GameFiles, ", "), l.basePath, fs.ErrNotExist)
}

// ParseGame decodes a game config; the format follows the file extension
func ParseGame(name string, data []byte) (*GameConfig, error) {
	cfg := GameConfig{
		Display: DefaultDisplayConfig(),
		Mover:   DefaultMoverConfig(),
	}

	var err error
	switch path.Ext(name) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}

	if err := cfg.Display.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if err := cfg.Mover.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &cfg, nil
}

// LoadStage loads a stage JSON file
func (l *Loader) LoadStage(name string) (*StageConfig, error) {
	p := "stages/" + name + ".json"
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return nil, fmt.Errorf("failed to read stage %s: %w", name, err)
	}

	var cfg StageConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse stage %s: %w", name, err)
	}
	if cfg.Height() == 0 {
		return nil, fmt.Errorf("stage %s: %w: no collision rows", name, ErrInvalidConfig)
	}

	return &cfg, nil
}

// LoadTMX imports a Tiled map as a stage. Tiles on the layer named "ground"
// become ground tiles, tiles on "wall" become wall tiles, and the first
// object of the "spawn" object group sets the player spawn.
func (l *Loader) LoadTMX(name string) (*StageConfig, error) {
	p := "stages/" + name + ".tmx"
	m, err := tiled.LoadFile(p, tiled.WithFileSystem(l.fsys))
	if err != nil {
		return nil, fmt.Errorf("failed to load TMX %s: %w", name, err)
	}

	rows := make([][]byte, m.Height)
	for y := range rows {
		rows[y] = []byte(strings.Repeat(EmptyChar, m.Width))
	}

	for _, layer := range m.Layers {
		var char byte
		switch strings.ToLower(layer.Name) {
		case "ground":
			char = GroundChar[0]
		case "wall":
			char = WallChar[0]
		default:
			continue
		}
		for y := 0; y < m.Height; y++ {
			for x := 0; x < m.Width; x++ {
				if tile := layer.Tiles[y*m.Width+x]; tile != nil && !tile.IsNil() {
					rows[y][x] = char
				}
			}
		}
	}

	cfg := &StageConfig{
		ID:          name,
		Name:        name,
		TileSize:    m.TileWidth,
		TileMapping: DefaultTileMapping(),
	}
	for _, row := range rows {
		cfg.Layers.Collision = append(cfg.Layers.Collision, string(row))
	}

	for _, og := range m.ObjectGroups {
		if !strings.EqualFold(og.Name, "spawn") || len(og.Objects) == 0 {
			continue
		}
		o := og.Objects[0]
		cfg.PlayerSpawn = PositionConfig{
			X: o.X / float64(m.TileWidth),
			Y: float64(m.Height) - o.Y/float64(m.TileHeight),
		}
		break
	}

	return cfg, nil
}

// LoadAnyStage loads stages/<name>.json, falling back to stages/<name>.tmx
func (l *Loader) LoadAnyStage(name string) (*StageConfig, error) {
	cfg, err := l.LoadStage(name)
	if err == nil || !errors.Is(err, fs.ErrNotExist) {
		return cfg, err
	}
	return l.LoadTMX(name)
}
