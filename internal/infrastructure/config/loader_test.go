package config

import (
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testGameYAML = `
display:
  screenWidth: 640
  screenHeight: 360
  framerate: 50
mover:
  walk:
    acceleration: 120
  jump:
    coyoteTime: 0.15
  collision:
    detectorCount: 4
`

const testGameJSON = `{
  "display": {"screenWidth": 320, "screenHeight": 240, "framerate": 60},
  "mover": {"jump": {"height": 25}, "collision": {"maxIterations": 8}}
}`

const testStageJSON = `{
  "id": "demo",
  "name": "Demo",
  "tileSize": 16,
  "playerSpawn": {"x": 2.5, "y": 1},
  "killY": -5,
  "layers": {"collision": [
    "W....",
    "W....",
    "#####"
  ]},
  "tileMapping": {
    "#": {"type": "ground", "layer": "ground"},
    "W": {"type": "wall", "layer": "wall"}
  }
}`

const testStageTMX = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="4" height="3" tilewidth="16" tileheight="16" infinite="0" nextlayerid="4" nextobjectid="2">
 <tileset firstgid="1" name="tiles" tilewidth="16" tileheight="16" tilecount="1" columns="1">
  <image source="tiles.png" width="16" height="16"/>
 </tileset>
 <layer id="1" name="ground" width="4" height="3">
  <data encoding="csv">
0,0,0,0,
0,0,0,0,
1,1,1,1
</data>
 </layer>
 <layer id="2" name="wall" width="4" height="3">
  <data encoding="csv">
0,0,0,1,
0,0,0,1,
0,0,0,0
</data>
 </layer>
 <objectgroup id="3" name="spawn">
  <object id="1" x="24" y="32"/>
 </objectgroup>
</map>
`

func TestLoader_LoadGame_YAML(t *testing.T) {
	loader := NewFSLoader(fstest.MapFS{
		"game.yaml": {Data: []byte(testGameYAML)},
	}, ".")

	cfg, err := loader.LoadGame()
	require.NoError(t, err)

	assert.Equal(t, 640, cfg.Display.ScreenWidth)
	assert.Equal(t, 50, cfg.Display.Framerate)
	assert.Equal(t, 120.0, cfg.Mover.Walk.Acceleration)
	assert.Equal(t, 0.15, cfg.Mover.Jump.CoyoteTime)
	assert.Equal(t, 4, cfg.Mover.Collision.DetectorCount)

	// Unspecified values keep defaults
	assert.Equal(t, 60.0, cfg.Mover.Walk.Deceleration)
	assert.Equal(t, 30.0, cfg.Mover.Jump.Height)
	assert.Equal(t, -40.0, cfg.Mover.Gravity.FallClamp)
}

func TestLoader_LoadGame_JSON(t *testing.T) {
	loader := NewFSLoader(fstest.MapFS{
		"game.json": {Data: []byte(testGameJSON)},
	}, ".")

	cfg, err := loader.LoadGame()
	require.NoError(t, err)

	assert.Equal(t, 25.0, cfg.Mover.Jump.Height)
	assert.Equal(t, 8, cfg.Mover.Collision.MaxIterations)
	assert.Equal(t, 3, cfg.Mover.Collision.DetectorCount)
}

func TestLoader_LoadGame_PrefersYAML(t *testing.T) {
	loader := NewFSLoader(fstest.MapFS{
		"game.json": {Data: []byte(testGameJSON)},
		"game.yaml": {Data: []byte(testGameYAML)},
	}, ".")

	cfg, err := loader.LoadGame()
	require.NoError(t, err)
	assert.Equal(t, 640, cfg.Display.ScreenWidth)
}

func TestLoader_LoadGame_Missing(t *testing.T) {
	loader := NewFSLoader(fstest.MapFS{}, "configs")

	_, err := loader.LoadGame()
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoader_LoadGame_RejectsInvalid(t *testing.T) {
	loader := NewFSLoader(fstest.MapFS{
		"game.yaml": {Data: []byte("mover:\n  collision:\n    detectorCount: 1\n")},
	}, ".")

	_, err := loader.LoadGame()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoader_LoadGame_Malformed(t *testing.T) {
	loader := NewFSLoader(fstest.MapFS{
		"game.json": {Data: []byte("{not json")},
	}, ".")

	_, err := loader.LoadGame()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse game.json")
}

func TestLoader_LoadStage(t *testing.T) {
	loader := NewFSLoader(fstest.MapFS{
		"stages/demo.json": {Data: []byte(testStageJSON)},
	}, ".")

	cfg, err := loader.LoadStage("demo")
	require.NoError(t, err)

	assert.Equal(t, "demo", cfg.ID)
	assert.Equal(t, 16, cfg.TileSize)
	assert.Equal(t, 5, cfg.Width())
	assert.Equal(t, 3, cfg.Height())
	assert.Equal(t, 2.5, cfg.PlayerSpawn.X)
	require.NotNil(t, cfg.KillY)
	assert.Equal(t, -5.0, *cfg.KillY)

	wall, ok := cfg.TileMapping["W"]
	require.True(t, ok)
	assert.Equal(t, "wall", wall.Layer)
}

func TestLoader_LoadTMX(t *testing.T) {
	loader := NewFSLoader(fstest.MapFS{
		"stages/level1.tmx": {Data: []byte(testStageTMX)},
	}, ".")

	cfg, err := loader.LoadTMX("level1")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"...W",
		"...W",
		"####",
	}, cfg.Layers.Collision)
	assert.Equal(t, 16, cfg.TileSize)
	assert.InDelta(t, 1.5, cfg.PlayerSpawn.X, 1e-9)
	assert.InDelta(t, 1.0, cfg.PlayerSpawn.Y, 1e-9)
	assert.Contains(t, cfg.TileMapping, GroundChar)
}

func TestLoader_LoadAnyStage_FallsBackToTMX(t *testing.T) {
	loader := NewFSLoader(fstest.MapFS{
		"stages/level1.tmx": {Data: []byte(testStageTMX)},
		"stages/demo.json":  {Data: []byte(testStageJSON)},
	}, ".")

	tmx, err := loader.LoadAnyStage("level1")
	require.NoError(t, err)
	assert.Equal(t, 4, tmx.Width())

	js, err := loader.LoadAnyStage("demo")
	require.NoError(t, err)
	assert.Equal(t, 5, js.Width())

	_, err = loader.LoadAnyStage("missing")
	assert.Error(t, err)
}
