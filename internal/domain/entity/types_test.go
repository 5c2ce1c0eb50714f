package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func createTestStage() *Stage {
	// Row 0 is the top of the stage
	g := Tile{Type: TileGround, Layer: LayerGround}
	w := Tile{Type: TileWall, Layer: LayerWall}
	e := Tile{}
	tiles := [][]Tile{
		{w, e, e},
		{w, e, e},
		{g, g, g},
	}

	return &Stage{
		Width:    3,
		Height:   3,
		TileSize: 16,
		Tiles:    tiles,
		Spawn:    Vec2{1.5, 1},
	}
}

func TestStage_GetTile(t *testing.T) {
	stage := createTestStage()

	tests := []struct {
		name     string
		tx, ty   int
		wantType TileType
		wantMask LayerMask
	}{
		{"top-left wall", 0, 0, TileWall, LayerWall},
		{"top-center empty", 1, 0, TileEmpty, LayerNone},
		{"bottom-center ground", 1, 2, TileGround, LayerGround},
		{"outside is ground", -1, 0, TileGround, LayerGround},
		{"below is ground", 1, 3, TileGround, LayerGround},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tile := stage.GetTile(tt.tx, tt.ty)
			assert.Equal(t, tt.wantType, tile.Type)
			assert.Equal(t, tt.wantMask, tile.Layer)
		})
	}
}

func TestStage_TileAt_FlipsY(t *testing.T) {
	stage := createTestStage()

	// World y in [0,1) is the bottom row
	assert.Equal(t, TileGround, stage.TileAt(Vec2{1.5, 0.5}).Type)
	// World y in [2,3) is the top row
	assert.Equal(t, TileWall, stage.TileAt(Vec2{0.5, 2.5}).Type)
	assert.Equal(t, TileEmpty, stage.TileAt(Vec2{1.5, 2.5}).Type)
}

func TestStage_TileBox(t *testing.T) {
	stage := createTestStage()

	box := stage.TileBox(1, 2)
	assert.Equal(t, Vec2{1, 0}, box.Min())
	assert.Equal(t, Vec2{2, 1}, box.Max())
}

func TestStage_ForEachSolid(t *testing.T) {
	stage := createTestStage()

	count := 0
	walls := 0
	stage.ForEachSolid(func(_, _ int, tile Tile) {
		count++
		if tile.Layer.Has(LayerWall) {
			walls++
		}
	})

	assert.Equal(t, 5, count)
	assert.Equal(t, 2, walls)
}

func TestLayerMask_Has(t *testing.T) {
	assert.True(t, LayerAll.Has(LayerWall))
	assert.True(t, (LayerGround | LayerWall).Has(LayerGround))
	assert.False(t, LayerGround.Has(LayerWall))
	assert.False(t, LayerNone.Has(LayerAll))
}
