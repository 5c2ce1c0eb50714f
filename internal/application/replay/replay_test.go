package replay

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/platformer/internal/application/system"
	"github.com/younwookim/platformer/internal/domain/entity"
	"github.com/younwookim/platformer/internal/infrastructure/config"
	"github.com/younwookim/platformer/internal/infrastructure/physics"
)

func createTestSession() Session {
	cfg := config.DefaultMoverConfig()
	cfg.ActivationDelay = 0
	return Session{
		Stage:    "test",
		Backend:  physics.BackendGrid,
		TickRate: 60,
		Spawn:    entity.Vec2{X: 1.5, Y: 3},
		Mover:    cfg,
	}
}

// createTestEnv builds a 12x5 stage with a floor and a step on the right
func createTestEnv(t *testing.T) system.Environment {
	t.Helper()
	stage, err := system.LoadStage(&config.StageConfig{
		ID: "test",
		Layers: config.LayersConfig{Collision: []string{
			"............",
			"............",
			"............",
			".........###",
			"############",
		}},
		TileMapping: config.DefaultTileMapping(),
	})
	require.NoError(t, err)
	return physics.NewGrid(stage)
}

// createTestReplayData records a short run: wait, walk right, jump, release
func createTestReplayData() ReplayData {
	rec := NewRecorder(createTestSession())
	for i := 0; i < 120; i++ {
		in := system.InputIntent{}
		if i >= 30 && i < 100 {
			in.Axis = 1
		}
		if i >= 60 && i < 70 {
			in.JumpHeld = true
		}
		if i == 70 {
			in.JumpReleased = true
		}
		rec.RecordFrame(in, false)
	}
	return rec.Data()
}

func TestFrameInput_Intent(t *testing.T) {
	in := system.InputIntent{Axis: -0.5, JumpHeld: true, JumpReleased: true}

	frame := NewFrameInput(7, in, true)

	assert.Equal(t, 7, frame.F)
	assert.True(t, frame.RS)
	assert.Equal(t, in, frame.Intent())
}

func TestFrameInput_OmitsIdleFields(t *testing.T) {
	data, err := json.Marshal(NewFrameInput(3, system.InputIntent{}, false))
	require.NoError(t, err)

	assert.JSONEq(t, `{"f":3}`, string(data))
}

func TestReplayData_DT(t *testing.T) {
	assert.InDelta(t, 1.0/30.0, (&ReplayData{TickRate: 30}).DT(), 1e-12)
	assert.InDelta(t, 1.0/60.0, (&ReplayData{}).DT(), 1e-12)
}

func TestRecorder(t *testing.T) {
	rec := NewRecorder(createTestSession())
	require.True(t, rec.IsRecording())

	rec.RecordFrame(system.InputIntent{Axis: 1}, false)
	rec.RecordFrame(system.InputIntent{JumpHeld: true}, true)
	rec.Stop()
	rec.RecordFrame(system.InputIntent{Axis: -1}, false)

	data := rec.Data()
	assert.False(t, rec.IsRecording())
	assert.Equal(t, 2, rec.FrameCount())
	assert.Equal(t, Version, data.Version)
	assert.Equal(t, 60, data.TickRate)
	assert.Equal(t, entity.Vec2{X: 1.5, Y: 3}, data.Spawn)
	require.NotNil(t, data.Mover)
	assert.Equal(t, 0, data.Frames[0].F)
	assert.Equal(t, 1, data.Frames[1].F)
	assert.True(t, data.Frames[1].RS)
}

func TestRecorder_SaveAndLoad(t *testing.T) {
	rec := NewRecorder(createTestSession())
	rec.RecordFrame(system.InputIntent{Axis: 1}, false)
	rec.RecordFrame(system.InputIntent{Axis: 1, JumpHeld: true}, false)
	rec.SetFinal(entity.Vec2{X: 2, Y: 1})
	path := filepath.Join(t.TempDir(), "replay.json")

	require.NoError(t, rec.Save(path))
	loaded, err := LoadReplay(path)
	require.NoError(t, err)

	assert.Equal(t, rec.Data().Frames, loaded.Frames)
	assert.Equal(t, rec.Data().Mover, loaded.Mover)
	require.NotNil(t, loaded.Final)
	assert.Equal(t, entity.Vec2{X: 2, Y: 1}, *loaded.Final)
}

func TestRecorder_SaveEmpty(t *testing.T) {
	rec := NewRecorder(createTestSession())

	err := rec.Save(filepath.Join(t.TempDir(), "empty.json"))

	assert.ErrorIs(t, err, ErrEmptyRecording)
}

func TestSaveReplay(t *testing.T) {
	data := createTestReplayData()
	path := filepath.Join(t.TempDir(), "data.json")

	require.NoError(t, SaveReplay(path, &data))
	loaded, err := LoadReplay(path)
	require.NoError(t, err)
	assert.Equal(t, data.Frames, loaded.Frames)
	assert.Equal(t, data.TickRate, loaded.TickRate)

	t.Run("bad path", func(t *testing.T) {
		err := SaveReplay(filepath.Join(t.TempDir(), "missing", "data.json"), &data)
		assert.Error(t, err)
	})
}

func TestLoadReplay_Missing(t *testing.T) {
	_, err := LoadReplay(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestReplayer_Next(t *testing.T) {
	data := ReplayData{
		Frames: []FrameInput{
			{F: 0, A: -1},
			{F: 1, A: 1, J: true},
			{F: 2, JR: true, RS: true},
		},
	}

	replayer := NewReplayer(data)

	frame, ok := replayer.Next()
	require.True(t, ok)
	assert.Equal(t, -1.0, frame.Intent().Axis)

	frame, ok = replayer.Next()
	require.True(t, ok)
	assert.Equal(t, 1.0, frame.Intent().Axis)
	assert.True(t, frame.Intent().JumpHeld)
	assert.False(t, replayer.Done())

	frame, ok = replayer.Next()
	require.True(t, ok)
	assert.True(t, frame.Intent().JumpReleased)
	assert.True(t, frame.RS)
	assert.True(t, replayer.Done())

	_, ok = replayer.Next()
	assert.False(t, ok)
}

func TestReplayer_Reset(t *testing.T) {
	data := createTestReplayData()
	replayer := NewReplayer(data)

	for !replayer.Done() {
		replayer.Next()
	}
	assert.Equal(t, replayer.TotalFrames(), replayer.CurrentFrame())

	replayer.Reset()
	assert.Equal(t, 0, replayer.CurrentFrame())
	_, ok := replayer.Next()
	assert.True(t, ok)
}

func TestSimulate_Deterministic(t *testing.T) {
	data := createTestReplayData()
	fallback := config.DefaultMoverConfig()

	first, err := Simulate(&data, createTestEnv(t), &fallback)
	require.NoError(t, err)
	second, err := Simulate(&data, createTestEnv(t), &fallback)
	require.NoError(t, err)

	assert.Equal(t, 120, first.Frames)
	assert.Equal(t, first.Results, second.Results)
	assert.GreaterOrEqual(t, first.Landed, 1)
	assert.GreaterOrEqual(t, first.Jumped, 1)
	assert.Greater(t, first.Final.Position.X, data.Spawn.X)
}

func TestSimulate_Verify(t *testing.T) {
	data := createTestReplayData()
	fallback := config.DefaultMoverConfig()
	res, err := Simulate(&data, createTestEnv(t), &fallback)
	require.NoError(t, err)

	assert.NoError(t, Verify(&data, res), "no recorded final")

	final := res.Final.Position
	data.Final = &final
	assert.NoError(t, Verify(&data, res))

	moved := entity.Vec2{X: final.X + 0.5, Y: final.Y}
	data.Final = &moved
	assert.ErrorIs(t, Verify(&data, res), ErrDiverged)
}

func TestSimulate_Reset(t *testing.T) {
	data := createTestReplayData()
	data.Frames[len(data.Frames)-1].RS = true
	fallback := config.DefaultMoverConfig()

	res, err := Simulate(&data, createTestEnv(t), &fallback)
	require.NoError(t, err)

	// The last frame starts from spawn and falls one tick
	assert.InDelta(t, data.Spawn.X, res.Final.Position.X, 1e-9)
	assert.Less(t, res.Final.Position.Y, data.Spawn.Y)
}

func TestSimulate_KillPlane(t *testing.T) {
	killY := 1.5
	data := createTestReplayData()
	data.Spawn = entity.Vec2{X: 1.5, Y: 4}
	data.KillY = &killY
	fallback := config.DefaultMoverConfig()

	res, err := Simulate(&data, createTestEnv(t), &fallback)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, res.Respawned, 1, "the floor is below the kill plane")
}

func TestSimulate_UsesFallbackConfig(t *testing.T) {
	data := createTestReplayData()
	data.Mover = nil
	bad := config.DefaultMoverConfig()
	bad.Collision.DetectorCount = 0

	_, err := Simulate(&data, createTestEnv(t), &bad)

	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
