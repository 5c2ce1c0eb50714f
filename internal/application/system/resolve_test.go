package system

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/platformer/internal/domain/entity"
)

// createWallEnv returns a tall ground-layer block whose left face is at x = left
func createWallEnv(left float64) *boxEnv {
	return (&boxEnv{}).add(entity.Vec2{X: left + 1, Y: 5.5}, entity.Vec2{X: 2, Y: 20}, entity.LayerGround)
}

func TestResolve_FreeMove(t *testing.T) {
	env := createWallEnv(10)
	start := entity.Vec2{X: 0, Y: 5}

	res := Resolve(env, testBounds, start, entity.Vec2{X: 6, Y: -3}, 0.5, entity.LayerGround, 5)

	assert.Equal(t, entity.Vec2{X: 3, Y: 3.5}, res.Position)
	assert.Equal(t, -3.0, res.Vertical)
	assert.False(t, res.Blocked)
	assert.False(t, res.Pushed)
}

func TestResolve_PartialAdvance(t *testing.T) {
	// Box right edge starts at 0.4; the wall face is at 1.0
	env := createWallEnv(1)
	start := entity.Vec2{X: 0, Y: 5}

	res := Resolve(env, testBounds, start, entity.Vec2{X: 60, Y: 0}, testDT, entity.LayerGround, 4)

	assert.True(t, res.Blocked)
	assert.False(t, res.Pushed)
	assert.InDelta(t, 0.5, res.Position.X, 1e-9)
	assert.InDelta(t, 5, res.Position.Y, 1e-9)
	_, overlapping := env.Overlap(testBounds.At(res.Position), entity.LayerGround)
	assert.False(t, overlapping)
}

func TestResolve_AllStepsFreeButTarget(t *testing.T) {
	// Only the last quarter of the move reaches the wall
	env := createWallEnv(1.3)
	start := entity.Vec2{X: 0, Y: 5}

	res := Resolve(env, testBounds, start, entity.Vec2{X: 1, Y: 0}, 1, entity.LayerGround, 4)

	assert.True(t, res.Blocked)
	assert.InDelta(t, 0.75, res.Position.X, 1e-9)
}

func TestResolve_SingleIterationStaysPut(t *testing.T) {
	env := createWallEnv(1)
	start := entity.Vec2{X: 0, Y: 5}

	res := Resolve(env, testBounds, start, entity.Vec2{X: 60, Y: -10}, testDT, entity.LayerGround, 1)

	assert.Equal(t, start, res.Position)
	assert.Equal(t, -10.0, res.Vertical)
	assert.True(t, res.Blocked)
	assert.False(t, res.Pushed)
}

func TestResolve_FirstStepPushesOut(t *testing.T) {
	// Wall face at 0.45, already within the first step
	env := createWallEnv(0.45)
	start := entity.Vec2{X: 0, Y: 5}
	velocity := entity.Vec2{X: 60, Y: -3}

	res := Resolve(env, testBounds, start, velocity, testDT, entity.LayerGround, 4)

	// obstacle centre (1.45, 5.5) to the character position (0, 5)
	moveLen := math.Hypot(1, 0.05)
	dirLen := math.Hypot(1.45, 0.5)
	assert.True(t, res.Pushed)
	assert.Zero(t, res.Vertical, "falling velocity cleared")
	assert.InDelta(t, -1.45/dirLen*moveLen, res.Position.X, 1e-9)
	assert.InDelta(t, 5-0.5/dirLen*moveLen, res.Position.Y, 1e-9)
	assert.InDelta(t, -0.9466, res.Position.X, 1e-4)
	assert.InDelta(t, 4.6736, res.Position.Y, 1e-4)
}

func TestResolve_PushIgnoresBoundsOffset(t *testing.T) {
	env := createWallEnv(0.45)
	start := entity.Vec2{X: 0, Y: 5}
	velocity := entity.Vec2{X: 60, Y: -3}
	centred := entity.Bounds{Size: testBounds.Size}

	// same box in world space, pivot moved to its centre
	offset := Resolve(env, testBounds, start, velocity, testDT, entity.LayerGround, 4)
	pivot := Resolve(env, centred, start.Add(testBounds.Center), velocity, testDT, entity.LayerGround, 4)

	require.True(t, offset.Pushed)
	require.True(t, pivot.Pushed)
	assert.NotEqual(t, offset.Position.Sub(start), pivot.Position.Sub(start.Add(testBounds.Center)),
		"the nudge follows the position, not the box centre")
}

func TestResolve_PushKeepsRisingVelocity(t *testing.T) {
	env := createWallEnv(0.45)

	res := Resolve(env, testBounds, entity.Vec2{X: 0, Y: 5}, entity.Vec2{X: 60, Y: 3}, testDT, entity.LayerGround, 4)

	assert.True(t, res.Pushed)
	assert.Equal(t, 3.0, res.Vertical)
}

func TestResolve_IgnoresOtherLayers(t *testing.T) {
	env := (&boxEnv{}).add(entity.Vec2{X: 2, Y: 5.5}, entity.Vec2{X: 2, Y: 20}, entity.LayerWall)

	res := Resolve(env, testBounds, entity.Vec2{X: 0, Y: 5}, entity.Vec2{X: 60, Y: 0}, testDT, entity.LayerGround, 4)

	assert.False(t, res.Blocked)
	assert.InDelta(t, 1, res.Position.X, 1e-9)
}
