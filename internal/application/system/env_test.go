package system

import (
	"math"

	"github.com/younwookim/platformer/internal/domain/entity"
	"github.com/younwookim/platformer/internal/infrastructure/config"
)

type testSolid struct {
	box   entity.Box
	layer entity.LayerMask
}

// boxEnv is an Environment over a fixed list of boxes
type boxEnv struct {
	solids []testSolid
}

func (e *boxEnv) add(center, size entity.Vec2, layer entity.LayerMask) *boxEnv {
	e.solids = append(e.solids, testSolid{box: entity.Box{Center: center, Size: size}, layer: layer})
	return e
}

func (e *boxEnv) Overlap(box entity.Box, mask entity.LayerMask) (entity.Vec2, bool) {
	for _, s := range e.solids {
		if mask.Has(s.layer) && box.Overlaps(s.box) {
			return s.box.Center, true
		}
	}
	return entity.Vec2{}, false
}

func (e *boxEnv) Raycast(origin, dir entity.Vec2, maxDistance float64, mask entity.LayerMask) bool {
	for _, s := range e.solids {
		if !mask.Has(s.layer) {
			continue
		}
		lo, hi := s.box.Min(), s.box.Max()
		t0, t1 := 0.0, maxDistance
		if slab(origin.X, dir.X, lo.X, hi.X, &t0, &t1) && slab(origin.Y, dir.Y, lo.Y, hi.Y, &t0, &t1) {
			return true
		}
	}
	return false
}

func slab(o, d, lo, hi float64, t0, t1 *float64) bool {
	if d == 0 {
		return o >= lo && o <= hi
	}
	a, b := (lo-o)/d, (hi-o)/d
	if a > b {
		a, b = b, a
	}
	*t0 = math.Max(*t0, a)
	*t1 = math.Min(*t1, b)
	return *t0 <= *t1
}

// createFloorEnv returns a wide ground floor whose top is at y = 0
func createFloorEnv() *boxEnv {
	return (&boxEnv{}).add(entity.Vec2{X: 0, Y: -5}, entity.Vec2{X: 200, Y: 10}, entity.LayerGround)
}

func createTestMoverConfig() *config.MoverConfig {
	cfg := config.DefaultMoverConfig()
	cfg.ActivationDelay = 0
	return &cfg
}

func createTestDetectorParams() DetectorParams {
	return DetectorParams{
		GroundMask: entity.LayerGround,
		WallMask:   entity.LayerWall,
		Count:      3,
		RayLength:  0.1,
		EdgeInset:  0.1,
	}
}

const testDT = 1.0 / 60.0
