package replay

import (
	"errors"
	"fmt"
	"math"

	"github.com/younwookim/platformer/internal/application/system"
	"github.com/younwookim/platformer/internal/ecs"
	"github.com/younwookim/platformer/internal/infrastructure/config"
)

// ErrDiverged is returned by Verify when a replay ends somewhere else than
// where it was recorded.
var ErrDiverged = errors.New("replay diverged from recording")

// Tolerance is the distance Verify accepts between recorded and replayed
// final positions.
const Tolerance = 1e-9

// Result is the outcome of a headless replay
type Result struct {
	Frames    int
	Final     system.TickResult
	Landed    int
	Jumped    int
	Respawned int
	Results   []system.TickResult
}

// Simulate plays data against env without rendering. The recording's own
// mover tuning is used when present, otherwise fallback. Frame i runs at
// time i*dt, the same clock the live game uses.
func Simulate(data *ReplayData, env system.Environment, fallback *config.MoverConfig) (*Result, error) {
	cfg := fallback
	if data.Mover != nil {
		cfg = data.Mover
	}
	world, err := ecs.NewWorld(env, cfg, data.KillY)
	if err != nil {
		return nil, fmt.Errorf("failed to simulate replay: %w", err)
	}
	id, err := world.Spawn(data.Spawn, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to simulate replay: %w", err)
	}

	dt := data.DT()
	replayer := NewReplayer(*data)
	res := &Result{
		Final:   system.TickResult{Position: data.Spawn},
		Results: make([]system.TickResult, 0, replayer.TotalFrames()),
	}
	for {
		frame, ok := replayer.Next()
		if !ok {
			break
		}
		now := float64(res.Frames) * dt
		if frame.RS {
			if err := world.Reset(id, now); err != nil {
				return nil, fmt.Errorf("failed to simulate replay: %w", err)
			}
		}
		if err := world.SetIntent(id, frame.Intent()); err != nil {
			return nil, fmt.Errorf("failed to simulate replay: %w", err)
		}

		snap := world.Step(now, dt)[0]
		res.Frames++
		if snap.Result.Landed {
			res.Landed++
		}
		if snap.Result.Jumped {
			res.Jumped++
		}
		if snap.Respawned {
			res.Respawned++
		}
		res.Results = append(res.Results, snap.Result)
		res.Final = snap.Result
	}
	return res, nil
}

// Verify checks a simulation against the position stored in the recording.
// Recordings without a final position always pass.
func Verify(data *ReplayData, res *Result) error {
	if data.Final == nil {
		return nil
	}
	got := res.Final.Position
	if math.Abs(got.X-data.Final.X) > Tolerance || math.Abs(got.Y-data.Final.Y) > Tolerance {
		return fmt.Errorf("%w: recorded %v, replayed %v", ErrDiverged, *data.Final, got)
	}
	return nil
}
