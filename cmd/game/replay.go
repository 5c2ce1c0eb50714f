package main

import (
	"fmt"
	"log"

	"github.com/younwookim/platformer/internal/application/replay"
	"github.com/younwookim/platformer/internal/application/system"
	"github.com/younwookim/platformer/internal/infrastructure/config"
	"github.com/younwookim/platformer/internal/infrastructure/physics"
)

// runReplay plays a recording without a window and checks the end position
// against the one stored in the file. stageName is used when the recording
// does not name its stage.
func runReplay(loader *config.Loader, cfg *config.GameConfig, filename, stageName string) error {
	data, err := replay.LoadReplay(filename)
	if err != nil {
		return err
	}
	res, err := simulateReplay(loader, cfg, data, stageName)
	if err != nil {
		return err
	}

	log.Printf("Replay %s: %d frames, %d jumps, %d landings, %d respawns, final (%.4f, %.4f)",
		filename, res.Frames, res.Jumped, res.Landed, res.Respawned,
		res.Final.Position.X, res.Final.Position.Y)
	if err := replay.Verify(data, res); err != nil {
		return err
	}
	if data.Final != nil {
		log.Printf("Replay %s matches the recording", filename)
	}
	return nil
}

func simulateReplay(loader *config.Loader, cfg *config.GameConfig, data *replay.ReplayData, stageName string) (*replay.Result, error) {
	name := data.Stage
	if name == "" {
		name = stageName
	}
	stageCfg, err := loader.LoadAnyStage(name)
	if err != nil {
		return nil, err
	}
	stage, err := system.LoadStage(stageCfg)
	if err != nil {
		return nil, err
	}
	env, err := physics.FromStage(stage, data.Backend)
	if err != nil {
		return nil, fmt.Errorf("failed to replay %s: %w", name, err)
	}
	return replay.Simulate(data, env, &cfg.Mover)
}
