package main

import (
	"flag"
	"fmt"
	"io/fs"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/platformer/internal/application/game"
	"github.com/younwookim/platformer/internal/application/replay"
	"github.com/younwookim/platformer/internal/application/scene/playing"
	"github.com/younwookim/platformer/internal/infrastructure/config"
)

// newLoader reads configs from dir, or from the embedded configs when dir
// is empty
func newLoader(dir string) (*config.Loader, error) {
	if dir != "" {
		return config.NewLoader(dir), nil
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, fmt.Errorf("failed to get config subfs: %w", err)
	}
	return config.NewFSLoader(fsys, "configs"), nil
}

func main() {
	// Parse command line flags
	configDir := flag.String("config", "", "Config directory (default: embedded configs)")
	stageName := flag.String("stage", "demo", "Stage to load from <config>/stages")
	backend := flag.String("backend", "grid", "Collision backend: grid, chipmunk or resolv")
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	replayFlag := flag.String("replay", "", "Play back a recorded file")
	headless := flag.Bool("headless", false, "With -replay: simulate without a window and verify the result")
	watch := flag.Bool("watch", false, "Reload the mover tuning when game.yaml changes (needs -config)")
	flag.Parse()

	loader, err := newLoader(*configDir)
	if err != nil {
		log.Fatalf("Failed to create config loader: %v", err)
	}
	cfg, err := loader.LoadGame()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *headless {
		if *replayFlag == "" {
			log.Fatal("-headless needs -replay")
		}
		if err := runReplay(loader, cfg, *replayFlag, *stageName); err != nil {
			log.Fatal(err)
		}
		return
	}

	opts := playing.Options{
		Backend:    *backend,
		RecordPath: *recordFlag,
	}
	name := *stageName
	if *replayFlag != "" {
		data, err := replay.LoadReplay(*replayFlag)
		if err != nil {
			log.Fatalf("Failed to load replay: %v", err)
		}
		opts.Replay = data
		if data.Stage != "" {
			name = data.Stage
		}
	}

	// Load stage
	stageCfg, err := loader.LoadAnyStage(name)
	if err != nil {
		log.Fatalf("Failed to load stage: %v", err)
	}

	if *watch {
		if *configDir == "" {
			log.Fatal("-watch needs -config")
		}
		watcher, err := config.NewWatcher(loader)
		if err != nil {
			log.Fatalf("Failed to watch config: %v", err)
		}
		opts.Watcher = watcher
	}

	// Create game
	p, err := playing.New(cfg, stageCfg, opts)
	if err != nil {
		log.Fatalf("Failed to create game: %v", err)
	}
	g := game.New(p, cfg.Display.ScreenWidth, cfg.Display.ScreenHeight)

	// Set up ebiten
	ebiten.SetWindowSize(cfg.Display.ScreenWidth*cfg.Display.Scale,
		cfg.Display.ScreenHeight*cfg.Display.Scale)
	ebiten.SetWindowTitle("Platformer")
	ebiten.SetTPS(g.TPS())

	// Run game
	err = ebiten.RunGame(g)
	g.Close()
	if opts.Watcher != nil {
		_ = opts.Watcher.Close()
	}
	if err != nil {
		log.Fatal(err)
	}
}
