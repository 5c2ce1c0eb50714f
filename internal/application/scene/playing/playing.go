// Package playing provides the main gameplay scene.
package playing

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/younwookim/platformer/internal/application/replay"
	"github.com/younwookim/platformer/internal/application/scene"
	"github.com/younwookim/platformer/internal/application/state"
	"github.com/younwookim/platformer/internal/application/system"
	"github.com/younwookim/platformer/internal/domain/entity"
	"github.com/younwookim/platformer/internal/ecs"
	"github.com/younwookim/platformer/internal/infrastructure/config"
	"github.com/younwookim/platformer/internal/infrastructure/physics"
)

// Colors for rendering
var (
	colorGround  = color.RGBA{80, 80, 100, 255}
	colorWall    = color.RGBA{120, 90, 60, 255}
	colorPlayer  = color.RGBA{100, 200, 100, 255}
	colorBG      = color.RGBA{26, 26, 46, 255}
	colorRay     = color.RGBA{200, 200, 200, 160}
	colorRayHit  = color.RGBA{255, 80, 80, 255}
	colorKillY   = color.RGBA{200, 50, 50, 120}
	colorOverlay = color.RGBA{0, 0, 0, 128}
)

// Options selects how the scene is driven
type Options struct {
	// Backend names the collision backend, see physics.Backends
	Backend string
	// RecordPath enables input recording when not empty
	RecordPath string
	// Replay plays a recording back instead of reading the keyboard
	Replay *replay.ReplayData
	// Watcher hot-reloads the mover tuning when set
	Watcher *config.Watcher
}

// Playing is the main gameplay scene
type Playing struct {
	config      *config.GameConfig
	stageCfg    *config.StageConfig
	stage       *entity.Stage
	backend     string
	state       state.GameState
	world       *ecs.World
	player      entity.EntityID
	last        ecs.Snapshot
	inputSystem *system.InputSystem
	screenW     int
	screenH     int
	tileSize    int
	tickRate    int
	dt          float64
	frame       int
	killY       *float64
	debugDraw   bool

	// Input recording
	recorder       *replay.Recorder
	recordFilename string

	// Playback
	replayData *replay.ReplayData
	replayer   *replay.Replayer

	watcher *config.Watcher
}

// New creates a new Playing scene on stageCfg
func New(cfg *config.GameConfig, stageCfg *config.StageConfig, opts Options) (*Playing, error) {
	stage, err := system.LoadStage(stageCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create playing scene: %w", err)
	}
	backend := opts.Backend
	if opts.Replay != nil && opts.Replay.Backend != "" {
		backend = opts.Replay.Backend
	}
	collider, err := physics.FromStage(stage, backend)
	if err != nil {
		return nil, fmt.Errorf("failed to create playing scene: %w", err)
	}

	mover := cfg.Mover
	spawn := stage.Spawn
	killY := stageCfg.KillY
	if opts.Replay != nil {
		if opts.Replay.Mover != nil {
			mover = *opts.Replay.Mover
		}
		spawn = opts.Replay.Spawn
		killY = opts.Replay.KillY
	}

	world, err := ecs.NewWorld(collider, &mover, killY)
	if err != nil {
		return nil, fmt.Errorf("failed to create playing scene: %w", err)
	}
	player, err := world.Spawn(spawn, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to create playing scene: %w", err)
	}

	tickRate := cfg.Display.Framerate
	if opts.Replay != nil && opts.Replay.TickRate > 0 {
		tickRate = opts.Replay.TickRate
	}

	p := &Playing{
		config:         cfg,
		stageCfg:       stageCfg,
		stage:          stage,
		backend:        backend,
		state:          state.StatePlaying,
		world:          world,
		player:         player,
		last:           ecs.Snapshot{ID: player, Result: system.TickResult{Position: spawn}},
		inputSystem:    system.NewInputSystem(),
		screenW:        cfg.Display.ScreenWidth,
		screenH:        cfg.Display.ScreenHeight,
		tileSize:       stage.TileSize,
		tickRate:       tickRate,
		dt:             1.0 / float64(tickRate),
		killY:          killY,
		debugDraw:      cfg.Display.DebugDraw,
		recordFilename: opts.RecordPath,
		replayData:     opts.Replay,
		watcher:        opts.Watcher,
	}
	if p.tileSize <= 0 {
		p.tileSize = 16
	}

	if opts.Replay != nil {
		p.replayer = replay.NewReplayer(*opts.Replay)
		log.Printf("Replaying %d frames on %s (%s)", p.replayer.TotalFrames(), stageCfg.Name, backend)
	} else if opts.RecordPath != "" {
		p.recorder = replay.NewRecorder(p.session(mover, spawn, killY))
		log.Printf("Recording enabled: %s", opts.RecordPath)
	}

	return p, nil
}

func (p *Playing) session(mover config.MoverConfig, spawn entity.Vec2, killY *float64) replay.Session {
	backend := p.backend
	if backend == "" {
		backend = physics.BackendGrid
	}
	// the ID is the file name the stage loads from
	stage := p.stageCfg.ID
	if stage == "" {
		stage = p.stageCfg.Name
	}
	return replay.Session{
		Stage:    stage,
		Backend:  backend,
		TickRate: p.tickRate,
		Spawn:    spawn,
		KillY:    killY,
		Mover:    mover,
	}
}

// TickRate is the fixed simulation rate: the display framerate, or the
// rate a replay was recorded at (implements scene.Ticker)
func (p *Playing) TickRate() int {
	return p.tickRate
}

// Update advances the scene by one tick of 1/TickRate seconds
// (implements scene.Scene)
func (p *Playing) Update() (scene.Scene, error) {
	switch p.state {
	case state.StatePlaying:
		p.updatePlaying()
	case state.StatePaused:
		if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			p.state = state.StatePlaying
		}
	case state.StateReplayDone:
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			p.restartReplay()
		}
	}

	return nil, nil // nil = stay on this scene
}

func (p *Playing) updatePlaying() {
	// Check for pause
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		p.state = state.StatePaused
		return
	}

	// F5: Save recording manually
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) && p.recorder != nil {
		p.saveRecording()
	}

	p.pollConfig()
	p.step(p.inputSystem.GetInput())
}

// step advances the world by one fixed tick. Live input is replaced by the
// recorded frame during playback.
func (p *Playing) step(in system.InputState) {
	if in.ToggleDebug {
		p.debugDraw = !p.debugDraw
	}

	intent := p.inputSystem.Intent(in)
	reset := in.Reset
	if p.replayer != nil {
		if p.replayer.Done() {
			p.finishReplay()
			return
		}
		frame, _ := p.replayer.Next()
		intent = frame.Intent()
		reset = frame.RS
	}

	now := float64(p.frame) * p.dt
	if reset {
		if err := p.world.Reset(p.player, now); err != nil {
			log.Printf("Failed to reset player: %v", err)
		}
	}
	if p.recorder != nil {
		p.recorder.RecordFrame(intent, reset)
	}
	if err := p.world.SetIntent(p.player, intent); err != nil {
		log.Printf("Failed to set intent: %v", err)
		return
	}

	for _, snap := range p.world.Step(now, p.dt) {
		if snap.ID == p.player {
			p.last = snap
		}
	}
	p.frame++
}

// pollConfig applies a hot-reloaded mover tuning. Reloads are ignored while
// recording or replaying so the recording stays reproducible.
func (p *Playing) pollConfig() {
	if p.watcher == nil {
		return
	}
	cfg, ok := p.watcher.Poll()
	if !ok {
		return
	}
	if p.recorder != nil || p.replayer != nil {
		log.Printf("Config reload ignored while recording or replaying")
		return
	}
	p.applyConfig(cfg)
}

func (p *Playing) applyConfig(cfg *config.GameConfig) {
	if err := p.world.SetConfig(&cfg.Mover); err != nil {
		log.Printf("Failed to apply reloaded config: %v", err)
		return
	}
	p.config.Mover = cfg.Mover
	p.debugDraw = cfg.Display.DebugDraw
	log.Printf("Config reloaded")
}

func (p *Playing) finishReplay() {
	p.state = state.StateReplayDone
	res := &replay.Result{Frames: p.frame, Final: p.last.Result}
	if err := replay.Verify(p.replayData, res); err != nil {
		log.Printf("Replay finished: %v", err)
		return
	}
	log.Printf("Replay finished after %d frames at (%.4f, %.4f)", p.frame, p.last.Result.Position.X, p.last.Result.Position.Y)
}

func (p *Playing) restartReplay() {
	if p.replayer == nil {
		return
	}
	p.replayer.Reset()
	p.frame = 0
	if err := p.world.Reset(p.player, 0); err != nil {
		log.Printf("Failed to reset player: %v", err)
	}
	p.last = ecs.Snapshot{ID: p.player, Result: system.TickResult{Position: p.replayData.Spawn}}
	p.state = state.StatePlaying
}

// saveRecording saves the current recording to file
func (p *Playing) saveRecording() {
	if p.recorder == nil || !p.recorder.IsRecording() {
		return
	}

	filename := p.recordFilename
	if filename == "" {
		filename = replay.GenerateFilename()
	}

	p.recorder.SetFinal(p.last.Result.Position)
	if err := p.recorder.Save(filename); err != nil {
		log.Printf("Failed to save recording: %v", err)
	} else {
		log.Printf("Recording saved: %s (%d frames)", filename, p.recorder.FrameCount())
	}
}

// Draw renders the game screen
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	cam := p.camera()
	p.drawTiles(screen, cam)
	p.drawKillPlane(screen, cam)
	p.drawPlayer(screen, cam)
	if p.debugDraw {
		p.drawRays(screen, cam)
	}
	p.drawUI(screen)

	switch p.state {
	case state.StatePaused:
		p.drawOverlay(screen, "PAUSED\n\nPress ESC to resume")
	case state.StateReplayDone:
		p.drawOverlay(screen, "REPLAY FINISHED\n\nPress R to watch again")
	}
}

// camera returns the world point shown at the screen center, clamped so the
// view stays inside the stage when the stage is larger than the screen.
func (p *Playing) camera() entity.Vec2 {
	halfW := float64(p.screenW) / 2 / float64(p.tileSize)
	halfH := float64(p.screenH) / 2 / float64(p.tileSize)
	pos := p.last.Result.Position
	return entity.Vec2{
		X: clampView(pos.X, halfW, float64(p.stage.Width)),
		Y: clampView(pos.Y, halfH, float64(p.stage.Height)),
	}
}

func clampView(v, half, size float64) float64 {
	if size <= 2*half {
		return size / 2
	}
	return entity.Clamp(v, half, size-half)
}

// toScreen maps a world point (Y up, tiles) to screen pixels (Y down)
func (p *Playing) toScreen(cam, v entity.Vec2) (float32, float32) {
	ts := float64(p.tileSize)
	x := (v.X-cam.X)*ts + float64(p.screenW)/2
	y := float64(p.screenH)/2 - (v.Y-cam.Y)*ts
	return float32(x), float32(y)
}

func (p *Playing) drawBox(screen *ebiten.Image, cam entity.Vec2, b entity.Box, c color.Color) {
	x, y := p.toScreen(cam, entity.Vec2{X: b.Min().X, Y: b.Max().Y})
	ts := float32(p.tileSize)
	vector.FillRect(screen, x, y, float32(b.Size.X)*ts, float32(b.Size.Y)*ts, c, false)
}

func (p *Playing) drawTiles(screen *ebiten.Image, cam entity.Vec2) {
	p.stage.ForEachSolid(func(tx, ty int, tile entity.Tile) {
		c := colorGround
		if tile.Type == entity.TileWall {
			c = colorWall
		}
		p.drawBox(screen, cam, p.stage.TileBox(tx, ty), c)
	})
}

func (p *Playing) drawKillPlane(screen *ebiten.Image, cam entity.Vec2) {
	if p.killY == nil {
		return
	}
	_, y := p.toScreen(cam, entity.Vec2{Y: *p.killY})
	vector.StrokeLine(screen, 0, y, float32(p.screenW), y, 1, colorKillY, false)
}

func (p *Playing) drawPlayer(screen *ebiten.Image, cam entity.Vec2) {
	p.drawBox(screen, cam, p.last.Box, colorPlayer)
}

// drawRays shows the detector rays, red where the matching contact is set
func (p *Playing) drawRays(screen *ebiten.Image, cam entity.Vec2) {
	col := p.config.Mover.Collision
	if col.DetectorCount < 2 {
		return
	}
	c := p.last.Result.Contacts
	edges := entity.RayRanges(p.last.Box, col.EdgeInset)
	hits := [4]bool{c.Ceiling, c.Ground, c.BlockedLeft(), c.BlockedRight()}
	for i, edge := range edges.All() {
		rc := colorRay
		if hits[i] {
			rc = colorRayHit
		}
		for _, origin := range edge.Samples(col.DetectorCount) {
			x0, y0 := p.toScreen(cam, origin)
			x1, y1 := p.toScreen(cam, origin.Add(edge.Dir.Scale(col.RayLength)))
			vector.StrokeLine(screen, x0, y0, x1, y1, 1, rc, false)
		}
	}
}

func (p *Playing) drawUI(screen *ebiten.Image) {
	res := p.last.Result
	status := fmt.Sprintf("pos (%.2f, %.2f) vel (%.2f, %.2f)", res.Position.X, res.Position.Y, res.Velocity.X, res.Velocity.Y)
	if p.replayer != nil {
		status += fmt.Sprintf("\nreplay %d/%d", p.replayer.CurrentFrame(), p.replayer.TotalFrames())
	} else if p.recorder != nil && p.recorder.IsRecording() {
		status += fmt.Sprintf("\nrec %d", p.recorder.FrameCount())
	}
	ebitenutil.DebugPrintAt(screen, status, 4, p.screenH-32)

	// Controls
	debugText := "A/D: Move | W/Space: Jump | R: Reset | F3: Debug | F5: Save | ESC: Pause"
	ebitenutil.DebugPrint(screen, debugText)
}

func (p *Playing) drawOverlay(screen *ebiten.Image, text string) {
	vector.FillRect(screen, 0, 0, float32(p.screenW), float32(p.screenH), colorOverlay, false)
	ebitenutil.DebugPrintAt(screen, text, p.screenW/2-60, p.screenH/2-20)
}

// OnEnter is called when entering this scene
func (p *Playing) OnEnter() {
	// Scene is already initialized in New
}

// OnExit saves the recording and stops it
func (p *Playing) OnExit() {
	p.saveRecording()
	if p.recorder != nil {
		p.recorder.Stop()
	}
}

// Layout returns the game's screen dimensions (used by game.Game)
func (p *Playing) Layout(outsideWidth, outsideHeight int) (int, int) {
	return p.screenW, p.screenH
}

// Frame returns the number of ticks simulated so far
func (p *Playing) Frame() int {
	return p.frame
}

// State returns the scene's game state
func (p *Playing) State() state.GameState {
	return p.state
}
