// Package game provides the ebiten.Game that drives the current Scene.
package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/platformer/internal/application/scene"
)

// DefaultTPS is the tick rate used for scenes that do not ask for one
const DefaultTPS = 60

// Game implements ebiten.Game and manages Scene transitions.
// Each ebiten tick is one scene tick, so the scene's tick rate is the
// ebiten TPS.
type Game struct {
	current scene.Scene
	screenW int
	screenH int
	tps     int
}

// New creates a new Game on initial and enters it
func New(initial scene.Scene, screenW, screenH int) *Game {
	g := &Game{
		screenW: screenW,
		screenH: screenH,
	}
	g.enter(initial)
	return g
}

func (g *Game) enter(s scene.Scene) {
	g.current = s
	g.tps = DefaultTPS
	if t, ok := s.(scene.Ticker); ok && t.TickRate() > 0 {
		g.tps = t.TickRate()
	}
	s.OnEnter()
}

// Update ticks the current scene and handles scene transitions.
// Implements ebiten.Game interface.
func (g *Game) Update() error {
	next, err := g.current.Update()
	if err != nil {
		return err
	}

	if next != nil {
		prev := g.tps
		g.current.OnExit()
		g.enter(next)
		if g.tps != prev {
			ebiten.SetTPS(g.tps)
		}
	}

	return nil
}

// Draw renders the current scene.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	g.current.Draw(screen)
}

// Layout returns the game's logical screen dimensions.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// TPS returns the tick rate the current scene runs at. Pass it to
// ebiten.SetTPS before ebiten.RunGame.
func (g *Game) TPS() int {
	return g.tps
}

// Close exits the current scene. Call it once ebiten.RunGame returns so the
// scene can flush what it holds, such as an input recording.
func (g *Game) Close() {
	g.current.OnExit()
}
