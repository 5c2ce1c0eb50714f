// Package scene defines the screens the game loop drives.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene is one screen of the game. Update advances it by exactly one tick
// of its own fixed clock; returning a non-nil Scene switches to it and a
// non-nil error stops the game.
type Scene interface {
	Update() (next Scene, err error)
	Draw(screen *ebiten.Image)
	// OnEnter runs each time the scene becomes current
	OnEnter()
	// OnExit runs when the scene is left or the game closes
	OnExit()
}

// Ticker is implemented by scenes whose simulation needs a specific tick
// rate. The game loop runs at that rate while the scene is current.
type Ticker interface {
	TickRate() int
}
