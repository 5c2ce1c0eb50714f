package ecs

import (
	"github.com/yohamta/donburi"

	"github.com/younwookim/platformer/internal/application/system"
	"github.com/younwookim/platformer/internal/domain/entity"
)

// CharacterData links an entity to its mover
type CharacterData struct {
	ID    entity.EntityID
	Mover *system.KinematicMover
	Spawn entity.Vec2
}

// IntentData is the input applied on the next step
type IntentData struct {
	Intent system.InputIntent
}

// StatusData is what the last step produced
type StatusData struct {
	Last     system.TickResult
	Respawns int
}

var (
	Character = donburi.NewComponentType[CharacterData]()
	Intent    = donburi.NewComponentType[IntentData]()
	Status    = donburi.NewComponentType[StatusData]()
)
