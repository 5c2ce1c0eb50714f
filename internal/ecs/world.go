package ecs

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/yohamta/donburi"

	"github.com/younwookim/platformer/internal/application/system"
	"github.com/younwookim/platformer/internal/domain/entity"
	"github.com/younwookim/platformer/internal/infrastructure/config"
)

// ErrUnknownEntity is returned for IDs that were never spawned or are gone
var ErrUnknownEntity = errors.New("unknown entity")

// Snapshot is one character's outcome of a step
type Snapshot struct {
	ID        entity.EntityID
	Result    system.TickResult
	Box       entity.Box
	Respawned bool
}

// World runs any number of characters against one environment.
// Characters are stepped in ascending ID order; IDs are never recycled.
type World struct {
	world  donburi.World
	env    system.Environment
	cfg    config.MoverConfig
	killY  *float64
	nextID entity.EntityID

	entities map[entity.EntityID]donburi.Entity
	order    []entity.EntityID
}

// NewWorld creates an empty world. Characters falling below killY are
// respawned; a nil killY disables the kill plane.
func NewWorld(env system.Environment, cfg *config.MoverConfig, killY *float64) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create world: %w", err)
	}
	return &World{
		world:    donburi.NewWorld(),
		env:      env,
		cfg:      *cfg,
		killY:    killY,
		nextID:   1, // 0 is "nil"
		entities: make(map[entity.EntityID]donburi.Entity),
	}, nil
}

// Spawn adds a character at spawn and returns its ID
func (w *World) Spawn(spawn entity.Vec2, now float64) (entity.EntityID, error) {
	mover, err := system.NewKinematicMover(&w.cfg, w.env, spawn, now)
	if err != nil {
		return 0, fmt.Errorf("failed to spawn character: %w", err)
	}

	id := w.nextID
	w.nextID++

	e := w.world.Create(Character, Intent, Status)
	entry := w.world.Entry(e)
	Character.Set(entry, &CharacterData{ID: id, Mover: mover, Spawn: spawn})

	w.entities[id] = e
	w.order = append(w.order, id)
	return id, nil
}

// Despawn removes a character. It reports whether the ID was alive.
func (w *World) Despawn(id entity.EntityID) bool {
	e, ok := w.entities[id]
	if !ok {
		return false
	}
	if w.world.Valid(e) {
		w.world.Remove(e)
	}
	delete(w.entities, id)

	i := sort.Search(len(w.order), func(i int) bool { return w.order[i] >= id })
	w.order = append(w.order[:i], w.order[i+1:]...)
	return true
}

// SetIntent stores the input the character uses on the next step
func (w *World) SetIntent(id entity.EntityID, in system.InputIntent) error {
	entry, err := w.entry(id)
	if err != nil {
		return err
	}
	Intent.Get(entry).Intent = in
	return nil
}

// Step advances every character by dt in ascending ID order
func (w *World) Step(now, dt float64) []Snapshot {
	snapshots := make([]Snapshot, 0, len(w.order))
	for _, id := range w.order {
		entry := w.world.Entry(w.entities[id])
		char := Character.Get(entry)
		status := Status.Get(entry)

		res := char.Mover.Tick(now, dt, Intent.Get(entry).Intent)
		respawned := false
		if res.Active && w.killY != nil && res.Position.Y < *w.killY {
			log.Printf("character %d fell below y=%.2f, respawning", id, *w.killY)
			char.Mover.Reset(char.Spawn, now)
			res = system.TickResult{Position: char.Spawn}
			status.Respawns++
			respawned = true
		}
		status.Last = res

		snapshots = append(snapshots, Snapshot{
			ID:        id,
			Result:    res,
			Box:       char.Mover.Box(),
			Respawned: respawned,
		})
	}
	return snapshots
}

// SetConfig applies a new tuning to every character
func (w *World) SetConfig(cfg *config.MoverConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("failed to apply config: %w", err)
	}
	w.cfg = *cfg

	var firstErr error
	Character.Each(w.world, func(entry *donburi.Entry) {
		if err := Character.Get(entry).Mover.SetConfig(cfg); err != nil && firstErr == nil {
			firstErr = err
		}
	})
	return firstErr
}

// Reset puts a character back at its spawn point
func (w *World) Reset(id entity.EntityID, now float64) error {
	entry, err := w.entry(id)
	if err != nil {
		return err
	}
	char := Character.Get(entry)
	char.Mover.Reset(char.Spawn, now)
	Status.Get(entry).Last = system.TickResult{Position: char.Spawn}
	return nil
}

// Mover returns the character's mover
func (w *World) Mover(id entity.EntityID) (*system.KinematicMover, error) {
	entry, err := w.entry(id)
	if err != nil {
		return nil, err
	}
	return Character.Get(entry).Mover, nil
}

// Respawns returns how many times the character hit the kill plane
func (w *World) Respawns(id entity.EntityID) int {
	entry, err := w.entry(id)
	if err != nil {
		return 0
	}
	return Status.Get(entry).Respawns
}

// IDs returns the live IDs in step order
func (w *World) IDs() []entity.EntityID {
	return append([]entity.EntityID(nil), w.order...)
}

// Count returns the number of live characters
func (w *World) Count() int {
	return len(w.order)
}

func (w *World) entry(id entity.EntityID) (*donburi.Entry, error) {
	e, ok := w.entities[id]
	if !ok || !w.world.Valid(e) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownEntity, id)
	}
	return w.world.Entry(e), nil
}
