package system

import (
	"fmt"

	"github.com/younwookim/platformer/internal/domain/entity"
	"github.com/younwookim/platformer/internal/infrastructure/config"
)

// TickResult is what the host reads back after each tick
type TickResult struct {
	Position entity.Vec2
	Velocity entity.Vec2
	Contacts entity.ContactState
	Landed   bool
	Jumped   bool
	// Active is false while the character is still inside its spawn
	// activation delay and nothing was simulated.
	Active bool
}

// KinematicMover simulates one platformer character against an Environment.
// It is not safe for concurrent use; the host calls Tick once per frame.
type KinematicMover struct {
	cfg       config.MoverConfig
	env       Environment
	state     entity.MotionState
	spawnedAt float64
}

// NewKinematicMover creates a mover at spawn. The character starts
// simulating once now+cfg.ActivationDelay has passed.
func NewKinematicMover(cfg *config.MoverConfig, env Environment, spawn entity.Vec2, now float64) (*KinematicMover, error) {
	if env == nil {
		return nil, fmt.Errorf("failed to create mover: %w: nil environment", config.ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create mover: %w", err)
	}

	return &KinematicMover{
		cfg:       *cfg,
		env:       env,
		state:     entity.NewMotionState(spawn),
		spawnedAt: now,
	}, nil
}

// Reset puts the character back at spawn with fresh state
func (k *KinematicMover) Reset(spawn entity.Vec2, now float64) {
	k.state = entity.NewMotionState(spawn)
	k.spawnedAt = now
}

// SetConfig swaps the tuning between ticks. Motion state is kept.
func (k *KinematicMover) SetConfig(cfg *config.MoverConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("failed to apply mover config: %w", err)
	}
	k.cfg = *cfg
	return nil
}

// Config returns a copy of the active tuning
func (k *KinematicMover) Config() config.MoverConfig {
	return k.cfg
}

// State returns a copy of the motion state
func (k *KinematicMover) State() entity.MotionState {
	return k.state
}

// Box returns the character's world-space collision box
func (k *KinematicMover) Box() entity.Box {
	return k.cfg.Collision.Bounds.At(k.state.Position)
}

// Active reports whether the spawn activation delay has passed at now
func (k *KinematicMover) Active(now float64) bool {
	return now >= k.spawnedAt+k.cfg.ActivationDelay
}

// Tick advances the character by dt seconds. now is the host clock at the
// start of the tick; in is sampled once and used for the whole tick.
func (k *KinematicMover) Tick(now, dt float64, in InputIntent) TickResult {
	m := &k.state
	if !k.Active(now) {
		return k.result(false, false, false)
	}
	in = in.Normalized()

	if dt > 0 {
		m.MeasuredVelocity = m.Position.Sub(m.LastPosition).Scale(1 / dt)
	}
	m.LastPosition = m.Position

	if in.JumpHeld {
		m.LastJumpPressed = now
	}

	col := &k.cfg.Collision
	contacts := Detect(k.env, k.Box(), DetectorParams{
		GroundMask: col.GroundMask(),
		WallMask:   col.WallMask(),
		Count:      col.DetectorCount,
		RayLength:  col.RayLength,
		EdgeInset:  col.EdgeInset,
	})
	landed := ApplyContactTransition(m, contacts, now)

	vy := m.MeasuredVelocity.Y
	m.ApexRatio, m.FallSpeed = UpdateApexAndFallSpeed(vy, contacts.Ground,
		k.cfg.Jump.ApexThreshold, k.cfg.Gravity.MinFallSpeed, k.cfg.Gravity.MaxFallSpeed)

	m.Vertical = ApplyGravity(m.Vertical, contacts, GravityParams{
		FallSpeed:             m.FallSpeed,
		EarlyCutoff:           m.EarlyCutoff,
		EarlyCutoffMultiplier: k.cfg.Jump.EarlyCutoffMultiplier,
		FallClamp:             k.cfg.Gravity.FallClamp,
		WallSlideSpeed:        k.cfg.Gravity.WallSlideSpeed,
	}, dt)

	coyote := CoyoteEligible(m, contacts.Ground, k.cfg.Jump.CoyoteTime, now)
	buffered := BufferEligible(m, contacts.Ground, k.cfg.Jump.Buffer, now)
	jumped := DecideJump(in, contacts, coyote, buffered)
	if jumped {
		ApplyJump(m, k.cfg.Jump.Height)
	}
	if ShouldCutoffEarly(in, contacts, m.EarlyCutoff, vy) {
		m.EarlyCutoff = true
	}

	m.Horizontal = UpdateHorizontal(m.Horizontal, in.Axis, contacts, m.ApexRatio, WalkParams{
		Acceleration: k.cfg.Walk.Acceleration,
		Deceleration: k.cfg.Walk.Deceleration,
		MoveClamp:    k.cfg.Walk.MoveClamp,
		ApexBonus:    k.cfg.Walk.ApexBonus,
	}, dt)

	res := Resolve(k.env, col.Bounds, m.Position, m.Velocity(), dt, col.GroundMask(), col.MaxIterations)
	m.Position = res.Position
	m.Vertical = res.Vertical

	return k.result(true, landed, jumped)
}

func (k *KinematicMover) result(active, landed, jumped bool) TickResult {
	return TickResult{
		Position: k.state.Position,
		Velocity: k.state.Velocity(),
		Contacts: k.state.Contacts,
		Landed:   landed,
		Jumped:   jumped,
		Active:   active,
	}
}
