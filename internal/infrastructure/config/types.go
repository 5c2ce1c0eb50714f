package config

import (
	"errors"
	"fmt"

	"github.com/younwookim/platformer/internal/domain/entity"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// GameConfig is the root config for game.yaml / game.json
type GameConfig struct {
	Display DisplayConfig `json:"display" yaml:"display"`
	Mover   MoverConfig   `json:"mover" yaml:"mover"`
}

type DisplayConfig struct {
	ScreenWidth  int  `json:"screenWidth" yaml:"screenWidth"`
	ScreenHeight int  `json:"screenHeight" yaml:"screenHeight"`
	Scale        int  `json:"scale" yaml:"scale"`
	Framerate    int  `json:"framerate" yaml:"framerate"`
	DebugDraw    bool `json:"debugDraw" yaml:"debugDraw"`
}

// MoverConfig holds the tunables of the kinematic mover.
// Units are world units (tiles) and seconds.
type MoverConfig struct {
	Walk      WalkConfig      `json:"walk" yaml:"walk"`
	Jump      JumpConfig      `json:"jump" yaml:"jump"`
	Gravity   GravityConfig   `json:"gravity" yaml:"gravity"`
	Collision CollisionConfig `json:"collision" yaml:"collision"`

	// Seconds after spawn before the mover starts reacting
	ActivationDelay float64 `json:"activationDelay" yaml:"activationDelay"`
}

type WalkConfig struct {
	Acceleration float64 `json:"acceleration" yaml:"acceleration"`
	Deceleration float64 `json:"deceleration" yaml:"deceleration"`
	MoveClamp    float64 `json:"moveClamp" yaml:"moveClamp"`
	ApexBonus    float64 `json:"apexBonus" yaml:"apexBonus"`
}

type JumpConfig struct {
	Height                float64 `json:"height" yaml:"height"`               // initial upward velocity
	ApexThreshold         float64 `json:"apexThreshold" yaml:"apexThreshold"` // |vy| below which the apex ratio rises
	Buffer                float64 `json:"buffer" yaml:"buffer"`
	CoyoteTime            float64 `json:"coyoteTime" yaml:"coyoteTime"`
	EarlyCutoffMultiplier float64 `json:"earlyCutoffMultiplier" yaml:"earlyCutoffMultiplier"`
}

type GravityConfig struct {
	FallClamp      float64 `json:"fallClamp" yaml:"fallClamp"` // terminal velocity, negative
	MinFallSpeed   float64 `json:"minFallSpeed" yaml:"minFallSpeed"`
	MaxFallSpeed   float64 `json:"maxFallSpeed" yaml:"maxFallSpeed"`
	WallSlideSpeed float64 `json:"wallSlideSpeed" yaml:"wallSlideSpeed"`
}

type CollisionConfig struct {
	Bounds        entity.Bounds `json:"bounds" yaml:"bounds"`
	DetectorCount int           `json:"detectorCount" yaml:"detectorCount"`
	RayLength     float64       `json:"rayLength" yaml:"rayLength"`
	EdgeInset     float64       `json:"edgeInset" yaml:"edgeInset"`
	MaxIterations int           `json:"maxIterations" yaml:"maxIterations"`
	GroundLayers  []string      `json:"groundLayers" yaml:"groundLayers"`
	WallLayers    []string      `json:"wallLayers" yaml:"wallLayers"`
}

// DefaultMoverConfig returns the tuning the character ships with
func DefaultMoverConfig() MoverConfig {
	return MoverConfig{
		Walk: WalkConfig{
			Acceleration: 90,
			Deceleration: 60,
			MoveClamp:    13,
			ApexBonus:    2,
		},
		Jump: JumpConfig{
			Height:                30,
			ApexThreshold:         10,
			Buffer:                0.1,
			CoyoteTime:            0.1,
			EarlyCutoffMultiplier: 3,
		},
		Gravity: GravityConfig{
			FallClamp:      -40,
			MinFallSpeed:   80,
			MaxFallSpeed:   120,
			WallSlideSpeed: -0.5,
		},
		Collision: CollisionConfig{
			Bounds: entity.Bounds{
				Center: entity.Vec2{X: 0, Y: 0.5},
				Size:   entity.Vec2{X: 0.8, Y: 1},
			},
			DetectorCount: 3,
			RayLength:     0.1,
			EdgeInset:     0.1,
			MaxIterations: 5,
			GroundLayers:  []string{"ground"},
			WallLayers:    []string{"wall"},
		},
		ActivationDelay: 0.5,
	}
}

// DefaultDisplayConfig returns a 320x240 window at 60 fps
func DefaultDisplayConfig() DisplayConfig {
	return DisplayConfig{
		ScreenWidth:  320,
		ScreenHeight: 240,
		Scale:        2,
		Framerate:    60,
	}
}

var layerNames = map[string]entity.LayerMask{
	"ground": entity.LayerGround,
	"wall":   entity.LayerWall,
}

// ParseLayers converts layer names to a mask
func ParseLayers(names []string) (entity.LayerMask, error) {
	var mask entity.LayerMask
	for _, name := range names {
		layer, ok := layerNames[name]
		if !ok {
			return entity.LayerNone, fmt.Errorf("%w: unknown layer %q", ErrInvalidConfig, name)
		}
		mask |= layer
	}
	return mask, nil
}

// GroundMask returns the mask used for ground, ceiling and side detection
func (c *CollisionConfig) GroundMask() entity.LayerMask {
	mask, _ := ParseLayers(c.GroundLayers)
	return mask
}

// WallMask returns the mask used for wall detection
func (c *CollisionConfig) WallMask() entity.LayerMask {
	mask, _ := ParseLayers(c.WallLayers)
	return mask
}

// Validate rejects tunings that would make per-tick behaviour undefined
func (c *MoverConfig) Validate() error {
	col := c.Collision
	if col.DetectorCount < 2 {
		return fmt.Errorf("%w: detectorCount must be >= 2, got %d", ErrInvalidConfig, col.DetectorCount)
	}
	if col.MaxIterations < 1 {
		return fmt.Errorf("%w: maxIterations must be >= 1, got %d", ErrInvalidConfig, col.MaxIterations)
	}
	if err := col.Bounds.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if col.RayLength <= 0 {
		return fmt.Errorf("%w: rayLength must be positive, got %g", ErrInvalidConfig, col.RayLength)
	}
	if col.EdgeInset < 0 {
		return fmt.Errorf("%w: edgeInset must be non-negative, got %g", ErrInvalidConfig, col.EdgeInset)
	}
	if 2*col.EdgeInset > col.Bounds.Size.X || 2*col.EdgeInset > col.Bounds.Size.Y {
		return fmt.Errorf("%w: edgeInset %g does not fit bounds %gx%g",
			ErrInvalidConfig, col.EdgeInset, col.Bounds.Size.X, col.Bounds.Size.Y)
	}

	ground, err := ParseLayers(col.GroundLayers)
	if err != nil {
		return err
	}
	if ground == entity.LayerNone {
		return fmt.Errorf("%w: groundLayers must name at least one layer", ErrInvalidConfig)
	}
	if _, err := ParseLayers(col.WallLayers); err != nil {
		return err
	}

	if c.Walk.Acceleration < 0 || c.Walk.Deceleration < 0 || c.Walk.MoveClamp < 0 {
		return fmt.Errorf("%w: walk acceleration, deceleration and moveClamp must be non-negative", ErrInvalidConfig)
	}
	if c.Gravity.FallClamp > 0 {
		return fmt.Errorf("%w: fallClamp must be <= 0, got %g", ErrInvalidConfig, c.Gravity.FallClamp)
	}
	if c.Gravity.MinFallSpeed < 0 || c.Gravity.MaxFallSpeed < 0 {
		return fmt.Errorf("%w: fall speeds must be non-negative", ErrInvalidConfig)
	}
	if c.Jump.Buffer < 0 || c.Jump.CoyoteTime < 0 || c.ActivationDelay < 0 {
		return fmt.Errorf("%w: time windows must be non-negative", ErrInvalidConfig)
	}
	if c.Jump.EarlyCutoffMultiplier < 1 {
		return fmt.Errorf("%w: earlyCutoffMultiplier must be >= 1, got %g", ErrInvalidConfig, c.Jump.EarlyCutoffMultiplier)
	}
	return nil
}

// Validate checks the display settings
func (c *DisplayConfig) Validate() error {
	if c.ScreenWidth <= 0 || c.ScreenHeight <= 0 {
		return fmt.Errorf("%w: screen size must be positive", ErrInvalidConfig)
	}
	if c.Framerate <= 0 {
		return fmt.Errorf("%w: framerate must be positive, got %d", ErrInvalidConfig, c.Framerate)
	}
	return nil
}
