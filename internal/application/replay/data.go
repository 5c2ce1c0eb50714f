package replay

import (
	"github.com/younwookim/platformer/internal/application/system"
	"github.com/younwookim/platformer/internal/domain/entity"
	"github.com/younwookim/platformer/internal/infrastructure/config"
)

// Version is written into every recording
const Version = "2.0"

// FrameInput records input state for a single frame
type FrameInput struct {
	F  int     `json:"f"`            // Frame number
	A  float64 `json:"a,omitempty"`  // Horizontal axis
	J  bool    `json:"j,omitempty"`  // Jump held
	JR bool    `json:"jr,omitempty"` // Jump released
	RS bool    `json:"rs,omitempty"` // Reset to spawn before this frame
}

// Intent converts the frame back into the mover's input snapshot
func (f FrameInput) Intent() system.InputIntent {
	return system.InputIntent{Axis: f.A, JumpHeld: f.J, JumpReleased: f.JR}
}

// NewFrameInput records in as frame number frame
func NewFrameInput(frame int, in system.InputIntent, reset bool) FrameInput {
	return FrameInput{F: frame, A: in.Axis, J: in.JumpHeld, JR: in.JumpReleased, RS: reset}
}

// ReplayData contains all data needed to replay a session. The mover
// tuning is stored so a replay survives later config edits.
type ReplayData struct {
	Version   string              `json:"version"`
	Stage     string              `json:"stage"`
	Backend   string              `json:"backend,omitempty"`
	TickRate  int                 `json:"tickRate"`
	StartTime string              `json:"startTime"`
	Spawn     entity.Vec2         `json:"spawn"`
	KillY     *float64            `json:"killY,omitempty"`
	Mover     *config.MoverConfig `json:"mover,omitempty"`
	Frames    []FrameInput        `json:"frames"`
	// Final is the position after the last frame when the recording was saved
	Final *entity.Vec2 `json:"final,omitempty"`
}

// DT returns the fixed tick length of the recording
func (d *ReplayData) DT() float64 {
	if d.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(d.TickRate)
}
