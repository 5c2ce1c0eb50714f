package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Key bindings
var (
	LeftKeys  = []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft}
	RightKeys = []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight}
	JumpKeys  = []ebiten.Key{ebiten.KeySpace, ebiten.KeyW, ebiten.KeyArrowUp}
)

// InputSystem samples the keyboard into an InputIntent
type InputSystem struct{}

// NewInputSystem creates a new input system
func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

// InputState holds the raw key state for one frame
type InputState struct {
	Left         bool
	Right        bool
	Jump         bool
	JumpReleased bool
	Reset        bool
	ToggleDebug  bool
}

// GetInput reads the current input state
func (s *InputSystem) GetInput() InputState {
	return InputState{
		Left:         anyPressed(LeftKeys),
		Right:        anyPressed(RightKeys),
		Jump:         anyPressed(JumpKeys),
		JumpReleased: anyJustReleased(JumpKeys) && !anyPressed(JumpKeys),
		Reset:        inpututil.IsKeyJustPressed(ebiten.KeyR),
		ToggleDebug:  inpututil.IsKeyJustPressed(ebiten.KeyF3),
	}
}

// Intent converts the key state into the mover's input snapshot.
// Opposite directions cancel out.
func (s *InputSystem) Intent(in InputState) InputIntent {
	axis := 0.0
	if in.Left {
		axis--
	}
	if in.Right {
		axis++
	}
	return InputIntent{
		Axis:         axis,
		JumpHeld:     in.Jump,
		JumpReleased: in.JumpReleased,
	}
}

func anyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func anyJustReleased(keys []ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustReleased(k) {
			return true
		}
	}
	return false
}
