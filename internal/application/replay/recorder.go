package replay

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/younwookim/platformer/internal/application/system"
	"github.com/younwookim/platformer/internal/domain/entity"
	"github.com/younwookim/platformer/internal/infrastructure/config"
)

// ErrEmptyRecording is returned when saving a recording without frames
var ErrEmptyRecording = errors.New("no frames to save")

// Recorder handles input recording for replay
type Recorder struct {
	data      ReplayData
	recording bool
}

// Session describes what a recording is played against
type Session struct {
	Stage    string
	Backend  string
	TickRate int
	Spawn    entity.Vec2
	KillY    *float64
	Mover    config.MoverConfig
}

// NewRecorder starts a recording of session
func NewRecorder(session Session) *Recorder {
	cfg := session.Mover
	return &Recorder{
		data: ReplayData{
			Version:   Version,
			Stage:     session.Stage,
			Backend:   session.Backend,
			TickRate:  session.TickRate,
			StartTime: time.Now().Format(time.RFC3339),
			Spawn:     session.Spawn,
			KillY:     session.KillY,
			Mover:     &cfg,
			Frames:    make([]FrameInput, 0, 3600), // Pre-allocate for ~1 minute at 60fps
		},
		recording: true,
	}
}

// RecordFrame records a single frame's input. reset marks a return to
// spawn that happened before the frame was stepped.
func (r *Recorder) RecordFrame(in system.InputIntent, reset bool) {
	if !r.recording {
		return
	}
	r.data.Frames = append(r.data.Frames, NewFrameInput(len(r.data.Frames), in, reset))
}

// SetFinal stores the position reached after the last recorded frame
func (r *Recorder) SetFinal(p entity.Vec2) {
	r.data.Final = &p
}

// Save writes the replay data to a file
func (r *Recorder) Save(filename string) error {
	return SaveReplay(filename, &r.data)
}

// SaveReplay writes data to filename as indented JSON
func SaveReplay(filename string, data *ReplayData) error {
	if len(data.Frames) == 0 {
		return ErrEmptyRecording
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode replay: %w", err)
	}

	return nil
}

// Stop stops recording
func (r *Recorder) Stop() {
	r.recording = false
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// FrameCount returns the number of recorded frames
func (r *Recorder) FrameCount() int {
	return len(r.data.Frames)
}

// Data returns the replay data
func (r *Recorder) Data() ReplayData {
	return r.data
}

// GenerateFilename creates a filename based on current time
func GenerateFilename() string {
	return fmt.Sprintf("replay_%s.json", time.Now().Format("20060102_150405"))
}
