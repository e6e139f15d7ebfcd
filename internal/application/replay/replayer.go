package replay

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/younwookim/starfall/internal/application/system"
)

// ErrUnsupported is returned when a recording cannot be played back
var ErrUnsupported = errors.New("unsupported replay")

// Replayer handles input playback from recorded data
type Replayer struct {
	data  ReplayData
	frame int
}

// NewReplayer creates a new replayer from replay data
func NewReplayer(data ReplayData) *Replayer {
	return &Replayer{
		data:  data,
		frame: 0,
	}
}

// LoadReplay loads replay data from a file
func LoadReplay(filename string) (*ReplayData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data ReplayData
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode replay: %w", err)
	}
	if data.Version != Version {
		return nil, fmt.Errorf("replay version %q: %w", data.Version, ErrUnsupported)
	}
	if data.Framerate <= 0 {
		return nil, fmt.Errorf("replay framerate %d: %w", data.Framerate, ErrUnsupported)
	}

	return &data, nil
}

// GetInput returns the controls for the current frame and advances
func (r *Replayer) GetInput() (system.Controls, bool) {
	if r.frame >= len(r.data.Frames) {
		return system.Controls{}, false
	}

	fi := r.data.Frames[r.frame]
	r.frame++
	return fi.Controls, true
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return len(r.data.Frames)
}

// DT returns the recorded frame time
func (r *Replayer) DT() float64 {
	return r.data.DT()
}

// Recorder captures controls frame by frame
type Recorder struct {
	data ReplayData
}

// NewRecorder starts a recording at the given framerate
func NewRecorder(framerate int, configName string) *Recorder {
	return &Recorder{data: ReplayData{
		Version:   Version,
		Framerate: framerate,
		Config:    configName,
		StartTime: time.Now().Format(time.RFC3339),
	}}
}

// Record appends the controls of the next frame
func (r *Recorder) Record(c system.Controls) {
	r.data.Frames = append(r.data.Frames, FrameInput{F: len(r.data.Frames), Controls: c})
}

// Finish stamps the outcome that ended the recording
func (r *Recorder) Finish(outcome string) {
	r.data.Outcome = outcome
}

// Data returns the recording so far
func (r *Recorder) Data() ReplayData {
	return r.data
}

// Save writes the recording to filename as JSON
func (r *Recorder) Save(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	encoder := json.NewEncoder(file)
	if err := encoder.Encode(r.data); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to encode replay: %w", err)
	}
	return file.Close()
}

// CreateTestReplayData creates replay data for testing (idle pilot)
func CreateTestReplayData(frames, framerate int) ReplayData {
	data := ReplayData{
		Version:   Version,
		Framerate: framerate,
		Config:    "test",
		StartTime: time.Now().Format(time.RFC3339),
		Frames:    make([]FrameInput, frames),
	}

	for i := 0; i < frames; i++ {
		data.Frames[i] = FrameInput{F: i}
	}

	return data
}

// GenerateFilename creates a filename based on current time
func GenerateFilename() string {
	return fmt.Sprintf("replay_%s.json", time.Now().Format("20060102_150405"))
}
