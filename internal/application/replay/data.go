package replay

import "github.com/younwookim/starfall/internal/application/system"

// Version is written into every recording
const Version = "1.0"

// FrameInput records the controls of a single frame
type FrameInput struct {
	F int `json:"f"` // Frame number
	system.Controls
}

// ReplayData contains all data needed to replay a session
type ReplayData struct {
	Version   string       `json:"version"`
	Framerate int          `json:"framerate"`
	Config    string       `json:"config"`
	StartTime string       `json:"startTime"`
	Outcome   string       `json:"outcome,omitempty"`
	Frames    []FrameInput `json:"frames"`
}

// DT returns the fixed frame time of the recording in seconds
func (d ReplayData) DT() float64 {
	if d.Framerate <= 0 {
		return 0
	}
	return 1 / float64(d.Framerate)
}
