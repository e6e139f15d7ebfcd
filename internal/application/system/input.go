package system

import "math"

// Controls is the input state for one frame.
// Drivers fill it before ticking; systems only read it.
type Controls struct {
	Left  bool `json:"l,omitempty"`
	Right bool `json:"r,omitempty"`
	Up    bool `json:"u,omitempty"`
	Down  bool `json:"d,omitempty"`
	Fire  bool `json:"s,omitempty"` // shoot, held
	// Advance is true only on the frame the skip key went down
	Advance bool `json:"a,omitempty"`
}

// Axis returns the steering direction, normalized so diagonals are not faster
func (c Controls) Axis() (x, y float64) {
	if c.Left {
		x--
	}
	if c.Right {
		x++
	}
	if c.Up {
		y--
	}
	if c.Down {
		y++
	}
	if x != 0 && y != 0 {
		x /= math.Sqrt2
		y /= math.Sqrt2
	}
	return x, y
}

// ControlSource produces the controls for the next frame
type ControlSource interface {
	GetInput() Controls
}
