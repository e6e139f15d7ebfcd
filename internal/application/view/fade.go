// Package view holds renderer-agnostic view models shared by the ebiten and
// terminal drivers.
package view

// Fade is a full-screen black overlay that clears over Duration seconds.
type Fade struct {
	Duration float64
	alpha    float64
}

// NewFade creates a clear fade
func NewFade(duration float64) *Fade {
	return &Fade{Duration: duration}
}

// FadeFromBlack snaps the overlay to opaque; Update clears it
func (f *Fade) FadeFromBlack() {
	f.alpha = 1
}

// Update clears the overlay for one frame
func (f *Fade) Update(dt float64) {
	if f.alpha <= 0 {
		return
	}
	if f.Duration <= 0 {
		f.alpha = 0
		return
	}
	f.alpha -= dt / f.Duration
	if f.alpha < 0 {
		f.alpha = 0
	}
}

// Alpha returns the overlay opacity in [0, 1]
func (f *Fade) Alpha() float64 {
	return f.alpha
}
