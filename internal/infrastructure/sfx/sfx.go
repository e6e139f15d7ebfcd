// Package sfx plays short synthesized tone cues for flight events.
package sfx

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"
)

// SampleRate is the output rate of every cue
const SampleRate = beep.SampleRate(44100)

// Cue names a sound
type Cue int

const (
	CueSpawn Cue = iota
	CueDie
	CueRespawn
	CueGameOver
	CueOutOfFuel
	CueVictory
)

type note struct {
	freq float64
	dur  time.Duration
}

var cues = map[Cue][]note{
	CueSpawn:     {{440, 60 * time.Millisecond}, {660, 90 * time.Millisecond}},
	CueDie:       {{330, 80 * time.Millisecond}, {220, 80 * time.Millisecond}, {110, 160 * time.Millisecond}},
	CueRespawn:   {{523, 70 * time.Millisecond}, {784, 70 * time.Millisecond}},
	CueGameOver:  {{196, 200 * time.Millisecond}, {147, 200 * time.Millisecond}, {98, 400 * time.Millisecond}},
	CueOutOfFuel: {{262, 120 * time.Millisecond}, {0, 60 * time.Millisecond}, {262, 120 * time.Millisecond}},
	CueVictory:   {{523, 100 * time.Millisecond}, {659, 100 * time.Millisecond}, {784, 100 * time.Millisecond}, {1047, 300 * time.Millisecond}},
}

// ForTransition returns the cue for entering the named flow state
func ForTransition(to string) (Cue, bool) {
	switch to {
	case "Spawn":
		return CueSpawn, true
	case "Die":
		return CueDie, true
	case "Respawn":
		return CueRespawn, true
	}
	return 0, false
}

// ForOutcome returns the cue for the named outcome
func ForOutcome(outcome string) (Cue, bool) {
	switch outcome {
	case "GameOver":
		return CueGameOver, true
	case "OutOfFuel":
		return CueOutOfFuel, true
	case "Victory":
		return CueVictory, true
	}
	return 0, false
}

// Streamer builds the cue as a sequence of sine notes. A zero frequency is a rest.
func Streamer(c Cue, volume float64) (beep.Streamer, error) {
	notes, ok := cues[c]
	if !ok {
		return nil, fmt.Errorf("unknown cue %d", c)
	}

	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		samples := SampleRate.N(n.dur)
		if n.freq == 0 {
			parts = append(parts, beep.Silence(samples))
			continue
		}
		tone, err := generators.SineTone(SampleRate, n.freq)
		if err != nil {
			return nil, fmt.Errorf("cue %d: %w", c, err)
		}
		parts = append(parts, beep.Take(samples, tone))
	}
	return withVolume(beep.Seq(parts...), volume), nil
}

// Length returns the cue duration in samples
func Length(c Cue) int {
	total := 0
	for _, n := range cues[c] {
		total += SampleRate.N(n.dur)
	}
	return total
}

// withVolume scales s linearly; math.Log2(0) is -Inf so zero is silent
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Player mixes cues onto the speaker
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	logger      *zap.Logger
}

// NewPlayer creates a silent player; call Init to open the speaker.
// A nil logger discards diagnostics.
func NewPlayer(volume float64, logger *zap.Logger) *Player {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Player{mixer: &beep.Mixer{}, volume: volume, logger: logger}
}

// Init opens the speaker. Until it succeeds Play does nothing.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("failed to open speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Play starts c on top of whatever is sounding
func (p *Player) Play(c Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	s, err := Streamer(c, p.volume)
	if err != nil {
		p.logger.Warn("cue skipped", zap.Error(err))
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
	p.logger.Debug("cue started", zap.Int("cue", int(c)), zap.Int("samples", Length(c)))
}

// Close silences the speaker
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
}
