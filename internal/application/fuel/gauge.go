// Package fuel implements the ship's fuel supply: a bounded resource that
// drains one step per elapsed second and costs the player a life when empty.
package fuel

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/younwookim/starfall/internal/application/state"
	"github.com/younwookim/starfall/internal/domain/entity"
)

const (
	// DefaultMax is the default tank capacity.
	DefaultMax = 100.0
	// DefaultSecondsToEmpty is the default time for a full tank to drain.
	DefaultSecondsToEmpty = 60.0

	// tierSize is the amount of fuel one meter tier represents.
	tierSize = 10.0
	// emptyEpsilon absorbs the float error left after the last step.
	emptyEpsilon = 1e-9
	// secondEpsilon absorbs the float error of summing non-binary frame deltas.
	secondEpsilon = 1e-9
)

// ErrInvalidGauge is returned by New for unusable parameters.
var ErrInvalidGauge = errors.New("invalid fuel gauge")

// Display shows the gauge: a continuous value plus a row of tier lamps.
type Display interface {
	SetValue(v float64)
	TierCount() int
	SetTierActive(i int, active bool)
}

// Gauge drains fuel over real time.
type Gauge struct {
	player  *entity.PlayerState
	display Display
	logger  *zap.Logger

	max     float64
	rate    float64
	current float64
	elapsed float64
	empty   bool

	// OnStep is called after every depletion step with the new fuel level.
	OnStep func(current float64)
}

// New creates a full gauge and publishes its initial value.
// A nil logger discards diagnostics.
func New(player *entity.PlayerState, display Display, max, secondsToEmpty float64, logger *zap.Logger) (*Gauge, error) {
	if player == nil {
		return nil, fmt.Errorf("fuel gauge needs a player state: %w", ErrInvalidGauge)
	}
	if display == nil {
		return nil, fmt.Errorf("fuel gauge needs a display: %w", ErrInvalidGauge)
	}
	if max <= 0 || secondsToEmpty <= 0 {
		return nil, fmt.Errorf("capacity %v and drain time %v must be positive: %w", max, secondsToEmpty, ErrInvalidGauge)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	g := &Gauge{
		player:  player,
		display: display,
		logger:  logger,
		max:     max,
		rate:    max / secondsToEmpty,
	}
	g.set(max)
	return g, nil
}

// Current returns the fuel left.
func (g *Gauge) Current() float64 { return g.current }

// Max returns the tank capacity.
func (g *Gauge) Max() float64 { return g.max }

// Rate returns the fuel lost per depletion step.
func (g *Gauge) Rate() float64 { return g.rate }

// Empty reports whether the tank has run dry.
func (g *Gauge) Empty() bool { return g.empty }

// Tick advances the gauge by dt seconds. One depletion step runs for every
// whole second accumulated; the fractional remainder carries over. The meter
// tiers are refreshed on every call.
func (g *Gauge) Tick(dt float64) state.Outcome {
	out := state.OutcomeNone
	g.elapsed += dt
	for g.elapsed >= 1-secondEpsilon {
		g.elapsed = max(0, g.elapsed-1)
		if o := g.DepleteOneStep(); o != state.OutcomeNone {
			out = o
		}
	}
	g.refreshTiers()
	return out
}

// DepleteOneStep burns one second's worth of fuel. When the tank empties
// the player loses a life (if still alive) and OutcomeOutOfFuel is returned.
// Steps after that are ignored.
func (g *Gauge) DepleteOneStep() state.Outcome {
	if g.empty {
		return state.OutcomeNone
	}

	next := g.current - g.rate
	if next <= emptyEpsilon {
		next = 0
	}
	g.set(next)
	if g.OnStep != nil {
		g.OnStep(next)
	}
	if next > 0 {
		return state.OutcomeNone
	}

	g.empty = true
	if g.player.HitpointsCurrent > 0 {
		g.player.LivesCurrent--
		g.player.HitpointsCurrent = 0
	}
	g.logger.Info("out of fuel", zap.Int("lives", g.player.LivesCurrent))
	return state.OutcomeOutOfFuel
}

func (g *Gauge) set(amount float64) {
	g.current = amount
	g.display.SetValue(amount)
}

// refreshTiers lights tier i when round(fuel/10) > i. Tier 0 is left alone.
func (g *Gauge) refreshTiers() {
	lit := int(math.RoundToEven(g.current / tierSize))
	for i := g.display.TierCount() - 1; i > 0; i-- {
		g.display.SetTierActive(i, lit > i)
	}
}
