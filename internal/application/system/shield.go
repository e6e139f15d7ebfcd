package system

import (
	"math"

	"github.com/younwookim/starfall/internal/domain/entity"
	"github.com/younwookim/starfall/internal/infrastructure/config"
)

// ShieldSystem resolves queued hits against the shield, then hitpoints.
// Hits landing while the player is invincible are discarded. Emptying the
// hitpoints costs a life.
type ShieldSystem struct {
	config  config.ShieldConfig
	player  *entity.PlayerState
	shield  float64
	pending int

	absorbed int
	taken    int
}

// NewShieldSystem creates a shield system with a full shield
func NewShieldSystem(cfg config.ShieldConfig, player *entity.PlayerState) *ShieldSystem {
	return &ShieldSystem{config: cfg, player: player, shield: cfg.Max}
}

// Hit queues damage for the next Update
func (s *ShieldSystem) Hit(amount int) {
	if amount > 0 {
		s.pending += amount
	}
}

// OnSpawnReset refills the shield and drops queued hits
func (s *ShieldSystem) OnSpawnReset() {
	s.shield = s.config.Max
	s.pending = 0
}

// Update applies queued damage and regenerates the shield
func (s *ShieldSystem) Update(dt float64) {
	if s.pending > 0 && !s.player.Invincible {
		absorb := min(int(math.Floor(s.shield)), s.pending)
		s.shield -= float64(absorb)
		s.absorbed += absorb

		rest := s.pending - absorb
		if rest > 0 {
			s.taken += rest
			if s.player.TakeDamage(rest) {
				s.player.LivesCurrent--
			}
		}
	}
	s.pending = 0

	s.shield = math.Min(s.config.Max, s.shield+s.config.RegenPerSecond*dt)
}

// Shield returns the current shield strength
func (s *ShieldSystem) Shield() float64 {
	return s.shield
}

// Totals returns the damage absorbed by the shield and taken on hitpoints
func (s *ShieldSystem) Totals() (absorbed, taken int) {
	return s.absorbed, s.taken
}
