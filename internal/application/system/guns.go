package system

import (
	"golang.org/x/image/math/f64"

	"github.com/younwookim/starfall/internal/domain/entity"
	"github.com/younwookim/starfall/internal/infrastructure/config"
)

// GunsSystem gates the trigger with a cooldown. Projectiles are owned by the
// renderer listening on OnFire.
type GunsSystem struct {
	config   config.GunsConfig
	player   *entity.PlayerState
	controls *Controls

	cooldown   float64
	shotsFired int

	// OnFire is called for every shot with the ship position and damage
	OnFire func(origin f64.Vec3, damage int)
}

// NewGunsSystem creates a new guns system
func NewGunsSystem(cfg config.GunsConfig, player *entity.PlayerState, controls *Controls) *GunsSystem {
	return &GunsSystem{config: cfg, player: player, controls: controls}
}

// Update fires when the trigger is held and the cooldown has run out
func (s *GunsSystem) Update(dt float64) {
	if s.cooldown > 0 {
		s.cooldown -= dt
	}
	if !s.controls.Fire || s.cooldown > 0 {
		return
	}

	s.cooldown = s.config.Cooldown
	s.shotsFired++
	if s.OnFire != nil {
		s.OnFire(s.player.PositionCurrent, s.player.DamageCurrent)
	}
}

// ShotsFired returns the number of shots since the session started
func (s *GunsSystem) ShotsFired() int {
	return s.shotsFired
}
