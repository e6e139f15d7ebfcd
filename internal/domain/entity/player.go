package entity

import "golang.org/x/image/math/f64"

// PlayerState is the per-session record shared by the flow machine,
// the fuel gauge and the ship/shield systems.
//
// It is created once when a session starts and survives respawns:
// hitpoints and positions are reset in place, the struct is never rebuilt.
type PlayerState struct {
	HitpointsCurrent int
	HitpointsBase    int
	LivesCurrent     int

	DamageCurrent int
	DamageBase    int

	PositionCurrent     f64.Vec3
	PositionTarget      f64.Vec3
	PositionSpawnStart  f64.Vec3
	PositionSpawnFinish f64.Vec3

	Invincible bool
}

// NewPlayerState creates a player with full hitpoints placed at spawnStart.
func NewPlayerState(hitpoints, lives, damage int, spawnStart, spawnFinish f64.Vec3) *PlayerState {
	return &PlayerState{
		HitpointsCurrent:    hitpoints,
		HitpointsBase:       hitpoints,
		LivesCurrent:        lives,
		DamageCurrent:       damage,
		DamageBase:          damage,
		PositionCurrent:     spawnStart,
		PositionTarget:      spawnStart,
		PositionSpawnStart:  spawnStart,
		PositionSpawnFinish: spawnFinish,
	}
}

// TakeDamage subtracts amount from the current hitpoints, clamping at 0.
// Returns true if this hit emptied the hitpoints.
func (p *PlayerState) TakeDamage(amount int) bool {
	if amount <= 0 || p.HitpointsCurrent <= 0 {
		return false
	}
	p.HitpointsCurrent -= amount
	if p.HitpointsCurrent < 0 {
		p.HitpointsCurrent = 0
	}
	return p.HitpointsCurrent == 0
}

// ClampHitpoints pulls a negative hitpoint value back to 0.
func (p *PlayerState) ClampHitpoints() {
	if p.HitpointsCurrent < 0 {
		p.HitpointsCurrent = 0
	}
}

// Alive reports whether the player still has hitpoints left.
func (p *PlayerState) Alive() bool {
	return p.HitpointsCurrent > 0
}

// Lerp interpolates between a and b. t is clamped to [0, 1].
func Lerp(a, b f64.Vec3, t float64) f64.Vec3 {
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return f64.Vec3{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
	}
}
