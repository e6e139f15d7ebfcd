// Package flow sequences the flight loop:
// intro → dialogue → spawn → play → die → respawn → win / game over.
//
// The Machine owns only sequencing and timers. Movement, weapons, enemies,
// shields and dialogue are collaborators driven through the interfaces in
// collaborators.go; scene changes are reported as state.Outcome values and
// left to the caller.
package flow

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/younwookim/starfall/internal/application/state"
	"github.com/younwookim/starfall/internal/domain/entity"
)

// DeathDelay is how long the Die state lasts before a respawn (seconds).
const DeathDelay = 3.0

// timerEpsilon absorbs the float error of summing non-binary frame deltas.
const timerEpsilon = 1e-9

// reached reports whether timer has run up to limit.
func reached(timer, limit float64) bool {
	return timer >= limit-timerEpsilon
}

// ErrInvalidTiming is returned by New when a duration cannot be used.
var ErrInvalidTiming = errors.New("invalid timing")

// Timing holds the phase durations in seconds.
type Timing struct {
	IntroDuration      float64
	SpawnDuration      float64
	SpawnInvincibility float64
}

func (t Timing) validate() error {
	if t.IntroDuration <= 0 {
		return fmt.Errorf("intro duration %v must be positive: %w", t.IntroDuration, ErrInvalidTiming)
	}
	if t.SpawnDuration <= 0 {
		return fmt.Errorf("spawn duration %v must be positive: %w", t.SpawnDuration, ErrInvalidTiming)
	}
	if t.SpawnInvincibility < 0 {
		return fmt.Errorf("spawn invincibility %v must not be negative: %w", t.SpawnInvincibility, ErrInvalidTiming)
	}
	return nil
}

// phase pairs the entry action and the per-tick update of one state.
// Either may be nil.
type phase struct {
	enter  func()
	update func(dt float64)
}

// Machine is the game flow state machine.
type Machine struct {
	player *entity.PlayerState
	c      Collaborators
	timing Timing
	logger *zap.Logger

	phases  map[state.GameState]phase
	current state.GameState
	readout string

	introTimer float64
	spawnTimer float64
	deathTimer float64

	spawnInvincibilityActive bool
	spawnInvincibilityTimer  float64

	pending state.Outcome

	// OnTransition is called after the current state changes and before the
	// new state's entry action runs.
	OnTransition func(from, to state.GameState)
}

// New creates a machine that has already entered the Spawn state.
// A nil logger discards diagnostics.
func New(player *entity.PlayerState, c Collaborators, timing Timing, logger *zap.Logger) (*Machine, error) {
	if player == nil {
		return nil, fmt.Errorf("flow machine needs a player state: %w", ErrMissingCollaborator)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	if err := timing.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &Machine{
		player:                   player,
		c:                        c,
		timing:                   timing,
		logger:                   logger,
		spawnInvincibilityActive: true,
	}
	// States without an entry here only change the readout.
	m.phases = make(map[state.GameState]phase)
	for _, s := range state.All() {
		m.phases[s] = phase{}
	}
	m.phases[state.StateIntro] = phase{enter: m.enterIntro, update: m.updateIntro}
	m.phases[state.StateDialogue] = phase{enter: m.enterDialogue, update: m.updateDialogue}
	m.phases[state.StateSpawn] = phase{enter: m.enterSpawn, update: m.updateSpawn}
	m.phases[state.StateRespawn] = phase{enter: m.enterRespawn, update: m.updateRespawn}
	m.phases[state.StatePlay] = phase{update: m.updatePlay}
	m.phases[state.StateDie] = phase{enter: m.enterDie, update: m.updateDie}

	player.DamageCurrent = player.DamageBase
	player.PositionCurrent = player.PositionSpawnStart
	player.PositionTarget = player.PositionSpawnStart

	// The session opens straight into Spawn; its entry action always runs.
	m.current = state.StateSpawn
	m.readout = m.current.String()
	m.enterSpawn()

	return m, nil
}

// State returns the active state.
func (m *Machine) State() state.GameState {
	return m.current
}

// Readout returns the label of the active state.
func (m *Machine) Readout() string {
	return m.readout
}

// SetState switches to next and runs its entry action.
// Requesting the active state does nothing. Unknown states are logged and ignored.
func (m *Machine) SetState(next state.GameState) {
	if next == m.current {
		return
	}
	if !next.Valid() {
		m.logger.Warn("ignoring unrecognized state",
			zap.Int("requested", int(next)),
			zap.Stringer("current", m.current))
		return
	}

	ph := m.phases[next]
	prev := m.current
	m.current = next
	m.readout = next.String()
	m.logger.Debug("state changed", zap.Stringer("from", prev), zap.Stringer("to", next))

	if m.OnTransition != nil {
		m.OnTransition(prev, next)
	}
	if ph.enter != nil {
		ph.enter()
	}
}

// Tick runs the active state's update for one frame and returns any
// outcome raised since the previous Tick.
func (m *Machine) Tick(dt float64) state.Outcome {
	if ph := m.phases[m.current]; ph.update != nil {
		ph.update(dt)
	}
	out := m.pending
	m.pending = state.OutcomeNone
	return out
}

func (m *Machine) raise(out state.Outcome) {
	if m.pending != state.OutcomeNone {
		return
	}
	m.pending = out
	m.logger.Info("outcome raised", zap.Stringer("outcome", out), zap.Stringer("state", m.current))
}

// IntroProgress returns the normalized intro timer.
func (m *Machine) IntroProgress() float64 { return m.introTimer }

// SpawnTimer returns the spawn timer. It is normalized progress in Spawn and
// elapsed seconds in Respawn.
func (m *Machine) SpawnTimer() float64 { return m.spawnTimer }

// DeathTimer returns the seconds spent in Die.
func (m *Machine) DeathTimer() float64 { return m.deathTimer }

// SpawnInvincibility reports whether the post-respawn shield window is armed
// and how much of it remains.
func (m *Machine) SpawnInvincibility() (active bool, remaining float64) {
	return m.spawnInvincibilityActive, m.spawnInvincibilityTimer
}

func (m *Machine) enterIntro() {
	m.introTimer = 0
	m.c.Fader.FadeFromBlack()
}

func (m *Machine) enterDialogue() {
	m.c.Narrative.StartDialogue()
}

func (m *Machine) enterSpawn() {
	m.c.Narrative.CleanupNarrative()
	m.resetForSpawn()
}

func (m *Machine) enterRespawn() {
	m.resetForSpawn()
	m.player.HitpointsCurrent = m.player.HitpointsBase
}

func (m *Machine) resetForSpawn() {
	m.c.ShieldHealth.OnSpawnReset()
	m.c.Ship.ForceSetPosition(m.player.PositionSpawnStart)
	m.spawnTimer = 0
}

func (m *Machine) enterDie() {
	m.deathTimer = 0
	if m.player.LivesCurrent < 1 {
		m.SetState(state.StateGameOver)
		m.raise(state.OutcomeGameOver)
	}
}

func (m *Machine) updateIntro(dt float64) {
	m.introTimer += dt / m.timing.IntroDuration
	if reached(m.introTimer, 1) {
		m.SetState(state.StateDialogue)
	}
}

func (m *Machine) updateDialogue(dt float64) {
	if m.c.Narrative.Update(dt) {
		m.SetState(state.StateSpawn)
	}
}

func (m *Machine) updateSpawn(dt float64) {
	m.spawnTimer += dt / m.timing.SpawnDuration
	m.player.PositionTarget = entity.Lerp(m.player.PositionSpawnStart, m.player.PositionSpawnFinish, m.spawnTimer)
	if reached(m.spawnTimer, 1) {
		m.SetState(state.StatePlay)
	}
}

// updateRespawn counts raw seconds against SpawnDuration, unlike updateSpawn
// which counts normalized progress. The lerp factor is therefore seconds too.
func (m *Machine) updateRespawn(dt float64) {
	m.spawnInvincibilityTimer = m.timing.SpawnInvincibility
	m.spawnTimer += dt
	m.player.PositionTarget = entity.Lerp(m.player.PositionSpawnStart, m.player.PositionSpawnFinish, m.spawnTimer)
	if reached(m.spawnTimer, m.timing.SpawnDuration) {
		m.SetState(state.StatePlay)
		m.spawnInvincibilityActive = true
	}
}

func (m *Machine) updatePlay(dt float64) {
	// Shield/health runs last so it sees this frame's ship position.
	m.c.Ship.Update(dt)
	m.c.Guns.Update(dt)
	m.c.Enemies.Update(dt)
	m.c.ShieldHealth.Update(dt)

	if !m.player.Alive() {
		m.player.ClampHitpoints()
		m.SetState(state.StateDie)
	}

	if m.spawnInvincibilityActive {
		if m.spawnInvincibilityTimer > 0 {
			m.player.Invincible = true
			m.spawnInvincibilityTimer -= dt
		} else {
			m.player.Invincible = false
			m.spawnInvincibilityActive = false
		}
	}
}

func (m *Machine) updateDie(dt float64) {
	m.deathTimer += dt
	if reached(m.deathTimer, DeathDelay) {
		m.SetState(state.StateRespawn)
	}
}
