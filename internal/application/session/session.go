// Package session wires one flight: the player state, its collaborators,
// the flow machine and the fuel gauge, stepped together one frame at a time.
// Both drivers (ebiten and terminal) run the game through a Session.
package session

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/younwookim/starfall/internal/application/flow"
	"github.com/younwookim/starfall/internal/application/fuel"
	"github.com/younwookim/starfall/internal/application/state"
	"github.com/younwookim/starfall/internal/application/system"
	"github.com/younwookim/starfall/internal/application/view"
	"github.com/younwookim/starfall/internal/domain/entity"
	"github.com/younwookim/starfall/internal/infrastructure/config"
)

// winEpsilon absorbs the float error of summing non-binary frame deltas.
const winEpsilon = 1e-9

// Session owns everything a single flight needs
type Session struct {
	Config   *config.SessionConfig
	Player   *entity.PlayerState
	Controls *system.Controls

	Ship      *system.ShipSystem
	Guns      *system.GunsSystem
	Hazards   *system.HazardSystem
	Shield    *system.ShieldSystem
	Narrative *system.NarrativeSystem

	Fade  *view.Fade
	Meter *view.Meter

	Machine *flow.Machine
	Fuel    *fuel.Gauge

	logger   *zap.Logger
	events   *dispatcher
	frame    int
	playTime float64
	outcome  state.Outcome
}

// New builds a session from cfg. A nil logger discards diagnostics.
func New(cfg *config.SessionConfig, logger *zap.Logger) (*Session, error) {
	if cfg == nil {
		return nil, fmt.Errorf("session needs a config: %w", config.ErrInvalid)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Session{
		Config:   cfg,
		Controls: &system.Controls{},
		logger:   logger,
		events:   newDispatcher(),
	}
	s.Player = entity.NewPlayerState(
		cfg.Player.Hitpoints,
		cfg.Player.Lives,
		cfg.Player.Damage,
		cfg.Player.SpawnStart.Vec(),
		cfg.Player.SpawnFinish.Vec(),
	)

	s.Ship = system.NewShipSystem(cfg.Ship, s.Player, s.Controls)
	s.Guns = system.NewGunsSystem(cfg.Guns, s.Player, s.Controls)
	s.Shield = system.NewShieldSystem(cfg.Shield, s.Player)
	s.Hazards = system.NewHazardSystem(cfg.Hazards, s.Shield)
	s.Narrative = system.NewNarrativeSystem(cfg.Narrative, s.Controls)
	s.Fade = view.NewFade(cfg.Timing.IntroDuration)
	s.Meter = view.NewMeter(cfg.Fuel.Tiers, cfg.Fuel.Max)

	machine, err := flow.New(s.Player, flow.Collaborators{
		Ship:         s.Ship,
		Guns:         s.Guns,
		Enemies:      s.Hazards,
		ShieldHealth: s.Shield,
		Narrative:    s.Narrative,
		Fader:        s.Fade,
	}, flow.Timing{
		IntroDuration:      cfg.Timing.IntroDuration,
		SpawnDuration:      cfg.Timing.SpawnDuration,
		SpawnInvincibility: cfg.Timing.SpawnInvincibility,
	}, logger.Named("flow"))
	if err != nil {
		return nil, fmt.Errorf("create flow machine: %w", err)
	}
	s.Machine = machine

	gauge, err := fuel.New(s.Player, s.Meter, cfg.Fuel.Max, cfg.Fuel.SecondsToEmpty, logger.Named("fuel"))
	if err != nil {
		return nil, fmt.Errorf("create fuel gauge: %w", err)
	}
	s.Fuel = gauge

	s.Machine.OnTransition = s.onTransition
	s.Fuel.OnStep = s.onFuelStep

	if cfg.Opening.PlayIntro {
		s.Machine.SetState(state.StateIntro)
	}
	return s, nil
}

// Subscribe registers l for the given event types, or all of them when
// none are named
func (s *Session) Subscribe(l Listener, types ...EventType) {
	s.events.subscribe(l, types...)
}

// Step advances the session by one frame using the current Controls.
// It returns the first outcome raised this frame. After an outcome the
// session is finished and further steps do nothing.
func (s *Session) Step(dt float64) state.Outcome {
	if s.Done() {
		return state.OutcomeNone
	}
	s.frame++

	s.Fade.Update(dt)
	out := s.Machine.Tick(dt)

	switch s.Machine.State() {
	case state.StateSpawn, state.StateRespawn:
		s.Ship.Follow(dt)
	case state.StatePlay:
		if out == state.OutcomeNone {
			out = s.checkWin(dt)
		}
	}

	if out == state.OutcomeNone {
		out = s.Fuel.Tick(dt)
	}

	if out != state.OutcomeNone {
		s.finish(out)
	}
	return out
}

// checkWin counts Play time and wins once WinAfterSeconds is reached
func (s *Session) checkWin(dt float64) state.Outcome {
	s.playTime += dt
	if s.Config.WinAfterSeconds <= 0 || s.playTime < s.Config.WinAfterSeconds-winEpsilon {
		return state.OutcomeNone
	}
	s.Machine.SetState(state.StateWin)
	return state.OutcomeVictory
}

func (s *Session) finish(out state.Outcome) {
	s.outcome = out
	s.logger.Info("session finished",
		zap.Stringer("outcome", out),
		zap.Int("frame", s.frame),
		zap.Float64("playTime", s.PlayTime()),
		zap.Int("lives", s.Player.LivesCurrent))
	s.publish(Event{Type: EventOutcome, Outcome: out.String()})
}

func (s *Session) onTransition(from, to state.GameState) {
	s.publish(Event{Type: EventTransition, From: from.String(), To: to.String()})
}

func (s *Session) onFuelStep(float64) {
	s.publish(Event{Type: EventFuel})
}

func (s *Session) publish(event Event) {
	event.Frame = s.frame
	event.Fuel = s.Fuel.Current()
	event.Lives = s.Player.LivesCurrent
	event.Hitpoints = s.Player.HitpointsCurrent
	event.Lamps = s.Meter.Lit()
	s.events.dispatch(event)
}

// Frame returns the number of frames stepped
func (s *Session) Frame() int { return s.frame }

// PlayTime returns the seconds spent in Play
func (s *Session) PlayTime() float64 { return s.playTime }

// Outcome returns the outcome that finished the session, or OutcomeNone
func (s *Session) Outcome() state.Outcome { return s.outcome }

// Done reports whether the session has finished. A machine left in a
// terminal state counts as finished even without an outcome.
func (s *Session) Done() bool {
	return s.outcome != state.OutcomeNone || s.Machine.State().IsTerminal()
}
