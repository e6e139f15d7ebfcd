package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/younwookim/starfall/internal/application/replay"
	"github.com/younwookim/starfall/internal/application/state"
	"github.com/younwookim/starfall/internal/application/system"
	"github.com/younwookim/starfall/internal/infrastructure/config"
)

// dt is binary exact so timers land on their thresholds
const dt = 1.0 / 64

func testConfig() *config.SessionConfig {
	cfg := config.Default()
	cfg.Timing = config.TimingConfig{IntroDuration: 1, SpawnDuration: 0.5, SpawnInvincibility: 1}
	cfg.Narrative = config.NarrativeConfig{LineDuration: 0.25, Lines: []string{"launch"}}
	return cfg
}

func newSession(t *testing.T, cfg *config.SessionConfig) *Session {
	t.Helper()
	s, err := New(cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	return s
}

// stepUntil steps until done reports true or max frames pass
func stepUntil(t *testing.T, s *Session, max int, done func() bool) state.Outcome {
	t.Helper()
	for i := 0; i < max; i++ {
		if out := s.Step(dt); out != state.OutcomeNone {
			return out
		}
		if done() {
			return state.OutcomeNone
		}
	}
	require.FailNow(t, "condition not reached", "after %d frames in %s", max, s.Machine.State())
	return state.OutcomeNone
}

type eventLog struct {
	events []Event
}

func (l *eventLog) OnEvent(e Event) { l.events = append(l.events, e) }

func (l *eventLog) transitions() []string {
	var out []string
	for _, e := range l.events {
		if e.Type == EventTransition {
			out = append(out, e.From+">"+e.To)
		}
	}
	return out
}

func TestNew_StartsInSpawn(t *testing.T) {
	cfg := testConfig()
	s := newSession(t, cfg)

	assert.Equal(t, state.StateSpawn, s.Machine.State())
	assert.Equal(t, 100.0, s.Meter.Value())
	assert.Equal(t, cfg.Fuel.Tiers, s.Meter.Lit())
	assert.Equal(t, cfg.Player.SpawnStart.Vec(), s.Player.PositionCurrent)
	assert.False(t, s.Done())
}

func TestNew_PlayIntro(t *testing.T) {
	cfg := testConfig()
	cfg.Opening.PlayIntro = true
	s := newSession(t, cfg)

	assert.Equal(t, state.StateIntro, s.Machine.State())
	assert.Equal(t, 1.0, s.Fade.Alpha(), "intro fades in from black")
}

func TestNew_RejectsBadConfig(t *testing.T) {
	_, err := New(nil, nil)
	assert.ErrorIs(t, err, config.ErrInvalid)

	cfg := testConfig()
	cfg.Fuel.SecondsToEmpty = -1
	_, err = New(cfg, nil)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestStep_OpeningSequence(t *testing.T) {
	cfg := testConfig()
	cfg.Opening.PlayIntro = true
	s := newSession(t, cfg)
	log := &eventLog{}
	s.Subscribe(log, EventTransition)

	stepUntil(t, s, 1000, func() bool { return s.Machine.State() == state.StatePlay })

	assert.Equal(t, []string{"Intro>Dialogue", "Dialogue>Spawn", "Spawn>Play"}, log.transitions())
	assert.Equal(t, 0.0, s.Fade.Alpha())
}

func TestStep_SpawnSlideMovesShip(t *testing.T) {
	cfg := testConfig()
	s := newSession(t, cfg)
	start, finish := cfg.Player.SpawnStart.Vec(), cfg.Player.SpawnFinish.Vec()

	stepUntil(t, s, 100, func() bool { return s.Machine.State() == state.StatePlay })

	assert.Equal(t, finish, s.Player.PositionTarget)
	y := s.Player.PositionCurrent[1]
	assert.Less(t, y, start[1])
	assert.GreaterOrEqual(t, y, finish[1])
}

func TestStep_OutOfFuel(t *testing.T) {
	cfg := testConfig()
	cfg.Fuel.SecondsToEmpty = 2
	s := newSession(t, cfg)
	log := &eventLog{}
	s.Subscribe(log, EventFuel, EventOutcome)

	out := stepUntil(t, s, 1000, func() bool { return false })

	assert.Equal(t, state.OutcomeOutOfFuel, out)
	assert.Equal(t, 128, s.Frame(), "two whole seconds at 64 frames per second")
	assert.Equal(t, cfg.Player.Lives-1, s.Player.LivesCurrent)
	assert.Equal(t, 0, s.Player.HitpointsCurrent)
	assert.Equal(t, 1, s.Meter.Lit(), "the first lamp is never switched off")

	require.Len(t, log.events, 3)
	assert.Equal(t, EventFuel, log.events[0].Type)
	assert.Equal(t, 50.0, log.events[0].Fuel)
	assert.Equal(t, Event{
		Type:      EventOutcome,
		Frame:     128,
		Outcome:   "OutOfFuel",
		Fuel:      0,
		Lives:     cfg.Player.Lives - 1,
		Hitpoints: 0,
		Lamps:     1,
	}, log.events[2])

	assert.True(t, s.Done())
	assert.Equal(t, state.OutcomeNone, s.Step(dt), "finished sessions do nothing")
	assert.Equal(t, 128, s.Frame())
}

func TestStep_GameOver(t *testing.T) {
	cfg := testConfig()
	cfg.Player.Lives = 1
	cfg.Player.Hitpoints = 1
	cfg.Shield = config.ShieldConfig{}
	cfg.Hazards = config.HazardsConfig{Hits: []config.HazardHit{{At: 0.25, Damage: 1}}}
	s := newSession(t, cfg)
	log := &eventLog{}
	s.Subscribe(log)

	out := stepUntil(t, s, 1000, func() bool { return false })

	assert.Equal(t, state.OutcomeGameOver, out)
	assert.Equal(t, state.StateGameOver, s.Machine.State())
	assert.Equal(t, 0, s.Player.LivesCurrent)
	assert.Equal(t, []string{"Spawn>Play", "Play>Die", "Die>GameOver"}, log.transitions())
	assert.Equal(t, state.OutcomeGameOver, s.Outcome())
}

func TestStep_RespawnAfterDeath(t *testing.T) {
	cfg := testConfig()
	cfg.Player.Lives = 2
	cfg.Player.Hitpoints = 1
	cfg.Shield = config.ShieldConfig{}
	cfg.Hazards = config.HazardsConfig{Hits: []config.HazardHit{{At: 0.25, Damage: 1}}}
	s := newSession(t, cfg)

	stepUntil(t, s, 1000, func() bool { return s.Machine.State() == state.StateDie })
	assert.Equal(t, 1, s.Player.LivesCurrent)
	assert.Equal(t, 0, s.Player.HitpointsCurrent)

	stepUntil(t, s, 1000, func() bool { return s.Machine.State() == state.StateRespawn })
	assert.Equal(t, 1, s.Player.HitpointsCurrent, "hitpoints restored on respawn")

	stepUntil(t, s, 1000, func() bool { return s.Machine.State() == state.StatePlay })
	require.Equal(t, state.OutcomeNone, s.Step(dt))
	assert.True(t, s.Player.Invincible, "respawn grants invincibility")

	stepUntil(t, s, 1000, func() bool { return !s.Player.Invincible })
	assert.Equal(t, state.StatePlay, s.Machine.State())
	assert.False(t, s.Done())
}

func TestStep_Victory(t *testing.T) {
	cfg := testConfig()
	cfg.WinAfterSeconds = 0.5
	s := newSession(t, cfg)

	out := stepUntil(t, s, 1000, func() bool { return false })

	assert.Equal(t, state.OutcomeVictory, out)
	assert.Equal(t, state.StateWin, s.Machine.State())
	assert.Equal(t, 0.5, s.PlayTime())
}

func TestStep_CountsPlayTimeWithoutWinCondition(t *testing.T) {
	cfg := testConfig()
	s := newSession(t, cfg)

	stepUntil(t, s, 1000, func() bool { return s.Machine.State() == state.StatePlay })
	before := s.PlayTime()
	for i := 0; i < 64; i++ {
		require.Equal(t, state.OutcomeNone, s.Step(dt))
	}

	assert.Equal(t, before+1.0, s.PlayTime())
	assert.False(t, s.Done())
}

func TestStep_TerminalStateFinishesSession(t *testing.T) {
	s := newSession(t, testConfig())
	s.Machine.SetState(state.StateWin)

	assert.True(t, s.Done())
	assert.Equal(t, state.OutcomeNone, s.Step(dt))
	assert.Equal(t, 0, s.Frame())
}

func TestStep_FuelEventsCarryLamps(t *testing.T) {
	cfg := testConfig()
	cfg.Fuel.SecondsToEmpty = 2
	s := newSession(t, cfg)
	log := &eventLog{}
	s.Subscribe(log, EventFuel)

	stepUntil(t, s, 1000, func() bool { return len(log.events) == 1 })
	s.Step(dt)

	// The first step is published before the tiers refresh
	assert.Equal(t, cfg.Fuel.Tiers, log.events[0].Lamps)
	assert.Equal(t, 50.0, s.Fuel.Current())
	assert.Equal(t, 5, s.Meter.Lit())
}

func TestStep_ReplayIsDeterministic(t *testing.T) {
	cfg := testConfig()
	cfg.Hazards = config.HazardsConfig{Period: 1, Hits: []config.HazardHit{{At: 0.5, Damage: 1}}}

	rec := replay.NewRecorder(64, "test")
	live := newSession(t, cfg)
	for i := 0; i < 400; i++ {
		c := system.Controls{Left: i%50 < 20, Up: i%30 < 10, Fire: i%3 == 0}
		*live.Controls = c
		rec.Record(c)
		if live.Step(dt) != state.OutcomeNone {
			break
		}
	}

	replayed := newSession(t, cfg)
	player := replay.NewReplayer(rec.Data())
	for {
		c, ok := player.GetInput()
		if !ok {
			break
		}
		*replayed.Controls = c
		replayed.Step(player.DT())
	}

	assert.Equal(t, live.Frame(), replayed.Frame())
	assert.Equal(t, live.Player, replayed.Player)
	assert.Equal(t, live.Guns.ShotsFired(), replayed.Guns.ShotsFired())
	assert.Equal(t, live.Machine.State(), replayed.Machine.State())
}
