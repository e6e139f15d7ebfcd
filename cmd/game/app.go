package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/younwookim/starfall/internal/application/game"
	"github.com/younwookim/starfall/internal/application/replay"
	"github.com/younwookim/starfall/internal/application/scene"
	"github.com/younwookim/starfall/internal/application/scene/ending"
	"github.com/younwookim/starfall/internal/application/scene/flight"
	"github.com/younwookim/starfall/internal/application/session"
	"github.com/younwookim/starfall/internal/infrastructure/config"
	"github.com/younwookim/starfall/internal/infrastructure/sfx"
	"github.com/younwookim/starfall/internal/infrastructure/telemetry"
)

// options are the optional outer surfaces selected on the command line
type options struct {
	RecordPath    string
	Record        bool
	Replay        *replay.ReplayData
	TelemetryAddr string
	Sound         bool
}

// app owns the scene manager and the optional outputs fed by session events
type app struct {
	game      *game.Game
	telemetry *telemetry.Server
	sound     *sfx.Player
	logger    *zap.Logger
}

func newApp(cfg *config.SessionConfig, opts options, logger *zap.Logger) (*app, error) {
	a := &app{logger: logger}
	listeners := []session.Listener{session.ListenerFunc(a.logEvent)}

	if opts.TelemetryAddr != "" {
		hub := telemetry.NewHub(logger.Named("telemetry"))
		a.telemetry = telemetry.NewServer(opts.TelemetryAddr, hub, logger.Named("telemetry"))
		a.telemetry.Start()
		listeners = append(listeners, session.ListenerFunc(func(e session.Event) {
			if err := hub.Publish(e); err != nil {
				logger.Warn("telemetry dropped", zap.Error(err))
			}
		}))
	}

	if opts.Sound {
		player := sfx.NewPlayer(0.3, logger.Named("sfx"))
		if err := player.Init(); err != nil {
			// Non-fatal, the game runs without sound
			logger.Warn("sound disabled", zap.Error(err))
		} else {
			a.sound = player
			listeners = append(listeners, session.ListenerFunc(a.playCue))
		}
	}

	input := flight.NewKeyboardInput()
	w, h := cfg.Display.ScreenWidth, cfg.Display.ScreenHeight

	g := game.New(w, h, logger.Named("game"))
	g.SetDT(1.0 / float64(cfg.Display.Framerate))
	if opts.Replay != nil {
		g.SetDT(opts.Replay.DT())
	}

	g.Register(scene.Flight, func(loader scene.Loader) (scene.Scene, error) {
		return flight.New(loader, flight.Options{
			Config:     cfg,
			Logger:     logger,
			Input:      input,
			Replay:     opts.Replay,
			Record:     opts.Record,
			RecordPath: opts.RecordPath,
			Listeners:  listeners,
		})
	})
	for _, id := range []scene.ID{scene.GameOver, scene.OutOfFuel, scene.Victory} {
		g.Register(id, func(loader scene.Loader) (scene.Scene, error) {
			return ending.New(id, loader, input, w, h), nil
		})
	}

	if err := g.Start(scene.Flight); err != nil {
		a.Close()
		return nil, err
	}
	a.game = g
	return a, nil
}

func (a *app) logEvent(e session.Event) {
	switch e.Type {
	case session.EventTransition:
		a.logger.Debug("transition", zap.String("from", e.From), zap.String("to", e.To), zap.Int("frame", e.Frame))
	case session.EventOutcome:
		a.logger.Info("flight ended",
			zap.String("outcome", e.Outcome),
			zap.Int("frame", e.Frame),
			zap.Int("lives", e.Lives),
			zap.Float64("fuel", e.Fuel))
	}
}

func (a *app) playCue(e session.Event) {
	var (
		cue sfx.Cue
		ok  bool
	)
	switch e.Type {
	case session.EventTransition:
		cue, ok = sfx.ForTransition(e.To)
	case session.EventOutcome:
		cue, ok = sfx.ForOutcome(e.Outcome)
	}
	if ok && a.sound != nil {
		a.sound.Play(cue)
	}
}

// Close exits the running scene, saving any recording, then stops the
// optional outputs
func (a *app) Close() {
	if a.game != nil {
		a.game.Close()
	}
	if a.telemetry != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := a.telemetry.Shutdown(ctx); err != nil {
			a.logger.Warn("telemetry shutdown", zap.Error(err))
		}
	}
	if a.sound != nil {
		a.sound.Close()
	}
}
