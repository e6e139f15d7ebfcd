package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/younwookim/starfall/internal/application/session"
	"github.com/younwookim/starfall/internal/infrastructure/config"
	"github.com/younwookim/starfall/internal/infrastructure/logging"
	"github.com/younwookim/starfall/internal/infrastructure/sfx"
)

func main() {
	configDir := flag.String("config", "", "Directory holding session.json (default: built-in config)")
	logFile := flag.String("log", "starfall-tui.log", "Write logs to this file, rotated")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	sound := flag.Bool("sound", false, "Play tone cues for flight events")
	flag.Parse()

	// The terminal owns stdout and stderr, so logs always go to a file
	logger, err := logging.New(logging.Options{File: *logFile, Level: *logLevel})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	loader := config.Embedded()
	if *configDir != "" {
		loader = config.NewLoader(*configDir)
	}
	cfg, err := loader.LoadSession()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var listeners []session.Listener
	if *sound {
		player := sfx.NewPlayer(0.3, logger.Named("sfx"))
		if err := player.Init(); err != nil {
			logger.Warn("sound disabled", zap.Error(err))
		} else {
			defer player.Close()
			listeners = append(listeners, session.ListenerFunc(func(e session.Event) {
				if cue, ok := cueFor(e); ok {
					player.Play(cue)
				}
			}))
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Failed to initialize screen: %v", err)
	}

	d, err := newDriver(screen, cfg, logger, listeners...)
	if err != nil {
		screen.Fini()
		log.Fatalf("Failed to start game: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runErr := d.run(ctx)
	screen.Fini()
	if runErr != nil {
		log.Fatal(runErr)
	}
}

func cueFor(e session.Event) (sfx.Cue, bool) {
	switch e.Type {
	case session.EventTransition:
		return sfx.ForTransition(e.To)
	case session.EventOutcome:
		return sfx.ForOutcome(e.Outcome)
	}
	return 0, false
}
