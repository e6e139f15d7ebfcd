package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/starfall/internal/application/replay"
	"github.com/younwookim/starfall/internal/infrastructure/config"
	"github.com/younwookim/starfall/internal/infrastructure/logging"
)

func main() {
	// Parse command line flags
	configDir := flag.String("config", "", "Directory holding session.json (default: built-in config)")
	recordFlag := flag.String("record", "", "Record input to file (e.g., -record replay.json)")
	recordAuto := flag.Bool("record-auto", false, "Record input to a timestamped replay_*.json file")
	replayFlag := flag.String("replay", "", "Play back a recorded input file")
	logFile := flag.String("log", "", "Write logs to this file, rotated (default: stderr)")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	telemetryAddr := flag.String("telemetry", "", "Serve session events over websocket (e.g., -telemetry :8090)")
	sound := flag.Bool("sound", false, "Play tone cues for flight events")
	flag.Parse()

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

	opts := options{
		RecordPath:    *recordFlag,
		Record:        *recordAuto,
		TelemetryAddr: *telemetryAddr,
		Sound:         *sound,
	}
	if *replayFlag != "" {
		data, err := replay.LoadReplay(*replayFlag)
		if err != nil {
			log.Fatalf("Failed to load replay: %v", err)
		}
		opts.Replay = data
	}

	a, err := newApp(cfg, opts, logger)
	if err != nil {
		log.Fatalf("Failed to start game: %v", err)
	}
	defer a.Close()

	// Set up ebiten
	ebiten.SetWindowSize(cfg.Display.ScreenWidth*cfg.Display.Scale, cfg.Display.ScreenHeight*cfg.Display.Scale)
	ebiten.SetWindowTitle("Starfall")
	ebiten.SetTPS(cfg.Display.Framerate)

	// Run game
	if err := ebiten.RunGame(a.game); err != nil {
		log.Fatal(err)
	}
}
