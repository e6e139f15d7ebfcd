package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/younwookim/starfall/internal/application/replay"
	"github.com/younwookim/starfall/internal/application/scene"
	"github.com/younwookim/starfall/internal/application/scene/ending"
	"github.com/younwookim/starfall/internal/application/scene/flight"
	"github.com/younwookim/starfall/internal/infrastructure/config"
)

func TestNewApp_ReplayRunsToEnding(t *testing.T) {
	cfg, err := config.Embedded().LoadSession()
	require.NoError(t, err)
	cfg.Opening.PlayIntro = false
	cfg.Fuel.SecondsToEmpty = 1

	data := replay.CreateTestReplayData(600, 64)
	a, err := newApp(cfg, options{Replay: &data}, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer a.Close()

	_, ok := a.game.Current().(*flight.Flight)
	require.True(t, ok, "the game opens on the flight scene")

	for i := 0; i < 200; i++ {
		require.NoError(t, a.game.Update())
		if _, done := a.game.Current().(*ending.Ending); done {
			break
		}
	}

	end, ok := a.game.Current().(*ending.Ending)
	require.True(t, ok, "flight should have ended")
	assert.Equal(t, scene.OutOfFuel, end.ID())
}

func TestNewApp_TelemetryStartsAndStops(t *testing.T) {
	cfg := config.Default()
	a, err := newApp(cfg, options{TelemetryAddr: "127.0.0.1:0"}, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.NotNil(t, a.telemetry)
	assert.NotPanics(t, a.Close)
}

func TestNewApp_CloseSavesRecordingMidFlight(t *testing.T) {
	cfg := config.Default()
	path := filepath.Join(t.TempDir(), "flight.json")
	data := replay.CreateTestReplayData(600, 64)
	a, err := newApp(cfg, options{RecordPath: path, Replay: &data}, zaptest.NewLogger(t))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, a.game.Update())
	}
	a.Close()

	saved, err := replay.LoadReplay(path)
	require.NoError(t, err)
	assert.Len(t, saved.Frames, 5)
	assert.Empty(t, saved.Outcome)
}
