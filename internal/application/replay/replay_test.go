package replay

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/starfall/internal/application/system"
)

func TestFrameInput_FlattensControls(t *testing.T) {
	input := FrameInput{F: 10, Controls: system.Controls{Left: true, Fire: true}}

	data, err := json.Marshal(input)
	require.NoError(t, err)
	assert.JSONEq(t, `{"f":10,"l":true,"s":true}`, string(data))
}

func TestReplayer_GetInput(t *testing.T) {
	data := ReplayData{
		Version:   Version,
		Framerate: 60,
		Frames: []FrameInput{
			{F: 0, Controls: system.Controls{Left: true}},
			{F: 1, Controls: system.Controls{Right: true, Fire: true, Advance: true}},
			{F: 2},
		},
	}

	replayer := NewReplayer(data)

	input, ok := replayer.GetInput()
	require.True(t, ok)
	assert.True(t, input.Left)
	assert.False(t, input.Right)

	input, ok = replayer.GetInput()
	require.True(t, ok)
	assert.Equal(t, system.Controls{Right: true, Fire: true, Advance: true}, input)

	input, ok = replayer.GetInput()
	require.True(t, ok)
	assert.Equal(t, system.Controls{}, input)

	_, ok = replayer.GetInput()
	assert.False(t, ok)
}

func TestReplayer_FrameCounters(t *testing.T) {
	replayer := NewReplayer(CreateTestReplayData(10, 64))

	assert.Equal(t, 10, replayer.TotalFrames())
	assert.Equal(t, 0, replayer.CurrentFrame())
	assert.Equal(t, 1.0/64, replayer.DT())

	replayer.GetInput()
	replayer.GetInput()
	replayer.GetInput()
	assert.Equal(t, 3, replayer.CurrentFrame())
}

func TestReplayData_DT(t *testing.T) {
	assert.Equal(t, 0.0, ReplayData{}.DT())
	assert.Equal(t, 0.5, ReplayData{Framerate: 2}.DT())
}

func TestRecorder_SaveAndLoad(t *testing.T) {
	rec := NewRecorder(60, "session.json")
	rec.Record(system.Controls{Up: true})
	rec.Record(system.Controls{})
	rec.Record(system.Controls{Down: true, Fire: true})
	rec.Finish("Victory")

	path := filepath.Join(t.TempDir(), "run.json")
	require.NoError(t, rec.Save(path))

	loaded, err := LoadReplay(path)
	require.NoError(t, err)

	assert.Equal(t, Version, loaded.Version)
	assert.Equal(t, 60, loaded.Framerate)
	assert.Equal(t, "session.json", loaded.Config)
	assert.Equal(t, "Victory", loaded.Outcome)
	require.Len(t, loaded.Frames, 3)
	for i, frame := range loaded.Frames {
		assert.Equal(t, i, frame.F, "frame number mismatch at index %d", i)
	}
	assert.Equal(t, rec.Data().Frames, loaded.Frames)
}

func TestLoadReplay_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadReplay(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	garbage := filepath.Join(dir, "garbage.json")
	require.NoError(t, os.WriteFile(garbage, []byte("{"), 0o644))
	_, err = LoadReplay(garbage)
	assert.Error(t, err)

	old := filepath.Join(dir, "old.json")
	require.NoError(t, os.WriteFile(old, []byte(`{"version":"0.1","framerate":60}`), 0o644))
	_, err = LoadReplay(old)
	assert.ErrorIs(t, err, ErrUnsupported)

	noRate := filepath.Join(dir, "norate.json")
	require.NoError(t, os.WriteFile(noRate, []byte(`{"version":"1.0"}`), 0o644))
	_, err = LoadReplay(noRate)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestGenerateFilename(t *testing.T) {
	name := GenerateFilename()
	assert.Regexp(t, `^replay_\d{8}_\d{6}\.json$`, name)
}
