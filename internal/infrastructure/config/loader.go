package config

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// SessionFile is the name of the session config inside a config directory
const SessionFile = "session.json"

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid config")

//go:embed defaults/*.json
var defaultsFS embed.FS

// Loader loads game configuration from JSON files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// Embedded returns a loader over the configs compiled into the binary
func Embedded() *Loader {
	sub, err := fs.Sub(defaultsFS, "defaults")
	if err != nil {
		// defaults/ is embedded at build time; Sub only fails on a bad pattern
		panic(err)
	}
	return NewFSLoader(sub, "defaults")
}

// explicitZeros records fields where zero is a meaningful setting, so a
// value written in the file survives ApplyDefaults.
type explicitZeros struct {
	Timing struct {
		SpawnInvincibility *float64 `json:"spawnInvincibility"`
	} `json:"timing"`
	Fuel struct {
		Tiers *int `json:"tiers"`
	} `json:"fuel"`
	Player struct {
		Lives *int `json:"lives"`
	} `json:"player"`
}

func (z explicitZeros) restore(cfg *SessionConfig) {
	if z.Timing.SpawnInvincibility != nil {
		cfg.Timing.SpawnInvincibility = *z.Timing.SpawnInvincibility
	}
	if z.Fuel.Tiers != nil {
		cfg.Fuel.Tiers = *z.Fuel.Tiers
	}
	if z.Player.Lives != nil {
		cfg.Player.Lives = *z.Player.Lives
	}
}

// LoadSession loads session.json, fills unset fields with defaults and validates
func (l *Loader) LoadSession() (*SessionConfig, error) {
	data, err := fs.ReadFile(l.fsys, SessionFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", SessionFile, err)
	}

	var cfg SessionConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", SessionFile, err)
	}
	var zeros explicitZeros
	if err := json.Unmarshal(data, &zeros); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", SessionFile, err)
	}

	cfg.ApplyDefaults()
	zeros.restore(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("failed to validate %s in %s: %w", SessionFile, l.basePath, err)
	}

	return &cfg, nil
}
