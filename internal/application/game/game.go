// Package game provides the main game loop manager that handles Scene transitions.
package game

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/younwookim/starfall/internal/application/scene"
)

// ErrUnknownScene is returned by LoadScene for an unregistered ID
var ErrUnknownScene = errors.New("unknown scene")

// Factory builds a fresh instance of a registered scene
type Factory func(loader scene.Loader) (scene.Scene, error)

// Game implements ebiten.Game and manages Scene transitions.
// It is also the scene.Loader handed to every scene it builds.
type Game struct {
	current   scene.Scene
	factories map[scene.ID]Factory
	pending   *scene.ID
	screenW   int
	screenH   int
	dt        float64
	logger    *zap.Logger
}

// New creates a new Game with no scene. Register scenes, then call Start.
// A nil logger discards diagnostics.
func New(screenW, screenH int, logger *zap.Logger) *Game {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Game{
		factories: make(map[scene.ID]Factory),
		screenW:   screenW,
		screenH:   screenH,
		dt:        1.0 / 60.0, // Default to 60 FPS
		logger:    logger,
	}
}

// Register makes a scene loadable by ID
func (g *Game) Register(id scene.ID, factory Factory) {
	g.factories[id] = factory
}

// Start builds the scene registered under id and enters it immediately
func (g *Game) Start(id scene.ID) error {
	next, err := g.build(id)
	if err != nil {
		return err
	}
	g.switchTo(next)
	return nil
}

// LoadScene schedules a switch to id once the current Update returns.
// Implements scene.Loader.
func (g *Game) LoadScene(id scene.ID) error {
	if _, ok := g.factories[id]; !ok {
		return fmt.Errorf("load scene %s: %w", id, ErrUnknownScene)
	}
	g.pending = &id
	return nil
}

// Current returns the active scene
func (g *Game) Current() scene.Scene {
	return g.current
}

func (g *Game) build(id scene.ID) (scene.Scene, error) {
	factory, ok := g.factories[id]
	if !ok {
		return nil, fmt.Errorf("build scene %s: %w", id, ErrUnknownScene)
	}
	s, err := factory(g)
	if err != nil {
		return nil, fmt.Errorf("build scene %s: %w", id, err)
	}
	g.logger.Info("scene loaded", zap.Stringer("scene", id))
	return s, nil
}

func (g *Game) switchTo(next scene.Scene) {
	if g.current != nil {
		g.current.OnExit()
	}
	g.current = next
	g.current.OnEnter()
}

// Update updates the current scene and handles scene transitions.
// Implements ebiten.Game interface.
func (g *Game) Update() error {
	if g.current == nil {
		return nil
	}

	next, err := g.current.Update(g.dt)
	if err != nil {
		return err
	}

	// A requested load wins over a returned scene
	if g.pending != nil {
		id := *g.pending
		g.pending = nil
		if next, err = g.build(id); err != nil {
			return err
		}
	}

	if next != nil {
		g.switchTo(next)
	}

	return nil
}

// Draw renders the current scene.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.current != nil {
		g.current.Draw(screen)
	}
}

// Layout returns the game's logical screen dimensions.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// Close exits the current scene. The game does nothing after Close.
func (g *Game) Close() {
	if g.current == nil {
		return
	}
	g.current.OnExit()
	g.current = nil
	g.pending = nil
}

// SetDT sets the delta time used for updates.
// Useful for testing or custom frame rates.
func (g *Game) SetDT(dt float64) {
	g.dt = dt
}
