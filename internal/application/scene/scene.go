// Package scene defines the Scene interface for game screens.
//
// Each screen (flight, game over, out of fuel, victory) implements Scene to
// handle its own update logic and rendering.
package scene

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/starfall/internal/application/state"
)

// Scene represents a game screen
//
// The game loop delegates Update and Draw calls to the current scene.
// A scene changes screens either by returning the next Scene from Update or
// by asking its Loader for a registered one.
type Scene interface {
	// Update updates the scene state.
	// dt is the delta time in seconds (typically 1/60).
	// Returns the next scene if a transition is needed, nil to stay on current scene.
	// Returns an error to terminate the game.
	Update(dt float64) (next Scene, err error)

	// Draw renders the scene to the screen.
	Draw(screen *ebiten.Image)

	// OnEnter is called when entering this scene.
	OnEnter()

	// OnExit is called when leaving this scene.
	OnExit()
}

// ID names a registered scene
type ID int

const (
	Flight ID = iota
	GameOver
	OutOfFuel
	Victory
)

// String returns the scene name
func (id ID) String() string {
	switch id {
	case Flight:
		return "Flight"
	case GameOver:
		return "GameOver"
	case OutOfFuel:
		return "OutOfFuel"
	case Victory:
		return "Victory"
	default:
		return "Unknown"
	}
}

// Loader switches to a registered scene at the end of the current frame
type Loader interface {
	LoadScene(id ID) error
}

// ForOutcome returns the scene that shows an outcome
func ForOutcome(out state.Outcome) (ID, bool) {
	switch out {
	case state.OutcomeGameOver:
		return GameOver, true
	case state.OutcomeOutOfFuel:
		return OutOfFuel, true
	case state.OutcomeVictory:
		return Victory, true
	default:
		return 0, false
	}
}
