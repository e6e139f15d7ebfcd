package flow

import (
	"errors"
	"fmt"

	"golang.org/x/image/math/f64"
)

// ErrMissingCollaborator is returned by New when a required dependency is nil.
var ErrMissingCollaborator = errors.New("missing collaborator")

// Ship moves the player's ship.
type Ship interface {
	ForceSetPosition(pos f64.Vec3)
	Update(dt float64)
}

// Guns runs the player's weapons.
type Guns interface {
	Update(dt float64)
}

// Enemies runs everything hostile to the player.
type Enemies interface {
	Update(dt float64)
}

// ShieldHealth applies incoming damage to the shield and hitpoints.
type ShieldHealth interface {
	OnSpawnReset()
	Update(dt float64)
}

// Narrative plays the opening dialogue.
type Narrative interface {
	StartDialogue()
	CleanupNarrative()
	// Update advances the dialogue and reports whether it has finished.
	Update(dt float64) bool
}

// Fader runs the screen fade.
type Fader interface {
	FadeFromBlack()
}

// Collaborators groups the subsystems the machine drives.
// Every field is required.
type Collaborators struct {
	Ship         Ship
	Guns         Guns
	Enemies      Enemies
	ShieldHealth ShieldHealth
	Narrative    Narrative
	Fader        Fader
}

func (c Collaborators) validate() error {
	missing := func(name string) error {
		return fmt.Errorf("flow machine needs a %s: %w", name, ErrMissingCollaborator)
	}
	switch {
	case c.Ship == nil:
		return missing("ship")
	case c.Guns == nil:
		return missing("guns controller")
	case c.Enemies == nil:
		return missing("enemy controller")
	case c.ShieldHealth == nil:
		return missing("shield and health controller")
	case c.Narrative == nil:
		return missing("narrative")
	case c.Fader == nil:
		return missing("fade view")
	}
	return nil
}
