// Package ending provides the screens shown when a flight finishes.
package ending

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"github.com/younwookim/starfall/internal/application/scene"
	"github.com/younwookim/starfall/internal/application/system"
)

// Ending is a static title card that restarts the flight on Advance
type Ending struct {
	id      scene.ID
	loader  scene.Loader
	input   system.ControlSource
	title   string
	detail  string
	tint    color.RGBA
	screenW int
	screenH int
}

// New creates the ending screen for id
func New(id scene.ID, loader scene.Loader, input system.ControlSource, screenW, screenH int) *Ending {
	e := &Ending{id: id, loader: loader, input: input, screenW: screenW, screenH: screenH}
	switch id {
	case scene.GameOver:
		e.title, e.detail = "GAME OVER", "No lives left"
		e.tint = color.RGBA{100, 0, 0, 255}
	case scene.OutOfFuel:
		e.title, e.detail = "OUT OF FUEL", "The tank ran dry"
		e.tint = color.RGBA{90, 60, 0, 255}
	case scene.Victory:
		e.title, e.detail = "VICTORY", "You made it through"
		e.tint = color.RGBA{0, 70, 40, 255}
	default:
		e.title = id.String()
		e.tint = color.RGBA{26, 26, 46, 255}
	}
	return e
}

// ID returns the scene this screen was built for
func (e *Ending) ID() scene.ID {
	return e.id
}

// Title returns the headline text
func (e *Ending) Title() string {
	return e.title
}

// Update waits for Advance (implements scene.Scene)
func (e *Ending) Update(_ float64) (scene.Scene, error) {
	if e.input != nil && e.input.GetInput().Advance {
		if err := e.loader.LoadScene(scene.Flight); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

// Draw renders the title card
func (e *Ending) Draw(screen *ebiten.Image) {
	screen.Fill(e.tint)
	ebitenutil.DrawRect(screen, 0, float64(e.screenH)/2-24, float64(e.screenW), 48, color.RGBA{0, 0, 0, 120})

	cx, cy := e.screenW/2, e.screenH/2
	text.Draw(screen, e.title, basicfont.Face7x13, cx-len(e.title)*7/2, cy-4, color.White)
	if e.detail != "" {
		text.Draw(screen, e.detail, basicfont.Face7x13, cx-len(e.detail)*7/2, cy+12, color.Gray{Y: 200})
	}
	ebitenutil.DebugPrintAt(screen, "Press Enter to fly again", cx-72, e.screenH-24)
}

// OnEnter is called when entering this scene
func (e *Ending) OnEnter() {}

// OnExit is called when leaving this scene
func (e *Ending) OnExit() {}
