package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/younwookim/starfall/internal/application/session"
	"github.com/younwookim/starfall/internal/application/state"
	"github.com/younwookim/starfall/internal/application/view"
	"github.com/younwookim/starfall/internal/infrastructure/config"
)

var (
	styleDefault = tcell.StyleDefault
	styleShip    = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleBlink   = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleHUD     = tcell.StyleDefault.Foreground(tcell.ColorSilver)
	styleLampOn  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleLampOff = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleLine    = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleTitle   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

// hudRows are the rows reserved for the status and fuel lines
const hudRows = 2

// driver runs sessions on a tcell screen
type driver struct {
	screen    tcell.Screen
	cfg       *config.SessionConfig
	logger    *zap.Logger
	listeners []session.Listener

	keys    keyLatch
	sess    *session.Session
	ending  state.Outcome
	elapsed float64
}

func newDriver(screen tcell.Screen, cfg *config.SessionConfig, logger *zap.Logger, listeners ...session.Listener) (*driver, error) {
	d := &driver{screen: screen, cfg: cfg, logger: logger, listeners: listeners}
	if err := d.restart(); err != nil {
		return nil, err
	}
	return d, nil
}

// restart begins a fresh flight
func (d *driver) restart() error {
	sess, err := session.New(d.cfg, d.logger.Named("session"))
	if err != nil {
		return fmt.Errorf("failed to start flight: %w", err)
	}
	for _, l := range d.listeners {
		sess.Subscribe(l)
	}
	d.sess = sess
	d.ending = state.OutcomeNone
	d.keys.reset()
	return nil
}

// handleEvent applies ev and reports whether the player quit
func (d *driver) handleEvent(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return d.keys.handleKey(ev, now)
	case *tcell.EventResize:
		d.screen.Sync()
	}
	return false
}

// step advances one frame
func (d *driver) step(dt float64, now time.Time) error {
	c := d.keys.controls(now)
	d.elapsed += dt

	if d.ending != state.OutcomeNone {
		if c.Advance {
			return d.restart()
		}
		return nil
	}

	*d.sess.Controls = c
	if out := d.sess.Step(dt); out != state.OutcomeNone {
		d.ending = out
	}
	return nil
}

func (d *driver) draw() {
	d.screen.Clear()
	if d.ending != state.OutcomeNone {
		d.drawEnding()
	} else {
		d.drawFlight()
	}
	d.screen.Show()
}

// cell maps a world position onto the play area above the HUD
func (d *driver) cell(x, y float64) (int, int) {
	cols, rows := d.screen.Size()
	rows -= hudRows
	cx := int(x / float64(d.cfg.Display.ScreenWidth) * float64(cols))
	cy := int(y / float64(d.cfg.Display.ScreenHeight) * float64(rows))
	return cx, cy
}

func (d *driver) drawFlight() {
	s := d.sess
	cols, rows := d.screen.Size()

	if s.Machine.State() != state.StateDie {
		x, y := d.cell(s.Player.PositionCurrent[0], s.Player.PositionCurrent[1])
		style := styleShip
		if s.Player.Invincible && int(d.elapsed*10)%2 == 0 {
			style = styleBlink
		}
		if x >= 0 && x < cols && y >= 0 && y < rows-hudRows {
			d.screen.SetContent(x, y, 'A', nil, style)
		}
	}

	if line, ok := s.Narrative.Line(); ok {
		drawText(d.screen, (cols-len(line))/2, (rows-hudRows)/2, styleLine, line)
	}
	if s.Machine.State() == state.StateIntro {
		drawText(d.screen, (cols-8)/2, (rows-hudRows)/3, styleTitle, "STARFALL")
	}

	status := fmt.Sprintf("%-8s HP %d/%d  Lives %d  Shield %.1f",
		s.Machine.Readout(),
		s.Player.HitpointsCurrent, s.Player.HitpointsBase,
		s.Player.LivesCurrent,
		s.Shield.Shield())
	drawText(d.screen, 0, rows-2, styleHUD, status)

	label := fmt.Sprintf("Fuel %3.0f ", s.Fuel.Current())
	drawText(d.screen, 0, rows-1, styleHUD, label)
	for i, lit := range meterLamps(s.Meter) {
		style := styleLampOff
		r := '░'
		if lit {
			style, r = styleLampOn, '█'
		}
		d.screen.SetContent(len(label)+i, rows-1, r, nil, style)
	}
}

func (d *driver) drawEnding() {
	cols, rows := d.screen.Size()
	title := endingTitle(d.ending)
	drawText(d.screen, (cols-len(title))/2, rows/2-1, styleTitle, title)
	hint := "Enter: fly again   Esc: quit"
	drawText(d.screen, (cols-len(hint))/2, rows/2+1, styleDefault, hint)
}

func endingTitle(out state.Outcome) string {
	switch out {
	case state.OutcomeGameOver:
		return "GAME OVER"
	case state.OutcomeOutOfFuel:
		return "OUT OF FUEL"
	case state.OutcomeVictory:
		return "VICTORY"
	}
	return strings.ToUpper(out.String())
}

// meterLamps returns the lit state of every tier lamp
func meterLamps(m *view.Meter) []bool {
	lamps := make([]bool, m.TierCount())
	for i := range lamps {
		lamps[i] = m.Tier(i)
	}
	return lamps
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}

// pollEvents forwards screen events until the screen is finalized or ctx ends
func pollEvents(ctx context.Context, screen tcell.Screen, events chan<- tcell.Event) {
	defer close(events)
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// run drives frames at the configured framerate until ctx ends or the player quits
func (d *driver) run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	dt := 1.0 / float64(d.cfg.Display.Framerate)
	ticker := time.NewTicker(time.Duration(dt * float64(time.Second)))
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go pollEvents(ctx, d.screen, events)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok || d.handleEvent(ev, time.Now()) {
				return nil
			}
		case now := <-ticker.C:
			if err := d.step(dt, now); err != nil {
				return err
			}
			d.draw()
		}
	}
}
