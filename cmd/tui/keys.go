package main

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/younwookim/starfall/internal/application/system"
)

// holdWindow is how long a key counts as held after its last press.
// Terminals report presses and autorepeats, never releases.
const holdWindow = 250 * time.Millisecond

type control int

const (
	ctlLeft control = iota
	ctlRight
	ctlUp
	ctlDown
	ctlFire
	ctlCount
)

// keyLatch turns terminal key presses into held controls
type keyLatch struct {
	last    [ctlCount]time.Time
	advance bool
}

func (k *keyLatch) press(c control, now time.Time) {
	k.last[c] = now
}

func (k *keyLatch) held(c control, now time.Time) bool {
	t := k.last[c]
	return !t.IsZero() && now.Sub(t) < holdWindow
}

// controls returns the controls for a frame at now and consumes Advance
func (k *keyLatch) controls(now time.Time) system.Controls {
	c := system.Controls{
		Left:    k.held(ctlLeft, now),
		Right:   k.held(ctlRight, now),
		Up:      k.held(ctlUp, now),
		Down:    k.held(ctlDown, now),
		Fire:    k.held(ctlFire, now),
		Advance: k.advance,
	}
	k.advance = false
	return c
}

func (k *keyLatch) reset() {
	*k = keyLatch{}
}

// handleKey records ev and reports whether it asked to quit
func (k *keyLatch) handleKey(ev *tcell.EventKey, now time.Time) (quit bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyLeft:
		k.press(ctlLeft, now)
	case tcell.KeyRight:
		k.press(ctlRight, now)
	case tcell.KeyUp:
		k.press(ctlUp, now)
	case tcell.KeyDown:
		k.press(ctlDown, now)
	case tcell.KeyEnter:
		k.advance = true
	case tcell.KeyRune:
		if ev.Modifiers()&tcell.ModCtrl != 0 && ev.Rune() == 'c' {
			return true
		}
		switch ev.Rune() {
		case 'q':
			return true
		case 'a':
			k.press(ctlLeft, now)
		case 'd':
			k.press(ctlRight, now)
		case 'w':
			k.press(ctlUp, now)
		case 's':
			k.press(ctlDown, now)
		case ' ':
			k.press(ctlFire, now)
		case 'z':
			k.advance = true
		}
	}
	return false
}
