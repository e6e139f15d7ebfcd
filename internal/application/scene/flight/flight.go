// Package flight provides the main gameplay scene.
package flight

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"go.uber.org/zap"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/f64"

	"github.com/younwookim/starfall/internal/application/replay"
	"github.com/younwookim/starfall/internal/application/scene"
	"github.com/younwookim/starfall/internal/application/session"
	"github.com/younwookim/starfall/internal/application/state"
	"github.com/younwookim/starfall/internal/application/system"
	"github.com/younwookim/starfall/internal/infrastructure/config"
)

// Colors for rendering
var (
	colorBG         = color.RGBA{10, 10, 26, 255}
	colorStar       = color.RGBA{120, 120, 160, 255}
	colorShip       = color.RGBA{100, 200, 100, 255}
	colorShipBlink  = color.RGBA{200, 255, 200, 255}
	colorTracer     = color.RGBA{255, 230, 120, 255}
	colorMeterBG    = color.RGBA{60, 60, 60, 255}
	colorMeterFG    = color.RGBA{230, 160, 40, 255}
	colorLampOn     = color.RGBA{240, 200, 60, 255}
	colorLampOff    = color.RGBA{70, 50, 20, 255}
	colorShield     = color.RGBA{80, 160, 255, 255}
	colorDialogueBG = color.RGBA{0, 0, 0, 200}
	colorText       = color.RGBA{230, 230, 230, 255}
)

const (
	tracerSpeed = 360.0 // pixels per second, upward
	shipW       = 10.0
	shipH       = 12.0
	starCount   = 48
)

// Options configures a Flight scene
type Options struct {
	Config *config.SessionConfig
	Logger *zap.Logger

	// Input supplies live controls. Ignored when Replay is set.
	Input system.ControlSource
	// Replay plays back a recording instead of reading Input
	Replay *replay.ReplayData
	// RecordPath saves the controls of this flight when it ends or the scene exits
	RecordPath string
	// Record saves to a timestamped file when RecordPath is empty
	Record bool

	Listeners []session.Listener
}

type tracer struct {
	x, y float64
}

// Flight is the main gameplay scene
type Flight struct {
	session *session.Session
	loader  scene.Loader
	logger  *zap.Logger

	input    system.ControlSource
	replayer *replay.Replayer

	replayDone bool

	recorder   *replay.Recorder
	recordPath string
	saved      bool

	tracers []tracer
	stars   []f64.Vec3
	screenW int
	screenH int
	elapsed float64
}

// New creates a new Flight scene
func New(loader scene.Loader, opts Options) (*Flight, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	sess, err := session.New(opts.Config, logger.Named("session"))
	if err != nil {
		return nil, fmt.Errorf("failed to start flight: %w", err)
	}
	for _, l := range opts.Listeners {
		sess.Subscribe(l)
	}

	f := &Flight{
		session:    sess,
		loader:     loader,
		logger:     logger,
		input:      opts.Input,
		recordPath: opts.RecordPath,
		screenW:    opts.Config.Display.ScreenWidth,
		screenH:    opts.Config.Display.ScreenHeight,
	}
	if opts.Replay != nil {
		f.replayer = replay.NewReplayer(*opts.Replay)
	}
	if f.recordPath == "" && opts.Record {
		f.recordPath = replay.GenerateFilename()
	}
	if f.recordPath != "" {
		f.recorder = replay.NewRecorder(opts.Config.Display.Framerate, config.SessionFile)
	}
	sess.Guns.OnFire = func(origin f64.Vec3, _ int) {
		f.tracers = append(f.tracers, tracer{x: origin[0], y: origin[1] - shipH/2})
	}
	f.stars = makeStars(f.screenW, f.screenH)

	return f, nil
}

// Session returns the running session
func (f *Flight) Session() *session.Session {
	return f.session
}

// Update proceeds the flight by one frame (implements scene.Scene)
func (f *Flight) Update(dt float64) (scene.Scene, error) {
	if f.session.Done() || f.replayDone {
		return nil, nil
	}

	c, ok := f.nextControls()
	if !ok {
		f.replayDone = true
		f.logger.Info("replay finished without an outcome",
			zap.Int("frames", f.replayer.TotalFrames()),
			zap.Stringer("state", f.session.Machine.State()))
		return nil, nil
	}
	*f.session.Controls = c
	if f.recorder != nil {
		f.recorder.Record(c)
	}

	out := f.session.Step(dt)
	f.elapsed += dt
	f.updateTracers(dt)

	if out == state.OutcomeNone {
		return nil, nil
	}

	if f.recorder != nil {
		f.recorder.Finish(out.String())
		f.saveRecording()
	}
	if id, ok := scene.ForOutcome(out); ok {
		if err := f.loader.LoadScene(id); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

// nextControls reports false once a replay has no frames left
func (f *Flight) nextControls() (system.Controls, bool) {
	if f.replayer != nil {
		return f.replayer.GetInput()
	}
	if f.input != nil {
		return f.input.GetInput(), true
	}
	return system.Controls{}, true
}

// ReplayProgress returns the frames played and recorded when replaying
func (f *Flight) ReplayProgress() (played, total int, ok bool) {
	if f.replayer == nil {
		return 0, 0, false
	}
	return f.replayer.CurrentFrame(), f.replayer.TotalFrames(), true
}

// RecordPath returns where the recording is saved, or "" when not recording
func (f *Flight) RecordPath() string {
	return f.recordPath
}

func (f *Flight) updateTracers(dt float64) {
	kept := f.tracers[:0]
	for _, t := range f.tracers {
		t.y -= tracerSpeed * dt
		if t.y > -4 {
			kept = append(kept, t)
		}
	}
	f.tracers = kept
}

// saveRecording saves the current recording to file
func (f *Flight) saveRecording() {
	if f.recorder == nil {
		return
	}
	if err := f.recorder.Save(f.recordPath); err != nil {
		f.logger.Error("failed to save recording", zap.String("path", f.recordPath), zap.Error(err))
		return
	}
	f.saved = true
	f.logger.Info("recording saved",
		zap.String("path", f.recordPath),
		zap.Int("frames", len(f.recorder.Data().Frames)))
}

// Draw renders the flight
func (f *Flight) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	f.drawStars(screen)
	f.drawTracers(screen)
	if f.session.Machine.State() != state.StateDie {
		f.drawShip(screen)
	}
	f.drawDialogue(screen)
	f.drawUI(screen)

	if a := f.session.Fade.Alpha(); a > 0 {
		overlay := color.RGBA{0, 0, 0, uint8(a * 255)}
		ebitenutil.DrawRect(screen, 0, 0, float64(f.screenW), float64(f.screenH), overlay)
	}
}

func (f *Flight) drawStars(screen *ebiten.Image) {
	h := float64(f.screenH)
	for _, s := range f.stars {
		// Stars scroll at a speed given by their depth
		y := math.Mod(s[1]+f.elapsed*s[2], h)
		ebitenutil.DrawRect(screen, s[0], y, 1, 1, colorStar)
	}
}

func (f *Flight) drawTracers(screen *ebiten.Image) {
	for _, t := range f.tracers {
		ebitenutil.DrawRect(screen, t.x-0.5, t.y-3, 1, 6, colorTracer)
	}
}

func (f *Flight) drawShip(screen *ebiten.Image) {
	p := f.session.Player
	clr := colorShip
	if p.Invincible && int(f.elapsed*10)%2 == 0 {
		clr = colorShipBlink
	}
	x, y := p.PositionCurrent[0], p.PositionCurrent[1]
	ebitenutil.DrawRect(screen, x-shipW/2, y-shipH/2, shipW, shipH, clr)

	if shield := f.session.Shield.Shield(); shield >= 1 {
		ebitenutil.DrawRect(screen, x-shipW/2-2, y-shipH/2-3, shipW+4, 1, colorShield)
	}
}

func (f *Flight) drawDialogue(screen *ebiten.Image) {
	line, ok := f.session.Narrative.Line()
	if !ok {
		return
	}
	boxY := float64(f.screenH) * 0.6
	ebitenutil.DrawRect(screen, 8, boxY, float64(f.screenW-16), 28, colorDialogueBG)
	text.Draw(screen, line, basicfont.Face7x13, 14, int(boxY)+18, colorText)
}

func (f *Flight) drawUI(screen *ebiten.Image) {
	s := f.session

	// Fuel bar
	barX := 10.0
	barY := float64(f.screenH - 20)
	barW := 100.0
	barH := 6.0
	ebitenutil.DrawRect(screen, barX, barY, barW, barH, colorMeterBG)
	ebitenutil.DrawRect(screen, barX, barY, barW*math.Max(0, s.Meter.Fraction()), barH, colorMeterFG)

	// Tier lamps under the bar
	n := s.Meter.TierCount()
	if n > 0 {
		lampW := barW / float64(n)
		for i := 0; i < n; i++ {
			clr := colorLampOff
			if s.Meter.Tier(i) {
				clr = colorLampOn
			}
			ebitenutil.DrawRect(screen, barX+float64(i)*lampW+1, barY+barH+2, lampW-2, 3, clr)
		}
	}

	status := fmt.Sprintf("%s  HP %d/%d  Lives %d  Fuel %.0f",
		s.Machine.Readout(),
		s.Player.HitpointsCurrent, s.Player.HitpointsBase,
		s.Player.LivesCurrent,
		s.Fuel.Current())
	ebitenutil.DebugPrintAt(screen, status, 4, 2)

	if played, total, ok := f.ReplayProgress(); ok {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("REPLAY %d/%d", played, total), 4, 16)
	}

	if s.Machine.State() == state.StateIntro {
		text.Draw(screen, "STARFALL", basicfont.Face7x13, f.screenW/2-28, f.screenH/2, colorText)
	}
}

// OnEnter is called when entering this scene
func (f *Flight) OnEnter() {
	f.logger.Debug("flight started", zap.Stringer("state", f.session.Machine.State()))
}

// OnExit is called when leaving this scene. A recording already saved at
// the end of the flight is not written again.
func (f *Flight) OnExit() {
	if !f.saved {
		f.saveRecording()
	}
}

// makeStars scatters a fixed starfield. The layout is deterministic so
// replays render identically.
func makeStars(w, h int) []f64.Vec3 {
	stars := make([]f64.Vec3, starCount)
	seed := uint32(1)
	next := func() float64 {
		seed = seed*1103515245 + 12345
		return float64(seed&0x7fffffff) / float64(0x7fffffff)
	}
	for i := range stars {
		stars[i] = f64.Vec3{next() * float64(w), next() * float64(h), 10 + next()*40}
	}
	return stars
}
