package scrolly

import (
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const defaultBarHeight = 6.0

// ExperienceConfig describes everything an Experience drives.
type ExperienceConfig struct {
	// Width and Height are the screen size. Height also fixes the scroller's
	// MaxHeight (Height/2) unless Scroller.MaxHeight is set.
	Width, Height float64

	// Scroller tuning. A zero value uses DefaultScrollerConfig(Height).
	Scroller ScrollerConfig

	Trace      *TraceLine
	CameraPath *Curve
	Character  *Object
	Scenes     []*Scene

	// Clock drives the ticker. Nil uses the wall clock.
	Clock Clock
	// ProgressBar overrides the default bar along the bottom edge.
	ProgressBar *ProgressBar
}

// Experience is the top-level object that owns the scroller, director,
// ticker, input, and presentation for one scroll-driven story.
type Experience struct {
	scroller *Scroller
	director *Director
	ticker   *Ticker
	input    *Input
	bar      *ProgressBar
	captions *CaptionLayer
	renderer *Renderer
	hud      *HUD
	camera   *Camera

	// ClearColor fills the screen before drawing.
	ClearColor Color
	// ScreenshotDir receives captures queued by Screenshot. Empty means
	// "screenshots" under the working directory.
	ScreenshotDir string

	screenshotQueue []string

	debug      bool
	testRunner *TestRunner
	resume     *ResumeStore
	lastFrame  ScrollFrame
}

// NewExperience wires an Experience and starts its ticker.
func NewExperience(cfg ExperienceConfig) *Experience {
	sc := cfg.Scroller
	if sc == (ScrollerConfig{}) {
		sc = DefaultScrollerConfig(cfg.Height)
	}
	scroller := NewScroller(sc)

	viewport := Rect{Width: cfg.Width, Height: cfg.Height}
	camera := NewCamera(viewport)

	director := NewDirector(DirectorConfig{
		Scroller:   scroller,
		Trace:      cfg.Trace,
		CameraPath: cfg.CameraPath,
		Character:  cfg.Character,
		Camera:     camera,
		Scenes:     cfg.Scenes,
	})

	bar := cfg.ProgressBar
	if bar == nil {
		bar = NewProgressBar(Rect{X: 0, Y: cfg.Height - defaultBarHeight, Width: cfg.Width, Height: defaultBarHeight})
	}

	e := &Experience{
		scroller:   scroller,
		director:   director,
		ticker:     NewTicker(cfg.Clock, scroller, director),
		input:      NewInput(scroller, bar),
		bar:        bar,
		captions:   NewCaptionLayer(cfg.Scenes),
		renderer:   NewRenderer(camera, cfg.Trace, cfg.Character),
		camera:     camera,
		ClearColor: Color{0.06, 0.07, 0.1, 1},
	}
	e.hud = NewHUD(e)

	director.OnSceneEvent(e.captions.HandleSceneEvent)
	e.ticker.OnFrame(e.present)
	e.ticker.Start()
	return e
}

// present is the per-frame presentation step, run after the director.
func (e *Experience) present(f ScrollFrame) {
	e.lastFrame = f
	e.bar.SetPercent(f.Percent)
	e.captions.Update(float32(f.Dt))
	e.hud.Update(f.Dt)
	if e.resume != nil {
		e.resume.Observe(f)
	}
}

// Scroller returns the experience's scroller.
func (e *Experience) Scroller() *Scroller { return e.scroller }

// Director returns the experience's director.
func (e *Experience) Director() *Director { return e.director }

// Ticker returns the experience's ticker.
func (e *Experience) Ticker() *Ticker { return e.ticker }

// Input returns the experience's input handler.
func (e *Experience) Input() *Input { return e.input }

// ProgressBar returns the experience's progress bar.
func (e *Experience) ProgressBar() *ProgressBar { return e.bar }

// Captions returns the caption layer.
func (e *Experience) Captions() *CaptionLayer { return e.captions }

// Camera returns the camera the director moves.
func (e *Experience) Camera() *Camera { return e.camera }

// HUD returns the overlay.
func (e *Experience) HUD() *HUD { return e.hud }

// LastFrame returns the most recent scroll frame.
func (e *Experience) LastFrame() ScrollFrame { return e.lastFrame }

// SetDebugMode enables or disables per-frame timing logs on stderr and
// warns once about overlapping or uncovered scene ranges.
func (e *Experience) SetDebugMode(enabled bool) {
	e.debug = enabled
	if enabled {
		debugCheckScenes(e.director.Scenes())
	}
}

// SetTestRunner attaches a scripted input runner. The runner queues input
// before each frame's input processing.
func (e *Experience) SetTestRunner(runner *TestRunner) {
	e.testRunner = runner
}

// SetResumeStore attaches persistence and restores any saved position.
func (e *Experience) SetResumeStore(store *ResumeStore) {
	e.resume = store
	if store == nil {
		return
	}
	if pos, ok := store.Restore(); ok {
		e.scroller.Seek(pos)
	}
}

// Dispose stops the ticker permanently and flushes the resume store.
func (e *Experience) Dispose() {
	e.ticker.Dispose()
	if e.resume != nil {
		if err := e.resume.Flush(); err != nil {
			log.Printf("[scrolly] Warning: %v", err)
		}
	}
}

// Update processes input and advances one frame.
func (e *Experience) Update() {
	var stats debugStats
	var t0 time.Time
	if e.debug {
		t0 = time.Now()
	}

	if e.testRunner != nil {
		e.testRunner.step(e.input, e.Screenshot)
	}
	e.input.Update()

	if e.debug {
		stats.inputTime = time.Since(t0)
		t0 = time.Now()
	}

	e.ticker.Step()

	if e.debug {
		stats.tickTime = time.Since(t0)
		stats.percent = e.lastFrame.Percent
		stats.velocity = e.lastFrame.Velocity
		if s := e.director.ActiveScene(); s != nil {
			stats.scene = s.Name
		}
		e.debugLog(stats)
	}
}

// Draw renders the trace, character, captions, progress bar, and HUD.
func (e *Experience) Draw(screen *ebiten.Image) {
	screen.Fill(e.ClearColor.toRGBA())
	e.renderer.Draw(screen)
	e.renderer.DrawCaptions(screen, e.captions)
	e.bar.Draw(screen)
	e.hud.Draw(screen)
	e.flushScreenshots(screen)
}
