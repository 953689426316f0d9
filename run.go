package scrolly

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title string
	// Width and Height are the window size. Zero uses 960x640.
	Width, Height int
	// Debug enables per-frame timing logs.
	Debug bool
	// ShowHUD toggles the FPS/percent overlay.
	ShowHUD bool
}

// game adapts an Experience to ebiten.Game.
type game struct {
	e      *Experience
	width  int
	height int
}

func (g *game) Update() error {
	g.e.Update()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.e.Draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	// Layout is fixed at the startup size; resizing does not re-layout.
	return g.width, g.height
}

// Run opens a window and drives e until the window closes. The experience is
// disposed on return.
func Run(e *Experience, cfg RunConfig) error {
	if cfg.Width == 0 {
		cfg.Width = 960
	}
	if cfg.Height == 0 {
		cfg.Height = 640
	}
	e.SetDebugMode(cfg.Debug)
	e.HUD().Visible = cfg.ShowHUD

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)

	defer e.Dispose()
	if err := ebiten.RunGame(&game{e: e, width: cfg.Width, height: cfg.Height}); err != nil {
		return fmt.Errorf("run %q: %w", cfg.Title, err)
	}
	return nil
}
