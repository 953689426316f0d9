package scrolly

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// HUD is a small overlay showing FPS, TPS, the scroll percentage, and the
// active scene. The text is refreshed every ~0.5 seconds.
type HUD struct {
	img        *ebiten.Image
	sinceDraw  float64
	lastText   string
	X, Y       float64
	Visible    bool
	experience *Experience
}

// NewHUD creates a HUD for e at the top-left of the screen.
func NewHUD(e *Experience) *HUD {
	return &HUD{X: 4, Y: 4, Visible: true, experience: e}
}

// Text returns the HUD content for the current state.
func (h *HUD) Text() string {
	name := "-"
	if s := h.experience.director.ActiveScene(); s != nil {
		name = s.Name
	}
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f\n%%: %.1f\nscene: %s",
		ebiten.ActualFPS(), ebiten.ActualTPS(), h.experience.scroller.Percent(), name)
}

// Update advances the refresh timer by dt seconds.
func (h *HUD) Update(dt float64) {
	h.sinceDraw += dt
}

// Draw renders the HUD onto screen.
func (h *HUD) Draw(screen *ebiten.Image) {
	if !h.Visible {
		return
	}
	if h.img == nil {
		// 160x64 fits four short lines.
		h.img = ebiten.NewImage(160, 64)
		h.sinceDraw = 1
	}
	if h.sinceDraw >= 0.5 {
		h.sinceDraw = 0
		h.lastText = h.Text()
		h.img.Clear()
		// Semi-transparent background for readability
		h.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(h.img, h.lastText)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(h.X, h.Y)
	screen.DrawImage(h.img, op)
}
