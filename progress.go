package scrolly

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ProgressBar is a horizontal bar revealed from the left in proportion to the
// scroll percentage. Clicking it seeks the scroller.
type ProgressBar struct {
	// Bounds is the bar's screen rectangle. Clicks inside it seek.
	Bounds Rect
	// Track is the color of the unfilled bar.
	Track Color
	// Fill is the color of the revealed portion.
	Fill Color

	percent float64
}

// NewProgressBar creates a bar with default colors.
func NewProgressBar(bounds Rect) *ProgressBar {
	return &ProgressBar{
		Bounds: bounds,
		Track:  Color{1, 1, 1, 0.15},
		Fill:   Color{1, 1, 1, 0.9},
	}
}

// SetPercent records the percentage to display. Values outside [0, 100] are
// kept for ClipPath but clipped when drawing.
func (p *ProgressBar) SetPercent(pct float64) {
	p.percent = pct
}

// Percent returns the last displayed percentage.
func (p *ProgressBar) Percent() float64 {
	return p.percent
}

// ClipPath returns the clip path for the current percentage.
func (p *ProgressBar) ClipPath() string {
	return ProgressClipPath(p.percent)
}

// FillWidth returns the revealed width in pixels, clipped to the bar.
func (p *ProgressBar) FillWidth() float64 {
	return p.Bounds.Width * clamp01(p.percent/100)
}

// ClickFraction converts a screen x inside the bar to a fraction in [0, 1].
// ok is false when (x, y) lies outside the bar.
func (p *ProgressBar) ClickFraction(x, y float64) (fraction float64, ok bool) {
	if !p.Bounds.Contains(x, y) || p.Bounds.Width <= 0 {
		return 0, false
	}
	return (x - p.Bounds.X) / p.Bounds.Width, true
}

// Draw renders the track and the revealed fill.
func (p *ProgressBar) Draw(screen *ebiten.Image) {
	b := p.Bounds
	vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.Width), float32(b.Height), p.Track.toRGBA(), false)
	if w := p.FillWidth(); w > 0 {
		vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(w), float32(b.Height), p.Fill.toRGBA(), false)
	}
}
