package scrolly

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Default caption fade timing.
const (
	DefaultCaptionFade = 0.4 // seconds
)

// TweenGroup animates up to 4 float64 fields simultaneously. Call Update(dt)
// each frame; values are written to the fields as the tweens advance.
//
// There is no global animation manager; owners call Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	fields [4]*float64
	Done   bool
}

// Update advances all tweens by dt seconds and writes the values.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone
}

// TweenValue creates a TweenGroup that animates *field to the target value.
func TweenValue(field *float64, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1}
	g.tweens[0] = gween.New(float32(*field), float32(to), duration, fn)
	g.fields[0] = field
	return g
}

// TweenColor animates all four components of *c to the target color.
func TweenColor(c *Color, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 4}
	g.tweens[0] = gween.New(float32(c.R), float32(to.R), duration, fn)
	g.tweens[1] = gween.New(float32(c.G), float32(to.G), duration, fn)
	g.tweens[2] = gween.New(float32(c.B), float32(to.B), duration, fn)
	g.tweens[3] = gween.New(float32(c.A), float32(to.A), duration, fn)
	g.fields[0] = &c.R
	g.fields[1] = &c.G
	g.fields[2] = &c.B
	g.fields[3] = &c.A
	return g
}

// Caption is a line of text tied to a scene, faded in while the scene is
// active.
type Caption struct {
	Scene *Scene
	Text  string
	Alpha float64

	fade *TweenGroup
}

// Visible reports whether the caption has any opacity.
func (c *Caption) Visible() bool {
	return c.Alpha > 0
}

// CaptionLayer fades scene captions in and out in response to scene events.
// Entering a scene fades its caption in and every other caption out, so at
// most one caption is fully visible even though exit callbacks lag.
type CaptionLayer struct {
	captions []*Caption
	byScene  map[*Scene]*Caption

	// Duration is the fade time in seconds.
	Duration float32
	// Ease is the easing function for fades.
	Ease ease.TweenFunc
}

// NewCaptionLayer creates a layer with a caption for every scene that has
// caption text.
func NewCaptionLayer(scenes []*Scene) *CaptionLayer {
	l := &CaptionLayer{
		byScene:  make(map[*Scene]*Caption),
		Duration: DefaultCaptionFade,
		Ease:     ease.InOutQuad,
	}
	for _, s := range scenes {
		if s.Caption == "" {
			continue
		}
		c := &Caption{Scene: s, Text: s.Caption}
		l.captions = append(l.captions, c)
		l.byScene[s] = c
	}
	return l
}

// Captions returns the layer's captions. The returned slice MUST NOT be
// mutated.
func (l *CaptionLayer) Captions() []*Caption {
	return l.captions
}

// Caption returns the caption for s, or nil.
func (l *CaptionLayer) Caption(s *Scene) *Caption {
	return l.byScene[s]
}

// HandleSceneEvent starts the fades for a scene transition. Attach it with
// Director.OnSceneEvent.
func (l *CaptionLayer) HandleSceneEvent(ev SceneEvent) {
	switch ev.Kind {
	case SceneEnter:
		for _, c := range l.captions {
			if c.Scene == ev.Scene {
				l.fadeTo(c, 1)
			} else if c.Alpha > 0 || c.fade != nil {
				l.fadeTo(c, 0)
			}
		}
	case SceneExit:
		if c := l.byScene[ev.Scene]; c != nil {
			l.fadeTo(c, 0)
		}
	}
}

func (l *CaptionLayer) fadeTo(c *Caption, alpha float64) {
	c.fade = TweenValue(&c.Alpha, alpha, l.Duration, l.Ease)
}

// Update advances all running fades by dt seconds.
func (l *CaptionLayer) Update(dt float32) {
	for _, c := range l.captions {
		if c.fade == nil {
			continue
		}
		c.fade.Update(dt)
		if c.fade.Done {
			c.fade = nil
		}
	}
}
