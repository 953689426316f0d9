// Package scrolly is a scroll-driven 3D storytelling runtime for [Ebitengine].
//
// Wheel, drag, and progress bar input drive a synthetic scroll percentage
// that is independent of any native scrolling. Each frame the percentage
// reveals a ground trace, walks a character along it, flies the camera along
// a separate path, and fires enter/exit callbacks on narrative scenes bound
// to percentage ranges.
//
// # Quick start
//
// Load a YAML story and open a window:
//
//	cfg, err := scrolly.LoadStory("story.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	story, err := cfg.Build()
//	if err != nil {
//		log.Fatal(err)
//	}
//	exp := story.NewExperience(nil)
//	story.Scene("intro").OnEnter = func() { log.Print("intro") }
//	scrolly.Run(exp, scrolly.RunConfig{Title: story.Title})
//
// # Headless use
//
// The physics and director core never touches the GPU. Build a [Scroller] and
// a [Director], then step them through a [Ticker] with a [ManualClock] or with
// explicit [Ticker.Advance] calls:
//
//	sc := scrolly.NewScroller(scrolly.DefaultScrollerConfig(1000))
//	d := scrolly.NewDirector(scrolly.DirectorConfig{Scroller: sc, Scenes: scenes})
//	t := scrolly.NewTicker(nil, sc, d)
//	sc.OnWheel(120)
//	t.Advance(1.0 / 60)
//
// # Scene timing
//
// Scene exit callbacks fire one transition late: when the matched scene
// changes, the exit callback runs for the scene tracked before the current
// one, then the new scene's enter callback runs. Frames whose percentage
// matches no scene keep the current scene.
//
// [Ebitengine]: https://ebitengine.org
package scrolly
