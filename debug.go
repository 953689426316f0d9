package scrolly

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-frame timing. Only populated when the Experience is in
// debug mode.
type debugStats struct {
	inputTime time.Duration
	tickTime  time.Duration
	percent   float64
	velocity  float64
	scene     string
}

// debugLog prints timing and state to stderr.
func (e *Experience) debugLog(stats debugStats) {
	if !e.debug {
		return
	}
	total := stats.inputTime + stats.tickTime
	_, _ = fmt.Fprintf(os.Stderr,
		"[scrolly] input: %v | tick: %v | total: %v\n",
		stats.inputTime, stats.tickTime, total)
	_, _ = fmt.Fprintf(os.Stderr,
		"[scrolly] percent: %.2f | velocity: %.2f | scene: %q\n",
		stats.percent, stats.velocity, stats.scene)
}

// debugCheckScenes warns on stderr about overlapping or uncovered scene
// ranges. Such layouts are valid: overlaps resolve to the first match and gaps
// leave the previous scene active.
func debugCheckScenes(scenes []*Scene) {
	for i := 0; i < len(scenes); i++ {
		for j := i + 1; j < len(scenes); j++ {
			a, b := scenes[i].Range, scenes[j].Range
			if a.Start < b.End && b.Start < a.End {
				_, _ = fmt.Fprintf(os.Stderr, "[scrolly] warning: scenes %q and %q overlap; %q wins\n",
					scenes[i].Name, scenes[j].Name, scenes[i].Name)
			}
		}
	}
	for _, g := range sceneGaps(scenes) {
		_, _ = fmt.Fprintf(os.Stderr, "[scrolly] warning: no scene covers %.2f-%.2f%%\n", g.Start, g.End)
	}
}

// sceneGaps returns the sub-ranges of [0, 100] covered by no scene.
func sceneGaps(scenes []*Scene) []SceneRange {
	var gaps []SceneRange
	pos := 0.0
	for pos < 100 {
		next := 100.0
		covered := false
		for _, s := range scenes {
			if s.Range.Start <= pos && s.Range.End > pos {
				covered = true
				pos = s.Range.End
				break
			}
			if s.Range.Start > pos && s.Range.Start < next {
				next = s.Range.Start
			}
		}
		if covered {
			continue
		}
		gaps = append(gaps, SceneRange{Start: pos, End: next})
		pos = next
	}
	return gaps
}
