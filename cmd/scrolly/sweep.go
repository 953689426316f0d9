package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/phanxgames/scrolly"
)

const sweepDt = 1.0 / 60

var errBadStep = errors.New("step must be positive")

// sweep seeks through [from, to] in step increments, advancing one frame at
// each stop, and reports the resulting poses and scene events.
func sweep(w io.Writer, story *scrolly.Story, from, to, step float64) error {
	if step <= 0 || math.IsNaN(step) {
		return fmt.Errorf("sweep: %w", errBadStep)
	}

	scroller := scrolly.NewScroller(story.Scroller)
	camera := scrolly.NewCamera(scrolly.Rect{Width: story.Width, Height: story.Height})
	if ls := story.Camera.LookSpring; ls != nil {
		camera.SetLookSpring(ls.Frequency, ls.Damping)
	}
	director := scrolly.NewDirector(scrolly.DirectorConfig{
		Scroller:   scroller,
		Trace:      story.Trace,
		CameraPath: story.CameraPath,
		Character:  story.Character,
		Camera:     camera,
		Scenes:     story.Scenes,
	})

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	var pending []scrolly.SceneEvent
	director.OnSceneEvent(func(ev scrolly.SceneEvent) {
		pending = append(pending, ev)
	})

	ticker := scrolly.NewTicker(nil, scroller, director)
	fmt.Fprintln(tw, "percent\tcharacter\tyaw\tcamera\tscene\tevents")

	// Reverse ranges step backwards.
	dir := 1.0
	if to < from {
		dir = -1
	}
	for i := 0; ; i++ {
		pct := from + dir*float64(i)*step
		if dir*(pct-to) > 1e-9 {
			break
		}
		scroller.Seek(pct / 100 * scroller.MaxHeight())
		pending = pending[:0]
		ticker.Advance(sweepDt)

		scene := "-"
		if s := director.ActiveScene(); s != nil {
			scene = s.Name
		}
		ch := story.Character
		p := ch.Position
		c := camera.Position
		fmt.Fprintf(tw, "%.2f\t(%.3f, %.3f, %.3f)\t%.3f\t(%.3f, %.3f, %.3f)\t%s\t%s\n",
			director.Percent(), p.X(), p.Y(), p.Z(), ch.Yaw(), c.X(), c.Y(), c.Z(), scene, formatEvents(pending))
	}
	return tw.Flush()
}

func formatEvents(evs []scrolly.SceneEvent) string {
	parts := make([]string, len(evs))
	for i, ev := range evs {
		parts[i] = ev.Kind.String() + ":" + ev.Name
	}
	return strings.Join(parts, " ")
}

// info prints a summary of the story's geometry and scenes.
func info(w io.Writer, story *scrolly.Story) error {
	fmt.Fprintf(w, "Title:       %s\n", story.Title)
	fmt.Fprintf(w, "Viewport:    %gx%g\n", story.Width, story.Height)
	fmt.Fprintf(w, "Max height:  %g\n", story.Scroller.MaxHeight)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Trace:       %d control points, %d samples, length %.3f\n",
		len(story.TraceCurve.ControlPoints()), story.Trace.VertexCount(), story.TraceCurve.Length())
	fmt.Fprintf(w, "Camera path: %d control points, length %.3f\n",
		len(story.CameraPath.ControlPoints()), story.CameraPath.Length())
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "scene\tstart\tend\tcaption")
	for _, s := range story.Scenes {
		fmt.Fprintf(tw, "%s\t%g\t%g\t%s\n", s.Name, s.Range.Start, s.Range.End, s.Caption)
	}
	return tw.Flush()
}
