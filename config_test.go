package scrolly

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

var minimalSections = map[string]string{
	"viewport":   "viewport: {width: 800, height: 600}",
	"trace":      "trace: {points: [[0, 0, 0], [1, 0, 0]]}",
	"cameraPath": "cameraPath: {points: [[0, 5, 5], [1, 5, 5]]}",
}

// storyYAML returns a minimal valid story with the given top-level sections
// replaced or added.
func storyYAML(overrides map[string]string) []byte {
	var b strings.Builder
	for _, key := range []string{"viewport", "trace", "cameraPath"} {
		if _, ok := overrides[key]; !ok {
			b.WriteString(minimalSections[key] + "\n")
		}
	}
	for _, v := range overrides {
		b.WriteString(v + "\n")
	}
	return []byte(b.String())
}

func TestLoadStory(t *testing.T) {
	cfg, err := LoadStory("testdata/story.yaml")
	if err != nil {
		t.Fatalf("LoadStory: %v", err)
	}
	if cfg.Title != "Morning walk" {
		t.Errorf("Title = %q", cfg.Title)
	}
	if len(cfg.Scenes) != 3 || cfg.Scenes[1].Name != "meadow" || cfg.Scenes[1].End != 30 {
		t.Errorf("scenes = %+v", cfg.Scenes)
	}
	if !cfg.CameraPath.Reverse || cfg.Trace.Segments != 200 {
		t.Errorf("trace/camera options not decoded: %+v %+v", cfg.Trace, cfg.CameraPath)
	}

	story, err := cfg.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if story.Scroller.MaxHeight != 320 {
		t.Errorf("MaxHeight = %v, want 320", story.Scroller.MaxHeight)
	}
	if story.Trace.VertexCount() != 201 {
		t.Errorf("trace vertices = %d, want 201", story.Trace.VertexCount())
	}
	// The parent transform shifts the trace by -2 on Z.
	if cp := story.TraceCurve.ControlPoints()[0]; cp != (mgl64.Vec3{0, 0, -2}) {
		t.Errorf("trace start = %v, want (0,0,-2)", cp)
	}
	if cp := story.CameraPath.ControlPoints()[0]; cp != (mgl64.Vec3{-2, 8, 12}) {
		t.Errorf("camera path start = %v, want reversed (-2,8,12)", cp)
	}
	if story.Character.Name != "walker" {
		t.Errorf("character = %q", story.Character.Name)
	}
	if s := story.Scene("ridge"); s == nil || s.Range != (SceneRange{30, 100}) || s.Caption == "" {
		t.Errorf("ridge scene = %+v", s)
	}
	if story.Scene("missing") != nil {
		t.Error("unknown scene should be nil")
	}
}

func TestLoadStoryMissingFile(t *testing.T) {
	if _, err := LoadStory("testdata/does-not-exist.yaml"); err == nil {
		t.Error("expected error")
	}
}

func TestParseStoryDefaults(t *testing.T) {
	cfg, err := ParseStory(storyYAML(nil))
	if err != nil {
		t.Fatalf("ParseStory: %v", err)
	}
	story, err := cfg.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := DefaultScrollerConfig(600)
	if story.Scroller != want {
		t.Errorf("scroller = %+v, want %+v", story.Scroller, want)
	}
	if story.Trace.VertexCount() != DefaultTraceSegments+1 {
		t.Errorf("trace vertices = %d", story.Trace.VertexCount())
	}
	if story.Character.Name != "character" {
		t.Errorf("character name = %q", story.Character.Name)
	}
}

func TestParseStoryIndexed(t *testing.T) {
	cfg, err := ParseStory(storyYAML(map[string]string{"scroller": "scroller: {clamp: true}"}))
	if err != nil {
		t.Fatal(err)
	}
	cfg.Trace.Points = [][3]float64{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}}
	cfg.Trace.Indices = []uint32{2, 1, 0}
	story, err := cfg.Build()
	if err != nil {
		t.Fatal(err)
	}
	if cp := story.TraceCurve.ControlPoints(); cp[0] != (mgl64.Vec3{2, 0, 0}) {
		t.Errorf("indexed trace start = %v", cp[0])
	}
	if story.Scroller.Clamp != ClampScroll {
		t.Error("clamp not applied")
	}
}

func TestStoryValidateErrors(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		section string
		wantErr string
	}{
		{"viewport", "viewport", "viewport: {width: 0, height: 600}", "viewport"},
		{"friction", "scroller", "scroller: {friction: 1.5}", "friction"},
		{"scene order", "scenes", "scenes: [{name: a, start: 20, end: 10}]", "start"},
		{"scene range", "scenes", "scenes: [{name: a, start: 0, end: 120}]", "outside"},
		{"trace points", "trace", "trace: {points: [[0, 0, 0]]}", "trace"},
		{"trace index", "trace", "trace: {points: [[0, 0, 0], [1, 0, 0]], indices: [0, 5]}", "out of range"},
		{"segments", "cameraPath", "cameraPath: {points: [[0, 0, 0], [1, 0, 0]], segments: 40000}", "segments"},
		{"look spring", "camera", "camera: {lookSpring: {frequency: 0, damping: 1}}", "look spring"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStory(storyYAML(map[string]string{tt.key: tt.section}))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestStoryValidateEmptyGeometry(t *testing.T) {
	_, err := ParseStory(storyYAML(map[string]string{"trace": "trace: {points: []}"}))
	if !errors.Is(err, ErrEmptyGeometry) {
		t.Errorf("err = %v, want ErrEmptyGeometry", err)
	}
}

func TestParseStoryBadYAML(t *testing.T) {
	if _, err := ParseStory([]byte("viewport: [")); err == nil {
		t.Error("expected parse error")
	}
}

func TestStoryNewExperienceAppliesCamera(t *testing.T) {
	cfg, err := LoadStory("testdata/story.yaml")
	if err != nil {
		t.Fatal(err)
	}
	story, err := cfg.Build()
	if err != nil {
		t.Fatal(err)
	}
	exp := story.NewExperience(NewManualClock(time.Unix(0, 0)))
	defer exp.Dispose()

	cam := exp.Camera()
	if cam.FOV != 50 {
		t.Errorf("FOV = %v, want 50", cam.FOV)
	}
	if cam.Near != 0.1 {
		t.Errorf("Near = %v, want default 0.1", cam.Near)
	}
	if !cam.LookSpringEnabled() {
		t.Error("look spring should be enabled")
	}
	if exp.Scroller().MaxHeight() != 320 {
		t.Errorf("MaxHeight = %v", exp.Scroller().MaxHeight())
	}
}
