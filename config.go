package scrolly

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

// StoryConfig is the YAML form of a story: viewport, scroller tuning, the
// template objects the trace and camera path are built from, the character,
// and the scenes.
//
// Example:
//
//	title: Morning walk
//	viewport: {width: 960, height: 640}
//	scroller: {friction: 0.95, smoothing: 0.06, targetScrollSmoothing: 0.1}
//	trace:
//	  points: [[0, 0, 0], [4, 0, 2], [8, 0, 0]]
//	cameraPath:
//	  reverse: true
//	  points: [[10, 6, 10], [0, 6, 12], [-10, 6, 10]]
//	scenes:
//	  - {name: intro, start: 0, end: 10, caption: "It begins."}
type StoryConfig struct {
	Title      string         `yaml:"title"`
	Viewport   ViewportConfig `yaml:"viewport"`
	Scroller   ScrollerYAML   `yaml:"scroller"`
	Trace      ObjectConfig   `yaml:"trace"`
	CameraPath ObjectConfig   `yaml:"cameraPath"`
	Character  ObjectConfig   `yaml:"character"`
	Camera     CameraConfig   `yaml:"camera"`
	Scenes     []SceneConfig  `yaml:"scenes"`
}

// ViewportConfig is the screen size in pixels.
type ViewportConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ScrollerYAML holds optional scroller overrides. Zero fields keep defaults.
type ScrollerYAML struct {
	Friction              float64 `yaml:"friction"`
	Smoothing             float64 `yaml:"smoothing"`
	TargetScrollSmoothing float64 `yaml:"targetScrollSmoothing"`
	// Clamp enables ClampScroll.
	Clamp bool `yaml:"clamp"`
}

// TransformConfig is a position/rotation/scale triple. Rotation is Euler XYZ
// in radians; a missing scale means unit scale.
type TransformConfig struct {
	Position [3]float64  `yaml:"position"`
	Rotation [3]float64  `yaml:"rotation"`
	Scale    *[3]float64 `yaml:"scale"`
}

// ObjectConfig describes a template object. Points and Indices form its
// geometry; Parent, when set, is an enclosing transform.
type ObjectConfig struct {
	Name            string `yaml:"name"`
	TransformConfig `yaml:",inline"`
	Points          [][3]float64     `yaml:"points"`
	Indices         []uint32         `yaml:"indices"`
	Parent          *TransformConfig `yaml:"parent"`
	Reverse         bool             `yaml:"reverse"`
	Segments        int              `yaml:"segments"`
}

// CameraConfig holds camera options.
type CameraConfig struct {
	FOV        float64           `yaml:"fov"`
	Near       float64           `yaml:"near"`
	Far        float64           `yaml:"far"`
	LookSpring *LookSpringConfig `yaml:"lookSpring"`
}

// LookSpringConfig enables spring smoothing of the camera's look target.
type LookSpringConfig struct {
	Frequency float64 `yaml:"frequency"`
	Damping   float64 `yaml:"damping"`
}

// SceneConfig is one scene entry.
type SceneConfig struct {
	Name    string  `yaml:"name"`
	Start   float64 `yaml:"start"`
	End     float64 `yaml:"end"`
	Caption string  `yaml:"caption"`
}

// LoadStory reads and validates a YAML story file.
func LoadStory(path string) (*StoryConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read story: %w", err)
	}
	return ParseStory(data)
}

// ParseStory decodes and validates YAML story data.
func ParseStory(data []byte) (*StoryConfig, error) {
	var cfg StoryConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse story: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid story: %w", err)
	}
	return &cfg, nil
}

// Validate checks value ranges. Overlapping scenes and gaps between scenes
// are allowed: overlaps resolve to the first listed scene and gaps keep the
// previous scene active.
func (c *StoryConfig) Validate() error {
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("viewport %vx%v must be positive", c.Viewport.Width, c.Viewport.Height)
	}
	if err := c.scrollerConfig().Validate(); err != nil {
		return fmt.Errorf("scroller: %w", err)
	}
	if err := c.Trace.validate("trace"); err != nil {
		return err
	}
	if err := c.CameraPath.validate("cameraPath"); err != nil {
		return err
	}
	for i, s := range c.Scenes {
		if s.Start > s.End {
			return fmt.Errorf("scene %d (%q): start %v > end %v", i, s.Name, s.Start, s.End)
		}
		if s.Start < 0 || s.End > 100 {
			return fmt.Errorf("scene %d (%q): range [%v, %v] outside [0, 100]", i, s.Name, s.Start, s.End)
		}
	}
	if ls := c.Camera.LookSpring; ls != nil && (ls.Frequency <= 0 || ls.Damping < 0) {
		return fmt.Errorf("camera look spring: frequency %v and damping %v must be positive", ls.Frequency, ls.Damping)
	}
	return nil
}

func (o *ObjectConfig) validate(field string) error {
	n := len(o.Points)
	if len(o.Indices) > 0 {
		for i, idx := range o.Indices {
			if int(idx) >= n {
				return fmt.Errorf("%s: index %d (%d) out of range for %d points", field, i, idx, n)
			}
		}
		n = len(o.Indices)
	}
	if n < 2 {
		return fmt.Errorf("%s: %w", field, ErrEmptyGeometry)
	}
	if o.Segments < 0 || o.Segments > maxTraceSegments {
		return fmt.Errorf("%s: segments %d outside [0, %d]", field, o.Segments, maxTraceSegments)
	}
	return nil
}

func (c *StoryConfig) scrollerConfig() ScrollerConfig {
	sc := DefaultScrollerConfig(c.Viewport.Height)
	if c.Scroller.Friction != 0 {
		sc.Friction = c.Scroller.Friction
	}
	if c.Scroller.Smoothing != 0 {
		sc.Smoothing = c.Scroller.Smoothing
	}
	if c.Scroller.TargetScrollSmoothing != 0 {
		sc.TargetScrollSmoothing = c.Scroller.TargetScrollSmoothing
	}
	if c.Scroller.Clamp {
		sc.Clamp = ClampScroll
	}
	return sc
}

func (t TransformConfig) apply(o *Object) {
	o.Position = mgl64.Vec3(t.Position)
	o.Rotation = mgl64.Vec3(t.Rotation)
	if t.Scale != nil {
		o.Scale = mgl64.Vec3(*t.Scale)
	}
}

// object builds the template object, wrapping it in a parent when one is
// configured.
func (o *ObjectConfig) object(defaultName string) *Object {
	name := o.Name
	if name == "" {
		name = defaultName
	}
	geom := &Geometry{Indices: append([]uint32(nil), o.Indices...)}
	for _, p := range o.Points {
		geom.Positions = append(geom.Positions, mgl64.Vec3(p))
	}
	obj := NewMeshObject(name, geom)
	o.TransformConfig.apply(obj)
	if o.Parent != nil {
		parent := NewObject(name + "-parent")
		o.Parent.apply(parent)
		parent.AddChild(obj)
	}
	return obj
}

// Story is a built story, ready to drive an Experience.
type Story struct {
	Title  string
	Width  float64
	Height float64

	Scroller   ScrollerConfig
	TraceCurve *Curve
	Trace      *TraceLine
	CameraPath *Curve
	Character  *Object
	Scenes     []*Scene
	Camera     CameraConfig
}

// Build derives curves, the trace line, the character, and scenes.
func (c *StoryConfig) Build() (*Story, error) {
	traceCurve, trace, err := BuildCurveFromTraceWith(c.Trace.object("trace"), BuildOptions{
		Reverse:  c.Trace.Reverse,
		Segments: c.Trace.Segments,
	})
	if err != nil {
		return nil, fmt.Errorf("build trace: %w", err)
	}
	// The camera path's own line is not rendered.
	cameraPath, _, err := BuildCurveFromTraceWith(c.CameraPath.object("cameraPath"), BuildOptions{
		Reverse:  c.CameraPath.Reverse,
		Segments: c.CameraPath.Segments,
	})
	if err != nil {
		return nil, fmt.Errorf("build camera path: %w", err)
	}

	character := NewObject(c.Character.Name)
	if character.Name == "" {
		character.Name = "character"
	}
	c.Character.TransformConfig.apply(character)

	scenes := make([]*Scene, len(c.Scenes))
	for i, sc := range c.Scenes {
		s := NewScene(sc.Name, sc.Start, sc.End)
		s.Caption = sc.Caption
		scenes[i] = s
	}

	return &Story{
		Title:      c.Title,
		Width:      c.Viewport.Width,
		Height:     c.Viewport.Height,
		Scroller:   c.scrollerConfig(),
		TraceCurve: traceCurve,
		Trace:      trace,
		CameraPath: cameraPath,
		Character:  character,
		Scenes:     scenes,
		Camera:     c.Camera,
	}, nil
}

// Scene returns the scene with the given name, or nil.
func (s *Story) Scene(name string) *Scene {
	for _, sc := range s.Scenes {
		if sc.Name == name {
			return sc
		}
	}
	return nil
}

// NewExperience creates an Experience for the story and applies its camera
// options. clock may be nil.
func (s *Story) NewExperience(clock Clock) *Experience {
	e := NewExperience(ExperienceConfig{
		Width:      s.Width,
		Height:     s.Height,
		Scroller:   s.Scroller,
		Trace:      s.Trace,
		CameraPath: s.CameraPath,
		Character:  s.Character,
		Scenes:     s.Scenes,
		Clock:      clock,
	})
	cam := e.Camera()
	if s.Camera.FOV > 0 {
		cam.FOV = s.Camera.FOV
	}
	if s.Camera.Near > 0 {
		cam.Near = s.Camera.Near
	}
	if s.Camera.Far > 0 {
		cam.Far = s.Camera.Far
	}
	if ls := s.Camera.LookSpring; ls != nil {
		cam.SetLookSpring(ls.Frequency, ls.Damping)
	}
	cam.MarkDirty()
	return e
}
