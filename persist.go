package scrolly

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	resumeProperty = "resume"
	// defaultSaveInterval is how many frames pass between automatic saves of
	// a changed position.
	defaultSaveInterval = 120
)

// resumeState is the persisted form of a reading position.
type resumeState struct {
	FakeScroll float64 `yaml:"fakeScroll"`
}

// ResumeStore persists the reader's scroll position per story so a reopened
// story continues where it was left. A nil gdata manager puts the store in
// degraded mode: positions are tracked in memory only.
type ResumeStore struct {
	manager *gdata.Manager
	story   string

	// SaveInterval is the number of observed frames between automatic saves.
	SaveInterval int

	position float64
	saved    float64
	frames   int
}

// OpenResumeStore opens platform save storage for appName and returns a store
// keyed by story.
func OpenResumeStore(appName, story string) (*ResumeStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open resume storage: %w", err)
	}
	return NewResumeStore(m, story), nil
}

// NewResumeStore creates a store over an existing gdata manager. manager may
// be nil.
func NewResumeStore(manager *gdata.Manager, story string) *ResumeStore {
	return &ResumeStore{
		manager:      manager,
		story:        story,
		SaveInterval: defaultSaveInterval,
	}
}

// Restore returns the saved position. ok is false when nothing is saved or
// the saved data cannot be read; read failures are logged.
func (r *ResumeStore) Restore() (pos float64, ok bool) {
	if r.manager == nil {
		return 0, false
	}
	if !r.manager.ObjectPropExists(r.story, resumeProperty) {
		return 0, false
	}
	data, err := r.manager.LoadObjectProp(r.story, resumeProperty)
	if err != nil {
		log.Printf("[scrolly] Warning: failed to load resume position: %v", err)
		return 0, false
	}
	var st resumeState
	if err := yaml.Unmarshal(data, &st); err != nil {
		log.Printf("[scrolly] Warning: failed to parse resume position: %v", err)
		return 0, false
	}
	r.position = st.FakeScroll
	r.saved = st.FakeScroll
	return st.FakeScroll, true
}

// Position returns the last observed position.
func (r *ResumeStore) Position() float64 {
	return r.position
}

// Observe records a frame's position and saves it every SaveInterval frames
// if it changed. Save failures are logged, never returned.
func (r *ResumeStore) Observe(f ScrollFrame) {
	r.position = f.FakeScroll
	r.frames++
	if r.frames < r.SaveInterval {
		return
	}
	r.frames = 0
	if err := r.Flush(); err != nil {
		log.Printf("[scrolly] Warning: %v", err)
	}
}

// Flush saves the current position if it differs from the last saved one.
func (r *ResumeStore) Flush() error {
	if r.manager == nil || r.position == r.saved {
		return nil
	}
	data, err := yaml.Marshal(resumeState{FakeScroll: r.position})
	if err != nil {
		return fmt.Errorf("failed to marshal resume position: %w", err)
	}
	if err := r.manager.SaveObjectProp(r.story, resumeProperty, data); err != nil {
		return fmt.Errorf("failed to save resume position: %w", err)
	}
	r.saved = r.position
	return nil
}
