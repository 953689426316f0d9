package ecs

import (
	"testing"

	"github.com/phanxgames/scrolly"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)
	if store == nil {
		t.Fatal("NewDonburiStore returned nil")
	}
}

func TestDonburiStore_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []scrolly.SceneEvent
	SceneEventType.Subscribe(world, func(w donburi.World, e scrolly.SceneEvent) {
		received = append(received, e)
	})

	store.EmitEvent(scrolly.SceneEvent{
		Kind:    scrolly.SceneEnter,
		Name:    "intro",
		Range:   scrolly.SceneRange{Start: 0, End: 10},
		Percent: 4,
	})
	store.EmitEvent(scrolly.SceneEvent{Kind: scrolly.SceneExit, Name: "intro"})

	// Events are queued until processed.
	SceneEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if e := received[0]; e.Kind != scrolly.SceneEnter || e.Name != "intro" || e.Percent != 4 {
		t.Errorf("event 0: %+v", e)
	}
	if e := received[1]; e.Kind != scrolly.SceneExit {
		t.Errorf("event 1: %+v", e)
	}
}

func TestDonburiStore_ImplementsEntityStore(t *testing.T) {
	world := donburi.NewWorld()
	var store scrolly.EntityStore = NewDonburiStore(world)
	_ = store // compile-time interface check
}

func TestDonburiStore_FromDirector(t *testing.T) {
	world := donburi.NewWorld()

	sc := scrolly.NewScroller(scrolly.DefaultScrollerConfig(1000))
	d := scrolly.NewDirector(scrolly.DirectorConfig{
		Scroller: sc,
		Scenes: []*scrolly.Scene{
			scrolly.NewScene("a", 0, 50),
			scrolly.NewScene("b", 50, 100),
		},
	})
	d.SetEntityStore(NewDonburiStore(world))

	var names []string
	SceneEventType.Subscribe(world, func(w donburi.World, e scrolly.SceneEvent) {
		names = append(names, e.Kind.String()+":"+e.Name)
	})

	d.Tick(1.0 / 60)
	sc.Seek(400) // 80%
	d.Tick(1.0 / 60)
	events.ProcessAllEvents(world)

	want := []string{"enter:a", "enter:b"}
	if len(names) != len(want) {
		t.Fatalf("events = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("event %d = %q, want %q", i, names[i], want[i])
		}
	}
}
