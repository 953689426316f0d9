// Package ecs provides ECS adapters for scrolly.
package ecs

import (
	"github.com/phanxgames/scrolly"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SceneEventType is the Donburi event type for scrolly scene events.
// Subscribe to this in your ECS systems to receive enter and exit events.
var SceneEventType = events.NewEventType[scrolly.SceneEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Scene events are published to SceneEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) scrolly.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event scrolly.SceneEvent) {
	SceneEventType.Publish(s.world, event)
}
