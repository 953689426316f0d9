// Package ecs provides ECS adapters for scrolly's scene lifecycle events.
//
// The primary adapter is [NewDonburiStore], which bridges scene enter and exit
// events into a [Donburi] world as typed events. Subscribe to
// [SceneEventType] in your ECS systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	experience.Director().SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
