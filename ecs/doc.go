// Package ecs provides ECS adapters for sortable lists.
//
// The primary adapter is [Bridge], which forwards list gesture events
// (dragstart, drag, drop, change, dragend) into a [Donburi] world as typed
// events. Subscribe to [SortEventType] in your ECS systems to receive them.
//
// Listeners run off the game goroutine, so the bridge buffers events and
// publishes them when [Bridge.Flush] is called from the game loop:
//
//	bridge := ecs.NewBridge(world)
//	bridge.Attach(list)
//	// each frame:
//	bridge.Flush()
//	ecs.SortEventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
