// Package ecs provides ECS adapters for trolleyyard's coordinator events.
//
// The primary adapter is [NewDonburiSink], which bridges accepted toggles
// (drawers, trolley bays, canister doors) into a [Donburi] world as typed
// events. Subscribe to [ToggleEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	coordinator.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
