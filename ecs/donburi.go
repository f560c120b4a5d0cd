package ecs

import (
	"github.com/phanxgames/trolleyyard"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// ToggleEventType is the Donburi event type for accepted toggles.
// Subscribe to this in your ECS systems to react to drawers, bays, and doors.
var ToggleEventType = events.NewEventType[trolleyyard.ToggleEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Toggles are published to ToggleEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) trolleyyard.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitToggle(event trolleyyard.ToggleEvent) {
	ToggleEventType.Publish(s.world, event)
}
