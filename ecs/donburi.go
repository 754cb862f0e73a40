package ecs

import (
	"sync"

	"github.com/phanxgames/sortable"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SortEventType is the Donburi event type for sortable list events.
var SortEventType = events.NewEventType[sortable.Event]()

// Bridge is a sortable.Listener that buffers events until Flush publishes
// them to its world.
type Bridge struct {
	world donburi.World

	mu  sync.Mutex
	buf []sortable.Event
}

// NewBridge creates a Bridge publishing into world.
func NewBridge(world donburi.World) *Bridge {
	return &Bridge{world: world}
}

// HandleSortEvent implements sortable.Listener. Safe for concurrent use.
func (b *Bridge) HandleSortEvent(e sortable.Event) error {
	b.mu.Lock()
	b.buf = append(b.buf, e)
	b.mu.Unlock()
	return nil
}

// Attach registers the bridge on list for the given phases, or for every
// phase when none are given.
func (b *Bridge) Attach(list *sortable.List, phases ...sortable.Phase) {
	if len(phases) == 0 {
		phases = []sortable.Phase{
			sortable.PhaseDragStart,
			sortable.PhaseDrag,
			sortable.PhaseDragEnd,
			sortable.PhaseDrop,
			sortable.PhaseChange,
		}
	}
	for _, p := range phases {
		list.AddListener(p, b)
	}
}

// Detach removes the bridge from every phase of list.
func (b *Bridge) Detach(list *sortable.List) {
	for p := sortable.PhaseDragStart; p <= sortable.PhaseChange; p++ {
		list.RemoveListener(p, b)
	}
}

// Flush publishes buffered events to the world and returns how many were
// published. Call it from the goroutine that owns the world.
func (b *Bridge) Flush() int {
	b.mu.Lock()
	pending := b.buf
	b.buf = nil
	b.mu.Unlock()

	for _, e := range pending {
		SortEventType.Publish(b.world, e)
	}
	return len(pending)
}
