package physics

import (
	"log"

	"github.com/lixenwraith/pinball/event"
)

// EventProxy bridges a collider owner to the script sink
// Owned by the item; hit objects keep a non-owning pointer to it
type EventProxy struct {
	// CurrentHitThreshold is the approach speed of the last qualifying hit
	CurrentHitThreshold float32

	// OnCollision replaces default hit handling when set
	// CurrentHitThreshold already holds dot when it runs
	OnCollision func(obj HitObject, ball *Ball, dot float32)

	// AbortHitTest vetoes hit testing of all the owner's colliders while it returns true
	AbortHitTest func() bool

	name string
	sink event.Sink
}

func NewEventProxy(name string, sink event.Sink) *EventProxy {
	return &EventProxy{name: name, sink: sink}
}

func (p *EventProxy) Name() string { return p.name }

// ShouldAbortHitTest is safe on a nil proxy
func (p *EventProxy) ShouldAbortHitTest() bool {
	return p != nil && p.AbortHitTest != nil && p.AbortHitTest()
}

// FireDispID emits k with params and returns the resolved name
// Unmapped kinds resolve to event.UnknownEvent, are logged, and are not emitted
func (p *EventProxy) FireDispID(k event.Kind, params ...any) string {
	name := event.Name(k)
	if name == event.UnknownEvent {
		log.Printf("[%s] fireDispID(%d): %s", p.name, k, name)
		return name
	}
	if p.sink != nil {
		p.sink.Emit(name, params)
	}
	log.Printf("[%s] fireDispID(%s)", p.name, name)
	return name
}

// FireGroupEvent emits k for the owner
// TODO: forward to the owner's collections once collection events are modelled
func (p *EventProxy) FireGroupEvent(k event.Kind) string {
	return p.FireDispID(k)
}

func (p *EventProxy) FireVoidEvent(k event.Kind) string {
	return p.FireDispID(k)
}

func (p *EventProxy) FireVoidEventParm(k event.Kind, params ...any) string {
	return p.FireDispID(k, params...)
}
