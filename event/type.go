package event

// Kind is the closed set of events a table item raises toward scripts
type Kind int

const (
	// KindHitEventsHit fires when a ball strikes or enters an item
	// Trigger: hit objects over threshold, triggers on entry
	KindHitEventsHit Kind = iota + 1

	// KindHitEventsUnhit fires when a ball leaves a trigger area
	KindHitEventsUnhit

	// KindGameEventsInit fires once per item when the player starts
	KindGameEventsInit

	// KindSurfaceEventsSlingshot fires when a slingshot segment kicks a ball
	KindSurfaceEventsSlingshot

	// KindTargetEventsDropped fires when a drop target finishes moving down
	KindTargetEventsDropped

	// KindTargetEventsRaised fires when a drop target finishes moving up
	KindTargetEventsRaised

	// KindTimerEventsTimer is defined for item timers but has no script name yet
	KindTimerEventsTimer
)

// UnknownEvent is the name resolved for kinds without a script mapping
// Callers treat it as an inconsistency to report, never as a dispatchable event
const UnknownEvent = "UnknownEvent"

func (k Kind) String() string {
	return Name(k)
}
