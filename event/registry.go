package event

var (
	nameToKind = make(map[string]Kind)
	kindToName = make(map[Kind]string)
)

// register maps a script-visible name to a Kind
func register(name string, k Kind) {
	nameToKind[name] = k
	kindToName[k] = name
}

func init() {
	register("Hit", KindHitEventsHit)
	register("Unhit", KindHitEventsUnhit)
	register("Init", KindGameEventsInit)
	register("Slingshot", KindSurfaceEventsSlingshot)
	register("Dropped", KindTargetEventsDropped)
	register("Raised", KindTargetEventsRaised)
	// KindTimerEventsTimer has no script name
}

// Name returns the script name of k, or UnknownEvent
func Name(k Kind) string {
	if name, ok := kindToName[k]; ok {
		return name
	}
	return UnknownEvent
}

// Lookup returns the Kind registered under name
func Lookup(name string) (Kind, bool) {
	k, ok := nameToKind[name]
	return k, ok
}

// IsKnown reports whether k resolves to a dispatchable name
func IsKnown(k Kind) bool {
	_, ok := kindToName[k]
	return ok
}
