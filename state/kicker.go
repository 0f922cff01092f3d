package state

import "github.com/lixenwraith/pinball/parameter"

const KickerHolding Fields = 1

// KickerState reports whether a kicker holds a ball
type KickerState struct {
	header
	Holding bool
}

var kickerPool = NewPool[KickerState]("kicker", parameter.StatePoolCapacity)

func ClaimKickerState(name string, holding bool) *KickerState {
	slot, s := kickerPool.Claim()
	s.header = header{slot: slot, name: name, present: KickerHolding}
	s.Holding = holding
	return s
}

func (s *KickerState) Kind() string { return "kicker" }

func (s *KickerState) Clone() ItemState {
	c := ClaimKickerState(s.name, s.Holding)
	c.present = s.present
	return c
}

func (s *KickerState) Equals(other ItemState) bool {
	o, ok := other.(*KickerState)
	return ok && o.name == s.name && o.present == s.present &&
		(!s.present.Has(KickerHolding) || s.Holding == o.Holding)
}

func (s *KickerState) Diff(prev ItemState) ItemState {
	c := s.Clone().(*KickerState)
	if p, ok := prev.(*KickerState); ok && p != nil && p.name == s.name {
		c.clearIf(KickerHolding, p.present.Has(KickerHolding) && p.Holding == s.Holding)
	}
	return c
}

func (s *KickerState) Fields() map[string]any {
	if !s.present.Has(KickerHolding) {
		return map[string]any{}
	}
	return map[string]any{"holding": s.Holding}
}

func (s *KickerState) Release() { kickerPool.Release(s.slot) }
