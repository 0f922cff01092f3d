package state

import "github.com/lixenwraith/pinball/parameter"

const TriggerHeightOffset Fields = 1

type TriggerState struct {
	header
	HeightOffset float32
}

var triggerPool = NewPool[TriggerState]("trigger", parameter.StatePoolCapacity)

func ClaimTriggerState(name string, heightOffset float32) *TriggerState {
	slot, s := triggerPool.Claim()
	s.header = header{slot: slot, name: name, present: TriggerHeightOffset}
	s.HeightOffset = heightOffset
	return s
}

func (s *TriggerState) Kind() string { return "trigger" }

func (s *TriggerState) Clone() ItemState {
	c := ClaimTriggerState(s.name, s.HeightOffset)
	c.present = s.present
	return c
}

func (s *TriggerState) Equals(other ItemState) bool {
	o, ok := other.(*TriggerState)
	return ok && o.name == s.name && o.present == s.present &&
		(!s.present.Has(TriggerHeightOffset) || f32Equal(s.HeightOffset, o.HeightOffset))
}

func (s *TriggerState) Diff(prev ItemState) ItemState {
	c := s.Clone().(*TriggerState)
	if p, ok := prev.(*TriggerState); ok && p != nil && p.name == s.name {
		c.clearIf(TriggerHeightOffset, p.present.Has(TriggerHeightOffset) && f32Equal(p.HeightOffset, s.HeightOffset))
	}
	return c
}

func (s *TriggerState) Fields() map[string]any {
	if !s.present.Has(TriggerHeightOffset) {
		return map[string]any{}
	}
	return map[string]any{"heightOffset": s.HeightOffset}
}

func (s *TriggerState) Release() { triggerPool.Release(s.slot) }
