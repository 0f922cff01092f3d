package state

import "github.com/lixenwraith/pinball/parameter"

const LightIntensity Fields = 1

type LightState struct {
	header
	Intensity float32
}

var lightPool = NewPool[LightState]("light", parameter.StatePoolCapacity)

func ClaimLightState(name string, intensity float32) *LightState {
	slot, s := lightPool.Claim()
	s.header = header{slot: slot, name: name, present: LightIntensity}
	s.Intensity = intensity
	return s
}

func (s *LightState) Kind() string { return "light" }

func (s *LightState) Clone() ItemState {
	c := ClaimLightState(s.name, s.Intensity)
	c.present = s.present
	return c
}

func (s *LightState) Equals(other ItemState) bool {
	o, ok := other.(*LightState)
	return ok && o.name == s.name && o.present == s.present &&
		(!s.present.Has(LightIntensity) || f32Equal(s.Intensity, o.Intensity))
}

func (s *LightState) Diff(prev ItemState) ItemState {
	c := s.Clone().(*LightState)
	if p, ok := prev.(*LightState); ok && p != nil && p.name == s.name {
		c.clearIf(LightIntensity, p.present.Has(LightIntensity) && f32Equal(p.Intensity, s.Intensity))
	}
	return c
}

func (s *LightState) Fields() map[string]any {
	if !s.present.Has(LightIntensity) {
		return map[string]any{}
	}
	return map[string]any{"intensity": s.Intensity}
}

func (s *LightState) Release() { lightPool.Release(s.slot) }
