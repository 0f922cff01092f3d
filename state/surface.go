package state

import "github.com/lixenwraith/pinball/parameter"

const SurfaceSlingshotExtended Fields = 1

// SurfaceState tracks the slingshot arm of a wall
type SurfaceState struct {
	header
	SlingshotExtended bool
}

var surfacePool = NewPool[SurfaceState]("surface", parameter.StatePoolCapacity)

func ClaimSurfaceState(name string, extended bool) *SurfaceState {
	slot, s := surfacePool.Claim()
	s.header = header{slot: slot, name: name, present: SurfaceSlingshotExtended}
	s.SlingshotExtended = extended
	return s
}

func (s *SurfaceState) Kind() string { return "surface" }

func (s *SurfaceState) Clone() ItemState {
	c := ClaimSurfaceState(s.name, s.SlingshotExtended)
	c.present = s.present
	return c
}

func (s *SurfaceState) Equals(other ItemState) bool {
	o, ok := other.(*SurfaceState)
	return ok && o.name == s.name && o.present == s.present &&
		(!s.present.Has(SurfaceSlingshotExtended) || s.SlingshotExtended == o.SlingshotExtended)
}

func (s *SurfaceState) Diff(prev ItemState) ItemState {
	c := s.Clone().(*SurfaceState)
	if p, ok := prev.(*SurfaceState); ok && p != nil && p.name == s.name {
		c.clearIf(SurfaceSlingshotExtended, p.present.Has(SurfaceSlingshotExtended) && p.SlingshotExtended == s.SlingshotExtended)
	}
	return c
}

func (s *SurfaceState) Fields() map[string]any {
	if !s.present.Has(SurfaceSlingshotExtended) {
		return map[string]any{}
	}
	return map[string]any{"slingshotExtended": s.SlingshotExtended}
}

func (s *SurfaceState) Release() { surfacePool.Release(s.slot) }
