package state

import "github.com/lixenwraith/pinball/parameter"

const (
	HitTargetZOffset Fields = 1 << iota
	HitTargetXRotation
	HitTargetMaterial
	HitTargetTexture
	HitTargetVisible

	hitTargetAll = HitTargetZOffset | HitTargetXRotation | HitTargetMaterial | HitTargetTexture | HitTargetVisible
)

type HitTargetState struct {
	header
	ZOffset   float32
	XRotation float32
	Material  string
	Texture   string
	Visible   bool
}

var hitTargetPool = NewPool[HitTargetState]("hittarget", parameter.StatePoolCapacity)

func ClaimHitTargetState(name string, zOffset, xRotation float32, material, texture string, visible bool) *HitTargetState {
	slot, s := hitTargetPool.Claim()
	s.header = header{slot: slot, name: name, present: hitTargetAll}
	s.ZOffset = zOffset
	s.XRotation = xRotation
	s.Material = material
	s.Texture = texture
	s.Visible = visible
	return s
}

func (s *HitTargetState) Kind() string { return "hittarget" }

func (s *HitTargetState) Clone() ItemState {
	c := ClaimHitTargetState(s.name, s.ZOffset, s.XRotation, s.Material, s.Texture, s.Visible)
	c.present = s.present
	return c
}

// same reports per field whether s and o agree, ignoring presence
func (s *HitTargetState) same(o *HitTargetState) [5]bool {
	return [5]bool{
		f32Equal(s.ZOffset, o.ZOffset),
		f32Equal(s.XRotation, o.XRotation),
		s.Material == o.Material,
		s.Texture == o.Texture,
		s.Visible == o.Visible,
	}
}

var hitTargetOrder = [5]Fields{HitTargetZOffset, HitTargetXRotation, HitTargetMaterial, HitTargetTexture, HitTargetVisible}

func (s *HitTargetState) Equals(other ItemState) bool {
	o, ok := other.(*HitTargetState)
	if !ok || o.name != s.name || o.present != s.present {
		return false
	}
	same := s.same(o)
	for i, f := range hitTargetOrder {
		if s.present.Has(f) && !same[i] {
			return false
		}
	}
	return true
}

func (s *HitTargetState) Diff(prev ItemState) ItemState {
	c := s.Clone().(*HitTargetState)
	p, ok := prev.(*HitTargetState)
	if !ok || p == nil || p.name != s.name {
		return c
	}
	same := s.same(p)
	for i, f := range hitTargetOrder {
		c.clearIf(f, p.present.Has(f) && same[i])
	}
	return c
}

func (s *HitTargetState) Fields() map[string]any {
	m := make(map[string]any, 5)
	if s.present.Has(HitTargetZOffset) {
		m["zOffset"] = s.ZOffset
	}
	if s.present.Has(HitTargetXRotation) {
		m["xRotation"] = s.XRotation
	}
	if s.present.Has(HitTargetMaterial) {
		m["material"] = s.Material
	}
	if s.present.Has(HitTargetTexture) {
		m["texture"] = s.Texture
	}
	if s.present.Has(HitTargetVisible) {
		m["visible"] = s.Visible
	}
	return m
}

func (s *HitTargetState) Release() { hitTargetPool.Release(s.slot) }
