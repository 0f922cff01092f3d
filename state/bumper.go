package state

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lixenwraith/pinball/parameter"
)

const (
	BumperRingOffset Fields = 1 << iota
	BumperBallHitPosition

	bumperAll = BumperRingOffset | BumperBallHitPosition
)

type BumperState struct {
	header
	RingOffset      float32
	BallHitPosition mgl32.Vec3
}

var bumperPool = NewPool[BumperState]("bumper", parameter.StatePoolCapacity)

// ClaimBumperState takes a pooled record with every field present
func ClaimBumperState(name string, ringOffset float32, ballHitPosition mgl32.Vec3) *BumperState {
	slot, s := bumperPool.Claim()
	s.header = header{slot: slot, name: name, present: bumperAll}
	s.RingOffset = ringOffset
	s.BallHitPosition = ballHitPosition
	return s
}

func (s *BumperState) Kind() string { return "bumper" }

func (s *BumperState) Clone() ItemState {
	c := ClaimBumperState(s.name, s.RingOffset, s.BallHitPosition)
	c.present = s.present
	return c
}

func (s *BumperState) Equals(other ItemState) bool {
	o, ok := other.(*BumperState)
	if !ok || o.name != s.name || o.present != s.present {
		return false
	}
	return (!s.present.Has(BumperRingOffset) || f32Equal(s.RingOffset, o.RingOffset)) &&
		(!s.present.Has(BumperBallHitPosition) || s.BallHitPosition == o.BallHitPosition)
}

func (s *BumperState) Diff(prev ItemState) ItemState {
	c := s.Clone().(*BumperState)
	p, ok := prev.(*BumperState)
	if !ok || p == nil || p.name != s.name {
		return c
	}
	c.clearIf(BumperRingOffset, p.present.Has(BumperRingOffset) && f32Equal(p.RingOffset, s.RingOffset))
	c.clearIf(BumperBallHitPosition, p.present.Has(BumperBallHitPosition) && p.BallHitPosition == s.BallHitPosition)
	return c
}

func (s *BumperState) Fields() map[string]any {
	m := make(map[string]any, 2)
	if s.present.Has(BumperRingOffset) {
		m["ringOffset"] = s.RingOffset
	}
	if s.present.Has(BumperBallHitPosition) {
		m["ballHitPosition"] = s.BallHitPosition
	}
	return m
}

func (s *BumperState) Release() { bumperPool.Release(s.slot) }
