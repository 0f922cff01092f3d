package state

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lixenwraith/pinball/parameter"
)

const (
	BallPosition Fields = 1 << iota
	BallVelocity
)

// BallState is the replicated placement of one ball
type BallState struct {
	header
	Pos mgl32.Vec3
	Vel mgl32.Vec3
}

var ballPool = NewPool[BallState]("ball", parameter.StatePoolCapacity)

func ClaimBallState(name string, pos, vel mgl32.Vec3) *BallState {
	slot, s := ballPool.Claim()
	s.header = header{slot: slot, name: name, present: BallPosition | BallVelocity}
	s.Pos = pos
	s.Vel = vel
	return s
}

func (s *BallState) Kind() string { return "ball" }

func (s *BallState) Clone() ItemState {
	c := ClaimBallState(s.name, s.Pos, s.Vel)
	c.present = s.present
	return c
}

func (s *BallState) Equals(other ItemState) bool {
	o, ok := other.(*BallState)
	return ok && o.name == s.name && o.present == s.present &&
		(!s.present.Has(BallPosition) || s.Pos == o.Pos) &&
		(!s.present.Has(BallVelocity) || s.Vel == o.Vel)
}

func (s *BallState) Diff(prev ItemState) ItemState {
	c := s.Clone().(*BallState)
	if p, ok := prev.(*BallState); ok && p != nil && p.name == s.name {
		c.clearIf(BallPosition, p.present.Has(BallPosition) && p.Pos == s.Pos)
		c.clearIf(BallVelocity, p.present.Has(BallVelocity) && p.Vel == s.Vel)
	}
	return c
}

func (s *BallState) Fields() map[string]any {
	m := make(map[string]any, 2)
	if s.present.Has(BallPosition) {
		m["pos"] = s.Pos
	}
	if s.present.Has(BallVelocity) {
		m["vel"] = s.Vel
	}
	return m
}

func (s *BallState) Release() { ballPool.Release(s.slot) }
