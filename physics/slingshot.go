package physics

import (
	"github.com/lixenwraith/pinball/event"
	"github.com/lixenwraith/pinball/parameter"
	"github.com/lixenwraith/pinball/vmath"
)

// Clock reports simulated time in milliseconds
type Clock interface {
	TimeMsec() int64
}

// SlingshotSurface is the owning surface as seen by its slingshot segments
type SlingshotSurface interface {
	SlingshotEnabled() bool
	SlingshotThreshold() float32
}

// Slingshot is a wall segment that kicks the ball back on hard impacts
type Slingshot struct {
	LineSeg
	// Force is the peak speed change along the normal, reached at the midpoint
	// It is subtracted, so negative values push the ball away
	Force float32

	surface SlingshotSurface
	clock   Clock
	// animReset is the time in ms the arm returns, 0 when idle
	animReset int64
}

func NewSlingshot(seg *LineSeg, force float32, surface SlingshotSurface, clock Clock) *Slingshot {
	s := &Slingshot{LineSeg: *seg, Force: force, surface: surface, clock: clock}
	s.ObjType = TypeSlingshot
	return s
}

// Impulse returns the speed subtracted along the normal for a strike at t in [-1, 1]
func (s *Slingshot) Impulse(t float32) float32 {
	return 0.5 * (1 - t*t) * s.Force
}

// strikePosition maps the contact point of a ball centred at (px, py) to [-1, 1] along the segment
func (s *Slingshot) strikePosition(px, py float32, nx, ny, radius float32) float32 {
	length := (s.V2[0]-s.V1[0])*ny - (s.V2[1]-s.V1[1])*nx
	if vmath.Abs(length) <= 1e-6 {
		return -1
	}
	hx := px - nx*radius
	hy := py - ny*radius
	btd := (hx-s.V1[0])*ny - (hy-s.V1[1])*nx
	return (btd+btd)/length - 1
}

func (s *Slingshot) Collide(coll *CollisionEvent) {
	ball := coll.Ball
	n := coll.HitNormal
	dot := ball.Hit.Vel.Dot(n)

	active := s.surface != nil && s.surface.SlingshotEnabled()
	inbound := active && dot <= -s.surface.SlingshotThreshold()
	if inbound {
		t := s.strikePosition(ball.State.Pos[0], ball.State.Pos[1], n[0], n[1], ball.Data.Radius)
		ball.Hit.Vel = ball.Hit.Vel.Sub(n.Mul(s.Impulse(t)))
	}

	ball.Collide3DWall(n, coll.HitDistance, s.Material)

	if !inbound || s.Events == nil {
		return
	}
	distLs := ball.Hit.EventPos.Sub(ball.State.Pos).LenSqr()
	ball.Hit.EventPos = ball.State.Pos
	if distLs > parameter.EventDistanceSq {
		s.Events.FireGroupEvent(event.KindSurfaceEventsSlingshot)
		if s.clock != nil {
			s.animReset = s.clock.TimeMsec() + parameter.SlingshotAnimReset.Milliseconds()
		}
	}
}

// Extended reports whether the arm is still out at now, clearing the timer once it elapses
func (s *Slingshot) Extended(now int64) bool {
	if s.animReset == 0 {
		return false
	}
	if now >= s.animReset {
		s.animReset = 0
		return false
	}
	return true
}
