package physics

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lixenwraith/pinball/parameter"
	"github.com/lixenwraith/pinball/vmath"
)

// LineSeg is a 2D segment extruded between ZLow and ZHigh
// The collision face is on the left when walking from V1 to V2
type LineSeg struct {
	HitBase
	V1, V2 mgl32.Vec2
	Normal mgl32.Vec2
	Length float32
	ZLow   float32
	ZHigh  float32
}

func NewLineSeg(v1, v2 mgl32.Vec2, zlow, zhigh float32) *LineSeg {
	l := &LineSeg{HitBase: newHitBase(TypeLine), V1: v1, V2: v2, ZLow: zlow, ZHigh: zhigh}
	l.CalcNormal()
	l.CalcHitBBox()
	return l
}

// CalcNormal derives the outward normal and length; a zero-length segment keeps a zero normal and never hits
func (l *LineSeg) CalcNormal() {
	vt := l.V1.Sub(l.V2)
	l.Length = vt.Len()
	if l.Length <= 1e-6 {
		l.Normal = mgl32.Vec2{}
		return
	}
	inv := 1 / l.Length
	l.Normal = mgl32.Vec2{vt[1] * inv, -vt[0] * inv}
}

func (l *LineSeg) CalcHitBBox() {
	l.BBox = BBox{
		Left:   vmath.Min(l.V1[0], l.V2[0]),
		Right:  vmath.Max(l.V1[0], l.V2[0]),
		Top:    vmath.Min(l.V1[1], l.V2[1]),
		Bottom: vmath.Max(l.V1[1], l.V2[1]),
		ZLow:   l.ZLow,
		ZHigh:  l.ZHigh,
	}
}

func (l *LineSeg) HitTest(ball *Ball, dtime float32, coll *CollisionEvent) float32 {
	if !l.Enabled || l.Length <= 1e-6 {
		return NoHit
	}
	return l.hitTestRigid(ball, dtime, coll)
}

// hitTestRigid is the lateral, one-sided, rigid test
func (l *LineSeg) hitTestRigid(ball *Ball, dtime float32, coll *CollisionEvent) float32 {
	n := l.Normal
	vx, vy := ball.Hit.Vel[0], ball.Hit.Vel[1]
	px, py := ball.State.Pos[0], ball.State.Pos[1]
	r := ball.Data.Radius

	bnv := vx*n[0] + vy*n[1]
	if bnv > parameter.LowNormalVelocity {
		return NoHit
	}
	bcpd := (px-l.V1[0])*n[0] + (py-l.V1[1])*n[1]
	bnd := bcpd - r
	if bnd < -r || bcpd < 0 {
		return NoHit
	}

	var hittime float32
	switch {
	case bnd <= parameter.Touch:
		if bnd <= 0 || vmath.Abs(bnv) > parameter.ContactVelocity || bnd <= -parameter.Touch {
			hittime = 0
		} else {
			hittime = bnd/(2*parameter.Touch) + 0.5
		}
	case vmath.Abs(bnv) > parameter.LowNormalVelocity:
		hittime = bnd / -bnv
	default:
		return NoHit
	}
	if !vmath.IsFinite(hittime) || hittime < 0 || hittime > dtime {
		return NoHit
	}

	// tangent runs from V1 to V2
	btv := vx*n[1] - vy*n[0]
	btd := (px-l.V1[0])*n[1] - (py-l.V1[1])*n[0] + btv*hittime
	if btd < -parameter.EndpointTolerance || btd > l.Length+parameter.EndpointTolerance {
		return NoHit
	}

	hitz := ball.State.Pos[2] + ball.Hit.Vel[2]*hittime
	if hitz+r*0.5 < l.ZLow || hitz-r*0.5 > l.ZHigh {
		return NoHit
	}

	coll.HitNormal = mgl32.Vec3{n[0], n[1], 0}
	coll.HitDistance = bnd
	if vmath.Abs(bnv) <= parameter.ContactVelocity && vmath.Abs(bnd) <= parameter.Touch {
		coll.IsContact = true
		coll.HitOrgNormalVelocity = bnv
	}
	return hittime
}

func (l *LineSeg) Collide(coll *CollisionEvent) {
	dot := coll.HitNormal.Dot(coll.Ball.Hit.Vel)
	coll.Ball.Collide3DWall(coll.HitNormal, coll.HitDistance, l.Material)
	l.reportHit(l, coll.Ball, -dot)
}
