package physics

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lixenwraith/pinball/parameter"
	"github.com/lixenwraith/pinball/vmath"
)

// Point is a zero-size collider, used for mesh vertices
type Point struct {
	HitBase
	P mgl32.Vec3
}

func NewPoint(p mgl32.Vec3) *Point {
	pt := &Point{HitBase: newHitBase(TypePoint), P: p}
	pt.CalcHitBBox()
	return pt
}

func (p *Point) CalcHitBBox() { p.BBox = PointBBox(p.P) }

func (p *Point) HitTest(ball *Ball, dtime float32, coll *CollisionEvent) float32 {
	if !p.Enabled {
		return NoHit
	}
	r := ball.Data.Radius
	dist := ball.State.Pos.Sub(p.P)
	bcddsq := dist.LenSqr()
	bcdd := vmath.Sqrt(bcddsq)
	if bcdd <= 1e-6 {
		return NoHit
	}
	b := dist.Dot(ball.Hit.Vel)
	bnv := b / bcdd
	if bnv > parameter.ContactVelocity {
		return NoHit
	}
	bnd := bcdd - r
	a := ball.Hit.Vel.LenSqr()

	var hittime float32
	isContact := false
	if bnd < parameter.Touch {
		if vmath.Abs(bnv) <= parameter.ContactVelocity {
			isContact = true
		} else {
			hittime = vmath.Max(0, -bnd/bnv)
		}
	} else {
		if a < 1e-8 {
			return NoHit
		}
		t1, t2, ok := vmath.SolveQuadratic(a, 2*b, bcddsq-r*r)
		if !ok {
			return NoHit
		}
		hittime = nearestRoot(t1, t2)
	}
	if !vmath.IsFinite(hittime) || hittime < 0 || hittime > dtime {
		return NoHit
	}

	hitPos := ball.State.Pos.Add(ball.Hit.Vel.Mul(hittime))
	coll.HitNormal = vmath.NormalizeSafe(hitPos.Sub(p.P), mgl32.Vec3{0, 0, 1})
	coll.IsContact = isContact
	if isContact {
		coll.HitOrgNormalVelocity = bnv
	}
	coll.HitDistance = bnd
	return hittime
}

func (p *Point) Collide(coll *CollisionEvent) {
	dot := coll.HitNormal.Dot(coll.Ball.Hit.Vel)
	coll.Ball.Collide3DWall(coll.HitNormal, coll.HitDistance, p.Material)
	p.reportHit(p, coll.Ball, -dot)
}
