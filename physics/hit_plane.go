package physics

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lixenwraith/pinball/parameter"
	"github.com/lixenwraith/pinball/vmath"
)

// Plane is the half-space n·p >= d, used for the playfield and top glass
type Plane struct {
	HitBase
	Normal mgl32.Vec3
	D      float32
}

func NewPlane(normal mgl32.Vec3, d float32) *Plane {
	p := &Plane{HitBase: newHitBase(TypePlane), Normal: normal, D: d}
	p.CalcHitBBox()
	return p
}

func (p *Plane) CalcHitBBox() { p.BBox = InfiniteBBox() }

func (p *Plane) HitTest(ball *Ball, dtime float32, coll *CollisionEvent) float32 {
	if !p.Enabled {
		return NoHit
	}
	bnv := p.Normal.Dot(ball.Hit.Vel)
	if bnv > parameter.ContactVelocity {
		return NoHit
	}
	bnd := p.Normal.Dot(ball.State.Pos) - ball.Data.Radius - p.D
	// deeper than a ball diameter means the ball already went through
	if bnd < -2*ball.Data.Radius {
		return NoHit
	}

	if vmath.Abs(bnv) <= parameter.ContactVelocity {
		if vmath.Abs(bnd) > parameter.Touch {
			return NoHit
		}
		coll.IsContact = true
		coll.HitNormal = p.Normal
		coll.HitOrgNormalVelocity = bnv
		coll.HitDistance = bnd
		return 0
	}

	hittime := bnd / -bnv
	if hittime < 0 {
		hittime = 0
	}
	if !vmath.IsFinite(hittime) || hittime > dtime {
		return NoHit
	}
	coll.HitNormal = p.Normal
	coll.HitDistance = bnd
	return hittime
}

func (p *Plane) Collide(coll *CollisionEvent) {
	ball := coll.Ball
	ball.Collide3DWall(p.Normal, coll.HitDistance, p.Material)

	if bnd := p.Normal.Dot(ball.State.Pos) - ball.Data.Radius - p.D; bnd < 0 {
		ball.State.Pos = ball.State.Pos.Sub(p.Normal.Mul(bnd))
	}
}
