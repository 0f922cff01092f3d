package physics

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lixenwraith/pinball/parameter"
	"github.com/lixenwraith/pinball/vmath"
)

// BallTarget exposes a ball as a collider for another ball
// The returned normal points from the target toward the moving ball
type BallTarget struct {
	HitBase
	ball *Ball
}

func newBallTarget(b *Ball) *BallTarget {
	t := &BallTarget{HitBase: newHitBase(TypeBall), ball: b}
	return t
}

func (t *BallTarget) Ball() *Ball { return t.ball }

func (t *BallTarget) CalcHitBBox() {
	r := t.ball.Data.Radius
	p := t.ball.State.Pos
	t.BBox = BBox{
		Left: p[0] - r, Right: p[0] + r,
		Top: p[1] - r, Bottom: p[1] + r,
		ZLow: p[2] - r, ZHigh: p[2] + r,
	}
}

func (t *BallTarget) HitTest(ball *Ball, dtime float32, coll *CollisionEvent) float32 {
	if !t.Enabled || ball == t.ball {
		return NoHit
	}
	// d runs from the moving ball to the target, dv is the target's velocity relative to it
	d := t.ball.State.Pos.Sub(ball.State.Pos)
	dv := t.ball.Hit.Vel.Sub(ball.Hit.Vel)

	bcddsq := d.LenSqr()
	bcdd := vmath.Sqrt(bcddsq)
	if bcdd < 1e-8 {
		// centre over centre: separate vertically without guessing a trajectory
		coll.HitNormal = mgl32.Vec3{0, 0, 1}
		coll.HitDistance = -(ball.Data.Radius + t.ball.Data.Radius)
		return 0
	}

	b := dv.Dot(d)
	bnv := b / bcdd
	if bnv > parameter.LowNormalVelocity {
		return NoHit
	}
	totalRadius := ball.Data.Radius + t.ball.Data.Radius
	bnd := bcdd - totalRadius

	var hittime float32
	isContact := false
	if bnd <= parameter.Touch {
		if bnd < -parameter.BallEmbedLimit*ball.Data.Radius {
			return NoHit
		}
		if vmath.Abs(bnv) > parameter.ContactVelocity || bnd <= -parameter.Touch {
			hittime = 0
		} else {
			hittime = bnd / -bnv
		}
		isContact = vmath.Abs(bnv) <= parameter.ContactVelocity
	} else {
		a := dv.LenSqr()
		if a < 1e-8 {
			return NoHit
		}
		t1, t2, ok := vmath.SolveQuadratic(a, 2*b, bcddsq-totalRadius*totalRadius)
		if !ok {
			return NoHit
		}
		hittime = nearestRoot(t1, t2)
	}
	if !vmath.IsFinite(hittime) || hittime < 0 || hittime > dtime {
		return NoHit
	}

	dAt := d.Add(dv.Mul(hittime))
	coll.HitNormal = vmath.NormalizeSafe(dAt.Mul(-1), mgl32.Vec3{0, 0, 1})
	coll.HitDistance = bnd
	coll.IsContact = isContact
	if isContact {
		coll.HitOrgNormalVelocity = bnv
	}
	return hittime
}

// Collide exchanges a fixed-restitution impulse and splits the displacement correction
// A frozen target takes neither impulse nor correction
func (t *BallTarget) Collide(coll *CollisionEvent) {
	ball, other := coll.Ball, t.ball
	n := coll.HitNormal
	vrel := ball.Hit.Vel.Sub(other.Hit.Vel)
	dot := vrel.Dot(n)
	if dot >= -parameter.LowNormalVelocity {
		if dot > parameter.LowNormalVelocity {
			return
		}
		if coll.HitDistance < -parameter.Embedded {
			dot = -parameter.EmbedShot
		} else {
			return
		}
	}

	edist := -parameter.DisplacementGain * coll.HitDistance
	if edist > 1e-4 {
		if edist > parameter.DisplacementLimit {
			edist = parameter.DisplacementLimit
		}
		if !other.Frozen {
			edist *= 0.5
			other.State.Pos = other.State.Pos.Sub(n.Mul(edist))
		}
		ball.State.Pos = ball.State.Pos.Add(n.Mul(edist))
	}

	otherInv := other.invMass
	if other.Frozen {
		otherInv = 0
	}
	impulse := -(1 + parameter.BallBallRestitution) * dot / (otherInv + ball.invMass)
	other.Hit.Vel = other.Hit.Vel.Sub(n.Mul(impulse * otherInv))
	ball.Hit.Vel = ball.Hit.Vel.Add(n.Mul(impulse * ball.invMass))
}
