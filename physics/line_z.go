package physics

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lixenwraith/pinball/parameter"
	"github.com/lixenwraith/pinball/vmath"
)

// LineZ is a vertical line at XY between ZLow and ZHigh, hit as a cylinder of the ball radius
type LineZ struct {
	HitBase
	XY    mgl32.Vec2
	ZLow  float32
	ZHigh float32
}

func NewLineZ(xy mgl32.Vec2, zlow, zhigh float32) *LineZ {
	l := &LineZ{HitBase: newHitBase(TypeLineZ), XY: xy, ZLow: zlow, ZHigh: zhigh}
	l.CalcHitBBox()
	return l
}

func (l *LineZ) CalcHitBBox() {
	l.BBox = BBox{Left: l.XY[0], Right: l.XY[0], Top: l.XY[1], Bottom: l.XY[1], ZLow: l.ZLow, ZHigh: l.ZHigh}
}

func (l *LineZ) HitTest(ball *Ball, dtime float32, coll *CollisionEvent) float32 {
	if !l.Enabled {
		return NoHit
	}
	return hitTestLineZ(l.XY, l.ZLow, l.ZHigh, ball.State.Pos, ball.Hit.Vel, ball.Data.Radius, dtime, coll)
}

func (l *LineZ) Collide(coll *CollisionEvent) {
	dot := coll.HitNormal.Dot(coll.Ball.Hit.Vel)
	coll.Ball.Collide3DWall(coll.HitNormal, coll.HitDistance, l.Material)
	l.reportHit(l, coll.Ball, -dot)
}

// hitTestLineZ tests a sphere at pos moving with vel against the vertical line at xy
// It reads only its arguments so callers may pass positions in any frame
func hitTestLineZ(xy mgl32.Vec2, zlow, zhigh float32, pos, vel mgl32.Vec3, radius, dtime float32, coll *CollisionEvent) float32 {
	dist := mgl32.Vec2{pos[0] - xy[0], pos[1] - xy[1]}
	dv := mgl32.Vec2{vel[0], vel[1]}

	bcddsq := dist.LenSqr()
	bcdd := vmath.Sqrt(bcddsq)
	if bcdd <= 1e-6 {
		return NoHit
	}
	b := dist.Dot(dv)
	bnv := b / bcdd
	if bnv > parameter.ContactVelocity {
		return NoHit
	}
	bnd := bcdd - radius
	a := dv.LenSqr()

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
		t1, t2, ok := vmath.SolveQuadratic(a, 2*b, bcddsq-radius*radius)
		if !ok {
			return NoHit
		}
		hittime = nearestRoot(t1, t2)
	}
	if !vmath.IsFinite(hittime) || hittime < 0 || hittime > dtime {
		return NoHit
	}

	hitz := pos[2] + hittime*vel[2]
	if hitz < zlow || hitz > zhigh {
		return NoHit
	}

	hx := pos[0] + hittime*vel[0] - xy[0]
	hy := pos[1] + hittime*vel[1] - xy[1]
	coll.HitNormal = vmath.NormalizeSafe(mgl32.Vec3{hx, hy, 0}, mgl32.Vec3{1, 0, 0})
	coll.IsContact = isContact
	if isContact {
		coll.HitOrgNormalVelocity = bnv
	}
	coll.HitDistance = bnd
	return hittime
}

// nearestRoot picks the exit root when the start lies between the roots, else the earliest
func nearestRoot(t1, t2 float32) float32 {
	if t1*t2 < 0 {
		return vmath.Max(t1, t2)
	}
	return vmath.Min(t1, t2)
}
