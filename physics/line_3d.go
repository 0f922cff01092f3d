package physics

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lixenwraith/pinball/vmath"
)

// Line3D is a cylinder of ball radius around an arbitrary segment
// Tests run in a rotated frame where the segment is parallel to z
type Line3D struct {
	HitBase
	V1, V2 mgl32.Vec3

	// rot maps world space to the aligned frame, its transpose maps back
	rot   mgl32.Mat3
	xy    mgl32.Vec2
	zlow  float32
	zhigh float32
}

func NewLine3D(v1, v2 mgl32.Vec3) *Line3D {
	l := &Line3D{HitBase: newHitBase(TypeLine3D), V1: v1, V2: v2}
	l.align()
	l.CalcHitBBox()
	return l
}

func (l *Line3D) align() {
	dir := vmath.NormalizeSafe(l.V2.Sub(l.V1), mgl32.Vec3{0, 0, 1})
	l.rot = vmath.AlignToZ(dir)
	a := l.rot.Mul3x1(l.V1)
	b := l.rot.Mul3x1(l.V2)
	l.xy = mgl32.Vec2{a[0], a[1]}
	l.zlow = vmath.Min(a[2], b[2])
	l.zhigh = vmath.Max(a[2], b[2])
}

// Aligned returns the equivalent z-axis line in the rotated frame and the rotation into it
func (l *Line3D) Aligned() (*LineZ, mgl32.Mat3) {
	return NewLineZ(l.xy, l.zlow, l.zhigh), l.rot
}

func (l *Line3D) CalcHitBBox() {
	bb := PointBBox(l.V1)
	bb.Extend(l.V2)
	l.BBox = bb
}

func (l *Line3D) HitTest(ball *Ball, dtime float32, coll *CollisionEvent) float32 {
	if !l.Enabled {
		return NoHit
	}
	pos := l.rot.Mul3x1(ball.State.Pos)
	vel := l.rot.Mul3x1(ball.Hit.Vel)
	hittime := hitTestLineZ(l.xy, l.zlow, l.zhigh, pos, vel, ball.Data.Radius, dtime, coll)
	if hittime >= 0 {
		coll.HitNormal = vmath.MulTransposed(l.rot, coll.HitNormal)
	}
	return hittime
}

// Collide reports hits for primitives and hit targets through the same path
// TODO: give hit targets their own response once drop and standing targets diverge here
func (l *Line3D) Collide(coll *CollisionEvent) {
	dot := coll.HitNormal.Dot(coll.Ball.Hit.Vel)
	coll.Ball.Collide3DWall(coll.HitNormal, coll.HitDistance, l.Material)
	l.reportHit(l, coll.Ball, -dot)
}
