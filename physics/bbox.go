package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lixenwraith/pinball/vmath"
)

// BBox is an axis-aligned bound with z extent
// Left/Right bound x, Top/Bottom bound y
type BBox struct {
	Left, Top, Right, Bottom float32
	ZLow, ZHigh              float32
}

// InfiniteBBox covers all space, used by unbounded colliders such as planes
func InfiniteBBox() BBox {
	inf := float32(math.Inf(1))
	return BBox{Left: -inf, Top: -inf, Right: inf, Bottom: inf, ZLow: -inf, ZHigh: inf}
}

// Intersects reports whether the two bounds overlap, touching counts
func (b BBox) Intersects(o BBox) bool {
	return b.Right >= o.Left && b.Left <= o.Right &&
		b.Bottom >= o.Top && b.Top <= o.Bottom &&
		b.ZHigh >= o.ZLow && b.ZLow <= o.ZHigh
}

// Extend grows the bound to include p
func (b *BBox) Extend(p mgl32.Vec3) {
	b.Left = vmath.Min(b.Left, p[0])
	b.Right = vmath.Max(b.Right, p[0])
	b.Top = vmath.Min(b.Top, p[1])
	b.Bottom = vmath.Max(b.Bottom, p[1])
	b.ZLow = vmath.Min(b.ZLow, p[2])
	b.ZHigh = vmath.Max(b.ZHigh, p[2])
}

// PointBBox returns the zero-size bound at p
func PointBBox(p mgl32.Vec3) BBox {
	return BBox{Left: p[0], Right: p[0], Top: p[1], Bottom: p[1], ZLow: p[2], ZHigh: p[2]}
}

// SweptBBox bounds the sphere of the ball over dtime of motion
func SweptBBox(ball *Ball, dtime float32) BBox {
	p := ball.State.Pos
	end := p.Add(ball.Hit.Vel.Mul(dtime))
	bb := PointBBox(p)
	bb.Extend(end)
	r := ball.Data.Radius
	bb.Left -= r
	bb.Right += r
	bb.Top -= r
	bb.Bottom += r
	bb.ZLow -= r
	bb.ZHigh += r
	return bb
}
