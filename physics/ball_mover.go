package physics

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lixenwraith/pinball/parameter"
	"github.com/lixenwraith/pinball/vmath"
)

// BallMover integrates a ball through time
type BallMover struct {
	ball *Ball
}

// UpdateDisplacements advances position and orientation by dtime
func (m *BallMover) UpdateDisplacements(dtime float32) {
	b := m.ball
	if b.Frozen {
		return
	}
	b.State.Pos = b.State.Pos.Add(b.Hit.Vel.Mul(dtime))

	w := b.AngularVelocity()
	skew := mgl32.Mat3FromRows(
		mgl32.Vec3{0, -w[2], w[1]},
		mgl32.Vec3{w[2], 0, -w[0]},
		mgl32.Vec3{-w[1], w[0], 0},
	)
	o := b.State.Orientation
	b.State.Orientation = orthonormalize(o.Add(skew.Mul3(o).Mul(dtime)))
}

// UpdateVelocities applies gravity for one physics tick
func (m *BallMover) UpdateVelocities() {
	b := m.ball
	if b.Frozen {
		return
	}
	b.Hit.Vel = b.Hit.Vel.Add(b.env.Gravity.Mul(parameter.PhysFactor))
}

// orthonormalize applies Gram-Schmidt to the columns so drift does not skew the rotation
func orthonormalize(m mgl32.Mat3) mgl32.Mat3 {
	x := vmath.NormalizeSafe(m.Col(0), mgl32.Vec3{1, 0, 0})
	y := m.Col(1)
	y = vmath.NormalizeSafe(y.Sub(x.Mul(x.Dot(y))), mgl32.Vec3{0, 1, 0})
	z := x.Cross(y)
	return mgl32.Mat3FromCols(x, y, z)
}
