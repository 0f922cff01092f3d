package vmath

import "github.com/go-gl/mathgl/mgl32"

// RotationAroundAxis builds the rotation by the angle given as (sin, cos) around a unit axis
// Element layout matches the row-major convention the collision code was tuned against:
// Mul3x1 transforms into the rotated frame, MulTransposed transforms back
func RotationAroundAxis(axis mgl32.Vec3, rsin, rcos float32) mgl32.Mat3 {
	x, y, z := axis[0], axis[1], axis[2]
	omc := 1 - rcos
	return mgl32.Mat3FromRows(
		mgl32.Vec3{x*x + rcos*(1-x*x), x*y*omc + z*rsin, z*x*omc - y*rsin},
		mgl32.Vec3{x*y*omc - z*rsin, y*y + rcos*(1-y*y), y*z*omc + x*rsin},
		mgl32.Vec3{z*x*omc + y*rsin, y*z*omc - x*rsin, z*z + rcos*(1-z*z)},
	)
}

// MulTransposed applies the transpose of m, the inverse for pure rotations
func MulTransposed(m mgl32.Mat3, v mgl32.Vec3) mgl32.Vec3 {
	return m.Transpose().Mul3x1(v)
}

// AlignToZ returns the rotation mapping the unit direction dir onto +Z
// A direction already parallel to Z falls back to the X axis as rotation axis
func AlignToZ(dir mgl32.Vec3) mgl32.Mat3 {
	axis := mgl32.Vec3{dir[1], -dir[0], 0}
	l := axis.LenSqr()
	if l <= 1e-6 {
		axis = mgl32.Vec3{1, 0, 0}
	} else {
		axis = axis.Mul(1 / Sqrt(l))
	}
	dot := dir[2]
	return RotationAroundAxis(axis, -Sqrt(1-dot*dot), dot)
}
