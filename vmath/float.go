package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Single-precision helpers. All physics math runs at float32; these wrappers keep the
// float64 round trips of the math package at one defined point.

func Sqrt(x float32) float32 { return float32(math.Sqrt(float64(x))) }
func Sin(x float32) float32  { return float32(math.Sin(float64(x))) }
func Cos(x float32) float32  { return float32(math.Cos(float64(x))) }

func Abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func Min(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func Max(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func Clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// IsFinite reports false for NaN and ±Inf
func IsFinite(x float32) bool {
	return !math.IsNaN(float64(x)) && !math.IsInf(float64(x), 0)
}

// SolveQuadratic solves a·t² + b·t + c = 0
// Returns false when the discriminant is negative
func SolveQuadratic(a, b, c float32) (t1, t2 float32, ok bool) {
	discr := b*b - 4*a*c
	if discr < 0 {
		return 0, 0, false
	}
	discr = Sqrt(discr)
	invA := -0.5 / a
	return (b + discr) * invA, (b - discr) * invA, true
}

// NormalizeSafe returns v scaled to unit length, or fallback when v is (near) zero
func NormalizeSafe(v mgl32.Vec3, fallback mgl32.Vec3) mgl32.Vec3 {
	lsq := v.LenSqr()
	if lsq <= 1e-12 {
		return fallback
	}
	return v.Mul(1 / Sqrt(lsq))
}

// Project returns the component of v along the unit vector n
func Project(v, n mgl32.Vec3) mgl32.Vec3 {
	return n.Mul(v.Dot(n))
}

// Tangential removes the component of v along the unit vector n
func Tangential(v, n mgl32.Vec3) mgl32.Vec3 {
	return v.Sub(n.Mul(v.Dot(n)))
}
