package physics

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lixenwraith/pinball/parameter"
	"github.com/lixenwraith/pinball/vmath"
)

// Collide3DWall reflects the ball off a wall with normal n
// hitDistance is the signed surface distance reported by the hit test, negative when penetrating
func (b *Ball) Collide3DWall(n mgl32.Vec3, hitDistance float32, mat Material) {
	dot := b.Hit.Vel.Dot(n)
	if dot >= -parameter.LowNormalVelocity {
		if dot > parameter.LowNormalVelocity {
			return
		}
		if hitDistance < -parameter.Embedded {
			dot = -parameter.EmbedShot
		} else {
			return
		}
	}

	hdist := -parameter.DisplacementGain * hitDistance
	if hdist > 1e-4 {
		if hdist > parameter.DisplacementLimit {
			hdist = parameter.DisplacementLimit
		}
		b.State.Pos = b.State.Pos.Add(n.Mul(hdist))
	}

	elasticity := mat.Elasticity
	if mat.ElasticityFalloff > 0 {
		ihit := -dot / parameter.ElasticityFalloffSpeed
		elasticity /= 1 + mat.ElasticityFalloff*ihit
	}

	reactionImpulse := b.Data.Mass * vmath.Abs(dot) * (1 + elasticity)
	b.Hit.Vel = b.Hit.Vel.Sub(n.Mul((1 + elasticity) * dot))

	// Coulomb friction bounded by the normal impulse
	surfP := n.Mul(-b.Data.Radius)
	surfVel := b.SurfaceVelocity(surfP)
	slip := vmath.Tangential(surfVel, n)
	if slipSpeed := slip.Len(); slipSpeed > parameter.Precision {
		tangent := slip.Mul(1 / slipSpeed)
		cp := surfP.Cross(tangent)
		kt := b.invMass + tangent.Dot(cp.Mul(1/b.inertia).Cross(surfP))
		maxFric := mat.Friction * reactionImpulse
		jt := vmath.Clamp(-slipSpeed/kt, -maxFric, maxFric)
		if vmath.IsFinite(jt) {
			b.applySurfaceImpulse(cp.Mul(jt), tangent.Mul(jt))
		}
	}

	b.scatter(mat.Scatter, -dot)
}

// scatter rotates the velocity in the xy plane by a random angle peaking at the scatter angle
func (b *Ball) scatter(angle, speed float32) {
	if angle < 0 {
		angle = b.env.HardScatter
	}
	angle *= b.env.Difficulty
	if speed <= parameter.MinScatterSpeed || angle <= 1e-5 {
		return
	}
	s := b.env.Rand.FloatM11()
	s *= (1 - s*s) * parameter.ScatterShape * angle
	rsin, rcos := vmath.Sin(s), vmath.Cos(s)
	vx, vy := b.Hit.Vel[0], b.Hit.Vel[1]
	b.Hit.Vel[0] = vx*rcos - vy*rsin
	b.Hit.Vel[1] = vy*rcos + vx*rsin
}

// HandleStaticContact keeps a resting ball on the surface and applies rolling friction
func (b *Ball) HandleStaticContact(coll *CollisionEvent, friction, dtime float32) {
	n := coll.HitNormal
	normVel := b.Hit.Vel.Dot(n)
	// small positive margin lets balls pressed by rubbers settle
	if normVel > 0.025 && !coll.HitFlag {
		return
	}
	b.Hit.Vel = b.Hit.Vel.Sub(n.Mul(normVel))
	b.ApplyFriction(n, dtime, friction)
}

// ApplyFriction applies static or dynamic friction against the surface with normal n for dtime
func (b *Ball) ApplyFriction(n mgl32.Vec3, dtime, fricCoeff float32) {
	surfP := n.Mul(-b.Data.Radius)
	surfVel := b.SurfaceVelocity(surfP)
	slip := vmath.Tangential(surfVel, n)
	maxFric := fricCoeff * b.Data.Mass * -b.env.Gravity.Dot(n)
	if maxFric <= 0 {
		return
	}

	var slipDir mgl32.Vec3
	var fric float32
	if slipSpeed := slip.Len(); slipSpeed < parameter.Precision {
		// static: cancel the tangential surface acceleration within the friction cone
		surfAcc := b.SurfaceAcceleration(surfP)
		slipAcc := vmath.Tangential(surfAcc, n)
		if slipAcc.LenSqr() < 1e-6 {
			return
		}
		slipDir = slipAcc.Normalize()
		cp := surfP.Cross(slipDir)
		denom := b.invMass + slipDir.Dot(cp.Mul(1/b.inertia).Cross(surfP))
		fric = vmath.Clamp(-slipDir.Dot(surfAcc)/denom, -maxFric, maxFric)
	} else {
		slipDir = slip.Mul(1 / slipSpeed)
		fric = -maxFric
	}
	if !vmath.IsFinite(fric) {
		return
	}
	cp := surfP.Cross(slipDir)
	b.applySurfaceImpulse(cp.Mul(dtime*fric), slipDir.Mul(dtime*fric))
}
