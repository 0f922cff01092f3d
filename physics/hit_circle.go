package physics

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lixenwraith/pinball/event"
	"github.com/lixenwraith/pinball/parameter"
	"github.com/lixenwraith/pinball/vmath"
)

// Circle is a vertical cylinder of Radius around Center between ZLow and ZHigh
type Circle struct {
	HitBase
	Center mgl32.Vec2
	Radius float32
	ZLow   float32
	ZHigh  float32
}

func NewCircle(center mgl32.Vec2, radius, zlow, zhigh float32) *Circle {
	c := &Circle{HitBase: newHitBase(TypeCircle), Center: center, Radius: radius, ZLow: zlow, ZHigh: zhigh}
	c.CalcHitBBox()
	return c
}

func (c *Circle) CalcHitBBox() {
	c.BBox = BBox{
		Left:   c.Center[0] - c.Radius,
		Right:  c.Center[0] + c.Radius,
		Top:    c.Center[1] - c.Radius,
		Bottom: c.Center[1] + c.Radius,
		ZLow:   c.ZLow,
		ZHigh:  c.ZHigh,
	}
}

func (c *Circle) HitTest(ball *Ball, dtime float32, coll *CollisionEvent) float32 {
	if !c.Enabled {
		return NoHit
	}
	return c.hitTestRadius(ball, dtime, coll, true, nil)
}

func (c *Circle) Collide(coll *CollisionEvent) {
	dot := coll.HitNormal.Dot(coll.Ball.Hit.Vel)
	coll.Ball.Collide3DWall(coll.HitNormal, coll.HitDistance, c.Material)
	c.reportHit(c, coll.Ball, -dot)
}

// hitTestRadius is the lateral swept test shared by rigid and volume circles
// volume is the non-rigid owner whose membership in the ball's volume set drives enter/leave
func (c *Circle) hitTestRadius(ball *Ball, dtime float32, coll *CollisionEvent, rigid bool, volume HitObject) float32 {
	br := ball.Data.Radius
	dist := mgl32.Vec2{ball.State.Pos[0] - c.Center[0], ball.State.Pos[1] - c.Center[1]}
	dv := mgl32.Vec2{ball.Hit.Vel[0], ball.Hit.Vel[1]}
	targetRadius := c.Radius + br

	bcddsq := dist.LenSqr()
	bcdd := vmath.Sqrt(bcddsq)
	if bcdd <= 1e-6 {
		return NoHit
	}
	b := dist.Dot(dv)
	bnv := b / bcdd
	if rigid && bnv > parameter.LowNormalVelocity {
		return NoHit
	}
	bnd := bcdd - targetRadius
	a := dv.LenSqr()

	var hittime float32
	isContact, isUnhit := false, false
	switch {
	case rigid && bnd < parameter.Touch:
		if bnd < -br {
			return NoHit
		}
		if vmath.Abs(bnv) <= parameter.ContactVelocity {
			isContact = true
		} else {
			hittime = vmath.Max(0, -bnd/bnv)
		}
	case !rigid && (bnd < 0) != ball.InVolume(volume):
		// inside without membership, or outside with it
		isUnhit = bnd > 0
	default:
		if (!rigid && bnd*bnv > 0) || a < 1e-8 {
			return NoHit
		}
		t1, t2, ok := vmath.SolveQuadratic(a, 2*b, bcddsq-targetRadius*targetRadius)
		if !ok {
			return NoHit
		}
		isUnhit = t1*t2 < 0
		hittime = nearestRoot(t1, t2)
	}
	if !vmath.IsFinite(hittime) || hittime < 0 || hittime > dtime {
		return NoHit
	}

	hitz := ball.State.Pos[2] + ball.Hit.Vel[2]*hittime
	if hitz+br*0.5 < c.ZLow || hitz-br*0.5 > c.ZHigh {
		return NoHit
	}

	hx := ball.State.Pos[0] + ball.Hit.Vel[0]*hittime - c.Center[0]
	hy := ball.State.Pos[1] + ball.Hit.Vel[1]*hittime - c.Center[1]
	coll.HitNormal = vmath.NormalizeSafe(mgl32.Vec3{hx, hy, 0}, mgl32.Vec3{0, 1, 0})
	if !rigid {
		coll.HitFlag = isUnhit
	}
	coll.IsContact = isContact
	if isContact {
		coll.HitOrgNormalVelocity = bnv
	}
	coll.HitDistance = bnd
	return hittime
}

// BumperCircle adds a velocity kick on hard hits
type BumperCircle struct {
	Circle
	Force    float32
	HitEvent bool

	// hit is latched on a kick and cleared by Animated
	hit    bool
	hitPos mgl32.Vec3
}

func NewBumperCircle(center mgl32.Vec2, radius, zlow, zhigh, force float32) *BumperCircle {
	c := &BumperCircle{Circle: *NewCircle(center, radius, zlow, zhigh), Force: force, HitEvent: true}
	c.ObjType = TypeBumper
	return c
}

func (c *BumperCircle) HitTest(ball *Ball, dtime float32, coll *CollisionEvent) float32 {
	if !c.Enabled {
		return NoHit
	}
	return c.hitTestRadius(ball, dtime, coll, true, nil)
}

func (c *BumperCircle) Collide(coll *CollisionEvent) {
	ball := coll.Ball
	dot := coll.HitNormal.Dot(ball.Hit.Vel)
	ball.Collide3DWall(coll.HitNormal, coll.HitDistance, c.Material)
	if !c.HitEvent || dot > -c.Threshold {
		return
	}
	ball.Hit.Vel = ball.Hit.Vel.Add(coll.HitNormal.Mul(c.Force))
	c.hit = true
	c.hitPos = ball.State.Pos
	if c.Events != nil {
		c.Events.CurrentHitThreshold = -dot
		c.Events.FireGroupEvent(event.KindHitEventsHit)
	}
}

// Animated returns and clears the pending kick, with the ball position at the kick
func (c *BumperCircle) Animated() (bool, mgl32.Vec3) {
	hit, pos := c.hit, c.hitPos
	c.hit = false
	return hit, pos
}

// TriggerCircle is a non-rigid circle reporting enter and leave
type TriggerCircle struct {
	Circle
	// HitEnabled gates events without removing the collider
	HitEnabled bool
	occupants  int
}

func NewTriggerCircle(center mgl32.Vec2, radius, zlow, zhigh float32) *TriggerCircle {
	c := &TriggerCircle{Circle: *NewCircle(center, radius, zlow, zhigh), HitEnabled: true}
	c.ObjType = TypeTrigger
	return c
}

func (c *TriggerCircle) HitTest(ball *Ball, dtime float32, coll *CollisionEvent) float32 {
	if !c.Enabled {
		return NoHit
	}
	return c.hitTestRadius(ball, dtime, coll, false, c)
}

func (c *TriggerCircle) Collide(coll *CollisionEvent) {
	if !c.HitEnabled {
		return
	}
	ball := coll.Ball
	i := ball.volumeIndex(c)
	// hit with no membership, or unhit with membership
	if coll.HitFlag == (i < 0) {
		return
	}
	ball.State.Pos = ball.State.Pos.Add(ball.Hit.Vel.Mul(parameter.StaticTime))
	if i < 0 {
		ball.enterVolume(c)
		c.occupants++
		if c.Events != nil {
			c.Events.FireGroupEvent(event.KindHitEventsHit)
		}
		return
	}
	ball.leaveVolume(i)
	c.occupants--
	if c.Events != nil {
		c.Events.FireGroupEvent(event.KindHitEventsUnhit)
	}
}

// Contact is a no-op, a trigger never supports the ball
func (c *TriggerCircle) Contact(*CollisionEvent, float32) {}

func (c *TriggerCircle) vacate(*Ball) { c.occupants-- }

// Occupied reports whether any ball is inside
func (c *TriggerCircle) Occupied() bool { return c.occupants > 0 }
