package physics

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lixenwraith/pinball/event"
	"github.com/lixenwraith/pinball/parameter"
	"github.com/lixenwraith/pinball/vmath"
)

// KickerCircle is a non-rigid circle that holds the first ball entering it until kicked
// A fall-through kicker reports enter and leave like a trigger and holds nothing
type KickerCircle struct {
	Circle
	FallThrough bool

	held      *Ball
	occupants int
}

func NewKickerCircle(center mgl32.Vec2, radius, zlow, zhigh float32) *KickerCircle {
	c := &KickerCircle{Circle: *NewCircle(center, radius, zlow, zhigh)}
	c.ObjType = TypeKicker
	return c
}

func (c *KickerCircle) HitTest(ball *Ball, dtime float32, coll *CollisionEvent) float32 {
	if !c.Enabled || c.held != nil {
		return NoHit
	}
	return c.hitTestRadius(ball, dtime, coll, false, c)
}

func (c *KickerCircle) Collide(coll *CollisionEvent) {
	c.doCollide(coll.Ball, coll.HitFlag, false)
}

// Contact is a no-op, the held ball is frozen
func (c *KickerCircle) Contact(*CollisionEvent, float32) {}

// Capture takes a ball created at the kicker without raising Hit
// It reports whether the ball is now held
func (c *KickerCircle) Capture(ball *Ball) bool {
	c.doCollide(ball, false, true)
	return c.held == ball
}

func (c *KickerCircle) doCollide(ball *Ball, unhit, newBall bool) {
	if c.held != nil {
		return
	}
	i := ball.volumeIndex(c)
	if unhit == (i < 0) {
		return
	}
	if unhit {
		ball.leaveVolume(i)
		c.occupants--
		if c.Events != nil {
			c.Events.FireGroupEvent(event.KindHitEventsUnhit)
		}
		return
	}

	ball.enterVolume(c)
	c.occupants++
	if !c.FallThrough {
		c.held = ball
		ball.Frozen = true
		ball.Hit.Vel = mgl32.Vec3{}
		ball.Hit.AngularMomentum = mgl32.Vec3{}
		ball.State.Pos = mgl32.Vec3{c.Center[0], c.Center[1], c.ZLow + ball.Data.Radius}
	}
	if !newBall && c.Events != nil {
		c.Events.FireGroupEvent(event.KindHitEventsHit)
	}
}

// Kick releases the held ball at speed toward angle, in degrees clockwise from up the table,
// tilted up by inclination degrees. It returns the released ball, or nil when nothing is held
// The ball keeps its membership and raises Unhit once it leaves the circle
func (c *KickerCircle) Kick(angle, speed, inclination float32) *Ball {
	b := c.held
	if b == nil {
		return nil
	}
	c.held = nil
	b.Frozen = false

	a := mgl32.DegToRad(angle)
	inc := mgl32.DegToRad(inclination)
	speedz := vmath.Sin(inc) * speed
	if speedz > 0 {
		speed *= vmath.Cos(inc)
	}
	b.Hit.Vel = mgl32.Vec3{vmath.Sin(a) * speed, -vmath.Cos(a) * speed, speedz}
	// lift off the centre so the exit is found on the next cycle
	b.State.Pos = b.State.Pos.Add(b.Hit.Vel.Mul(parameter.StaticTime))
	return b
}

func (c *KickerCircle) vacate(b *Ball) {
	c.occupants--
	if c.held == b {
		c.held = nil
		b.Frozen = false
	}
}

// Held returns the held ball, or nil
func (c *KickerCircle) Held() *Ball { return c.held }

// Occupied reports whether any ball is inside
func (c *KickerCircle) Occupied() bool { return c.occupants > 0 }
