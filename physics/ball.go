package physics

import (
	"strconv"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
)

var ballIDs atomic.Uint64

// BallData is fixed at creation
type BallData struct {
	Radius float32
	Mass   float32
}

// BallState is the externally observable placement of a ball
type BallState struct {
	Pos         mgl32.Vec3
	Orientation mgl32.Mat3
}

// BallHit is the dynamic state touched by collision response
type BallHit struct {
	Vel             mgl32.Vec3
	AngularMomentum mgl32.Vec3

	// EventPos is where the ball last fired a hit event
	EventPos mgl32.Vec3

	// Coll is the winning collision of the current cycle
	Coll CollisionEvent

	// volumes lists the non-rigid objects (triggers) the ball is inside
	volumes []HitObject
}

// Ball owns its state, dynamic state and mover
// Hit objects only ever hold a ball for the duration of one call
type Ball struct {
	id    uint64
	Data  BallData
	State BallState
	Hit   BallHit

	// Frozen balls neither move nor hit test; a kicker holds its ball this way
	Frozen bool

	env     *Env
	mover   BallMover
	target  *BallTarget
	invMass float32
	inertia float32
}

// NewBall creates a ball with a process-unique id
func NewBall(data BallData, pos, vel mgl32.Vec3, env *Env) *Ball {
	b := &Ball{
		id:   ballIDs.Add(1) - 1,
		Data: data,
		State: BallState{
			Pos:         pos,
			Orientation: mgl32.Ident3(),
		},
		Hit: BallHit{
			Vel:      vel,
			EventPos: mgl32.Vec3{-10000, -10000, -10000},
		},
		env:     env,
		invMass: 1 / data.Mass,
		inertia: 2.0 / 5.0 * data.Radius * data.Radius * data.Mass,
	}
	b.mover = BallMover{ball: b}
	b.target = newBallTarget(b)
	return b
}

func (b *Ball) ID() uint64 { return b.id }

func (b *Ball) Name() string { return "Ball" + strconv.FormatUint(b.id, 10) }

func (b *Ball) Env() *Env { return b.env }

func (b *Ball) Mover() *BallMover { return &b.mover }

// Target exposes the ball as a collider for other balls
func (b *Ball) Target() *BallTarget { return b.target }

func (b *Ball) InvMass() float32 { return b.invMass }

func (b *Ball) AngularVelocity() mgl32.Vec3 {
	return b.Hit.AngularMomentum.Mul(1 / b.inertia)
}

// SurfaceVelocity is the velocity of the surface point surfP, relative to the centre
func (b *Ball) SurfaceVelocity(surfP mgl32.Vec3) mgl32.Vec3 {
	return b.Hit.Vel.Add(b.AngularVelocity().Cross(surfP))
}

// SurfaceAcceleration includes gravity and centripetal terms; there are no external torques
func (b *Ball) SurfaceAcceleration(surfP mgl32.Vec3) mgl32.Vec3 {
	w := b.AngularVelocity()
	return b.env.Gravity.Mul(b.invMass).Add(w.Cross(w.Cross(surfP)))
}

func (b *Ball) applySurfaceImpulse(rotI, impulse mgl32.Vec3) {
	b.Hit.Vel = b.Hit.Vel.Add(impulse.Mul(b.invMass))
	b.Hit.AngularMomentum = b.Hit.AngularMomentum.Add(rotI)
}

// InVolume reports whether the ball is inside the non-rigid object obj
func (b *Ball) InVolume(obj HitObject) bool {
	return b.volumeIndex(obj) >= 0
}

func (b *Ball) volumeIndex(obj HitObject) int {
	for i, o := range b.Hit.volumes {
		if o == obj {
			return i
		}
	}
	return -1
}

func (b *Ball) enterVolume(obj HitObject) {
	b.Hit.volumes = append(b.Hit.volumes, obj)
}

// volume is a non-rigid collider that counts the balls inside it
type volume interface {
	vacate(b *Ball)
}

// Vacate takes the ball out of every volume it occupies without raising Unhit
func (b *Ball) Vacate() {
	for _, o := range b.Hit.volumes {
		if v, ok := o.(volume); ok {
			v.vacate(b)
		}
	}
	clear(b.Hit.volumes)
	b.Hit.volumes = b.Hit.volumes[:0]
}

func (b *Ball) leaveVolume(i int) {
	last := len(b.Hit.volumes) - 1
	b.Hit.volumes[i] = b.Hit.volumes[last]
	b.Hit.volumes[last] = nil
	b.Hit.volumes = b.Hit.volumes[:last]
}
