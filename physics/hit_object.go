package physics

import (
	"github.com/lixenwraith/pinball/event"
	"github.com/lixenwraith/pinball/parameter"
)

// HitObject is one physical collider
//
// HitTest writes only into coll and returns the time of impact within [0, dtime], or NoHit.
// A result of exactly 0 with coll.IsContact set denotes resting contact, resolved every cycle.
// Collide mutates the ball (and the object's own transient fields) for the winning event.
type HitObject interface {
	HitTest(ball *Ball, dtime float32, coll *CollisionEvent) float32
	Collide(coll *CollisionEvent)
	Contact(coll *CollisionEvent, dtime float32)
	CalcHitBBox()
	Type() CollisionType
	Base() *HitBase
}

// Material holds the response coefficients shared by wall-like colliders
type Material struct {
	Elasticity        float32
	ElasticityFalloff float32
	Friction          float32
	// Scatter in radians; negative selects the global hard scatter
	Scatter float32
}

// HitBase carries the attributes common to every collider
// Events is a non-owning link to the owning item's proxy; nil for anonymous geometry
type HitBase struct {
	Material
	Enabled   bool
	Threshold float32
	BBox      BBox
	ObjType   CollisionType
	Events    *EventProxy
}

func newHitBase(t CollisionType) HitBase {
	return HitBase{Enabled: true, ObjType: t}
}

func (h *HitBase) Base() *HitBase       { return h }
func (h *HitBase) Type() CollisionType { return h.ObjType }

// SetType retags the collider for its owning item kind
func (h *HitBase) SetType(t CollisionType) { h.ObjType = t }

// Contact applies resting contact response
func (h *HitBase) Contact(coll *CollisionEvent, dtime float32) {
	coll.Ball.HandleStaticContact(coll, h.Friction, dtime)
}

// FireHitEvent raises Hit once per new ball location
// The ball's event position is updated on every call so a resting ball never re-fires
func (h *HitBase) FireHitEvent(ball *Ball) {
	if h.Events == nil || !h.Enabled {
		return
	}
	distLs := ball.Hit.EventPos.Sub(ball.State.Pos).LenSqr()
	ball.Hit.EventPos = ball.State.Pos
	if distLs > parameter.EventDistanceSq {
		h.Events.FireGroupEvent(event.KindHitEventsHit)
	}
}

// reportHit routes an impact with approach speed dot through the owner's proxy
func (h *HitBase) reportHit(self HitObject, ball *Ball, dot float32) {
	if h.Events == nil || dot < h.Threshold {
		return
	}
	h.Events.CurrentHitThreshold = dot
	if h.Events.OnCollision != nil {
		h.Events.OnCollision(self, ball, dot)
		return
	}
	h.FireHitEvent(ball)
}

// Collidable reports whether obj may be hit tested now
// Read on every test, hooks may flip it mid-cycle
func Collidable(obj HitObject) bool {
	b := obj.Base()
	return b.Enabled && !b.Events.ShouldAbortHitTest()
}
