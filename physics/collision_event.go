package physics

import "github.com/go-gl/mathgl/mgl32"

// NoHit is returned by HitTest when no contact occurs within the window
const NoHit float32 = -1

// CollisionEvent describes one candidate or winning contact
// Lives for one physics cycle; the engine keeps only the winner per ball
type CollisionEvent struct {
	Ball *Ball
	Obj  HitObject

	HitNormal   mgl32.Vec3
	HitDistance float32
	HitTime     float32

	// HitOrgNormalVelocity is the normal speed at the moment a contact was detected
	HitOrgNormalVelocity float32

	IsContact bool

	// HitFlag is set by non-rigid objects when the ball is leaving (unhit)
	HitFlag bool
}

// Reset prepares the event for a new candidate test on ball within window
func (c *CollisionEvent) Reset(ball *Ball, window float32) {
	*c = CollisionEvent{Ball: ball, HitTime: window}
}
