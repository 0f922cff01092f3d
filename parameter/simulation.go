package parameter

import "time"

// Physics clock
const (
	// PhysicsStepTime is the wall time covered by one physics tick
	PhysicsStepTime = time.Millisecond
	// DefaultStepTime is the wall time of one engine time unit
	DefaultStepTime = 10 * time.Millisecond
	// PhysFactor converts a physics tick into engine time units
	PhysFactor = float32(PhysicsStepTime) / float32(DefaultStepTime)

	// StaticTime is the cycle duration below which a cycle counts as static
	StaticTime float32 = 0.005
	// StaticCounts is the number of static cycles tolerated per tick
	StaticCounts = 10

	// GravityConst converts table gravity setting to engine units
	GravityConst float32 = 1.81751
)

// Ball defaults
const (
	BallRadius float32 = 25
	BallMass   float32 = 1
)

// Item animation
const (
	// SlingshotAnimReset is how long the slingshot arm stays extended after firing
	SlingshotAnimReset = 100 * time.Millisecond
	// DropTargetLimit is the z travel of a drop target
	DropTargetLimit float32 = 52
	// DropTargetSpeed is the drop/raise speed in units per millisecond
	DropTargetSpeed float32 = 0.5
	// HitTargetMaxRotation is the x tilt in degrees of a standing target after a hit
	HitTargetMaxRotation float32 = 13
	// HitTargetRotationSpeed is the tilt return speed in degrees per millisecond
	HitTargetRotationSpeed float32 = 0.1
	// BumperRingSpeed is the ring travel in units per millisecond
	BumperRingSpeed float32 = 0.4
	// BumperRingDrop is how far the bumper ring travels down on a hit
	BumperRingDrop float32 = 45
	// TriggerAnimSpeed is the trigger wire travel in units per millisecond
	TriggerAnimSpeed float32 = 0.5
	// LightFadeSpeed is intensity change per millisecond
	LightFadeSpeed float32 = 0.01
)

// Kickers
const (
	// KickerHitHeight is the default height of the kicker capture cylinder
	KickerHitHeight float32 = 40
	// KickerLegacyRadius shrinks the capture circle of legacy kickers to its inner part
	KickerLegacyRadius float32 = 0.6
	// KickerLegacyFallThroughRadius is KickerLegacyRadius for fall-through kickers
	KickerLegacyFallThroughRadius float32 = 0.75
)

// State pools
const (
	// StatePoolCapacity is the number of records pre-allocated per state type
	StatePoolCapacity = 64
)

// Table defaults
const (
	PlayfieldElasticity float32 = 0.25
	PlayfieldFriction   float32 = 0.075
	// PlayfieldScatter in radians
	PlayfieldScatter float32 = 0
	// DrainDepth is how far below the playfield a ball may fall before it is removed
	DrainDepth float32 = 200
)
