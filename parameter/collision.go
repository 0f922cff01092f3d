package parameter

// Collision tolerances, in table units (1 unit ≈ 0.53mm) and engine time units (10ms)
const (
	// ContactVelocity bounds the normal speed treated as resting contact
	ContactVelocity float32 = 0.099
	// LowNormalVelocity bounds the normal speed treated as receding
	LowNormalVelocity float32 = 0.0001
	// Touch is the distance within which a slow ball is considered touching
	Touch float32 = 0.05
	// Precision is the slip speed below which static friction applies
	Precision float32 = 0.01
	// EndpointTolerance extends line segments past their endpoints
	EndpointTolerance float32 = 0
	// Embedded is the penetration depth treated as embedded for nearly receding balls
	Embedded float32 = 0
	// EmbedShot is the normal speed given to embedded balls
	EmbedShot float32 = 0.05

	// DisplacementGain scales penetration correction applied before wall response
	DisplacementGain float32 = 0.9
	// DisplacementLimit caps a single penetration correction
	DisplacementLimit float32 = 5

	// ElasticityFalloffSpeed normalises impact speed in the elasticity falloff curve
	ElasticityFalloffSpeed float32 = 18.53
	// ScatterShape scales the quadratic scatter distribution so its peak equals the scatter angle
	ScatterShape float32 = 2.59808
	// MinScatterSpeed is the reflected normal speed below which no scatter is applied
	MinScatterSpeed float32 = 1

	// BallBallRestitution is the fixed restitution of ball to ball impacts
	BallBallRestitution float32 = 0.8
	// BallEmbedLimit is the ball to ball overlap, in ball radii, beyond which no collision is reported
	BallEmbedLimit float32 = 2

	// EventDistanceSq is the squared distance a ball must travel before the same object fires again
	EventDistanceSq float32 = 0.25
)
