package physics

// CollisionType tags a hit object for behaviour dispatch in response code
// Shape constructors set the shape tag; items may retag (e.g. Line3D edges of a primitive)
type CollisionType uint8

const (
	TypeUnknown CollisionType = iota
	TypePlane
	TypeLine
	TypeLineZ
	TypeLine3D
	TypePoint
	TypeCircle
	TypeBall
	TypeBumper
	TypeTrigger
	TypeSlingshot
	TypePrimitive
	TypeHitTarget
	TypeKicker
)

var collisionTypeNames = [...]string{
	TypeUnknown:   "Unknown",
	TypePlane:     "Plane",
	TypeLine:      "Line",
	TypeLineZ:     "LineZ",
	TypeLine3D:    "Line3D",
	TypePoint:     "Point",
	TypeCircle:    "Circle",
	TypeBall:      "Ball",
	TypeBumper:    "Bumper",
	TypeTrigger:   "Trigger",
	TypeSlingshot: "Slingshot",
	TypePrimitive: "Primitive",
	TypeHitTarget: "HitTarget",
	TypeKicker:    "Kicker",
}

func (t CollisionType) String() string {
	if int(t) < len(collisionTypeNames) {
		return collisionTypeNames[t]
	}
	return "Unknown"
}
