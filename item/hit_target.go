package item

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lixenwraith/pinball/event"
	"github.com/lixenwraith/pinball/parameter"
	"github.com/lixenwraith/pinball/physics"
	"github.com/lixenwraith/pinball/state"
	"github.com/lixenwraith/pinball/vmath"
)

type HitTargetData struct {
	Name string `toml:"name,required"`
	// Position is the centre of the target's base
	Position mgl32.Vec2 `toml:"position,required"`
	Width    float32    `toml:"width"`
	Depth    float32    `toml:"depth"`
	Height   float32    `toml:"height"`
	// Rotation in degrees around z, 0 faces +y
	Rotation  float32  `toml:"rotation"`
	Drop      bool     `toml:"drop"`
	Threshold float32  `toml:"threshold"`
	Material  Material `toml:"material"`
	// Skin names the render material and texture
	Skin     string `toml:"skin"`
	Texture  string `toml:"texture"`
	Dropped  bool   `toml:"dropped"`
	Disabled bool   `toml:"disabled"`
}

// HitTarget is a standing or drop target
// A drop target ignores hits while moving or down and is not hit tested while down
type HitTarget struct {
	base
	drop    bool
	objs    []physics.HitObject
	live    *state.HitTargetState
	dropped bool
	// moving is -1 while dropping, +1 while raising
	moving float32
	// wobble is set by a hit on a standing target until the tilt settles
	wobble bool
}

func NewHitTarget(d HitTargetData, sink event.Sink) (*HitTarget, error) {
	if d.Width <= 0 {
		return nil, fmt.Errorf("hit target %s: width %v: %w", d.Name, d.Width, ErrGeometry)
	}
	if d.Height <= 0 {
		d.Height = parameter.DropTargetLimit
	}
	if d.Depth <= 0 {
		d.Depth = 4
	}
	t := &HitTarget{base: newBase(d.Name, sink), drop: d.Drop}

	rad := mgl32.DegToRad(d.Rotation)
	right := mgl32.Vec2{vmath.Cos(rad), vmath.Sin(rad)}.Mul(d.Width / 2)
	front := mgl32.Vec2{-vmath.Sin(rad), vmath.Cos(rad)}.Mul(d.Depth / 2)
	fl := d.Position.Add(front).Sub(right)
	fr := d.Position.Add(front).Add(right)
	bl := d.Position.Sub(front).Sub(right)
	br := d.Position.Sub(front).Add(right)

	// faces are wound so each normal points away from the body
	faces := []*physics.LineSeg{
		physics.NewLineSeg(fl, fr, 0, d.Height),
		physics.NewLineSeg(br, bl, 0, d.Height),
	}
	for _, f := range faces {
		t.objs = append(t.objs, f)
	}
	for _, c := range []mgl32.Vec2{fl, fr, bl, br} {
		t.objs = append(t.objs, physics.NewLineZ(c, 0, d.Height))
	}
	// top edges catch balls dropping onto the target
	top := func(a, b mgl32.Vec2) physics.HitObject {
		return physics.NewLine3D(mgl32.Vec3{a[0], a[1], d.Height}, mgl32.Vec3{b[0], b[1], d.Height})
	}
	t.objs = append(t.objs, top(fl, fr), top(bl, br))

	for _, o := range t.objs {
		bind(o, d.Material, d.Threshold, t.events, physics.TypeHitTarget)
		o.Base().Enabled = !d.Disabled
	}
	t.events.OnCollision = t.onCollision
	t.events.AbortHitTest = func() bool { return t.drop && t.dropped }

	t.live = state.ClaimHitTargetState(d.Name, 0, 0, d.Skin, d.Texture, true)
	if d.Drop && d.Dropped {
		t.dropped = true
		t.live.ZOffset = -parameter.DropTargetLimit
	}
	return t, nil
}

func (t *HitTarget) onCollision(obj physics.HitObject, ball *physics.Ball, _ float32) {
	if t.drop && (t.dropped || t.moving != 0) {
		return
	}
	obj.Base().FireHitEvent(ball)
	if t.drop {
		t.moving = -1
		return
	}
	t.wobble = true
	t.live.XRotation = parameter.HitTargetMaxRotation
}

// SetDropped drops or raises a drop target; ignored for standing targets
func (t *HitTarget) SetDropped(down bool) {
	if !t.drop || down == t.dropped {
		return
	}
	if down {
		t.moving = -1
		return
	}
	// collidable again at once so a ball over the slot is pushed away while it rises
	t.dropped = false
	t.moving = 1
}

func (t *HitTarget) IsDropped() bool { return t.dropped }

func (t *HitTarget) HitObjects() []physics.HitObject { return t.objs }

func (t *HitTarget) State() state.ItemState { return t.live }

func (t *HitTarget) Update(_ int64, dtMsec float32) {
	if t.wobble {
		t.live.XRotation = approach(t.live.XRotation, 0, parameter.HitTargetRotationSpeed*dtMsec)
		t.wobble = t.live.XRotation != 0
	}
	if t.moving == 0 {
		return
	}
	t.live.ZOffset += t.moving * parameter.DropTargetSpeed * dtMsec
	switch {
	case t.moving < 0 && t.live.ZOffset <= -parameter.DropTargetLimit:
		t.live.ZOffset = -parameter.DropTargetLimit
		t.moving = 0
		t.dropped = true
		t.events.FireVoidEventParm(event.KindTargetEventsDropped, 1)
	case t.moving > 0 && t.live.ZOffset >= 0:
		t.live.ZOffset = 0
		t.moving = 0
		t.events.FireVoidEventParm(event.KindTargetEventsRaised, 0)
	}
}

func (t *HitTarget) ApplyState(r Renderer, old state.ItemState) {
	o, _ := old.(*state.HitTargetState)
	if o == nil || o.ZOffset != t.live.ZOffset || o.XRotation != t.live.XRotation {
		m := mgl32.Translate3D(0, 0, t.live.ZOffset).Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(t.live.XRotation)))
		r.SetTransform(t.name, m)
	}
	if o == nil || o.Material != t.live.Material || o.Texture != t.live.Texture {
		r.SetMaterial(t.name, t.live.Material, t.live.Texture)
	}
	if o == nil || o.Visible != t.live.Visible {
		r.SetVisible(t.name, t.live.Visible)
	}
}

func (t *HitTarget) Release() { t.live.Release() }
