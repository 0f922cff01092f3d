package item

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lixenwraith/pinball/event"
	"github.com/lixenwraith/pinball/parameter"
	"github.com/lixenwraith/pinball/physics"
	"github.com/lixenwraith/pinball/state"
)

type TriggerData struct {
	Name   string     `toml:"name,required"`
	Center mgl32.Vec2 `toml:"center,required"`
	Radius float32    `toml:"radius"`
	Height float32    `toml:"height"`
	// Depth is how far the wire sinks while a ball rolls over it
	Depth    float32 `toml:"depth"`
	Disabled bool    `toml:"disabled"`
}

// Trigger raises Hit on entry and Unhit on exit without deflecting the ball
type Trigger struct {
	base
	circle *physics.TriggerCircle
	depth  float32
	live   *state.TriggerState
}

func NewTrigger(d TriggerData, sink event.Sink) (*Trigger, error) {
	if d.Radius <= 0 {
		return nil, fmt.Errorf("trigger %s: radius %v: %w", d.Name, d.Radius, ErrGeometry)
	}
	if d.Height <= 0 {
		d.Height = 2 * parameter.BallRadius
	}
	t := &Trigger{base: newBase(d.Name, sink), depth: d.Depth}
	t.circle = physics.NewTriggerCircle(d.Center, d.Radius, 0, d.Height)
	t.circle.Events = t.events
	t.circle.HitEnabled = !d.Disabled
	t.live = state.ClaimTriggerState(d.Name, 0)
	return t, nil
}

func (t *Trigger) HitObjects() []physics.HitObject { return []physics.HitObject{t.circle} }

func (t *Trigger) State() state.ItemState { return t.live }

// SetEnabled gates events; balls already inside are still released normally
func (t *Trigger) SetEnabled(on bool) { t.circle.HitEnabled = on }

// Covers reports whether a ball of radius r at pos overlaps the trigger, ignoring height
func (t *Trigger) Covers(pos mgl32.Vec3, r float32) bool {
	d := mgl32.Vec2{pos[0], pos[1]}.Sub(t.circle.Center)
	return d.Len() <= t.circle.Radius+r
}

func (t *Trigger) Update(_ int64, dtMsec float32) {
	var target float32
	if t.circle.Occupied() {
		target = -t.depth
	}
	t.live.HeightOffset = approach(t.live.HeightOffset, target, parameter.TriggerAnimSpeed*dtMsec)
}

func (t *Trigger) ApplyState(r Renderer, old state.ItemState) {
	if o, ok := old.(*state.TriggerState); ok && o != nil && o.HeightOffset == t.live.HeightOffset {
		return
	}
	r.SetTransform(t.name, mgl32.Translate3D(0, 0, t.live.HeightOffset))
}

func (t *Trigger) Release() { t.live.Release() }
