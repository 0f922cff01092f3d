package item

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lixenwraith/pinball/event"
	"github.com/lixenwraith/pinball/parameter"
	"github.com/lixenwraith/pinball/physics"
	"github.com/lixenwraith/pinball/state"
)

type KickerData struct {
	Name      string     `toml:"name,required"`
	Center    mgl32.Vec2 `toml:"center,required"`
	Radius    float32    `toml:"radius"`
	HitHeight float32    `toml:"hit_height"`
	// FallThrough kickers report Hit and Unhit but never hold the ball
	FallThrough bool `toml:"fall_through"`
	// LegacyMode captures only on the inner part of the radius
	LegacyMode bool `toml:"legacy_mode"`
	Disabled   bool `toml:"disabled"`
}

// Kicker holds a ball entering it, raising Hit, until the table kicks it out
type Kicker struct {
	base
	circle *physics.KickerCircle
	live   *state.KickerState
}

func NewKicker(d KickerData, sink event.Sink) (*Kicker, error) {
	if d.Radius <= 0 {
		return nil, fmt.Errorf("kicker %s: radius %v: %w", d.Name, d.Radius, ErrGeometry)
	}
	if d.HitHeight <= 0 {
		d.HitHeight = parameter.KickerHitHeight
	}
	radius := d.Radius
	if d.LegacyMode {
		if d.FallThrough {
			radius *= parameter.KickerLegacyFallThroughRadius
		} else {
			radius *= parameter.KickerLegacyRadius
		}
	}
	k := &Kicker{base: newBase(d.Name, sink)}
	k.circle = physics.NewKickerCircle(d.Center, radius, 0, d.HitHeight)
	k.circle.Events = k.events
	k.circle.Enabled = !d.Disabled
	k.circle.FallThrough = d.FallThrough
	k.live = state.ClaimKickerState(d.Name, false)
	return k, nil
}

func (k *Kicker) HitObjects() []physics.HitObject { return []physics.HitObject{k.circle} }

func (k *Kicker) State() state.ItemState { return k.live }

// SetEnabled stops or resumes capturing; a held ball stays until kicked
func (k *Kicker) SetEnabled(on bool) { k.circle.Enabled = on }

// Kick releases the held ball, see physics.KickerCircle.Kick
func (k *Kicker) Kick(angle, speed, inclination float32) *physics.Ball {
	return k.circle.Kick(angle, speed, inclination)
}

// Capture holds a ball just created at BallCreationPosition, without raising Hit
func (k *Kicker) Capture(b *physics.Ball) bool { return k.circle.Capture(b) }

// BallCreationPosition is where a ball of radius r is created inside the kicker
func (k *Kicker) BallCreationPosition(r float32) mgl32.Vec3 {
	return mgl32.Vec3{k.circle.Center[0], k.circle.Center[1], k.circle.ZLow + r}
}

func (k *Kicker) Holding() bool { return k.circle.Held() != nil }

// Covers reports whether a ball of radius r at pos overlaps the capture circle, ignoring height
func (k *Kicker) Covers(pos mgl32.Vec3, r float32) bool {
	d := mgl32.Vec2{pos[0], pos[1]}.Sub(k.circle.Center)
	return d.Len() <= k.circle.Radius+r
}

func (k *Kicker) Update(int64, float32) {
	k.live.Holding = k.Holding()
}

func (k *Kicker) ApplyState(r Renderer, old state.ItemState) {
	if o, ok := old.(*state.KickerState); ok && o != nil && o.Holding == k.live.Holding {
		return
	}
	r.SetVisible(k.name+".held", k.live.Holding)
}

func (k *Kicker) Release() { k.live.Release() }
