package item

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lixenwraith/pinball/event"
	"github.com/lixenwraith/pinball/parameter"
	"github.com/lixenwraith/pinball/physics"
	"github.com/lixenwraith/pinball/state"
)

type BumperData struct {
	Name      string     `toml:"name,required"`
	Center    mgl32.Vec2 `toml:"center,required"`
	Radius    float32    `toml:"radius"`
	Height    float32    `toml:"height"`
	Force     float32    `toml:"force"`
	Threshold float32    `toml:"threshold"`
	HitEvent  *bool      `toml:"hit_event"`
	Material  Material   `toml:"material"`
}

// Bumper kicks the ball away and drops its ring on each hard hit
type Bumper struct {
	base
	circle *physics.BumperCircle
	live   *state.BumperState
	// ringDir is -1 while the ring travels down, +1 while it returns
	ringDir float32
}

func NewBumper(d BumperData, sink event.Sink) (*Bumper, error) {
	if d.Radius <= 0 {
		return nil, fmt.Errorf("bumper %s: radius %v: %w", d.Name, d.Radius, ErrGeometry)
	}
	if d.Height <= 0 {
		d.Height = 2 * parameter.BallRadius
	}
	b := &Bumper{base: newBase(d.Name, sink)}
	b.circle = physics.NewBumperCircle(d.Center, d.Radius, 0, d.Height, d.Force)
	bind(b.circle, d.Material, d.Threshold, b.events, physics.TypeBumper)
	if d.HitEvent != nil {
		b.circle.HitEvent = *d.HitEvent
	}
	b.live = state.ClaimBumperState(d.Name, 0, mgl32.Vec3{})
	return b, nil
}

func (b *Bumper) HitObjects() []physics.HitObject { return []physics.HitObject{b.circle} }

func (b *Bumper) State() state.ItemState { return b.live }

func (b *Bumper) Update(_ int64, dtMsec float32) {
	if hit, pos := b.circle.Animated(); hit {
		b.ringDir = -1
		b.live.BallHitPosition = pos
	}
	if b.ringDir == 0 {
		return
	}
	b.live.RingOffset += b.ringDir * parameter.BumperRingSpeed * dtMsec
	switch {
	case b.live.RingOffset <= -parameter.BumperRingDrop:
		b.live.RingOffset = -parameter.BumperRingDrop
		b.ringDir = 1
	case b.live.RingOffset >= 0:
		b.live.RingOffset = 0
		b.ringDir = 0
	}
}

func (b *Bumper) ApplyState(r Renderer, old state.ItemState) {
	if o, ok := old.(*state.BumperState); ok && o != nil && o.RingOffset == b.live.RingOffset {
		return
	}
	r.SetTransform(b.name+".ring", mgl32.Translate3D(0, 0, b.live.RingOffset))
}

func (b *Bumper) Release() { b.live.Release() }
