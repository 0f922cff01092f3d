package item

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lixenwraith/pinball/event"
	"github.com/lixenwraith/pinball/parameter"
	"github.com/lixenwraith/pinball/physics"
	"github.com/lixenwraith/pinball/state"
)

type LightData struct {
	Name   string     `toml:"name,required"`
	Center mgl32.Vec2 `toml:"center"`
	On     bool       `toml:"on"`
}

// Light fades between off and on; it has no colliders
type Light struct {
	base
	center mgl32.Vec2
	target float32
	live   *state.LightState
}

func NewLight(d LightData, sink event.Sink) (*Light, error) {
	l := &Light{base: newBase(d.Name, sink), center: d.Center}
	l.SetOn(d.On)
	l.live = state.ClaimLightState(d.Name, l.target)
	return l, nil
}

func (l *Light) Center() mgl32.Vec2 { return l.center }

func (l *Light) SetOn(on bool) {
	l.target = 0
	if on {
		l.target = 1
	}
}

func (l *Light) HitObjects() []physics.HitObject { return nil }

func (l *Light) State() state.ItemState { return l.live }

func (l *Light) Update(_ int64, dtMsec float32) {
	l.live.Intensity = approach(l.live.Intensity, l.target, parameter.LightFadeSpeed*dtMsec)
}

func (l *Light) ApplyState(r Renderer, old state.ItemState) {
	if o, ok := old.(*state.LightState); ok && o != nil && o.Intensity == l.live.Intensity {
		return
	}
	r.SetIntensity(l.name, l.live.Intensity)
}

func (l *Light) Release() { l.live.Release() }
