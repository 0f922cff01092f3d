package engine

import (
	"log"

	"github.com/Shopify/go-lua"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lixenwraith/pinball/event"
	"github.com/lixenwraith/pinball/item"
)

// coverer is an item that can tell which balls lie over it
type coverer interface {
	Covers(pos mgl32.Vec3, r float32) bool
}

// BindScript exposes the table API to s
// Handlers run inside the physics step, so changes apply to the rest of the current cycle
func (p *Player) BindScript(s *event.Script) {
	s.Register("SetLight", func(l *lua.State) int {
		name := lua.CheckString(l, 1)
		if lt, ok := p.byName[name].(*item.Light); ok {
			lt.SetOn(l.ToBoolean(2))
		} else {
			log.Printf("[script] SetLight: no light %q", name)
		}
		return 0
	})

	s.Register("SetDropped", func(l *lua.State) int {
		name := lua.CheckString(l, 1)
		if ht, ok := p.byName[name].(*item.HitTarget); ok {
			ht.SetDropped(l.ToBoolean(2))
		} else {
			log.Printf("[script] SetDropped: no hit target %q", name)
		}
		return 0
	})

	s.Register("IsDropped", func(l *lua.State) int {
		ht, ok := p.byName[lua.CheckString(l, 1)].(*item.HitTarget)
		l.PushBoolean(ok && ht.IsDropped())
		return 1
	})

	s.Register("SetEnabled", func(l *lua.State) int {
		name := lua.CheckString(l, 1)
		on := l.ToBoolean(2)
		switch it := p.byName[name].(type) {
		case *item.Trigger:
			it.SetEnabled(on)
		case *item.Surface:
			it.SetDisabled(!on)
		case *item.Kicker:
			it.SetEnabled(on)
		default:
			log.Printf("[script] SetEnabled: %q cannot be toggled", name)
		}
		return 0
	})

	s.Register("CreateBall", func(l *lua.State) int {
		pos := mgl32.Vec3{
			float32(lua.CheckNumber(l, 1)),
			float32(lua.CheckNumber(l, 2)),
			float32(lua.OptNumber(l, 3, 25)),
		}
		vel := mgl32.Vec3{
			float32(lua.OptNumber(l, 4, 0)),
			float32(lua.OptNumber(l, 5, 0)),
			float32(lua.OptNumber(l, 6, 0)),
		}
		b := p.CreateBall(pos, vel)
		l.PushString(p.BallName(b))
		return 1
	})

	s.Register("CreateBallIn", func(l *lua.State) int {
		name := lua.CheckString(l, 1)
		k, ok := p.byName[name].(*item.Kicker)
		if !ok {
			log.Printf("[script] CreateBallIn: no kicker %q", name)
			l.PushNil()
			return 1
		}
		l.PushString(p.BallName(p.CreateBallIn(k)))
		return 1
	})

	s.Register("Kick", func(l *lua.State) int {
		name := lua.CheckString(l, 1)
		k, ok := p.byName[name].(*item.Kicker)
		if !ok {
			log.Printf("[script] Kick: no kicker %q", name)
			l.PushBoolean(false)
			return 1
		}
		b := k.Kick(float32(lua.CheckNumber(l, 2)), float32(lua.CheckNumber(l, 3)), float32(lua.OptNumber(l, 4, 0)))
		l.PushBoolean(b != nil)
		return 1
	})

	s.Register("DestroyBalls", func(l *lua.State) int {
		name := lua.CheckString(l, 1)
		t, ok := p.byName[name].(coverer)
		if !ok {
			log.Printf("[script] DestroyBalls: no trigger or kicker %q", name)
			l.PushInteger(0)
			return 1
		}
		n := 0
		for _, b := range p.balls {
			if t.Covers(b.State.Pos, b.Data.Radius) {
				p.DestroyBall(b)
				n++
			}
		}
		l.PushInteger(n)
		return 1
	})

	s.Register("BallCount", func(l *lua.State) int {
		l.PushInteger(len(p.balls))
		return 1
	})

	s.Register("GameTime", func(l *lua.State) int {
		l.PushInteger(int(p.timeMsec))
		return 1
	})
}
