// Package item holds the table elements: their colliders, live state and animation
package item

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lixenwraith/pinball/event"
	"github.com/lixenwraith/pinball/physics"
	"github.com/lixenwraith/pinball/state"
)

// Renderer receives the visual consequences of state changes
type Renderer interface {
	SetTransform(name string, m mgl32.Mat4)
	SetVisible(name string, visible bool)
	SetMaterial(name, material, texture string)
	SetIntensity(name string, intensity float32)
}

// Item is one table element
type Item interface {
	Name() string
	// HitObjects returns the colliders the item owns; empty for decorative items
	HitObjects() []physics.HitObject
	// State returns the live state, nil for items without runtime-visible fields
	// The item owns it; snapshots are taken with Clone
	State() state.ItemState
	// ApplyState pushes the fields that changed since old to r; old may be nil
	ApplyState(r Renderer, old state.ItemState)
	// Update advances animations to nowMsec
	Update(nowMsec int64, dtMsec float32)
	// Init raises the Init event once the table is assembled
	Init()
	Events() *physics.EventProxy
	// Release returns the live state to its pool; the item must not be used afterwards
	Release()
}

type base struct {
	name   string
	events *physics.EventProxy
}

func newBase(name string, sink event.Sink) base {
	return base{name: name, events: physics.NewEventProxy(name, sink)}
}

func (b *base) Name() string                  { return b.name }
func (b *base) Events() *physics.EventProxy { return b.events }

func (b *base) Init() {
	b.events.FireVoidEvent(event.KindGameEventsInit)
}

// Material is the physics material of a collider as written in the table file
type Material struct {
	Elasticity        float32 `toml:"elasticity"`
	ElasticityFalloff float32 `toml:"elasticity_falloff"`
	Friction          float32 `toml:"friction"`
	Scatter           float32 `toml:"scatter"`
}

func (m Material) physics() physics.Material {
	return physics.Material{
		Elasticity:        m.Elasticity,
		ElasticityFalloff: m.ElasticityFalloff,
		Friction:          m.Friction,
		Scatter:           mgl32.DegToRad(m.Scatter),
	}
}

// DefaultMaterial is applied before a table file overrides fields
func DefaultMaterial() Material {
	return Material{Elasticity: 0.3, Friction: 0.3}
}

// bind sets the shared collider attributes and links the owner's proxy
func bind(obj physics.HitObject, mat Material, threshold float32, events *physics.EventProxy, t physics.CollisionType) {
	hb := obj.Base()
	hb.Material = mat.physics()
	hb.Threshold = threshold
	hb.Events = events
	hb.SetType(t)
}

// approach moves cur toward target by at most step
func approach(cur, target, step float32) float32 {
	switch {
	case cur < target:
		return min(cur+step, target)
	case cur > target:
		return max(cur-step, target)
	}
	return cur
}
