package item

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lixenwraith/pinball/event"
	"github.com/lixenwraith/pinball/physics"
	"github.com/lixenwraith/pinball/state"
)

type PrimitiveData struct {
	Name     string     `toml:"name,required"`
	Position mgl32.Vec3 `toml:"position,required"`
	// Vertices are relative to Position
	Vertices  []mgl32.Vec3 `toml:"vertices,required"`
	Edges     [][2]int     `toml:"edges"`
	Threshold float32      `toml:"threshold"`
	Material  Material     `toml:"material"`
	// Collidable false keeps the primitive purely decorative
	Collidable *bool `toml:"collidable"`
}

// Primitive is static wire geometry hit along its edges and at its vertices
type Primitive struct {
	base
	objs []physics.HitObject
}

func NewPrimitive(d PrimitiveData, sink event.Sink) (*Primitive, error) {
	if len(d.Vertices) == 0 {
		return nil, fmt.Errorf("primitive %s: no vertices: %w", d.Name, ErrGeometry)
	}
	p := &Primitive{base: newBase(d.Name, sink)}
	if d.Collidable != nil && !*d.Collidable {
		return p, nil
	}

	world := make([]mgl32.Vec3, len(d.Vertices))
	for i, v := range d.Vertices {
		world[i] = d.Position.Add(v)
	}
	for _, e := range d.Edges {
		if e[0] < 0 || e[1] < 0 || e[0] >= len(world) || e[1] >= len(world) {
			return nil, fmt.Errorf("primitive %s: edge %v out of range: %w", d.Name, e, ErrGeometry)
		}
		a, b := world[e[0]], world[e[1]]
		if a.ApproxEqual(b) {
			continue
		}
		p.objs = append(p.objs, physics.NewLine3D(a, b))
	}
	for _, v := range world {
		p.objs = append(p.objs, physics.NewPoint(v))
	}
	for _, o := range p.objs {
		bind(o, d.Material, d.Threshold, p.events, physics.TypePrimitive)
	}
	return p, nil
}

func (p *Primitive) HitObjects() []physics.HitObject { return p.objs }

func (p *Primitive) State() state.ItemState { return nil }

func (p *Primitive) Update(int64, float32) {}

func (p *Primitive) ApplyState(Renderer, state.ItemState) {}

func (p *Primitive) Release() {}
