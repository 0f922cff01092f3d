// Package engine runs a table: it steps the balls through the colliders of every item,
// advances item animations and pops state frames for rendering and replication
package engine

import (
	"fmt"
	"log"
	"strconv"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lixenwraith/pinball/config"
	"github.com/lixenwraith/pinball/event"
	"github.com/lixenwraith/pinball/item"
	"github.com/lixenwraith/pinball/parameter"
	"github.com/lixenwraith/pinball/physics"
	"github.com/lixenwraith/pinball/state"
	"github.com/lixenwraith/pinball/table"
)

// Player owns one running table
// Not safe for concurrent use; Runner serialises access from other goroutines
type Player struct {
	cfg   config.Config
	env   *physics.Env
	table table.Header

	items  []item.Item
	byName map[string]item.Item

	// planes are the playfield and the glass, tested before any item collider
	planes []physics.HitObject
	objs   []physics.HitObject

	balls      []*physics.Ball
	ballStates map[uint64]*state.BallState
	ballSeq    int
	// doomed balls leave at the end of the current tick
	doomed []*physics.Ball

	contacts []physics.CollisionEvent
	timeMsec int64

	differ  *state.Differ
	applied map[string]state.ItemState

	// capped counts cycles cut short by the iteration cap
	capped   int
	cappedAt int64
	started  bool
}

// NewPlayer builds the items of desc and spawns its balls
// Items failing construction are logged and left out; Start raises Init on the survivors
func NewPlayer(cfg config.Config, desc *table.Description, binder event.Binder) (*Player, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	p := &Player{
		cfg:        cfg,
		env:        physics.NewEnv(cfg.GravityVector(), cfg.Seed, cfg.Difficulty, cfg.HardScatter),
		table:      desc.Table,
		byName:     make(map[string]item.Item),
		ballStates: make(map[uint64]*state.BallState),
		differ:     state.NewDiffer(),
		applied:    make(map[string]state.ItemState),
	}

	items, errs := table.Build(desc, binder, p)
	if len(errs) > 0 {
		log.Printf("[engine] %s: %d items excluded", desc.Table.Name, len(errs))
	}
	for _, it := range items {
		p.items = append(p.items, it)
		p.byName[it.Name()] = it
		for _, o := range it.HitObjects() {
			o.CalcHitBBox()
			p.objs = append(p.objs, o)
		}
	}

	mat := physics.Material{
		Elasticity: parameter.PlayfieldElasticity,
		Friction:   parameter.PlayfieldFriction,
		Scatter:    parameter.PlayfieldScatter,
	}
	playfield := physics.NewPlane(mgl32.Vec3{0, 0, 1}, 0)
	glass := physics.NewPlane(mgl32.Vec3{0, 0, -1}, -desc.Table.GlassHeight)
	for _, pl := range []*physics.Plane{playfield, glass} {
		pl.Material = mat
		pl.CalcHitBBox()
		p.planes = append(p.planes, pl)
	}

	for _, b := range desc.Balls {
		p.CreateBall(b.Position, b.Velocity)
	}
	log.Printf("[engine] %s: %d items, %d colliders, %d balls", desc.Table.Name, len(p.items), len(p.objs), len(p.balls))
	return p, nil
}

// Start raises Init on every item once, in table order
func (p *Player) Start() {
	if p.started {
		return
	}
	p.started = true
	for _, it := range p.items {
		it.Init()
	}
}

// TimeMsec is the simulated time since the player was created
func (p *Player) TimeMsec() int64 { return p.timeMsec }

func (p *Player) Env() *physics.Env { return p.env }

func (p *Player) Table() table.Header { return p.table }

func (p *Player) Items() []item.Item { return p.items }

// Item returns the item named name, or nil
func (p *Player) Item(name string) item.Item { return p.byName[name] }

func (p *Player) Balls() []*physics.Ball { return p.balls }

// CappedCycles reports how many cycles hit the iteration cap
func (p *Player) CappedCycles() int { return p.capped }

// BallName is the replicated name of ball, numbered per player in creation order
func (p *Player) BallName(b *physics.Ball) string {
	if s, ok := p.ballStates[b.ID()]; ok {
		return s.Name()
	}
	return ""
}

// CreateBall adds a standard ball at pos moving with vel
func (p *Player) CreateBall(pos, vel mgl32.Vec3) *physics.Ball {
	b := physics.NewBall(physics.BallData{Radius: parameter.BallRadius, Mass: parameter.BallMass}, pos, vel, p.env)
	b.Target().CalcHitBBox()
	p.balls = append(p.balls, b)
	p.ballSeq++
	p.ballStates[b.ID()] = state.ClaimBallState("Ball"+strconv.Itoa(p.ballSeq), pos, vel)
	return b
}

// CreateBallIn creates a ball held by k; no Hit is raised
func (p *Player) CreateBallIn(k *item.Kicker) *physics.Ball {
	b := p.CreateBall(k.BallCreationPosition(parameter.BallRadius), mgl32.Vec3{})
	if !k.Capture(b) {
		log.Printf("[engine] %s: kicker busy, %s created free", k.Name(), p.BallName(b))
	}
	return b
}

// RemoveBall takes b out of play; its state disappears from the next frame
func (p *Player) RemoveBall(b *physics.Ball) bool {
	for i, o := range p.balls {
		if o != b {
			continue
		}
		p.balls = append(p.balls[:i], p.balls[i+1:]...)
		b.Vacate()
		if s, ok := p.ballStates[b.ID()]; ok {
			s.Release()
			delete(p.ballStates, b.ID())
		}
		return true
	}
	return false
}

// DestroyBall removes b once the current tick completes
// Safe to call from event handlers running inside the physics cycle
func (p *Player) DestroyBall(b *physics.Ball) {
	for _, d := range p.doomed {
		if d == b {
			return
		}
	}
	p.doomed = append(p.doomed, b)
}

// SimulateTime advances the table by msec physics ticks of one millisecond
func (p *Player) SimulateTime(msec int64) {
	for i := int64(0); i < msec; i++ {
		p.step()
	}
}

func (p *Player) step() {
	for _, b := range p.balls {
		b.Mover().UpdateVelocities()
	}
	p.physicsSimulateCycle(parameter.PhysFactor)
	p.timeMsec++
	for _, b := range p.doomed {
		p.RemoveBall(b)
	}
	p.doomed = p.doomed[:0]
	p.drain()
	for _, it := range p.items {
		it.Update(p.timeMsec, 1)
	}
}

// drain removes balls that fell through the playfield
func (p *Player) drain() {
	for i := len(p.balls) - 1; i >= 0; i-- {
		b := p.balls[i]
		if b.State.Pos[2] < -parameter.DrainDepth {
			log.Printf("[engine] %s drained at %v", p.BallName(b), b.State.Pos)
			p.RemoveBall(b)
		}
	}
}

// PopStates returns the changes since the previous pop; the caller releases the frame
func (p *Player) PopStates() *state.Frame {
	live := make([]state.ItemState, 0, len(p.items)+len(p.balls))
	for _, it := range p.items {
		if s := it.State(); s != nil {
			live = append(live, s)
		}
	}
	for _, b := range p.balls {
		s := p.ballStates[b.ID()]
		s.Pos = b.State.Pos
		s.Vel = b.Hit.Vel
		live = append(live, s)
	}
	return p.differ.Pop(p.timeMsec, live)
}

// Render pushes every item change since the previous Render to r
func (p *Player) Render(r item.Renderer) {
	for _, it := range p.items {
		s := it.State()
		if s == nil {
			continue
		}
		old := p.applied[it.Name()]
		it.ApplyState(r, old)
		if old != nil {
			old.Release()
		}
		p.applied[it.Name()] = s.Clone()
	}
}

// Close returns every pooled state; the player must not be used afterwards
func (p *Player) Close() {
	for name, s := range p.applied {
		s.Release()
		delete(p.applied, name)
	}
	p.differ.Reset()
	for id, s := range p.ballStates {
		s.Release()
		delete(p.ballStates, id)
	}
	for _, it := range p.items {
		it.Release()
	}
	p.balls = nil
	p.doomed = nil
	p.items = nil
}
