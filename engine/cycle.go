package engine

import (
	"log"

	"github.com/lixenwraith/pinball/parameter"
	"github.com/lixenwraith/pinball/physics"
)

// physicsSimulateCycle consumes dtime engine units, resolving the earliest impact first
// and rescanning from the new trajectories until the time is spent
func (p *Player) physicsSimulateCycle(dtime float32) {
	staticCnts := parameter.StaticCounts

	for iter := 0; dtime > 0; iter++ {
		if iter >= p.cfg.MaxCycleIterations {
			// the remainder of the tick is dropped, balls do not move through it
			// logged once per run of consecutive capped ticks
			if p.capped == 0 || p.cappedAt != p.timeMsec-1 {
				log.Printf("[engine] cycle cap %d reached at %dms, %v left", p.cfg.MaxCycleIterations, p.timeMsec, dtime)
			}
			p.capped++
			p.cappedAt = p.timeMsec
			return
		}

		hittime := dtime
		for _, b := range p.balls {
			b.Target().CalcHitBBox()
		}
		for _, b := range p.balls {
			coll := &b.Hit.Coll
			coll.Reset(b, hittime)
			if b.Frozen {
				continue
			}
			p.hitTestBall(b, coll)
			if coll.Obj != nil && coll.HitTime <= hittime {
				hittime = coll.HitTime
			}
		}

		for _, b := range p.balls {
			b.Mover().UpdateDisplacements(hittime)
		}

		for _, b := range p.balls {
			coll := &b.Hit.Coll
			if coll.Obj != nil && coll.HitTime <= hittime {
				obj := coll.Obj
				coll.Obj = nil
				obj.Collide(coll)
			}
		}

		for i := range p.contacts {
			c := &p.contacts[i]
			// a ball captured during this cycle no longer rests on anything
			if c.Ball.Frozen {
				continue
			}
			c.Obj.Contact(c, hittime)
		}
		p.contacts = p.contacts[:0]

		if hittime < parameter.StaticTime {
			staticCnts--
			if staticCnts < 0 {
				staticCnts = 0
				hittime = parameter.StaticTime
			}
		}
		dtime -= hittime
	}
}

// hitTestBall finds the earliest impact of b within coll.HitTime and records resting contacts
// Playfield and glass go first, then item colliders, then balls with a higher id and frozen balls
func (p *Player) hitTestBall(b *physics.Ball, coll *physics.CollisionEvent) {
	swept := physics.SweptBBox(b, coll.HitTime)
	var cand physics.CollisionEvent

	test := func(obj physics.HitObject) {
		// read per test: hooks fired earlier in the cycle may have changed it
		if !physics.Collidable(obj) || !swept.Intersects(obj.Base().BBox) {
			return
		}
		cand.Reset(b, coll.HitTime)
		t := obj.HitTest(b, coll.HitTime, &cand)
		if t < 0 || t > coll.HitTime {
			return
		}
		cand.Obj = obj
		cand.HitTime = t
		if cand.IsContact {
			p.contacts = append(p.contacts, cand)
			return
		}
		*coll = cand
	}

	for _, pl := range p.planes {
		test(pl)
	}
	for _, o := range p.objs {
		test(o)
	}
	for _, other := range p.balls {
		if other.ID() > b.ID() || other.Frozen {
			test(other.Target())
		}
	}
}
