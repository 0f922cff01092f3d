package table

import (
	"fmt"

	"github.com/lixenwraith/pinball/event"
	"github.com/lixenwraith/pinball/item"
	"github.com/lixenwraith/pinball/physics"
)

// Build constructs the items of d in file order, surfaces first
// Items that fail construction or reuse a name are logged and excluded; their errors wrap ErrInvalidItem
func Build(d *Description, binder event.Binder, clock physics.Clock) ([]item.Item, []error) {
	if binder == nil {
		binder = event.Discard
	}
	b := builder{names: make(map[string]bool)}

	for _, s := range d.Surfaces {
		b.add("surface", s.Name, func() (item.Item, error) { return item.NewSurface(s, binder.Bind(s.Name), clock) })
	}
	for _, s := range d.Bumpers {
		b.add("bumper", s.Name, func() (item.Item, error) { return item.NewBumper(s, binder.Bind(s.Name)) })
	}
	for _, s := range d.HitTargets {
		b.add("hit_target", s.Name, func() (item.Item, error) { return item.NewHitTarget(s, binder.Bind(s.Name)) })
	}
	for _, s := range d.Triggers {
		b.add("trigger", s.Name, func() (item.Item, error) { return item.NewTrigger(s, binder.Bind(s.Name)) })
	}
	for _, s := range d.Kickers {
		b.add("kicker", s.Name, func() (item.Item, error) { return item.NewKicker(s, binder.Bind(s.Name)) })
	}
	for _, s := range d.Lights {
		b.add("light", s.Name, func() (item.Item, error) { return item.NewLight(s, binder.Bind(s.Name)) })
	}
	for _, s := range d.Primitives {
		b.add("primitive", s.Name, func() (item.Item, error) { return item.NewPrimitive(s, binder.Bind(s.Name)) })
	}
	return b.items, b.errs
}

type builder struct {
	names map[string]bool
	items []item.Item
	errs  []error
}

func (b *builder) add(kind, name string, build func() (item.Item, error)) {
	if b.names[name] {
		b.errs = append(b.errs, skip(fmt.Errorf("%s %s: duplicate name: %w", kind, name, ErrInvalidItem)))
		return
	}
	it, err := build()
	if err != nil {
		b.errs = append(b.errs, skip(fmt.Errorf("%s %s: %w: %w", kind, name, ErrInvalidItem, err)))
		return
	}
	b.names[name] = true
	b.items = append(b.items, it)
}
