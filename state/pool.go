package state

import "log"

// Slot is a stable index into a Pool
type Slot int32

// NoSlot marks a record that did not come from a pool
const NoSlot Slot = -1

// Pool is a slot arena of pre-allocated records with a free list
// Not safe for concurrent use; confine to the simulation goroutine
type Pool[T any] struct {
	name    string
	records []*T
	inUse   []bool
	free    []Slot
}

// NewPool creates a pool with capacity records allocated up front
func NewPool[T any](name string, capacity int) *Pool[T] {
	p := &Pool[T]{
		name:    name,
		records: make([]*T, 0, capacity),
		inUse:   make([]bool, 0, capacity),
		free:    make([]Slot, 0, capacity),
	}
	for i := 0; i < capacity; i++ {
		p.grow()
	}
	return p
}

func (p *Pool[T]) grow() {
	s := Slot(len(p.records))
	p.records = append(p.records, new(T))
	p.inUse = append(p.inUse, false)
	p.free = append(p.free, s)
}

// Claim takes a free slot, growing the arena when exhausted, and returns its zeroed record
func (p *Pool[T]) Claim() (Slot, *T) {
	if len(p.free) == 0 {
		p.grow()
	}
	s := p.free[len(p.free)-1]
	p.free = p.free[:len(p.free)-1]
	p.inUse[s] = true
	rec := p.records[s]
	var zero T
	*rec = zero
	return s, rec
}

// Get returns the record in slot s, nil when s is free or out of range
func (p *Pool[T]) Get(s Slot) *T {
	if s < 0 || int(s) >= len(p.records) || !p.inUse[s] {
		return nil
	}
	return p.records[s]
}

// Release returns s to the free list
// Releasing a free or foreign slot is logged and ignored
func (p *Pool[T]) Release(s Slot) bool {
	if s < 0 || int(s) >= len(p.records) {
		log.Printf("[%s] release of foreign slot %d", p.name, s)
		return false
	}
	if !p.inUse[s] {
		log.Printf("[%s] double release of slot %d", p.name, s)
		return false
	}
	p.inUse[s] = false
	p.free = append(p.free, s)
	return true
}

// InUse returns the number of claimed slots
func (p *Pool[T]) InUse() int {
	return len(p.records) - len(p.free)
}

// Cap returns the number of allocated records
func (p *Pool[T]) Cap() int {
	return len(p.records)
}
