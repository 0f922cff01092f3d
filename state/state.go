// Package state holds the runtime-visible snapshots of table items
// Records are pooled per type; every Clone and Diff result must be released by its owner
package state

import "math"

// ItemState is the observable runtime snapshot of one item
type ItemState interface {
	// Name is the owning item's name
	Name() string
	// Kind names the state type on the wire
	Kind() string
	// Clone returns a pooled copy the caller must release
	Clone() ItemState
	// Equals compares the present fields, ignoring pool bookkeeping
	Equals(other ItemState) bool
	// Diff returns a pooled copy with the fields equal to prev cleared
	// A nil or foreign prev yields a full clone
	Diff(prev ItemState) ItemState
	// Empty reports whether no field is present
	Empty() bool
	// Fields returns the present fields keyed by their wire name
	Fields() map[string]any
	Release()
}

// Fields is the presence mask of a state's fields
type Fields uint8

func (f Fields) Has(m Fields) bool { return f&m != 0 }

// header is embedded by every concrete state
type header struct {
	slot    Slot
	name    string
	present Fields
}

func (h *header) Name() string   { return h.name }
func (h *header) Empty() bool    { return h.present == 0 }
func (h *header) Present() Fields { return h.present }

func f32Equal(a, b float32) bool {
	return a == b || (math.IsNaN(float64(a)) && math.IsNaN(float64(b)))
}

// clearIf drops m from the mask when the field values match
func (h *header) clearIf(m Fields, same bool) {
	if same {
		h.present &^= m
	}
}
