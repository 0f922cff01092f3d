package state

import (
	"encoding/json"
	"sort"
)

// Frame is the set of state deltas captured at one point in simulated time
// The frame owns its states; Release returns them to their pools
type Frame struct {
	TimeMsec int64
	States   []ItemState
	// Removed names items whose state disappeared since the previous frame
	Removed []string
}

func (f *Frame) Empty() bool {
	return len(f.States) == 0 && len(f.Removed) == 0
}

func (f *Frame) Release() {
	for _, s := range f.States {
		s.Release()
	}
	f.States = nil
}

type frameEntry struct {
	Name   string         `json:"name"`
	Kind   string         `json:"kind"`
	Fields map[string]any `json:"fields"`
}

type frameJSON struct {
	Time    int64        `json:"time"`
	States  []frameEntry `json:"states,omitempty"`
	Removed []string     `json:"removed,omitempty"`
}

// MarshalJSON emits only the present fields of each state
func (f *Frame) MarshalJSON() ([]byte, error) {
	out := frameJSON{Time: f.TimeMsec, Removed: f.Removed}
	for _, s := range f.States {
		out.States = append(out.States, frameEntry{Name: s.Name(), Kind: s.Kind(), Fields: s.Fields()})
	}
	return json.Marshal(out)
}

// Differ turns successive live snapshots into minimal frames
type Differ struct {
	last map[string]ItemState
}

func NewDiffer() *Differ {
	return &Differ{last: make(map[string]ItemState)}
}

// Pop diffs live against the previous pop and keeps clones of live for the next one
// live is only read; the returned frame must be released by the caller
func (d *Differ) Pop(timeMsec int64, live []ItemState) *Frame {
	f := &Frame{TimeMsec: timeMsec}
	seen := make(map[string]bool, len(live))
	for _, s := range live {
		name := s.Name()
		seen[name] = true
		prev := d.last[name]
		if prev != nil && prev.Equals(s) {
			continue
		}
		delta := s.Diff(prev)
		if delta.Empty() {
			delta.Release()
		} else {
			f.States = append(f.States, delta)
		}
		if prev != nil {
			prev.Release()
		}
		d.last[name] = s.Clone()
	}
	for name, prev := range d.last {
		if seen[name] {
			continue
		}
		prev.Release()
		delete(d.last, name)
		f.Removed = append(f.Removed, name)
	}
	sort.Strings(f.Removed)
	return f
}

// Reset releases the retained snapshots so the next Pop emits full states
func (d *Differ) Reset() {
	for name, s := range d.last {
		s.Release()
		delete(d.last, name)
	}
}
