package event

import (
	"fmt"
	"strings"
)

// Record is one emitted event
type Record struct {
	Item   string
	Name   string
	Params []any
}

func (r Record) String() string {
	if len(r.Params) == 0 {
		return r.Item + "." + r.Name
	}
	parts := make([]string, len(r.Params))
	for i, p := range r.Params {
		parts[i] = fmt.Sprint(p)
	}
	return r.Item + "." + r.Name + "(" + strings.Join(parts, ",") + ")"
}

// Recorder captures emitted events in order
type Recorder struct {
	records []Record
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Bind(item string) Sink {
	return SinkFunc(func(name string, params []any) {
		cp := make([]any, len(params))
		copy(cp, params)
		r.records = append(r.records, Record{Item: item, Name: name, Params: cp})
	})
}

// Records returns the captured events
func (r *Recorder) Records() []Record {
	return r.records
}

// Count returns how many events named name were emitted by item
func (r *Recorder) Count(item, name string) int {
	n := 0
	for _, rec := range r.records {
		if rec.Item == item && rec.Name == name {
			n++
		}
	}
	return n
}

func (r *Recorder) Reset() {
	r.records = r.records[:0]
}
