// Package status holds runtime counters shared between the engine, the stream hub and the front ends
package status

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
)

// Registry is the set of named metrics of one process
// Producers fetch their pointers once and write to them directly
type Registry struct {
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[Float]
}

func NewRegistry() *Registry {
	return &Registry{
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[Float](),
	}
}

// Format renders the metrics whose key starts with prefix as "key=value" pairs in key order
func (r *Registry) Format(prefix string) string {
	var pairs []string
	r.Ints.Range(func(k string, v *atomic.Int64) {
		if strings.HasPrefix(k, prefix) {
			pairs = append(pairs, k+"="+strconv.FormatInt(v.Load(), 10))
		}
	})
	r.Floats.Range(func(k string, v *Float) {
		if strings.HasPrefix(k, prefix) {
			pairs = append(pairs, fmt.Sprintf("%s=%.2f", k, v.Load()))
		}
	})
	return strings.Join(pairs, " ")
}
