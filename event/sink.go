package event

// Sink receives the events of one table item
type Sink interface {
	Emit(name string, params []any)
}

// Binder hands out the sink for a named item
type Binder interface {
	Bind(item string) Sink
}

// SinkFunc adapts a function to Sink
type SinkFunc func(name string, params []any)

func (f SinkFunc) Emit(name string, params []any) { f(name, params) }

// BinderFunc adapts a function to Binder
type BinderFunc func(item string) Sink

func (f BinderFunc) Bind(item string) Sink { return f(item) }

// Discard drops every event
var Discard Binder = BinderFunc(func(string) Sink {
	return SinkFunc(func(string, []any) {})
})

type multiSink []Sink

func (m multiSink) Emit(name string, params []any) {
	for _, s := range m {
		s.Emit(name, params)
	}
}

type multiBinder []Binder

func (m multiBinder) Bind(item string) Sink {
	sinks := make(multiSink, 0, len(m))
	for _, b := range m {
		sinks = append(sinks, b.Bind(item))
	}
	return sinks
}

// Fanout binds every item to all given binders, dispatching in argument order
func Fanout(binders ...Binder) Binder {
	out := make(multiBinder, 0, len(binders))
	for _, b := range binders {
		if b != nil {
			out = append(out, b)
		}
	}
	return out
}
