package event

import (
	"fmt"
	"log"

	"github.com/Shopify/go-lua"
)

// Script dispatches item events to Lua handlers named <Item>_<Event>, the table script convention
// A missing handler is not an error; most items only script a few events
type Script struct {
	state *lua.State
}

// NewScript compiles and runs src so its handlers become globals
func NewScript(src string) (*Script, error) {
	l := lua.NewState()
	lua.OpenLibraries(l)
	if err := lua.DoString(l, src); err != nil {
		return nil, fmt.Errorf("run script: %w", err)
	}
	return &Script{state: l}, nil
}

// LoadScript reads and runs a script file
func LoadScript(path string) (*Script, error) {
	l := lua.NewState()
	lua.OpenLibraries(l)
	if err := lua.DoFile(l, path); err != nil {
		return nil, fmt.Errorf("load script %s: %w", path, err)
	}
	return &Script{state: l}, nil
}

// Register exposes a Go function to the script as a global
func (s *Script) Register(name string, fn lua.Function) {
	s.state.Register(name, fn)
}

// State returns the underlying interpreter for callers binding richer APIs
func (s *Script) State() *lua.State {
	return s.state
}

func (s *Script) Bind(item string) Sink {
	return SinkFunc(func(name string, params []any) {
		s.call(item+"_"+name, params)
	})
}

func (s *Script) call(fn string, params []any) {
	l := s.state
	l.Global(fn)
	if !l.IsFunction(-1) {
		l.Pop(1)
		return
	}
	for _, p := range params {
		pushValue(l, p)
	}
	if err := l.ProtectedCall(len(params), 0, 0); err != nil {
		log.Printf("[script] %s: %v", fn, err)
		l.Pop(1) // error object
	}
}

func pushValue(l *lua.State, v any) {
	switch x := v.(type) {
	case nil:
		l.PushNil()
	case bool:
		l.PushBoolean(x)
	case int:
		l.PushInteger(x)
	case int64:
		l.PushInteger(int(x))
	case uint64:
		l.PushInteger(int(x))
	case float32:
		l.PushNumber(float64(x))
	case float64:
		l.PushNumber(x)
	case string:
		l.PushString(x)
	default:
		l.PushString(fmt.Sprint(x))
	}
}
