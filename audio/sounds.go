// Package audio voices table events with short synthesised effects
package audio

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/lixenwraith/pinball/event"
	"github.com/lixenwraith/pinball/item"
	"github.com/lixenwraith/pinball/parameter"
	"github.com/lixenwraith/pinball/status"
)

type SoundType int

const (
	SoundNone SoundType = iota
	SoundHit
	SoundBumper
	SoundSlingshot
	SoundDrop
	SoundRollover
)

// PlayFunc starts a streamer; it must not block
type PlayFunc func(s beep.Streamer)

// Sounds is an event binder playing an effect per event
// Hit plays the item's assigned sound, Slingshot and Dropped have fixed sounds, other events are silent
type Sounds struct {
	rate  beep.SampleRate
	play  PlayFunc
	now   func() time.Time
	muted atomic.Bool

	mu       sync.Mutex
	assigned map[string]SoundType
	last     map[string]time.Time

	statPlayed *atomic.Int64
}

func NewSounds(rate beep.SampleRate, play PlayFunc) *Sounds {
	return &Sounds{
		rate:     rate,
		play:     play,
		now:      time.Now,
		assigned: make(map[string]SoundType),
		last:     make(map[string]time.Time),

		statPlayed: new(atomic.Int64),
	}
}

// Instrument counts played effects as "audio.played" in reg
func (s *Sounds) Instrument(reg *status.Registry) {
	s.statPlayed = reg.Ints.Get("audio.played")
}

// Assign sets the sound played when item raises Hit
func (s *Sounds) Assign(item string, st SoundType) {
	s.mu.Lock()
	s.assigned[item] = st
	s.mu.Unlock()
}

// AssignItems picks the Hit sound of each item from its kind
func (s *Sounds) AssignItems(items []item.Item) {
	for _, it := range items {
		switch it.(type) {
		case *item.Bumper:
			s.Assign(it.Name(), SoundBumper)
		case *item.Trigger:
			s.Assign(it.Name(), SoundRollover)
		case *item.Kicker:
			s.Assign(it.Name(), SoundDrop)
		}
	}
}

func (s *Sounds) SetMuted(muted bool) { s.muted.Store(muted) }

// ToggleMute flips the mute state and returns the new one
func (s *Sounds) ToggleMute() bool {
	for {
		old := s.muted.Load()
		if s.muted.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

func (s *Sounds) Muted() bool { return s.muted.Load() }

func (s *Sounds) Bind(name string) event.Sink {
	return event.SinkFunc(func(ev string, _ []any) {
		s.emit(name, ev)
	})
}

func (s *Sounds) soundFor(name, ev string) SoundType {
	switch ev {
	case "Hit":
		if st, ok := s.assigned[name]; ok {
			return st
		}
		return SoundHit
	case "Slingshot":
		return SoundSlingshot
	case "Dropped":
		return SoundDrop
	}
	return SoundNone
}

func (s *Sounds) emit(name, ev string) {
	if s.muted.Load() {
		return
	}
	s.mu.Lock()
	st := s.soundFor(name, ev)
	if st == SoundNone {
		s.mu.Unlock()
		return
	}
	now := s.now()
	if last, ok := s.last[name]; ok && now.Sub(last) < parameter.MinSoundGap {
		s.mu.Unlock()
		return
	}
	s.last[name] = now
	s.mu.Unlock()

	if fx := Effect(st, s.rate); fx != nil {
		s.play(fx)
		s.statPlayed.Add(1)
	}
}
