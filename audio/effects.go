package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/lixenwraith/pinball/parameter"
	"github.com/lixenwraith/pinball/vmath"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a raw wave, sweeping linearly from freq to endFreq
type oscillator struct {
	freq     float64
	endFreq  float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	noise    *vmath.FastRand
}

func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewSweep(freq, freq, duration, wave, rate)
}

// NewSweep creates an oscillator gliding from start to end over duration
func NewSweep(start, end float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     start,
		endFreq:  end,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		noise:    vmath.NewFastRand(uint64(rate.N(duration)) + 1),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = -1
			if o.phase < 0.5 {
				val = 1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveNoise:
			val = float64(o.noise.FloatM11())
		}
		samples[i][0] = val
		samples[i][1] = val

		freq := o.freq + (o.endFreq-o.freq)*float64(o.position)/float64(o.duration)
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	releaseStart := e.totalSamples - e.releaseSamples
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}
		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.releaseSamples > 0 && e.position >= releaseStart {
			vol = math.Max(0, float64(e.totalSamples-e.position)/float64(e.releaseSamples))
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly; zero or less is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// Effect builds the streamer for st at rate, nil for SoundNone
func Effect(st SoundType, rate beep.SampleRate) beep.Streamer {
	switch st {
	case SoundBumper:
		d := parameter.BumperSoundDuration
		return beep.Take(rate.N(d), beep.Mix(
			newVolume(NewEnvelope(NewOscillator(parameter.BumperSoundFreq, d, WaveSine, rate), d, parameter.BumperSoundAttack, parameter.BumperSoundRelease, rate), 0.7),
			newVolume(NewEnvelope(NewOscillator(parameter.BumperOvertoneFreq, d, WaveSine, rate), d, parameter.BumperSoundAttack, d/2, rate), 0.3),
		))
	case SoundSlingshot:
		d := parameter.SlingshotSoundDuration
		return beep.Take(rate.N(d), beep.Mix(
			newVolume(NewEnvelope(NewOscillator(parameter.SlingshotSoundFreq, d, WaveSquare, rate), d, parameter.SlingshotSoundAttack, parameter.SlingshotSoundRelease, rate), 0.6),
			newVolume(NewEnvelope(NewOscillator(0, d, WaveNoise, rate), d, parameter.SlingshotSoundAttack, parameter.SlingshotSoundRelease, rate), 0.3),
		))
	case SoundHit:
		d := parameter.HitSoundDuration
		return newVolume(NewEnvelope(NewOscillator(parameter.HitSoundFreq, d, WaveSquare, rate), d, parameter.HitSoundAttack, parameter.HitSoundRelease, rate), 0.4)
	case SoundDrop:
		d := parameter.DropSoundDuration
		return newVolume(NewEnvelope(NewSweep(parameter.DropSoundStartFreq, parameter.DropSoundEndFreq, d, WaveSaw, rate), d, parameter.DropSoundAttack, parameter.DropSoundRelease, rate), 0.5)
	case SoundRollover:
		d := parameter.RolloverSoundDuration
		return newVolume(NewEnvelope(NewOscillator(parameter.RolloverSoundFreq, d, WaveSine, rate), d, parameter.RolloverSoundAttack, parameter.RolloverSoundRelease, rate), 0.5)
	}
	return nil
}
