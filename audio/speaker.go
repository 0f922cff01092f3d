package audio

import (
	"fmt"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/lixenwraith/pinball/parameter"
)

// Speaker mixes effects into the default output device
type Speaker struct {
	rate  beep.SampleRate
	mixer *beep.Mixer
}

func OpenSpeaker() (*Speaker, error) {
	rate := beep.SampleRate(parameter.AudioSampleRate)
	if err := speaker.Init(rate, rate.N(parameter.AudioBufferDuration)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	sp := &Speaker{rate: rate, mixer: &beep.Mixer{}}
	speaker.Play(sp.mixer)
	return sp, nil
}

func (sp *Speaker) Rate() beep.SampleRate { return sp.rate }

// Play adds s to the running mix
func (sp *Speaker) Play(s beep.Streamer) {
	speaker.Lock()
	sp.mixer.Add(s)
	speaker.Unlock()
}

// Close silences the mix and releases the device
func (sp *Speaker) Close() {
	speaker.Lock()
	sp.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
}
