package main

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// sounder plays short sine cues. A sounder whose speaker failed to open
// stays silent.
type sounder struct {
	ok bool
}

func newSounder() (*sounder, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return &sounder{}, err
	}
	return &sounder{ok: true}, nil
}

func (s *sounder) tone(freq float64, d time.Duration) {
	if s == nil || !s.ok {
		return
	}
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(d), sine))
}

func (s *sounder) kill()   { s.tone(880, 50*time.Millisecond) }
func (s *sounder) hurt()   { s.tone(220, 80*time.Millisecond) }
func (s *sounder) wave()   { s.tone(440, 200*time.Millisecond) }
func (s *sounder) pickup() { s.tone(660, 60*time.Millisecond) }

func (s *sounder) close() {
	if s != nil && s.ok {
		speaker.Close()
	}
}
