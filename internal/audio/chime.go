// Package audio plays the short chime that announces an expired countdown.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Tone is one note of the chime. A zero Frequency is a rest.
type Tone struct {
	Frequency float64
	Length    time.Duration
}

// DefaultMelody is the time's-up chime: two short beeps and a higher one.
var DefaultMelody = []Tone{
	{Frequency: 880, Length: 150 * time.Millisecond},
	{Length: 80 * time.Millisecond},
	{Frequency: 880, Length: 150 * time.Millisecond},
	{Length: 80 * time.Millisecond},
	{Frequency: 1320, Length: 300 * time.Millisecond},
}

// Chime plays DefaultMelody through the system speaker.
type Chime struct {
	mu          sync.Mutex
	enabled     bool
	initialized bool
	volume      float64
	play        func(...beep.Streamer)
}

// NewChime creates a chime. Init must succeed before Play makes a sound.
func NewChime(enabled bool) *Chime {
	return &Chime{
		enabled: enabled,
		volume:  -1,
		play:    speaker.Play,
	}
}

// Init sets up the speaker.
func (chime *Chime) Init() error {
	chime.mu.Lock()
	defer chime.mu.Unlock()

	if chime.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	chime.initialized = true
	return nil
}

// SetEnabled toggles playback.
func (chime *Chime) SetEnabled(enabled bool) {
	chime.mu.Lock()
	defer chime.mu.Unlock()
	chime.enabled = enabled
}

// Enabled reports whether Play makes a sound.
func (chime *Chime) Enabled() bool {
	chime.mu.Lock()
	defer chime.mu.Unlock()
	return chime.enabled
}

// Play starts the melody without blocking.
func (chime *Chime) Play() error {
	chime.mu.Lock()
	defer chime.mu.Unlock()

	if !chime.enabled || !chime.initialized {
		return nil
	}
	streamer, err := Melody(sampleRate, DefaultMelody)
	if err != nil {
		return err
	}
	chime.play(&effects.Volume{
		Streamer: streamer,
		Base:     2,
		Volume:   chime.volume,
	})
	return nil
}

// Melody builds a streamer that plays tones back to back.
func Melody(rate beep.SampleRate, tones []Tone) (beep.Streamer, error) {
	parts := make([]beep.Streamer, 0, len(tones))
	for _, tone := range tones {
		samples := rate.N(tone.Length)
		if tone.Frequency <= 0 {
			parts = append(parts, beep.Silence(samples))
			continue
		}
		sine, err := generators.SineTone(rate, tone.Frequency)
		if err != nil {
			return nil, fmt.Errorf("tone %.0fHz: %w", tone.Frequency, err)
		}
		parts = append(parts, beep.Take(samples, sine))
	}
	return beep.Seq(parts...), nil
}
