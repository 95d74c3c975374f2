package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func drain(streamer beep.Streamer) int {
	buffer := make([][2]float64, 512)
	total := 0
	for {
		n, ok := streamer.Stream(buffer)
		total += n
		if !ok {
			return total
		}
	}
}

func TestMelodyLength(t *testing.T) {
	rate := beep.SampleRate(8000)
	tones := []Tone{
		{Frequency: 440, Length: 100 * time.Millisecond},
		{Length: 50 * time.Millisecond},
		{Frequency: 660, Length: 100 * time.Millisecond},
	}
	streamer, err := Melody(rate, tones)
	if err != nil {
		t.Fatalf("Melody returned error: %v", err)
	}

	want := rate.N(250 * time.Millisecond)
	if got := drain(streamer); got != want {
		t.Errorf("melody samples = %d, expected %d", got, want)
	}
}

func TestMelodyRejectsInaudibleTone(t *testing.T) {
	rate := beep.SampleRate(8000)
	// Above Nyquist for this rate.
	if _, err := Melody(rate, []Tone{{Frequency: 6000, Length: time.Millisecond}}); err == nil {
		t.Error("expected error for tone above half the sample rate")
	}
}

func TestPlayRespectsEnabledAndInit(t *testing.T) {
	played := 0
	chime := NewChime(true)
	chime.play = func(...beep.Streamer) { played++ }

	if err := chime.Play(); err != nil {
		t.Fatalf("Play returned error: %v", err)
	}
	if played != 0 {
		t.Error("played before Init")
	}

	chime.initialized = true
	_ = chime.Play()
	if played != 1 {
		t.Errorf("played = %d, expected 1", played)
	}

	chime.SetEnabled(false)
	_ = chime.Play()
	if played != 1 || chime.Enabled() {
		t.Errorf("played = %d after disabling, expected 1", played)
	}
}
