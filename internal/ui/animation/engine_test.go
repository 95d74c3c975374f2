package animation

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"
)

type recorder struct {
	mu     sync.Mutex
	states []bool
}

func (rec *recorder) set(lit bool) {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.states = append(rec.states, lit)
}

func (rec *recorder) snapshot() []bool {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return append([]bool(nil), rec.states...)
}

func fastConfig(flashes int) Config {
	return Config{
		LitDuration:  Range{Min: time.Millisecond, Max: 2 * time.Millisecond},
		DarkDuration: Range{Min: time.Millisecond, Max: 2 * time.Millisecond},
		Flashes:      flashes,
	}
}

func TestRangeRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	fixed := Range{Min: time.Second, Max: time.Second}
	if fixed.Random(rng) != time.Second {
		t.Error("fixed range should return Min")
	}
	spread := Range{Min: time.Second, Max: 2 * time.Second}
	for i := 0; i < 100; i++ {
		value := spread.Random(rng)
		if value < spread.Min || value >= spread.Max {
			t.Fatalf("Random = %v outside [%v, %v)", value, spread.Min, spread.Max)
		}
	}
}

func TestFlashSequenceEndsDark(t *testing.T) {
	rec := &recorder{}
	engine := New(fastConfig(3), rec.set)
	engine.StartFlash(context.Background())

	deadline := time.Now().Add(2 * time.Second)
	for len(rec.snapshot()) < 7 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	states := rec.snapshot()
	want := []bool{true, false, true, false, true, false, false}
	if len(states) != len(want) {
		t.Fatalf("states = %v, expected %v", states, want)
	}
	for i := range want {
		if states[i] != want[i] {
			t.Fatalf("states = %v, expected %v", states, want)
		}
	}
}

func TestStopCancelsEndlessFlash(t *testing.T) {
	rec := &recorder{}
	engine := New(fastConfig(0), rec.set)
	engine.StartFlash(context.Background())
	time.Sleep(10 * time.Millisecond)
	engine.Stop()

	states := rec.snapshot()
	if len(states) == 0 {
		t.Fatal("no flashes recorded")
	}
	if states[len(states)-1] {
		t.Error("highlight left on after Stop")
	}
	count := len(states)
	time.Sleep(10 * time.Millisecond)
	if len(rec.snapshot()) != count {
		t.Error("flash kept running after Stop")
	}
}
