package animation

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Range defines a duration range with random sampling.
type Range struct {
	Min time.Duration
	Max time.Duration
}

// Random returns a random duration within the range.
func (value Range) Random(rng *rand.Rand) time.Duration {
	if value.Max <= value.Min {
		return value.Min
	}
	delta := value.Max - value.Min
	return value.Min + time.Duration(rng.Int63n(int64(delta)))
}

// Config contains flash timing values.
type Config struct {
	LitDuration  Range
	DarkDuration Range
	// Flashes is the number of lit phases; zero or less flashes until stopped.
	Flashes int
}

// Engine toggles a highlight on and off, e.g. on the dial after expiry.
type Engine struct {
	mu     sync.Mutex
	config Config
	setLit func(bool)
	cancel context.CancelFunc
	done   chan struct{}
	rng    *rand.Rand
}

// New creates a new flash engine. setLit is called from the engine goroutine.
func New(config Config, setLit func(bool)) *Engine {
	return &Engine{
		config: config,
		setLit: setLit,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// StartFlash starts a flash sequence, replacing any running one. The
// highlight is always left off when the sequence ends or is cancelled.
func (engine *Engine) StartFlash(ctx context.Context) {
	engine.start(ctx, func(runCtx context.Context) {
		defer engine.setLit(false)
		for flash := 0; engine.config.Flashes <= 0 || flash < engine.config.Flashes; flash++ {
			engine.setLit(true)
			if !sleepWithContext(runCtx, engine.config.LitDuration.Random(engine.rng)) {
				return
			}
			engine.setLit(false)
			if !sleepWithContext(runCtx, engine.config.DarkDuration.Random(engine.rng)) {
				return
			}
		}
	})
}

// Stop terminates any active flash and waits for it to finish.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	cancel, done := engine.cancel, engine.done
	engine.cancel, engine.done = nil, nil
	engine.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

func (engine *Engine) start(parent context.Context, run func(context.Context)) {
	engine.Stop()

	runCtx, cancel := context.WithCancel(parent)
	done := make(chan struct{})
	engine.mu.Lock()
	engine.cancel = cancel
	engine.done = done
	engine.mu.Unlock()

	go func() {
		defer close(done)
		run(runCtx)
	}()
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
