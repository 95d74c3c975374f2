package countdown

import (
	"sync"
	"time"
)

// Dispatcher runs fn on the thread that owns the Engine.
type Dispatcher func(fn func())

// Config contains runtime options for the Scheduler.
type Config struct {
	TickInterval time.Duration
}

// Scheduler drives a recurring tick callback. The ticker goroutine never runs
// the callback itself; it hands each tick to the Dispatcher.
type Scheduler struct {
	mu       sync.Mutex
	options  Config
	dispatch Dispatcher
	onTick   func() bool
	stopCh   chan struct{}
	closed   bool
}

// NewScheduler creates a disarmed scheduler. onTick reports whether ticking
// should continue.
func NewScheduler(options Config, dispatch Dispatcher, onTick func() bool) *Scheduler {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if dispatch == nil {
		dispatch = func(fn func()) { fn() }
	}
	return &Scheduler{
		options:  options,
		dispatch: dispatch,
		onTick:   onTick,
	}
}

// Ensure arms the recurring callback if none is active. It reports whether a
// new ticker was started.
func (scheduler *Scheduler) Ensure() bool {
	scheduler.mu.Lock()
	if scheduler.closed || scheduler.stopCh != nil {
		scheduler.mu.Unlock()
		return false
	}
	stopCh := make(chan struct{})
	scheduler.stopCh = stopCh
	scheduler.mu.Unlock()

	go scheduler.run(stopCh)
	return true
}

// Active reports whether a ticker is armed.
func (scheduler *Scheduler) Active() bool {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return scheduler.stopCh != nil
}

// Disarm stops the current ticker, if any. Ensure may re-arm it.
func (scheduler *Scheduler) Disarm() {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	scheduler.disarmLocked(scheduler.stopCh)
}

// Close stops the ticker permanently.
func (scheduler *Scheduler) Close() {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	scheduler.disarmLocked(scheduler.stopCh)
	scheduler.closed = true
}

func (scheduler *Scheduler) run(stopCh chan struct{}) {
	ticker := time.NewTicker(scheduler.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			scheduler.dispatch(func() {
				scheduler.fire(stopCh)
			})
		}
	}
}

func (scheduler *Scheduler) fire(stopCh chan struct{}) {
	if !scheduler.current(stopCh) {
		return
	}
	if scheduler.onTick != nil && scheduler.onTick() {
		return
	}
	scheduler.mu.Lock()
	scheduler.disarmLocked(stopCh)
	scheduler.mu.Unlock()
}

// current reports whether stopCh still belongs to the armed ticker, so ticks
// queued before a Disarm are dropped.
func (scheduler *Scheduler) current(stopCh chan struct{}) bool {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return scheduler.stopCh == stopCh
}

func (scheduler *Scheduler) disarmLocked(stopCh chan struct{}) {
	if stopCh == nil || scheduler.stopCh != stopCh {
		return
	}
	close(stopCh)
	scheduler.stopCh = nil
}
