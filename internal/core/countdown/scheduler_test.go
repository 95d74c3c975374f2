package countdown

import (
	"sync/atomic"
	"testing"
	"time"

	"timekeeper/internal/core/model"
)

const testInterval = 5 * time.Millisecond

func waitFor(t *testing.T, what string, condition func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

// TestSchedulerEnsureIsIdempotent verifies only one ticker is armed at a time
func TestSchedulerEnsureIsIdempotent(t *testing.T) {
	scheduler := NewScheduler(Config{TickInterval: time.Hour}, nil, func() bool { return true })
	defer scheduler.Close()

	if !scheduler.Ensure() {
		t.Fatal("first Ensure returned false")
	}
	if scheduler.Ensure() {
		t.Error("second Ensure armed another ticker")
	}
	if !scheduler.Active() {
		t.Error("Active = false after Ensure")
	}
}

// TestSchedulerDisarmsWhenTickDeclines verifies the callback is not rescheduled
func TestSchedulerDisarmsWhenTickDeclines(t *testing.T) {
	var ticks atomic.Int32
	scheduler := NewScheduler(Config{TickInterval: testInterval}, nil, func() bool {
		return ticks.Add(1) < 3
	})
	defer scheduler.Close()

	scheduler.Ensure()
	waitFor(t, "scheduler to disarm", func() bool { return !scheduler.Active() })

	settled := ticks.Load()
	if settled != 3 {
		t.Errorf("ticks = %d, expected 3", settled)
	}
	time.Sleep(10 * testInterval)
	if ticks.Load() != settled {
		t.Errorf("ticks kept arriving after disarm: %d -> %d", settled, ticks.Load())
	}
}

// TestSchedulerDispatchesThroughDispatcher verifies ticks run via the dispatcher
func TestSchedulerDispatchesThroughDispatcher(t *testing.T) {
	queue := make(chan func(), 16)
	var ticks atomic.Int32
	scheduler := NewScheduler(Config{TickInterval: testInterval}, func(fn func()) {
		queue <- fn
	}, func() bool {
		ticks.Add(1)
		return false
	})
	defer scheduler.Close()

	scheduler.Ensure()
	select {
	case fn := <-queue:
		if ticks.Load() != 0 {
			t.Fatal("tick ran before the dispatched function was executed")
		}
		fn()
	case <-time.After(2 * time.Second):
		t.Fatal("no tick dispatched")
	}

	if ticks.Load() != 1 {
		t.Errorf("ticks = %d, expected 1", ticks.Load())
	}
	if scheduler.Active() {
		t.Error("scheduler still active after tick declined")
	}
}

// TestSchedulerDropsStaleTicks verifies ticks queued before Disarm are ignored
func TestSchedulerDropsStaleTicks(t *testing.T) {
	queue := make(chan func(), 16)
	var ticks atomic.Int32
	scheduler := NewScheduler(Config{TickInterval: testInterval}, func(fn func()) {
		queue <- fn
	}, func() bool {
		ticks.Add(1)
		return true
	})
	defer scheduler.Close()

	scheduler.Ensure()
	stale := <-queue
	scheduler.Disarm()
	stale()

	if ticks.Load() != 0 {
		t.Errorf("stale tick executed %d times", ticks.Load())
	}
}

// TestSchedulerClosePreventsRearm verifies Close is final
func TestSchedulerClosePreventsRearm(t *testing.T) {
	scheduler := NewScheduler(Config{TickInterval: time.Hour}, nil, nil)
	scheduler.Ensure()
	scheduler.Close()
	if scheduler.Ensure() {
		t.Error("Ensure armed a closed scheduler")
	}
	if scheduler.Active() {
		t.Error("closed scheduler reports active")
	}
}

// TestStopEndsScheduledTicks drives an engine with a scheduler and verifies
// that Stop leaves no callback armed.
func TestStopEndsScheduledTicks(t *testing.T) {
	clock := newFakeClock()
	engine := New(clock)
	queue := make(chan func(), 64)
	scheduler := NewScheduler(Config{TickInterval: testInterval}, func(fn func()) {
		queue <- fn
	}, func() bool {
		return engine.Tick().Continue
	})
	defer scheduler.Close()

	_ = engine.Start(model.Fields{Seconds: 10})
	scheduler.Ensure()
	(<-queue)()
	if !scheduler.Active() {
		t.Fatal("scheduler disarmed while countdown running")
	}

	engine.Stop()
	for scheduler.Active() {
		select {
		case fn := <-queue:
			fn()
		case <-time.After(2 * time.Second):
			t.Fatal("no tick arrived after Stop")
		}
	}
	if engine.Duration() != 0 {
		t.Errorf("Duration = %v, expected 0", engine.Duration())
	}
}

// TestMalformedInputSchedulesNothing mirrors the desktop start handler
func TestMalformedInputSchedulesNothing(t *testing.T) {
	engine := New(newFakeClock())
	scheduler := NewScheduler(Config{TickInterval: time.Hour}, nil, func() bool { return engine.Tick().Continue })
	defer scheduler.Close()

	if _, err := engine.StartFields("abc", "0", "0"); err == nil {
		scheduler.Ensure()
	}
	if scheduler.Active() {
		t.Error("scheduler armed after InputError")
	}
	if engine.State() != StateIdle {
		t.Errorf("State = %s, expected idle", engine.State())
	}
}
