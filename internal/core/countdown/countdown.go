package countdown

import (
	"context"
	"errors"
	"time"

	"timekeeper/internal/core/model"

	"github.com/looplab/fsm"
)

// Clock supplies the current instant. Times returned by time.Now carry a
// monotonic reading, so elapsed time is immune to wall-clock changes.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

// SystemClock is the production Clock.
var SystemClock Clock = systemClock{}

// Engine is the countdown state holder. It is not safe for concurrent use:
// the UI thread owns it and the Scheduler only dispatches onto that thread.
type Engine struct {
	clock       Clock
	machine     *fsm.FSM
	duration    time.Duration
	startedAt   time.Time
	accumulated time.Duration
}

// New creates an idle engine.
func New(clock Clock) *Engine {
	if clock == nil {
		clock = SystemClock
	}
	engine := &Engine{clock: clock}

	idle := string(StateIdle)
	running := string(StateRunning)
	paused := string(StatePaused)
	expired := string(StateExpired)

	engine.machine = fsm.NewFSM(
		idle,
		fsm.Events{
			{Name: eventStart, Src: []string{idle, running, paused, expired}, Dst: running},
			{Name: eventPause, Src: []string{running}, Dst: paused},
			{Name: eventResume, Src: []string{paused}, Dst: running},
			{Name: eventStop, Src: []string{idle, running, paused, expired}, Dst: idle},
			{Name: eventExpire, Src: []string{running}, Dst: expired},
		},
		fsm.Callbacks{
			"enter_" + running: func(_ context.Context, _ *fsm.Event) {
				engine.startedAt = engine.clock.Now()
			},
			"leave_" + running: func(_ context.Context, _ *fsm.Event) {
				engine.accumulated += engine.sinceStart()
			},
			"enter_" + idle: func(_ context.Context, _ *fsm.Event) {
				engine.duration = 0
				engine.accumulated = 0
			},
		},
	)
	return engine
}

// StartFields parses raw entry text and starts the countdown. On an
// *InputError the engine is left untouched.
func (engine *Engine) StartFields(hours, minutes, seconds string) (Snapshot, error) {
	fields, err := ParseFields(hours, minutes, seconds)
	if err != nil {
		return engine.Snapshot(), err
	}
	if err := engine.Start(fields); err != nil {
		return engine.Snapshot(), err
	}
	return engine.Snapshot(), nil
}

// Start begins a new run of fields.Duration(). Starting while running,
// paused or expired discards the previous run.
func (engine *Engine) Start(fields model.Fields) error {
	if err := ValidateFields(fields); err != nil {
		return err
	}

	wasRunning := engine.machine.Is(string(StateRunning))
	engine.duration = fields.Duration()
	engine.accumulated = 0
	if err := engine.fire(eventStart); err != nil {
		return err
	}
	if wasRunning {
		// running -> running is not a transition, so enter_running did not fire.
		engine.startedAt = engine.clock.Now()
	}
	return nil
}

// Tick recomputes the remaining time. It reports Continue=false once the
// countdown has expired or is not running.
func (engine *Engine) Tick() TickResult {
	if !engine.machine.Is(string(StateRunning)) {
		remaining := engine.remaining()
		return TickResult{
			Remaining: remaining,
			Label:     FormatClock(remaining),
			Progress:  engine.ProgressFraction(),
		}
	}

	remaining := engine.remaining()
	if remaining <= 0 {
		_ = engine.fire(eventExpire)
		return TickResult{
			Label:   FormatClock(0),
			Expired: true,
		}
	}

	return TickResult{
		Remaining: remaining,
		Label:     FormatClock(remaining),
		Progress:  engine.ProgressFraction(),
		Continue:  true,
	}
}

// Pause freezes the countdown. Time spent paused is not counted as elapsed.
func (engine *Engine) Pause() {
	if !engine.machine.Can(eventPause) {
		return
	}
	_ = engine.fire(eventPause)
}

// Resume continues a paused countdown from where it was paused.
func (engine *Engine) Resume() {
	if !engine.machine.Can(eventResume) {
		return
	}
	_ = engine.fire(eventResume)
}

// Stop resets the engine to idle with a zero duration.
func (engine *Engine) Stop() {
	_ = engine.fire(eventStop)
	engine.duration = 0
	engine.accumulated = 0
}

// ProgressFraction returns remaining/duration in [0,1] while a run is active
// (running or paused), otherwise 0.
func (engine *Engine) ProgressFraction() float64 {
	if engine.duration <= 0 {
		return 0
	}
	state := engine.State()
	if state != StateRunning && state != StatePaused {
		return 0
	}
	progress := float64(engine.remaining()) / float64(engine.duration)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

// State returns the current lifecycle state.
func (engine *Engine) State() State {
	return State(engine.machine.Current())
}

// Duration returns the length of the current run.
func (engine *Engine) Duration() time.Duration {
	return engine.duration
}

// Remaining returns the whole seconds left in the current run.
func (engine *Engine) Remaining() time.Duration {
	return engine.remaining()
}

// Snapshot returns the current state without advancing it.
func (engine *Engine) Snapshot() Snapshot {
	remaining := engine.remaining()
	return Snapshot{
		State:     engine.State(),
		Duration:  engine.duration,
		Remaining: remaining,
		Progress:  engine.ProgressFraction(),
		Label:     FormatClock(remaining),
	}
}

func (engine *Engine) fire(event string) error {
	err := engine.machine.Event(context.Background(), event)
	if err == nil {
		return nil
	}
	var noTransition fsm.NoTransitionError
	if errors.As(err, &noTransition) {
		return nil
	}
	return err
}

func (engine *Engine) elapsed() time.Duration {
	switch engine.State() {
	case StateRunning:
		return engine.accumulated + engine.sinceStart()
	case StatePaused:
		return engine.accumulated
	default:
		return 0
	}
}

func (engine *Engine) sinceStart() time.Duration {
	if engine.startedAt.IsZero() {
		return 0
	}
	since := engine.clock.Now().Sub(engine.startedAt)
	if since < 0 {
		return 0
	}
	return since
}

func (engine *Engine) remaining() time.Duration {
	if engine.duration <= 0 || engine.State() == StateExpired {
		return 0
	}
	remaining := engine.duration - engine.elapsed().Truncate(time.Second)
	if remaining < 0 {
		return 0
	}
	return remaining
}
