package terminal

import (
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"timekeeper/internal/core/countdown"
	"timekeeper/internal/core/model"

	"github.com/gdamore/tcell/v2"
)

type fakeClock struct {
	now time.Time
}

func (clock *fakeClock) Now() time.Time {
	return clock.now
}

func (clock *fakeClock) Advance(d time.Duration) {
	clock.now = clock.now.Add(d)
}

func newTestView(t *testing.T, defaults model.Fields) (*View, tcell.SimulationScreen, *fakeClock) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(60, 24)

	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	view := New(screen, model.TimerConfig{Defaults: defaults, TickInterval: time.Hour}, Options{Clock: clock})
	t.Cleanup(view.scheduler.Close)
	return view, screen, clock
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func rowText(screen tcell.Screen, y, width int) string {
	runes := make([]rune, 0, width)
	for x := 0; x < width; x++ {
		mainc, _, _, _ := screen.GetContent(x, y)
		runes = append(runes, mainc)
	}
	return string(runes)
}

func containsRune(screen tcell.Screen, width, rows int, want rune) bool {
	for y := 0; y < rows; y++ {
		for x := 0; x < width; x++ {
			if mainc, _, _, _ := screen.GetContent(x, y); mainc == want {
				return true
			}
		}
	}
	return false
}

func TestDrawIdleShowsDefaults(t *testing.T) {
	view, screen, _ := newTestView(t, model.Fields{Minutes: 5})
	view.Draw()

	if got := rowText(screen, 21, 60); !strings.Contains(got, "00:05:00") {
		t.Errorf("label row = %q, expected 00:05:00", got)
	}
	if got := rowText(screen, 23, 60); !strings.Contains(got, "q quit") {
		t.Errorf("help row = %q", got)
	}
	if containsRune(screen, 60, 20, '█') {
		t.Error("progress drawn while idle")
	}
	if !containsRune(screen, 60, 20, '·') {
		t.Error("dial background not drawn")
	}
}

func TestStartTickAndExpire(t *testing.T) {
	expired := 0
	view, screen, clock := newTestView(t, model.Fields{Seconds: 10})
	view.onExpired = func() { expired++ }

	view.HandleKey(key('s'))
	if view.Snapshot().State != countdown.StateRunning {
		t.Fatalf("state = %s, expected running", view.Snapshot().State)
	}
	if !view.scheduler.Active() {
		t.Error("no tick scheduled after start")
	}
	if !containsRune(screen, 60, 20, '█') {
		t.Error("full dial not drawn after start")
	}

	clock.Advance(4 * time.Second)
	if !view.tick() {
		t.Error("tick returned false mid-countdown")
	}
	if got := rowText(screen, 21, 60); !strings.Contains(got, "00:00:06") {
		t.Errorf("label row = %q, expected 00:00:06", got)
	}

	clock.Advance(6 * time.Second)
	if view.tick() {
		t.Error("tick returned true at expiry")
	}
	if view.Status() != "Time's up!" {
		t.Errorf("status = %q", view.Status())
	}
	if expired != 1 {
		t.Errorf("expired handler ran %d times, expected 1", expired)
	}
	if got := rowText(screen, 21, 60); !strings.Contains(got, "00:00:00") {
		t.Errorf("label row = %q, expected 00:00:00", got)
	}
}

func TestPauseResumeStop(t *testing.T) {
	view, _, clock := newTestView(t, model.Fields{Seconds: 30})
	view.HandleKey(key('s'))
	clock.Advance(10 * time.Second)

	view.HandleKey(key('p'))
	if view.Snapshot().State != countdown.StatePaused || view.Status() != "Paused" {
		t.Fatalf("state = %s status = %q, expected paused", view.Snapshot().State, view.Status())
	}
	clock.Advance(time.Minute)
	view.HandleKey(key('p'))
	if got := view.Snapshot().Remaining; got != 20*time.Second {
		t.Errorf("remaining after resume = %v, expected 20s", got)
	}

	view.HandleKey(key('x'))
	if view.Snapshot().State != countdown.StateIdle {
		t.Errorf("state = %s, expected idle", view.Snapshot().State)
	}
	if view.tick() {
		t.Error("tick after stop asked to continue")
	}
}

func TestAdjustMinutes(t *testing.T) {
	view, _, _ := newTestView(t, model.Fields{Seconds: 30})
	view.HandleKey(key('+'))
	view.HandleKey(key('+'))
	if got := view.Fields(); got != (model.Fields{Minutes: 2, Seconds: 30}) {
		t.Errorf("fields = %+v, expected 2m30s", got)
	}
	for i := 0; i < 5; i++ {
		view.HandleKey(key('-'))
	}
	if got := view.Fields(); got != (model.Fields{}) {
		t.Errorf("fields = %+v, expected zero", got)
	}

	view.fields = model.Fields{Minutes: 1}
	view.HandleKey(key('s'))
	view.HandleKey(key('+'))
	if got := view.Fields(); got != (model.Fields{Minutes: 1}) {
		t.Errorf("fields changed while running: %+v", got)
	}
}

func TestQuitKeys(t *testing.T) {
	view, _, _ := newTestView(t, model.Fields{})
	tests := []struct {
		name string
		ev   *tcell.EventKey
	}{
		{"q", key('q')},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if view.HandleKey(tt.ev) {
				t.Error("key did not quit")
			}
		})
	}
	if !view.HandleKey(key('z')) {
		t.Error("unbound key quit")
	}
}

func TestSetLitUsesAlertColors(t *testing.T) {
	view, screen, _ := newTestView(t, model.Fields{Minutes: 1})
	view.HandleKey(key('s'))
	_, _, normal, _ := screen.GetContent(30, 10)

	view.SetLit(true)
	_, _, lit, _ := screen.GetContent(30, 10)
	if normal == lit {
		t.Error("lit dial drawn with the normal palette")
	}
}

func TestRunProcessesPostedEvents(t *testing.T) {
	view, screen, _ := newTestView(t, model.Fields{Minutes: 1})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		view.Run(ctx)
	}()

	ran := make(chan struct{})
	view.Post(func() { close(ran) })
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("posted function never ran")
	}

	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		cancel()
		t.Fatal("Run did not return on q")
	}
	cancel()
}

func TestRingGlyph(t *testing.T) {
	tests := []struct {
		dx, dy float64
		want   rune
	}{
		{10, 0, '│'},
		{0, -10, '─'},
		{7, 7, '╱'},
		{7, -7, '╲'},
	}
	for _, tt := range tests {
		if got := ringGlyph(tt.dx, tt.dy); got != tt.want {
			t.Errorf("ringGlyph(%v, %v) = %q, expected %q", tt.dx, tt.dy, got, tt.want)
		}
	}
}

func TestStartErrorShownOnStatusLine(t *testing.T) {
	view, screen, _ := newTestView(t, model.Fields{Hours: math.MaxInt})
	view.HandleKey(key('s'))

	if view.Status() != "That countdown is too long" {
		t.Errorf("status = %q", view.Status())
	}
	if view.Snapshot().State != countdown.StateIdle {
		t.Errorf("state = %s, expected idle", view.Snapshot().State)
	}
	if got := rowText(screen, 22, 60); !strings.Contains(got, "too long") {
		t.Errorf("status row = %q", got)
	}
}

func TestResetHandlerOnStartAndStop(t *testing.T) {
	view, _, clock := newTestView(t, model.Fields{Seconds: 2})
	resets := 0
	view.onReset = func() { resets++ }

	view.HandleKey(key('s'))
	clock.Advance(2 * time.Second)
	view.tick()
	view.HandleKey(key('p'))
	if resets != 1 {
		t.Fatalf("resets after start and expiry = %d, expected 1", resets)
	}

	view.HandleKey(key('s'))
	view.HandleKey(key('x'))
	if resets != 3 {
		t.Errorf("resets after restart and stop = %d, expected 3", resets)
	}
}
