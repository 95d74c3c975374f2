package timerwindow

import (
	"log"
	"strconv"

	"timekeeper/internal/core/countdown"
	"timekeeper/internal/core/model"
	"timekeeper/internal/ui/dial"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// TimesUpMessage is shown when a countdown reaches zero.
const TimesUpMessage = "Time's up!"

// Options holds collaborators that tests replace.
type Options struct {
	// Clock defaults to countdown.SystemClock.
	Clock countdown.Clock
	// Dispatch runs tick callbacks on the UI thread; defaults to fyne.Do.
	Dispatch countdown.Dispatcher
}

// Window is the main countdown window. All of its methods must be called on
// the UI thread.
type Window struct {
	window    fyne.Window
	engine    *countdown.Engine
	scheduler *countdown.Scheduler
	menu      *fyne.Menu

	timerLabel   *widget.Label
	statusLabel  *widget.Label
	hoursEntry   *widget.Entry
	minutesEntry *widget.Entry
	secondsEntry *widget.Entry
	startButton  *widget.Button
	pauseButton  *widget.Button
	stopButton   *widget.Button
	menuButton   *widget.Button
	dial         *dial.Dial

	onExpired func()
	onReset   func()
	onChange  func(countdown.Snapshot)
}

// New builds the countdown window.
func New(app fyne.App, config model.TimerConfig, options Options) *Window {
	if options.Dispatch == nil {
		options.Dispatch = fyne.Do
	}

	window := app.NewWindow("Countdown Timer")

	timerLabel := widget.NewLabelWithStyle(countdown.FormatClock(0), fyne.TextAlignCenter, fyne.TextStyle{Monospace: true})
	statusLabel := widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Italic: true})

	hoursEntry := newFieldEntry("hours")
	minutesEntry := newFieldEntry("minutes")
	secondsEntry := newFieldEntry("seconds")

	timer := &Window{
		window:       window,
		engine:       countdown.New(options.Clock),
		timerLabel:   timerLabel,
		statusLabel:  statusLabel,
		hoursEntry:   hoursEntry,
		minutesEntry: minutesEntry,
		secondsEntry: secondsEntry,
		dial:         dial.New(fyne.NewSize(200, 200)),
	}
	timer.scheduler = countdown.NewScheduler(
		countdown.Config{TickInterval: config.TickInterval},
		options.Dispatch,
		timer.tick,
	)
	timer.SetDefaults(config.Defaults)

	timer.startButton = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), timer.handleStart)
	timer.pauseButton = widget.NewButtonWithIcon("Pause", theme.MediaPauseIcon(), timer.handlePause)
	timer.stopButton = widget.NewButtonWithIcon("Stop", theme.MediaStopIcon(), timer.handleStop)
	timer.menuButton = widget.NewButtonWithIcon("Menu", theme.MenuIcon(), timer.showMenu)

	content := container.NewVBox(
		timerLabel,
		container.NewGridWithColumns(3, hoursEntry, minutesEntry, secondsEntry),
		container.NewGridWithColumns(3, timer.startButton, timer.pauseButton, timer.stopButton),
		container.NewCenter(timer.dial.Object()),
		statusLabel,
		timer.menuButton,
	)
	window.SetContent(container.NewPadded(content))
	window.Resize(fyne.NewSize(400, 300))

	timer.refresh()
	return timer
}

func newFieldEntry(placeholder string) *widget.Entry {
	entry := widget.NewEntry()
	entry.SetPlaceHolder(placeholder)
	return entry
}

// Window returns the underlying Fyne window.
func (timer *Window) Window() fyne.Window {
	return timer.window
}

// Show displays the window.
func (timer *Window) Show() {
	timer.window.Show()
	timer.window.RequestFocus()
}

// SetMenu sets the menu opened by the Menu button.
func (timer *Window) SetMenu(menu *fyne.Menu) {
	timer.menu = menu
}

// SetOnExpired sets the handler run once when a countdown reaches zero.
func (timer *Window) SetOnExpired(handler func()) {
	timer.onExpired = handler
}

// SetOnReset sets the handler run when a countdown is started or stopped,
// so expiry effects from a previous run can be cleared.
func (timer *Window) SetOnReset(handler func()) {
	timer.onReset = handler
}

// SetOnChange sets the handler run after every state or tick update.
func (timer *Window) SetOnChange(handler func(countdown.Snapshot)) {
	timer.onChange = handler
}

// SetDefaults fills the entries unless a countdown is in progress.
func (timer *Window) SetDefaults(fields model.Fields) {
	if state := timer.engine.State(); state == countdown.StateRunning || state == countdown.StatePaused {
		return
	}
	timer.hoursEntry.SetText(strconv.Itoa(fields.Hours))
	timer.minutesEntry.SetText(strconv.Itoa(fields.Minutes))
	timer.secondsEntry.SetText(strconv.Itoa(fields.Seconds))
}

// Snapshot returns the current countdown state.
func (timer *Window) Snapshot() countdown.Snapshot {
	return timer.engine.Snapshot()
}

// TogglePause pauses a running countdown or resumes a paused one.
func (timer *Window) TogglePause() {
	timer.handlePause()
}

// Stop resets the countdown.
func (timer *Window) Stop() {
	timer.handleStop()
}

// SetLit switches the dial highlight used by the expiry flash.
func (timer *Window) SetLit(lit bool) {
	timer.dial.SetLit(lit)
}

// Close stops ticking for good.
func (timer *Window) Close() {
	timer.scheduler.Close()
}

func (timer *Window) handleStart() {
	_, err := timer.engine.StartFields(timer.hoursEntry.Text, timer.minutesEntry.Text, timer.secondsEntry.Text)
	if err != nil {
		log.Printf("start countdown: %v", err)
		timer.statusLabel.SetText(countdown.ErrorMessage(err))
		return
	}
	timer.statusLabel.SetText("")
	timer.reset()
	timer.scheduler.Ensure()
	timer.refresh()
}

func (timer *Window) handlePause() {
	switch timer.engine.State() {
	case countdown.StateRunning:
		timer.engine.Pause()
		timer.statusLabel.SetText("Paused")
	case countdown.StatePaused:
		timer.engine.Resume()
		timer.statusLabel.SetText("")
		timer.scheduler.Ensure()
	default:
		return
	}
	timer.refresh()
}

func (timer *Window) handleStop() {
	timer.engine.Stop()
	timer.statusLabel.SetText("")
	timer.reset()
	timer.refresh()
}

func (timer *Window) reset() {
	if timer.onReset != nil {
		timer.onReset()
	}
}

// tick is the scheduler callback; it reports whether ticking should go on.
func (timer *Window) tick() bool {
	result := timer.engine.Tick()
	if result.Expired {
		timer.statusLabel.SetText(TimesUpMessage)
	}
	timer.refresh()
	if result.Expired && timer.onExpired != nil {
		timer.onExpired()
	}
	return result.Continue
}

func (timer *Window) refresh() {
	snapshot := timer.engine.Snapshot()

	timer.timerLabel.SetText(snapshot.Label)
	timer.dial.SetProgress(snapshot.Progress)

	switch snapshot.State {
	case countdown.StateRunning:
		timer.pauseButton.SetText("Pause")
		timer.pauseButton.SetIcon(theme.MediaPauseIcon())
		timer.pauseButton.Enable()
		timer.stopButton.Enable()
	case countdown.StatePaused:
		timer.pauseButton.SetText("Resume")
		timer.pauseButton.SetIcon(theme.MediaPlayIcon())
		timer.pauseButton.Enable()
		timer.stopButton.Enable()
	default:
		timer.pauseButton.SetText("Pause")
		timer.pauseButton.SetIcon(theme.MediaPauseIcon())
		timer.pauseButton.Disable()
		timer.stopButton.Disable()
	}

	if timer.onChange != nil {
		timer.onChange(snapshot)
	}
}

func (timer *Window) showMenu() {
	if timer.menu == nil {
		return
	}
	driver := fyne.CurrentApp().Driver()
	position := driver.AbsolutePositionForObject(timer.menuButton)
	position = position.AddXY(0, timer.menuButton.Size().Height)
	widget.ShowPopUpMenuAtPosition(timer.menu, timer.window.Canvas(), position)
}
