package alert

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// DefaultMessage is shown when a countdown reaches zero.
const DefaultMessage = "Time's up!"

var (
	backgroundColor = color.NRGBA{R: 0, G: 0, B: 0, A: 217}
	titleColor      = color.NRGBA{R: 232, G: 190, B: 66, A: 255}
	messageColor    = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// Window is the small undecorated window raised when time is up.
type Window struct {
	window        fyne.Window
	titleLabel    *canvas.Text
	messageLabel  *canvas.Text
	dismissButton *widget.Button
	onDismiss     func()
	visible       bool
}

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates a hidden alert window.
func New(app fyne.App) *Window {
	window := app.NewWindow("Timekeeper")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated (no native frame/buttons).
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(backgroundColor)

	titleLabel := canvas.NewText("Timekeeper", titleColor)
	titleLabel.Alignment = fyne.TextAlignCenter
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	titleLabel.TextSize = 16

	messageLabel := canvas.NewText(DefaultMessage, messageColor)
	messageLabel.Alignment = fyne.TextAlignCenter
	messageLabel.TextStyle = fyne.TextStyle{Bold: true}
	messageLabel.TextSize = 24

	alert := &Window{
		window:       window,
		titleLabel:   titleLabel,
		messageLabel: messageLabel,
	}
	alert.dismissButton = widget.NewButton("Dismiss", alert.dismiss)

	content := container.NewPadded(container.NewVBox(titleLabel, messageLabel, alert.dismissButton))
	window.SetContent(container.NewStack(background, content))
	window.Resize(fyne.NewSize(260, 140))

	return alert
}

// SetOnDismiss sets the dismiss handler.
func (alert *Window) SetOnDismiss(handler func()) {
	alert.onDismiss = handler
}

// Show raises the alert with message, or DefaultMessage when empty.
func (alert *Window) Show(message string) {
	if message == "" {
		message = DefaultMessage
	}
	alert.messageLabel.Text = message
	alert.messageLabel.Refresh()
	alert.visible = true
	alert.window.CenterOnScreen()
	alert.window.Show()
	alert.window.RequestFocus()
}

// Hide closes the alert without running the dismiss handler.
func (alert *Window) Hide() {
	alert.visible = false
	alert.window.Hide()
}

// Visible reports whether the alert is showing.
func (alert *Window) Visible() bool {
	return alert.visible
}

// Message returns the text currently displayed.
func (alert *Window) Message() string {
	return alert.messageLabel.Text
}

func (alert *Window) dismiss() {
	alert.Hide()
	if alert.onDismiss != nil {
		alert.onDismiss()
	}
}
