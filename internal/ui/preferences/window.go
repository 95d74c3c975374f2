package preferences

import (
	"log"
	"strconv"

	"timekeeper/internal/core/countdown"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window   fyne.Window
	settings Settings
	onSave   func(Settings)
	hours    *widget.Entry
	minutes  *widget.Entry
	seconds  *widget.Entry
	chime    *widget.Check
	errLabel *widget.Label
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Timekeeper Settings")

	hours := widget.NewEntry()
	minutes := widget.NewEntry()
	seconds := widget.NewEntry()
	chime := widget.NewCheck("Play a chime when time is up", nil)
	errLabel := widget.NewLabel("")
	errLabel.Importance = widget.DangerImportance

	form := container.NewVBox(
		widget.NewLabelWithStyle("Default countdown", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewGridWithColumns(3, hours, minutes, seconds),
		container.NewGridWithColumns(3, widget.NewLabel("hours"), widget.NewLabel("minutes"), widget.NewLabel("seconds")),
		chime,
		errLabel,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(320, 200))

	prefs := &Window{
		window:   window,
		onSave:   onSave,
		hours:    hours,
		minutes:  minutes,
		seconds:  seconds,
		chime:    chime,
		errLabel: errLabel,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	}
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// Settings returns the last saved values.
func (prefs *Window) Settings() Settings {
	return prefs.settings
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.errLabel.SetText("")
	prefs.hours.SetText(strconv.Itoa(settings.DefaultHours))
	prefs.minutes.SetText(strconv.Itoa(settings.DefaultMinutes))
	prefs.seconds.SetText(strconv.Itoa(settings.DefaultSeconds))
	prefs.chime.SetChecked(settings.ChimeEnabled)
}

// ErrorText returns the validation message currently shown.
func (prefs *Window) ErrorText() string {
	return prefs.errLabel.Text
}

func (prefs *Window) handleSave() {
	fields, err := countdown.ParseFields(prefs.hours.Text, prefs.minutes.Text, prefs.seconds.Text)
	if err != nil {
		log.Printf("preferences: %v", err)
		prefs.errLabel.SetText(countdown.ErrorMessage(err))
		return
	}

	settings := prefs.settings
	settings.DefaultHours = fields.Hours
	settings.DefaultMinutes = fields.Minutes
	settings.DefaultSeconds = fields.Seconds
	settings.ChimeEnabled = prefs.chime.Checked

	prefs.UpdateSettings(settings)
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}
