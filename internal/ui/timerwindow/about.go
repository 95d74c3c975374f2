package timerwindow

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// AboutInfo describes the program for the About dialog.
type AboutInfo struct {
	Name    string
	Version string
	License string
	Authors []string
}

// DefaultAbout is the stock About content.
var DefaultAbout = AboutInfo{
	Name:    "Timekeeper",
	Version: "1.0.0",
	License: "MIT",
	Authors: []string{"Stefano Scansani"},
}

// Lines returns the dialog body, one entry per line.
func (info AboutInfo) Lines() []string {
	return []string{
		"Version " + info.Version,
		"License: " + info.License,
		"Authors: " + strings.Join(info.Authors, ", "),
	}
}

// ShowAbout opens the About dialog over the timer window.
func (timer *Window) ShowAbout(info AboutInfo) {
	title := widget.NewLabelWithStyle(info.Name, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	body := container.NewVBox(title)
	for _, line := range info.Lines() {
		body.Add(widget.NewLabelWithStyle(line, fyne.TextAlignCenter, fyne.TextStyle{}))
	}
	dialog.ShowCustom("About "+info.Name, "Close", body, timer.window)
}
