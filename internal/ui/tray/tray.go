package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines menu action handlers.
type Callbacks struct {
	OnShow        func()
	OnTogglePause func()
	OnStop        func()
	OnPreferences func()
	OnAbout       func()
	OnQuit        func()
}

// Manager owns the menu shared by the system tray and the in-window menu
// button. app may be nil when the driver has no system tray.
type Manager struct {
	app         desktop.App
	statusItem  *fyne.MenuItem
	pauseItem   *fyne.MenuItem
	stopItem    *fyne.MenuItem
	callbacks   Callbacks
	paused      bool
	active      bool
	statusLabel string
	menu        *fyne.Menu
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:         app,
		callbacks:   callbacks,
		statusLabel: "idle",
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true

	manager.pauseItem = fyne.NewMenuItem("Pause", invoke(&manager.callbacks.OnTogglePause))
	manager.pauseItem.Disabled = true

	manager.stopItem = fyne.NewMenuItem("Stop", invoke(&manager.callbacks.OnStop))
	manager.stopItem.Disabled = true

	manager.menu = fyne.NewMenu("Timekeeper",
		manager.statusItem,
		fyne.NewMenuItem("Show timer", invoke(&manager.callbacks.OnShow)),
		manager.pauseItem,
		manager.stopItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", invoke(&manager.callbacks.OnPreferences)),
		fyne.NewMenuItem("About", invoke(&manager.callbacks.OnAbout)),
		fyne.NewMenuItem("Quit", invoke(&manager.callbacks.OnQuit)),
	)
	manager.refreshStatus()

	return manager
}

// Menu returns the menu for pop-up use.
func (manager *Manager) Menu() *fyne.Menu {
	return manager.menu
}

// Status returns the status line shown at the top of the menu.
func (manager *Manager) Status() string {
	return manager.statusItem.Label
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	manager.statusLabel = status
	manager.refreshStatus()
}

// SetActive enables the run controls while a countdown exists.
func (manager *Manager) SetActive(active bool) {
	manager.active = active
	manager.pauseItem.Disabled = !active
	manager.stopItem.Disabled = !active
	if !active {
		manager.paused = false
		manager.pauseItem.Label = "Pause"
	}
	manager.refreshStatus()
}

// SetPaused updates pause state.
func (manager *Manager) SetPaused(paused bool) {
	manager.paused = paused
	if paused {
		manager.pauseItem.Label = "Resume"
	} else {
		manager.pauseItem.Label = "Pause"
	}
	manager.refreshStatus()
}

func (manager *Manager) refreshStatus() {
	status := manager.statusLabel
	if manager.paused {
		status = fmt.Sprintf("%s (paused)", status)
	}
	manager.statusItem.Label = fmt.Sprintf("Timer: %s", status)
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	manager.menu.Refresh()
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.menu)
	}
}

// invoke defers the nil check until the item is activated, so callbacks
// may be filled in after New.
func invoke(handler *func()) func() {
	return func() {
		if *handler != nil {
			(*handler)()
		}
	}
}
