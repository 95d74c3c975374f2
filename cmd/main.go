package main

import (
	"context"
	"log"

	"timekeeper/internal/audio"
	"timekeeper/internal/core/countdown"
	"timekeeper/internal/platform"
	"timekeeper/internal/storage"
	"timekeeper/internal/ui/alert"
	"timekeeper/internal/ui/animation"
	"timekeeper/internal/ui/preferences"
	"timekeeper/internal/ui/timerwindow"
	"timekeeper/internal/ui/tray"
	"timekeeper/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

const appName = "Timekeeper"

func main() {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		log.Printf("single instance: %v", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := app.NewWithID("com.example.TimerApp")
	activeIcon := resources.MustLogo(resources.LogoActive)
	pausedIcon := resources.MustLogo(resources.LogoPaused)
	fyneApp.SetIcon(activeIcon)

	store := storage.NewStore(appName, platform.ConfigDir)
	settings, err := store.Load()
	if err != nil {
		log.Printf("load settings: %v", err)
	}

	chime := audio.NewChime(settings.ChimeEnabled)
	if err := chime.Init(); err != nil {
		log.Printf("audio unavailable: %v", err)
	}

	timer := timerwindow.New(fyneApp, settings.TimerConfig(), timerwindow.Options{})
	alertWindow := alert.New(fyneApp)

	flash := animation.New(animation.DefaultConfig(), func(lit bool) {
		fyne.Do(func() {
			timer.SetLit(lit)
		})
	})
	alertWindow.SetOnDismiss(flash.Stop)

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		settings = updated
		if err := store.Save(settings); err != nil {
			log.Printf("save settings: %v", err)
		}
		chime.SetEnabled(settings.ChimeEnabled)
		timer.SetDefaults(settings.Defaults())
	})

	desktopApp, hasTray := fyneApp.(desktop.App)
	if !hasTray {
		log.Printf("system tray unsupported on this platform")
	}

	quit := func() {
		flash.Stop()
		timer.Close()
		fyneApp.Quit()
	}

	trayManager := tray.New(desktopApp, tray.Callbacks{
		OnShow:        timer.Show,
		OnTogglePause: timer.TogglePause,
		OnStop:        timer.Stop,
		OnPreferences: prefsWindow.Show,
		OnAbout: func() {
			timer.Show()
			timer.ShowAbout(timerwindow.DefaultAbout)
		},
		OnQuit: quit,
	})
	timer.SetMenu(trayManager.Menu())

	if desktopApp != nil {
		desktopApp.SetSystemTrayIcon(activeIcon)
		timer.Window().SetCloseIntercept(func() {
			timer.Window().Hide()
		})
	} else {
		timer.Window().SetCloseIntercept(quit)
	}

	timer.SetOnChange(func(snapshot countdown.Snapshot) {
		active := snapshot.State == countdown.StateRunning || snapshot.State == countdown.StatePaused
		trayManager.SetActive(active)
		trayManager.SetPaused(snapshot.State == countdown.StatePaused)
		trayManager.SetStatus(trayStatus(snapshot))
		if desktopApp != nil {
			if snapshot.State == countdown.StatePaused {
				desktopApp.SetSystemTrayIcon(pausedIcon)
			} else {
				desktopApp.SetSystemTrayIcon(activeIcon)
			}
		}
	})

	timer.SetOnReset(func() {
		flash.Stop()
		alertWindow.Hide()
	})

	timer.SetOnExpired(func() {
		fyneApp.SendNotification(fyne.NewNotification(appName, timerwindow.TimesUpMessage))
		if err := chime.Play(); err != nil {
			log.Printf("play chime: %v", err)
		}
		alertWindow.Show(timerwindow.TimesUpMessage)
		flash.StartFlash(context.Background())
	})

	timer.Show()
	fyneApp.Run()
}

func trayStatus(snapshot countdown.Snapshot) string {
	switch snapshot.State {
	case countdown.StateRunning, countdown.StatePaused:
		return snapshot.Label + " left"
	case countdown.StateExpired:
		return "time's up"
	default:
		return "idle"
	}
}
