package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"timekeeper/internal/audio"
	"timekeeper/internal/core/model"
	"timekeeper/internal/platform"
	"timekeeper/internal/storage"
	"timekeeper/internal/ui/animation"
	"timekeeper/internal/ui/terminal"

	"github.com/gdamore/tcell/v2"
)

const (
	appName     = "Timekeeper"
	logFileName = "timekeeper-tui.log"
)

func main() {
	store := storage.NewStore(appName, platform.ConfigDir)
	settings, err := store.Load()
	if err != nil {
		log.Printf("load settings: %v", err)
	}
	defaults := settings.Defaults()

	hours := flag.Int("hours", defaults.Hours, "countdown hours")
	minutes := flag.Int("minutes", defaults.Minutes, "countdown minutes")
	seconds := flag.Int("seconds", defaults.Seconds, "countdown seconds")
	mute := flag.Bool("mute", !settings.ChimeEnabled, "do not play the chime")
	flag.Parse()

	config := settings.TimerConfig()
	config.Defaults = model.Fields{Hours: *hours, Minutes: *minutes, Seconds: *seconds}

	chime := audio.NewChime(!*mute)
	if chime.Enabled() {
		if err := chime.Init(); err != nil {
			log.Printf("audio unavailable: %v", err)
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("init screen: %v", err)
	}
	defer screen.Fini()

	// The screen owns the terminal from here on.
	if logFile, err := openLog(store); err != nil {
		log.SetOutput(io.Discard)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var view *terminal.View
	flash := animation.New(animation.DefaultConfig(), func(lit bool) {
		view.Post(func() { view.SetLit(lit) })
	})
	defer flash.Stop()

	view = terminal.New(screen, config, terminal.Options{
		OnReset: flash.Stop,
		OnExpired: func() {
			if err := chime.Play(); err != nil {
				log.Printf("play chime: %v", err)
			}
			flash.StartFlash(ctx)
		},
	})
	view.Run(ctx)
}

func openLog(store *storage.Store) (*os.File, error) {
	settingsPath, err := store.Path()
	if err != nil {
		return nil, err
	}
	logPath := filepath.Join(filepath.Dir(settingsPath), logFileName)
	if err := os.MkdirAll(filepath.Dir(logPath), 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}
