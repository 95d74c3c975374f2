package preferences

import (
	"time"

	"timekeeper/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	DefaultHours   int
	DefaultMinutes int
	DefaultSeconds int
	ChimeEnabled   bool
}

// DefaultSettings returns default settings for Timekeeper.
func DefaultSettings() Settings {
	return Settings{
		DefaultHours:   0,
		DefaultMinutes: 1,
		DefaultSeconds: 0,
		ChimeEnabled:   true,
	}
}

// Defaults returns the entry values a fresh window starts with.
func (settings Settings) Defaults() model.Fields {
	return model.Fields{
		Hours:   settings.DefaultHours,
		Minutes: settings.DefaultMinutes,
		Seconds: settings.DefaultSeconds,
	}
}

// TimerConfig converts settings to TimerConfig.
func (settings Settings) TimerConfig() model.TimerConfig {
	return model.TimerConfig{
		Defaults:     settings.Defaults(),
		ChimeEnabled: settings.ChimeEnabled,
		TickInterval: time.Second,
	}
}
