package model

import "time"

// Fields holds the hours/minutes/seconds entered for a countdown.
type Fields struct {
	Hours   int
	Minutes int
	Seconds int
}

// Duration returns the total length described by the fields.
func (fields Fields) Duration() time.Duration {
	return time.Duration(fields.TotalSeconds()) * time.Second
}

// TotalSeconds returns hours*3600 + minutes*60 + seconds.
func (fields Fields) TotalSeconds() int64 {
	return int64(fields.Hours)*3600 + int64(fields.Minutes)*60 + int64(fields.Seconds)
}

// TimerConfig contains runtime settings for the countdown window.
type TimerConfig struct {
	Defaults     Fields
	ChimeEnabled bool
	TickInterval time.Duration
}
