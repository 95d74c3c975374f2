package countdown

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"timekeeper/internal/core/model"
)

// ErrInvalidField indicates that an hours/minutes/seconds value is not a
// non-negative integer.
var ErrInvalidField = errors.New("invalid time field")

// ErrDurationTooLong indicates that the fields describe a duration that does
// not fit in a time.Duration.
var ErrDurationTooLong = errors.New("duration too long")

const maxTotalSeconds = int64(1<<63-1) / int64(time.Second)

// InputError reports a malformed hours, minutes or seconds field.
type InputError struct {
	Field string
	Text  string
	Err   error
}

func (err *InputError) Error() string {
	if err.Text == "" && err.Field == "" {
		return err.Err.Error()
	}
	return fmt.Sprintf("%s %q: %v", err.Field, err.Text, err.Err)
}

func (err *InputError) Unwrap() error {
	return err.Err
}

// Message returns the error phrased for a status line.
func (err *InputError) Message() string {
	if errors.Is(err.Err, ErrDurationTooLong) {
		return "That countdown is too long"
	}
	return fmt.Sprintf("Enter a whole number of %s (got %q)", err.Field, err.Text)
}

// ErrorMessage phrases err for a status line, using Message for an
// *InputError anywhere in the chain.
func ErrorMessage(err error) string {
	var inputErr *InputError
	if errors.As(err, &inputErr) {
		return inputErr.Message()
	}
	return err.Error()
}

// ParseFields converts raw entry text into validated fields.
func ParseFields(hours, minutes, seconds string) (model.Fields, error) {
	var fields model.Fields
	var err error

	if fields.Hours, err = parseField("hours", hours); err != nil {
		return model.Fields{}, err
	}
	if fields.Minutes, err = parseField("minutes", minutes); err != nil {
		return model.Fields{}, err
	}
	if fields.Seconds, err = parseField("seconds", seconds); err != nil {
		return model.Fields{}, err
	}
	if err := ValidateFields(fields); err != nil {
		return model.Fields{}, err
	}
	return fields, nil
}

// ValidateFields checks already-parsed fields.
func ValidateFields(fields model.Fields) error {
	checks := []struct {
		name  string
		value int
	}{
		{"hours", fields.Hours},
		{"minutes", fields.Minutes},
		{"seconds", fields.Seconds},
	}
	for _, check := range checks {
		if check.value < 0 {
			return &InputError{Field: check.name, Text: strconv.Itoa(check.value), Err: ErrInvalidField}
		}
	}
	if int64(fields.Hours) > maxTotalSeconds/3600 ||
		int64(fields.Minutes) > maxTotalSeconds/60 ||
		int64(fields.Seconds) > maxTotalSeconds ||
		fields.TotalSeconds() > maxTotalSeconds {
		return &InputError{Err: ErrDurationTooLong}
	}
	return nil
}

func parseField(name, text string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || value < 0 {
		return 0, &InputError{Field: name, Text: text, Err: ErrInvalidField}
	}
	return value, nil
}

// FormatClock renders a duration as HH:MM:SS. Hours are not wrapped at 24.
func FormatClock(value time.Duration) string {
	if value < 0 {
		value = 0
	}
	total := int64(value / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
