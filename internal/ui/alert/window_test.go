package alert

import (
	"testing"

	"fyne.io/fyne/v2/test"
)

func TestShowAndDismiss(t *testing.T) {
	alert := New(test.NewTempApp(t))

	dismissed := 0
	alert.SetOnDismiss(func() { dismissed++ })

	alert.Show("")
	if !alert.Visible() {
		t.Fatal("alert not visible after Show")
	}
	if alert.Message() != DefaultMessage {
		t.Errorf("Message = %q, expected %q", alert.Message(), DefaultMessage)
	}

	test.Tap(alert.dismissButton)
	if alert.Visible() {
		t.Error("alert still visible after Dismiss")
	}
	if dismissed != 1 {
		t.Errorf("dismissed = %d, expected 1", dismissed)
	}
}

func TestHideDoesNotDismiss(t *testing.T) {
	alert := New(test.NewTempApp(t))
	dismissed := false
	alert.SetOnDismiss(func() { dismissed = true })

	alert.Show("Tea is ready")
	if alert.Message() != "Tea is ready" {
		t.Errorf("Message = %q", alert.Message())
	}
	alert.Hide()
	if dismissed {
		t.Error("Hide ran the dismiss handler")
	}
}
