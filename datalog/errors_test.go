package datalog

import (
	"errors"
	"strings"
	"testing"
)

func TestLoginError(t *testing.T) {
	cause := errors.New("spreadsheet 'DHT22' not found")
	err := &LoginError{Spreadsheet: "DHT22", Err: cause}

	if !errors.Is(err, cause) {
		t.Errorf("Expected LoginError to unwrap to %v", cause)
	}

	if !strings.Contains(err.Error(), "DHT22") {
		t.Errorf("Expected spreadsheet name in error message, got %q", err.Error())
	}

	for _, hint := range []string{"credentials", "spreadsheet name", "shared"} {
		if !strings.Contains(err.Hint(), hint) {
			t.Errorf("Expected '%v' in login hint, got %q", hint, err.Hint())
		}
	}
}

func TestAppendError(t *testing.T) {
	cause := errors.New("401 invalid credentials")
	err := &AppendError{Spreadsheet: "DHT22", Err: cause}

	if !errors.Is(err, cause) {
		t.Errorf("Expected AppendError to unwrap to %v", cause)
	}
}
