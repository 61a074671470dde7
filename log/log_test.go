package log

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func capture(t *testing.T) *bytes.Buffer {
	var b bytes.Buffer

	flags := log.Flags()
	w := log.Writer()
	log.SetOutput(&b)
	log.SetFlags(0)

	t.Cleanup(func() {
		log.SetOutput(w)
		log.SetFlags(flags)
		SetDebug(false)
	})

	return &b
}

func TestInfof(t *testing.T) {
	b := capture(t)

	Infof("Wrote a row to %v", "DHT22")

	expected := "INFO  Wrote a row to DHT22\n"
	if b.String() != expected {
		t.Errorf("Incorrect log output\n   expected: %q\n   got:      %q", expected, b.String())
	}
}

func TestDebugfDisabled(t *testing.T) {
	b := capture(t)

	SetDebug(false)
	Debugf("not %v", "logged")

	if b.Len() != 0 {
		t.Errorf("Expected no DEBUG output, got %q", b.String())
	}
}

func TestDebugfEnabled(t *testing.T) {
	b := capture(t)

	SetDebug(true)
	Debugf("spreadsheet %v", "DHT22")

	if !strings.HasPrefix(b.String(), "DEBUG spreadsheet DHT22") {
		t.Errorf("Incorrect DEBUG output, got %q", b.String())
	}
}
