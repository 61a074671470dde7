package datalog

import (
	"reflect"
	"testing"
	"time"
)

func TestReadingRow(t *testing.T) {
	reading := Reading{
		Timestamp:   time.Date(2024, time.March, 5, 14, 2, 7, 0, time.Local),
		Temperature: 21.5,
		Humidity:    46.2,
	}

	expected := []any{"03/05/2024 14:02:07", 21.5, 46.2}

	if row := reading.Row(); !reflect.DeepEqual(row, expected) {
		t.Errorf("Incorrect row\n   expected: %v\n   got:      %v", expected, row)
	}
}

func TestReadingRowWithSingleDigitFields(t *testing.T) {
	reading := Reading{
		Timestamp:   time.Date(2024, time.December, 31, 9, 5, 0, 0, time.Local),
		Temperature: -3.0,
		Humidity:    99.9,
	}

	expected := []any{"12/31/2024 09:05:00", -3.0, 99.9}

	if row := reading.Row(); !reflect.DeepEqual(row, expected) {
		t.Errorf("Incorrect row\n   expected: %v\n   got:      %v", expected, row)
	}
}
