// Package sensor provides the temperature/humidity sources sampled by the
// data logging loop.
package sensor

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrTransient marks a sensor fault that is expected to clear on retry, e.g. a
// DHT checksum mismatch.
var ErrTransient = errors.New("transient sensor fault")

type Sensor interface {
	Read(ctx context.Context) (Measurement, error)
}

// Measurement is a single sensor sample. A nil field means the sensor had no
// valid data for that value.
type Measurement struct {
	Temperature *float64
	Humidity    *float64
}

func (m Measurement) Valid() bool {
	return m.Temperature != nil && m.Humidity != nil
}

func (m Measurement) String() string {
	f := func(v *float64) string {
		if v == nil {
			return "-"
		}
		return fmt.Sprintf("%.1f", *v)
	}

	return fmt.Sprintf("temperature:%v humidity:%v", f(m.Temperature), f(m.Humidity))
}

type Model int

const (
	DHT11 Model = iota + 1
	DHT22
)

func (m Model) String() string {
	switch m {
	case DHT11:
		return "DHT11"
	case DHT22:
		return "DHT22"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// ParseModel accepts the DHT model names. AM2302 is the wired variant of the
// DHT22.
func ParseModel(s string) (Model, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "dht11":
		return DHT11, nil

	case "dht22", "am2302":
		return DHT22, nil

	default:
		return 0, fmt.Errorf("unsupported sensor model '%v'", s)
	}
}

// Transient wraps err as a transient fault.
func Transient(err error) error {
	return fmt.Errorf("%w (%v)", ErrTransient, err)
}

func ptr(v float64) *float64 {
	return &v
}
