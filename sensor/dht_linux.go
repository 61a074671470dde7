package sensor

import (
	"context"
	"fmt"
	"math"

	"github.com/d2r2/go-dht"
	"golang.org/x/sys/unix"
)

// DHT reads a DHT11/DHT22 wired to a Raspberry Pi GPIO pin (BCM numbering).
type DHT struct {
	model Model
	pin   int
}

func NewDHT(model Model, pin int) (*DHT, error) {
	if pin < 0 {
		return nil, fmt.Errorf("invalid GPIO pin (%v)", pin)
	}

	if err := checkGPIO(); err != nil {
		return nil, err
	}

	return &DHT{
		model: model,
		pin:   pin,
	}, nil
}

func (d *DHT) Read(ctx context.Context) (Measurement, error) {
	if err := ctx.Err(); err != nil {
		return Measurement{}, err
	}

	var sensorType dht.SensorType
	switch d.model {
	case DHT11:
		sensorType = dht.DHT11
	case DHT22:
		sensorType = dht.DHT22
	default:
		return Measurement{}, fmt.Errorf("unsupported sensor model %v", d.model)
	}

	temperature, humidity, err := dht.ReadDHTxx(sensorType, d.pin, false)
	if err != nil {
		return Measurement{}, Transient(err)
	}

	return Measurement{
		Temperature: ptr(round(temperature)),
		Humidity:    ptr(round(humidity)),
	}, nil
}

func (d *DHT) String() string {
	return fmt.Sprintf("%v@GPIO%d", d.model, d.pin)
}

// The DHT sensors have a resolution of 0.1.
func round(v float32) float64 {
	return math.Round(float64(v)*10) / 10
}

func checkGPIO() error {
	if unix.Access("/dev/gpiomem", unix.R_OK|unix.W_OK) == nil {
		return nil
	}

	if unix.Access("/dev/mem", unix.R_OK|unix.W_OK) == nil {
		return nil
	}

	return fmt.Errorf("GPIO memory is not accessible - add the user to the 'gpio' group or run as root")
}
