//go:build !linux

package sensor

import (
	"context"
	"fmt"
)

type DHT struct {
}

func NewDHT(model Model, pin int) (*DHT, error) {
	return nil, fmt.Errorf("%v sensors are only supported on Linux", model)
}

func (d *DHT) Read(ctx context.Context) (Measurement, error) {
	return Measurement{}, fmt.Errorf("DHT sensors are only supported on Linux")
}
