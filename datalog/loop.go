// Package datalog implements the sampling loop that reads a sensor and appends
// each valid reading to a remote spreadsheet.
package datalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sensorlog/dht-sheets/log"
	"github.com/sensorlog/dht-sheets/sensor"
)

// Store opens the named spreadsheet. A nil error means the returned Sheet can
// be appended to.
type Store interface {
	Open(ctx context.Context, name string) (Sheet, error)
}

type Sheet interface {
	AppendRow(ctx context.Context, row []any) error
}

// Pruner is implemented by sheets that can delete rows logged before a cutoff.
type Pruner interface {
	Prune(ctx context.Context, before time.Time) (int, error)
}

type Loop struct {
	Sensor      sensor.Sensor
	Store       Store
	Spreadsheet string
	Interval    time.Duration
	Retry       time.Duration
	Retention   uint

	now   func() time.Time
	sleep func(context.Context, time.Duration) error
}

type outcome int

const (
	logged outcome = iota
	notReady
	sensorFault
	appendFailed
)

// Run samples the sensor until the context is cancelled. The returned error is
// nil when interrupted and a *LoginError if the spreadsheet could not be opened.
func (l *Loop) Run(ctx context.Context) error {
	var sheet Sheet

	log.Infof("Logging sensor measurements to %v every %v", l.Spreadsheet, l.Interval)

	for {
		if sheet == nil {
			s, err := l.login(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}

			sheet = s
		}

		var delay time.Duration

		switch result := l.sample(ctx, sheet); result {
		case logged:
			delay = l.Interval

		case notReady, sensorFault:
			delay = l.Retry

		case appendFailed:
			sheet = nil
			delay = l.Interval

		default:
			panic(fmt.Sprintf("unknown sampling outcome %v", result))
		}

		if err := l.pause(ctx, delay); err != nil {
			return nil
		}
	}
}

func (l *Loop) login(ctx context.Context) (Sheet, error) {
	log.Debugf("opening spreadsheet %v", l.Spreadsheet)

	sheet, err := l.Store.Open(ctx, l.Spreadsheet)
	if err != nil {
		return nil, &LoginError{Spreadsheet: l.Spreadsheet, Err: err}
	} else if sheet == nil {
		return nil, &LoginError{Spreadsheet: l.Spreadsheet, Err: fmt.Errorf("no worksheet")}
	}

	if p, ok := sheet.(Pruner); ok && l.Retention > 0 {
		l.prune(ctx, p)
	}

	return sheet, nil
}

func (l *Loop) prune(ctx context.Context, p Pruner) {
	today := l.clock()
	cutoff := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location()).
		AddDate(0, 0, -int(l.Retention-1))

	log.Infof("Pruning readings from before %v", cutoff.Format("2006-01-02"))

	if deleted, err := p.Prune(ctx, cutoff); err != nil {
		log.Warnf("error pruning readings from %v (%v)", l.Spreadsheet, err)
	} else {
		log.Infof("Pruned %v readings from %v", deleted, l.Spreadsheet)
	}
}

func (l *Loop) sample(ctx context.Context, sheet Sheet) outcome {
	measurement, err := l.Sensor.Read(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return sensorFault
		} else if errors.Is(err, sensor.ErrTransient) {
			log.Warnf("%v", err)
		} else {
			log.Errorf("sensor read failed (%v)", err)
		}
		return sensorFault
	}

	if !measurement.Valid() {
		log.Debugf("no valid reading (%v)", measurement)
		return notReady
	}

	reading := Reading{
		Timestamp:   l.clock(),
		Temperature: *measurement.Temperature,
		Humidity:    *measurement.Humidity,
	}

	log.Infof("Temperature: %.1f C", reading.Temperature)
	log.Infof("Humidity:    %.1f %%", reading.Humidity)

	if err := sheet.AppendRow(ctx, reading.Row()); err != nil {
		log.Warnf("%v, logging in again", &AppendError{Spreadsheet: l.Spreadsheet, Err: err})
		return appendFailed
	}

	log.Infof("Wrote a row to %v", l.Spreadsheet)

	return logged
}

func (l *Loop) clock() time.Time {
	if l.now != nil {
		return l.now()
	}

	return time.Now()
}

func (l *Loop) pause(ctx context.Context, d time.Duration) error {
	if l.sleep != nil {
		return l.sleep(ctx, d)
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
