package datalog

import (
	"time"
)

// TimestampFormat is the MM/DD/YYYY HH:MM:SS layout of the first column.
const TimestampFormat = "01/02/2006 15:04:05"

type Reading struct {
	Timestamp   time.Time
	Temperature float64
	Humidity    float64
}

// Row returns the reading as the three spreadsheet fields in column order.
func (r Reading) Row() []any {
	return []any{
		r.Timestamp.Format(TimestampFormat),
		r.Temperature,
		r.Humidity,
	}
}
