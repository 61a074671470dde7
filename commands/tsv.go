package commands

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"google.golang.org/api/sheets/v4"

	"github.com/sensorlog/dht-sheets/datalog"
)

var header = []string{"Timestamp", "Temperature", "Humidity"}

// sheetToTSV writes the readings in a worksheet as TSV. Rows without a valid
// timestamp, temperature and humidity (e.g. a header row) are skipped.
func sheetToTSV(f io.Writer, data *sheets.ValueRange) (int, error) {
	if data == nil || len(data.Values) == 0 {
		return 0, fmt.Errorf("empty sheet")
	}

	records := [][]string{}
	for _, row := range data.Values {
		if len(row) < 3 {
			continue
		}

		fields := make([]string, 3)
		for i := range fields {
			fields[i] = clean(fmt.Sprintf("%v", row[i]))
		}

		if _, err := time.ParseInLocation(datalog.TimestampFormat, fields[0], time.Local); err != nil {
			continue
		}

		if _, err := strconv.ParseFloat(fields[1], 64); err != nil {
			continue
		}

		if _, err := strconv.ParseFloat(fields[2], 64); err != nil {
			continue
		}

		records = append(records, fields)
	}

	w := csv.NewWriter(f)
	w.Comma = '\t'

	w.Write(header)
	for _, record := range records {
		w.Write(record)
	}

	w.Flush()

	return len(records), w.Error()
}

// tsvToRows parses a TSV file of readings into worksheet rows. The header row
// is optional.
func tsvToRows(f io.Reader) ([][]any, error) {
	r := csv.NewReader(f)
	r.Comma = '\t'
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) > 0 && len(records[0]) > 0 && normalise(records[0][0]) == "timestamp" {
		records = records[1:]
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("TSV file is empty")
	}

	rows := make([][]any, 0, len(records))
	for i, record := range records {
		if len(record) != 3 {
			return nil, fmt.Errorf("record %d: expected timestamp, temperature and humidity, got %v fields", i+1, len(record))
		}

		timestamp, err := time.ParseInLocation(datalog.TimestampFormat, clean(record[0]), time.Local)
		if err != nil {
			return nil, fmt.Errorf("record %d: invalid timestamp '%v' - expected MM/DD/YYYY HH:MM:SS", i+1, record[0])
		}

		temperature, err := strconv.ParseFloat(clean(record[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("record %d: invalid temperature '%v'", i+1, record[1])
		}

		humidity, err := strconv.ParseFloat(clean(record[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("record %d: invalid humidity '%v'", i+1, record[2])
		}

		reading := datalog.Reading{
			Timestamp:   timestamp,
			Temperature: temperature,
			Humidity:    humidity,
		}

		rows = append(rows, reading.Row())
	}

	return rows, nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
