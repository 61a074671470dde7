package gsheets

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"google.golang.org/api/sheets/v4"

	"github.com/sensorlog/dht-sheets/datalog"
)

// Worksheet is an open worksheet. It stays usable until a write fails, after
// which the caller is expected to open the spreadsheet again.
type Worksheet struct {
	google        *sheets.Service
	spreadsheetID string
	title         string
	sheetID       int64
}

func (w *Worksheet) Title() string {
	return w.title
}

func (w *Worksheet) SpreadsheetID() string {
	return w.spreadsheetID
}

func (w *Worksheet) AppendRow(ctx context.Context, row []any) error {
	return w.AppendRows(ctx, [][]any{row})
}

// AppendRows appends the rows after the last row of the table in columns A:C.
func (w *Worksheet) AppendRows(ctx context.Context, rows [][]any) error {
	values := sheets.ValueRange{
		Values: rows,
	}

	if _, err := w.google.Spreadsheets.Values.Append(w.spreadsheetID, w.area("A:C"), &values).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do(); err != nil {
		return &WriteError{Cause: classify(err), Err: err}
	}

	return nil
}

// Get returns the values in a range of the worksheet, e.g. "A1" or "A2:C".
func (w *Worksheet) Get(ctx context.Context, area string) (*sheets.ValueRange, error) {
	response, err := w.google.Spreadsheets.Values.Get(w.spreadsheetID, w.area(area)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve data from worksheet '%v' (%w)", w.title, err)
	}

	return response, nil
}

// Prune deletes the rows with a timestamp before the cutoff and returns the
// number of deleted rows. Rows without a valid timestamp are kept.
func (w *Worksheet) Prune(ctx context.Context, before time.Time) (int, error) {
	response, err := w.Get(ctx, "A:A")
	if err != nil {
		return 0, err
	}

	rows := expired(response.Values, before)
	if len(rows) == 0 {
		return 0, nil
	}

	rq := sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{},
	}

	// ... deleted bottom up so the remaining indices don't shift
	deleted := 0
	list := spans(rows)
	for i := len(list) - 1; i >= 0; i-- {
		span := list[i]
		rq.Requests = append(rq.Requests, &sheets.Request{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:         w.sheetID,
					Dimension:       "ROWS",
					StartIndex:      int64(span.start),
					EndIndex:        int64(span.end + 1),
					ForceSendFields: []string{"SheetId", "StartIndex"},
				},
			},
		})

		deleted += span.end - span.start + 1
	}

	if _, err := w.google.Spreadsheets.BatchUpdate(w.spreadsheetID, &rq).Context(ctx).Do(); err != nil {
		return 0, &WriteError{Cause: classify(err), Err: err}
	}

	return deleted, nil
}

func (w *Worksheet) area(r string) string {
	return fmt.Sprintf("'%v'!%v", strings.ReplaceAll(w.title, "'", "''"), r)
}

// expired returns the (zero-based) indices of the rows with a timestamp in the
// first column earlier than the cutoff.
func expired(values [][]any, before time.Time) []int {
	list := []int{}

	for row, record := range values {
		if len(record) == 0 {
			continue
		}

		if s, ok := record[0].(string); ok {
			timestamp, err := time.ParseInLocation(datalog.TimestampFormat, strings.TrimSpace(s), before.Location())
			if err == nil && timestamp.Before(before) {
				list = append(list, row)
			}
		}
	}

	return list
}

type span struct {
	start int
	end   int
}

// spans collapses a list of row indices into contiguous inclusive ranges.
func spans(rows []int) []span {
	if len(rows) == 0 {
		return nil
	}

	sorted := append([]int{}, rows...)
	sort.Ints(sorted)

	list := []span{}
	current := span{start: sorted[0], end: sorted[0]}
	for _, row := range sorted[1:] {
		if row != current.end+1 {
			list = append(list, current)
			current = span{start: row, end: row}
		} else {
			current.end = row
		}
	}

	return append(list, current)
}
