package gsheets

import (
	"testing"
)

func TestEscape(t *testing.T) {
	if s := escape(`Bob's DHT22`); s != `Bob\'s DHT22` {
		t.Errorf("Incorrect escaped name - expected:%v, got:%v", `Bob\'s DHT22`, s)
	}
}

func TestSpreadsheetURL(t *testing.T) {
	match := spreadsheetURL.FindStringSubmatch("https://docs.google.com/spreadsheets/d/1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms/edit#gid=0")

	if len(match) < 2 || match[1] != "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms" {
		t.Errorf("Incorrect spreadsheet ID from URL - got:%v", match)
	}

	if match := spreadsheetURL.FindStringSubmatch("DHT22"); len(match) != 0 {
		t.Errorf("Expected spreadsheet name to not match URL, got %v", match)
	}
}
