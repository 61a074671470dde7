// Package gsheets is the Google Sheets store for logged readings.
package gsheets

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/sheets/v4"

	"github.com/sensorlog/dht-sheets/datalog"
	"github.com/sensorlog/dht-sheets/log"
)

const mimeSpreadsheet = "application/vnd.google-apps.spreadsheet"

var spreadsheetURL = regexp.MustCompile(`^https://docs.google.com/spreadsheets/d/(.*?)(?:/.*)?$`)

// Client opens spreadsheets with the credentials in the application
// credentials and authorised session files. Each Open re-reads both files.
type Client struct {
	Credentials    string
	AuthorizedUser string
}

func NewClient(credentials, authorizedUser string) *Client {
	return &Client{
		Credentials:    credentials,
		AuthorizedUser: authorizedUser,
	}
}

// Open implements datalog.Store, returning the first worksheet of the named
// spreadsheet.
func (c *Client) Open(ctx context.Context, name string) (datalog.Sheet, error) {
	worksheet, err := c.OpenWorksheet(ctx, name)
	if err != nil {
		return nil, err
	}

	return worksheet, nil
}

// OpenWorksheet logs in and returns the first worksheet of a spreadsheet. The
// spreadsheet is identified by name or by its https://docs.google.com URL.
func (c *Client) OpenWorksheet(ctx context.Context, spreadsheet string) (*Worksheet, error) {
	auth, err := authorize(ctx, c.Credentials, c.AuthorizedUser)
	if err != nil {
		return nil, fmt.Errorf("authentication/authorization error (%w)", err)
	}

	google, err := sheets.NewService(ctx, auth)
	if err != nil {
		return nil, fmt.Errorf("unable to create new Sheets client (%w)", err)
	}

	gdrive, err := drive.NewService(ctx, auth)
	if err != nil {
		return nil, fmt.Errorf("unable to create new Drive client (%w)", err)
	}

	return openWorksheet(ctx, google, gdrive, spreadsheet)
}

func openWorksheet(ctx context.Context, google *sheets.Service, gdrive *drive.Service, spreadsheet string) (*Worksheet, error) {
	var id string
	if match := spreadsheetURL.FindStringSubmatch(strings.TrimSpace(spreadsheet)); len(match) > 1 {
		id = match[1]
	} else {
		var err error
		if id, err = findSpreadsheet(ctx, gdrive, spreadsheet); err != nil {
			return nil, err
		}
	}

	log.Debugf("spreadsheet - name:%v  ID:%v", spreadsheet, id)

	s, err := getSpreadsheet(ctx, google, id)
	if err != nil {
		return nil, err
	}

	if len(s.Sheets) == 0 || s.Sheets[0].Properties == nil {
		return nil, fmt.Errorf("spreadsheet '%v' has no worksheets", spreadsheet)
	}

	properties := s.Sheets[0].Properties

	return &Worksheet{
		google:        google,
		spreadsheetID: s.SpreadsheetId,
		title:         properties.Title,
		sheetID:       properties.SheetId,
	}, nil
}

func findSpreadsheet(ctx context.Context, gdrive *drive.Service, name string) (string, error) {
	q := fmt.Sprintf("name = '%v' and mimeType = '%v' and trashed = false", escape(name), mimeSpreadsheet)

	list, err := gdrive.Files.List().
		Q(q).
		Fields("files(id, name, modifiedTime)").
		OrderBy("modifiedTime desc").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("unable to search for spreadsheet '%v' (%w)", name, err)
	}

	switch len(list.Files) {
	case 0:
		return "", fmt.Errorf("spreadsheet '%v' not found", name)

	case 1:
		return list.Files[0].Id, nil

	default:
		log.Warnf("found %v spreadsheets named '%v', using the most recently modified", len(list.Files), name)
		return list.Files[0].Id, nil
	}
}

func getSpreadsheet(ctx context.Context, google *sheets.Service, id string) (*sheets.Spreadsheet, error) {
	spreadsheet, err := google.Spreadsheets.Get(id).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch spreadsheet (%w)", err)
	}

	return spreadsheet, nil
}

// escape quotes a Drive query string literal.
func escape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s)
}
