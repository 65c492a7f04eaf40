package gsheets

import (
	"context"
	"errors"
)

// Origin is the top-left cell of the block written to a worksheet.
const Origin = "A1"

var ErrNotFound = errors.New("not found")

// Spreadsheet identifies a remote spreadsheet.
type Spreadsheet struct {
	ID    string
	Title string
}

// Tab identifies a worksheet within a spreadsheet. Rows and Columns are the
// current grid dimensions of the worksheet.
type Tab struct {
	SpreadsheetID string
	SheetID       int64
	Title         string
	Rows          int64
	Columns       int64
}

// Ref is a destination spreadsheet and worksheet, both identified by title.
type Ref struct {
	Spreadsheet string `json:"spreadsheet"`
	Worksheet   string `json:"worksheet"`
}

// Service is the subset of the remote spreadsheet API used to replace the
// contents of a worksheet. Open* methods return an error wrapping ErrNotFound
// if there is no exact title match.
type Service interface {
	ListSpreadsheets(ctx context.Context) ([]string, error)
	OpenSpreadsheet(ctx context.Context, title string) (Spreadsheet, error)
	ListTabs(ctx context.Context, spreadsheet Spreadsheet) ([]string, error)
	OpenTab(ctx context.Context, spreadsheet Spreadsheet, title string) (Tab, error)
	Clear(ctx context.Context, tab Tab) error
	WriteBlock(ctx context.Context, tab Tab, origin string, rows [][]any) error
}

// ListTabs is a convenience wrapper that resolves a spreadsheet by title and
// returns the titles of its worksheets.
func ListTabs(ctx context.Context, service Service, spreadsheet string) ([]string, error) {
	s, err := service.OpenSpreadsheet(ctx, spreadsheet)
	if errors.Is(err, ErrNotFound) {
		return nil, &DestinationError{Kind: NotFound, Spreadsheet: spreadsheet, Err: err}
	} else if err != nil {
		return nil, &DestinationError{Kind: LookupFailed, Spreadsheet: spreadsheet, Err: err}
	}

	return service.ListTabs(ctx, s)
}
