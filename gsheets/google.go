package gsheets

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const spreadsheets = "mimeType = 'application/vnd.google-apps.spreadsheet' and trashed = false"

// Google implements Service with the Sheets v4 API. Spreadsheets are located by
// title through the Drive v3 API.
type Google struct {
	sheets *sheets.Service
	drive  *drive.Service
}

func NewGoogle(ctx context.Context, options ...option.ClientOption) (*Google, error) {
	s, err := sheets.NewService(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("unable to create new Sheets client (%v)", err)
	}

	d, err := drive.NewService(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("unable to create new Drive client (%v)", err)
	}

	return &Google{
		sheets: s,
		drive:  d,
	}, nil
}

func (g *Google) ListSpreadsheets(ctx context.Context) ([]string, error) {
	titles := []string{}

	err := g.find(ctx, spreadsheets, func(f *drive.File) bool {
		titles = append(titles, f.Name)
		return true
	})

	if err != nil {
		return nil, err
	}

	return titles, nil
}

func (g *Google) OpenSpreadsheet(ctx context.Context, title string) (Spreadsheet, error) {
	var spreadsheet *Spreadsheet

	query := fmt.Sprintf("%s and name = '%s'", spreadsheets, escape(title))
	err := g.find(ctx, query, func(f *drive.File) bool {
		if f.Name == title {
			spreadsheet = &Spreadsheet{ID: f.Id, Title: f.Name}
			return false
		}

		return true
	})

	if err != nil {
		return Spreadsheet{}, err
	} else if spreadsheet == nil {
		return Spreadsheet{}, fmt.Errorf("spreadsheet '%s' %w", title, ErrNotFound)
	}

	return *spreadsheet, nil
}

func (g *Google) ListTabs(ctx context.Context, spreadsheet Spreadsheet) ([]string, error) {
	tabs, err := g.tabs(ctx, spreadsheet)
	if err != nil {
		return nil, err
	}

	titles := []string{}
	for _, tab := range tabs {
		titles = append(titles, tab.Title)
	}

	return titles, nil
}

func (g *Google) OpenTab(ctx context.Context, spreadsheet Spreadsheet, title string) (Tab, error) {
	tabs, err := g.tabs(ctx, spreadsheet)
	if err != nil {
		return Tab{}, err
	}

	for _, tab := range tabs {
		if tab.Title == title {
			return tab, nil
		}
	}

	return Tab{}, fmt.Errorf("worksheet '%s' %w", title, ErrNotFound)
}

func (g *Google) Clear(ctx context.Context, tab Tab) error {
	rq := sheets.BatchClearValuesRequest{
		Ranges: []string{quote(tab.Title)},
	}

	if _, err := g.sheets.Spreadsheets.Values.BatchClear(tab.SpreadsheetID, &rq).Context(ctx).Do(); err != nil {
		return err
	}

	return nil
}

func (g *Google) WriteBlock(ctx context.Context, tab Tab, origin string, rows [][]any) error {
	if err := g.resize(ctx, tab, rows); err != nil {
		return err
	}

	area := fmt.Sprintf("%s!%s", quote(tab.Title), origin)
	values := sheets.ValueRange{
		Range:  area,
		Values: rows,
	}

	_, err := g.sheets.Spreadsheets.Values.Update(tab.SpreadsheetID, area, &values).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()

	return err
}

// ReadBlock returns the populated cells of a worksheet as formatted values.
func (g *Google) ReadBlock(ctx context.Context, tab Tab) ([][]any, error) {
	response, err := g.sheets.Spreadsheets.Values.Get(tab.SpreadsheetID, quote(tab.Title)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve data from worksheet '%s' (%v)", tab.Title, err)
	}

	return response.Values, nil
}

func (g *Google) tabs(ctx context.Context, spreadsheet Spreadsheet) ([]Tab, error) {
	response, err := g.sheets.Spreadsheets.Get(spreadsheet.ID).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch spreadsheet '%s' (%v)", spreadsheet.Title, err)
	}

	tabs := []Tab{}
	for _, sheet := range response.Sheets {
		if p := sheet.Properties; p != nil {
			tab := Tab{
				SpreadsheetID: spreadsheet.ID,
				SheetID:       p.SheetId,
				Title:         p.Title,
			}

			if p.GridProperties != nil {
				tab.Rows = p.GridProperties.RowCount
				tab.Columns = p.GridProperties.ColumnCount
			}

			tabs = append(tabs, tab)
		}
	}

	return tabs, nil
}

// find pages through the Drive files matching the query until f returns false.
func (g *Google) find(ctx context.Context, query string, f func(*drive.File) bool) error {
	page := ""

	for {
		call := g.drive.Files.List().
			Q(query).
			Fields("nextPageToken, files(id, name)").
			OrderBy("name").
			Context(ctx)

		if page != "" {
			call.PageToken(page)
		}

		files, err := call.Do()
		if err != nil {
			return fmt.Errorf("unable to list spreadsheets (%v)", err)
		}

		for _, file := range files.Files {
			if !f(file) {
				return nil
			}
		}

		if page = files.NextPageToken; page == "" {
			return nil
		}
	}
}

// resize appends rows and columns to the worksheet grid if the block does not fit.
func (g *Google) resize(ctx context.Context, tab Tab, rows [][]any) error {
	height := int64(len(rows))
	width := int64(0)
	for _, row := range rows {
		if int64(len(row)) > width {
			width = int64(len(row))
		}
	}

	requests := []*sheets.Request{}

	if height > tab.Rows {
		requests = append(requests, appendDimension(tab.SheetID, "ROWS", height-tab.Rows))
	}

	if width > tab.Columns {
		requests = append(requests, appendDimension(tab.SheetID, "COLUMNS", width-tab.Columns))
	}

	if len(requests) == 0 {
		return nil
	}

	rq := sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}

	if _, err := g.sheets.Spreadsheets.BatchUpdate(tab.SpreadsheetID, &rq).Context(ctx).Do(); err != nil {
		return fmt.Errorf("unable to resize worksheet '%s' (%v)", tab.Title, err)
	}

	return nil
}

func appendDimension(sheetID int64, dimension string, length int64) *sheets.Request {
	return &sheets.Request{
		AppendDimension: &sheets.AppendDimensionRequest{
			SheetId:         sheetID,
			Dimension:       dimension,
			Length:          length,
			ForceSendFields: []string{"SheetId"},
		},
	}
}

// quote returns the worksheet title quoted for A1 notation, with embedded
// single quotes doubled.
func quote(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

// escape escapes a string literal for a Drive query.
func escape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s)
}
