package gsheets

import (
	"context"
	"errors"
	"log/slog"
)

// Replace clears the destination worksheet and writes rows starting at A1 as
// a single block. Each step short-circuits the remainder on failure. A failed
// write after a successful clear leaves the worksheet empty.
func Replace(ctx context.Context, service Service, ref Ref, rows [][]any) error {
	spreadsheet, err := service.OpenSpreadsheet(ctx, ref.Spreadsheet)
	if errors.Is(err, ErrNotFound) {
		return &DestinationError{Kind: NotFound, Spreadsheet: ref.Spreadsheet, Err: err}
	} else if err != nil {
		return &DestinationError{Kind: LookupFailed, Spreadsheet: ref.Spreadsheet, Err: err}
	}

	tab, err := service.OpenTab(ctx, spreadsheet, ref.Worksheet)
	if errors.Is(err, ErrNotFound) {
		return &DestinationError{Kind: NotFound, Spreadsheet: ref.Spreadsheet, Worksheet: ref.Worksheet, Err: err}
	} else if err != nil {
		return &DestinationError{Kind: LookupFailed, Spreadsheet: ref.Spreadsheet, Worksheet: ref.Worksheet, Err: err}
	}

	if err := service.Clear(ctx, tab); err != nil {
		return &DestinationError{Kind: WriteFailed, Spreadsheet: ref.Spreadsheet, Worksheet: ref.Worksheet, Err: err}
	}

	slog.Debug("cleared worksheet", slog.String("spreadsheet", spreadsheet.Title), slog.String("worksheet", tab.Title))

	if len(rows) == 0 {
		return nil
	}

	if err := service.WriteBlock(ctx, tab, Origin, rows); err != nil {
		return &DestinationError{Kind: WriteFailed, Spreadsheet: ref.Spreadsheet, Worksheet: ref.Worksheet, Err: err}
	}

	slog.Debug("updated worksheet",
		slog.String("spreadsheet", spreadsheet.Title),
		slog.String("worksheet", tab.Title),
		slog.Int("rows", len(rows)))

	return nil
}
