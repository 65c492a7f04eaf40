package gsheets

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// Download writes the contents of a worksheet to w as tab separated values.
func Download(ctx context.Context, g *Google, ref Ref, w io.Writer) (int, error) {
	spreadsheet, err := g.OpenSpreadsheet(ctx, ref.Spreadsheet)
	if errors.Is(err, ErrNotFound) {
		return 0, &DestinationError{Kind: NotFound, Spreadsheet: ref.Spreadsheet, Err: err}
	} else if err != nil {
		return 0, err
	}

	tab, err := g.OpenTab(ctx, spreadsheet, ref.Worksheet)
	if errors.Is(err, ErrNotFound) {
		return 0, &DestinationError{Kind: NotFound, Spreadsheet: ref.Spreadsheet, Worksheet: ref.Worksheet, Err: err}
	} else if err != nil {
		return 0, err
	}

	rows, err := g.ReadBlock(ctx, tab)
	if err != nil {
		return 0, err
	}

	if err := WriteTSV(w, rows); err != nil {
		return 0, fmt.Errorf("error creating TSV file (%v)", err)
	}

	return len(rows), nil
}

// WriteTSV writes rows as tab separated values, right-padding short rows to the
// width of the widest row.
func WriteTSV(f io.Writer, rows [][]any) error {
	columns := 0
	for _, row := range rows {
		if len(row) > columns {
			columns = len(row)
		}
	}

	w := csv.NewWriter(f)
	w.Comma = '\t'

	for _, row := range rows {
		record := make([]string, columns)
		for i, v := range row {
			if v != nil {
				record[i] = fmt.Sprintf("%v", v)
			}
		}

		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()

	return w.Error()
}
