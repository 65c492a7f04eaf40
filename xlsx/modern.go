package xlsx

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadModern reads the active worksheet of an OOXML workbook. Cell values are
// the stored values rather than the formatted display text.
func ReadModern(path string) (Table, error) {
	if err := exists(path); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &ReadError{File: path, Err: err}
	}

	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}

	if sheet == "" {
		return nil, &ReadError{File: path, Err: fmt.Errorf("workbook has no worksheets")}
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, &ReadError{File: path, Err: fmt.Errorf("worksheet '%s' (%w)", sheet, err)}
	}

	table := make([][]any, 0, len(rows))
	for r, row := range rows {
		record := make([]any, len(row))
		for c, v := range row {
			if v == "" {
				record[c] = v
				continue
			}

			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, &ReadError{File: path, Err: err}
			}

			kind, err := f.GetCellType(sheet, cell)
			if err != nil {
				return nil, &ReadError{File: path, Err: fmt.Errorf("cell %v (%w)", cell, err)}
			}

			record[c] = typed(kind, v)
		}

		table = append(table, record)
	}

	return pad(table), nil
}

// typed converts a raw cell value according to the cell's declared type. Text
// cells are kept as text even when they look numeric.
func typed(kind excelize.CellType, v string) any {
	switch kind {
	case excelize.CellTypeBool:
		return v == "1" || strings.EqualFold(v, "TRUE")

	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula, excelize.CellTypeError:
		return v

	default:
		return parseValue(v)
	}
}

func exists(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return &ReadError{File: path, Err: ErrFileNotFound}
	} else if err != nil {
		return &ReadError{File: path, Err: err}
	}

	return nil
}
