package xlsx

import (
	"fmt"
	"io"
	"os"

	"github.com/extrame/xls"
	"github.com/richardlehane/mscfb"
)

// ReadLegacy reads the first worksheet of a BIFF (Excel 97-2003) workbook
// directly, without converting it. Numbers, booleans and error codes are read
// from the cell records. Text is resolved through the shared string table.
func ReadLegacy(path string) (table Table, err error) {
	if err := exists(path); err != nil {
		return nil, err
	}

	stream, err := workbookStream(path)
	if err != nil {
		return nil, &ReadError{File: path, Err: err}
	}

	index, offset, err := locate(stream)
	if err != nil {
		return nil, &ReadError{File: path, Err: err}
	}

	list, err := cells(stream, offset)
	if err != nil {
		return nil, &ReadError{File: path, Err: err}
	}

	// ... the BIFF parser panics on some malformed records
	defer func() {
		if v := recover(); v != nil {
			table = nil
			err = &ReadError{File: path, Err: fmt.Errorf("invalid workbook (%v)", v)}
		}
	}()

	workbook, closer, err := xls.OpenWithCloser(path, "utf-8")
	if err != nil {
		return nil, &ReadError{File: path, Err: err}
	}

	defer closer.Close()

	sheet := workbook.GetSheet(index)
	if sheet == nil {
		return nil, &ReadError{File: path, Err: fmt.Errorf("missing worksheet %v", index)}
	}

	rows := [][]any{}
	for _, c := range list {
		for len(rows) <= c.row {
			rows = append(rows, []any{})
		}

		record := rows[c.row]
		for len(record) <= c.col {
			record = append(record, "")
		}

		if c.text {
			record[c.col] = text(sheet, c.row, c.col)
		} else {
			record[c.col] = c.value
		}

		rows[c.row] = record
	}

	return pad(rows), nil
}

func text(sheet *xls.WorkSheet, row, col int) string {
	if r := sheet.Row(row); r != nil {
		return r.ColExact(col)
	}

	return ""
}

// workbookStream returns the contents of the workbook stream of an OLE2
// compound document.
func workbookStream(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	doc, err := mscfb.New(f)
	if err != nil {
		return nil, fmt.Errorf("not an Excel 97-2003 workbook (%w)", err)
	}

	for {
		entry, err := doc.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("not an Excel 97-2003 workbook (%w)", err)
		}

		if entry.Name == "Workbook" || entry.Name == "Book" {
			return io.ReadAll(entry)
		}
	}

	return nil, fmt.Errorf("not an Excel 97-2003 workbook (missing workbook stream)")
}
