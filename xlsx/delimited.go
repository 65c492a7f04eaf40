package xlsx

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
)

// ReadDelimited reads a tab separated (.tsv) or comma separated (.csv) text
// table. Cell values are returned as strings.
func ReadDelimited(path string) (Table, error) {
	if err := exists(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &ReadError{File: path, Err: err}
	}

	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	if strings.ToLower(filepath.Ext(path)) == ".tsv" {
		r.Comma = '\t'
	}

	records, err := r.ReadAll()
	if err != nil {
		return nil, &ReadError{File: path, Err: err}
	}

	rows := make([][]any, 0, len(records))
	for _, record := range records {
		row := make([]any, len(record))
		for i, v := range record {
			row[i] = v
		}

		rows = append(rows, row)
	}

	return pad(rows), nil
}
