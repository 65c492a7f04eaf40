package xlsx

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFormatOf(t *testing.T) {
	tests := map[string]Format{
		"report.xls":  Legacy,
		"report.XLS":  Legacy,
		"report.xlsx": Modern,
		"report.xlsm": Modern,
		"report.tsv":  Delimited,
		"report.csv":  Delimited,
		"report.ods":  Unknown,
		"report":      Unknown,
	}

	for path, expected := range tests {
		if format := FormatOf(path); format != expected {
			t.Errorf("Incorrect format for %v - expected:%v, got:%v", path, expected, format)
		}
	}
}

func TestExtractWithUnsupportedFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.ods")
	if err := os.WriteFile(path, []byte("not a spreadsheet"), 0660); err != nil {
		t.Fatalf("Error creating file (%v)", err)
	}

	_, err := Extract(path)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestExtractWithMissingFile(t *testing.T) {
	for _, file := range []string{"missing.xlsx", "missing.xls", "missing.tsv", "missing.ods"} {
		_, err := Extract(filepath.Join(t.TempDir(), file))

		var read *ReadError
		if !errors.As(err, &read) || !errors.Is(err, ErrFileNotFound) {
			t.Errorf("Expected ReadError(ErrFileNotFound) for %v, got %v", file, err)
		}
	}
}

func TestReadLegacyWithInvalidWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xls")
	if err := os.WriteFile(path, []byte("Card Number\tFrom\tTo\n"), 0660); err != nil {
		t.Fatalf("Error creating file (%v)", err)
	}

	_, err := ReadLegacy(path)

	var read *ReadError
	if !errors.As(err, &read) {
		t.Fatalf("Expected ReadError, got %v", err)
	}

	if read.File != path {
		t.Errorf("Incorrect file - expected:%v, got:%v", path, read.File)
	}
}
