package xlsx

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestReadModern(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quarterly.xlsx")

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetRow("Sheet1", "A1", &[]any{"Region", "Units", "Price"})
	f.SetSheetRow("Sheet1", "A2", &[]any{"North", 12, 3.75})
	f.SetSheetRow("Sheet1", "A3", &[]any{"South"})

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Error creating workbook (%v)", err)
	}

	expected := Table{
		{"Region", "Units", "Price"},
		{"North", int64(12), 3.75},
		{"South", "", ""},
	}

	table, err := ReadModern(path)
	if err != nil {
		t.Fatalf("Unexpected error reading %v (%v)", path, err)
	}

	if !reflect.DeepEqual(table, expected) {
		t.Errorf("Incorrect table\n   expected: %#v\n   got:      %#v\n", expected, table)
	}
}

func TestReadModernUsesActiveSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quarterly.xlsx")

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetRow("Sheet1", "A1", &[]any{"first"})

	index, err := f.NewSheet("Summary")
	if err != nil {
		t.Fatalf("Error creating worksheet (%v)", err)
	}

	f.SetSheetRow("Summary", "A1", &[]any{"summary"})
	f.SetActiveSheet(index)

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Error creating workbook (%v)", err)
	}

	table, err := ReadModern(path)
	if err != nil {
		t.Fatalf("Unexpected error reading %v (%v)", path, err)
	}

	if expected := (Table{{"summary"}}); !reflect.DeepEqual(table, expected) {
		t.Errorf("Incorrect table\n   expected: %v\n   got:      %v\n", expected, table)
	}
}

func TestReadModernWithSparseRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sparse.xlsx")

	f := excelize.NewFile()
	defer f.Close()

	f.SetCellValue("Sheet1", "A1", "a")
	f.SetCellValue("Sheet1", "B1", "b")
	f.SetCellValue("Sheet1", "A3", "c")
	f.SetCellValue("Sheet1", "B3", "d")

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Error creating workbook (%v)", err)
	}

	table, err := ReadModern(path)
	if err != nil {
		t.Fatalf("Unexpected error reading %v (%v)", path, err)
	}

	expected := Table{
		{"a", "b"},
		{"", ""},
		{"c", "d"},
	}

	if !reflect.DeepEqual(table, expected) {
		t.Errorf("Incorrect table\n   expected: %v\n   got:      %v\n", expected, table)
	}

	if bounded := Bound(table); !reflect.DeepEqual(bounded, Table{{"a", "b"}, {"c", "d"}}) {
		t.Errorf("Incorrect bounded table %v", bounded)
	}
}

func TestReadModernWithTypedCells(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typed.xlsx")

	f := excelize.NewFile()
	defer f.Close()

	f.SetCellBool("Sheet1", "A1", true)
	f.SetCellBool("Sheet1", "B1", false)
	f.SetCellStr("Sheet1", "C1", "0123")
	f.SetCellInt("Sheet1", "D1", 123)
	f.SetCellFloat("Sheet1", "E1", 45292.25, -1, 64)

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Error creating workbook (%v)", err)
	}

	table, err := ReadModern(path)
	if err != nil {
		t.Fatalf("Unexpected error reading %v (%v)", path, err)
	}

	expected := Table{
		{true, false, "0123", int64(123), 45292.25},
	}

	if !reflect.DeepEqual(table, expected) {
		t.Errorf("Incorrect table\n   expected: %#v\n   got:      %#v\n", expected, table)
	}
}

func TestReadModernWithMissingFile(t *testing.T) {
	_, err := ReadModern(filepath.Join(t.TempDir(), "missing.xlsx"))

	var read *ReadError
	if !errors.As(err, &read) {
		t.Fatalf("Expected ReadError, got %v", err)
	}

	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("Expected ErrFileNotFound, got %v", err)
	}
}
