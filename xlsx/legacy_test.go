package xlsx

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/uhppoted/uhppoted-app-xlsx/xlsx/xlsxtest"
)

func TestReadLegacy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quarterly.xls")

	w := xlsxtest.Workbook{}
	w.Sheet("Data",
		w.Shared(0, 0, "Region"),
		w.Shared(0, 1, "Units"),
		w.Shared(0, 2, "Price"),
		w.Shared(0, 3, "Shipped"),
		w.Shared(0, 4, "Active"),
		w.Shared(1, 0, "North"),
		xlsxtest.RK(1, 1, xlsxtest.IntRK(12)),
		xlsxtest.Number(1, 2, 3.75),
		xlsxtest.Number(1, 3, 45292),
		xlsxtest.Bool(1, 4, true),
		xlsxtest.Blank(2, 0),
		xlsxtest.Label(3, 0, "South"),
		xlsxtest.MulRK(3, 1, xlsxtest.IntRK(7), xlsxtest.CentsRK(1234)),
		xlsxtest.Formula(3, 3, 45293.5),
		xlsxtest.Formula(3, 4, false),
		xlsxtest.Formula(4, 0, "Total"),
		xlsxtest.Error(4, 1, 0x07),
		xlsxtest.RK(4, 2, xlsxtest.FloatRK(2.25)))

	if err := w.Save(path); err != nil {
		t.Fatalf("Error creating workbook (%v)", err)
	}

	expected := Table{
		{"Region", "Units", "Price", "Shipped", "Active"},
		{"North", int64(12), 3.75, int64(45292), true},
		{"", "", "", "", ""},
		{"South", int64(7), 12.34, 45293.5, false},
		{"Total", "#DIV/0!", 2.25, "", ""},
	}

	table, err := ReadLegacy(path)
	if err != nil {
		t.Fatalf("Unexpected error reading %v (%v)", path, err)
	}

	if !reflect.DeepEqual(table, expected) {
		t.Errorf("Incorrect table\n   expected: %#v\n   got:      %#v\n", expected, table)
	}
}

func TestReadLegacyUsesFirstSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quarterly.xls")

	w := xlsxtest.Workbook{}
	w.Sheet("Summary", w.Shared(0, 0, "summary"), xlsxtest.Number(0, 1, 1.5))
	w.Sheet("Notes", w.Shared(0, 0, "notes"))

	if err := w.Save(path); err != nil {
		t.Fatalf("Error creating workbook (%v)", err)
	}

	table, err := ReadLegacy(path)
	if err != nil {
		t.Fatalf("Unexpected error reading %v (%v)", path, err)
	}

	if expected := (Table{{"summary", 1.5}}); !reflect.DeepEqual(table, expected) {
		t.Errorf("Incorrect table\n   expected: %v\n   got:      %v\n", expected, table)
	}
}

func TestExtractWithLegacyWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quarterly.xls")

	w := xlsxtest.Workbook{}
	w.Sheet("Sheet1", w.Shared(0, 0, "Region"), xlsxtest.Number(0, 1, 42))

	if err := w.Save(path); err != nil {
		t.Fatalf("Error creating workbook (%v)", err)
	}

	table, err := Extract(path)
	if err != nil {
		t.Fatalf("Unexpected error reading %v (%v)", path, err)
	}

	if expected := (Table{{"Region", int64(42)}}); !reflect.DeepEqual(table, expected) {
		t.Errorf("Incorrect table\n   expected: %v\n   got:      %v\n", expected, table)
	}
}

func TestRK(t *testing.T) {
	tests := []struct {
		rk       uint32
		expected any
	}{
		{xlsxtest.IntRK(12), int64(12)},
		{xlsxtest.IntRK(-3), int64(-3)},
		{xlsxtest.CentsRK(1234), 12.34},
		{xlsxtest.CentsRK(500), int64(5)},
		{xlsxtest.FloatRK(0.5), 0.5},
	}

	for _, test := range tests {
		if v := rk(test.rk); !reflect.DeepEqual(v, test.expected) {
			t.Errorf("Incorrect value for RK %08x - expected:%#v, got:%#v", test.rk, test.expected, v)
		}
	}
}
