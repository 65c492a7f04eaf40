package xlsx

import (
	"fmt"
	"reflect"
	"testing"
)

func TestBound(t *testing.T) {
	expected := Table{
		{"a", "b"},
		{"c", "d"},
	}

	table := Table{
		{"a", "b"},
		{"", ""},
		{"c", "d"},
	}

	bounded := Bound(table)

	if !reflect.DeepEqual(bounded, expected) {
		t.Errorf("Incorrect table\n   expected: %v\n   got:      %v\n", expected, bounded)
	}
}

func TestBoundWithTooManyRows(t *testing.T) {
	table := make(Table, 1200)
	for i := range table {
		table[i] = make([]any, 10)
		for j := range table[i] {
			table[i][j] = fmt.Sprintf("R%vC%v", i+1, j+1)
		}
	}

	bounded := Bound(table)

	if bounded.Rows() != 1086 {
		t.Errorf("Incorrect row count - expected:%v, got:%v", 1086, bounded.Rows())
	}

	if bounded.Columns() != 10 {
		t.Errorf("Incorrect column count - expected:%v, got:%v", 10, bounded.Columns())
	}

	if v := bounded[1085][9]; v != "R1086C10" {
		t.Errorf("Incorrect last cell - expected:%v, got:%v", "R1086C10", v)
	}
}

func TestBoundWithTooManyColumns(t *testing.T) {
	row := make([]any, 60)
	for i := range row {
		row[i] = int64(i + 1)
	}

	bounded := Bound(Table{row})

	if bounded.Columns() != MaxColumns {
		t.Fatalf("Incorrect column count - expected:%v, got:%v", MaxColumns, bounded.Columns())
	}

	if v := bounded[0][55]; v != int64(56) {
		t.Errorf("Incorrect last cell - expected:%v, got:%v", 56, v)
	}

	if len(row) != 60 {
		t.Errorf("Bound modified the source table")
	}
}

func TestBoundDropsRowsThatAreOnlyEmptyAfterTruncation(t *testing.T) {
	wide := make([]any, 60)
	for i := range wide {
		wide[i] = ""
	}
	wide[58] = "beyond the last column"

	bounded := Bound(Table{{"a"}, wide, {nil, "b"}})

	expected := Table{{"a"}, {nil, "b"}}
	if !reflect.DeepEqual(bounded, expected) {
		t.Errorf("Incorrect table\n   expected: %v\n   got:      %v\n", expected, bounded)
	}
}

func TestBoundKeepsWhitespace(t *testing.T) {
	bounded := Bound(Table{{" ", ""}})

	if bounded.Rows() != 1 {
		t.Errorf("Expected row with whitespace to be retained, got %v", bounded)
	}
}

func TestBoundWithEmptyTable(t *testing.T) {
	if bounded := Bound(Table{}); bounded.Rows() != 0 {
		t.Errorf("Expected empty table, got %v", bounded)
	}

	if bounded := Bound(nil); bounded.Rows() != 0 {
		t.Errorf("Expected empty table, got %v", bounded)
	}
}

func TestBoundIsIdempotent(t *testing.T) {
	tables := []Table{
		{{"a", "b"}, {"", ""}, {"c", "d"}},
		{{nil, nil}, {"", int64(1)}},
		make(Table, 1500),
	}

	for i := range tables[2] {
		tables[2][i] = make([]any, 70)
		tables[2][i][i%70] = float64(i)
	}

	for _, table := range tables {
		once := Bound(table)
		twice := Bound(once)

		if !reflect.DeepEqual(once, twice) {
			t.Errorf("Bound is not idempotent\n   once:  %v\n   twice: %v\n", once, twice)
		}

		if once.Rows() > MaxRows || once.Columns() > MaxColumns {
			t.Errorf("Bounded table exceeds limits (%vx%v)", once.Rows(), once.Columns())
		}

		for _, row := range once {
			if blank(row) {
				t.Errorf("Bounded table contains empty row %v", row)
			}
		}
	}
}
