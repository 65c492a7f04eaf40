package xlsx

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestReadDelimitedTSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ACL.tsv")
	tsv := `Card Number	From	To	Gate	Tower	Dungeon	Lair
6001001	2020-01-01	2020-12-31	Y	N	N	Y
6001002	2020-02-03	2020-11-30	Y	Y
`

	if err := os.WriteFile(path, []byte(tsv), 0660); err != nil {
		t.Fatalf("Error creating TSV file (%v)", err)
	}

	expected := Table{
		{"Card Number", "From", "To", "Gate", "Tower", "Dungeon", "Lair"},
		{"6001001", "2020-01-01", "2020-12-31", "Y", "N", "N", "Y"},
		{"6001002", "2020-02-03", "2020-11-30", "Y", "Y", "", ""},
	}

	table, err := ReadDelimited(path)
	if err != nil {
		t.Fatalf("Unexpected error reading %v (%v)", path, err)
	}

	if !reflect.DeepEqual(table, expected) {
		t.Errorf("Incorrect table\n   expected: %v\n   got:      %v\n", expected, table)
	}
}

func TestReadDelimitedCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.CSV")
	csv := "name,notes\nalpha,\"one, two\"\n\nbeta,\n"

	if err := os.WriteFile(path, []byte(csv), 0660); err != nil {
		t.Fatalf("Error creating CSV file (%v)", err)
	}

	expected := Table{
		{"name", "notes"},
		{"alpha", "one, two"},
		{"beta", ""},
	}

	table, err := Extract(path)
	if err != nil {
		t.Fatalf("Unexpected error reading %v (%v)", path, err)
	}

	if !reflect.DeepEqual(table, expected) {
		t.Errorf("Incorrect table\n   expected: %v\n   got:      %v\n", expected, table)
	}
}
