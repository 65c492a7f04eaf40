package gsheets

import (
	"strings"
	"testing"
)

func TestWriteTSV(t *testing.T) {
	expected := `Card Number	From	To	Gate
6001001	2020-01-01	2020-12-31	Y
6001002	2020-02-03		
`

	var f strings.Builder
	rows := [][]any{
		{"Card Number", "From", "To", "Gate"},
		{"6001001", "2020-01-01", "2020-12-31", "Y"},
		{"6001002", "2020-02-03"},
	}

	if err := WriteTSV(&f, rows); err != nil {
		t.Fatalf("Unexpected error returned from WriteTSV (%v)", err)
	}

	if f.String() != expected {
		t.Errorf("Incorrect TSV\n   expected: %s\n   got:      %s\n", expected, f.String())
	}
}

func TestWriteTSVWithQuotedValues(t *testing.T) {
	expected := "\"a\tb\"\t\"say \"\"hello\"\"\"\t12.5\n"

	var f strings.Builder
	if err := WriteTSV(&f, [][]any{{"a\tb", `say "hello"`, 12.5}}); err != nil {
		t.Fatalf("Unexpected error returned from WriteTSV (%v)", err)
	}

	if f.String() != expected {
		t.Errorf("Incorrect TSV\n   expected: %q\n   got:      %q\n", expected, f.String())
	}
}
