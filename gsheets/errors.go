package gsheets

import (
	"fmt"
)

type Kind int

const (
	NotFound Kind = iota
	LookupFailed
	WriteFailed
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not found"
	case LookupFailed:
		return "lookup failed"
	case WriteFailed:
		return "write failed"
	default:
		return "unknown"
	}
}

// DestinationError is returned when the destination spreadsheet or worksheet
// does not exist or could not be cleared or updated.
type DestinationError struct {
	Kind        Kind
	Spreadsheet string
	Worksheet   string
	Err         error
}

func (e *DestinationError) Error() string {
	switch {
	case e.Kind == NotFound && e.Worksheet == "":
		return fmt.Sprintf("spreadsheet '%s' not found", e.Spreadsheet)

	case e.Kind == NotFound:
		return fmt.Sprintf("worksheet '%s' not found in spreadsheet '%s'", e.Worksheet, e.Spreadsheet)

	case e.Kind == LookupFailed:
		return fmt.Sprintf("error retrieving spreadsheet '%s' (%v)", e.Spreadsheet, e.Err)

	default:
		return fmt.Sprintf("error updating worksheet '%s' in spreadsheet '%s' (%v)", e.Worksheet, e.Spreadsheet, e.Err)
	}
}

func (e *DestinationError) Unwrap() error {
	return e.Err
}
