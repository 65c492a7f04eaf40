package xlsx

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the source file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrUnsupportedFormat indicates the source file is not a recognised spreadsheet format.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ConversionError is returned when a legacy workbook could not be converted
// to the modern container format.
type ConversionError struct {
	File string
	Err  error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("error converting '%s' (%v)", e.File, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// ReadError is returned when a source file is missing, unreadable or not a
// spreadsheet.
type ReadError struct {
	File string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("error reading '%s' (%v)", e.File, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}
