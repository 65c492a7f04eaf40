package upload

import (
	"errors"
	"fmt"

	"github.com/uhppoted/uhppoted-app-xlsx/gsheets"
	"github.com/uhppoted/uhppoted-app-xlsx/xlsx"
)

var ErrNoFileSelected = errors.New("no spreadsheet file selected")
var ErrBusy = errors.New("an upload is already in progress")

// message translates a pipeline error into the text reported to the operator.
func message(err error) string {
	var conversion *xlsx.ConversionError
	var destination *gsheets.DestinationError

	switch {
	case errors.Is(err, ErrNoFileSelected), errors.Is(err, ErrBusy):
		return err.Error()

	case errors.As(err, &conversion):
		return fmt.Sprintf("error converting file, upload cancelled (%v)", conversion.Err)

	case errors.Is(err, xlsx.ErrFileNotFound):
		return "spreadsheet file not found"

	case errors.As(err, &destination):
		return destination.Error()

	default:
		return fmt.Sprintf("error uploading data (%v)", err)
	}
}
