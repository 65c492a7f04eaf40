package upload

import (
	"fmt"
)

type Status string

const (
	Success Status = "success"
	Error   Status = "error"
)

// Result is the outcome of a single upload, as reported to the operator.
type Result struct {
	Status  Status `json:"status"`
	Message string `json:"message"`
	Run     string `json:"run,omitempty"`
}

func (r Result) OK() bool {
	return r.Status == Success
}

func succeeded(run string, summary Summary) Result {
	return Result{
		Status:  Success,
		Message: fmt.Sprintf("data uploaded to Google Sheets ('%s', '%s', %d rows)", summary.Spreadsheet, summary.Worksheet, summary.Rows),
		Run:     run,
	}
}

func failed(run string, err error) Result {
	return Result{
		Status:  Error,
		Message: message(err),
		Run:     run,
	}
}
