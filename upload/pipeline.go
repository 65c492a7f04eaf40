package upload

import (
	"context"
	"log/slog"
	"strings"

	"github.com/uhppoted/uhppoted-app-xlsx/gsheets"
	"github.com/uhppoted/uhppoted-app-xlsx/xlsx"
)

// Args are the caller supplied upload parameters.
type Args struct {
	File        string `json:"file"`
	Spreadsheet string `json:"spreadsheet"`
	Worksheet   string `json:"worksheet"`
}

func (a Args) Destination() gsheets.Ref {
	return gsheets.Ref{
		Spreadsheet: a.Spreadsheet,
		Worksheet:   a.Worksheet,
	}
}

type Summary struct {
	File        string
	Source      string
	Rows        int
	Columns     int
	Spreadsheet string
	Worksheet   string
}

// Pipeline replaces the contents of a destination worksheet with the table
// read from a local spreadsheet file. Legacy workbooks are converted with
// Converter unless Direct is set, in which case they are read as is.
type Pipeline struct {
	Service   gsheets.Service
	Converter xlsx.Converter
	Direct    bool
}

func (p Pipeline) Upload(ctx context.Context, args Args) (Summary, error) {
	summary := Summary{
		File:        args.File,
		Spreadsheet: args.Spreadsheet,
		Worksheet:   args.Worksheet,
	}

	if strings.TrimSpace(args.File) == "" {
		return summary, ErrNoFileSelected
	}

	source := args.File
	if !p.Direct {
		normalized, err := xlsx.Normalize(ctx, args.File, p.Converter)
		if err != nil {
			return summary, err
		}

		source = normalized
	}

	summary.Source = source

	table, err := xlsx.Extract(source)
	if err != nil {
		return summary, err
	}

	bounded := xlsx.Bound(table)

	summary.Rows = bounded.Rows()
	summary.Columns = bounded.Columns()

	slog.Debug("extracted table",
		slog.String("file", source),
		slog.Int("rows", table.Rows()),
		slog.Int("columns", table.Columns()),
		slog.Int("bounded-rows", summary.Rows),
		slog.Int("bounded-columns", summary.Columns))

	err = gsheets.Replace(ctx, p.Service, args.Destination(), bounded)

	cleanup(args.File, source)

	return summary, err
}
