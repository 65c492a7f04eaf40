package commands

import (
	"encoding/json"
	"flag"
	"fmt"
	"strings"

	"github.com/uhppoted/uhppoted-app-xlsx/config"
	"github.com/uhppoted/uhppoted-app-xlsx/gsheets"
	"github.com/uhppoted/uhppoted-app-xlsx/store"
	"github.com/uhppoted/uhppoted-app-xlsx/upload"
	"github.com/uhppoted/uhppoted-app-xlsx/xlsx"
)

var UploadCmd = Upload{
	command: command{
		workdir:     "",
		credentials: "",
		debug:       false,
	},

	file:        "",
	spreadsheet: "",
	worksheet:   "",
}

type Upload struct {
	command
	file        string
	spreadsheet string
	worksheet   string
}

func (cmd *Upload) Name() string {
	return "upload"
}

func (cmd *Upload) Description() string {
	return "Replaces the contents of a Google Sheets worksheet with a local spreadsheet file"
}

func (cmd *Upload) Usage() string {
	return "--file <file> [--spreadsheet <title>] [--worksheet <title>]"
}

func (cmd *Upload) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] [--config <file>] upload [options] --file <file> --spreadsheet <title> --worksheet <title>\n", APP)
	fmt.Println()
	fmt.Println("  Clears a Google Sheets worksheet and replaces the contents with the active worksheet of a")
	fmt.Println("  local .xlsx, .xls, .tsv or .csv file. The upload is limited to the first 1086 rows and")
	fmt.Println("  56 columns and empty rows are discarded. The spreadsheet and worksheet default to the")
	fmt.Println("  destination of the last successful upload.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    uhppoted-app-xlsx --debug upload --file "Q1 2024.xls" --spreadsheet "Quarterly" --worksheet "Q1"`)
	fmt.Println()
}

func (cmd *Upload) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("upload")

	flagset.StringVar(&cmd.file, "file", cmd.file, "Spreadsheet file (.xlsx, .xlsm, .xls, .tsv or .csv)")
	flagset.StringVar(&cmd.spreadsheet, "spreadsheet", cmd.spreadsheet, "Destination spreadsheet title")
	flagset.StringVar(&cmd.worksheet, "worksheet", cmd.worksheet, "Destination worksheet (tab) title")

	return flagset
}

func (cmd *Upload) Execute(args ...any) error {
	ctx, cfg, err := cmd.configure(args...)
	if err != nil {
		return err
	}

	defer cmd.close()

	db, google, err := cmd.connect(ctx, cfg)
	if err != nil {
		return err
	}

	defer db.Close()

	destination, err := cmd.destination(db)
	if err != nil {
		return err
	}

	runner := upload.NewRunner(newPipeline(cfg, google))
	result := runner.Run(ctx, upload.Args{
		File:        cmd.file,
		Spreadsheet: destination.Spreadsheet,
		Worksheet:   destination.Worksheet,
	})

	b, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", string(b))

	if !result.OK() {
		return fmt.Errorf("%v", result.Message)
	}

	if err := db.SaveSelection(destination); err != nil {
		warnf("error saving spreadsheet/worksheet selection (%v)", err)
	}

	infof("Uploaded %v to Google Sheets %v:%v", cmd.file, destination.Spreadsheet, destination.Worksheet)

	return nil
}

// destination returns the spreadsheet and worksheet from the command line.
// Missing fields are filled from the remembered selection, except that the
// remembered worksheet is only used with the remembered spreadsheet.
func (cmd *Upload) destination(db *store.Store) (gsheets.Ref, error) {
	ref := gsheets.Ref{
		Spreadsheet: strings.TrimSpace(cmd.spreadsheet),
		Worksheet:   strings.TrimSpace(cmd.worksheet),
	}

	if ref.Spreadsheet == "" || ref.Worksheet == "" {
		if selection, err := db.Selection(); err != nil {
			warnf("error retrieving remembered selection (%v)", err)
		} else if ref.Spreadsheet == "" {
			ref.Spreadsheet = selection.Spreadsheet
			if ref.Worksheet == "" {
				ref.Worksheet = selection.Worksheet
			}
		} else if ref.Spreadsheet == selection.Spreadsheet {
			ref.Worksheet = selection.Worksheet
		}
	}

	if ref.Spreadsheet == "" {
		return ref, fmt.Errorf("--spreadsheet is a required option")
	}

	if ref.Worksheet == "" {
		return ref, fmt.Errorf("--worksheet is a required option")
	}

	return ref, nil
}

func newPipeline(cfg *config.Config, service gsheets.Service) upload.Pipeline {
	return upload.Pipeline{
		Service: service,
		Converter: xlsx.Office{
			Command: cfg.Converter.Command,
			Timeout: cfg.Converter.Timeout,
		},
		Direct: cfg.Legacy.Reader == config.LegacyDirect,
	}
}
