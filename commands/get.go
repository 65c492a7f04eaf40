package commands

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/uhppoted/uhppoted-app-xlsx/gsheets"
)

var GetCmd = Get{
	file: time.Now().Format("2006-01-02T150405.tsv"),
}

type Get struct {
	command
	spreadsheet string
	worksheet   string
	file        string
}

func (cmd *Get) Name() string {
	return "get"
}

func (cmd *Get) Description() string {
	return "Retrieves a Google Sheets worksheet and stores it to a local TSV file"
}

func (cmd *Get) Usage() string {
	return "--spreadsheet <title> --worksheet <title> [--file <file>]"
}

func (cmd *Get) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] [--config <file>] get [options] --spreadsheet <title> --worksheet <title> --file <file>\n", APP)
	fmt.Println()
	fmt.Println("  Downloads a Google Sheets worksheet to a TSV file")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    uhppoted-app-xlsx --debug get --spreadsheet "Quarterly" --worksheet "Q1" --file "Q1.tsv"`)
	fmt.Println()
}

func (cmd *Get) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("get")

	flagset.StringVar(&cmd.spreadsheet, "spreadsheet", cmd.spreadsheet, "Spreadsheet title")
	flagset.StringVar(&cmd.worksheet, "worksheet", cmd.worksheet, "Worksheet (tab) title")
	flagset.StringVar(&cmd.file, "file", cmd.file, "TSV file name. Defaults to '<yyyy-mm-ddTHHmmss>.tsv'")

	return flagset
}

func (cmd *Get) Execute(args ...any) error {
	ctx, cfg, err := cmd.configure(args...)
	if err != nil {
		return err
	}

	defer cmd.close()

	// ... check parameters
	if strings.TrimSpace(cmd.spreadsheet) == "" {
		return fmt.Errorf("--spreadsheet is a required option")
	}

	if strings.TrimSpace(cmd.worksheet) == "" {
		return fmt.Errorf("--worksheet is a required option")
	}

	if strings.TrimSpace(cmd.file) == "" {
		return fmt.Errorf("--file is a required option")
	}

	debugf("Spreadsheet - title:%s  worksheet:%s", cmd.spreadsheet, cmd.worksheet)

	db, google, err := cmd.connect(ctx, cfg)
	if err != nil {
		return err
	}

	defer db.Close()

	dir := filepath.Dir(cmd.file)
	if err := os.MkdirAll(dir, 0770); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".get-*.tsv")
	if err != nil {
		return err
	}

	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	ref := gsheets.Ref{
		Spreadsheet: cmd.spreadsheet,
		Worksheet:   cmd.worksheet,
	}

	rows, err := gsheets.Download(ctx, google, ref, tmp)
	if err != nil {
		return err
	} else if rows == 0 {
		return fmt.Errorf("no data in worksheet '%s'", cmd.worksheet)
	}

	tmp.Close()

	if err := os.Rename(tmp.Name(), cmd.file); err != nil {
		return err
	}

	infof("Retrieved %v rows to file %s", rows, cmd.file)

	return nil
}
