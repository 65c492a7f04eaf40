package commands

import (
	"flag"
	"fmt"
	"strings"

	"github.com/uhppoted/uhppoted-app-xlsx/gsheets"
)

var ListCmd = List{
	spreadsheet: "",
}

type List struct {
	command
	spreadsheet string
}

func (cmd *List) Name() string {
	return "list"
}

func (cmd *List) Description() string {
	return "Lists the available Google Sheets spreadsheets or the worksheets in a spreadsheet"
}

func (cmd *List) Usage() string {
	return "[--spreadsheet <title>]"
}

func (cmd *List) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] [--config <file>] list [options] [--spreadsheet <title>]\n", APP)
	fmt.Println()
	fmt.Println("  Lists the titles of the spreadsheets accessible with the configured credentials or, if a")
	fmt.Println("  spreadsheet is specified, the titles of the worksheets in that spreadsheet.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    uhppoted-app-xlsx list`)
	fmt.Println(`    uhppoted-app-xlsx list --spreadsheet "Quarterly"`)
	fmt.Println()
}

func (cmd *List) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("list")

	flagset.StringVar(&cmd.spreadsheet, "spreadsheet", cmd.spreadsheet, "Spreadsheet title")

	return flagset
}

func (cmd *List) Execute(args ...any) error {
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

	var titles []string

	if spreadsheet := strings.TrimSpace(cmd.spreadsheet); spreadsheet == "" {
		titles, err = google.ListSpreadsheets(ctx)
	} else {
		titles, err = gsheets.ListTabs(ctx, google, spreadsheet)
	}

	if err != nil {
		return err
	}

	for _, title := range titles {
		fmt.Println(title)
	}

	return nil
}
