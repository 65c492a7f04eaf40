package commands

import (
	"flag"
	"fmt"
	"strings"

	"github.com/uhppoted/uhppoted-app-xlsx/upload"
	"github.com/uhppoted/uhppoted-app-xlsx/web"
)

var ServeCmd = Serve{
	bind: "",
}

type Serve struct {
	command
	bind string
}

func (cmd *Serve) Name() string {
	return "serve"
}

func (cmd *Serve) Description() string {
	return "Runs the web form for uploading spreadsheet files to Google Sheets"
}

func (cmd *Serve) Usage() string {
	return "[--bind <address>]"
}

func (cmd *Serve) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] [--config <file>] serve [options]\n", APP)
	fmt.Println()
	fmt.Println("  Runs a local web form for selecting a spreadsheet file and the destination Google Sheets")
	fmt.Println("  spreadsheet and worksheet. Only one upload runs at a time. The form has no login and")
	fmt.Println("  the default bind address is restricted to the local machine.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    uhppoted-app-xlsx serve --bind 127.0.0.1:8080`)
	fmt.Println()
}

func (cmd *Serve) FlagSet() *flag.FlagSet {
	flagset := cmd.flagset("serve")

	flagset.StringVar(&cmd.bind, "bind", cmd.bind, "HTTP bind address. Overrides the configured 'http.bind'")

	return flagset
}

func (cmd *Serve) Execute(args ...any) error {
	ctx, cfg, err := cmd.configure(args...)
	if err != nil {
		return err
	}

	defer cmd.close()

	if bind := strings.TrimSpace(cmd.bind); bind != "" {
		cfg.HTTP.Bind = bind
	}

	db, google, err := cmd.connect(ctx, cfg)
	if err != nil {
		return err
	}

	defer db.Close()

	runner := upload.NewRunner(newPipeline(cfg, google))
	server, err := web.NewServer(google, runner, db, cfg.Uploads())
	if err != nil {
		return err
	}

	infof("Listening on http://%v", cfg.HTTP.Bind)

	return server.ListenAndServe(ctx, cfg.HTTP.Bind)
}
