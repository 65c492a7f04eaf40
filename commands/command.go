package commands

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/uhppoted/uhppoted-app-xlsx/config"
	"github.com/uhppoted/uhppoted-app-xlsx/gsheets"
	"github.com/uhppoted/uhppoted-app-xlsx/store"
)

const APP = config.APP

// Options are the global command line options.
type Options struct {
	Config string
	Debug  bool
}

type command struct {
	workdir     string
	credentials string
	debug       bool
	closer      func()
}

func (c *command) flagset(name string) *flag.FlagSet {
	flagset := flag.NewFlagSet(name, flag.ExitOnError)

	flagset.StringVar(&c.workdir, "workdir", c.workdir, "Directory for working files (store, uploads). Overrides the configured 'workdir'")
	flagset.StringVar(&c.credentials, "credentials", c.credentials, "Path for the Google 'credentials.json' file. Overrides the configured 'credentials'")

	return flagset
}

// configure extracts the context and global options passed to Execute, loads
// the configuration and applies the command line overrides.
func (c *command) configure(args ...any) (context.Context, *config.Config, error) {
	ctx := context.Background()
	options := Options{}

	for _, arg := range args {
		switch v := arg.(type) {
		case context.Context:
			ctx = v
		case *Options:
			options = *v
		}
	}

	c.debug = options.Debug

	cfg, err := config.Load(options.Config)
	if err != nil {
		return ctx, nil, err
	}

	if workdir := strings.TrimSpace(c.workdir); workdir != "" {
		if cfg.Store == filepath.Join(cfg.Workdir, APP+".db") {
			cfg.Store = filepath.Join(workdir, APP+".db")
		}

		cfg.Workdir = workdir
	}

	if credentials := strings.TrimSpace(c.credentials); credentials != "" {
		cfg.Credentials = credentials
	}

	if strings.TrimSpace(cfg.Credentials) == "" {
		return ctx, nil, fmt.Errorf("--credentials is a required option")
	}

	closer, err := setupLogging(c.debug, cfg.Log.File)
	if err != nil {
		return ctx, nil, err
	}

	c.closer = closer

	return ctx, cfg, nil
}

func (c *command) close() {
	if c.closer != nil {
		c.closer()
	}
}

// connect opens the local store and creates the authenticated Google client.
func (c *command) connect(ctx context.Context, cfg *config.Config) (*store.Store, *gsheets.Google, error) {
	db, err := store.Open(cfg.Store)
	if err != nil {
		return nil, nil, fmt.Errorf("error opening store '%s' (%v)", cfg.Store, err)
	}

	session, err := gsheets.NewSession(ctx, cfg.Credentials, db)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("authentication/authorization error (%w)", err)
	}

	google, err := gsheets.NewGoogle(ctx, session.Options()...)
	if err != nil {
		db.Close()
		return nil, nil, err
	}

	debugf("connected to Google Sheets (credentials:%v)", cfg.Credentials)

	return db, google, nil
}

func helpOptions(flagset *flag.FlagSet) {
	fmt.Println("  Options:")
	fmt.Println()

	flagset.VisitAll(func(f *flag.Flag) {
		fmt.Printf("    --%-12s %s\n", f.Name, f.Usage)
	})

	fmt.Println()
	fmt.Println("  Global options:")
	fmt.Println()
	fmt.Printf("    --%-12s %s\n", "config", "Configuration file. Defaults to ./"+APP+".yaml")
	fmt.Printf("    --%-12s %s\n", "debug", "Displays internal information for diagnosing errors")
}

func debugf(format string, args ...any) {
	slog.Debug(fmt.Sprintf(format, args...))
}

func infof(format string, args ...any) {
	slog.Info(fmt.Sprintf(format, args...))
}

func warnf(format string, args ...any) {
	slog.Warn(fmt.Sprintf(format, args...))
}
