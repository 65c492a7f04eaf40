package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	slogmulti "github.com/samber/slog-multi"
)

// setupLogging installs the process logger: text to stderr and, if logfile is
// set, JSON to the log file. The returned function closes the log file.
func setupLogging(debug bool, logfile string) (func(), error) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	options := slog.HandlerOptions{
		Level: level,
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(os.Stderr, &options),
	}

	closer := func() {}

	if logfile != "" {
		if err := os.MkdirAll(filepath.Dir(logfile), 0770); err != nil {
			return nil, err
		}

		f, err := os.OpenFile(logfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0660)
		if err != nil {
			return nil, fmt.Errorf("error opening log file '%s' (%v)", logfile, err)
		}

		handlers = append(handlers, slog.NewJSONHandler(f, &options))
		closer = func() { f.Close() }
	}

	slog.SetDefault(slog.New(slogmulti.Fanout(handlers...)).With(slog.String("app", APP)))

	return closer, nil
}
