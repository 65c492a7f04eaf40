package upload

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/uhppoted/uhppoted-app-xlsx/xlsx"
)

// cleanup deletes the intermediate workbook created by converting a legacy
// source. A file supplied by the operator is never deleted.
func cleanup(original, source string) {
	if xlsx.FormatOf(original) != xlsx.Legacy {
		return
	}

	if source == "" || filepath.Clean(source) == filepath.Clean(original) {
		return
	}

	if err := os.Remove(source); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("error removing intermediate file", slog.String("file", source), slog.Any("error", err))
	} else {
		slog.Debug("removed intermediate file", slog.String("file", source))
	}
}
