package xlsx

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Normalize converts a legacy workbook into a sibling workbook in the modern
// container format and returns the path of the converted file. Any other file
// is returned unchanged without touching the file system.
//
// A file already present at the converted path is deleted before conversion.
func Normalize(ctx context.Context, path string, converter Converter) (string, error) {
	if FormatOf(path) != Legacy {
		return path, nil
	}

	if converter == nil {
		return "", &ConversionError{File: path, Err: fmt.Errorf("no converter configured")}
	}

	converted := ConvertedPath(path)

	if _, err := os.Stat(converted); err == nil {
		if err := os.Remove(converted); err != nil {
			return "", &ConversionError{File: path, Err: err}
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", &ConversionError{File: path, Err: err}
	}

	slog.Debug("converting legacy workbook", slog.String("file", path), slog.String("converted", converted))

	if err := converter.Convert(ctx, path, converted); err != nil {
		return "", &ConversionError{File: path, Err: err}
	}

	if _, err := os.Stat(converted); err != nil {
		return "", &ConversionError{File: path, Err: fmt.Errorf("converted file '%s' not created", converted)}
	}

	return converted, nil
}

// ConvertedPath returns the path of the modern workbook produced by converting
// the legacy workbook at path, i.e. the same directory and base name with an
// .xlsx extension.
func ConvertedPath(path string) string {
	dir, file := filepath.Split(path)
	name := strings.TrimSuffix(file, filepath.Ext(file))

	return filepath.Join(dir, name+".xlsx")
}
