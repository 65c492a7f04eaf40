package xlsx

import (
	"path/filepath"
	"strings"
)

type Format int

const (
	Unknown Format = iota
	Legacy
	Modern
	Delimited
)

func (f Format) String() string {
	switch f {
	case Legacy:
		return "xls"
	case Modern:
		return "xlsx"
	case Delimited:
		return "delimited"
	default:
		return "unknown"
	}
}

// FormatOf returns the declared format of a file, based on its extension.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xls":
		return Legacy

	case ".xlsx", ".xlsm":
		return Modern

	case ".tsv", ".csv":
		return Delimited

	default:
		return Unknown
	}
}
