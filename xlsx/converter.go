package xlsx

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Converter converts a legacy workbook at src into a modern workbook at dst.
type Converter interface {
	Convert(ctx context.Context, src, dst string) error
}

// ConverterFunc adapts an ordinary function to the Converter interface.
type ConverterFunc func(ctx context.Context, src, dst string) error

func (f ConverterFunc) Convert(ctx context.Context, src, dst string) error {
	return f(ctx, src, dst)
}

// Office converts workbooks by running a headless LibreOffice (or compatible)
// instance. A zero Timeout waits for the external application indefinitely.
type Office struct {
	Command string
	Timeout time.Duration
}

const DefaultOfficeCommand = "soffice"

func (o Office) Convert(ctx context.Context, src, dst string) error {
	command := o.Command
	if strings.TrimSpace(command) == "" {
		command = DefaultOfficeCommand
	}

	if o.Timeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, o.Timeout)
		defer cancel()
	}

	// ... private user profile so that a running desktop instance doesn't swallow the request
	profile, err := os.MkdirTemp("", "soffice-profile-")
	if err != nil {
		return err
	}

	defer os.RemoveAll(profile)

	outdir := filepath.Dir(dst)
	installation := url.URL{
		Scheme: "file",
		Path:   "/" + strings.TrimPrefix(filepath.ToSlash(profile), "/"),
	}

	cmd := exec.CommandContext(ctx,
		command,
		"-env:UserInstallation="+installation.String(),
		"--headless",
		"--norestore",
		"--convert-to", "xlsx",
		"--outdir", outdir,
		src)

	var stderr bytes.Buffer

	cmd.Stderr = &stderr
	if _, err := cmd.Output(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}

		return fmt.Errorf("%s: %s", filepath.Base(command), msg)
	}

	// ... the office application names the output after the source file
	produced := filepath.Join(outdir, ConvertedPath(filepath.Base(src)))
	if filepath.Clean(produced) != filepath.Clean(dst) {
		if err := os.Rename(produced, dst); err != nil {
			return err
		}
	}

	return nil
}
