package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/uhppoted/uhppoted-app-xlsx/gsheets"
	"github.com/uhppoted/uhppoted-app-xlsx/upload"
)

const maxUploadSize = 64 << 20

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	selection, err := s.selections.Selection()
	if err != nil {
		slog.Warn("error retrieving remembered selection", slog.Any("error", err))
	}

	var b bytes.Buffer
	if err := s.page.Execute(&b, selection); err != nil {
		http.Error(w, "Error formatting page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(b.Bytes())
}

func (s *Server) getSheets(w http.ResponseWriter, r *http.Request) {
	titles, err := s.service.ListSpreadsheets(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}

	writeJSON(w, http.StatusOK, titles)
}

func (s *Server) getTabs(w http.ResponseWriter, r *http.Request) {
	var request struct {
		SheetName string `json:"sheet_name"`
	}

	if err := json.NewDecoder(io.LimitReader(r.Body, 64*1024)).Decode(&request); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid request"))
		return
	} else if request.SheetName == "" {
		writeError(w, http.StatusBadRequest, errors.New("missing sheet_name"))
		return
	}

	tabs, err := gsheets.ListTabs(r.Context(), s.service, request.SheetName)

	var destination *gsheets.DestinationError
	switch {
	case errors.As(err, &destination) && destination.Kind == gsheets.NotFound:
		writeError(w, http.StatusNotFound, err)

	case err != nil:
		writeError(w, http.StatusBadGateway, err)

	default:
		writeJSON(w, http.StatusOK, tabs)
	}
}

// upload saves the posted file to a private directory and runs the upload.
// The saved copy is always removed afterwards.
func (s *Server) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)

	if err := r.ParseMultipartForm(8 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeFailed(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("uploaded file exceeds the %v byte limit", s.maxUpload))
		} else {
			writeFailed(w, http.StatusBadRequest, fmt.Sprintf("invalid upload request (%v)", err))
		}
		return
	}

	args := upload.Args{
		Spreadsheet: r.FormValue("selected_sheet"),
		Worksheet:   r.FormValue("selected_tab"),
	}

	file, header, err := r.FormFile("excel_file")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		writeFailed(w, http.StatusBadRequest, fmt.Sprintf("invalid uploaded file (%v)", err))
		return
	}

	if file != nil {
		defer file.Close()

		dir, err := s.save(file, header.Filename)
		if err != nil {
			slog.Error("error saving uploaded file", slog.String("file", header.Filename), slog.Any("error", err))
			writeFailed(w, http.StatusInternalServerError, "error saving uploaded file")
			return
		}

		defer os.RemoveAll(dir)

		args.File = filepath.Join(dir, filepath.Base(header.Filename))
	}

	// a started upload runs to completion even if the client goes away
	result := s.runner.Run(context.WithoutCancel(r.Context()), args)
	if result.OK() {
		if err := s.selections.SaveSelection(args.Destination()); err != nil {
			slog.Warn("error saving selection", slog.Any("error", err))
		}
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) save(file io.Reader, filename string) (string, error) {
	name := filepath.Base(filename)
	if name == "." || name == string(filepath.Separator) || strings.TrimSpace(name) == "" {
		name = "upload.xlsx"
	}

	if err := os.MkdirAll(s.uploads, 0770); err != nil {
		return "", err
	}

	dir, err := os.MkdirTemp(s.uploads, "upload-")
	if err != nil {
		return "", err
	}

	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		os.RemoveAll(dir)
		return "", err
	}

	defer f.Close()

	if _, err := io.Copy(f, file); err != nil {
		os.RemoveAll(dir)
		return "", err
	}

	return dir, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{"error": err.Error()})
}

// writeFailed reports an upload that could not be started in the same form as
// the result of a failed upload.
func writeFailed(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, upload.Result{Status: upload.Error, Message: message})
}
