package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/uhppoted/uhppoted-app-xlsx/gsheets"
	"github.com/uhppoted/uhppoted-app-xlsx/upload"
)

//go:embed html
var HTML embed.FS

// Selections remembers the last destination used for a successful upload.
type Selections interface {
	Selection() (gsheets.Ref, error)
	SaveSelection(ref gsheets.Ref) error
}

// Server is the web form front end for the upload pipeline.
type Server struct {
	service    gsheets.Service
	runner     *upload.Runner
	selections Selections
	uploads    string
	maxUpload  int64
	page       *template.Template
	router     *mux.Router
}

func NewServer(service gsheets.Service, runner *upload.Runner, selections Selections, uploads string) (*Server, error) {
	page, err := template.ParseFS(HTML, "html/index.html")
	if err != nil {
		return nil, err
	}

	s := Server{
		service:    service,
		runner:     runner,
		selections: selections,
		uploads:    uploads,
		maxUpload:  maxUploadSize,
		page:       page,
		router:     mux.NewRouter(),
	}

	s.router.Use(requestLoggingMiddleware)

	s.router.HandleFunc("/", s.index).Methods(http.MethodGet)
	s.router.HandleFunc("/get_sheets", s.getSheets).Methods(http.MethodGet)
	s.router.HandleFunc("/get_tabs", s.getTabs).Methods(http.MethodPost)
	s.router.HandleFunc("/upload", s.upload).Methods(http.MethodPost)

	return &s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe runs the server until ctx is cancelled and then shuts it down,
// waiting for in-flight requests to complete.
func (s *Server) ListenAndServe(ctx context.Context, bind string) error {
	server := &http.Server{
		Addr:              bind,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)

	go func() {
		slog.Info("web server started", slog.String("bind", bind))

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}

		close(errs)
	}()

	select {
	case err := <-errs:
		return err

	case <-ctx.Done():
	}

	slog.Info("web server stopping")

	if err := server.Shutdown(context.Background()); err != nil {
		return err
	}

	return <-errs
}
