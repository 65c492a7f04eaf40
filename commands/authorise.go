package commands

import (
	"context"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os/exec"
	"runtime"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/uhppoted/uhppoted-app-xlsx/gsheets"
	"github.com/uhppoted/uhppoted-app-xlsx/store"
)

var AuthoriseCmd = Authorise{}

type Authorise struct {
	command
}

func (cmd *Authorise) Name() string {
	return "authorise"
}

func (cmd *Authorise) Description() string {
	return "Authorises uhppoted-app-xlsx to access Google Sheets with OAuth client credentials"
}

func (cmd *Authorise) Usage() string {
	return "[--credentials <file>]"
}

func (cmd *Authorise) Help() {
	fmt.Println()
	fmt.Printf("  Usage: %s [--debug] [--config <file>] authorise [options]\n", APP)
	fmt.Println()
	fmt.Println("  Opens the Google authorisation page in the default browser and caches the issued tokens")
	fmt.Println("  in the local store. Not required for service account credentials.")
	fmt.Println()

	helpOptions(cmd.FlagSet())

	fmt.Println()
	fmt.Println("  Examples:")
	fmt.Println(`    uhppoted-app-xlsx authorise --credentials "credentials.json"`)
	fmt.Println()
}

func (cmd *Authorise) FlagSet() *flag.FlagSet {
	return cmd.flagset("authorise")
}

func (cmd *Authorise) Execute(args ...any) error {
	ctx, cfg, err := cmd.configure(args...)
	if err != nil {
		return err
	}

	defer cmd.close()

	oauth, err := gsheets.OAuthConfig(cfg.Credentials)
	if err != nil {
		return fmt.Errorf("authorisation error (%v)", err)
	}

	db, err := store.Open(cfg.Store)
	if err != nil {
		return fmt.Errorf("error opening store '%s' (%v)", cfg.Store, err)
	}

	defer db.Close()

	token, err := authorise(ctx, oauth)
	if err != nil {
		return fmt.Errorf("authorisation error (%v)", err)
	}

	if err := db.SaveToken(gsheets.TokenKey(cfg.Credentials), token); err != nil {
		return err
	}

	infof("Authorised %v - tokens cached in %v", cfg.Credentials, db.Path())

	return nil
}

// authorise runs the OAuth authorisation code flow with a loopback redirect to
// a temporary local HTTP server.
func authorise(ctx context.Context, oauth *oauth2.Config) (*oauth2.Token, error) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, err
	}

	state := uuid.NewString()
	codes := make(chan string, 1)
	errs := make(chan error, 1)

	oauth.RedirectURL = fmt.Sprintf("http://%v/", listener.Addr())

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, rq *http.Request) {
		if rq.FormValue("state") != state {
			http.Error(w, "Invalid authorisation request", http.StatusBadRequest)
			return
		}

		if reason := rq.FormValue("error"); reason != "" {
			http.Error(w, "Authorisation declined", http.StatusForbidden)
			select {
			case errs <- fmt.Errorf("%v", reason):
			default:
			}
			return
		}

		code := rq.FormValue("code")
		if code == "" {
			http.Error(w, "Missing authorisation code", http.StatusBadRequest)
			return
		}

		fmt.Fprintf(w, "%s has been authorised - you can close this window\n", APP)

		select {
		case codes <- code:
		default:
		}
	})

	srv := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			warnf("%v", err)
		}
	}()

	defer func() {
		if err := srv.Shutdown(context.Background()); err != nil {
			warnf("%v", err)
		}
	}()

	url := oauth.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)

	fmt.Println()
	fmt.Println("  Open the following link in your browser to authorise access to Google Sheets:")
	fmt.Println()
	fmt.Printf("  %v\n", url)
	fmt.Println()

	if err := browse(url); err != nil {
		debugf("could not open authorisation page in browser (%v)", err)
	}

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("cancelled")

	case err := <-errs:
		return nil, err

	case code := <-codes:
		return oauth.Exchange(ctx, code)
	}
}

func browse(url string) error {
	var command *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		command = exec.Command("open", url)

	case "windows":
		command = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)

	default:
		command = exec.Command("xdg-open", url)
	}

	return command.Start()
}
