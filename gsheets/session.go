package gsheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

var Scopes = []string{
	sheets.SpreadsheetsScope,
	drive.DriveMetadataReadonlyScope,
}

var ErrNotAuthorised = errors.New("not authorised")

// TokenCache persists OAuth tokens between runs. Token returns nil (and no
// error) if nothing is cached under the key.
type TokenCache interface {
	Token(key string) (*oauth2.Token, error)
	SaveToken(key string, token *oauth2.Token) error
}

// Session is the process-wide authenticated handle for the remote service. It
// is created once and shared by every upload.
type Session struct {
	Credentials string
	source      oauth2.TokenSource
}

// NewSession creates a session from a credentials file. Service account
// credentials are used directly. OAuth client credentials require a token
// previously cached by the 'authorise' command; refreshed tokens are written
// back to the cache.
func NewSession(ctx context.Context, credentials string, tokens TokenCache) (*Session, error) {
	b, err := os.ReadFile(credentials)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("credentials file '%s' not found", credentials)
	} else if err != nil {
		return nil, fmt.Errorf("error reading credentials file '%s' (%v)", credentials, err)
	}

	if isServiceAccount(b) {
		config, err := google.JWTConfigFromJSON(b, Scopes...)
		if err != nil {
			return nil, fmt.Errorf("invalid service account credentials (%v)", err)
		}

		slog.Debug("using service account", slog.String("email", config.Email))

		return &Session{
			Credentials: credentials,
			source:      config.TokenSource(ctx),
		}, nil
	}

	config, err := google.ConfigFromJSON(b, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("invalid OAuth client credentials (%v)", err)
	}

	key := TokenKey(credentials)
	token, err := tokens.Token(key)
	if err != nil {
		return nil, err
	} else if token == nil {
		return nil, fmt.Errorf("%w - no cached token for '%s' (run 'authorise' first)", ErrNotAuthorised, credentials)
	}

	source := &cachingTokenSource{
		key:    key,
		cache:  tokens,
		source: config.TokenSource(ctx, token),
		last:   token.AccessToken,
	}

	return &Session{
		Credentials: credentials,
		source:      oauth2.ReuseTokenSource(token, source),
	}, nil
}

func (s *Session) Token() (*oauth2.Token, error) {
	return s.source.Token()
}

func (s *Session) Options() []option.ClientOption {
	return []option.ClientOption{
		option.WithTokenSource(s.source),
	}
}

// OAuthConfig loads the OAuth client configuration used by the browser
// authorisation flow.
func OAuthConfig(credentials string) (*oauth2.Config, error) {
	b, err := os.ReadFile(credentials)
	if err != nil {
		return nil, err
	}

	if isServiceAccount(b) {
		return nil, fmt.Errorf("'%s' is a service account credentials file and does not require authorisation", credentials)
	}

	return google.ConfigFromJSON(b, Scopes...)
}

// TokenKey returns the cache key for the tokens issued to a credentials file.
func TokenKey(credentials string) string {
	_, file := filepath.Split(credentials)
	name := strings.TrimSuffix(file, filepath.Ext(file))

	return "token:" + name
}

func isServiceAccount(b []byte) bool {
	var credentials struct {
		Type string `json:"type"`
	}

	if err := json.Unmarshal(b, &credentials); err != nil {
		return false
	}

	return credentials.Type == "service_account"
}

type cachingTokenSource struct {
	key    string
	cache  TokenCache
	source oauth2.TokenSource
	last   string
	sync.Mutex
}

func (s *cachingTokenSource) Token() (*oauth2.Token, error) {
	token, err := s.source.Token()
	if err != nil {
		return nil, err
	}

	s.Lock()
	defer s.Unlock()

	if token.AccessToken != s.last {
		if err := s.cache.SaveToken(s.key, token); err != nil {
			slog.Warn("error caching refreshed token", slog.String("key", s.key), slog.Any("error", err))
		} else {
			s.last = token.AccessToken
		}
	}

	return token, nil
}
