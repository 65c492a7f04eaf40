package store

import (
	"encoding/json"
	"log/slog"

	"golang.org/x/oauth2"

	"github.com/uhppoted/uhppoted-app-xlsx/gsheets"
)

const selection = "selection"

// Token implements gsheets.TokenCache. A missing or undecodable token is
// returned as nil.
func (s *Store) Token(key string) (*oauth2.Token, error) {
	var token oauth2.Token

	if ok, err := s.decode(key, &token); err != nil || !ok {
		return nil, err
	}

	return &token, nil
}

func (s *Store) SaveToken(key string, token *oauth2.Token) error {
	return s.encode(key, token)
}

// Selection returns the last used destination spreadsheet and worksheet, or
// an empty Ref if nothing usable has been stored.
func (s *Store) Selection() (gsheets.Ref, error) {
	var ref gsheets.Ref

	if ok, err := s.decode(selection, &ref); err != nil || !ok {
		return gsheets.Ref{}, err
	}

	return ref, nil
}

func (s *Store) SaveSelection(ref gsheets.Ref) error {
	return s.encode(selection, ref)
}

func (s *Store) encode(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return s.Put(key, string(b))
}

func (s *Store) decode(key string, v any) (bool, error) {
	value, ok, err := s.Get(key)
	if err != nil || !ok {
		return false, err
	}

	if err := json.Unmarshal([]byte(value), v); err != nil {
		slog.Warn("ignoring invalid stored value", slog.String("key", key), slog.Any("error", err))
		return false, nil
	}

	return true, nil
}
