package store

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-sqlite3"
)

// Store is a small sqlite backed key-value store for convenience state that is
// safe to lose (cached tokens, remembered selections).
type Store struct {
	path string
	db   *sql.DB
}

var errIntegrity = errors.New("integrity check failed")

// Open opens (or creates) the store at path. A corrupt store is moved aside to
// <path>.corrupt and replaced with an empty store. Any other error (e.g. a
// store locked by another process) is returned as is.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0770); err != nil {
		return nil, err
	}

	s, err := open(path)
	if err == nil {
		return s, nil
	} else if !corrupted(err) {
		return nil, fmt.Errorf("unable to open store '%s' (%w)", path, err)
	}

	slog.Warn("store corrupt, resetting to defaults", slog.String("store", path), slog.Any("error", err))

	corrupt := path + ".corrupt"
	if err := os.Rename(path, corrupt); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("unable to move corrupt store '%s' (%v)", path, err)
	}

	for _, suffix := range []string{"-wal", "-shm"} {
		os.Remove(path + suffix)
	}

	return open(path)
}

func open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)

	s := &Store{
		path: path,
		db:   db,
	}

	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) initSchema() error {
	var check string
	if err := s.db.QueryRow(`PRAGMA quick_check`).Scan(&check); err != nil {
		return err
	} else if check != "ok" {
		return fmt.Errorf("%w (%s)", errIntegrity, check)
	}

	q := `CREATE TABLE IF NOT EXISTS kv (
	        key     TEXT PRIMARY KEY,
	        value   TEXT NOT NULL,
	        updated DATETIME
	      );`

	if _, err := s.db.Exec(q); err != nil {
		return err
	}

	return nil
}

func corrupted(err error) bool {
	var e sqlite3.Error
	if errors.As(err, &e) {
		return e.Code == sqlite3.ErrCorrupt || e.Code == sqlite3.ErrNotADB
	}

	return errors.Is(err, errIntegrity)
}

func (s *Store) Path() string {
	return s.path
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the value stored under key and false if there is no such key.
func (s *Store) Get(key string) (string, bool, error) {
	var value string

	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	} else if err != nil {
		return "", false, fmt.Errorf("error retrieving '%s' (%v)", key, err)
	}

	return value, true, nil
}

func (s *Store) Put(key, value string) error {
	q := `INSERT INTO kv(key,value,updated) VALUES(?,?,?)
	      ON CONFLICT(key) DO UPDATE SET value=excluded.value, updated=excluded.updated`

	if _, err := s.db.Exec(q, key, value, time.Now().UTC()); err != nil {
		return fmt.Errorf("error storing '%s' (%v)", key, err)
	}

	return nil
}

func (s *Store) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("error deleting '%s' (%v)", key, err)
	}

	return nil
}
