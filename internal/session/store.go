// Package session persists the client's authentication token and view
// preferences in a local SQLite file, the terminal analog of the
// browser's local storage.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"
)

// ErrEmptyToken is returned when an empty token is stored.
var ErrEmptyToken = errors.New("empty session token")

// Preferences are advisory dashboard defaults persisted between runs.
type Preferences struct {
	HouseholdID int64
	Month       int
	Year        int
}

// Store holds the session token and preferences. The token is loaded
// once at Open and kept in memory; writes go through to SQLite so the
// session survives process restarts. There is exactly one token at a
// time, overwritten wholesale.
type Store struct {
	db *sql.DB

	mu       sync.RWMutex
	token    string
	hasToken bool
}

// Open opens (creating if needed) the state database at path, runs
// migrations and loads the persisted token.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create state directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open state database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping state database: %w", err)
	}

	if err := RunMigrations(path); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	s := &Store{db: db}
	if err := s.loadToken(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) loadToken() error {
	var token string
	err := s.db.QueryRow(`SELECT token FROM session WHERE id = 1`).Scan(&token)
	switch {
	case err == sql.ErrNoRows:
		return nil
	case err != nil:
		return fmt.Errorf("load session token: %w", err)
	}
	s.token = token
	s.hasToken = token != ""
	return nil
}

// Token returns the active token and whether one is present. It
// satisfies the gateway's TokenSource.
func (s *Store) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.hasToken
}

// SetToken persists token and makes it the active one.
func (s *Store) SetToken(ctx context.Context, token string) error {
	if token == "" {
		return ErrEmptyToken
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO session (id, token, updated_at) VALUES (1, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET token = excluded.token, updated_at = CURRENT_TIMESTAMP`,
		token)
	if err != nil {
		return fmt.Errorf("store session token: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.hasToken = true
	s.mu.Unlock()
	return nil
}

// Clear removes the persisted token. Clearing an absent token is not an
// error.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session WHERE id = 1`); err != nil {
		return fmt.Errorf("clear session token: %w", err)
	}

	s.mu.Lock()
	s.token = ""
	s.hasToken = false
	s.mu.Unlock()
	return nil
}

// Preferences returns the stored dashboard preferences, reporting false
// when none have been saved yet.
func (s *Store) Preferences(ctx context.Context) (Preferences, bool, error) {
	var p Preferences
	err := s.db.QueryRowContext(ctx,
		`SELECT household_id, month, year FROM preferences WHERE id = 1`).
		Scan(&p.HouseholdID, &p.Month, &p.Year)
	switch {
	case err == sql.ErrNoRows:
		return Preferences{}, false, nil
	case err != nil:
		return Preferences{}, false, fmt.Errorf("load preferences: %w", err)
	}
	return p, true, nil
}

// SetPreferences stores the dashboard preferences, overwriting any
// previous values.
func (s *Store) SetPreferences(ctx context.Context, p Preferences) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO preferences (id, household_id, month, year, updated_at)
		VALUES (1, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			household_id = excluded.household_id,
			month = excluded.month,
			year = excluded.year,
			updated_at = CURRENT_TIMESTAMP`,
		p.HouseholdID, p.Month, p.Year)
	if err != nil {
		return fmt.Errorf("store preferences: %w", err)
	}
	return nil
}
