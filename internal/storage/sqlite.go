// Package storage provides SQLite-based persistence for party session history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for session history.
type Store struct {
	db *sql.DB
}

// Session is one finished party display.
type Session struct {
	ID              string
	User            string
	Origin          string // "local" or "ssh"
	Theme           string
	StartedAt       time.Time
	Duration        time.Duration
	PartyStarted    bool
	ReducedMotion   bool
	AudioToggles    int
	AudioErrors     int
	Resizes         int
	ConfettiSpawned int
}

// Totals aggregates every stored session.
type Totals struct {
	Sessions        int
	PartiesStarted  int
	AudioToggles    int
	AudioErrors     int
	ConfettiSpawned int
	TotalDuration   time.Duration
	LastSession     time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			user TEXT NOT NULL DEFAULT '',
			origin TEXT NOT NULL DEFAULT 'local',
			theme TEXT NOT NULL,
			started_at DATETIME NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			party_started INTEGER NOT NULL DEFAULT 0,
			reduced_motion INTEGER NOT NULL DEFAULT 0,
			audio_toggles INTEGER NOT NULL DEFAULT 0,
			audio_errors INTEGER NOT NULL DEFAULT 0,
			resizes INTEGER NOT NULL DEFAULT 0,
			confetti_spawned INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_at DESC);
		CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSession records a finished session. An empty ID gets a fresh UUID and
// a zero StartedAt means now. Returns the session ID.
func (s *Store) SaveSession(sess Session) (string, error) {
	if sess.ID == "" {
		sess.ID = uuid.New().String()
	}
	if sess.StartedAt.IsZero() {
		sess.StartedAt = time.Now()
	}
	if sess.Origin == "" {
		sess.Origin = "local"
	}

	_, err := s.db.Exec(
		`INSERT INTO sessions
		 (id, user, origin, theme, started_at, duration_ms, party_started, reduced_motion,
		  audio_toggles, audio_errors, resizes, confetti_spawned)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.ID,
		sess.User,
		sess.Origin,
		sess.Theme,
		sess.StartedAt.UTC().Format(timeLayout),
		sess.Duration.Milliseconds(),
		sess.PartyStarted,
		sess.ReducedMotion,
		sess.AudioToggles,
		sess.AudioErrors,
		sess.Resizes,
		sess.ConfettiSpawned,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save session: %w", err)
	}
	return sess.ID, nil
}

const sessionColumns = `id, user, origin, theme, started_at, duration_ms, party_started,
	reduced_motion, audio_toggles, audio_errors, resizes, confetti_spawned`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(r rowScanner) (Session, error) {
	var sess Session
	var startedAt any
	var durationMs int64

	err := r.Scan(
		&sess.ID,
		&sess.User,
		&sess.Origin,
		&sess.Theme,
		&startedAt,
		&durationMs,
		&sess.PartyStarted,
		&sess.ReducedMotion,
		&sess.AudioToggles,
		&sess.AudioErrors,
		&sess.Resizes,
		&sess.ConfettiSpawned,
	)
	if err != nil {
		return sess, err
	}
	sess.StartedAt = parseTime(startedAt)
	sess.Duration = time.Duration(durationMs) * time.Millisecond
	return sess, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t.UTC()
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// SessionByID retrieves a session by its ID. Returns nil if not found.
func (s *Store) SessionByID(id string) (*Session, error) {
	row := s.db.QueryRow(`SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session: %w", err)
	}
	return &sess, nil
}

// RecentSessions retrieves the most recent sessions, newest first.
func (s *Store) RecentSessions(limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+sessionColumns+`
		 FROM sessions
		 ORDER BY started_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sessions, nil
}

// Stats aggregates every stored session.
func (s *Store) Stats() (*Totals, error) {
	t := &Totals{}
	var durationMs int64
	var last any

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(party_started), 0),
		        COALESCE(SUM(audio_toggles), 0),
		        COALESCE(SUM(audio_errors), 0),
		        COALESCE(SUM(confetti_spawned), 0),
		        COALESCE(SUM(duration_ms), 0),
		        MAX(started_at)
		 FROM sessions`,
	).Scan(&t.Sessions, &t.PartiesStarted, &t.AudioToggles, &t.AudioErrors,
		&t.ConfettiSpawned, &durationMs, &last)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get session stats: %w", err)
	}

	t.TotalDuration = time.Duration(durationMs) * time.Millisecond
	t.LastSession = parseTime(last)
	return t, nil
}

// ClearSessions deletes all stored sessions.
func (s *Store) ClearSessions() error {
	_, err := s.db.Exec("DELETE FROM sessions")
	if err != nil {
		return fmt.Errorf("storage: cannot clear sessions: %w", err)
	}
	return nil
}
