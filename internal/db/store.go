package db

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// TimeLayout is the on-disk timestamp format: local time with sub-second
// precision and a UTC-offset suffix.
const TimeLayout = "2006-01-02 15:04:05.999999999 -07:00"

// DateLayout is the format accepted for report dates.
const DateLayout = "2006-01-02"

// DefaultPath is the database file created in the working directory.
const DefaultPath = "tracked_windows.db"

// Store provides read/write access to the tracked-windows SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database and ensures the schema exists.
func Open(path string) (*Store, error) {
	// WAL so the sampling loop and a concurrent report reader don't block
	// each other; busy_timeout covers the remaining write contention.
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Verify connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS windows (
			id          INTEGER PRIMARY KEY,
			title       TEXT NOT NULL,
			start_time  TEXT NOT NULL,
			end_time    TEXT NOT NULL,
			category    INTEGER
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// InsertOrExtend persists one observation of a session. The identity of a row
// is (title, start_time): if no row matches, a new session is inserted; if one
// does, only its end_time is pushed forward. Category and start_time are fixed
// at first insert and never mutated by an extension.
func (s *Store) InsertOrExtend(sess Session) error {
	start := sess.StartTime.Format(TimeLayout)

	var id int64
	err := s.db.QueryRow(`
		SELECT id FROM windows
		WHERE title = ? AND start_time = ?
	`, sess.Title, start).Scan(&id)

	switch {
	case err == sql.ErrNoRows:
		_, err := s.db.Exec(`
			INSERT INTO windows (title, start_time, end_time, category)
			VALUES (?, ?, ?, ?)
		`, sess.Title, start, sess.EndTime.Format(TimeLayout), categoryValue(sess.Category))
		if err != nil {
			return &StoreError{Op: "insert session", Err: err}
		}
	case err != nil:
		return &StoreError{Op: "lookup session", Err: err}
	default:
		_, err := s.db.Exec(`
			UPDATE windows SET end_time = ? WHERE id = ?
		`, sess.EndTime.Format(TimeLayout), id)
		if err != nil {
			return &StoreError{Op: "extend session", Err: err}
		}
	}
	return nil
}

// SessionsOnDate returns all sessions whose start_time falls on the given
// local date, in insertion order. Timestamps are stored as local-time text,
// so the date is the first ten characters of the column; strftime would
// normalize the offset suffix to UTC and shift rows near midnight onto the
// wrong day.
func (s *Store) SessionsOnDate(date time.Time) ([]Session, error) {
	rows, err := s.db.Query(`
		SELECT id, title, start_time, end_time, category
		FROM windows
		WHERE substr(start_time, 1, 10) = ?
		ORDER BY id ASC
	`, date.Format(DateLayout))
	if err != nil {
		return nil, &StoreError{Op: "query sessions", Err: err}
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var sess Session
		var start, end string
		var category sql.NullInt64
		if err := rows.Scan(&sess.ID, &sess.Title, &start, &end, &category); err != nil {
			return nil, &StoreError{Op: "scan session", Err: err}
		}
		if sess.StartTime, err = ParseTime(start); err != nil {
			return nil, err
		}
		if sess.EndTime, err = ParseTime(end); err != nil {
			return nil, err
		}
		if category.Valid {
			c := int(category.Int64)
			sess.Category = &c
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// ParseTime parses a stored timestamp.
func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return time.Time{}, &ParseError{Input: s, Err: err}
	}
	return t, nil
}

// ParseDate parses a YYYY-MM-DD report date in local time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, &ParseError{Input: s, Err: err}
	}
	return t, nil
}

func categoryValue(c *int) any {
	if c == nil {
		return nil
	}
	return *c
}
