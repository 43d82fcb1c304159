package store

import (
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"github.com/teamseven/codeconnect/internal/domain"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens or creates a SQLite database at the given path.
// Use ":memory:" for an in-memory database.
func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			room TEXT NOT NULL,
			language TEXT NOT NULL,
			version TEXT NOT NULL,
			output TEXT NOT NULL,
			ok INTEGER NOT NULL,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_room_created ON runs(room, created_at);
	`)
	return err
}

// Save persists an execution record to the database.
func (s *SQLiteStore) Save(rec domain.RunRecord) error {
	ts := rec.CreatedAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	_, err := s.db.Exec(
		"INSERT INTO runs (room, language, version, output, ok, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		rec.Room, rec.Language, rec.Version, rec.Output, rec.OK, ts,
	)
	return err
}

// Recent returns the last `limit` runs for a room, oldest first.
func (s *SQLiteStore) Recent(room string, limit int) ([]domain.RunRecord, error) {
	rows, err := s.db.Query(`
		SELECT room, language, version, output, ok, created_at FROM runs
		WHERE room = ?
		ORDER BY created_at DESC
		LIMIT ?
	`, room, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []domain.RunRecord
	for rows.Next() {
		var r domain.RunRecord
		if err := rows.Scan(&r.Room, &r.Language, &r.Version, &r.Output, &r.OK, &r.CreatedAt); err != nil {
			return nil, err
		}
		recs = append(recs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Reverse to oldest-first order.
	for i, j := 0, len(recs)-1; i < j; i, j = i+1, j-1 {
		recs[i], recs[j] = recs[j], recs[i]
	}
	return recs, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
