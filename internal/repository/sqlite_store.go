package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS collections (
	collection_key TEXT PRIMARY KEY,
	payload        TEXT NOT NULL,
	updated_at     INTEGER NOT NULL
)`

// SQLiteStore keeps collections as rows in a single SQLite table
type SQLiteStore struct {
	sqlDB *sql.DB
}

// OpenSQLiteStore opens the database file and creates the table if needed
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(sqliteSchema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create collections table: %w", err)
	}
	return &SQLiteStore{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle
func (s *SQLiteStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *SQLiteStore) Read(ctx context.Context, key string) (json.RawMessage, bool, error) {
	var payload string
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT payload FROM collections WHERE collection_key = ?`, key,
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read collection: %w", err)
	}
	return json.RawMessage(payload), true, nil
}

func (s *SQLiteStore) Write(ctx context.Context, key string, payload json.RawMessage) error {
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO collections (collection_key, payload, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(collection_key) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		key, string(payload), time.Now().UnixMilli(),
	)
	if err != nil {
		if isSQLiteFull(err) {
			return fmt.Errorf("%w: %v", ErrStorageFull, err)
		}
		return fmt.Errorf("write collection: %w", err)
	}
	return nil
}

func isSQLiteFull(err error) bool {
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code()&0xff == sqlite3lib.SQLITE_FULL
	}
	return false
}
