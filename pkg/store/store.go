// Package store persists todos, notes and work logs in a local SQLite
// database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Field length limits, in characters.
const (
	MaxTodoContent    = 500
	MaxNoteTitle      = 200
	MaxNoteContent    = 50_000
	MaxWorkLogContent = 10_000
)

// SchemaVersion is the user_version the migrations bring the database to.
const SchemaVersion = 2

// ArchiveAfter is how long a finished todo stays in the list.
const ArchiveAfter = 30 * 24 * time.Hour

// vacuumPages bounds the work done by one Vacuum call.
const vacuumPages = 100

var (
	// ErrEmpty is returned when required text is blank.
	ErrEmpty = errors.New("store: content is empty")
	// ErrTooLong is returned when text exceeds its field limit.
	ErrTooLong = errors.New("store: content too long")
	// ErrNotFound is returned when no row has the given id.
	ErrNotFound = errors.New("store: not found")
)

// Store is a handle to the database. It is safe for concurrent use.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the database at path and runs migrations.
func Open(path string) (*Store, error) {
	dsn := path + "?_journal_mode=WAL&_synchronous=NORMAL&_auto_vacuum=incremental&_busy_timeout=5000"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Version returns the schema version recorded in the database.
func (s *Store) Version(ctx context.Context) (int, error) {
	var v int
	err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&v)
	return v, err
}

// Vacuum reclaims a bounded number of free pages.
func (s *Store) Vacuum(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf("PRAGMA incremental_vacuum(%d)", vacuumPages))
	return err
}

func (s *Store) migrate(ctx context.Context) error {
	version, err := s.Version(ctx)
	if err != nil {
		return err
	}
	if version >= SchemaVersion {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if version < 1 {
		for _, stmt := range schemaV1 {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("v1: %w", err)
			}
		}
	}

	if version < 2 {
		hasDoneAt, err := columnExists(ctx, tx, "todos", "done_at")
		if err != nil {
			return fmt.Errorf("v2: %w", err)
		}
		if !hasDoneAt {
			if _, err := tx.ExecContext(ctx, "ALTER TABLE todos ADD COLUMN done_at INTEGER"); err != nil {
				return fmt.Errorf("v2: %w", err)
			}
		}
		if _, err := tx.ExecContext(ctx, schemaV2Archive); err != nil {
			return fmt.Errorf("v2: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", SchemaVersion)); err != nil {
		return err
	}
	return tx.Commit()
}

func columnExists(ctx context.Context, tx *sql.Tx, table, column string) (bool, error) {
	rows, err := tx.QueryContext(ctx, "SELECT name FROM pragma_table_info(?)", table)
	if err != nil {
		return false, err
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}

var schemaV1 = []string{
	fmt.Sprintf(`CREATE TABLE IF NOT EXISTS todos (
		id TEXT PRIMARY KEY,
		content TEXT NOT NULL CHECK(length(content) >= 1 AND length(content) <= %d),
		is_done INTEGER DEFAULT 0,
		priority INTEGER DEFAULT 0,
		created_at INTEGER NOT NULL
	)`, MaxTodoContent),
	fmt.Sprintf(`CREATE TABLE IF NOT EXISTS notes (
		id TEXT PRIMARY KEY,
		title TEXT DEFAULT '' CHECK(length(title) <= %d),
		content TEXT DEFAULT '',
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	)`, MaxNoteTitle),
	`CREATE TABLE IF NOT EXISTS work_logs (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		content TEXT DEFAULT '',
		created_at INTEGER NOT NULL
	)`,
}

const schemaV2Archive = `CREATE TABLE IF NOT EXISTS todos_archive (
	id TEXT PRIMARY KEY,
	content TEXT NOT NULL,
	priority INTEGER DEFAULT 0,
	created_at INTEGER NOT NULL,
	done_at INTEGER NOT NULL,
	archived_at INTEGER NOT NULL
)`

func newID() string {
	return uuid.NewString()
}

// millis returns the current time in epoch milliseconds.
func (s *Store) millis() int64 {
	return s.now().UnixMilli()
}

func checkLength(value string, limit int, field string) error {
	if n := utf8.RuneCountInString(value); n > limit {
		return fmt.Errorf("%w: %s has %d characters, limit is %d", ErrTooLong, field, n, limit)
	}
	return nil
}

func expectOne(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}
