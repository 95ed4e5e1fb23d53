package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/felixgeelhaar/orion/internal/tasks/domain/task"
)

// SQLiteStore keeps the task list in a SQLite table, one row per task.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens (creating if needed) the database at path and applies
// the schema.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, &PersistenceError{Op: "open", Path: path, Err: fmt.Errorf("failed to create database directory: %w", err)}
		}
	}

	// - journal_mode=WAL: readers never see a half-applied save
	// - busy_timeout=5000: wait on lock instead of failing immediately
	dsn := path
	if !strings.Contains(dsn, "?") {
		dsn += "?"
	} else {
		dsn += "&"
	}
	dsn += "_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, &PersistenceError{Op: "open", Path: path, Err: err}
	}

	// SQLite doesn't support multiple writers
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	store, err := NewSQLiteStore(ctx, db)
	if err != nil {
		db.Close()
		return nil, &PersistenceError{Op: "open", Path: path, Err: err}
	}
	store.path = path
	return store, nil
}

// NewSQLiteStore wraps an open database and applies the schema.
func NewSQLiteStore(ctx context.Context, db *sql.DB) (*SQLiteStore, error) {
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}
	if err := runSQLiteMigrations(ctx, db); err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Save replaces the stored list with m inside one transaction.
func (s *SQLiteStore) Save(ctx context.Context, m *task.Manager) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM tasks`); err != nil {
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tasks (id, position, type, description, done, by_date, from_date, to_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}
	defer stmt.Close()

	for i, t := range m.List() {
		r := NewRecord(t)
		_, err = stmt.ExecContext(ctx,
			r.ID, i, r.Type, r.Description, r.Done,
			nullString(r.By), nullString(r.From), nullString(r.To),
			r.CreatedAt.Format(time.RFC3339Nano),
		)
		if err != nil {
			return &PersistenceError{Op: "save", Path: s.path, Err: fmt.Errorf("task %d: %w", i+1, err)}
		}
	}

	if err = tx.Commit(); err != nil {
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}
	return nil
}

// Load reads every task in position order.
func (s *SQLiteStore) Load(ctx context.Context) (*task.Manager, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, type, description, done, by_date, from_date, to_date, created_at
		FROM tasks ORDER BY position`)
	if err != nil {
		return nil, &PersistenceError{Op: "load", Path: s.path, Err: err}
	}
	defer rows.Close()

	var doc Document
	for rows.Next() {
		var (
			r             Record
			by, from, to  sql.NullString
			createdAtText string
		)
		if err := rows.Scan(&r.ID, &r.Type, &r.Description, &r.Done, &by, &from, &to, &createdAtText); err != nil {
			return nil, corrupt("load", s.path, err)
		}
		r.By, r.From, r.To = by.String, from.String, to.String
		createdAt, err := time.Parse(time.RFC3339Nano, createdAtText)
		if err != nil {
			return nil, corrupt("load", s.path, err)
		}
		r.CreatedAt = createdAt
		doc.Tasks = append(doc.Tasks, r)
	}
	if err := rows.Err(); err != nil {
		return nil, &PersistenceError{Op: "load", Path: s.path, Err: err}
	}

	m, err := doc.Manager()
	if err != nil {
		return nil, corrupt("load", s.path, err)
	}
	return m, nil
}

// Quarantine renames the tasks table to tasks_corrupt_<unix nanos> and
// recreates an empty one. The returned location is "<path>#<table>".
func (s *SQLiteStore) Quarantine(ctx context.Context) (_ string, err error) {
	table := fmt.Sprintf("tasks_corrupt_%d", time.Now().UnixNano())

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", &PersistenceError{Op: "quarantine", Path: s.path, Err: err}
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	// The position index keeps its name after a rename and would stop the
	// migration from recreating it on the new table.
	if _, err = tx.ExecContext(ctx, `ALTER TABLE tasks RENAME TO `+table); err != nil {
		return "", &PersistenceError{Op: "quarantine", Path: s.path, Err: err}
	}
	if _, err = tx.ExecContext(ctx, `DROP INDEX IF EXISTS idx_tasks_position`); err != nil {
		return "", &PersistenceError{Op: "quarantine", Path: s.path, Err: err}
	}
	if err = tx.Commit(); err != nil {
		return "", &PersistenceError{Op: "quarantine", Path: s.path, Err: err}
	}

	if err := runSQLiteMigrations(ctx, s.db); err != nil {
		return "", &PersistenceError{Op: "quarantine", Path: s.path, Err: err}
	}
	return s.path + "#" + table, nil
}

// DB returns the underlying sql.DB.
func (s *SQLiteStore) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
