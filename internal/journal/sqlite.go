// Package journal records every CLI invocation in a local SQLite database
// so `dms history` can show what ran, when, and how it ended.
package journal

import (
	"database/sql"
	"fmt"
	"time"

	"dms-go/internal/journal/migrations"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Operation statuses recorded in the journal.
const (
	StatusStarted = "started"
	StatusSuccess = "success"
	StatusError   = "error"
)

// ClientOperation is one journalled CLI invocation.
type ClientOperation struct {
	ID         int64
	OpID       string
	Operation  string
	Parameters string
	Status     string
	StartedAt  time.Time
	FinishedAt sql.NullTime
}

// Journal records client operations and lists past ones.
type Journal interface {
	CreateOperation(opID, operation, parameters string) (*ClientOperation, error)
	FinishOperation(id int64, status string) error
	ListOperations(limit int) ([]*ClientOperation, error)
	Close() error
}

// SQLiteJournal implements Journal using SQLite.
type SQLiteJournal struct {
	db   *sql.DB
	path string
}

var _ Journal = (*SQLiteJournal)(nil)

// NewSQLiteJournal opens (or creates) the journal database at path and runs
// any pending migrations. path can be ":memory:" for an in-memory journal.
func NewSQLiteJournal(path string) (*SQLiteJournal, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating journal: %w", err)
	}

	return &SQLiteJournal{db: db, path: path}, nil
}

// OpenConnection opens and configures a SQLite connection with appropriate
// PRAGMAs. Exported for tests that need a raw connection.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign key constraints (SQLite default is OFF for backward compatibility)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// CreateOperation inserts a new operation row with status "started".
func (j *SQLiteJournal) CreateOperation(opID, operation, parameters string) (*ClientOperation, error) {
	now := time.Now()
	res, err := j.db.Exec(
		`INSERT INTO client_operations (op_id, operation, parameters, status, started_at)
		 VALUES (?, ?, ?, ?, ?)`,
		opID, operation, parameters, StatusStarted, now,
	)
	if err != nil {
		return nil, fmt.Errorf("creating client operation: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading operation id: %w", err)
	}

	return &ClientOperation{
		ID:         id,
		OpID:       opID,
		Operation:  operation,
		Parameters: parameters,
		Status:     StatusStarted,
		StartedAt:  now,
	}, nil
}

// FinishOperation records the terminal status and finish time for an operation.
func (j *SQLiteJournal) FinishOperation(id int64, status string) error {
	_, err := j.db.Exec(
		`UPDATE client_operations SET status = ?, finished_at = ? WHERE id = ?`,
		status, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("finishing client operation: %w", err)
	}
	return nil
}

// ListOperations returns the most recent operations, newest first.
func (j *SQLiteJournal) ListOperations(limit int) ([]*ClientOperation, error) {
	rows, err := j.db.Query(
		`SELECT id, op_id, operation, parameters, status, started_at, finished_at
		 FROM client_operations
		 ORDER BY started_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing client operations: %w", err)
	}
	defer rows.Close()

	var ops []*ClientOperation
	for rows.Next() {
		var op ClientOperation
		if err := rows.Scan(&op.ID, &op.OpID, &op.Operation, &op.Parameters, &op.Status, &op.StartedAt, &op.FinishedAt); err != nil {
			return nil, fmt.Errorf("scanning client operation: %w", err)
		}
		ops = append(ops, &op)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating client operations: %w", err)
	}

	return ops, nil
}

// CheckMigrations verifies the journal schema is up-to-date.
func (j *SQLiteJournal) CheckMigrations() error {
	return migrations.CheckDBMigrationStatus(j.db)
}

// Path returns the journal file path (or ":memory:").
func (j *SQLiteJournal) Path() string {
	return j.path
}

// Close closes the database connection.
func (j *SQLiteJournal) Close() error {
	if j.db != nil {
		return j.db.Close()
	}
	return nil
}
