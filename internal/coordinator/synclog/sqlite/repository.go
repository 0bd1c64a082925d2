// Package sqlite stores the sync journal in an embedded SQLite file.
//
// The pure-Go modernc driver keeps the client free of CGO.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jcmexdev/cart-sync/internal/coordinator/synclog"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS sync_log (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    operation_id    TEXT        NOT NULL,
    operation       TEXT        NOT NULL,
    order_id        TEXT        NOT NULL DEFAULT '',
    status          TEXT        NOT NULL,
    current_step    TEXT        NOT NULL DEFAULT '',
    error_messages  TEXT        NOT NULL DEFAULT '[]',
    trace_id        TEXT        NOT NULL DEFAULT '',
    span_id         TEXT        NOT NULL DEFAULT '',
    updated_at      TEXT        NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sync_log_operation_id ON sync_log(operation_id, id);
CREATE INDEX IF NOT EXISTS idx_sync_log_order_id ON sync_log(order_id, id);
`

const selectColumns = `operation_id, operation, order_id, status, current_step,
       error_messages, trace_id, span_id, updated_at`

// Repository is the SQLite implementation of synclog.Repository.
type Repository struct {
	db *sql.DB
}

var _ synclog.Repository = (*Repository)(nil)

// Open opens (or creates) the journal database at path and applies the schema.
//
//	repo, err := sqlite.Open("./data/cart-sync.db")
func Open(path string) (*Repository, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", path)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %q: %w", path, err)
	}

	// single writer
	db.SetMaxOpenConns(1)

	if err := applySchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}

// Save appends an entry. It is safe to call concurrently.
func (r *Repository) Save(ctx context.Context, entry *synclog.Entry) error {
	const q = `
		INSERT INTO sync_log
			(operation_id, operation, order_id, status, current_step, error_messages, trace_id, span_id, updated_at)
		VALUES
			(?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		entry.OperationID,
		entry.Operation,
		entry.OrderID,
		string(entry.Status),
		entry.CurrentStep,
		entry.ErrorMessages,
		entry.TraceID,
		entry.SpanID,
		formatTime(entry.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save sync log for %q: %w", entry.OperationID, err)
	}
	return nil
}

// GetLatest returns the most recent entry of an operation run.
func (r *Repository) GetLatest(ctx context.Context, operationID string) (*synclog.Entry, error) {
	q := `SELECT ` + selectColumns + `
		FROM   sync_log
		WHERE  operation_id = ?
		ORDER  BY id DESC
		LIMIT  1`

	entry, err := scanEntry(r.db.QueryRowContext(ctx, q, operationID))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("sqlite: operation %q not found", operationID)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlite: get latest for %q: %w", operationID, err)
	}
	return entry, nil
}

// ListByOrder returns every entry recorded for an order, oldest first.
func (r *Repository) ListByOrder(ctx context.Context, orderID string) ([]*synclog.Entry, error) {
	q := `SELECT ` + selectColumns + `
		FROM   sync_log
		WHERE  order_id = ?
		ORDER  BY id ASC`

	rows, err := r.db.QueryContext(ctx, q, orderID)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list by order %q: %w", orderID, err)
	}
	defer rows.Close()

	var out []*synclog.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: list by order %q: %w", orderID, err)
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (*synclog.Entry, error) {
	var entry synclog.Entry
	var updatedAt string
	err := s.Scan(
		&entry.OperationID,
		&entry.Operation,
		&entry.OrderID,
		&entry.Status,
		&entry.CurrentStep,
		&entry.ErrorMessages,
		&entry.TraceID,
		&entry.SpanID,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("sqlite: apply schema: %w", err)
	}
	return nil
}
