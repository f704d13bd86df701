package sqlitefile

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sricharancheeti/Bloomington-Service-Request-Dashboard/internal/core"
)

// Writer creates and populates a dataset file. Only the offline seed
// tool uses it; the running dashboard never writes.
type Writer struct {
	db *sql.DB
}

// NewWriter opens (creating if needed) a dataset file and brings it to
// the current schema.
func NewWriter(path string) (*Writer, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create dataset directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping dataset: %w", err)
	}
	if err := RunMigrations(path); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate dataset: %w", err)
	}
	return &Writer{db: db}, nil
}

// Insert writes a batch of records in one transaction.
func (w *Writer) Insert(ctx context.Context, table core.Table) error {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO requests (id, service_name, description, status_description,
		                      requested_datetime, updated_datetime, closed_date, lat, long)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range table {
		var updated, closed any
		if rec.Updated.Valid {
			updated = formatTimestamp(rec.Updated.Time)
		}
		if rec.Closed.Valid {
			closed = formatTimestamp(rec.Closed.Time)
		}
		var lat, long any
		if rec.Lat.Valid {
			lat = rec.Lat.Float64
		}
		if rec.Long.Valid {
			long = rec.Long.Float64
		}
		if _, err := stmt.ExecContext(ctx, rec.ID, rec.ServiceName, rec.Description, rec.Status,
			formatTimestamp(rec.Requested), updated, closed, lat, long); err != nil {
			return fmt.Errorf("insert request %q: %w", rec.ID, err)
		}
	}
	return tx.Commit()
}

// Close releases the underlying connection.
func (w *Writer) Close() error {
	if w.db != nil {
		return w.db.Close()
	}
	return nil
}
