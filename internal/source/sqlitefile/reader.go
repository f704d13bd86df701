// Package sqlitefile reads service requests from a seeded SQLite dataset
// file (the format cmd/seed produces from the bulk CSV). The dashboard
// only ever reads this file; writes happen offline through the Writer.
package sqlitefile

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/sricharancheeti/Bloomington-Service-Request-Dashboard/internal/core"

	_ "modernc.org/sqlite"
)

const sourceKind = "sqlite"

const timestampLayout = "2006-01-02 15:04:05"

// Reader loads the full request table from a dataset file. Each Fetch
// opens its own connection so a load stays atomic and the Reader itself
// carries no state.
type Reader struct {
	path string
}

// NewReader creates a Reader for the given dataset path.
func NewReader(path string) *Reader {
	return &Reader{path: path}
}

// Key implements source.Source.
func (r *Reader) Key() string {
	return sourceKind + ":" + r.path
}

// Fetch reads every request row.
func (r *Reader) Fetch(ctx context.Context) (core.Table, error) {
	if _, err := os.Stat(r.path); err != nil {
		return nil, core.NewLoadError(sourceKind, err)
	}

	db, err := sql.Open("sqlite", r.path)
	if err != nil {
		return nil, core.NewLoadError(sourceKind, err)
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `
		SELECT id, service_name, description, status_description,
		       requested_datetime, updated_datetime, closed_date, lat, long
		FROM requests
		ORDER BY requested_datetime`)
	if err != nil {
		return nil, core.NewLoadError(sourceKind, err)
	}
	defer rows.Close()

	var table core.Table
	for rows.Next() {
		var (
			rec             core.Record
			requested       string
			updated, closed sql.NullString
			lat, long       sql.NullFloat64
		)
		if err := rows.Scan(&rec.ID, &rec.ServiceName, &rec.Description, &rec.Status,
			&requested, &updated, &closed, &lat, &long); err != nil {
			return nil, core.NewLoadError(sourceKind, err)
		}

		rec.Requested, err = core.ParseTimestamp(requested)
		if err != nil {
			return nil, core.NewLoadError(sourceKind, fmt.Errorf("request %q: requested_datetime: %w", rec.ID, err))
		}
		if updated.Valid {
			rec.Updated = core.ParseOptionalTimestamp(updated.String)
		}
		if closed.Valid {
			rec.Closed = core.ParseOptionalTimestamp(closed.String)
		}
		if lat.Valid {
			rec.Lat = core.SomeFloat(lat.Float64)
		}
		if long.Valid {
			rec.Long = core.SomeFloat(long.Float64)
		}
		rec.ResolutionDays = core.ResolutionBetween(rec.Requested, rec.Closed)

		table = append(table, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, core.NewLoadError(sourceKind, err)
	}
	return table, nil
}

func formatTimestamp(t time.Time) string {
	return t.Format(timestampLayout)
}
