// Package csvfile loads the bulk CSV export of service requests.
//
// Timestamp policy is strict for requested_datetime: a single unparsable
// value aborts the whole load, since a partial dataset with broken core
// dates is not safe to aggregate over. Every other questionable field
// degrades per-record (missing close date, non-numeric coordinates).
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/sricharancheeti/Bloomington-Service-Request-Dashboard/internal/core"
)

const sourceKind = "csv"

// Loader reads service requests from a local CSV file.
type Loader struct {
	path string
}

// New creates a Loader for the given file path.
func New(path string) *Loader {
	return &Loader{path: path}
}

// Key implements source.Source.
func (l *Loader) Key() string {
	return sourceKind + ":" + l.path
}

// Fetch reads and parses the whole file.
func (l *Loader) Fetch(ctx context.Context) (core.Table, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, core.NewLoadError(sourceKind, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // header defines the width, rows may be ragged

	header, err := r.Read()
	if err != nil {
		return nil, core.NewLoadError(sourceKind, fmt.Errorf("read header: %w", err))
	}
	cols, err := mapColumns(header)
	if err != nil {
		return nil, core.NewLoadError(sourceKind, err)
	}

	var table core.Table
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, core.NewLoadError(sourceKind, err)
		}
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, core.NewLoadError(sourceKind, fmt.Errorf("line %d: %w", line, err))
		}
		rec, err := cols.record(row)
		if err != nil {
			return nil, core.NewLoadError(sourceKind, fmt.Errorf("line %d: %w", line, err))
		}
		table = append(table, rec)
	}
	return table, nil
}

// columns maps the logical fields onto header positions. -1 marks an
// absent optional column.
type columns struct {
	id, service, description, status       int
	requested, updated, closed, lat, long_ int
}

func mapColumns(header []string) (columns, error) {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	find := func(names ...string) int {
		for _, n := range names {
			if i, ok := idx[n]; ok {
				return i
			}
		}
		return -1
	}

	c := columns{
		id:          find("service_request_id", "id"),
		service:     find("service_name"),
		description: find("description"),
		status:      find("status_description"),
		requested:   find("requested_datetime"),
		updated:     find("updated_datetime"),
		closed:      find("closed_date"),
		lat:         find("lat"),
		long_:       find("long"),
	}
	if c.service < 0 || c.requested < 0 {
		return c, fmt.Errorf("missing required columns service_name/requested_datetime in header %v", header)
	}
	return c, nil
}

func (c columns) field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func (c columns) record(row []string) (core.Record, error) {
	requested, err := core.ParseTimestamp(c.field(row, c.requested))
	if err != nil {
		return core.Record{}, fmt.Errorf("requested_datetime: %w", err)
	}

	closed := core.ParseOptionalTimestamp(c.field(row, c.closed))
	return core.Record{
		ID:             c.field(row, c.id),
		ServiceName:    c.field(row, c.service),
		Description:    c.field(row, c.description),
		Status:         c.field(row, c.status),
		Requested:      requested,
		Updated:        core.ParseOptionalTimestamp(c.field(row, c.updated)),
		Closed:         closed,
		Lat:            core.ParseCoordinate(c.field(row, c.lat)),
		Long:           core.ParseCoordinate(c.field(row, c.long_)),
		ResolutionDays: core.ResolutionBetween(requested, closed),
	}, nil
}
