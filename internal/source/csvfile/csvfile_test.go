package csvfile

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/sricharancheeti/Bloomington-Service-Request-Dashboard/internal/core"
)

func TestFetchParsesRecords(t *testing.T) {
	l := New(filepath.Join("testdata", "requests.csv"))
	table, err := l.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(table) != 3 {
		t.Fatalf("expected 3 records, got %d", len(table))
	}

	first := table[0]
	if first.ID != "168493" || first.ServiceName != "Potholes" {
		t.Fatalf("unexpected first record: %+v", first)
	}
	if !first.Requested.Equal(time.Date(2023, 1, 15, 10, 30, 0, 0, time.UTC)) {
		t.Fatalf("unexpected requested timestamp: %v", first.Requested)
	}
	if !first.ResolutionDays.Valid || first.ResolutionDays.Int64 != 5 {
		t.Fatalf("expected 5 resolution days, got %+v", first.ResolutionDays)
	}
	if !first.Lat.Valid || first.Lat.Float64 != 39.1653 {
		t.Fatalf("expected valid lat, got %+v", first.Lat)
	}

	open := table[1]
	if open.Closed.Valid {
		t.Fatalf("open request should have no close date")
	}
	if open.ResolutionDays.Valid {
		t.Fatalf("open request should have undefined resolution days")
	}
	if open.Lat.Valid || open.Long.Valid {
		t.Fatalf("N/A coordinates should be missing, got %+v %+v", open.Lat, open.Long)
	}

	// Record with one coordinate empty keeps the other
	partial := table[2]
	if !partial.Lat.Valid || partial.Long.Valid {
		t.Fatalf("expected lat valid and long missing, got %+v %+v", partial.Lat, partial.Long)
	}
}

func TestFetchStrictTimestampPolicy(t *testing.T) {
	l := New(filepath.Join("testdata", "bad_timestamp.csv"))
	_, err := l.Fetch(context.Background())
	if err == nil {
		t.Fatalf("expected load failure for unparsable requested_datetime")
	}
	var loadErr *core.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected LoadError, got %T: %v", err, err)
	}
	if loadErr.Source != "csv" {
		t.Fatalf("expected csv source kind, got %q", loadErr.Source)
	}
}

func TestFetchMissingFile(t *testing.T) {
	l := New(filepath.Join("testdata", "nope.csv"))
	_, err := l.Fetch(context.Background())
	var loadErr *core.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected LoadError for missing file, got %v", err)
	}
}

func TestKey(t *testing.T) {
	if got := New("/data/x.csv").Key(); got != "csv:/data/x.csv" {
		t.Fatalf("unexpected key %q", got)
	}
}
