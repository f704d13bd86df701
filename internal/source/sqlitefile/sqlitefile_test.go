package sqlitefile

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/sricharancheeti/Bloomington-Service-Request-Dashboard/internal/core"
)

func seedDataset(t *testing.T, table core.Table) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "requests.db")
	w, err := NewWriter(path)
	if err != nil {
		t.Fatalf("create writer: %v", err)
	}
	defer w.Close()
	if err := w.Insert(context.Background(), table); err != nil {
		t.Fatalf("insert: %v", err)
	}
	return path
}

func TestWriteThenReadRoundtrip(t *testing.T) {
	requested := time.Date(2023, 1, 15, 10, 30, 0, 0, time.UTC)
	closed := core.SomeTime(requested.AddDate(0, 0, 5))
	in := core.Table{
		{
			ID:             "168493",
			ServiceName:    "Potholes",
			Description:    "Deep pothole",
			Status:         "Closed",
			Requested:      requested,
			Closed:         closed,
			Lat:            core.SomeFloat(39.1653),
			Long:           core.SomeFloat(-86.5264),
			ResolutionDays: core.ResolutionBetween(requested, closed),
		},
		{
			ID:          "168512",
			ServiceName: "Graffiti",
			Requested:   time.Date(2023, 2, 10, 8, 0, 0, 0, time.UTC),
			// open request, no coordinates
		},
	}

	path := seedDataset(t, in)
	out, err := NewReader(path).Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 records, got %d", len(out))
	}

	got := out[0]
	if got.ID != "168493" || got.ServiceName != "Potholes" {
		t.Fatalf("unexpected first record: %+v", got)
	}
	if !got.Requested.Equal(requested) {
		t.Fatalf("requested timestamp mangled: %v", got.Requested)
	}
	if !got.ResolutionDays.Valid || got.ResolutionDays.Int64 != 5 {
		t.Fatalf("expected 5 resolution days, got %+v", got.ResolutionDays)
	}
	if !got.Lat.Valid || got.Lat.Float64 != 39.1653 {
		t.Fatalf("latitude mangled: %+v", got.Lat)
	}

	open := out[1]
	if open.Closed.Valid || open.ResolutionDays.Valid || open.Lat.Valid {
		t.Fatalf("open record should keep missing markers: %+v", open)
	}
}

func TestFetchMissingDataset(t *testing.T) {
	_, err := NewReader(filepath.Join(t.TempDir(), "absent.db")).Fetch(context.Background())
	var loadErr *core.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected LoadError for missing dataset, got %v", err)
	}
	if loadErr.Source != "sqlite" {
		t.Fatalf("expected sqlite source kind, got %q", loadErr.Source)
	}
}

func TestReaderKey(t *testing.T) {
	if got := NewReader("/data/x.db").Key(); got != "sqlite:/data/x.db" {
		t.Fatalf("unexpected key %q", got)
	}
}
