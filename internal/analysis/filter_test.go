package analysis

import (
	"testing"
	"time"

	"github.com/sricharancheeti/Bloomington-Service-Request-Dashboard/internal/core"
)

func req(service string, year, month, day int) core.Record {
	return core.Record{
		ServiceName: service,
		Requested:   time.Date(year, time.Month(month), day, 11, 30, 0, 0, time.UTC),
	}
}

func closedReq(service string, year, month, day, resolutionDays int) core.Record {
	r := req(service, year, month, day)
	r.Closed = core.SomeTime(r.Requested.AddDate(0, 0, resolutionDays))
	r.ResolutionDays = core.ResolutionBetween(r.Requested, r.Closed)
	return r
}

func TestFilterByServiceSet(t *testing.T) {
	tbl := core.Table{
		req("Potholes", 2023, 1, 1),
		req("Graffiti", 2023, 1, 2),
		req("Potholes", 2023, 1, 3),
		req("Trash", 2023, 1, 4),
	}

	got := Filter(tbl, Selection{Services: []string{"Potholes", "Trash"}})
	if len(got) != 3 {
		t.Fatalf("expected 3 records, got %d", len(got))
	}
	for _, rec := range got {
		if rec.ServiceName != "Potholes" && rec.ServiceName != "Trash" {
			t.Fatalf("record %q escaped the service filter", rec.ServiceName)
		}
	}
}

func TestFilterEmptyServiceSetKeepsAll(t *testing.T) {
	tbl := core.Table{
		req("Potholes", 2023, 1, 1),
		req("Graffiti", 2023, 1, 2),
	}
	got := Filter(tbl, Selection{})
	if len(got) != len(tbl) {
		t.Fatalf("empty selection must keep all records, got %d of %d", len(got), len(tbl))
	}
	got = Filter(tbl, Selection{Services: []string{}})
	if len(got) != len(tbl) {
		t.Fatalf("empty service slice must keep all records, got %d", len(got))
	}
}

func TestFilterByDateRangeInclusive(t *testing.T) {
	tbl := core.Table{
		req("Potholes", 2023, 1, 9),
		req("Potholes", 2023, 1, 10),
		req("Potholes", 2023, 1, 20),
		req("Potholes", 2023, 1, 21),
	}
	rng := &core.DateRange{Start: core.NewDate(2023, 1, 10), End: core.NewDate(2023, 1, 20)}
	got := Filter(tbl, Selection{Range: rng})
	if len(got) != 2 {
		t.Fatalf("expected the 2 boundary-inclusive records, got %d", len(got))
	}
}

func TestFilterIdempotent(t *testing.T) {
	tbl := core.Table{
		req("Potholes", 2023, 1, 1),
		req("Graffiti", 2023, 2, 2),
		req("Potholes", 2023, 3, 3),
	}
	sel := Selection{
		Services: []string{"Potholes"},
		Range:    &core.DateRange{Start: core.NewDate(2023, 1, 1), End: core.NewDate(2023, 2, 28)},
	}
	once := Filter(tbl, sel)
	twice := Filter(once, sel)
	if len(once) != len(twice) {
		t.Fatalf("filter must be idempotent: %d then %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].ServiceName != twice[i].ServiceName || !once[i].Requested.Equal(twice[i].Requested) {
			t.Fatalf("record %d changed across idempotent filter", i)
		}
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	tbl := core.Table{
		req("Potholes", 2023, 1, 1),
		req("Graffiti", 2023, 1, 2),
	}
	before := len(tbl)
	_ = Filter(tbl, Selection{Services: []string{"Graffiti"}})
	if len(tbl) != before || tbl[0].ServiceName != "Potholes" {
		t.Fatalf("input table mutated by filter")
	}
}

func TestFilterNoMatchesReturnsEmptyTable(t *testing.T) {
	tbl := core.Table{req("Potholes", 2023, 1, 1)}
	got := Filter(tbl, Selection{Services: []string{"Water Main"}})
	if got == nil {
		t.Fatalf("expected empty table, got nil")
	}
	if len(got) != 0 {
		t.Fatalf("expected no records, got %d", len(got))
	}
}
