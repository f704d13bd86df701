package core

import (
	"testing"
	"time"
)

func TestDateValidate(t *testing.T) {
	cases := []struct {
		d  Date
		ok bool
	}{
		{NewDate(2023, 1, 1), true},
		{NewDate(2023, 12, 31), true},
		{Date{Time: time.Time{}}, false}, // zero time
	}
	for i, tc := range cases {
		err := tc.d.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestDateOfDropsTimeComponent(t *testing.T) {
	ts := time.Date(2023, 6, 15, 23, 59, 59, 0, time.UTC)
	if got := DateOf(ts); !got.Equal(NewDate(2023, 6, 15).Time) {
		t.Fatalf("expected 2023-06-15, got %v", got)
	}
}

func TestDateRangeContains(t *testing.T) {
	r := DateRange{Start: NewDate(2023, 1, 10), End: NewDate(2023, 1, 20)}
	cases := []struct {
		day  Date
		want bool
	}{
		{NewDate(2023, 1, 10), true}, // inclusive start
		{NewDate(2023, 1, 20), true}, // inclusive end
		{NewDate(2023, 1, 15), true},
		{NewDate(2023, 1, 9), false},
		{NewDate(2023, 1, 21), false},
	}
	for i, tc := range cases {
		if got := r.Contains(tc.day); got != tc.want {
			t.Fatalf("case %d: Contains(%v) = %v, want %v", i, tc.day, got, tc.want)
		}
	}
}

func TestDateRangeValidate(t *testing.T) {
	good := DateRange{Start: NewDate(2023, 1, 1), End: NewDate(2023, 12, 31)}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	inverted := DateRange{Start: NewDate(2023, 2, 1), End: NewDate(2023, 1, 1)}
	if err := inverted.Validate(); err == nil {
		t.Fatalf("expected error for inverted range")
	}
}

func TestResolutionBetween(t *testing.T) {
	requested := time.Date(2023, 1, 15, 10, 0, 0, 0, time.UTC)
	cases := []struct {
		name   string
		closed NullTime
		want   int64
		valid  bool
	}{
		{"closed five days later", SomeTime(requested.AddDate(0, 0, 5)), 5, true},
		{"still open", NullTime{}, 0, false},
		{"same instant", SomeTime(requested), 0, true},
		{"closed before requested", SomeTime(requested.Add(-time.Second)), -1, true},
		{"partial day floors", SomeTime(requested.Add(36 * time.Hour)), 1, true},
	}
	for _, tc := range cases {
		got := ResolutionBetween(requested, tc.closed)
		if got.Valid != tc.valid {
			t.Fatalf("%s: valid = %v, want %v", tc.name, got.Valid, tc.valid)
		}
		if got.Valid && got.Int64 != tc.want {
			t.Fatalf("%s: days = %d, want %d", tc.name, got.Int64, tc.want)
		}
	}
}

func TestRecordValidate(t *testing.T) {
	good := Record{ServiceName: "Potholes", Requested: time.Now()}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Record{
		{ServiceName: "", Requested: time.Now()},
		{ServiceName: "  ", Requested: time.Now()},
		{ServiceName: "Potholes"}, // zero requested
	}
	for i, rec := range bads {
		if err := rec.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestTableServices(t *testing.T) {
	tbl := Table{
		{ServiceName: "Potholes"},
		{ServiceName: "Graffiti"},
		{ServiceName: "Potholes"},
		{ServiceName: "Trash"},
	}
	got := tbl.Services()
	want := []string{"Potholes", "Graffiti", "Trash"}
	if len(got) != len(want) {
		t.Fatalf("expected %d services, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("services[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if got := Table(nil).Services(); len(got) != 0 {
		t.Fatalf("empty table should have no services, got %v", got)
	}
}
