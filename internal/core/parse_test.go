package core

import (
	"testing"
	"time"
)

func TestParseTimestamp(t *testing.T) {
	cases := []struct {
		in   string
		want time.Time
		ok   bool
	}{
		{"2023-01-15 10:30:00", time.Date(2023, 1, 15, 10, 30, 0, 0, time.UTC), true},
		{"2023-01-15T10:30:00.000", time.Date(2023, 1, 15, 10, 30, 0, 0, time.UTC), true},
		{"2023-01-15T10:30:00", time.Date(2023, 1, 15, 10, 30, 0, 0, time.UTC), true},
		{"2023-01-15", time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC), true},
		{" 2023-01-15 10:30:00 ", time.Date(2023, 1, 15, 10, 30, 0, 0, time.UTC), true},
		{"", time.Time{}, false},
		{"not-a-date", time.Time{}, false},
		{"15/01/2023", time.Time{}, false},
	}
	for _, tc := range cases {
		got, err := ParseTimestamp(tc.in)
		if tc.ok {
			if err != nil {
				t.Fatalf("%q: unexpected error %v", tc.in, err)
			}
			if !got.Equal(tc.want) {
				t.Fatalf("%q: got %v, want %v", tc.in, got, tc.want)
			}
		} else if err == nil {
			t.Fatalf("%q: expected error", tc.in)
		}
	}
}

func TestParseOptionalTimestamp(t *testing.T) {
	if got := ParseOptionalTimestamp(""); got.Valid {
		t.Fatalf("empty value should be missing")
	}
	if got := ParseOptionalTimestamp("garbage"); got.Valid {
		t.Fatalf("unparsable value should degrade to missing, got %v", got.Time)
	}
	got := ParseOptionalTimestamp("2023-01-20 08:00:00")
	if !got.Valid || !got.Time.Equal(time.Date(2023, 1, 20, 8, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected valid timestamp, got %+v", got)
	}
}

func TestParseCoordinate(t *testing.T) {
	cases := []struct {
		in    string
		want  float64
		valid bool
	}{
		{"39.1", 39.1, true},
		{"-86.5264", -86.5264, true},
		{" 39.1 ", 39.1, true},
		{"N/A", 0, false},
		{"", 0, false},
		{"null", 0, false},
	}
	for _, tc := range cases {
		got := ParseCoordinate(tc.in)
		if got.Valid != tc.valid {
			t.Fatalf("%q: valid = %v, want %v", tc.in, got.Valid, tc.valid)
		}
		if got.Valid && got.Float64 != tc.want {
			t.Fatalf("%q: got %v, want %v", tc.in, got.Float64, tc.want)
		}
	}
}

func TestParseDay(t *testing.T) {
	d, err := ParseDay("2023-03-05")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !d.Equal(NewDate(2023, 3, 5).Time) {
		t.Fatalf("got %v, want 2023-03-05", d)
	}
	if _, err := ParseDay("03/05/2023"); err == nil {
		t.Fatalf("expected error for non-ISO day")
	}
}
