package core

import (
	"errors"
	"math"
	"strings"
	"time"
)

type (
	// Date is a day-granularity timestamp. The time component is always
	// midnight UTC so the standard Before/After/Equal comparisons operate
	// on the date component only.
	Date struct {
		time.Time
	}

	// DateRange is an inclusive day interval.
	DateRange struct {
		Start Date
		End   Date
	}

	// NullFloat is a float64 with an explicit missing state. Coordinates
	// that fail numeric coercion degrade to an invalid NullFloat instead
	// of failing the record.
	NullFloat struct {
		Float64 float64
		Valid   bool
	}

	// NullInt is an int64 with an explicit missing state.
	NullInt struct {
		Int64 int64
		Valid bool
	}

	// NullTime is a timestamp with an explicit missing state.
	NullTime struct {
		Time  time.Time
		Valid bool
	}

	// Record is one municipal service request.
	Record struct {
		ID          string
		ServiceName string // grouping key, never empty after load
		Description string // free text, may be empty
		Status      string
		Requested   time.Time
		Updated     NullTime
		Closed      NullTime
		Lat         NullFloat
		Long        NullFloat

		// ResolutionDays is derived at load time: whole days between
		// Requested and Closed, invalid while the request is open.
		// Negative values propagate as-is.
		ResolutionDays NullInt
	}

	// Table is a sequence of records. A table handed out by the store is
	// never mutated; filtering always produces a fresh table.
	Table []Record
)

var (
	ErrEmptyServiceName = errors.New("empty service name")
	ErrZeroRequested    = errors.New("zero requested timestamp")
)

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a timestamp to its date component.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

func (d Date) Validate() error {
	if d.IsZero() {
		return errors.New("date cannot be zero")
	}
	return nil
}

// IsEmpty returns true if the date is zero (optional dates).
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

// Contains reports whether day lies in [r.Start, r.End], both ends inclusive.
func (r DateRange) Contains(day Date) bool {
	return !day.Before(r.Start.Time) && !day.After(r.End.Time)
}

func (r DateRange) Validate() error {
	if err := r.Start.Validate(); err != nil {
		return errors.New("invalid start date: " + err.Error())
	}
	if err := r.End.Validate(); err != nil {
		return errors.New("invalid end date: " + err.Error())
	}
	if r.End.Before(r.Start.Time) {
		return errors.New("end date must not precede start date")
	}
	return nil
}

// SomeFloat wraps a present float value.
func SomeFloat(v float64) NullFloat { return NullFloat{Float64: v, Valid: true} }

// SomeInt wraps a present int value.
func SomeInt(v int64) NullInt { return NullInt{Int64: v, Valid: true} }

// SomeTime wraps a present timestamp.
func SomeTime(t time.Time) NullTime { return NullTime{Time: t, Valid: true} }

// ResolutionBetween computes the whole-day duration between a request's
// creation and its closure, flooring toward negative infinity so that a
// close one second before the request still counts as -1 days. Invalid
// when the request has no close timestamp.
func ResolutionBetween(requested time.Time, closed NullTime) NullInt {
	if requested.IsZero() || !closed.Valid {
		return NullInt{}
	}
	days := math.Floor(closed.Time.Sub(requested).Hours() / 24)
	return SomeInt(int64(days))
}

func (rec Record) Validate() error {
	if strings.TrimSpace(rec.ServiceName) == "" {
		return ErrEmptyServiceName
	}
	if rec.Requested.IsZero() {
		return ErrZeroRequested
	}
	return nil
}

// RequestedDate returns the date component of the request timestamp.
func (rec Record) RequestedDate() Date {
	return DateOf(rec.Requested)
}

// MonthStart returns the first-of-month timestamp of the request, the
// bucket key for time-series aggregation.
func (rec Record) MonthStart() time.Time {
	return time.Date(rec.Requested.Year(), rec.Requested.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Services returns the distinct service names in first-seen order.
func (t Table) Services() []string {
	seen := make(map[string]struct{}, 16)
	var out []string
	for _, rec := range t {
		if _, ok := seen[rec.ServiceName]; ok {
			continue
		}
		seen[rec.ServiceName] = struct{}{}
		out = append(out, rec.ServiceName)
	}
	return out
}
