// Package core provides the service-request domain model and the text
// coercion utilities shared by every record source.
//
// This file contains functions for parsing timestamp and coordinate text
// into domain scalars. Coordinate coercion is lenient (missing marker on
// failure); the requested timestamp is the one strict field.
package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// timestampLayouts lists the formats seen across the bulk CSV export and
// the Socrata endpoint, tried in order.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// ParseTimestamp parses a required timestamp field. An empty or
// unparsable value is an error; the caller decides whether that aborts
// the whole load.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable timestamp %q", s)
}

// ParseOptionalTimestamp parses an optional timestamp field. Empty or
// unparsable values degrade to the missing marker.
func ParseOptionalTimestamp(s string) NullTime {
	t, err := ParseTimestamp(s)
	if err != nil {
		return NullTime{}
	}
	return SomeTime(t)
}

// ParseCoordinate coerces coordinate text to a numeric value. Anything
// non-numeric ("N/A", empty, garbage) degrades to the missing marker
// rather than failing the record.
func ParseCoordinate(s string) NullFloat {
	s = strings.TrimSpace(s)
	if s == "" {
		return NullFloat{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return NullFloat{}
	}
	return SomeFloat(v)
}

// ParseDay parses a YYYY-MM-DD day value.
func ParseDay(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}
