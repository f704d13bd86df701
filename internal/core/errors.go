package core

import "fmt"

// LoadError marks a failed dataset load: source unreachable, malformed
// schema, or an unparsable requested timestamp. A load either yields a
// complete table or fails with a LoadError; there are no partial results.
type LoadError struct {
	Source string // "csv", "socrata", "sqlite"
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s source: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// NewLoadError wraps err as a fatal load failure for the given source kind.
func NewLoadError(source string, err error) *LoadError {
	return &LoadError{Source: source, Err: err}
}
