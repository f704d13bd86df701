// Package analysis holds the filter engine and the aggregators: pure
// functions over an immutable record table. Nothing here fails for
// data-content reasons — empty selections are a normal, representable
// state the presentation layer renders as "no data".
package analysis

import (
	"github.com/sricharancheeti/Bloomington-Service-Request-Dashboard/internal/core"
)

// Selection is the filter configuration the presentation layer hands in.
type Selection struct {
	// Services keeps only records whose ServiceName is a member. An
	// empty set means no category filtering.
	Services []string

	// Range keeps only records whose requested date component lies in
	// the interval, both ends inclusive. The caller guarantees
	// Start <= End; the filter does not auto-correct.
	Range *core.DateRange
}

// Filter applies the selection to a table, returning a fresh table and
// leaving the input untouched. Zero matches yield an empty table, never
// an error.
func Filter(t core.Table, sel Selection) core.Table {
	var serviceSet map[string]struct{}
	if len(sel.Services) > 0 {
		serviceSet = make(map[string]struct{}, len(sel.Services))
		for _, s := range sel.Services {
			serviceSet[s] = struct{}{}
		}
	}

	out := make(core.Table, 0, len(t))
	for _, rec := range t {
		if serviceSet != nil {
			if _, ok := serviceSet[rec.ServiceName]; !ok {
				continue
			}
		}
		if sel.Range != nil && !sel.Range.Contains(rec.RequestedDate()) {
			continue
		}
		out = append(out, rec)
	}
	return out
}
