package analysis

import (
	"github.com/sricharancheeti/Bloomington-Service-Request-Dashboard/internal/core"
)

// Summary bundles the headline dashboard metrics.
type Summary struct {
	TotalRequests  int
	MeanResolution core.NullFloat // undefined when no request is closed
	Services       int
}

// Summarize computes the summary statistics for a filtered table.
func Summarize(t core.Table) Summary {
	s := Summary{
		TotalRequests: len(t),
		Services:      CategoryCardinality(t),
	}
	if mean, ok := MeanResolution(t); ok {
		s.MeanResolution = core.SomeFloat(mean)
	}
	return s
}
