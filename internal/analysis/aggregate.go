package analysis

import (
	"sort"
	"time"

	"github.com/sricharancheeti/Bloomington-Service-Request-Dashboard/internal/core"
)

// MonthCount is one bucket of the request time series. Service is empty
// when the series is not grouped by category.
type MonthCount struct {
	Month   time.Time
	Service string
	Count   int
}

// MonthResolution is the mean resolution time for one calendar month,
// collapsed across years. Valid is false for months with no closed
// requests.
type MonthResolution struct {
	Month    time.Month
	MeanDays float64
	Valid    bool
}

// CategoryCount is the request count for one service category.
type CategoryCount struct {
	Service string
	Count   int
}

// MonthlySeries buckets records by the first-of-month of their request
// timestamp. With byService the buckets are further split by category
// (chosen upstream when more than one category is selected). Output is
// chronological by month; within a month, categories appear in
// first-seen input order.
func MonthlySeries(t core.Table, byService bool) []MonthCount {
	type bucket struct {
		month   time.Time
		service string
	}

	counts := make(map[bucket]int)
	months := make(map[time.Time]struct{})
	var serviceOrder []string
	seenService := make(map[string]struct{})

	for _, rec := range t {
		b := bucket{month: rec.MonthStart()}
		if byService {
			b.service = rec.ServiceName
			if _, ok := seenService[rec.ServiceName]; !ok {
				seenService[rec.ServiceName] = struct{}{}
				serviceOrder = append(serviceOrder, rec.ServiceName)
			}
		}
		counts[b]++
		months[b.month] = struct{}{}
	}

	ordered := make([]time.Time, 0, len(months))
	for m := range months {
		ordered = append(ordered, m)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Before(ordered[j]) })

	if !byService {
		serviceOrder = []string{""}
	}

	out := make([]MonthCount, 0, len(counts))
	for _, m := range ordered {
		for _, svc := range serviceOrder {
			if n, ok := counts[bucket{month: m, service: svc}]; ok {
				out = append(out, MonthCount{Month: m, Service: svc, Count: n})
			}
		}
	}
	return out
}

// MonthlyAvgResolution returns exactly twelve entries, January through
// December, each the mean of the valid resolution days of the records
// requested in that calendar month regardless of year. Months with no
// closed requests carry Valid=false, never a numeric zero.
func MonthlyAvgResolution(t core.Table) []MonthResolution {
	var sums [13]float64
	var counts [13]int

	for _, rec := range t {
		if !rec.ResolutionDays.Valid {
			continue
		}
		m := rec.Requested.Month()
		sums[m] += float64(rec.ResolutionDays.Int64)
		counts[m]++
	}

	out := make([]MonthResolution, 0, 12)
	for m := time.January; m <= time.December; m++ {
		entry := MonthResolution{Month: m}
		if counts[m] > 0 {
			entry.MeanDays = sums[m] / float64(counts[m])
			entry.Valid = true
		}
		out = append(out, entry)
	}
	return out
}

// CategoryCounts counts records per service category, sorted by count
// descending with ties broken by first-seen input order.
func CategoryCounts(t core.Table) []CategoryCount {
	counts := make(map[string]int)
	var order []string

	for _, rec := range t {
		if _, ok := counts[rec.ServiceName]; !ok {
			order = append(order, rec.ServiceName)
		}
		counts[rec.ServiceName]++
	}

	out := make([]CategoryCount, 0, len(order))
	for _, svc := range order {
		out = append(out, CategoryCount{Service: svc, Count: counts[svc]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// MeanResolution is the mean of the valid resolution days over the whole
// table. The second return is false when no record has both endpoint
// timestamps; callers render that as "no data", not zero.
func MeanResolution(t core.Table) (float64, bool) {
	var sum float64
	var n int
	for _, rec := range t {
		if rec.ResolutionDays.Valid {
			sum += float64(rec.ResolutionDays.Int64)
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// CategoryCardinality counts distinct service categories in the table.
func CategoryCardinality(t core.Table) int {
	return len(t.Services())
}
