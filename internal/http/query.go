package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/sricharancheeti/Bloomington-Service-Request-Dashboard/internal/core"
)

const (
	defaultTermLimit = 50
	maxTermLimit     = 500
)

// dashboardQuery is the parsed filter state shared by every dashboard
// endpoint: an optional date window and an optional category selection.
type dashboardQuery struct {
	// Window is nil when neither bound was supplied, which lets the
	// store fall back to the current calendar year.
	Window *core.DateRange

	// Services is the selected categories; empty keeps everything.
	Services []string

	// GroupByService splits the time series per category.
	GroupByService bool

	// Heat switches the map payload from scatter to weighted points.
	Heat bool

	// Limit caps the number of terms returned by the term-frequency
	// endpoint.
	Limit int
}

// parseDashboardQuery reads the shared filter parameters. Both date
// bounds must be present together: a half-open window is ambiguous and
// rejected rather than guessed at.
func parseDashboardQuery(r *http.Request) (dashboardQuery, error) {
	q := dashboardQuery{Limit: defaultTermLimit}
	values := r.URL.Query()

	startRaw := strings.TrimSpace(values.Get("start"))
	endRaw := strings.TrimSpace(values.Get("end"))
	switch {
	case startRaw == "" && endRaw == "":
		// No window; the store defaults to the current year.
	case startRaw == "" || endRaw == "":
		return q, fmt.Errorf("start and end must be supplied together")
	default:
		start, err := core.ParseDay(startRaw)
		if err != nil {
			return q, fmt.Errorf("invalid start date %q: expected YYYY-MM-DD", startRaw)
		}
		end, err := core.ParseDay(endRaw)
		if err != nil {
			return q, fmt.Errorf("invalid end date %q: expected YYYY-MM-DD", endRaw)
		}
		window := core.DateRange{Start: start, End: end}
		if err := window.Validate(); err != nil {
			return q, err
		}
		q.Window = &window
	}

	for _, svc := range values["service"] {
		if svc = strings.TrimSpace(svc); svc != "" {
			q.Services = append(q.Services, svc)
		}
	}

	q.GroupByService = parseFlag(values.Get("group"))
	q.Heat = parseFlag(values.Get("heat"))

	if raw := strings.TrimSpace(values.Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return q, fmt.Errorf("invalid limit %q: must be a positive integer", raw)
		}
		if n > maxTermLimit {
			n = maxTermLimit
		}
		q.Limit = n
	}

	return q, nil
}

func parseFlag(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes":
		return true
	}
	return false
}
