package http

import (
	"net/http"
	"time"

	"github.com/sricharancheeti/Bloomington-Service-Request-Dashboard/internal/analysis"
	"github.com/sricharancheeti/Bloomington-Service-Request-Dashboard/internal/core"
	applog "github.com/sricharancheeti/Bloomington-Service-Request-Dashboard/internal/log"
)

// load runs the shared front half of every dashboard handler: parse the
// filter parameters, load the windowed table, apply the category
// selection. The bool result reports whether the response was already
// written.
func (s *Server) load(w http.ResponseWriter, r *http.Request) (core.Table, dashboardQuery, bool) {
	q, err := parseDashboardQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, q, false
	}

	table, err := s.store.Load(r.Context(), q.Window)
	if err != nil {
		s.writeLoadError(w, r, err)
		return nil, q, false
	}

	if len(q.Services) > 0 {
		table = analysis.Filter(table, analysis.Selection{Services: q.Services})
	}
	return table, q, true
}

type summaryResponse struct {
	TotalRequests      int      `json:"total_requests"`
	MeanResolutionDays *float64 `json:"mean_resolution_days"`
	Services           int      `json:"services"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	table, _, ok := s.load(w, r)
	if !ok {
		return
	}

	sum := analysis.Summarize(table)
	resp := summaryResponse{
		TotalRequests: sum.TotalRequests,
		Services:      sum.Services,
	}
	if sum.MeanResolution.Valid {
		resp.MeanResolutionDays = &sum.MeanResolution.Float64
	}
	writeJSON(w, http.StatusOK, resp)
}

type seriesPoint struct {
	Month   string `json:"month"`
	Service string `json:"service,omitempty"`
	Count   int    `json:"count"`
}

type seriesResponse struct {
	Grouped bool          `json:"grouped"`
	Points  []seriesPoint `json:"points"`
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	table, q, ok := s.load(w, r)
	if !ok {
		return
	}

	series := analysis.MonthlySeries(table, q.GroupByService)
	resp := seriesResponse{Grouped: q.GroupByService, Points: make([]seriesPoint, 0, len(series))}
	for _, mc := range series {
		resp.Points = append(resp.Points, seriesPoint{
			Month:   mc.Month.Format("2006-01"),
			Service: mc.Service,
			Count:   mc.Count,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

type monthResolutionEntry struct {
	Month    string   `json:"month"`
	MeanDays *float64 `json:"mean_days"`
}

func (s *Server) handleResolutionByMonth(w http.ResponseWriter, r *http.Request) {
	table, _, ok := s.load(w, r)
	if !ok {
		return
	}

	byMonth := analysis.MonthlyAvgResolution(table)
	resp := make([]monthResolutionEntry, 0, len(byMonth))
	for _, mr := range byMonth {
		entry := monthResolutionEntry{Month: mr.Month.String()[:3]}
		if mr.Valid {
			mean := mr.MeanDays
			entry.MeanDays = &mean
		}
		resp = append(resp, entry)
	}
	writeJSON(w, http.StatusOK, resp)
}

type categoryEntry struct {
	Service string `json:"service"`
	Count   int    `json:"count"`
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	table, _, ok := s.load(w, r)
	if !ok {
		return
	}

	counts := analysis.CategoryCounts(table)
	resp := make([]categoryEntry, 0, len(counts))
	for _, cc := range counts {
		resp = append(resp, categoryEntry{Service: cc.Service, Count: cc.Count})
	}
	writeJSON(w, http.StatusOK, resp)
}

type mapPointEntry struct {
	Service     string     `json:"service"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status,omitempty"`
	Requested   time.Time  `json:"requested"`
	Closed      *time.Time `json:"closed,omitempty"`
	Lat         float64    `json:"lat"`
	Long        float64    `json:"long"`
	Weight      *float64   `json:"weight,omitempty"`
}

type mapCenterEntry struct {
	Lat  float64 `json:"lat"`
	Long float64 `json:"long"`
}

type mapResponse struct {
	Center *mapCenterEntry `json:"center"`
	Points []mapPointEntry `json:"points"`
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	table, q, ok := s.load(w, r)
	if !ok {
		return
	}

	view := analysis.BuildMapView(table)
	resp := mapResponse{Points: make([]mapPointEntry, 0, len(view.Points))}
	if view.Center.Valid {
		resp.Center = &mapCenterEntry{Lat: view.Center.Lat, Long: view.Center.Long}
	}
	for _, p := range view.Points {
		entry := mapPointEntry{
			Service:     p.Service,
			Description: p.Description,
			Status:      p.Status,
			Requested:   p.Requested,
			Lat:         p.Lat,
			Long:        p.Long,
		}
		if p.Closed.Valid {
			closed := p.Closed.Time
			entry.Closed = &closed
		}
		if q.Heat {
			weight := p.Weight
			entry.Weight = &weight
		}
		resp.Points = append(resp.Points, entry)
	}
	writeJSON(w, http.StatusOK, resp)
}

type termEntry struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

func (s *Server) handleTerms(w http.ResponseWriter, r *http.Request) {
	table, q, ok := s.load(w, r)
	if !ok {
		return
	}

	terms := analysis.TermFrequencies(table, q.Limit)
	resp := make([]termEntry, 0, len(terms))
	for _, tc := range terms {
		resp = append(resp, termEntry{Term: tc.Term, Count: tc.Count})
	}
	writeJSON(w, http.StatusOK, resp)
}

type servicesResponse struct {
	Services []string `json:"services"`
}

// handleServices lists the distinct categories in the loaded window so
// the frontend can populate its filter control. The category filter is
// deliberately not applied here.
func (s *Server) handleServices(w http.ResponseWriter, r *http.Request) {
	q, err := parseDashboardQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	table, err := s.store.Load(r.Context(), q.Window)
	if err != nil {
		s.writeLoadError(w, r, err)
		return
	}

	services := table.Services()
	if services == nil {
		services = []string{}
	}
	writeJSON(w, http.StatusOK, servicesResponse{Services: services})
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		writeError(w, http.StatusInternalServerError, "templates not loaded")
		return
	}

	data := struct {
		Year int
	}{Year: time.Now().Year()}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "dashboard.html", data); err != nil {
		s.logger.ErrorContext(r.Context(), "Dashboard template execution failed",
			applog.FieldError, err,
			applog.FieldOperation, applog.OpRender,
			"template", "dashboard.html")
	}
}
