package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sricharancheeti/Bloomington-Service-Request-Dashboard/internal/core"
	applog "github.com/sricharancheeti/Bloomington-Service-Request-Dashboard/internal/log"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// writeLoadError maps a dataset load failure onto a status code: the
// remote source failing is an upstream problem (502), anything else is
// ours (500). The raw error stays in the logs, not the response.
func (s *Server) writeLoadError(w http.ResponseWriter, r *http.Request, err error) {
	fields := applog.NewFields()
	fields[applog.FieldSource] = s.store.SourceKey()
	fields[applog.FieldPath] = r.URL.Path
	s.reqLog.LogError(r.Context(), "Dataset load failed", err,
		applog.ComponentStore, applog.OpLoad, fields)

	var loadErr *core.LoadError
	if errors.As(err, &loadErr) && loadErr.Source == "socrata" {
		writeError(w, http.StatusBadGateway, "upstream data source unavailable")
		return
	}
	writeError(w, http.StatusInternalServerError, "failed to load dataset")
}
