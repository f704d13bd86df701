package analysis

import (
	"testing"

	"github.com/sricharancheeti/Bloomington-Service-Request-Dashboard/internal/core"
)

func TestSummarize(t *testing.T) {
	tbl := core.Table{
		closedReq("Potholes", 2023, 1, 15, 5),
		closedReq("Graffiti", 2023, 2, 1, 3),
		req("Potholes", 2023, 3, 1),
	}
	s := Summarize(tbl)
	if s.TotalRequests != 3 {
		t.Fatalf("total = %d, want 3", s.TotalRequests)
	}
	if s.Services != 2 {
		t.Fatalf("services = %d, want 2", s.Services)
	}
	if !s.MeanResolution.Valid || s.MeanResolution.Float64 != 4.0 {
		t.Fatalf("mean = %+v, want 4.0", s.MeanResolution)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.TotalRequests != 0 || s.Services != 0 {
		t.Fatalf("unexpected summary for empty table: %+v", s)
	}
	if s.MeanResolution.Valid {
		t.Fatalf("mean must be undefined, not zero, on empty table")
	}
}
