package analysis

import (
	"time"

	"github.com/sricharancheeti/Bloomington-Service-Request-Dashboard/internal/core"
)

// MapPoint is one plottable request. Weight carries the resolution days
// for heat rendering; open requests weigh zero.
type MapPoint struct {
	Service     string
	Description string
	Status      string
	Requested   time.Time
	Closed      core.NullTime
	Lat         float64
	Long        float64
	Weight      float64
}

// Viewport is the initial map center: the mean of the plotted
// coordinates. Valid is false when nothing is plottable.
type Viewport struct {
	Lat   float64
	Long  float64
	Valid bool
}

// MapView is the full payload for the map layer.
type MapView struct {
	Points []MapPoint
	Center Viewport
}

// BuildMapView keeps the records with both coordinates present and
// centers the viewport on their mean position. Records with missing
// coordinates are simply not plottable; they still count everywhere
// else.
func BuildMapView(t core.Table) MapView {
	view := MapView{Points: make([]MapPoint, 0, len(t))}
	var latSum, longSum float64

	for _, rec := range t {
		if !rec.Lat.Valid || !rec.Long.Valid {
			continue
		}
		p := MapPoint{
			Service:     rec.ServiceName,
			Description: rec.Description,
			Status:      rec.Status,
			Requested:   rec.Requested,
			Closed:      rec.Closed,
			Lat:         rec.Lat.Float64,
			Long:        rec.Long.Float64,
		}
		if rec.ResolutionDays.Valid {
			p.Weight = float64(rec.ResolutionDays.Int64)
		}
		view.Points = append(view.Points, p)
		latSum += p.Lat
		longSum += p.Long
	}

	if n := len(view.Points); n > 0 {
		view.Center = Viewport{
			Lat:   latSum / float64(n),
			Long:  longSum / float64(n),
			Valid: true,
		}
	}
	return view
}
