// Package socrata loads service requests from the city's Socrata JSON
// endpoint. The fetch is a single synchronous GET with no retry or
// backoff; every field arrives string-typed and coordinates coerce
// leniently to a missing marker when non-numeric.
package socrata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sricharancheeti/Bloomington-Service-Request-Dashboard/internal/core"
)

const sourceKind = "socrata"

// DefaultEndpoint is the Bloomington 311 dataset.
const DefaultEndpoint = "https://bloomington.data.socrata.com/resource/aw6y-t4ix.json"

// Client fetches service requests from a Socrata resource URL.
type Client struct {
	endpoint string
	httpc    *http.Client
}

// New creates a Client for the given endpoint. A nil httpc falls back to
// http.DefaultClient; no request timeout is applied, matching the
// single-shot synchronous fetch model.
func New(endpoint string, httpc *http.Client) *Client {
	if httpc == nil {
		httpc = http.DefaultClient
	}
	return &Client{endpoint: endpoint, httpc: httpc}
}

// Key implements source.Source.
func (c *Client) Key() string {
	return sourceKind + ":" + c.endpoint
}

// rawRecord mirrors the string-typed JSON the endpoint returns.
type rawRecord struct {
	ID          string `json:"service_request_id"`
	ServiceName string `json:"service_name"`
	Description string `json:"description"`
	Status      string `json:"status_description"`
	Requested   string `json:"requested_datetime"`
	Updated     string `json:"updated_datetime"`
	Closed      string `json:"closed_date"`
	Lat         string `json:"lat"`
	Long        string `json:"long"`
}

// Fetch performs one GET and decodes the full result.
func (c *Client) Fetch(ctx context.Context) (core.Table, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, core.NewLoadError(sourceKind, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, core.NewLoadError(sourceKind, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, core.NewLoadError(sourceKind, fmt.Errorf("endpoint returned %s", resp.Status))
	}

	var raws []rawRecord
	if err := json.NewDecoder(resp.Body).Decode(&raws); err != nil {
		return nil, core.NewLoadError(sourceKind, fmt.Errorf("decode response: %w", err))
	}

	table := make(core.Table, 0, len(raws))
	for i, raw := range raws {
		requested, err := core.ParseTimestamp(raw.Requested)
		if err != nil {
			return nil, core.NewLoadError(sourceKind, fmt.Errorf("record %d: requested_datetime: %w", i, err))
		}
		closed := core.ParseOptionalTimestamp(raw.Closed)
		table = append(table, core.Record{
			ID:             raw.ID,
			ServiceName:    raw.ServiceName,
			Description:    raw.Description,
			Status:         raw.Status,
			Requested:      requested,
			Updated:        core.ParseOptionalTimestamp(raw.Updated),
			Closed:         closed,
			Lat:            core.ParseCoordinate(raw.Lat),
			Long:           core.ParseCoordinate(raw.Long),
			ResolutionDays: core.ResolutionBetween(requested, closed),
		})
	}
	return table, nil
}
