// Package overpass queries the Overpass API for tagged tree nodes.
package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/data-tales/tree-locator/internal/core/domain"
	"github.com/data-tales/tree-locator/internal/pkg/metrics"
)

// Client implements ports.TreeQuerier against an Overpass interpreter.
type Client struct {
	endpoint  string
	userAgent string
	http      *http.Client
}

// New creates an Overpass client.
func New(endpoint, userAgent string, timeout time.Duration) *Client {
	return &Client{
		endpoint:  endpoint,
		userAgent: userAgent,
		http:      &http.Client{Timeout: timeout},
	}
}

type element struct {
	Type string            `json:"type"`
	ID   int64             `json:"id"`
	Lat  *float64          `json:"lat"`
	Lon  *float64          `json:"lon"`
	Tags map[string]string `json:"tags"`
}

type response struct {
	Elements []element `json:"elements"`
}

// CountByArea counts tree nodes inside an Overpass area.
func (c *Client) CountByArea(ctx context.Context, areaID int64) (int64, error) {
	ql := fmt.Sprintf("[out:json][timeout:25];\narea(%d)->.a;\nnode[\"natural\"=\"tree\"](area.a);\nout count;", areaID)
	data, err := c.post(ctx, ql)
	if err != nil {
		return 0, err
	}
	return parseCount(data), nil
}

// CountByRadius counts tree nodes within radiusM meters of a point.
func (c *Client) CountByRadius(ctx context.Context, lat, lon float64, radiusM int) (int64, error) {
	ql := fmt.Sprintf("[out:json][timeout:25];\nnode(around:%d,%f,%f)[\"natural\"=\"tree\"];\nout count;", radiusM, lat, lon)
	data, err := c.post(ctx, ql)
	if err != nil {
		return 0, err
	}
	return parseCount(data), nil
}

// SampleByArea returns up to limit tree nodes inside an Overpass area.
func (c *Client) SampleByArea(ctx context.Context, areaID int64, limit int) ([]domain.TreePoint, error) {
	ql := fmt.Sprintf("[out:json][timeout:25];\narea(%d)->.a;\nnode[\"natural\"=\"tree\"](area.a);\nout body %d;", areaID, limit)
	data, err := c.post(ctx, ql)
	if err != nil {
		return nil, err
	}
	return parseSample(data), nil
}

// SampleByRadius returns up to limit tree nodes within radiusM meters of a point.
func (c *Client) SampleByRadius(ctx context.Context, lat, lon float64, radiusM int, limit int) ([]domain.TreePoint, error) {
	ql := fmt.Sprintf("[out:json][timeout:25];\nnode(around:%d,%f,%f)[\"natural\"=\"tree\"];\nout body %d;", radiusM, lat, lon, limit)
	data, err := c.post(ctx, ql)
	if err != nil {
		return nil, err
	}
	return parseSample(data), nil
}

func (c *Client) post(ctx context.Context, ql string) (*response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(ql))
	if err != nil {
		return nil, fmt.Errorf("build overpass request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.UpstreamErrors.WithLabelValues("overpass").Inc()
		return nil, domain.Upstream("Overpass API is currently unreachable", "please retry later")
	}
	defer resp.Body.Close()
	metrics.ObserveUpstream("overpass", resp.StatusCode, time.Since(start))

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusTooManyRequests:
		return nil, domain.RateLimited("Overpass API is overloaded (rate limit)", "wait 30-60 seconds and retry")
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return nil, domain.Upstream("Overpass API is currently overloaded", "please retry later")
	default:
		return nil, domain.Upstream("Overpass request failed", fmt.Sprintf("HTTP %d", resp.StatusCode))
	}

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, domain.Upstream("Overpass response is invalid", "please retry later")
	}
	return &out, nil
}

// parseCount reads the total from an `out count` response. A count query
// yields a single synthetic element carrying stringified totals in its tags.
func parseCount(data *response) int64 {
	if len(data.Elements) == 0 {
		return 0
	}
	total, err := strconv.ParseInt(data.Elements[0].Tags["total"], 10, 64)
	if err != nil {
		return 0
	}
	return total
}

// parseSample keeps node elements that carry both coordinates.
func parseSample(data *response) []domain.TreePoint {
	var out []domain.TreePoint
	for _, el := range data.Elements {
		if el.Type != "node" || el.Lat == nil || el.Lon == nil {
			continue
		}
		out = append(out, domain.TreePoint{ID: el.ID, Lat: *el.Lat, Lon: *el.Lon})
	}
	return out
}
