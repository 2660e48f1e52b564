// Package nominatim geocodes place names through the Nominatim search API.
package nominatim

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/paulmach/orb/geojson"

	"github.com/data-tales/tree-locator/internal/core/domain"
	"github.com/data-tales/tree-locator/internal/pkg/metrics"
)

// Client implements ports.Geocoder against a Nominatim endpoint.
type Client struct {
	endpoint  string
	userAgent string
	http      *http.Client
}

// New creates a geocoding client. The user agent must be descriptive; the
// OSM usage policy rejects generic ones.
func New(endpoint, userAgent string, timeout time.Duration) *Client {
	return &Client{
		endpoint:  strings.TrimRight(endpoint, "/"),
		userAgent: userAgent,
		http:      &http.Client{Timeout: timeout},
	}
}

// searchHit is one element of the jsonv2 search response. Nominatim encodes
// coordinates as strings.
type searchHit struct {
	Lat         string            `json:"lat"`
	Lon         string            `json:"lon"`
	OSMType     string            `json:"osm_type"`
	OSMID       int64             `json:"osm_id"`
	DisplayName string            `json:"display_name"`
	GeoJSON     *geojson.Geometry `json:"geojson"`
}

// Geocode resolves a place name to its best match, including the polygon
// boundary when the hit has one.
func (c *Client) Geocode(ctx context.Context, query string) (*domain.Place, error) {
	params := url.Values{
		"q":               {query},
		"format":          {"jsonv2"},
		"limit":           {"1"},
		"polygon_geojson": {"1"},
		"addressdetails":  {"0"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.endpoint+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build geocode request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		metrics.UpstreamErrors.WithLabelValues("nominatim").Inc()
		return nil, domain.Upstream("geocoding is currently unreachable", "please retry later")
	}
	defer resp.Body.Close()
	metrics.ObserveUpstream("nominatim", resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, domain.RateLimited("geocoding rate limit reached", "wait a moment and retry")
	case resp.StatusCode >= 500:
		return nil, domain.Upstream("geocoding server error", "please retry later")
	case resp.StatusCode != http.StatusOK:
		return nil, domain.Upstream("geocoding failed", fmt.Sprintf("HTTP %d", resp.StatusCode))
	}

	var hits []searchHit
	if err := json.NewDecoder(resp.Body).Decode(&hits); err != nil {
		return nil, domain.Upstream("geocoding response could not be parsed", "please retry later")
	}
	if len(hits) == 0 {
		return nil, domain.NotFound("place not found", "be more specific, e.g. city, region, country")
	}

	hit := hits[0]
	lat, latErr := strconv.ParseFloat(hit.Lat, 64)
	lon, lonErr := strconv.ParseFloat(hit.Lon, 64)
	if latErr != nil || lonErr != nil {
		return nil, domain.Upstream("geocoding response could not be parsed", "please retry later")
	}

	displayName := hit.DisplayName
	if displayName == "" {
		displayName = query
	}

	return &domain.Place{
		Query:       query,
		DisplayName: displayName,
		Lat:         lat,
		Lon:         lon,
		OSMType:     hit.OSMType,
		OSMID:       hit.OSMID,
		Boundary:    hit.GeoJSON,
	}, nil
}
