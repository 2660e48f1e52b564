package nominatim_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/data-tales/tree-locator/internal/adapters/nominatim"
	"github.com/data-tales/tree-locator/internal/core/domain"
)

const darmstadtHit = `[{
	"lat": "49.8720939",
	"lon": "8.6512482",
	"osm_type": "relation",
	"osm_id": 62581,
	"display_name": "Darmstadt, Hessen, Deutschland",
	"geojson": {"type": "Polygon", "coordinates": [[[8.5,49.8],[8.8,49.8],[8.8,49.95],[8.5,49.95],[8.5,49.8]]]}
}]`

func TestGeocode_Success(t *testing.T) {
	var gotQuery, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		gotQuery = q.Get("q")
		gotUA = r.Header.Get("User-Agent")
		if q.Get("format") != "jsonv2" {
			t.Errorf("expected format jsonv2, got %s", q.Get("format"))
		}
		if q.Get("limit") != "1" {
			t.Errorf("expected limit 1, got %s", q.Get("limit"))
		}
		if q.Get("polygon_geojson") != "1" {
			t.Errorf("expected polygon_geojson 1, got %s", q.Get("polygon_geojson"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(darmstadtHit))
	}))
	defer srv.Close()

	c := nominatim.New(srv.URL, "test-agent/1.0", 5*time.Second)
	place, err := c.Geocode(context.Background(), "Darmstadt")
	if err != nil {
		t.Fatal(err)
	}

	if gotQuery != "Darmstadt" {
		t.Errorf("expected q=Darmstadt, got %q", gotQuery)
	}
	if gotUA != "test-agent/1.0" {
		t.Errorf("expected custom user agent, got %q", gotUA)
	}
	if place.Lat != 49.8720939 || place.Lon != 8.6512482 {
		t.Errorf("unexpected coordinates: %f, %f", place.Lat, place.Lon)
	}
	if place.OSMType != "relation" || place.OSMID != 62581 {
		t.Errorf("unexpected OSM ref: %s/%d", place.OSMType, place.OSMID)
	}
	if place.Boundary == nil {
		t.Error("expected boundary geometry")
	}
	if place.DisplayName != "Darmstadt, Hessen, Deutschland" {
		t.Errorf("unexpected display name %q", place.DisplayName)
	}
}

func TestGeocode_NoHits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := nominatim.New(srv.URL, "test-agent/1.0", 5*time.Second)
	_, err := c.Geocode(context.Background(), "xyzzy nowhere")
	ue, ok := domain.AsUserError(err)
	if !ok {
		t.Fatalf("expected user error, got %v", err)
	}
	if ue.Kind != domain.KindNotFound {
		t.Errorf("expected not-found kind, got %v", ue.Kind)
	}
}

func TestGeocode_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(429)
	}))
	defer srv.Close()

	c := nominatim.New(srv.URL, "test-agent/1.0", 5*time.Second)
	_, err := c.Geocode(context.Background(), "Darmstadt")
	ue, ok := domain.AsUserError(err)
	if !ok {
		t.Fatalf("expected user error, got %v", err)
	}
	if ue.Kind != domain.KindRateLimited {
		t.Errorf("expected rate-limited kind, got %v", ue.Kind)
	}
}

func TestGeocode_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
	}))
	defer srv.Close()

	c := nominatim.New(srv.URL, "test-agent/1.0", 5*time.Second)
	_, err := c.Geocode(context.Background(), "Darmstadt")
	ue, ok := domain.AsUserError(err)
	if !ok {
		t.Fatalf("expected user error, got %v", err)
	}
	if ue.Kind != domain.KindUpstream {
		t.Errorf("expected upstream kind, got %v", ue.Kind)
	}
}

func TestGeocode_Unreachable(t *testing.T) {
	// Endpoint is closed immediately so the request fails at transport level
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := nominatim.New(srv.URL, "test-agent/1.0", time.Second)
	_, err := c.Geocode(context.Background(), "Darmstadt")
	ue, ok := domain.AsUserError(err)
	if !ok {
		t.Fatalf("expected user error, got %v", err)
	}
	if ue.Kind != domain.KindUpstream {
		t.Errorf("expected upstream kind, got %v", ue.Kind)
	}
}

func TestGeocode_BadCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"lat": "not-a-number", "lon": "8.65", "osm_type": "node", "osm_id": 1}]`))
	}))
	defer srv.Close()

	c := nominatim.New(srv.URL, "test-agent/1.0", 5*time.Second)
	_, err := c.Geocode(context.Background(), "Darmstadt")
	if err == nil {
		t.Fatal("expected error for unparsable coordinates")
	}
}

func TestGeocode_EmptyDisplayNameFallsBackToQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"lat": "49.87", "lon": "8.65", "osm_type": "node", "osm_id": 1}]`))
	}))
	defer srv.Close()

	c := nominatim.New(srv.URL, "test-agent/1.0", 5*time.Second)
	place, err := c.Geocode(context.Background(), "Darmstadt")
	if err != nil {
		t.Fatal(err)
	}
	if place.DisplayName != "Darmstadt" {
		t.Errorf("expected query fallback, got %q", place.DisplayName)
	}
}
