package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/data-tales/tree-locator/internal/core/domain"
)

func boundaryResult() *domain.SearchResult {
	return &domain.SearchResult{
		OK: true,
		Query: domain.QueryEcho{
			Q:         "Darmstadt",
			Lat:       49.872,
			Lon:       8.651,
			QueryMode: domain.QueryModeBoundary,
			Mode:      domain.ModeSample,
		},
		TreeCount: 2,
		Sample: []domain.TreePoint{
			{ID: 10, Lat: 49.87, Lon: 8.65},
			{ID: 11, Lat: 49.88, Lon: 8.66},
		},
		Boundary: geojson.NewGeometry(orb.Polygon{
			{{8.5, 49.8}, {8.8, 49.8}, {8.8, 49.95}, {8.5, 49.95}, {8.5, 49.8}},
		}),
		Attribution: domain.OSMAttribution,
	}
}

func TestFeatureCollection_BoundaryAndSample(t *testing.T) {
	fc := domain.FeatureCollection(boundaryResult())

	if len(fc.Features) != 3 {
		t.Fatalf("expected boundary + 2 tree features, got %d", len(fc.Features))
	}
	if kind := fc.Features[0].Properties["kind"]; kind != "boundary" {
		t.Errorf("first feature should be the boundary, got %v", kind)
	}
	for _, f := range fc.Features[1:] {
		if f.Properties["kind"] != "tree" {
			t.Errorf("expected tree feature, got %v", f.Properties["kind"])
		}
		if _, ok := f.Geometry.(orb.Point); !ok {
			t.Errorf("tree feature geometry should be a point, got %T", f.Geometry)
		}
	}

	// BBox follows the boundary extent, not the sample extent
	if fc.BBox == nil {
		t.Fatal("expected a bbox")
	}
	bound := fc.BBox.Bound()
	if bound.Min[0] != 8.5 || bound.Max[1] != 49.95 {
		t.Errorf("unexpected bbox bound: %+v", bound)
	}
}

func TestFeatureCollection_RadiusBBox(t *testing.T) {
	rk := 2.0
	res := &domain.SearchResult{
		OK: true,
		Query: domain.QueryEcho{
			Q:         "Luisenplatz",
			Lat:       49.8724,
			Lon:       8.6512,
			QueryMode: domain.QueryModeRadius,
			Mode:      domain.ModeSample,
			RadiusKm:  &rk,
		},
		Sample:      []domain.TreePoint{{ID: 1, Lat: 49.8724, Lon: 8.6512}},
		Attribution: domain.OSMAttribution,
	}

	fc := domain.FeatureCollection(res)
	if fc.BBox == nil {
		t.Fatal("expected a bbox for radius searches")
	}
	bound := fc.BBox.Bound()
	if !bound.Contains(orb.Point{8.6512, 49.8724}) {
		t.Error("bbox must contain the search center")
	}
	// 2 km is roughly 0.018 degrees latitude on either side
	if bound.Max[1]-bound.Min[1] < 0.03 {
		t.Errorf("bbox too small for a 2 km radius: %+v", bound)
	}
}

func TestFeatureCollection_Attribution(t *testing.T) {
	data, err := json.Marshal(domain.FeatureCollection(boundaryResult()))
	if err != nil {
		t.Fatal(err)
	}

	var out struct {
		Type       string `json:"type"`
		Properties struct {
			Attribution string `json:"attribution"`
		} `json:"properties"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out.Type != "FeatureCollection" {
		t.Errorf("expected FeatureCollection, got %q", out.Type)
	}
	if out.Properties.Attribution != domain.OSMAttribution.Text {
		t.Errorf("expected OSM attribution, got %q", out.Properties.Attribution)
	}
}

func TestFeatureCollection_EmptyResultHasNoBBox(t *testing.T) {
	res := &domain.SearchResult{
		OK:          true,
		Query:       domain.QueryEcho{QueryMode: domain.QueryModeBoundary, Mode: domain.ModeCount},
		Attribution: domain.OSMAttribution,
	}
	fc := domain.FeatureCollection(res)
	if len(fc.Features) != 0 {
		t.Errorf("expected no features, got %d", len(fc.Features))
	}
	if fc.BBox != nil {
		t.Error("expected no bbox without boundary or sample")
	}
}
