package geospatial_test

import (
	"math"
	"testing"

	"github.com/data-tales/tree-locator/internal/pkg/geospatial"
)

func TestBoundingBox(t *testing.T) {
	minLat, minLon, maxLat, maxLon := geospatial.BoundingBox(49.872, 8.651, 2000)

	if minLat >= maxLat || minLon >= maxLon {
		t.Fatalf("degenerate box: %f,%f,%f,%f", minLat, minLon, maxLat, maxLon)
	}

	// 2 km is about 0.018 degrees of latitude
	latSpan := maxLat - minLat
	if math.Abs(latSpan-0.0359) > 0.001 {
		t.Errorf("unexpected latitude span %f", latSpan)
	}

	// Longitude span widens with latitude
	lonSpan := maxLon - minLon
	if lonSpan <= latSpan {
		t.Errorf("longitude span %f should exceed latitude span %f at 49.8N", lonSpan, latSpan)
	}

	// Box is centered on the input point
	if c := (minLat + maxLat) / 2; math.Abs(c-49.872) > 1e-9 {
		t.Errorf("box not centered on latitude: %f", c)
	}
	if c := (minLon + maxLon) / 2; math.Abs(c-8.651) > 1e-9 {
		t.Errorf("box not centered on longitude: %f", c)
	}
}

func TestBoundingBox_Equator(t *testing.T) {
	minLat, minLon, maxLat, maxLon := geospatial.BoundingBox(0, 0, 1000)

	// At the equator both spans collapse to the same size
	latSpan := maxLat - minLat
	lonSpan := maxLon - minLon
	if math.Abs(latSpan-lonSpan) > 1e-9 {
		t.Errorf("spans should match at the equator: lat %f, lon %f", latSpan, lonSpan)
	}
}
