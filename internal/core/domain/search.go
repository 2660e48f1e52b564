package domain

import (
	"strings"

	"github.com/paulmach/orb/geojson"
)

// Query modes select how the searched area is derived from the geocode hit.
const (
	QueryModeBoundary = "boundary" // administrative boundary of the geocoded place
	QueryModeRadius   = "radius"   // circle around the geocoded center point
)

// Output modes.
const (
	ModeCount  = "count"  // only the tree count
	ModeSample = "sample" // count plus a sample of tree coordinates
)

// Input limits.
const (
	QueryMinLen     = 2
	QueryMaxLen     = 120
	RadiusMinKm     = 0.1
	RadiusMaxKm     = 50.0
	RadiusDefaultKm = 2.0
	SampleMax       = 2000
	SampleDefault   = 500

	// SampleCountCeiling suppresses sampling for absurdly large result
	// sets; the count is still returned.
	SampleCountCeiling = 200000
)

// Overpass area ID offsets per OSM element type.
const (
	areaOffsetRelation = 3600000000
	areaOffsetWay      = 2400000000
)

// Place is a geocoded location.
type Place struct {
	Query       string            `json:"query"`
	DisplayName string            `json:"display_name"`
	Lat         float64           `json:"lat"`
	Lon         float64           `json:"lon"`
	OSMType     string            `json:"osm_type"`
	OSMID       int64             `json:"osm_id"`
	Boundary    *geojson.Geometry `json:"boundary,omitempty"`
}

// AreaID derives the Overpass area ID for the place. Nodes have no area
// representation, in which case ok is false and the caller must fall back
// to a radius search.
func (p *Place) AreaID() (id int64, ok bool) {
	switch strings.ToLower(p.OSMType) {
	case "relation":
		return areaOffsetRelation + p.OSMID, true
	case "way":
		return areaOffsetWay + p.OSMID, true
	}
	return 0, false
}

// TreePoint is a single tree node from the spatial query.
type TreePoint struct {
	ID  int64   `json:"id"`
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// SearchParams are the validated inputs of a tree search.
type SearchParams struct {
	Query     string
	QueryMode string
	Mode      string
	RadiusKm  float64
	Limit     int
}

// QueryEcho reports the parameters that were actually used, after
// defaulting and boundary→radius fallback.
type QueryEcho struct {
	Q           string   `json:"q"`
	DisplayName string   `json:"display_name"`
	Lat         float64  `json:"lat"`
	Lon         float64  `json:"lon"`
	QueryMode   string   `json:"query_mode"`
	Mode        string   `json:"mode"`
	RadiusKm    *float64 `json:"radius_km"`
	Limit       *int     `json:"limit"`
}

// Attribution names the upstream data source and its license.
type Attribution struct {
	Text       string `json:"text"`
	LicenseURL string `json:"license_url"`
}

// OSMAttribution is attached to every search result; OSM data is ODbL.
var OSMAttribution = Attribution{
	Text:       "© OpenStreetMap contributors (ODbL)",
	LicenseURL: "https://opendatacommons.org/licenses/odbl/",
}

// SearchResult is the full outcome of a tree search.
type SearchResult struct {
	OK          bool              `json:"ok"`
	Query       QueryEcho         `json:"query"`
	TreeCount   int64             `json:"tree_count"`
	Sample      []TreePoint       `json:"sample"`
	Boundary    *geojson.Geometry `json:"boundary_geojson"`
	Attribution Attribution       `json:"attribution"`
	TimingMS    int64             `json:"timing_ms"`
}
