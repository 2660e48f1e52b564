package domain

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/data-tales/tree-locator/internal/pkg/geospatial"
)

// FeatureCollection renders a search result as GeoJSON: an optional
// boundary feature followed by one point feature per sampled tree.
func FeatureCollection(res *SearchResult) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	if res.Boundary != nil {
		f := geojson.NewFeature(res.Boundary.Geometry())
		f.Properties = geojson.Properties{"kind": "boundary"}
		fc.Append(f)
	}

	for _, p := range res.Sample {
		f := geojson.NewFeature(orb.Point{p.Lon, p.Lat})
		f.Properties = geojson.Properties{"kind": "tree", "id": p.ID}
		fc.Append(f)
	}

	if bound, ok := resultBound(res); ok {
		fc.BBox = geojson.NewBBox(bound)
	}

	fc.ExtraMembers = geojson.Properties{
		"properties": map[string]any{"attribution": res.Attribution.Text},
	}
	return fc
}

// resultBound derives the extent of the search: the boundary geometry when
// present, the search circle for radius queries, otherwise the sample extent.
func resultBound(res *SearchResult) (orb.Bound, bool) {
	if res.Boundary != nil {
		return res.Boundary.Geometry().Bound(), true
	}

	if res.Query.QueryMode == QueryModeRadius && res.Query.RadiusKm != nil {
		minLat, minLon, maxLat, maxLon := geospatial.BoundingBox(
			res.Query.Lat, res.Query.Lon, *res.Query.RadiusKm*1000)
		return orb.Bound{
			Min: orb.Point{minLon, minLat},
			Max: orb.Point{maxLon, maxLat},
		}, true
	}

	if len(res.Sample) == 0 {
		return orb.Bound{}, false
	}
	bound := orb.Point{res.Sample[0].Lon, res.Sample[0].Lat}.Bound()
	for _, p := range res.Sample[1:] {
		bound = bound.Extend(orb.Point{p.Lon, p.Lat})
	}
	return bound, true
}
