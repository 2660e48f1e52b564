package usecases

import (
	"context"
	"math"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/data-tales/tree-locator/internal/core/domain"
	"github.com/data-tales/tree-locator/internal/core/ports"
)

// LocatorService runs the tree-search pipeline:
// geocode → derive area or radius → count → optional sample.
type LocatorService struct {
	geocoder ports.Geocoder
	trees    ports.TreeQuerier
	tracer   trace.Tracer
}

// NewLocatorService creates a new LocatorService.
func NewLocatorService(geocoder ports.Geocoder, trees ports.TreeQuerier) *LocatorService {
	return &LocatorService{
		geocoder: geocoder,
		trees:    trees,
		tracer:   otel.Tracer("treelocator/locator"),
	}
}

// Search executes a tree search. Params are assumed validated; zero values
// fall back to the documented defaults.
func (s *LocatorService) Search(ctx context.Context, p domain.SearchParams) (*domain.SearchResult, error) {
	ctx, span := s.tracer.Start(ctx, "locator.search",
		trace.WithAttributes(
			attribute.String("search.query_mode", p.QueryMode),
			attribute.String("search.mode", p.Mode),
		))
	defer span.End()

	start := time.Now()

	if p.QueryMode == "" {
		p.QueryMode = domain.QueryModeBoundary
	}
	if p.Mode == "" {
		p.Mode = domain.ModeCount
	}
	if p.Limit <= 0 || p.Limit > domain.SampleMax {
		p.Limit = domain.SampleDefault
	}

	place, err := s.geocoder.Geocode(ctx, p.Query)
	if err != nil {
		return nil, err
	}

	usedMode := p.QueryMode
	areaID, hasArea := place.AreaID()
	if usedMode == domain.QueryModeBoundary && !hasArea {
		// Boundary search is not possible for point-only hits (osm_type
		// node); fall back to a radius around the center.
		usedMode = domain.QueryModeRadius
	}

	var (
		radiusKm *float64
		radiusM  int
	)
	if usedMode == domain.QueryModeRadius {
		rk := p.RadiusKm
		if rk == 0 {
			rk = domain.RadiusDefaultKm
		}
		radiusKm = &rk
		radiusM = int(math.Round(rk * 1000))
	}

	var count int64
	if usedMode == domain.QueryModeBoundary {
		count, err = s.trees.CountByArea(ctx, areaID)
	} else {
		count, err = s.trees.CountByRadius(ctx, place.Lat, place.Lon, radiusM)
	}
	if err != nil {
		return nil, err
	}

	// Sample is always present in the response, empty unless sampled.
	sample := []domain.TreePoint{}
	if p.Mode == domain.ModeSample && count <= domain.SampleCountCeiling {
		var pts []domain.TreePoint
		if usedMode == domain.QueryModeBoundary {
			pts, err = s.trees.SampleByArea(ctx, areaID, p.Limit)
		} else {
			pts, err = s.trees.SampleByRadius(ctx, place.Lat, place.Lon, radiusM, p.Limit)
		}
		if err != nil {
			return nil, err
		}
		sample = append(sample, pts...)
	}

	var limit *int
	if p.Mode == domain.ModeSample {
		limit = &p.Limit
	}

	span.SetAttributes(attribute.Int64("search.tree_count", count))

	return &domain.SearchResult{
		OK: true,
		Query: domain.QueryEcho{
			Q:           place.Query,
			DisplayName: place.DisplayName,
			Lat:         place.Lat,
			Lon:         place.Lon,
			QueryMode:   usedMode,
			Mode:        p.Mode,
			RadiusKm:    radiusKm,
			Limit:       limit,
		},
		TreeCount:   count,
		Sample:      sample,
		Boundary:    place.Boundary,
		Attribution: domain.OSMAttribution,
		TimingMS:    time.Since(start).Milliseconds(),
	}, nil
}
