package ports

import (
	"context"

	"github.com/data-tales/tree-locator/internal/core/domain"
)

// Geocoder resolves a free-form place name to coordinates and, when
// available, an administrative boundary.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (*domain.Place, error)
}

// TreeQuerier runs spatial queries for tagged tree features against a
// geographic database.
type TreeQuerier interface {
	CountByArea(ctx context.Context, areaID int64) (int64, error)
	CountByRadius(ctx context.Context, lat, lon float64, radiusM int) (int64, error)
	SampleByArea(ctx context.Context, areaID int64, limit int) ([]domain.TreePoint, error)
	SampleByRadius(ctx context.Context, lat, lon float64, radiusM int, limit int) ([]domain.TreePoint, error)
}
