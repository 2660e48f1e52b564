package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/data-tales/tree-locator/internal/core/domain"
	"github.com/data-tales/tree-locator/internal/pkg/metrics"
)

// parseSearchParams validates the query-string inputs of a tree search.
// A missing mode falls back to defaultMode, which differs per route.
func parseSearchParams(c *fiber.Ctx, defaultMode string) (domain.SearchParams, error) {
	var p domain.SearchParams

	q, err := domain.ValidateQuery(c.Query("q"))
	if err != nil {
		return p, err
	}
	queryMode, err := domain.ParseQueryMode(c.Query("query_mode"))
	if err != nil {
		return p, err
	}
	rawMode := c.Query("mode")
	if rawMode == "" {
		rawMode = defaultMode
	}
	mode, err := domain.ParseMode(rawMode)
	if err != nil {
		return p, err
	}
	radiusKm, err := domain.ParseRadiusKm(c.Query("radius_km"))
	if err != nil {
		return p, err
	}
	limit, err := domain.ParseLimit(c.Query("limit"), domain.SampleDefault)
	if err != nil {
		return p, err
	}

	p = domain.SearchParams{
		Query:     q,
		QueryMode: queryMode,
		Mode:      mode,
		RadiusKm:  radiusKm,
		Limit:     limit,
	}
	return p, nil
}

// TreeSearchHandler geocodes a place and counts the trees mapped inside it.
func TreeSearchHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := parseSearchParams(c, domain.ModeCount)
		if err != nil {
			return respondError(c, err)
		}

		res, err := deps.Locator.Search(c.UserContext(), p)
		if err != nil {
			return respondError(c, err)
		}

		metrics.SearchesTotal.WithLabelValues(res.Query.QueryMode, res.Query.Mode).Inc()
		if res.Query.Mode == domain.ModeSample {
			metrics.SampleSize.Observe(float64(len(res.Sample)))
		}

		return c.JSON(res)
	}
}

// TreeGeoJSONHandler runs a sample search and returns the result as a
// downloadable GeoJSON FeatureCollection. Mode defaults to sample here;
// an explicit mode=count makes no sense for an export and is rejected.
func TreeGeoJSONHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := parseSearchParams(c, domain.ModeSample)
		if err != nil {
			return respondError(c, err)
		}
		if p.Mode != domain.ModeSample {
			return errBadRequest(c, "geojson export requires mode=sample",
				"drop mode=count or set mode=sample")
		}

		res, err := deps.Locator.Search(c.UserContext(), p)
		if err != nil {
			return respondError(c, err)
		}

		metrics.SearchesTotal.WithLabelValues(res.Query.QueryMode, res.Query.Mode).Inc()
		metrics.SampleSize.Observe(float64(len(res.Sample)))

		if err := c.JSON(domain.FeatureCollection(res)); err != nil {
			return err
		}
		// Set after c.JSON, which forces application/json
		c.Set(fiber.HeaderContentType, "application/geo+json; charset=utf-8")
		c.Set(fiber.HeaderContentDisposition,
			`attachment; filename="`+domain.ExportFilename(res.Query.Q)+`"`)
		return nil
	}
}
