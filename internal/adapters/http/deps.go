package http

import (
	"github.com/data-tales/tree-locator/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Locator *usecases.LocatorService

	// Upstream endpoints, reported by the readiness check.
	NominatimEndpoint string
	OverpassEndpoint  string
}
