package handlers

import (
	"net/http"
	"strconv"

	"github.com/barsgayparis/directory-backend/internal/application/services"
	"github.com/barsgayparis/directory-backend/internal/domain/entities"
)

// FacetHandler serves the neighborhood and category facet lists
type FacetHandler struct {
	facetService *services.FacetService
}

// NewFacetHandler creates a new facet handler
func NewFacetHandler(facetService *services.FacetService) *FacetHandler {
	return &FacetHandler{facetService: facetService}
}

// topN applies the optional ?top=N ranking used by the popular-categories
// widgets; absent or non-numeric values leave the full alphabetical list.
func topN(r *http.Request, facets []entities.Facet) []entities.Facet {
	raw := r.URL.Query().Get("top")
	if raw == "" {
		return facets
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return facets
	}
	return services.TopFacets(facets, n)
}

// ListQuartiers handles GET /api/quartiers
func (h *FacetHandler) ListQuartiers(w http.ResponseWriter, r *http.Request) {
	facets, err := h.facetService.Neighborhoods(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	facets = topN(r, facets)

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"quartiers": facets,
		"count":     len(facets),
	})
}

// ListTypes handles GET /api/types
func (h *FacetHandler) ListTypes(w http.ResponseWriter, r *http.Request) {
	facets, err := h.facetService.Categories(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	facets = topN(r, facets)

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"types": facets,
		"count": len(facets),
	})
}
