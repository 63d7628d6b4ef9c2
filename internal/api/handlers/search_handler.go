package handlers

import (
	"net/http"

	"github.com/barsgayparis/directory-backend/internal/application/services"
)

// SearchHandler handles live-search HTTP requests
type SearchHandler struct {
	searchService *services.SearchService
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchService *services.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// Search handles GET /api/search. Short queries return an empty result set
// with 200; only a store failure yields a 500.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")

	results, err := h.searchService.Search(r.Context(), query, services.DefaultSearchLimit)
	if err != nil {
		handleError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"results": results,
		"count":   len(results),
	})
}
