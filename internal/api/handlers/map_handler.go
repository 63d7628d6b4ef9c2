package handlers

import (
	"net/http"

	"github.com/barsgayparis/directory-backend/internal/domain/entities"
	"github.com/barsgayparis/directory-backend/internal/domain/repositories"
)

// MapHandler serves the map marker projection
type MapHandler struct {
	venueRepo repositories.VenueRepository
}

// NewMapHandler creates a new map handler
func NewMapHandler(venueRepo repositories.VenueRepository) *MapHandler {
	return &MapHandler{venueRepo: venueRepo}
}

// GetMarkers handles GET /api/map/markers. Venues without coordinates are
// omitted rather than rendered at a zero position.
func (h *MapHandler) GetMarkers(w http.ResponseWriter, r *http.Request) {
	venues, err := h.venueRepo.ListAll(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	markers := make([]entities.MapMarker, 0, len(venues))
	for _, v := range venues {
		if marker, ok := v.Marker(); ok {
			markers = append(markers, marker)
		}
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"markers": markers,
		"count":   len(markers),
	})
}
