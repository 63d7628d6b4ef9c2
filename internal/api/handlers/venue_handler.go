package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/barsgayparis/directory-backend/internal/application/services"
	"github.com/barsgayparis/directory-backend/internal/domain/entities"
	"github.com/barsgayparis/directory-backend/internal/domain/repositories"
	apperrors "github.com/barsgayparis/directory-backend/pkg/errors"
)

// VenueHandler handles venue-related HTTP requests
type VenueHandler struct {
	venueRepo      repositories.VenueRepository
	listingService *services.ListingService
	facetService   *services.FacetService
	similarService *services.SimilarService
}

// NewVenueHandler creates a new venue handler
func NewVenueHandler(
	venueRepo repositories.VenueRepository,
	listingService *services.ListingService,
	facetService *services.FacetService,
	similarService *services.SimilarService,
) *VenueHandler {
	return &VenueHandler{
		venueRepo:      venueRepo,
		listingService: listingService,
		facetService:   facetService,
		similarService: similarService,
	}
}

// listingResponse is one listing page plus the sidebar facets. Facets are
// derived from the unfiltered set so counts stay stable while filtering.
type listingResponse struct {
	Venues        []*entities.Venue `json:"venues"`
	Total         int               `json:"total"`
	Page          int               `json:"page"`
	TotalPages    int               `json:"total_pages"`
	Neighborhoods []entities.Facet  `json:"neighborhoods"`
	Categories    []entities.Facet  `json:"categories"`
}

// ListVenues handles GET /api/venues
func (h *VenueHandler) ListVenues(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	// Absent or non-numeric page coerces to the first page.
	page := 1
	if raw := query.Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			page = n
		}
	}

	listing, err := h.listingService.List(r.Context(), services.ListingParams{
		Page:         page,
		Neighborhood: query.Get("quartier"),
		Category:     query.Get("type"),
		Query:        query.Get("q"),
	})
	if err != nil {
		handleError(w, err)
		return
	}

	neighborhoods, categories, err := h.facetService.Facets(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, listingResponse{
		Venues:        listing.Venues,
		Total:         listing.Total,
		Page:          listing.Page,
		TotalPages:    listing.TotalPages,
		Neighborhoods: neighborhoods,
		Categories:    categories,
	})
}

// scheduleEntry is one weekday line of a structured schedule.
type scheduleEntry struct {
	Day   string `json:"day"`
	Hours string `json:"hours"`
}

// venueDetailResponse carries the record plus the parsed forms of its hours
// and amenities blobs. The raw text variants surface under their own keys so
// the page can render them verbatim.
type venueDetailResponse struct {
	Venue         *entities.Venue     `json:"venue"`
	Hours         []scheduleEntry     `json:"hours,omitempty"`
	HoursText     string              `json:"hours_text,omitempty"`
	Amenities     map[string][]string `json:"amenities,omitempty"`
	AmenitiesText string              `json:"amenities_text,omitempty"`
}

// GetVenue handles GET /api/venues/{slug}
func (h *VenueHandler) GetVenue(w http.ResponseWriter, r *http.Request) {
	venueSlug := r.PathValue("slug")
	if venueSlug == "" {
		respondWithError(w, http.StatusBadRequest, "venue slug is required")
		return
	}

	venue, err := h.venueRepo.GetBySlug(r.Context(), venueSlug)
	if err != nil {
		handleError(w, err)
		return
	}

	resp := venueDetailResponse{Venue: venue}

	hours := venue.Hours()
	switch hours.Kind {
	case entities.BlobStructured:
		for _, pair := range hours.Ordered() {
			resp.Hours = append(resp.Hours, scheduleEntry{Day: pair[0], Hours: pair[1]})
		}
	case entities.BlobRawText:
		resp.HoursText = hours.Raw
	}

	amenities := venue.Amenities()
	switch amenities.Kind {
	case entities.BlobStructured:
		resp.Amenities = amenities.Groups
	case entities.BlobRawText:
		resp.AmenitiesText = amenities.Raw
	}

	respondWithJSON(w, http.StatusOK, resp)
}

// GetSimilarVenues handles GET /api/venues/{slug}/similar
func (h *VenueHandler) GetSimilarVenues(w http.ResponseWriter, r *http.Request) {
	venueSlug := r.PathValue("slug")
	if venueSlug == "" {
		respondWithError(w, http.StatusBadRequest, "venue slug is required")
		return
	}

	venue, err := h.venueRepo.GetBySlug(r.Context(), venueSlug)
	if err != nil {
		handleError(w, err)
		return
	}

	// Absent or non-numeric limit coerces to the default, like the page param.
	limit := services.DefaultSimilarLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	similar, err := h.similarService.ForVenue(r.Context(), venue, limit)
	if err != nil {
		handleError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"venues": similar,
		"count":  len(similar),
	})
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// handleError maps a repository or service error onto an HTTP status.
func handleError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		switch appErr.Type {
		case apperrors.ErrorTypeNotFound:
			respondWithError(w, http.StatusNotFound, appErr.Message)
		case apperrors.ErrorTypeValidation:
			respondWithError(w, http.StatusBadRequest, appErr.Message)
		default:
			respondWithError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}
	respondWithError(w, http.StatusInternalServerError, "internal server error")
}
