package services

import (
	"context"

	"github.com/barsgayparis/directory-backend/internal/domain/entities"
	"github.com/barsgayparis/directory-backend/internal/domain/repositories"
)

// DefaultSimilarLimit is the number of related venues shown on detail pages.
const DefaultSimilarLimit = 4

// SimilarService selects related venues for a detail page: venues sharing a
// category token, refined by postal prefix, with postal prefix alone as the
// fallback when the target has no tokens. Ordering stays name-ascending; the
// source never ranked by relevance.
type SimilarService struct {
	repo repositories.VenueRepository
}

// NewSimilarService creates a new similarity service
func NewSimilarService(repo repositories.VenueRepository) *SimilarService {
	return &SimilarService{repo: repo}
}

// ForVenue returns up to limit venues related to the target. A venue with
// no category tokens and no usable postal prefix falls back to the first
// venues by name, excluding only the target.
func (s *SimilarService) ForVenue(ctx context.Context, venue *entities.Venue, limit int) ([]*entities.Venue, error) {
	if limit <= 0 {
		limit = DefaultSimilarLimit
	}

	params := repositories.SimilarParams{
		ExcludeID:    venue.ID,
		Categories:   venue.Categories(),
		PostalPrefix: venue.PostalPrefix(),
		Limit:        limit,
	}

	return s.repo.Similar(ctx, params)
}
