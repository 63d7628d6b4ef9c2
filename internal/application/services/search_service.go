package services

import (
	"context"
	"strings"

	"github.com/barsgayparis/directory-backend/internal/domain/entities"
	"github.com/barsgayparis/directory-backend/internal/domain/repositories"
)

// DefaultSearchLimit is the live-search result cap; the listing search
// passes a larger limit.
const DefaultSearchLimit = 5

// SearchService matches a free-text query against venue name, full address
// and postal code.
type SearchService struct {
	repo repositories.VenueRepository
}

// NewSearchService creates a new search service
func NewSearchService(repo repositories.VenueRepository) *SearchService {
	return &SearchService{repo: repo}
}

// Search returns venues matching the query, sorted by name, truncated to
// limit. Queries shorter than 2 characters after trimming short-circuit to
// an empty result without touching the store. A store failure surfaces as an
// error, distinguishable from zero matches.
func (s *SearchService) Search(ctx context.Context, query string, limit int) ([]*entities.Venue, error) {
	term := strings.TrimSpace(query)
	if len([]rune(term)) < 2 {
		return []*entities.Venue{}, nil
	}

	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	return s.repo.Search(ctx, strings.ToLower(term), limit)
}
