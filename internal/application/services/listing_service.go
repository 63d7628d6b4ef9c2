package services

import (
	"context"
	"strings"

	"github.com/barsgayparis/directory-backend/internal/domain/entities"
	"github.com/barsgayparis/directory-backend/internal/domain/repositories"
)

const (
	// ListingPageSize is the fixed page size of the listing view.
	ListingPageSize = 12

	// listingCeiling is the high ceiling passed to the store so the whole
	// filtered set is available for in-memory search and page math.
	listingCeiling = 1000
)

// ListingParams is the active filter set of a listing request. Page is
// 1-based; values below 1 are treated as 1 (absent and non-numeric page
// parameters coerce to 1 at the handler).
type ListingParams struct {
	Page         int
	Neighborhood string
	Category     string
	Query        string
}

// ListingPage is one page of the filtered listing plus its page math.
type ListingPage struct {
	Venues     []*entities.Venue `json:"venues"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	TotalPages int               `json:"total_pages"`
}

// ListingService combines the neighborhood/category filters, the free-text
// query and the page number into a single paginated result set.
type ListingService struct {
	repo repositories.VenueRepository
}

// NewListingService creates a new listing service
func NewListingService(repo repositories.VenueRepository) *ListingService {
	return &ListingService{repo: repo}
}

// List fetches the filtered set, applies the free-text query in memory, and
// slices out the requested page. Pages past the last yield an empty slice
// with the page math intact, never an error.
func (s *ListingService) List(ctx context.Context, params ListingParams) (*ListingPage, error) {
	page := params.Page
	if page < 1 {
		page = 1
	}

	venues, err := s.repo.List(ctx, repositories.VenueFilter{
		Neighborhood: params.Neighborhood,
		Category:     params.Category,
		Limit:        listingCeiling,
	})
	if err != nil {
		return nil, err
	}

	if term := strings.TrimSpace(params.Query); term != "" {
		venues = filterByQuery(venues, term)
	}

	total := len(venues)
	totalPages := (total + ListingPageSize - 1) / ListingPageSize

	start := (page - 1) * ListingPageSize
	end := start + ListingPageSize
	if start >= total {
		return &ListingPage{Venues: []*entities.Venue{}, Total: total, Page: page, TotalPages: totalPages}, nil
	}
	if end > total {
		end = total
	}

	return &ListingPage{Venues: venues[start:end], Total: total, Page: page, TotalPages: totalPages}, nil
}

// filterByQuery keeps venues whose name, full address, postal code or
// description contains the term, case-insensitively. The description field
// is only searched here; the live-search path scans the other three.
func filterByQuery(venues []*entities.Venue, term string) []*entities.Venue {
	needle := strings.ToLower(term)

	matched := make([]*entities.Venue, 0, len(venues))
	for _, v := range venues {
		if strings.Contains(strings.ToLower(v.Name), needle) ||
			strings.Contains(strings.ToLower(v.FullAddress), needle) ||
			strings.Contains(strings.ToLower(v.PostalCode), needle) ||
			strings.Contains(strings.ToLower(v.Description), needle) {
			matched = append(matched, v)
		}
	}
	return matched
}
