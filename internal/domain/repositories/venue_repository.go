package repositories

import (
	"context"

	"github.com/barsgayparis/directory-backend/internal/domain/entities"
)

// VenueRepository defines the read surface over the hosted venue table plus
// the single upsert operation used by the bulk import. The request path only
// reads; all matching is case-insensitive substring (ILIKE) semantics.
type VenueRepository interface {
	// List retrieves venues matching the optional neighborhood/category
	// filters, sorted by name ascending
	List(ctx context.Context, filter VenueFilter) ([]*entities.Venue, error)

	// ListAll retrieves the full venue collection sorted by name ascending;
	// facet aggregation and the sitemap scan this snapshot
	ListAll(ctx context.Context) ([]*entities.Venue, error)

	// GetBySlug retrieves a single venue by its unique slug
	GetBySlug(ctx context.Context, slug string) (*entities.Venue, error)

	// Search matches query as a substring of name, full address or postal
	// code, sorted by name ascending, truncated to limit
	Search(ctx context.Context, query string, limit int) ([]*entities.Venue, error)

	// Similar selects venues related to a target by shared category tokens
	// and/or postal prefix, excluding the target itself
	Similar(ctx context.Context, params SimilarParams) ([]*entities.Venue, error)

	// UpsertBatch inserts or updates venues keyed on slug (import path only)
	UpsertBatch(ctx context.Context, venues []*entities.Venue) error
}

// VenueFilter defines the optional listing constraints. An empty field means
// no constraint on that dimension.
type VenueFilter struct {
	// Neighborhood is matched as a substring of the postal code ("75004")
	Neighborhood string
	// Category is matched as a substring of the subtype tag string ("club")
	Category string
	// Limit caps the result set; zero means the adapter default
	Limit int
}

// SimilarParams defines the similarity selection inputs for a detail page.
type SimilarParams struct {
	ExcludeID    string
	Categories   []string
	PostalPrefix string
	Limit        int
}
