package services

import (
	"context"
	"sort"

	"github.com/barsgayparis/directory-backend/internal/domain/entities"
	"github.com/barsgayparis/directory-backend/internal/domain/repositories"
	"github.com/barsgayparis/directory-backend/pkg/slug"
)

// FacetService derives the neighborhood and category sidebar facets. Facets
// are never persisted; every call scans a fresh venue snapshot and both
// lists of a single call come from the same snapshot.
type FacetService struct {
	repo repositories.VenueRepository
}

// NewFacetService creates a new facet service
func NewFacetService(repo repositories.VenueRepository) *FacetService {
	return &FacetService{repo: repo}
}

// Facets computes both facet lists from one snapshot.
func (s *FacetService) Facets(ctx context.Context) (neighborhoods, categories []entities.Facet, err error) {
	venues, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	return neighborhoodFacets(venues), categoryFacets(venues), nil
}

// Neighborhoods computes the arrondissement facet list.
func (s *FacetService) Neighborhoods(ctx context.Context) ([]entities.Facet, error) {
	venues, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return neighborhoodFacets(venues), nil
}

// Categories computes the category facet list.
func (s *FacetService) Categories(ctx context.Context) ([]entities.Facet, error) {
	venues, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return categoryFacets(venues), nil
}

// neighborhoodFacets groups venues by arrondissement number extracted from
// the postal code (leading zero stripped; the first keeps its "1er" label).
// The facet ID is the canonical 750NN postal code used as the filter key.
func neighborhoodFacets(venues []*entities.Venue) []entities.Facet {
	counts := map[int]int{}
	for _, v := range venues {
		if n := slug.ArrondissementNumber(v.PostalCode); n > 0 {
			counts[n]++
		}
	}

	numbers := make([]int, 0, len(counts))
	for n := range counts {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	facets := make([]entities.Facet, 0, len(numbers))
	for _, n := range numbers {
		code := slug.PostalCodeForArrondissement(n)
		facets = append(facets, entities.Facet{
			ID:    code,
			Name:  slug.ArrondissementLabel(code),
			Count: counts[n],
		})
	}
	return facets
}

// categoryFacets accumulates a count per distinct category token. Token
// identity is case-sensitive; ordering is alphabetical on the label.
func categoryFacets(venues []*entities.Venue) []entities.Facet {
	counts := map[string]int{}
	for _, v := range venues {
		for _, token := range v.Categories() {
			counts[token]++
		}
	}

	labels := make([]string, 0, len(counts))
	for label := range counts {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	facets := make([]entities.Facet, 0, len(labels))
	for _, label := range labels {
		facets = append(facets, entities.Facet{ID: label, Name: label, Count: counts[label]})
	}
	return facets
}

// TopFacets returns the n highest-count facets; equal counts keep their
// alphabetical label order.
func TopFacets(facets []entities.Facet, n int) []entities.Facet {
	ranked := make([]entities.Facet, len(facets))
	copy(ranked, facets)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Name < ranked[j].Name
	})

	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}
