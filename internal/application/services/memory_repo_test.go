package services_test

import (
	"context"
	"sort"
	"strings"

	"github.com/barsgayparis/directory-backend/internal/domain/entities"
	"github.com/barsgayparis/directory-backend/internal/domain/repositories"
	apperrors "github.com/barsgayparis/directory-backend/pkg/errors"
)

// memoryRepo is an in-memory VenueRepository mirroring the store's matching
// rules: substring filters are case-insensitive and results come back sorted
// by name.
type memoryRepo struct {
	venues   []*entities.Venue
	err      error
	upserted [][]*entities.Venue
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func (m *memoryRepo) sorted(venues []*entities.Venue) []*entities.Venue {
	out := make([]*entities.Venue, len(venues))
	copy(out, venues)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (m *memoryRepo) List(ctx context.Context, filter repositories.VenueFilter) ([]*entities.Venue, error) {
	if m.err != nil {
		return nil, m.err
	}

	var out []*entities.Venue
	for _, v := range m.venues {
		if filter.Neighborhood != "" && !containsFold(v.PostalCode, filter.Neighborhood) {
			continue
		}
		if filter.Category != "" && !containsFold(v.Subtypes, filter.Category) {
			continue
		}
		out = append(out, v)
	}

	out = m.sorted(out)
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (m *memoryRepo) ListAll(ctx context.Context) ([]*entities.Venue, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.sorted(m.venues), nil
}

func (m *memoryRepo) GetBySlug(ctx context.Context, slug string) (*entities.Venue, error) {
	if m.err != nil {
		return nil, m.err
	}
	for _, v := range m.venues {
		if v.Slug == slug {
			return v, nil
		}
	}
	return nil, apperrors.NewNotFoundError("venue not found")
}

func (m *memoryRepo) Search(ctx context.Context, query string, limit int) ([]*entities.Venue, error) {
	if m.err != nil {
		return nil, m.err
	}

	var out []*entities.Venue
	for _, v := range m.venues {
		if containsFold(v.Name, query) ||
			containsFold(v.FullAddress, query) ||
			containsFold(v.PostalCode, query) {
			out = append(out, v)
		}
	}

	out = m.sorted(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memoryRepo) Similar(ctx context.Context, params repositories.SimilarParams) ([]*entities.Venue, error) {
	if m.err != nil {
		return nil, m.err
	}

	var out []*entities.Venue
	for _, v := range m.venues {
		if v.ID == params.ExcludeID {
			continue
		}
		if len(params.Categories) > 0 {
			matched := false
			for _, token := range params.Categories {
				if containsFold(v.Subtypes, token) {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
			if params.PostalPrefix != "" && !containsFold(v.PostalCode, params.PostalPrefix) {
				continue
			}
		} else if !containsFold(v.PostalCode, params.PostalPrefix) {
			continue
		}
		out = append(out, v)
	}

	out = m.sorted(out)
	if params.Limit > 0 && len(out) > params.Limit {
		out = out[:params.Limit]
	}
	return out, nil
}

func (m *memoryRepo) UpsertBatch(ctx context.Context, venues []*entities.Venue) error {
	if m.err != nil {
		return m.err
	}
	m.upserted = append(m.upserted, venues)
	m.venues = append(m.venues, venues...)
	return nil
}

// fixture helpers

func venue(id, name, slug, postal, subtypes string) *entities.Venue {
	return &entities.Venue{
		ID:          id,
		Name:        name,
		Slug:        slug,
		PostalCode:  postal,
		FullAddress: "somewhere in Paris " + postal,
		Subtypes:    subtypes,
	}
}

func parisFixture() *memoryRepo {
	return &memoryRepo{venues: []*entities.Venue{
		venue("1", "Le Cox", "le-cox", "75004", "Bar, Club"),
		venue("2", "Freedj", "freedj", "75004", "Bar"),
		venue("3", "La Boîte", "la-boite", "75001", "Club"),
	}}
}
