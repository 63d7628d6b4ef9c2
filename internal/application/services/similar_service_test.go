package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barsgayparis/directory-backend/internal/application/services"
)

func TestSimilarService_SharedCategoryAndNeighborhood(t *testing.T) {
	repo := parisFixture()
	svc := services.NewSimilarService(repo)

	target := repo.venues[0] // Le Cox, 75004, "Bar, Club"

	similar, err := svc.ForVenue(context.Background(), target, services.DefaultSimilarLimit)
	require.NoError(t, err)

	// Freedj shares a category token and the postal prefix; La Boîte shares
	// a token but sits in another arrondissement.
	require.Len(t, similar, 1)
	assert.Equal(t, "Freedj", similar[0].Name)
}

func TestSimilarService_ExcludesTarget(t *testing.T) {
	repo := parisFixture()
	svc := services.NewSimilarService(repo)

	similar, err := svc.ForVenue(context.Background(), repo.venues[1], services.DefaultSimilarLimit)
	require.NoError(t, err)

	for _, v := range similar {
		assert.NotEqual(t, repo.venues[1].ID, v.ID)
	}
}

func TestSimilarService_PostalOnlyFallback(t *testing.T) {
	repo := parisFixture()
	target := venue("9", "Sans Type", "sans-type", "75004", "")
	repo.venues = append(repo.venues, target)
	svc := services.NewSimilarService(repo)

	similar, err := svc.ForVenue(context.Background(), target, services.DefaultSimilarLimit)
	require.NoError(t, err)

	require.Len(t, similar, 2)
	assert.Equal(t, "Freedj", similar[0].Name)
	assert.Equal(t, "Le Cox", similar[1].Name)
}

func TestSimilarService_NoSignalsFallsBackToAnyVenue(t *testing.T) {
	repo := parisFixture()
	target := venue("9", "Anonyme", "anonyme", "", "")
	svc := services.NewSimilarService(repo)

	similar, err := svc.ForVenue(context.Background(), target, services.DefaultSimilarLimit)
	require.NoError(t, err)

	// with nothing to match on, the selection degrades to the first venues
	// by name, excluding only the target
	require.Len(t, similar, 3)
	assert.Equal(t, "Freedj", similar[0].Name)
	assert.Equal(t, "La Boîte", similar[1].Name)
	assert.Equal(t, "Le Cox", similar[2].Name)
}

func TestSimilarService_NonPositiveLimitUsesDefault(t *testing.T) {
	repo := &memoryRepo{}
	for i := 0; i < 10; i++ {
		repo.venues = append(repo.venues, venue(string(rune('a'+i)), "Bar "+string(rune('A'+i)), "bar", "75004", "Bar"))
	}
	svc := services.NewSimilarService(repo)

	similar, err := svc.ForVenue(context.Background(), venue("z", "Cible", "cible", "75004", "Bar"), 0)
	require.NoError(t, err)
	assert.Len(t, similar, services.DefaultSimilarLimit)
}
