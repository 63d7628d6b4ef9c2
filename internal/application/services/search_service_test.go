package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barsgayparis/directory-backend/internal/application/services"
)

func TestSearchService_MatchesName(t *testing.T) {
	svc := services.NewSearchService(parisFixture())

	results, err := svc.Search(context.Background(), "cox", services.DefaultSearchLimit)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "Le Cox", results[0].Name)
}

func TestSearchService_MatchesPostalCode(t *testing.T) {
	svc := services.NewSearchService(parisFixture())

	results, err := svc.Search(context.Background(), "75004", services.DefaultSearchLimit)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "Freedj", results[0].Name)
	assert.Equal(t, "Le Cox", results[1].Name)
}

func TestSearchService_ShortQueryShortCircuits(t *testing.T) {
	repo := &memoryRepo{err: errors.New("store must not be touched")}
	svc := services.NewSearchService(repo)

	for _, q := range []string{"", " ", "a", " b "} {
		results, err := svc.Search(context.Background(), q, services.DefaultSearchLimit)
		require.NoError(t, err, "query %q", q)
		assert.Empty(t, results, "query %q", q)
	}
}

func TestSearchService_TwoRuneAccentedQueryReachesStore(t *testing.T) {
	svc := services.NewSearchService(parisFixture())

	results, err := svc.Search(context.Background(), "bo", services.DefaultSearchLimit)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "La Boîte", results[0].Name)
}

func TestSearchService_LimitTruncates(t *testing.T) {
	svc := services.NewSearchService(parisFixture())

	results, err := svc.Search(context.Background(), "paris", 2)
	require.NoError(t, err)

	assert.Len(t, results, 2)
}

func TestSearchService_StoreErrorSurfaces(t *testing.T) {
	svc := services.NewSearchService(&memoryRepo{err: errors.New("connection refused")})

	_, err := svc.Search(context.Background(), "cox", services.DefaultSearchLimit)
	assert.Error(t, err)
}
