package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barsgayparis/directory-backend/internal/api/middleware"
)

type fakeCache struct {
	store map[string][]byte
	ttls  map[string]int
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: map[string][]byte{}, ttls: map[string]int{}}
}

func (c *fakeCache) Get(ctx context.Context, key string) ([]byte, error) {
	if v, ok := c.store[key]; ok {
		return v, nil
	}
	return nil, errors.New("cache miss")
}

func (c *fakeCache) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	c.store[key] = value
	c.ttls[key] = expirationSeconds
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, key string) error {
	delete(c.store, key)
	return nil
}

func countingHandler(hits *int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hits++
		w.Write([]byte(`{"entries":[],"count":0}`))
	})
}

func TestCacheMiddleware_CachesSitemapResponses(t *testing.T) {
	cache := newFakeCache()
	hits := 0
	handler := middleware.NewCacheMiddleware(cache, nil).Middleware(countingHandler(&hits))

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest("GET", "/api/sitemap", nil))
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	assert.Equal(t, 1, hits)

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest("GET", "/api/sitemap", nil))
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, 1, hits)
	assert.Equal(t, first.Body.String(), second.Body.String())

	// sitemap entries expire hourly
	require.Len(t, cache.ttls, 1)
	for _, ttl := range cache.ttls {
		assert.Equal(t, 3600, ttl)
	}
}

func TestCacheMiddleware_ListingRoutesBypassCache(t *testing.T) {
	cache := newFakeCache()
	hits := 0
	handler := middleware.NewCacheMiddleware(cache, nil).Middleware(countingHandler(&hits))

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/api/venues?quartier=75004", nil))
		assert.Empty(t, w.Header().Get("X-Cache"))
	}

	assert.Equal(t, 2, hits)
	assert.Empty(t, cache.store)
}

func TestCacheMiddleware_XMLContentTypeOnHit(t *testing.T) {
	cache := newFakeCache()
	hits := 0
	xmlHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "application/xml")
		w.Write([]byte("<?xml version=\"1.0\"?><urlset></urlset>"))
	})
	handler := middleware.NewCacheMiddleware(cache, nil).Middleware(xmlHandler)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/api/sitemap/xml", nil))
	require.Equal(t, 1, hits)

	hit := httptest.NewRecorder()
	handler.ServeHTTP(hit, httptest.NewRequest("GET", "/api/sitemap/xml", nil))
	assert.Equal(t, 1, hits)
	assert.Equal(t, "application/xml", hit.Header().Get("Content-Type"))
}

func TestCacheMiddleware_ErrorResponsesNotCached(t *testing.T) {
	cache := newFakeCache()
	failing := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"store down"}`))
	})
	handler := middleware.NewCacheMiddleware(cache, nil).Middleware(failing)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/api/sitemap", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, cache.store)
}
