package handlers

import (
	"net/http"

	"github.com/barsgayparis/directory-backend/internal/application/services"
)

// SitemapHandler serves the sitemap in JSON and XML form
type SitemapHandler struct {
	sitemapService *services.SitemapService
}

// NewSitemapHandler creates a new sitemap handler
func NewSitemapHandler(sitemapService *services.SitemapService) *SitemapHandler {
	return &SitemapHandler{sitemapService: sitemapService}
}

// GetSitemap handles GET /api/sitemap
func (h *SitemapHandler) GetSitemap(w http.ResponseWriter, r *http.Request) {
	entries, err := h.sitemapService.Entries(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"entries": entries,
		"count":   len(entries),
	})
}

// GetSitemapXML handles GET /api/sitemap/xml
func (h *SitemapHandler) GetSitemapXML(w http.ResponseWriter, r *http.Request) {
	body, err := h.sitemapService.XML(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
