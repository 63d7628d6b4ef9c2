package services

import (
	"context"
	"encoding/xml"
	"strings"
	"time"

	"github.com/barsgayparis/directory-backend/internal/domain/entities"
	"github.com/barsgayparis/directory-backend/internal/domain/repositories"
	"github.com/barsgayparis/directory-backend/pkg/slug"
)

// staticRoutes are the fixed site pages that always appear in the sitemap.
var staticRoutes = []string{
	"/",
	"/bars",
	"/carte",
	"/types",
	"/quartiers",
	"/guide-couleurs",
}

// SitemapService enumerates the sitemap surface: static routes plus one
// entry per venue, category and neighborhood. Category and neighborhood
// pages are derived from the same snapshot as the venue pages since no
// facet tables exist.
type SitemapService struct {
	repo    repositories.VenueRepository
	baseURL string
}

// NewSitemapService creates a new sitemap service
func NewSitemapService(repo repositories.VenueRepository, baseURL string) *SitemapService {
	return &SitemapService{
		repo:    repo,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Entries returns the sitemap as {url, lastmod} records. Venue entries carry
// the record's update timestamp; derived pages use the generation time.
func (s *SitemapService) Entries(ctx context.Context) ([]entities.SitemapEntry, error) {
	venues, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC().Format(time.RFC3339)

	entries := make([]entities.SitemapEntry, 0, len(staticRoutes)+len(venues))
	for _, route := range staticRoutes {
		entries = append(entries, entities.SitemapEntry{URL: s.baseURL + route, LastMod: now})
	}

	for _, v := range venues {
		lastMod := now
		if !v.UpdatedAt.IsZero() {
			lastMod = v.UpdatedAt.UTC().Format(time.RFC3339)
		}
		entries = append(entries, entities.SitemapEntry{URL: s.baseURL + "/bars/" + v.Slug, LastMod: lastMod})
	}

	for _, facet := range categoryFacets(venues) {
		entries = append(entries, entities.SitemapEntry{URL: s.baseURL + "/types/" + slug.Make(facet.ID), LastMod: now})
	}

	for _, facet := range neighborhoodFacets(venues) {
		entries = append(entries, entities.SitemapEntry{URL: s.baseURL + "/quartiers/" + facet.ID, LastMod: now})
	}

	return entries, nil
}

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	Xmlns   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

type urlEntry struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// XML renders the sitemap as a standard <urlset> document.
func (s *SitemapService) XML(ctx context.Context) ([]byte, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return nil, err
	}

	set := urlSet{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  make([]urlEntry, 0, len(entries)),
	}

	for _, entry := range entries {
		changeFreq, priority := s.tier(entry.URL)
		set.URLs = append(set.URLs, urlEntry{
			Loc:        entry.URL,
			LastMod:    entry.LastMod,
			ChangeFreq: changeFreq,
			Priority:   priority,
		})
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}

	return append([]byte(xml.Header), body...), nil
}

// tier assigns the changefreq/priority pair: home is crawled daily at 1.0,
// venue pages weekly at 0.9, index pages daily at 0.8, everything else
// weekly at 0.7.
func (s *SitemapService) tier(url string) (string, string) {
	path := strings.TrimPrefix(url, s.baseURL)
	switch {
	case path == "/":
		return "daily", "1.0"
	case strings.HasPrefix(path, "/bars/"):
		return "weekly", "0.9"
	case path == "/bars" || path == "/carte" || path == "/types" || path == "/quartiers":
		return "daily", "0.8"
	default:
		return "weekly", "0.7"
	}
}
