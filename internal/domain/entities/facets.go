package entities

// Facet is a derived (label, count) pair for the filter sidebar. Facets are
// never stored; they are computed per request from a single venue snapshot.
// ID is the filter key (postal code for neighborhoods, the raw token for
// categories), Name the display label.
type Facet struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// SitemapEntry is one URL of the sitemap surface.
type SitemapEntry struct {
	URL     string `json:"url"`
	LastMod string `json:"lastmod"`
}
