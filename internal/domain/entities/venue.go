package entities

import (
	"strings"
	"time"
)

// Venue represents a single bar/club/café record in the directory. Records
// are written only by the bulk import; the request path treats them as
// read-only.
type Venue struct {
	ID             string     `json:"id" db:"id"`
	Name           string     `json:"name" db:"name"`
	Slug           string     `json:"slug" db:"slug"`
	Street         string     `json:"street,omitempty" db:"street"`
	PostalCode     string     `json:"postal_code,omitempty" db:"postal_code"`
	FullAddress    string     `json:"full_address,omitempty" db:"full_address"`
	Latitude       *float64   `json:"latitude,omitempty" db:"latitude"`
	Longitude      *float64   `json:"longitude,omitempty" db:"longitude"`
	Subtypes       string     `json:"subtypes,omitempty" db:"subtypes"`
	Rating         *float64   `json:"rating,omitempty" db:"rating"`
	Reviews        int        `json:"reviews" db:"reviews"`
	Phone          string     `json:"phone,omitempty" db:"phone"`
	Website        string     `json:"website,omitempty" db:"website"`
	Email          string     `json:"email,omitempty" db:"email"`
	Facebook       string     `json:"facebook,omitempty" db:"facebook"`
	Instagram      string     `json:"instagram,omitempty" db:"instagram"`
	WorkingHours   string     `json:"working_hours,omitempty" db:"working_hours"`
	About          string     `json:"about,omitempty" db:"about"`
	Description    string     `json:"description,omitempty" db:"description"`
	SeoDescription string     `json:"seo_description,omitempty" db:"seo_description"`
	Photo          string     `json:"photo,omitempty" db:"photo"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// Categories splits the comma-separated subtype tag string into the set of
// category tokens the venue belongs to. Empty segments are discarded.
func (v *Venue) Categories() []string {
	if v.Subtypes == "" {
		return nil
	}

	var categories []string
	for _, raw := range strings.Split(v.Subtypes, ",") {
		if token := strings.TrimSpace(raw); token != "" {
			categories = append(categories, token)
		}
	}
	return categories
}

// PrimaryCategory returns the first category token, defaulting to "Bar".
func (v *Venue) PrimaryCategory() string {
	if cats := v.Categories(); len(cats) > 0 {
		return cats[0]
	}
	return "Bar"
}

// PostalPrefix returns the five character postal code prefix that determines
// the neighborhood grouping, empty when the code is shorter.
func (v *Venue) PostalPrefix() string {
	if len(v.PostalCode) < 5 {
		return ""
	}
	return v.PostalCode[:5]
}

// HasCoordinates reports whether the venue can appear on the map.
func (v *Venue) HasCoordinates() bool {
	return v.Latitude != nil && v.Longitude != nil
}

// Hours parses the raw working hours blob into its structured form.
func (v *Venue) Hours() OpeningHours {
	return ParseOpeningHours(v.WorkingHours)
}

// Amenities parses the raw amenities blob into its structured form.
func (v *Venue) Amenities() Amenities {
	return ParseAmenities(v.About)
}

// MapMarker is the payload consumed by the map rendering frontend. Click
// events come back keyed by slug.
type MapMarker struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Slug      string  `json:"slug"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Category  string  `json:"category"`
}

// Marker builds the map marker for a venue. Returns false when the venue has
// no coordinates and cannot be placed.
func (v *Venue) Marker() (MapMarker, bool) {
	if !v.HasCoordinates() {
		return MapMarker{}, false
	}
	return MapMarker{
		ID:        v.ID,
		Name:      v.Name,
		Slug:      v.Slug,
		Latitude:  *v.Latitude,
		Longitude: *v.Longitude,
		Category:  v.PrimaryCategory(),
	}, true
}
