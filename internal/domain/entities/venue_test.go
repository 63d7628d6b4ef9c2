package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barsgayparis/directory-backend/internal/domain/entities"
)

func TestVenue_Categories(t *testing.T) {
	v := &entities.Venue{Subtypes: "Bar, Club , , Cabaret"}
	assert.Equal(t, []string{"Bar", "Club", "Cabaret"}, v.Categories())

	empty := &entities.Venue{}
	assert.Empty(t, empty.Categories())
}

func TestVenue_PrimaryCategory(t *testing.T) {
	v := &entities.Venue{Subtypes: "Club, Bar"}
	assert.Equal(t, "Club", v.PrimaryCategory())

	fallback := &entities.Venue{}
	assert.Equal(t, "Bar", fallback.PrimaryCategory())
}

func TestVenue_PostalPrefix(t *testing.T) {
	assert.Equal(t, "75004", (&entities.Venue{PostalCode: "75004"}).PostalPrefix())
	assert.Equal(t, "75004", (&entities.Venue{PostalCode: "75004 Paris"}).PostalPrefix())
	assert.Equal(t, "", (&entities.Venue{PostalCode: "750"}).PostalPrefix())
	assert.Equal(t, "", (&entities.Venue{}).PostalPrefix())
}

func TestVenue_Marker(t *testing.T) {
	lat, lng := 48.8566, 2.3522
	v := &entities.Venue{
		ID:        "abc",
		Name:      "Le Cox",
		Slug:      "le-cox",
		Subtypes:  "Bar, Club",
		Latitude:  &lat,
		Longitude: &lng,
	}

	marker, ok := v.Marker()
	require.True(t, ok)
	assert.Equal(t, "le-cox", marker.Slug)
	assert.Equal(t, "Bar", marker.Category)
	assert.Equal(t, lat, marker.Latitude)
	assert.Equal(t, lng, marker.Longitude)
}

func TestVenue_MarkerRequiresBothCoordinates(t *testing.T) {
	lat := 48.8566
	v := &entities.Venue{Latitude: &lat}

	_, ok := v.Marker()
	assert.False(t, ok)
}
