package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barsgayparis/directory-backend/internal/domain/entities"
)

func TestParseOpeningHours_Empty(t *testing.T) {
	hours := entities.ParseOpeningHours("   ")
	assert.Equal(t, entities.BlobUnset, hours.Kind)
	assert.Empty(t, hours.Ordered())
}

func TestParseOpeningHours_Structured(t *testing.T) {
	raw := `{"Sunday":"2PM-2AM","Monday":"6PM-2AM","Friday":"6PM-4AM"}`

	hours := entities.ParseOpeningHours(raw)
	require.Equal(t, entities.BlobStructured, hours.Kind)

	ordered := hours.Ordered()
	require.Len(t, ordered, 3)
	assert.Equal(t, [2]string{"Monday", "6PM-2AM"}, ordered[0])
	assert.Equal(t, [2]string{"Friday", "6PM-4AM"}, ordered[1])
	assert.Equal(t, [2]string{"Sunday", "2PM-2AM"}, ordered[2])
}

func TestParseOpeningHours_MalformedDegradesToRawText(t *testing.T) {
	for _, raw := range []string{
		"open every evening from 6",
		`{"Monday": broken`,
		`["not","an","object"]`,
	} {
		hours := entities.ParseOpeningHours(raw)
		assert.Equal(t, entities.BlobRawText, hours.Kind, "raw %q", raw)
		assert.Equal(t, raw, hours.Raw)
		assert.Empty(t, hours.Ordered())
	}
}

func TestParseAmenities_KeepsOnlyEnabledFeatures(t *testing.T) {
	raw := `{"Ambiance":{"Cosy":true,"Bruyant":false},"Services":{"Terrasse":true,"Vestiaire":true}}`

	amenities := entities.ParseAmenities(raw)
	require.Equal(t, entities.BlobStructured, amenities.Kind)

	assert.Equal(t, []string{"Cosy"}, amenities.Groups["Ambiance"])
	assert.Equal(t, []string{"Terrasse", "Vestiaire"}, amenities.Groups["Services"])
}

func TestParseAmenities_AllDisabledDegradesToRawText(t *testing.T) {
	raw := `{"Ambiance":{"Cosy":false}}`

	amenities := entities.ParseAmenities(raw)
	assert.Equal(t, entities.BlobRawText, amenities.Kind)
	assert.Equal(t, raw, amenities.Raw)
}

func TestParseAmenities_Empty(t *testing.T) {
	amenities := entities.ParseAmenities("")
	assert.Equal(t, entities.BlobUnset, amenities.Kind)
}
