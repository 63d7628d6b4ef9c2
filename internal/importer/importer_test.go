package importer_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/barsgayparis/directory-backend/internal/domain/entities"
	"github.com/barsgayparis/directory-backend/internal/domain/repositories"
	"github.com/barsgayparis/directory-backend/internal/importer"
)

type captureRepo struct {
	batches [][]*entities.Venue
	err     error
}

func (c *captureRepo) List(ctx context.Context, filter repositories.VenueFilter) ([]*entities.Venue, error) {
	return nil, nil
}

func (c *captureRepo) ListAll(ctx context.Context) ([]*entities.Venue, error) { return nil, nil }

func (c *captureRepo) GetBySlug(ctx context.Context, slug string) (*entities.Venue, error) {
	return nil, nil
}

func (c *captureRepo) Search(ctx context.Context, query string, limit int) ([]*entities.Venue, error) {
	return nil, nil
}

func (c *captureRepo) Similar(ctx context.Context, params repositories.SimilarParams) ([]*entities.Venue, error) {
	return nil, nil
}

func (c *captureRepo) UpsertBatch(ctx context.Context, venues []*entities.Venue) error {
	if c.err != nil {
		return c.err
	}
	c.batches = append(c.batches, venues)
	return nil
}

func (c *captureRepo) all() []*entities.Venue {
	var out []*entities.Venue
	for _, b := range c.batches {
		out = append(out, b...)
	}
	return out
}

const csvHeader = "name,site,subtypes,type,phone,full_address,street,postal_code,latitude,longitude,rating,reviews,photo,working_hours,about,description,email_1,facebook,instagram\n"

func TestImporter_ImportsRows(t *testing.T) {
	csv := csvHeader +
		`Le Cox,https://cox.fr,"Bar, Club",Bar,+33142720800,"15 Rue des Archives, 75004 Paris",15 Rue des Archives,75004,48.8587,2.3540,4.5,1200,photo.jpg,,,Institution du Marais,contact@cox.fr,,` + "\n"

	repo := &captureRepo{}
	report, err := importer.New(repo).ImportReader(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 1, report.Imported)
	assert.Equal(t, 0, report.Dropped)

	venues := repo.all()
	require.Len(t, venues, 1)

	v := venues[0]
	assert.NotEmpty(t, v.ID)
	assert.Equal(t, "Le Cox", v.Name)
	assert.Equal(t, "le-cox", v.Slug)
	assert.Equal(t, "75004", v.PostalCode)
	assert.Equal(t, "Bar, Club", v.Subtypes)
	require.NotNil(t, v.Latitude)
	assert.InDelta(t, 48.8587, *v.Latitude, 0.0001)
	require.NotNil(t, v.Rating)
	assert.InDelta(t, 4.5, *v.Rating, 0.0001)
	assert.Equal(t, 1200, v.Reviews)
	assert.False(t, v.CreatedAt.IsZero())

	assert.LessOrEqual(t, len(v.SeoDescription), 160)
	assert.Contains(t, v.SeoDescription, "Le Cox")
	assert.Contains(t, v.SeoDescription, "4ème arrondissement")
}

func TestImporter_DropsNamelessAndDuplicateRows(t *testing.T) {
	csv := csvHeader +
		"Le Cox,,Bar,,,,,75004,,,,,,,,,,,\n" +
		",,Bar,,,,,75004,,,,,,,,,,,\n" +
		"Le Cox,,Club,,,,,75001,,,,,,,,,,,\n"

	repo := &captureRepo{}
	report, err := importer.New(repo).ImportReader(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 1, report.Imported)
	assert.Equal(t, 2, report.Dropped)
	require.Len(t, repo.all(), 1)
	assert.Equal(t, "Bar", repo.all()[0].Subtypes)
}

func TestImporter_FallbackSlugWhenNothingSurvives(t *testing.T) {
	csv := csvHeader +
		"!!!,,Bar,,,,,75004,,,,,,,,,,,\n"

	repo := &captureRepo{}
	report, err := importer.New(repo).ImportReader(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 1, report.Imported)
	venues := repo.all()
	require.Len(t, venues, 1)
	assert.True(t, strings.HasPrefix(venues[0].Slug, "venue-"))
	assert.Greater(t, len(venues[0].Slug), len("venue-"))
}

func TestImporter_BadNumericsDegradeToUnset(t *testing.T) {
	csv := csvHeader +
		"Raidd Bar,,Bar,,,,,75003,not-a-float,2.35,n/a,many,,,,,,,\n"

	repo := &captureRepo{}
	report, err := importer.New(repo).ImportReader(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 1, report.Imported)
	v := repo.all()[0]
	assert.Nil(t, v.Latitude)
	require.NotNil(t, v.Longitude)
	assert.Nil(t, v.Rating)
	assert.Equal(t, 0, v.Reviews)
}

func TestImporter_MissingHeaderFails(t *testing.T) {
	repo := &captureRepo{}
	_, err := importer.New(repo).ImportReader(context.Background(), strings.NewReader(""))
	assert.Error(t, err)
}

func TestImporter_ShortRowsTolerated(t *testing.T) {
	csv := csvHeader + "Le Duplex,https://duplex.fr,Bar\n"

	repo := &captureRepo{}
	report, err := importer.New(repo).ImportReader(context.Background(), strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, 1, report.Imported)
	v := repo.all()[0]
	assert.Equal(t, "le-duplex", v.Slug)
	assert.Equal(t, "", v.PostalCode)
}
