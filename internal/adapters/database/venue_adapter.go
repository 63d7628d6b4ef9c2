package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/barsgayparis/directory-backend/internal/domain/entities"
	"github.com/barsgayparis/directory-backend/internal/domain/repositories"
	"github.com/barsgayparis/directory-backend/internal/infrastructure/clients/postgres"
	"github.com/barsgayparis/directory-backend/internal/infrastructure/observability"
	apperrors "github.com/barsgayparis/directory-backend/pkg/errors"
)

// defaultListLimit caps unlimited List calls; the listing composer passes its
// own high ceiling explicitly.
const defaultListLimit = 100

var venueColumns = []interface{}{
	"id", "name", "slug", "street", "postal_code", "full_address",
	"latitude", "longitude", "subtypes", "rating", "reviews",
	"phone", "website", "email", "facebook", "instagram",
	"working_hours", "about", "description", "seo_description", "photo",
	"created_at", "updated_at",
}

// VenueAdapter implements the VenueRepository interface over the hosted
// venues table
type VenueAdapter struct {
	client  *postgres.Client
	db      *goqu.Database
	metrics *observability.Metrics
}

// NewVenueAdapter creates a new venue adapter
func NewVenueAdapter(client *postgres.Client) repositories.VenueRepository {
	return &VenueAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// NewVenueAdapterWithMetrics creates a venue adapter that records query
// durations
func NewVenueAdapterWithMetrics(client *postgres.Client, metrics *observability.Metrics) repositories.VenueRepository {
	return &VenueAdapter{
		client:  client,
		db:      goqu.New("postgres", client.DB()),
		metrics: metrics,
	}
}

func (a *VenueAdapter) selectVenues() *goqu.SelectDataset {
	return a.db.Select(venueColumns...).From("venues")
}

// List retrieves venues matching the optional filters, sorted by name
func (a *VenueAdapter) List(ctx context.Context, filter repositories.VenueFilter) ([]*entities.Venue, error) {
	ds := a.selectVenues()

	if filter.Neighborhood != "" {
		ds = ds.Where(goqu.C("postal_code").ILike("%" + filter.Neighborhood + "%"))
	}
	if filter.Category != "" {
		ds = ds.Where(goqu.C("subtypes").ILike("%" + filter.Category + "%"))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	ds = ds.Order(goqu.I("name").Asc()).Limit(uint(limit))

	return a.queryVenues(ctx, ds, "list", "failed to list venues")
}

// ListAll retrieves the full venue collection sorted by name
func (a *VenueAdapter) ListAll(ctx context.Context) ([]*entities.Venue, error) {
	ds := a.selectVenues().Order(goqu.I("name").Asc())
	return a.queryVenues(ctx, ds, "list_all", "failed to scan venue collection")
}

// GetBySlug retrieves a single venue by slug
func (a *VenueAdapter) GetBySlug(ctx context.Context, slug string) (*entities.Venue, error) {
	query, args, err := a.selectVenues().Where(goqu.Ex{"slug": slug}).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	start := time.Now()
	row := a.client.DB().QueryRowContext(ctx, query, args...)
	venue, err := scanVenue(row)
	observability.RecordStoreMetric(ctx, a.metrics, "get_by_slug", time.Since(start))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("venue with slug %s not found", slug))
	}
	if err != nil {
		return nil, apperrors.NewRetrievalError("failed to get venue", err)
	}

	return venue, nil
}

// Search matches query as a case-insensitive substring of name, full address
// or postal code
func (a *VenueAdapter) Search(ctx context.Context, query string, limit int) ([]*entities.Venue, error) {
	pattern := "%" + query + "%"

	ds := a.selectVenues().
		Where(goqu.Or(
			goqu.C("name").ILike(pattern),
			goqu.C("full_address").ILike(pattern),
			goqu.C("postal_code").ILike(pattern),
		)).
		Order(goqu.I("name").Asc()).
		Limit(uint(limit))

	return a.queryVenues(ctx, ds, "search", "failed to search venues")
}

// Similar selects venues sharing a category token with the target, refined
// by postal prefix when both are present; postal prefix alone is the
// fallback when the target carries no category tokens.
func (a *VenueAdapter) Similar(ctx context.Context, params repositories.SimilarParams) ([]*entities.Venue, error) {
	ds := a.selectVenues().Where(goqu.C("id").Neq(params.ExcludeID))

	if len(params.Categories) > 0 {
		conditions := make([]exp.Expression, 0, len(params.Categories))
		for _, category := range params.Categories {
			conditions = append(conditions, goqu.C("subtypes").ILike("%"+category+"%"))
		}
		ds = ds.Where(goqu.Or(conditions...))

		if params.PostalPrefix != "" {
			ds = ds.Where(goqu.C("postal_code").ILike("%" + params.PostalPrefix + "%"))
		}
	} else if params.PostalPrefix != "" {
		ds = ds.Where(goqu.C("postal_code").ILike("%" + params.PostalPrefix + "%"))
	}

	ds = ds.Order(goqu.I("name").Asc()).Limit(uint(params.Limit))

	return a.queryVenues(ctx, ds, "similar", "failed to select similar venues")
}

// UpsertBatch inserts or updates venues keyed on slug. Only the import path
// writes; created_at is preserved on conflict.
func (a *VenueAdapter) UpsertBatch(ctx context.Context, venues []*entities.Venue) error {
	if len(venues) == 0 {
		return nil
	}

	rows := make([]interface{}, 0, len(venues))
	for _, v := range venues {
		rows = append(rows, goqu.Record{
			"id":              v.ID,
			"name":            v.Name,
			"slug":            v.Slug,
			"street":          sql.NullString{String: v.Street, Valid: v.Street != ""},
			"postal_code":     sql.NullString{String: v.PostalCode, Valid: v.PostalCode != ""},
			"full_address":    sql.NullString{String: v.FullAddress, Valid: v.FullAddress != ""},
			"latitude":        nullFloat(v.Latitude),
			"longitude":       nullFloat(v.Longitude),
			"subtypes":        sql.NullString{String: v.Subtypes, Valid: v.Subtypes != ""},
			"rating":          nullFloat(v.Rating),
			"reviews":         v.Reviews,
			"phone":           sql.NullString{String: v.Phone, Valid: v.Phone != ""},
			"website":         sql.NullString{String: v.Website, Valid: v.Website != ""},
			"email":           sql.NullString{String: v.Email, Valid: v.Email != ""},
			"facebook":        sql.NullString{String: v.Facebook, Valid: v.Facebook != ""},
			"instagram":       sql.NullString{String: v.Instagram, Valid: v.Instagram != ""},
			"working_hours":   sql.NullString{String: v.WorkingHours, Valid: v.WorkingHours != ""},
			"about":           sql.NullString{String: v.About, Valid: v.About != ""},
			"description":     sql.NullString{String: v.Description, Valid: v.Description != ""},
			"seo_description": sql.NullString{String: v.SeoDescription, Valid: v.SeoDescription != ""},
			"photo":           sql.NullString{String: v.Photo, Valid: v.Photo != ""},
			"created_at":      v.CreatedAt,
			"updated_at":      v.UpdatedAt,
		})
	}

	update := goqu.Record{}
	for _, col := range []string{
		"name", "street", "postal_code", "full_address", "latitude",
		"longitude", "subtypes", "rating", "reviews", "phone", "website",
		"email", "facebook", "instagram", "working_hours", "about",
		"description", "seo_description", "photo", "updated_at",
	} {
		update[col] = goqu.L("excluded." + col)
	}

	query, args, err := a.db.Insert("venues").
		Rows(rows...).
		OnConflict(goqu.DoUpdate("slug", update)).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build upsert query", err)
	}

	start := time.Now()
	_, err = a.client.DB().ExecContext(ctx, query, args...)
	observability.RecordStoreMetric(ctx, a.metrics, "upsert_batch", time.Since(start))
	if err != nil {
		return apperrors.NewRetrievalError("failed to upsert venues", err)
	}

	return nil
}

func (a *VenueAdapter) queryVenues(ctx context.Context, ds *goqu.SelectDataset, operation, failMsg string) ([]*entities.Venue, error) {
	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	start := time.Now()
	defer func() {
		observability.RecordStoreMetric(ctx, a.metrics, operation, time.Since(start))
	}()

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewRetrievalError(failMsg, err)
	}
	defer rows.Close()

	venues := []*entities.Venue{}
	for rows.Next() {
		venue, err := scanVenue(rows)
		if err != nil {
			return nil, apperrors.NewRetrievalError("failed to scan venue row", err)
		}
		venues = append(venues, venue)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewRetrievalError("error iterating venues", err)
	}

	return venues, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanVenue(row rowScanner) (*entities.Venue, error) {
	venue := &entities.Venue{}
	var (
		street, postalCode, fullAddress, subtypes     sql.NullString
		phone, website, email, facebook, instagram    sql.NullString
		workingHours, about, description, seoDesc     sql.NullString
		photo                                         sql.NullString
		latitude, longitude, rating                   sql.NullFloat64
	)

	err := row.Scan(
		&venue.ID,
		&venue.Name,
		&venue.Slug,
		&street,
		&postalCode,
		&fullAddress,
		&latitude,
		&longitude,
		&subtypes,
		&rating,
		&venue.Reviews,
		&phone,
		&website,
		&email,
		&facebook,
		&instagram,
		&workingHours,
		&about,
		&description,
		&seoDesc,
		&photo,
		&venue.CreatedAt,
		&venue.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	venue.Street = street.String
	venue.PostalCode = postalCode.String
	venue.FullAddress = fullAddress.String
	venue.Subtypes = subtypes.String
	venue.Phone = phone.String
	venue.Website = website.String
	venue.Email = email.String
	venue.Facebook = facebook.String
	venue.Instagram = instagram.String
	venue.WorkingHours = workingHours.String
	venue.About = about.String
	venue.Description = description.String
	venue.SeoDescription = seoDesc.String
	venue.Photo = photo.String

	if latitude.Valid {
		venue.Latitude = &latitude.Float64
	}
	if longitude.Valid {
		venue.Longitude = &longitude.Float64
	}
	if rating.Valid {
		venue.Rating = &rating.Float64
	}

	return venue, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
