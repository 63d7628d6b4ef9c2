// Package importer hydrates the venue store from the delimited export that
// the scraping pipeline produces. It is the only writer of venue records;
// the API never mutates them.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/barsgayparis/directory-backend/internal/domain/entities"
	"github.com/barsgayparis/directory-backend/internal/domain/repositories"
	"github.com/barsgayparis/directory-backend/pkg/slug"
)

// batchSize bounds one upsert statement.
const batchSize = 100

// Report summarizes one import run.
type Report struct {
	Imported int
	Dropped  int
}

// Importer reads venue rows from CSV and upserts them keyed on slug.
type Importer struct {
	repo repositories.VenueRepository
}

// New creates a new importer
func New(repo repositories.VenueRepository) *Importer {
	return &Importer{repo: repo}
}

// ImportFile imports the CSV file at path.
func (imp *Importer) ImportFile(ctx context.Context, path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	return imp.ImportReader(ctx, f)
}

// ImportReader imports CSV rows from r. Rows with no name and rows whose
// slug duplicates an earlier row in the same run are dropped with a log,
// never an error. Numeric fields that fail to parse degrade to unset.
func (imp *Importer) ImportReader(ctx context.Context, r io.Reader) (*Report, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	report := &Report{}
	seen := map[string]bool{}
	batch := make([]*entities.Venue, 0, batchSize)

	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row %d: %w", line, err)
		}

		row := rowReader{columns: columns, record: record}

		name := strings.TrimSpace(row.get("name"))
		if name == "" {
			log.Warn().Int("line", line).Msg("dropping row without a name")
			report.Dropped++
			continue
		}

		venueSlug := slug.Make(name)
		if venueSlug == "" {
			venueSlug = fallbackSlug(seen)
		} else if seen[venueSlug] {
			log.Warn().Int("line", line).Str("slug", venueSlug).Msg("dropping duplicate slug within batch")
			report.Dropped++
			continue
		}
		seen[venueSlug] = true

		venue := buildVenue(row, name, venueSlug, line)
		batch = append(batch, venue)
		report.Imported++

		if len(batch) == batchSize {
			if err := imp.repo.UpsertBatch(ctx, batch); err != nil {
				return nil, err
			}
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		if err := imp.repo.UpsertBatch(ctx, batch); err != nil {
			return nil, err
		}
	}

	log.Info().Int("imported", report.Imported).Int("dropped", report.Dropped).Msg("import finished")
	return report, nil
}

func buildVenue(row rowReader, name, venueSlug string, line int) *entities.Venue {
	now := time.Now().UTC()

	venue := &entities.Venue{
		ID:           uuid.New().String(),
		Name:         name,
		Slug:         venueSlug,
		Street:       strings.TrimSpace(row.get("street")),
		PostalCode:   strings.TrimSpace(row.get("postal_code")),
		FullAddress:  strings.TrimSpace(row.get("full_address")),
		Subtypes:     strings.TrimSpace(row.get("subtypes")),
		Phone:        strings.TrimSpace(row.get("phone")),
		Website:      strings.TrimSpace(row.get("site")),
		Email:        strings.TrimSpace(row.get("email_1")),
		Facebook:     strings.TrimSpace(row.get("facebook")),
		Instagram:    strings.TrimSpace(row.get("instagram")),
		WorkingHours: strings.TrimSpace(row.get("working_hours")),
		About:        strings.TrimSpace(row.get("about")),
		Description:  strings.TrimSpace(row.get("description")),
		Photo:        strings.TrimSpace(row.get("photo")),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	venue.Latitude = row.getFloat("latitude", line)
	venue.Longitude = row.getFloat("longitude", line)
	venue.Rating = row.getFloat("rating", line)

	if reviews := strings.TrimSpace(row.get("reviews")); reviews != "" {
		if n, err := strconv.Atoi(reviews); err == nil {
			venue.Reviews = n
		} else {
			log.Debug().Int("line", line).Str("value", reviews).Msg("unparseable review count, keeping zero")
		}
	}

	venue.SeoDescription = seoDescription(venue, strings.TrimSpace(row.get("type")))
	return venue
}

// fallbackSlug produces the randomized placeholder used when slugification
// yields nothing, suffixing until unique within the run.
func fallbackSlug(seen map[string]bool) string {
	base := "venue-" + uuid.New().String()[:8]
	candidate := base
	for n := 2; seen[candidate]; n++ {
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
	return candidate
}

// seoDescription derives the meta description, capped at 160 characters on a
// word boundary.
func seoDescription(v *entities.Venue, venueType string) string {
	if venueType == "" {
		venueType = "établissement"
	}

	location := "à Paris"
	if label := slug.ArrondissementLabel(v.PostalCode); label != "" {
		location = "dans le " + strings.Replace(label, " Arrondissement", " arrondissement", 1)
	}

	desc := fmt.Sprintf("%s est un %s gay situé %s", v.Name, strings.ToLower(venueType), location)
	if v.Street != "" {
		desc += " au " + v.Street
	}
	if v.Subtypes != "" {
		desc += fmt.Sprintf(". %s propose %s", v.Name, strings.ToLower(v.Subtypes))
	}
	if v.Description != "" {
		desc += ". " + v.Description
	}

	return slug.Truncate(desc, 160)
}

type rowReader struct {
	columns map[string]int
	record  []string
}

func (r rowReader) get(column string) string {
	idx, ok := r.columns[column]
	if !ok || idx >= len(r.record) {
		return ""
	}
	return r.record[idx]
}

func (r rowReader) getFloat(column string, line int) *float64 {
	raw := strings.TrimSpace(r.get(column))
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Debug().Int("line", line).Str("column", column).Str("value", raw).Msg("unparseable numeric field, keeping unset")
		return nil
	}
	return &f
}
