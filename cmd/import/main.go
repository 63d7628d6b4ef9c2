package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/barsgayparis/directory-backend/internal/adapters/database"
	"github.com/barsgayparis/directory-backend/internal/importer"
	"github.com/barsgayparis/directory-backend/internal/infrastructure/clients/postgres"
	"github.com/barsgayparis/directory-backend/internal/infrastructure/observability"
	"github.com/barsgayparis/directory-backend/pkg/config"
)

func main() {
	var (
		csvPath = flag.String("csv", "", "path to the venue CSV export")
		timeout = flag.Duration("timeout", 5*time.Minute, "overall import timeout")
	)
	flag.Parse()

	if *csvPath == "" {
		fmt.Fprintln(os.Stderr, "usage: import -csv <file> [-timeout <duration>]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger("directory-import", cfg.Server.Env)

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	venueRepo := database.NewVenueAdapter(pgClient)

	report, err := importer.New(venueRepo).ImportFile(ctx, *csvPath)
	if err != nil {
		log.Fatal().Err(err).Msg("import failed")
	}

	log.Info().
		Int("imported", report.Imported).
		Int("dropped", report.Dropped).
		Msg("import complete")
}
