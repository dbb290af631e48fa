package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"drugdex/m/internal/config"
	"drugdex/m/internal/database"
	"drugdex/m/internal/logger"
	"drugdex/m/internal/migrations"
	"drugdex/m/internal/seed"
	"drugdex/m/internal/store"
)

// Seeds the drug catalog from a JSON array of raw label documents, replacing
// all prior drugs and FAQs. The whole pass runs in one transaction so an
// aborted run leaves the previous catalog intact.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "drugdex-seed",
	})

	path := cfg.SeedFile
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	docs, err := seed.LoadFile(path)
	if err != nil {
		log.Fatal("unable to load seed input", "error", err)
	}

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal("database connection failed", "error", err)
	}
	defer db.Close()

	migrations.Run(db)

	st := store.New(db)
	reporter := seed.LogReporter{Log: log}

	var summary seed.Summary
	err = st.WithTx(context.Background(), func(tx *store.Tx) error {
		var runErr error
		summary, runErr = seed.Run(context.Background(), tx, reporter, docs)
		return runErr
	})
	if err != nil {
		log.Fatal("seed run aborted", "error", err)
	}

	fmt.Printf("Seeded %d drugs and %d FAQs (%d skipped)\n",
		summary.Drugs, summary.FAQs, summary.Failed)
}
