package main

import (
	"net/http"

	"github.com/joho/godotenv"

	"drugdex/m/internal/api"
	"drugdex/m/internal/config"
	"drugdex/m/internal/database"
	"drugdex/m/internal/logger"
	"drugdex/m/internal/migrations"
	"drugdex/m/internal/store"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(logger.Config{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: "drugdex-api",
	})

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal("database connection failed", "error", err)
	}
	defer db.Close()

	migrations.Run(db)

	handler := api.New(store.New(db), cfg.Secret, log)

	log.Info("drugdex API server starting", "port", cfg.HTTPPort)
	if err := http.ListenAndServe(":"+cfg.HTTPPort, handler.Router()); err != nil {
		log.Fatal("server error", "error", err)
	}
}
