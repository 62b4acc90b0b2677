package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/api"
	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/config"
	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/database"
	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/dataset"
	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/handler"
	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/ogd"
	"github.com/rederlechner/verkehrsdatenanalyse-rosengartenstrasse/internal/service"
)

func main() {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	if err := database.Migrate(database.GetDB()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	store := dataset.NewStore(database.GetDB())
	client := ogd.NewClient(cfg.OGDBaseURL, cfg.FetchTimeout)
	loader := dataset.NewLoader(client, store)

	if _, err := loader.Warm(); err != nil {
		log.Printf("Warning: could not warm dataset from cache: %v", err)
	}

	stationSvc, err := service.NewStationService(cfg.MetadataPath)
	if err != nil {
		log.Fatalf("Failed to load station metadata: %v", err)
	}

	handlers := api.Handlers{
		Analytics: handler.NewAnalyticsHandler(service.NewAnalyticsService(loader)),
		Dataset:   handler.NewDatasetHandler(service.NewDatasetService(loader, cfg.Years)),
		Station:   handler.NewStationHandler(stationSvc),
	}

	router := api.SetupRouter(cfg, handlers)

	log.Printf("Server starting on %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
