package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/project-explorer/backend/internal/api"
	"github.com/project-explorer/backend/internal/config"
	"github.com/project-explorer/backend/internal/dataset"
	"github.com/project-explorer/backend/internal/engine"
	"github.com/project-explorer/backend/internal/enrich"
	"github.com/project-explorer/backend/internal/storage"
)

func main() {
	// Setup Logging
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	entry := logger.WithField("service", "project-explorer-api")

	entry.Info("Starting Project Explorer API Service")

	// 1. Config
	cfg := config.Load()

	// 2. Enrichment (best-effort public API lookups)
	var manager *enrich.Manager
	if cfg.Enrichment.Enabled {
		cache, err := storage.NewFileStorage(cfg.Dataset.CacheDir)
		if err != nil {
			entry.Fatalf("Failed to initialize lookup cache: %v", err)
		}
		defer cache.Close()

		budget := enrich.NewBudget(cfg.Enrichment.RequestsPerSecond, cfg.Enrichment.MaxRequests)
		client := enrich.NewClient(cfg.Enrichment.RequestTimeout, cfg.Enrichment.UserAgent)
		sources := []enrich.Source{
			enrich.NewGitHubSource(budget),
			enrich.NewNPMSource(client, budget),
			enrich.NewPyPISource(client, budget, cfg.Enrichment.UserAgent),
		}
		manager = enrich.NewManager(sources, cache, budget, cfg.Enrichment.RequestTimeout, cfg.Enrichment.CacheTTL, entry)
	}

	// 3. Engine
	eng := engine.NewEngine(cfg, entry, manager)

	// 4. Initial dataset, when one is present on disk
	if _, err := os.Stat(cfg.Dataset.CSVPath); err == nil {
		records, err := dataset.Load(cfg.Dataset.CSVPath)
		if err != nil {
			entry.Fatalf("Failed to load dataset: %v", err)
		}
		if err := eng.Reload(records); err != nil {
			entry.Fatalf("Failed to build similarity index: %v", err)
		}
	} else {
		entry.Warnf("No dataset at %s; waiting for a reload request", cfg.Dataset.CSVPath)
	}

	// 5. API Server
	server := api.NewServer(eng, entry)

	entry.Infof("Project Explorer API ready on %s", cfg.Server.Port)
	if err := server.Start(cfg.Server.Port); err != nil {
		entry.Fatal(err)
	}
}
