package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/indastreet/providerdiscovery/internal/adapters/database"
	"github.com/indastreet/providerdiscovery/internal/adapters/search"
	"github.com/indastreet/providerdiscovery/internal/domain/repositories"
	"github.com/indastreet/providerdiscovery/internal/infrastructure/clients/postgres"
	"github.com/indastreet/providerdiscovery/internal/infrastructure/clients/typesense"
	"github.com/indastreet/providerdiscovery/internal/infrastructure/observability"
	"github.com/indastreet/providerdiscovery/pkg/config"
)

const indexBatchSize = 200

func main() {
	var reset bool
	var intervalFlag string
	flag.BoolVar(&reset, "reset", false, "delete existing Typesense collection before reindexing")
	flag.StringVar(&intervalFlag, "interval", "", "repeat interval for reindexing (e.g. 6h, 30m)")
	flag.Parse()

	observability.InitLogger("provider-discovery-indexer", os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))
	logger := observability.GetLogger()

	intervalValue := strings.TrimSpace(intervalFlag)
	if intervalValue == "" {
		intervalValue = strings.TrimSpace(os.Getenv("REINDEX_INTERVAL"))
	}

	var interval time.Duration
	if intervalValue != "" {
		parsed, err := time.ParseDuration(intervalValue)
		if err != nil {
			logger.Fatal().Err(err).Str("interval", intervalValue).Msg("invalid interval")
		}
		if parsed <= 0 {
			logger.Fatal().Msg("interval must be greater than zero")
		}
		interval = parsed
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		if err := indexOnce(ctx, reset); err != nil {
			logger.Warn().Err(err).Msg("reindex failed")
		}

		if interval <= 0 {
			break
		}

		reset = false
		logger.Info().Dur("next_run_in", interval).Msg("reindex complete")

		select {
		case <-ctx.Done():
			logger.Info().Msg("reindexer shutting down")
			return
		case <-time.After(interval):
		}
	}
}

func indexOnce(ctx context.Context, reset bool) error {
	logger := observability.GetLogger()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		return err
	}
	defer pgClient.Close()

	tsClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		return err
	}

	if reset {
		if _, err := tsClient.Client().Collection("providers").Delete(ctx); err != nil {
			logger.Warn().Err(err).Msg("failed to delete collection, may not exist yet")
		}
	}

	adapter := search.NewTypesenseAdapter(tsClient)
	if err := adapter.InitSchema(ctx); err != nil {
		return err
	}

	repo := database.NewProviderAdapter(pgClient)

	indexed := 0
	failed := 0
	offset := 0
	for {
		providers, err := repo.List(ctx, repositories.ProviderFilter{
			Limit:  indexBatchSize,
			Offset: offset,
		})
		if err != nil {
			return err
		}
		if len(providers) == 0 {
			break
		}

		for _, provider := range providers {
			if err := adapter.Index(ctx, provider); err != nil {
				failed++
				logger.Warn().Err(err).Str("provider_id", provider.ID).Msg("failed to index provider")
				continue
			}
			indexed++
		}

		offset += len(providers)
	}

	logger.Info().Int("indexed", indexed).Int("failed", failed).Msg("reindex pass finished")
	return nil
}
