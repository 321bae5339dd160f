package services

import (
	"context"
	"fmt"

	"github.com/indastreet/providerdiscovery/internal/domain/entities"
	"github.com/indastreet/providerdiscovery/internal/domain/providers"
	"github.com/indastreet/providerdiscovery/internal/domain/repositories"
	"github.com/indastreet/providerdiscovery/internal/infrastructure/clients/providerapi"
	"github.com/indastreet/providerdiscovery/internal/infrastructure/observability"
)

// IngestionSummary reports what one sync pass did.
type IngestionSummary struct {
	RecordsProcessed int `json:"records_processed"`
	ProvidersCreated int `json:"providers_created"`
	ProvidersUpdated int `json:"providers_updated"`
	RecordsSkipped   int `json:"records_skipped"`
	IndexErrors      int `json:"index_errors"`
}

// ProviderIngestionService hydrates the raw provider feed into core storage.
// It is the single place where loose upstream records become strict
// Provider entities.
type ProviderIngestionService struct {
	client            providerapi.Client
	repo              repositories.ProviderRepository
	searchRepo        repositories.ProviderSearchRepository
	eventBus          providers.EventBus
	cityMatchRadiusKm float64
	pageSize          int
}

// NewProviderIngestionService creates a new ingestion service. searchRepo
// and eventBus may be nil; indexing and event publishing are skipped then.
func NewProviderIngestionService(
	client providerapi.Client,
	repo repositories.ProviderRepository,
	searchRepo repositories.ProviderSearchRepository,
	eventBus providers.EventBus,
	cityMatchRadiusKm float64,
	pageSize int,
) *ProviderIngestionService {
	if pageSize <= 0 {
		pageSize = 500
	}
	if cityMatchRadiusKm <= 0 {
		cityMatchRadiusKm = 25
	}
	return &ProviderIngestionService{
		client:            client,
		repo:              repo,
		searchRepo:        searchRepo,
		eventBus:          eventBus,
		cityMatchRadiusKm: cityMatchRadiusKm,
		pageSize:          pageSize,
	}
}

// Sync pulls the full provider feed, normalizes every record, and upserts it
// into storage. A sync_complete event fires at the end so cached feeds get
// invalidated.
func (s *ProviderIngestionService) Sync(ctx context.Context) (*IngestionSummary, error) {
	if s.client == nil {
		return nil, fmt.Errorf("provider feed client not configured")
	}

	logger := observability.LoggerFromContext(ctx)
	summary := &IngestionSummary{}
	offset := 0

	for {
		resp, err := s.client.GetProviders(ctx, providerapi.FeedRequest{
			Limit:  s.pageSize,
			Offset: offset,
		})
		if err != nil {
			return summary, fmt.Errorf("feed page at offset %d: %w", offset, err)
		}
		if len(resp.Data) == 0 {
			break
		}

		for _, record := range resp.Data {
			summary.RecordsProcessed++

			provider := NormalizeProvider(record, s.cityMatchRadiusKm)
			if provider.Name == "" {
				summary.RecordsSkipped++
				continue
			}

			created, err := s.repo.Upsert(ctx, provider)
			if err != nil {
				return summary, fmt.Errorf("upsert provider %s: %w", provider.ID, err)
			}
			if created {
				summary.ProvidersCreated++
			} else {
				summary.ProvidersUpdated++
			}

			if s.searchRepo != nil {
				if err := s.searchRepo.Index(ctx, provider); err != nil {
					summary.IndexErrors++
					logger.Warn().Err(err).Str("provider_id", provider.ID).Msg("failed to index provider")
				}
			}
		}

		offset += len(resp.Data)
		if !resp.HasMore {
			break
		}
	}

	if s.eventBus != nil {
		event := entities.NewProviderEvent("", entities.ProviderEventTypeSyncComplete, "")
		if err := s.eventBus.Publish(ctx, providers.EventChannelProviderUpdates, event); err != nil {
			logger.Warn().Err(err).Msg("failed to publish sync event")
		}
	}

	logger.Info().
		Int("processed", summary.RecordsProcessed).
		Int("created", summary.ProvidersCreated).
		Int("updated", summary.ProvidersUpdated).
		Int("skipped", summary.RecordsSkipped).
		Msg("provider feed sync complete")

	return summary, nil
}
