package services

import (
	"context"

	"github.com/indastreet/providerdiscovery/internal/domain/entities"
	"github.com/indastreet/providerdiscovery/internal/domain/providers"
	"github.com/indastreet/providerdiscovery/internal/domain/repositories"
	"github.com/indastreet/providerdiscovery/internal/infrastructure/observability"
)

// ProviderService handles business logic for providers
type ProviderService struct {
	repo       repositories.ProviderRepository
	searchRepo repositories.ProviderSearchRepository
	eventBus   providers.EventBus
}

// NewProviderService creates a new provider service. searchRepo and eventBus
// may be nil.
func NewProviderService(
	repo repositories.ProviderRepository,
	searchRepo repositories.ProviderSearchRepository,
	eventBus providers.EventBus,
) *ProviderService {
	return &ProviderService{
		repo:       repo,
		searchRepo: searchRepo,
		eventBus:   eventBus,
	}
}

// Create creates a new provider and indexes it
func (s *ProviderService) Create(ctx context.Context, provider *entities.Provider) error {
	if err := s.repo.Create(ctx, provider); err != nil {
		return err
	}
	s.index(ctx, provider)
	s.publish(ctx, provider, entities.ProviderEventTypeCreated)
	return nil
}

// GetByID retrieves a provider by ID
func (s *ProviderService) GetByID(ctx context.Context, id string) (*entities.Provider, error) {
	return s.repo.GetByID(ctx, id)
}

// Update updates a provider and refreshes its index entry
func (s *ProviderService) Update(ctx context.Context, provider *entities.Provider) error {
	if err := s.repo.Update(ctx, provider); err != nil {
		return err
	}
	s.index(ctx, provider)
	s.publish(ctx, provider, entities.ProviderEventTypeUpdated)
	return nil
}

// Delete deletes a provider and removes it from the index
func (s *ProviderService) Delete(ctx context.Context, id string) error {
	provider, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.searchRepo != nil {
		if err := s.searchRepo.Delete(ctx, id); err != nil {
			observability.LoggerFromContext(ctx).Warn().Err(err).
				Str("provider_id", id).Msg("failed to remove provider from index")
		}
	}
	s.publish(ctx, provider, entities.ProviderEventTypeDeleted)
	return nil
}

// List retrieves providers matching the filter
func (s *ProviderService) List(ctx context.Context, filter repositories.ProviderFilter) ([]*entities.Provider, error) {
	return s.repo.List(ctx, filter)
}

// Search searches providers through the search engine when one is wired,
// falling back to a database scan otherwise.
func (s *ProviderService) Search(ctx context.Context, params repositories.SearchParams) ([]*entities.Provider, error) {
	if s.searchRepo != nil {
		return s.searchRepo.Search(ctx, params)
	}
	return s.repo.List(ctx, repositories.ProviderFilter{
		Type:  params.Type,
		City:  params.City,
		Limit: params.Limit,
	})
}

func (s *ProviderService) index(ctx context.Context, provider *entities.Provider) {
	if s.searchRepo == nil {
		return
	}
	// Eventual consistency: a failed index never fails the write.
	if err := s.searchRepo.Index(ctx, provider); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).
			Str("provider_id", provider.ID).Msg("failed to index provider")
	}
}

func (s *ProviderService) publish(ctx context.Context, provider *entities.Provider, eventType entities.ProviderEventType) {
	if s.eventBus == nil || provider == nil {
		return
	}
	event := entities.NewProviderEvent(provider.ID, eventType, provider.EffectiveCity())
	if err := s.eventBus.Publish(ctx, providers.EventChannelProviderUpdates, event); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).
			Str("provider_id", provider.ID).Msg("failed to publish provider event")
	}
}
