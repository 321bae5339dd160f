package services

import (
	"context"
	"fmt"
	"time"

	"github.com/indastreet/providerdiscovery/internal/domain/entities"
	"github.com/indastreet/providerdiscovery/internal/domain/providers"
	"github.com/indastreet/providerdiscovery/internal/infrastructure/observability"
)

// CacheInvalidationService drops cached home feeds when the provider dataset
// changes. This is the server-side half of the "recompute on input change"
// model: a provider update invalidates every feed it could have appeared in.
type CacheInvalidationService struct {
	cache    providers.CacheProvider
	eventBus providers.EventBus
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewCacheInvalidationService creates a new cache invalidation service
func NewCacheInvalidationService(cache providers.CacheProvider, eventBus providers.EventBus) *CacheInvalidationService {
	ctx, cancel := context.WithCancel(context.Background())
	return &CacheInvalidationService{
		cache:    cache,
		eventBus: eventBus,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start begins listening for provider events
func (s *CacheInvalidationService) Start() error {
	eventChan, err := s.eventBus.Subscribe(s.ctx, providers.EventChannelProviderUpdates)
	if err != nil {
		return fmt.Errorf("failed to subscribe to provider updates: %w", err)
	}

	go s.processEvents(eventChan)
	observability.GetLogger().Info().Msg("cache invalidation service started")
	return nil
}

// Stop stops the cache invalidation service
func (s *CacheInvalidationService) Stop() {
	s.cancel()
	observability.GetLogger().Info().Msg("cache invalidation service stopped")
}

func (s *CacheInvalidationService) processEvents(eventChan <-chan *entities.ProviderEvent) {
	for {
		select {
		case <-s.ctx.Done():
			return
		case event := <-eventChan:
			if event == nil {
				continue
			}
			s.handleEvent(event)
		}
	}
}

func (s *CacheInvalidationService) handleEvent(event *entities.ProviderEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger := observability.GetLogger()

	pattern := HomeFeedCachePrefix + "*"
	if event.City != "" && event.EventType != entities.ProviderEventTypeSyncComplete {
		// City-scoped change: only feeds for that city (and the unscoped
		// "all" feeds) can be stale.
		pattern = fmt.Sprintf("%s%s:*", HomeFeedCachePrefix, event.City)
		if err := s.cache.DeletePattern(ctx, HomeFeedCachePrefix+CityAll+":*"); err != nil {
			logger.Warn().Err(err).Msg("failed to invalidate all-city feed cache")
		}
	}

	if err := s.cache.DeletePattern(ctx, pattern); err != nil {
		logger.Warn().Err(err).Str("event_id", event.ID).Msg("failed to invalidate feed cache")
		return
	}
	logger.Debug().
		Str("event_id", event.ID).
		Str("event_type", string(event.EventType)).
		Str("pattern", pattern).
		Msg("invalidated feed cache")
}
