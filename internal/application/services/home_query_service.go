package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/indastreet/providerdiscovery/internal/domain/entities"
	"github.com/indastreet/providerdiscovery/internal/domain/providers"
	"github.com/indastreet/providerdiscovery/internal/domain/repositories"
	"github.com/indastreet/providerdiscovery/internal/infrastructure/observability"
	"github.com/indastreet/providerdiscovery/pkg/config"
)

// HomeFeedCachePrefix namespaces cached feed responses. Keys are
// homefeed:<city>:<selection hash> so city-scoped invalidation can use a
// single pattern delete.
const HomeFeedCachePrefix = "homefeed:"

// HomeQueryService is the cached read path for the home feed. It loads the
// provider dataset, runs the feed pipeline, and caches the rendered result.
// The cache is best-effort: every cache failure degrades to a live compute.
type HomeQueryService struct {
	repo    repositories.ProviderRepository
	feed    *HomeFeedService
	cache   providers.CacheProvider
	cfg     config.PipelineConfig
	newRand func() *rand.Rand
	nowFunc func() time.Time
}

// NewHomeQueryService creates a new home query service. cache may be nil, in
// which case every request computes the feed from storage.
func NewHomeQueryService(
	repo repositories.ProviderRepository,
	feed *HomeFeedService,
	cache providers.CacheProvider,
	cfg config.PipelineConfig,
) *HomeQueryService {
	return &HomeQueryService{
		repo:  repo,
		feed:  feed,
		cache: cache,
		cfg:   cfg,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
		nowFunc: time.Now,
	}
}

// GetHomeFeed returns the feed for a selection, serving from cache when the
// user has no live location. Located requests bypass the cache because the
// distance annotations are unique to the caller's coordinates.
func (s *HomeQueryService) GetHomeFeed(
	ctx context.Context,
	selection entities.FeedSelection,
	userLocation *entities.Coordinates,
) (*entities.HomeFeed, error) {
	logger := observability.LoggerFromContext(ctx)
	cacheable := s.cache != nil && userLocation == nil
	key := s.cacheKey(selection)

	if cacheable {
		if data, err := s.cache.Get(ctx, key); err == nil && data != nil {
			var cached entities.HomeFeed
			if unmarshalErr := json.Unmarshal(data, &cached); unmarshalErr != nil {
				logger.Warn().Err(unmarshalErr).Str("key", key).Msg("discarding corrupt cached feed")
			} else {
				observability.RecordCacheHit(ctx, "home_feed")
				return &cached, nil
			}
		}
		observability.RecordCacheMiss(ctx, "home_feed")
	}

	all, err := s.repo.List(ctx, repositories.ProviderFilter{})
	if err != nil {
		return nil, fmt.Errorf("load providers: %w", err)
	}

	feed := s.feed.Build(all, userLocation, selection, s.nowFunc(), s.newRand())
	observability.RecordFeedBuild(ctx, strings.ToLower(strings.TrimSpace(selection.City)), feed.ShowcaseUsed)

	if cacheable {
		if data, err := json.Marshal(feed); err == nil {
			if err := s.cache.Set(ctx, key, data, s.cfg.FeedCacheTTLSeconds); err != nil {
				logger.Warn().Err(err).Str("key", key).Msg("failed to cache feed")
			}
		}
	}

	return feed, nil
}

// DetectCity resolves coordinates to the nearest catalog city within the
// auto-detect radius.
func (s *HomeQueryService) DetectCity(point entities.Coordinates) *entities.CityLocation {
	return s.feed.DetectCity(point)
}

func (s *HomeQueryService) cacheKey(selection entities.FeedSelection) string {
	city := strings.ToLower(strings.TrimSpace(selection.City))
	if city == "" {
		city = CityAll
	}
	raw, _ := json.Marshal(selection)
	sum := sha256.Sum256(raw)
	return HomeFeedCachePrefix + city + ":" + hex.EncodeToString(sum[:8])
}
