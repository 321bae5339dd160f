package services

import (
	"math/rand"
	"testing"
	"time"

	"github.com/indastreet/providerdiscovery/internal/domain/entities"
	"github.com/indastreet/providerdiscovery/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFeedService(cfg config.PipelineConfig) *HomeFeedService {
	if cfg.ReferenceCity == "" {
		cfg.ReferenceCity = "yogyakarta"
	}
	if cfg.ShowcaseSize == 0 {
		cfg.ShowcaseSize = 5
	}
	if cfg.CityMatchRadiusKm == 0 {
		cfg.CityMatchRadiusKm = 25
	}
	if cfg.AutoDetectRadiusKm == 0 {
		cfg.AutoDetectRadiusKm = 50
	}
	return NewHomeFeedService(
		NewCityFilterService(),
		NewRankingService(),
		NewDisplayStatusService(),
		NewShowcaseService(cfg.ReferenceCity, cfg.ShowcaseSize),
		cfg,
	)
}

func feedProvider(id, city string, ptype entities.ProviderType, status string) *entities.Provider {
	return &entities.Provider{
		ID:     id,
		Name:   id,
		Type:   ptype,
		City:   city,
		Status: status,
		IsLive: true,
		Price:  150000,
	}
}

func feedIDs(feed *entities.HomeFeed) []string {
	ids := make([]string, 0, len(feed.Providers))
	for _, rp := range feed.Providers {
		ids = append(ids, rp.ID)
	}
	return ids
}

func TestBuild_FiltersByProviderType(t *testing.T) {
	svc := newTestFeedService(config.PipelineConfig{})
	providers := []*entities.Provider{
		feedProvider("t1", "jakarta", entities.ProviderTypeTherapist, entities.StatusAvailable),
		feedProvider("p1", "jakarta", entities.ProviderTypePlace, entities.StatusAvailable),
	}

	feed := svc.Build(providers, nil, entities.FeedSelection{
		City:         "jakarta",
		ProviderType: entities.ProviderTypePlace,
	}, time.Now(), rand.New(rand.NewSource(1)))

	assert.Equal(t, []string{"p1"}, feedIDs(feed))
}

func TestBuild_FiltersByCity(t *testing.T) {
	svc := newTestFeedService(config.PipelineConfig{})
	providers := []*entities.Provider{
		feedProvider("jkt", "jakarta", entities.ProviderTypeTherapist, entities.StatusAvailable),
		feedProvider("bdg", "bandung", entities.ProviderTypeTherapist, entities.StatusAvailable),
	}

	feed := svc.Build(providers, nil, entities.FeedSelection{City: "bandung"},
		time.Now(), rand.New(rand.NewSource(1)))

	assert.Equal(t, []string{"bdg"}, feedIDs(feed))
	assert.Equal(t, 1, feed.Total)
	assert.False(t, feed.ShowcaseUsed)
}

func TestBuild_DropsUnlistableProviders(t *testing.T) {
	svc := newTestFeedService(config.PipelineConfig{})
	offline := feedProvider("off", "jakarta", entities.ProviderTypeTherapist, entities.StatusOffline)
	offline.IsLive = false
	providers := []*entities.Provider{
		feedProvider("live", "jakarta", entities.ProviderTypeTherapist, entities.StatusAvailable),
		offline,
	}

	feed := svc.Build(providers, nil, entities.FeedSelection{City: "jakarta"},
		time.Now(), rand.New(rand.NewSource(1)))

	assert.Equal(t, []string{"live"}, feedIDs(feed))
}

func TestBuild_AttributeFilterFallbackToCityList(t *testing.T) {
	svc := newTestFeedService(config.PipelineConfig{})
	female := feedProvider("f", "jakarta", entities.ProviderTypeTherapist, entities.StatusAvailable)
	female.Gender = "female"

	// No male therapists in the city: fall back to the full city list
	// instead of an empty page.
	feed := svc.Build([]*entities.Provider{female}, nil, entities.FeedSelection{
		City:   "jakarta",
		Gender: "male",
	}, time.Now(), rand.New(rand.NewSource(1)))

	assert.Equal(t, []string{"f"}, feedIDs(feed))
}

func TestBuild_ShowcaseBackfillForEmptyCity(t *testing.T) {
	svc := newTestFeedService(config.PipelineConfig{})
	providers := []*entities.Provider{
		feedProvider("yk1", "yogyakarta", entities.ProviderTypeTherapist, entities.StatusAvailable),
		feedProvider("yk2", "yogyakarta", entities.ProviderTypeTherapist, entities.StatusAvailable),
	}

	feed := svc.Build(providers, nil, entities.FeedSelection{City: "solo"},
		time.Now(), rand.New(rand.NewSource(1)))

	assert.True(t, feed.ShowcaseUsed)
	require.Equal(t, 5, feed.Total)
	for _, rp := range feed.Providers {
		assert.True(t, rp.IsShowcaseProfile)
		assert.Equal(t, "solo", rp.City)
		assert.False(t, rp.RealStatus)
		assert.Equal(t, entities.DisplayBusy, rp.DisplayStatus)
	}
}

func TestBuild_NoShowcaseWhenCityHasProviders(t *testing.T) {
	svc := newTestFeedService(config.PipelineConfig{})
	providers := []*entities.Provider{
		feedProvider("yk1", "yogyakarta", entities.ProviderTypeTherapist, entities.StatusAvailable),
		feedProvider("solo1", "solo", entities.ProviderTypeTherapist, entities.StatusAvailable),
	}

	feed := svc.Build(providers, nil, entities.FeedSelection{City: "solo"},
		time.Now(), rand.New(rand.NewSource(1)))

	assert.False(t, feed.ShowcaseUsed)
	assert.Equal(t, []string{"solo1"}, feedIDs(feed))
}

func TestBuild_DistanceAnnotationOnlyWithLocation(t *testing.T) {
	svc := newTestFeedService(config.PipelineConfig{})
	p := feedProvider("near", "yogyakarta", entities.ProviderTypeTherapist, entities.StatusAvailable)
	p.Coordinates = &entities.Coordinates{Lat: -7.7956, Lng: 110.3695}
	providers := []*entities.Provider{p}

	noLoc := svc.Build(providers, nil, entities.FeedSelection{City: "yogyakarta"},
		time.Now(), rand.New(rand.NewSource(1)))
	require.Len(t, noLoc.Providers, 1)
	assert.Nil(t, noLoc.Providers[0].DistanceKm)

	user := &entities.Coordinates{Lat: -7.80, Lng: 110.37}
	withLoc := svc.Build(providers, user, entities.FeedSelection{City: "yogyakarta"},
		time.Now(), rand.New(rand.NewSource(1)))
	require.Len(t, withLoc.Providers, 1)
	require.NotNil(t, withLoc.Providers[0].DistanceKm)
	assert.Less(t, *withLoc.Providers[0].DistanceKm, 5.0)
}

func TestBuild_LocationAreaPrefersGPSMatch(t *testing.T) {
	svc := newTestFeedService(config.PipelineConfig{})
	// Declared city says jakarta but GPS sits in central Yogyakarta.
	p := feedProvider("gps", "jakarta", entities.ProviderTypeTherapist, entities.StatusAvailable)
	p.Coordinates = &entities.Coordinates{Lat: -7.7956, Lng: 110.3695}

	feed := svc.Build([]*entities.Provider{p}, nil, entities.FeedSelection{City: "jakarta"},
		time.Now(), rand.New(rand.NewSource(1)))

	require.Len(t, feed.Providers, 1)
	assert.Equal(t, "yogyakarta", feed.Providers[0].LocationArea)
}

func TestBuild_MaxPerCityCap(t *testing.T) {
	svc := newTestFeedService(config.PipelineConfig{MaxPerCity: 2})
	providers := []*entities.Provider{
		feedProvider("a", "jakarta", entities.ProviderTypeTherapist, entities.StatusAvailable),
		feedProvider("b", "jakarta", entities.ProviderTypeTherapist, entities.StatusAvailable),
		feedProvider("c", "jakarta", entities.ProviderTypeTherapist, entities.StatusAvailable),
	}

	capped := svc.Build(providers, nil, entities.FeedSelection{City: "jakarta"},
		time.Now(), rand.New(rand.NewSource(1)))
	assert.Equal(t, 2, capped.Total)

	// The cap only applies to single-city feeds.
	uncapped := svc.Build(providers, nil, entities.FeedSelection{City: CityAll},
		time.Now(), rand.New(rand.NewSource(1)))
	assert.Equal(t, 3, uncapped.Total)
}

func TestBuild_GroupsByArea(t *testing.T) {
	svc := newTestFeedService(config.PipelineConfig{})
	providers := []*entities.Provider{
		feedProvider("jkt", "jakarta", entities.ProviderTypeTherapist, entities.StatusAvailable),
		feedProvider("bdg", "bandung", entities.ProviderTypeTherapist, entities.StatusAvailable),
		feedProvider("bdg2", "bandung", entities.ProviderTypePlace, entities.StatusAvailable),
	}

	feed := svc.Build(providers, nil, entities.FeedSelection{City: CityAll},
		time.Now(), rand.New(rand.NewSource(1)))

	assert.Equal(t, []string{"bandung", "jakarta"}, feed.Areas)
	assert.Len(t, feed.ByArea["bandung"], 2)
	assert.Len(t, feed.ByArea["jakarta"], 1)
}

func TestBuild_AvailableRanksAboveBusy(t *testing.T) {
	svc := newTestFeedService(config.PipelineConfig{})
	providers := []*entities.Provider{
		feedProvider("busy", "jakarta", entities.ProviderTypeTherapist, entities.StatusBusy),
		feedProvider("avail", "jakarta", entities.ProviderTypeTherapist, entities.StatusAvailable),
	}

	feed := svc.Build(providers, nil, entities.FeedSelection{City: "jakarta"},
		time.Now(), rand.New(rand.NewSource(1)))

	assert.Equal(t, []string{"avail", "busy"}, feedIDs(feed))
}

func TestDetectCity(t *testing.T) {
	svc := newTestFeedService(config.PipelineConfig{})

	city := svc.DetectCity(entities.Coordinates{Lat: -7.80, Lng: 110.37})
	require.NotNil(t, city)
	assert.Equal(t, "yogyakarta", city.LocationID)

	assert.Nil(t, svc.DetectCity(entities.Coordinates{Lat: -20.0, Lng: 90.0}))
}
