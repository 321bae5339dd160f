package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/indastreet/providerdiscovery/internal/application/services"
	"github.com/indastreet/providerdiscovery/internal/domain/entities"
	"github.com/indastreet/providerdiscovery/internal/domain/repositories"
	"github.com/indastreet/providerdiscovery/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedProviderRepo struct {
	providers []*entities.Provider
}

func (r *fixedProviderRepo) Create(ctx context.Context, p *entities.Provider) error { return nil }
func (r *fixedProviderRepo) GetByID(ctx context.Context, id string) (*entities.Provider, error) {
	return nil, nil
}
func (r *fixedProviderRepo) Upsert(ctx context.Context, p *entities.Provider) (bool, error) {
	return false, nil
}
func (r *fixedProviderRepo) Update(ctx context.Context, p *entities.Provider) error { return nil }
func (r *fixedProviderRepo) Delete(ctx context.Context, id string) error            { return nil }
func (r *fixedProviderRepo) List(ctx context.Context, filter repositories.ProviderFilter) ([]*entities.Provider, error) {
	return r.providers, nil
}

func newFeedHandler(providerList []*entities.Provider) *HomeFeedHandler {
	cfg := config.PipelineConfig{
		ReferenceCity:      "yogyakarta",
		CityMatchRadiusKm:  25,
		AutoDetectRadiusKm: 50,
		ShowcaseSize:       5,
	}
	feed := services.NewHomeFeedService(
		services.NewCityFilterService(),
		services.NewRankingService(),
		services.NewDisplayStatusService(),
		services.NewShowcaseService(cfg.ReferenceCity, cfg.ShowcaseSize),
		cfg,
	)
	query := services.NewHomeQueryService(&fixedProviderRepo{providers: providerList}, feed, nil, cfg)
	return NewHomeFeedHandler(query)
}

func TestGetHomeFeed_OK(t *testing.T) {
	handler := newFeedHandler([]*entities.Provider{
		{ID: "a", Name: "a", Type: entities.ProviderTypeTherapist, City: "jakarta", Status: entities.StatusAvailable, IsLive: true},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/home-feed?city=jakarta", nil)
	rec := httptest.NewRecorder()
	handler.GetHomeFeed(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var feed entities.HomeFeed
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &feed))
	assert.Equal(t, 1, feed.Total)
}

func TestGetHomeFeed_RejectsUnknownType(t *testing.T) {
	handler := NewHomeFeedHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/home-feed?type=robot", nil)
	rec := httptest.NewRecorder()
	handler.GetHomeFeed(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetHomeFeed_RejectsBadPrices(t *testing.T) {
	handler := NewHomeFeedHandler(nil)

	for _, query := range []string{"price_min=abc", "price_min=-5", "price_max=abc", "price_max=-1"} {
		req := httptest.NewRequest(http.MethodGet, "/api/home-feed?"+query, nil)
		rec := httptest.NewRecorder()
		handler.GetHomeFeed(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, query)
	}
}

func TestGetHomeFeed_RejectsPartialOrInvalidLocation(t *testing.T) {
	handler := NewHomeFeedHandler(nil)

	for _, query := range []string{"lat=-6.2", "lon=106.8", "lat=abc&lon=106.8", "lat=-95&lon=106.8", "lat=-6.2&lon=190"} {
		req := httptest.NewRequest(http.MethodGet, "/api/home-feed?"+query, nil)
		rec := httptest.NewRecorder()
		handler.GetHomeFeed(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, query)
	}
}

func TestParseLatLng(t *testing.T) {
	coords, ok := parseLatLng("", "")
	assert.True(t, ok)
	assert.Nil(t, coords)

	coords, ok = parseLatLng("-6.2088", "106.8456")
	require.True(t, ok)
	require.NotNil(t, coords)
	assert.Equal(t, -6.2088, coords.Lat)
	assert.Equal(t, 106.8456, coords.Lng)

	_, ok = parseLatLng("-6.2", "")
	assert.False(t, ok)
	_, ok = parseLatLng("91", "0")
	assert.False(t, ok)
	_, ok = parseLatLng("0", "181")
	assert.False(t, ok)
}
