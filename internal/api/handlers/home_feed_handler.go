package handlers

import (
	"net/http"
	"strconv"

	"github.com/indastreet/providerdiscovery/internal/application/services"
	"github.com/indastreet/providerdiscovery/internal/domain/entities"
)

// HomeFeedHandler serves the ranked, grouped provider feed
type HomeFeedHandler struct {
	query *services.HomeQueryService
}

// NewHomeFeedHandler creates a new home feed handler
func NewHomeFeedHandler(query *services.HomeQueryService) *HomeFeedHandler {
	return &HomeFeedHandler{query: query}
}

// GetHomeFeed handles GET /api/home-feed.
//
// Query parameters: city, type, gender, service_for, massage_type,
// special_feature, area, price_min, price_max, lat, lon. lat and lon are
// both required for distance annotation; a request with only one of them is
// treated as having no location.
func (h *HomeFeedHandler) GetHomeFeed(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	selection := entities.FeedSelection{
		City:           q.Get("city"),
		Gender:         q.Get("gender"),
		ServiceFor:     q.Get("service_for"),
		MassageType:    q.Get("massage_type"),
		SpecialFeature: q.Get("special_feature"),
		Area:           q.Get("area"),
	}

	if t := q.Get("type"); t != "" {
		switch entities.ProviderType(t) {
		case entities.ProviderTypeTherapist, entities.ProviderTypePlace:
			selection.ProviderType = entities.ProviderType(t)
		default:
			respondWithError(w, http.StatusBadRequest, "type must be therapist or place")
			return
		}
	}

	if v := q.Get("price_min"); v != "" {
		min, err := strconv.ParseFloat(v, 64)
		if err != nil || min < 0 {
			respondWithError(w, http.StatusBadRequest, "price_min must be a non-negative number")
			return
		}
		selection.PriceMin = min
	}
	if v := q.Get("price_max"); v != "" {
		max, err := strconv.ParseFloat(v, 64)
		if err != nil || max < 0 {
			respondWithError(w, http.StatusBadRequest, "price_max must be a non-negative number")
			return
		}
		selection.PriceMax = max
	}

	userLocation, ok := parseLatLng(q.Get("lat"), q.Get("lon"))
	if !ok {
		respondWithError(w, http.StatusBadRequest, "lat and lon must be valid coordinates")
		return
	}

	feed, err := h.query.GetHomeFeed(r.Context(), selection, userLocation)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, feed)
}

// parseLatLng returns the coordinates when both parameters are present and
// valid, nil when both are absent, and ok=false when they are malformed or
// only one is given.
func parseLatLng(latStr, lngStr string) (*entities.Coordinates, bool) {
	if latStr == "" && lngStr == "" {
		return nil, true
	}
	if latStr == "" || lngStr == "" {
		return nil, false
	}

	lat, latErr := strconv.ParseFloat(latStr, 64)
	lng, lngErr := strconv.ParseFloat(lngStr, 64)
	if latErr != nil || lngErr != nil || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, false
	}

	return &entities.Coordinates{Lat: lat, Lng: lng}, true
}
