package handlers

import (
	"net/http"

	"github.com/indastreet/providerdiscovery/internal/application/services"
	"github.com/indastreet/providerdiscovery/internal/domain/entities"
)

// CityHandler serves the city catalog and city auto-detection
type CityHandler struct {
	query *services.HomeQueryService
}

// NewCityHandler creates a new city handler
func NewCityHandler(query *services.HomeQueryService) *CityHandler {
	return &CityHandler{query: query}
}

// ListCities handles GET /api/cities
func (h *CityHandler) ListCities(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"cities": entities.Cities,
		"count":  len(entities.Cities),
	})
}

// DetectCity handles GET /api/cities/detect. It resolves the caller's
// coordinates to the nearest catalog city within the auto-detect radius and
// returns 404 when nothing is close enough.
func (h *CityHandler) DetectCity(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	location, ok := parseLatLng(q.Get("lat"), q.Get("lon"))
	if !ok || location == nil {
		respondWithError(w, http.StatusBadRequest, "lat and lon are required")
		return
	}

	city := h.query.DetectCity(*location)
	if city == nil {
		respondWithError(w, http.StatusNotFound, "no known city near the given coordinates")
		return
	}

	respondWithJSON(w, http.StatusOK, city)
}
