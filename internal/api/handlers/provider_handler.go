package handlers

import (
	"net/http"
	"strconv"

	"github.com/indastreet/providerdiscovery/internal/application/services"
	"github.com/indastreet/providerdiscovery/internal/domain/entities"
	"github.com/indastreet/providerdiscovery/internal/domain/repositories"
)

const defaultPageSize = 30

// ProviderHandler handles provider-related HTTP requests
type ProviderHandler struct {
	service *services.ProviderService
}

// NewProviderHandler creates a new provider handler
func NewProviderHandler(service *services.ProviderService) *ProviderHandler {
	return &ProviderHandler{service: service}
}

// GetProvider handles GET /api/providers/{id}
func (h *ProviderHandler) GetProvider(w http.ResponseWriter, r *http.Request) {
	providerID := r.PathValue("id")
	if providerID == "" {
		respondWithError(w, http.StatusBadRequest, "provider ID is required")
		return
	}

	provider, err := h.service.GetByID(r.Context(), providerID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, provider)
}

// ListProviders handles GET /api/providers
func (h *ProviderHandler) ListProviders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := repositories.ProviderFilter{
		Type:     entities.ProviderType(q.Get("type")),
		City:     q.Get("city"),
		OnlyLive: q.Get("only_live") == "true",
		Limit:    defaultPageSize,
	}
	if v := q.Get("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil && limit > 0 && limit <= 200 {
			filter.Limit = limit
		}
	}
	if v := q.Get("offset"); v != "" {
		if offset, err := strconv.Atoi(v); err == nil && offset >= 0 {
			filter.Offset = offset
		}
	}

	providers, err := h.service.List(r.Context(), filter)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"providers": providers,
		"count":     len(providers),
	})
}

// SearchProviders handles GET /api/providers/search
func (h *ProviderHandler) SearchProviders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := repositories.SearchParams{
		Query: q.Get("q"),
		Type:  entities.ProviderType(q.Get("type")),
		City:  q.Get("city"),
		Limit: defaultPageSize,
	}

	location, ok := parseLatLng(q.Get("lat"), q.Get("lon"))
	if !ok {
		respondWithError(w, http.StatusBadRequest, "lat and lon must be valid coordinates")
		return
	}
	if location != nil {
		params.Lat = location.Lat
		params.Lng = location.Lng
		params.RadiusKm = 25
		if v := q.Get("radius_km"); v != "" {
			if radius, err := strconv.ParseFloat(v, 64); err == nil && radius > 0 {
				params.RadiusKm = radius
			}
		}
	}
	if v := q.Get("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil && limit > 0 && limit <= 200 {
			params.Limit = limit
		}
	}

	providers, err := h.service.Search(r.Context(), params)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"providers": providers,
		"count":     len(providers),
	})
}
