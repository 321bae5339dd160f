package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/indastreet/providerdiscovery/internal/application/services"
	redislib "github.com/redis/go-redis/v9"
)

// IngestionHandler triggers provider feed -> core data sync.
type IngestionHandler struct {
	service        *services.ProviderIngestionService
	redisClient    *redislib.Client
	idempotencyTTL time.Duration
}

// NewIngestionHandler creates a new ingestion handler. redisClient may be
// nil; idempotency checks are skipped then.
func NewIngestionHandler(
	service *services.ProviderIngestionService,
	redisClient *redislib.Client,
	idempotencyTTL time.Duration,
) *IngestionHandler {
	if idempotencyTTL <= 0 {
		idempotencyTTL = 24 * time.Hour
	}
	return &IngestionHandler{
		service:        service,
		redisClient:    redisClient,
		idempotencyTTL: idempotencyTTL,
	}
}

// TriggerSync handles POST /api/ingestion/sync. An Idempotency-Key header
// makes repeated deliveries of the same trigger a no-op for 24 hours.
func (h *IngestionHandler) TriggerSync(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		respondWithError(w, http.StatusServiceUnavailable, "provider ingestion service not configured")
		return
	}

	key := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
	if key != "" && h.redisClient != nil {
		stored, err := h.redisClient.SetNX(r.Context(), "ingestion:idempotency:"+key, "1", h.idempotencyTTL).Result()
		if err == nil && !stored {
			respondWithJSON(w, http.StatusOK, map[string]string{
				"status":          "duplicate",
				"idempotency_key": key,
			})
			return
		}
	}

	summary, err := h.service.Sync(r.Context())
	if err != nil {
		respondWithError(w, http.StatusBadGateway, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, summary)
}
