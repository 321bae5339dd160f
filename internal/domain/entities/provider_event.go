package entities

import (
	"time"

	"github.com/google/uuid"
)

// ProviderEventType represents the type of provider change event
type ProviderEventType string

const (
	ProviderEventTypeCreated      ProviderEventType = "created"
	ProviderEventTypeUpdated      ProviderEventType = "updated"
	ProviderEventTypeDeleted      ProviderEventType = "deleted"
	ProviderEventTypeStatusChange ProviderEventType = "status_change"
	ProviderEventTypeSyncComplete ProviderEventType = "sync_complete"
)

// ProviderEvent represents a change to the provider dataset. Home feed
// caches are invalidated when one of these fires.
type ProviderEvent struct {
	ID         string            `json:"id"`
	ProviderID string            `json:"provider_id,omitempty"`
	EventType  ProviderEventType `json:"event_type"`
	City       string            `json:"city,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
}

// NewProviderEvent creates a new provider event
func NewProviderEvent(providerID string, eventType ProviderEventType, city string) *ProviderEvent {
	return &ProviderEvent{
		ID:         uuid.NewString(),
		ProviderID: providerID,
		EventType:  eventType,
		City:       city,
		Timestamp:  time.Now(),
	}
}
