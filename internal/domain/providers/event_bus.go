package providers

import (
	"context"

	"github.com/indastreet/providerdiscovery/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to provider
// change events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.ProviderEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.ProviderEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

// Event channel constants
const (
	// EventChannelProviderUpdates is the channel for all provider updates
	EventChannelProviderUpdates = "provider:updates"

	// EventChannelCityPrefix is the prefix for city-scoped channels
	EventChannelCityPrefix = "city:"
)

// GetCityChannel returns the channel name for a specific city
func GetCityChannel(city string) string {
	return EventChannelCityPrefix + city
}
