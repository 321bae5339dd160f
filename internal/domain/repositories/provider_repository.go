package repositories

import (
	"context"

	"github.com/indastreet/providerdiscovery/internal/domain/entities"
)

// ProviderRepository defines the interface for provider data operations
type ProviderRepository interface {
	// Create creates a new provider
	Create(ctx context.Context, provider *entities.Provider) error

	// GetByID retrieves a provider by ID
	GetByID(ctx context.Context, id string) (*entities.Provider, error)

	// Upsert creates the provider or updates it when the ID already exists
	Upsert(ctx context.Context, provider *entities.Provider) (created bool, err error)

	// Update updates a provider
	Update(ctx context.Context, provider *entities.Provider) error

	// Delete deletes a provider
	Delete(ctx context.Context, id string) error

	// List retrieves providers with filters
	List(ctx context.Context, filter ProviderFilter) ([]*entities.Provider, error)
}

// ProviderSearchRepository defines the interface for provider text search
// operations (e.g. Typesense)
type ProviderSearchRepository interface {
	// InitSchema ensures the search collection exists
	InitSchema(ctx context.Context) error

	// Search searches providers by free text
	Search(ctx context.Context, params SearchParams) ([]*entities.Provider, error)

	// Index indexes a provider
	Index(ctx context.Context, provider *entities.Provider) error

	// Delete removes a provider from the index
	Delete(ctx context.Context, id string) error
}

// ProviderFilter defines filters for listing providers
type ProviderFilter struct {
	Type     entities.ProviderType
	City     string
	OnlyLive bool
	Limit    int
	Offset   int
}

// SearchParams defines parameters for text search
type SearchParams struct {
	Query    string
	Type     entities.ProviderType
	City     string
	Lat, Lng float64
	RadiusKm float64
	Limit    int
}
