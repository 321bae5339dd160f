package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/indastreet/providerdiscovery/internal/domain/entities"
	"github.com/indastreet/providerdiscovery/internal/domain/repositories"
	tsclient "github.com/indastreet/providerdiscovery/internal/infrastructure/clients/typesense"
	"github.com/indastreet/providerdiscovery/pkg/utils"
	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"
)

const collectionName = "providers"

// TypesenseAdapter implements provider text search using Typesense
type TypesenseAdapter struct {
	client     *tsclient.Client
	normalizer *utils.ServiceNameNormalizer
}

// Ensure TypesenseAdapter implements ProviderSearchRepository
var _ repositories.ProviderSearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{
		client:     client,
		normalizer: utils.NewServiceNameNormalizer(),
	}
}

// InitSchema ensures the collection exists
func (a *TypesenseAdapter) InitSchema(ctx context.Context) error {
	_, err := a.client.Client().Collection(collectionName).Retrieve(ctx)
	if err == nil {
		return nil // Collection exists
	}

	schema := &api.CollectionSchema{
		Name: collectionName,
		Fields: []api.Field{
			{Name: "id", Type: "string"},
			{Name: "name", Type: "string"},
			{Name: "provider_type", Type: "string", Facet: pointer.True()},
			{Name: "city", Type: "string", Facet: pointer.True()},
			{Name: "status", Type: "string"},
			{Name: "is_live", Type: "bool"},
			{Name: "gender", Type: "string", Facet: pointer.True(), Optional: pointer.True()},
			{Name: "service_tags", Type: "string[]", Optional: pointer.True()},
			{Name: "home_service", Type: "bool"},
			{Name: "rating", Type: "float"},
			{Name: "review_count", Type: "int32"},
			{Name: "price", Type: "float"},
			{Name: "location", Type: "geopoint", Optional: pointer.True()},
			{Name: "created_at", Type: "int64"},
		},
		DefaultSortingField: pointer.String("created_at"),
	}

	_, err = a.client.Client().Collections().Create(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create typesense collection: %w", err)
	}

	return nil
}

// Index upserts a provider document. Service names are normalized into
// canonical tags so "Aromatherapy" and "aroma massage" match the same query.
func (a *TypesenseAdapter) Index(ctx context.Context, provider *entities.Provider) error {
	tags := a.normalizer.NormalizeAll(append(append([]string{}, provider.Services...), provider.Specialties...))

	document := map[string]interface{}{
		"id":            provider.ID,
		"name":          provider.Name,
		"provider_type": string(provider.Type),
		"city":          provider.EffectiveCity(),
		"status":        provider.Status,
		"is_live":       provider.IsLive,
		"gender":        provider.Gender,
		"service_tags":  tags,
		"home_service":  provider.HomeService,
		"rating":        provider.Rating,
		"review_count":  provider.ReviewCount,
		"price":         provider.Price,
		"created_at":    provider.CreatedAt.Unix(),
	}
	if provider.Coordinates != nil {
		document["location"] = []float64{provider.Coordinates.Lat, provider.Coordinates.Lng}
	}

	_, err := a.client.Client().Collection(collectionName).Documents().Upsert(ctx, document)
	if err != nil {
		return fmt.Errorf("failed to index provider: %w", err)
	}

	return nil
}

// Delete removes a provider from the index
func (a *TypesenseAdapter) Delete(ctx context.Context, id string) error {
	_, err := a.client.Client().Collection(collectionName).Document(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete provider from index: %w", err)
	}
	return nil
}

// Search searches providers by free text, optionally constrained to a type,
// a city, and a geo radius.
func (a *TypesenseAdapter) Search(ctx context.Context, params repositories.SearchParams) ([]*entities.Provider, error) {
	query := strings.TrimSpace(params.Query)
	if query == "" {
		query = "*"
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	filters := []string{"is_live:=true"}
	if params.Type != "" {
		filters = append(filters, fmt.Sprintf("provider_type:=%s", string(params.Type)))
	}
	if params.City != "" {
		filters = append(filters, fmt.Sprintf("city:=%s", strings.ToLower(params.City)))
	}
	if params.RadiusKm > 0 && (params.Lat != 0 || params.Lng != 0) {
		filters = append(filters, fmt.Sprintf("location:(%f, %f, %f km)", params.Lat, params.Lng, params.RadiusKm))
	}

	searchParams := &api.SearchCollectionParams{
		Q:        pointer.String(query),
		QueryBy:  pointer.String("name,service_tags,city"),
		FilterBy: pointer.String(strings.Join(filters, " && ")),
		PerPage:  pointer.Int(limit),
	}

	result, err := a.client.Client().Collection(collectionName).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search providers: %w", err)
	}

	providers := []*entities.Provider{}
	if result.Hits == nil {
		return providers, nil
	}

	for _, hit := range *result.Hits {
		doc := *hit.Document
		provider := &entities.Provider{}

		if val, ok := doc["id"].(string); ok {
			provider.ID = val
		}
		if val, ok := doc["name"].(string); ok {
			provider.Name = val
		}
		if val, ok := doc["provider_type"].(string); ok {
			provider.Type = entities.ProviderType(val)
		}
		if val, ok := doc["city"].(string); ok {
			provider.City = val
		}
		if val, ok := doc["status"].(string); ok {
			provider.Status = val
		}
		if val, ok := doc["is_live"].(bool); ok {
			provider.IsLive = val
		}
		if val, ok := doc["gender"].(string); ok {
			provider.Gender = val
		}
		if val, ok := doc["home_service"].(bool); ok {
			provider.HomeService = val
		}
		if val, ok := doc["rating"].(float64); ok {
			provider.Rating = val
		}
		if val, ok := doc["review_count"].(float64); ok {
			provider.ReviewCount = int(val)
		}
		if val, ok := doc["price"].(float64); ok {
			provider.Price = val
		}
		if tags, ok := doc["service_tags"].([]interface{}); ok {
			for _, t := range tags {
				if s, ok := t.(string); ok {
					provider.Services = append(provider.Services, s)
				}
			}
		}
		if loc, ok := doc["location"].([]interface{}); ok && len(loc) == 2 {
			lat, latOK := loc[0].(float64)
			lng, lngOK := loc[1].(float64)
			if latOK && lngOK {
				provider.Coordinates = &entities.Coordinates{Lat: lat, Lng: lng}
			}
		}

		providers = append(providers, provider)
	}

	return providers, nil
}
