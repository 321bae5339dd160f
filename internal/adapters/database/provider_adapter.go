package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/indastreet/providerdiscovery/internal/domain/entities"
	"github.com/indastreet/providerdiscovery/internal/domain/repositories"
	"github.com/indastreet/providerdiscovery/internal/infrastructure/clients/postgres"
	"github.com/indastreet/providerdiscovery/internal/infrastructure/observability"
	apperrors "github.com/indastreet/providerdiscovery/pkg/errors"
	"github.com/lib/pq"
)

var providerColumns = []interface{}{
	"id", "name", "provider_type", "latitude", "longitude",
	"city", "location_id", "location", "status", "is_live", "is_available",
	"rating", "review_count", "order_count", "missed_bookings",
	"is_verified", "has_industry_standards", "is_premium", "account_type",
	"certifications", "gender", "client_preferences", "services",
	"specialties", "service_areas", "home_service", "price", "last_seen",
	"is_featured_sample", "created_at", "updated_at",
}

// ProviderAdapter implements ProviderRepository on PostgreSQL
type ProviderAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewProviderAdapter creates a new provider adapter
func NewProviderAdapter(client *postgres.Client) repositories.ProviderRepository {
	return &ProviderAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create creates a new provider
func (a *ProviderAdapter) Create(ctx context.Context, provider *entities.Provider) error {
	query, args, err := a.db.Insert("providers").Rows(a.record(provider)).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	start := time.Now()
	_, err = a.client.DB().ExecContext(ctx, query, args...)
	observability.RecordDBMetric(ctx, "provider.create", time.Since(start))
	if err != nil {
		return apperrors.NewInternalError("failed to create provider", err)
	}

	return nil
}

// GetByID retrieves a provider by ID
func (a *ProviderAdapter) GetByID(ctx context.Context, id string) (*entities.Provider, error) {
	query, args, err := a.db.Select(providerColumns...).
		From("providers").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	start := time.Now()
	row := a.client.DB().QueryRowContext(ctx, query, args...)
	provider, err := scanProvider(row)
	observability.RecordDBMetric(ctx, "provider.get", time.Since(start))

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("provider with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get provider", err)
	}

	return provider, nil
}

// Upsert creates the provider or replaces the stored row when the ID already
// exists. The returned flag is true when a new row was inserted.
func (a *ProviderAdapter) Upsert(ctx context.Context, provider *entities.Provider) (bool, error) {
	record := a.record(provider)
	update := goqu.Record{}
	for col, val := range record {
		if col == "id" || col == "created_at" {
			continue
		}
		update[col] = val
	}

	query, args, err := a.db.Insert("providers").
		Rows(record).
		OnConflict(goqu.DoUpdate("id", update)).
		Returning(goqu.L("(xmax = 0)")).
		ToSQL()
	if err != nil {
		return false, apperrors.NewInternalError("failed to build upsert query", err)
	}

	var inserted bool
	start := time.Now()
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(&inserted)
	observability.RecordDBMetric(ctx, "provider.upsert", time.Since(start))
	if err != nil {
		return false, apperrors.NewInternalError("failed to upsert provider", err)
	}

	return inserted, nil
}

// Update updates a provider
func (a *ProviderAdapter) Update(ctx context.Context, provider *entities.Provider) error {
	provider.UpdatedAt = time.Now()

	record := a.record(provider)
	delete(record, "id")
	delete(record, "created_at")

	query, args, err := a.db.Update("providers").
		Set(record).
		Where(goqu.Ex{"id": provider.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	start := time.Now()
	result, err := a.client.DB().ExecContext(ctx, query, args...)
	observability.RecordDBMetric(ctx, "provider.update", time.Since(start))
	if err != nil {
		return apperrors.NewInternalError("failed to update provider", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("provider with id %s not found", provider.ID))
	}

	return nil
}

// Delete removes a provider
func (a *ProviderAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("providers").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	start := time.Now()
	result, err := a.client.DB().ExecContext(ctx, query, args...)
	observability.RecordDBMetric(ctx, "provider.delete", time.Since(start))
	if err != nil {
		return apperrors.NewInternalError("failed to delete provider", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("provider with id %s not found", id))
	}

	return nil
}

// List retrieves providers with filters
func (a *ProviderAdapter) List(ctx context.Context, filter repositories.ProviderFilter) ([]*entities.Provider, error) {
	ds := a.db.Select(providerColumns...).From("providers")

	if filter.Type != "" {
		ds = ds.Where(goqu.Ex{"provider_type": string(filter.Type)})
	}
	if filter.City != "" {
		ds = ds.Where(goqu.Or(
			goqu.Ex{"city": filter.City},
			goqu.Ex{"location_id": filter.City},
		))
	}
	if filter.OnlyLive {
		ds = ds.Where(goqu.Ex{"is_live": true})
	}

	ds = ds.Order(goqu.I("created_at").Desc())
	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	start := time.Now()
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	observability.RecordDBMetric(ctx, "provider.list", time.Since(start))
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list providers", err)
	}
	defer rows.Close()

	providers := []*entities.Provider{}
	for rows.Next() {
		provider, err := scanProvider(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan provider", err)
		}
		providers = append(providers, provider)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating providers", err)
	}

	return providers, nil
}

func (a *ProviderAdapter) record(p *entities.Provider) goqu.Record {
	var lat, lng sql.NullFloat64
	if p.Coordinates != nil {
		lat = sql.NullFloat64{Float64: p.Coordinates.Lat, Valid: true}
		lng = sql.NullFloat64{Float64: p.Coordinates.Lng, Valid: true}
	}

	return goqu.Record{
		"id":                     p.ID,
		"name":                   p.Name,
		"provider_type":          string(p.Type),
		"latitude":               lat,
		"longitude":              lng,
		"city":                   p.City,
		"location_id":            p.LocationID,
		"location":               p.Location,
		"status":                 p.Status,
		"is_live":                p.IsLive,
		"is_available":           p.IsAvailable,
		"rating":                 p.Rating,
		"review_count":           p.ReviewCount,
		"order_count":            p.OrderCount,
		"missed_bookings":        p.MissedBookings,
		"is_verified":            p.IsVerified,
		"has_industry_standards": p.HasIndustryStandards,
		"is_premium":             p.IsPremium,
		"account_type":           p.AccountType,
		"certifications":         pq.Array(p.Certifications),
		"gender":                 p.Gender,
		"client_preferences":     p.ClientPreferences,
		"services":               pq.Array(p.Services),
		"specialties":            pq.Array(p.Specialties),
		"service_areas":          pq.Array(p.ServiceAreas),
		"home_service":           p.HomeService,
		"price":                  p.Price,
		"last_seen":              sql.NullTime{Time: p.LastSeen, Valid: !p.LastSeen.IsZero()},
		"is_featured_sample":     p.IsFeaturedSample,
		"created_at":             p.CreatedAt,
		"updated_at":             p.UpdatedAt,
	}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProvider(row rowScanner) (*entities.Provider, error) {
	provider := &entities.Provider{}
	var (
		lat, lng sql.NullFloat64
		lastSeen sql.NullTime
	)

	err := row.Scan(
		&provider.ID,
		&provider.Name,
		&provider.Type,
		&lat,
		&lng,
		&provider.City,
		&provider.LocationID,
		&provider.Location,
		&provider.Status,
		&provider.IsLive,
		&provider.IsAvailable,
		&provider.Rating,
		&provider.ReviewCount,
		&provider.OrderCount,
		&provider.MissedBookings,
		&provider.IsVerified,
		&provider.HasIndustryStandards,
		&provider.IsPremium,
		&provider.AccountType,
		pq.Array(&provider.Certifications),
		&provider.Gender,
		&provider.ClientPreferences,
		pq.Array(&provider.Services),
		pq.Array(&provider.Specialties),
		pq.Array(&provider.ServiceAreas),
		&provider.HomeService,
		&provider.Price,
		&lastSeen,
		&provider.IsFeaturedSample,
		&provider.CreatedAt,
		&provider.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if lat.Valid && lng.Valid {
		provider.Coordinates = &entities.Coordinates{Lat: lat.Float64, Lng: lng.Float64}
	}
	if lastSeen.Valid {
		provider.LastSeen = lastSeen.Time
	}

	return provider, nil
}
