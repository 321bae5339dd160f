package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/indastreet/providerdiscovery/internal/adapters/database"
	"github.com/indastreet/providerdiscovery/internal/adapters/search"
	"github.com/indastreet/providerdiscovery/internal/application/services"
	"github.com/indastreet/providerdiscovery/internal/domain/entities"
	"github.com/indastreet/providerdiscovery/internal/domain/repositories"
	"github.com/indastreet/providerdiscovery/internal/infrastructure/clients/postgres"
	"github.com/indastreet/providerdiscovery/internal/infrastructure/clients/typesense"
	"github.com/indastreet/providerdiscovery/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	var searchRepo repositories.ProviderSearchRepository
	if tsClient, err := typesense.NewClient(&cfg.Typesense); err == nil {
		adapter := search.NewTypesenseAdapter(tsClient)
		if err := adapter.InitSchema(context.Background()); err != nil {
			log.Printf("Warning: failed to init search schema: %v", err)
		}
		searchRepo = adapter
	}

	providerRepo := database.NewProviderAdapter(pgClient)
	providerService := services.NewProviderService(providerRepo, searchRepo, nil)

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating providers before seeding")
		if _, err := pgClient.DB().ExecContext(ctx, `TRUNCATE TABLE providers RESTART IDENTITY CASCADE`); err != nil {
			log.Fatalf("Failed to truncate: %v", err)
		}
	}

	now := time.Now()
	seeded := 0
	for _, p := range sampleProviders(now) {
		if err := providerService.Create(ctx, p); err != nil {
			log.Printf("Failed to seed provider %s: %v", p.Name, err)
			continue
		}
		seeded++
	}

	log.Printf("Seeded %d providers", seeded)
}

func sampleProviders(now time.Time) []*entities.Provider {
	coords := func(lat, lng float64) *entities.Coordinates {
		return &entities.Coordinates{Lat: lat, Lng: lng}
	}

	return []*entities.Provider{
		{
			ID: uuid.NewString(), Name: "Sari Wellness", Type: entities.ProviderTypeTherapist,
			Coordinates: coords(-7.7956, 110.3695), City: "yogyakarta",
			Status: entities.StatusAvailable, IsLive: true, IsAvailable: true,
			Rating: 4.8, ReviewCount: 124, OrderCount: 210,
			IsVerified: true, HasIndustryStandards: true, IsPremium: true,
			Gender: "female", ClientPreferences: "all",
			Services: []string{"Balinese Massage", "Aromatherapy"}, HomeService: true,
			Price: 150000, LastSeen: now.Add(-30 * time.Minute),
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: uuid.NewString(), Name: "Java Healing Hands", Type: entities.ProviderTypeTherapist,
			Coordinates: coords(-7.8014, 110.3649), City: "yogyakarta",
			Status: entities.StatusOnline, IsLive: true, IsAvailable: true,
			Rating: 4.5, ReviewCount: 67, OrderCount: 95,
			IsVerified: true, Gender: "male", ClientPreferences: "men",
			Services: []string{"Deep Tissue", "Sports Massage"}, HomeService: true,
			Price: 120000, LastSeen: now.Add(-2 * time.Hour),
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: uuid.NewString(), Name: "Taman Sari Spa", Type: entities.ProviderTypePlace,
			Coordinates: coords(-7.81, 110.359), City: "yogyakarta",
			Status: entities.StatusAvailable, IsLive: true, IsAvailable: true,
			Rating: 4.9, ReviewCount: 310, OrderCount: 540,
			IsVerified: true, HasIndustryStandards: true, IsPremium: true,
			Services: []string{"Hot Stone", "Lulur Scrub", "Facial"},
			Price:    275000, LastSeen: now.Add(-10 * time.Minute),
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: uuid.NewString(), Name: "Ubud Serenity Massage", Type: entities.ProviderTypeTherapist,
			Coordinates: coords(-8.5069, 115.2625), City: "ubud",
			Status: entities.StatusAvailable, IsLive: true, IsAvailable: true,
			Rating: 4.7, ReviewCount: 89, OrderCount: 150,
			IsVerified: true, Gender: "female", ClientPreferences: "everyone",
			Services: []string{"Traditional Balinese", "Reflexology"}, HomeService: true,
			Price: 180000, LastSeen: now.Add(-45 * time.Minute),
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: uuid.NewString(), Name: "Jakarta Urban Spa", Type: entities.ProviderTypePlace,
			Coordinates: coords(-6.2088, 106.8456), City: "jakarta",
			Status: entities.StatusBusy, IsLive: true, IsAvailable: false,
			Rating: 4.2, ReviewCount: 201, OrderCount: 330, MissedBookings: 1,
			IsVerified: true, Services: []string{"Swedish Massage", "Body Scrub"},
			Price:      320000, LastSeen: now.Add(-5 * time.Hour),
			CreatedAt: now, UpdatedAt: now,
		},
		{
			ID: uuid.NewString(), Name: "Canggu Beach Therapy", Type: entities.ProviderTypeTherapist,
			Coordinates: coords(-8.6482, 115.1436), City: "canggu",
			Status: entities.StatusOffline, IsLive: false,
			Rating: 4.0, ReviewCount: 25, OrderCount: 40,
			Gender: "male", Services: []string{"Thai Massage"},
			Price:  140000, LastSeen: now.Add(-80 * time.Hour),
			CreatedAt: now, UpdatedAt: now,
		},
	}
}
