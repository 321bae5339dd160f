package services

import (
	"math/rand"
	"testing"
	"time"

	"github.com/indastreet/providerdiscovery/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriorityScore_StatusDominates(t *testing.T) {
	svc := NewRankingService()
	now := time.Now()

	// A busy provider with perfect quality signals still scores below a
	// bare available one.
	busy := &entities.Provider{
		Status: entities.StatusBusy, IsPremium: true, IsVerified: true,
		Rating: 5.0, OrderCount: 500, LastSeen: now,
	}
	available := &entities.Provider{Status: entities.StatusAvailable}

	assert.Greater(t, svc.PriorityScore(available, now), svc.PriorityScore(busy, now))
}

func TestPriorityScore_Components(t *testing.T) {
	svc := NewRankingService()
	now := time.Now()

	tests := []struct {
		name     string
		provider entities.Provider
		want     int
	}{
		{"available only", entities.Provider{Status: entities.StatusAvailable}, 10000},
		{"online counts as available", entities.Provider{Status: entities.StatusOnline}, 10000},
		{"busy", entities.Provider{Status: entities.StatusBusy}, 5000},
		{"premium flag", entities.Provider{IsPremium: true}, 500},
		{"premium account type", entities.Provider{AccountType: "premium"}, 500},
		{"verified", entities.Provider{IsVerified: true}, 300},
		{"certifications imply verified", entities.Provider{Certifications: []string{"LSP"}}, 300},
		{"seen 30m ago", entities.Provider{LastSeen: now.Add(-30 * time.Minute)}, 200},
		{"seen 3h ago", entities.Provider{LastSeen: now.Add(-3 * time.Hour)}, 150},
		{"seen 2d ago", entities.Provider{LastSeen: now.Add(-48 * time.Hour)}, 50},
		{"seen 2w ago", entities.Provider{LastSeen: now.Add(-14 * 24 * time.Hour)}, 0},
		{"missed bookings", entities.Provider{MissedBookings: 3}, -300},
		{"missed penalty capped", entities.Provider{MissedBookings: 50}, -500},
		{"rating 4.8", entities.Provider{Rating: 4.8}, 100},
		{"rating 4.2", entities.Provider{Rating: 4.2}, 75},
		{"rating 3.6", entities.Provider{Rating: 3.6}, 50},
		{"rating 2.0", entities.Provider{Rating: 2.0}, 0},
		{"orders 120", entities.Provider{OrderCount: 120}, 50},
		{"orders 25", entities.Provider{OrderCount: 25}, 30},
		{"orders 12", entities.Provider{OrderCount: 12}, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, svc.PriorityScore(&tt.provider, now))
		})
	}
}

func TestApplyAttributeFilters_NoFiltersPassThrough(t *testing.T) {
	svc := NewRankingService()
	providers := []*entities.Provider{{ID: "a"}, {ID: "b"}}

	got := svc.ApplyAttributeFilters(providers, entities.FeedSelection{City: "jakarta"})
	assert.Len(t, got, 2)
}

func TestApplyAttributeFilters_Gender(t *testing.T) {
	svc := NewRankingService()
	providers := []*entities.Provider{
		{ID: "f", Gender: "female"},
		{ID: "m", Gender: "male"},
	}

	got := svc.ApplyAttributeFilters(providers, entities.FeedSelection{Gender: "Female"})
	require.Len(t, got, 1)
	assert.Equal(t, "f", got[0].ID)
}

func TestApplyAttributeFilters_ServiceFor(t *testing.T) {
	svc := NewRankingService()
	providers := []*entities.Provider{
		{ID: "women-only", ClientPreferences: "women"},
		{ID: "everyone", ClientPreferences: "everyone"},
		{ID: "men-only", ClientPreferences: "men"},
	}

	got := svc.ApplyAttributeFilters(providers, entities.FeedSelection{ServiceFor: "women"})
	ids := providerIDs(got)
	assert.Equal(t, []string{"women-only", "everyone"}, ids)
}

func TestApplyAttributeFilters_MassageType(t *testing.T) {
	svc := NewRankingService()
	providers := []*entities.Provider{
		{ID: "a", Services: []string{"Balinese Massage"}},
		{ID: "b", Services: []string{"Swedish Massage"}},
	}

	got := svc.ApplyAttributeFilters(providers, entities.FeedSelection{MassageType: "balinese"})
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}

func TestApplyAttributeFilters_SpecialFeatures(t *testing.T) {
	svc := NewRankingService()
	providers := []*entities.Provider{
		{ID: "verified", IsVerified: true},
		{ID: "facial", Services: []string{"Facial Treatment"}},
		{ID: "rated", Rating: 4.7},
		{ID: "home", HomeService: true},
		{ID: "stones", Services: []string{"Hot Stone Therapy"}},
		{ID: "plain"},
	}

	tests := []struct {
		feature string
		wantIDs []string
	}{
		{"verified-only", []string{"verified"}},
		{"with-facial", []string{"facial"}},
		{"highly-rated", []string{"rated"}},
		{"home-service", []string{"home"}},
		{"hot-stones", []string{"stones"}},
		{"unknown-feature", nil},
	}

	for _, tt := range tests {
		t.Run(tt.feature, func(t *testing.T) {
			got := svc.ApplyAttributeFilters(providers, entities.FeedSelection{SpecialFeature: tt.feature})
			assert.Equal(t, tt.wantIDs, providerIDsOrNil(got))
		})
	}
}

func TestApplyAttributeFilters_Area(t *testing.T) {
	svc := NewRankingService()
	providers := []*entities.Provider{
		{ID: "in", ServiceAreas: []string{"Seminyak", "Canggu"}},
		{ID: "out", ServiceAreas: []string{"Ubud"}},
	}

	got := svc.ApplyAttributeFilters(providers, entities.FeedSelection{Area: "canggu"})
	require.Len(t, got, 1)
	assert.Equal(t, "in", got[0].ID)
}

func TestApplyAttributeFilters_PriceRangeSkipsUnknownPrices(t *testing.T) {
	svc := NewRankingService()
	providers := []*entities.Provider{
		{ID: "cheap", Price: 100000},
		{ID: "mid", Price: 200000},
		{ID: "pricey", Price: 400000},
		{ID: "unknown"},
	}

	got := svc.ApplyAttributeFilters(providers, entities.FeedSelection{PriceMin: 150000, PriceMax: 300000})
	assert.Equal(t, []string{"mid", "unknown"}, providerIDs(got))
}

func TestRank_OrdersByScoreDistancePrice(t *testing.T) {
	svc := NewRankingService()
	now := time.Now()
	rng := rand.New(rand.NewSource(1))

	near, far := 2.0, 9.0
	providers := []entities.RankedProvider{
		{Provider: entities.Provider{ID: "busy-near", Status: entities.StatusBusy}, DistanceKm: &near},
		{Provider: entities.Provider{ID: "avail-far", Status: entities.StatusAvailable}, DistanceKm: &far},
		{Provider: entities.Provider{ID: "avail-near", Status: entities.StatusAvailable}, DistanceKm: &near},
	}

	svc.Rank(providers, now, rng)

	assert.Equal(t, "avail-near", providers[0].ID)
	assert.Equal(t, "avail-far", providers[1].ID)
	assert.Equal(t, "busy-near", providers[2].ID)
}

func TestRank_MissingPriceSortsLast(t *testing.T) {
	svc := NewRankingService()
	now := time.Now()
	rng := rand.New(rand.NewSource(1))

	providers := []entities.RankedProvider{
		{Provider: entities.Provider{ID: "no-price", Status: entities.StatusAvailable}},
		{Provider: entities.Provider{ID: "priced", Status: entities.StatusAvailable, Price: 150000}},
	}

	svc.Rank(providers, now, rng)

	assert.Equal(t, "priced", providers[0].ID)
	assert.Equal(t, "no-price", providers[1].ID)
}

func TestRank_AssignsPriorityScores(t *testing.T) {
	svc := NewRankingService()
	rng := rand.New(rand.NewSource(1))

	providers := []entities.RankedProvider{
		{Provider: entities.Provider{ID: "a", Status: entities.StatusAvailable}},
	}

	svc.Rank(providers, time.Now(), rng)
	assert.Equal(t, 10000, providers[0].PriorityScore)
}

func providerIDs(providers []*entities.Provider) []string {
	ids := make([]string, 0, len(providers))
	for _, p := range providers {
		ids = append(ids, p.ID)
	}
	return ids
}

func providerIDsOrNil(providers []*entities.Provider) []string {
	if len(providers) == 0 {
		return nil
	}
	return providerIDs(providers)
}
