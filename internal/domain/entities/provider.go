package entities

import (
	"strings"
	"time"
)

// ProviderType distinguishes the two listing kinds
type ProviderType string

const (
	ProviderTypeTherapist ProviderType = "therapist"
	ProviderTypePlace     ProviderType = "place"
)

// Normalized status vocabulary. Raw feed records carry an open string set;
// the ingestion normalizer maps everything onto these values (or "").
const (
	StatusAvailable = "available"
	StatusOnline    = "online"
	StatusBusy      = "busy"
	StatusOffline   = "offline"
)

// DisplayStatus is the two-valued presentation status shown on cards.
type DisplayStatus string

const (
	DisplayAvailable DisplayStatus = "Available"
	DisplayBusy      DisplayStatus = "Busy"
)

// Coordinates represents geographical coordinates
type Coordinates struct {
	Lat float64 `json:"lat" db:"latitude"`
	Lng float64 `json:"lng" db:"longitude"`
}

// Provider represents a therapist or place listing. Therapists and places
// are structurally identical for matching and ranking purposes.
type Provider struct {
	ID   string       `json:"id" db:"id"`
	Name string       `json:"name" db:"name"`
	Type ProviderType `json:"type" db:"provider_type"`

	// Coordinates is nil when the upstream record had no parseable
	// coordinate encoding.
	Coordinates *Coordinates `json:"coordinates,omitempty" db:"-"`

	// City is GPS-derived and most authoritative; LocationID is the
	// canonical catalog ID; Location is the legacy free-text field and
	// least trusted.
	City       string `json:"city,omitempty" db:"city"`
	LocationID string `json:"location_id,omitempty" db:"location_id"`
	Location   string `json:"location,omitempty" db:"location"`

	Status      string `json:"status" db:"status"`
	IsLive      bool   `json:"is_live" db:"is_live"`
	IsAvailable bool   `json:"is_available" db:"is_available"`

	Rating         float64 `json:"rating" db:"rating"`
	ReviewCount    int     `json:"review_count" db:"review_count"`
	OrderCount     int     `json:"order_count" db:"order_count"`
	MissedBookings int     `json:"missed_bookings" db:"missed_bookings"`

	IsVerified           bool     `json:"is_verified" db:"is_verified"`
	HasIndustryStandards bool     `json:"has_industry_standards" db:"has_industry_standards"`
	IsPremium            bool     `json:"is_premium" db:"is_premium"`
	AccountType          string   `json:"account_type,omitempty" db:"account_type"`
	Certifications       []string `json:"certifications,omitempty" db:"-"`

	Gender            string   `json:"gender,omitempty" db:"gender"`
	ClientPreferences string   `json:"client_preferences,omitempty" db:"client_preferences"`
	Services          []string `json:"services,omitempty" db:"-"`
	Specialties       []string `json:"specialties,omitempty" db:"-"`
	ServiceAreas      []string `json:"service_areas,omitempty" db:"-"`
	HomeService       bool     `json:"home_service" db:"home_service"`

	// Price is the base price in IDR; zero means unknown.
	Price float64 `json:"price" db:"price"`

	LastSeen time.Time `json:"last_seen,omitempty" db:"last_seen"`

	// IsFeaturedSample marks curated always-visible reference entries.
	IsFeaturedSample bool `json:"is_featured_sample" db:"is_featured_sample"`

	// Showcase fields are only set on synthetic back-fill clones, never on
	// records coming from the feed.
	IsShowcaseProfile bool   `json:"is_showcase_profile,omitempty" db:"-"`
	ShowcaseSourceID  string `json:"showcase_source_id,omitempty" db:"-"`
	ShowcaseCity      string `json:"showcase_city,omitempty" db:"-"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// EffectiveCity resolves the provider's city as the first non-empty of
// City, LocationID, Location, lower-cased and trimmed. Returns "" when no
// location field is set.
func (p *Provider) EffectiveCity() string {
	for _, field := range []string{p.City, p.LocationID, p.Location} {
		if v := strings.ToLower(strings.TrimSpace(field)); v != "" {
			return v
		}
	}
	return ""
}

// IsListable reports whether the provider may appear in live listings.
// Unpublished providers with an offline or empty status are hidden unless
// they are curated featured samples.
func (p *Provider) IsListable() bool {
	if p.IsFeaturedSample {
		return true
	}
	if !p.IsLive && (p.Status == StatusOffline || p.Status == "") {
		return false
	}
	return true
}

// AllServiceText returns the provider's services and specialties joined and
// lower-cased, for substring matching.
func (p *Provider) AllServiceText() string {
	parts := append(append([]string{}, p.Services...), p.Specialties...)
	return strings.ToLower(strings.Join(parts, " "))
}
