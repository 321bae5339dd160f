package providerapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client is the upstream provider feed. It returns raw, loosely-typed
// records; all normalization happens on our side of the boundary.
type Client interface {
	GetProviders(ctx context.Context, req FeedRequest) (*FeedResponse, error)
	GetHealth(ctx context.Context) (*HealthResponse, error)
}

type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

type FeedRequest struct {
	Kind   string // "therapist" | "place" | "" for both
	Limit  int
	Offset int
}

type FeedResponse struct {
	Data      []RawProviderRecord `json:"data"`
	Total     int                 `json:"total"`
	HasMore   bool                `json:"hasMore"`
	Timestamp time.Time           `json:"timestamp"`
}

// RawProviderRecord mirrors the upstream document shape. Fields overlap and
// are not always consistent; several of them may be string-encoded JSON.
// json.RawMessage is used wherever the upstream emits more than one encoding.
type RawProviderRecord struct {
	ID       string `json:"id"`
	DocID    string `json:"$id"`
	Name     string `json:"name"`
	Kind     string `json:"type"`

	// Coordinates may be a {lat,lng} object, a [lng,lat] array, or a
	// JSON-string-encoded object.
	Coordinates json.RawMessage `json:"coordinates,omitempty"`

	City       string `json:"city,omitempty"`
	LocationID string `json:"locationId,omitempty"`
	Location   string `json:"location,omitempty"`

	Status       string `json:"status,omitempty"`
	Availability string `json:"availability,omitempty"`
	IsLive       *bool  `json:"isLive,omitempty"`

	// Numeric quality signals arrive as numbers or numeric strings.
	Rating              json.Number `json:"rating,omitempty"`
	AverageRating       json.Number `json:"averageRating,omitempty"`
	ReviewCount         json.Number `json:"reviewCount,omitempty"`
	OrderCount          json.Number `json:"orderCount,omitempty"`
	MissedBookingsCount json.Number `json:"missedBookingsCount,omitempty"`
	MissedBookings      json.Number `json:"missedBookings,omitempty"`

	IsVerified           bool     `json:"isVerified,omitempty"`
	HasIndustryStandards bool     `json:"hasIndustryStandards,omitempty"`
	IsPremium            bool     `json:"isPremium,omitempty"`
	AccountType          string   `json:"accountType,omitempty"`
	Certifications       []string `json:"certifications,omitempty"`

	Gender            string `json:"gender,omitempty"`
	TherapistGender   string `json:"therapistGender,omitempty"`
	ClientPreferences string `json:"clientPreferences,omitempty"`

	// Services, specialties and service areas may be arrays or
	// JSON-string-encoded arrays or plain comma strings.
	Services     json.RawMessage `json:"services,omitempty"`
	MassageTypes json.RawMessage `json:"massageTypes,omitempty"`
	Specialties  json.RawMessage `json:"specialties,omitempty"`
	ServiceAreas json.RawMessage `json:"serviceAreas,omitempty"`

	HomeService   bool `json:"homeService,omitempty"`
	MobileService bool `json:"mobileService,omitempty"`

	Price      json.Number `json:"price,omitempty"`
	BasePrice  json.Number `json:"basePrice,omitempty"`
	HourlyRate json.Number `json:"hourlyRate,omitempty"`

	LastSeen     string `json:"lastSeen,omitempty"`
	DocUpdatedAt string `json:"$updatedAt,omitempty"`
	UpdatedAt    string `json:"updatedAt,omitempty"`

	IsFeaturedSample bool `json:"isFeaturedSample,omitempty"`
}

type HealthResponse struct {
	Healthy  bool      `json:"healthy"`
	LastSync time.Time `json:"lastSync,omitempty"`
	Message  string    `json:"message,omitempty"`
}

// NewClient creates a new feed client
func NewClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GetProviders fetches one page of raw provider records
func (c *HTTPClient) GetProviders(ctx context.Context, req FeedRequest) (*FeedResponse, error) {
	parsed, err := url.Parse(c.baseURL + "/providers")
	if err != nil {
		return nil, err
	}

	query := parsed.Query()
	if req.Kind != "" {
		query.Set("type", req.Kind)
	}
	if req.Limit > 0 {
		query.Set("limit", fmt.Sprintf("%d", req.Limit))
	}
	if req.Offset > 0 {
		query.Set("offset", fmt.Sprintf("%d", req.Offset))
	}
	parsed.RawQuery = query.Encode()

	out := &FeedResponse{}
	if err := c.doJSON(ctx, http.MethodGet, parsed.String(), out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetHealth checks feed availability
func (c *HTTPClient) GetHealth(ctx context.Context) (*HealthResponse, error) {
	out := &HealthResponse{}
	if err := c.doJSON(ctx, http.MethodGet, c.baseURL+"/health", out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) doJSON(ctx context.Context, method, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("provider api request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("provider api returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()
	if err := decoder.Decode(out); err != nil {
		return fmt.Errorf("failed to decode provider api response: %w", err)
	}
	return nil
}
