package services

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/indastreet/providerdiscovery/internal/domain/entities"
	"github.com/indastreet/providerdiscovery/internal/infrastructure/clients/providerapi"
)

// ParseCoordinates converts any of the upstream coordinate encodings into a
// Coordinates value: a {lat,lng} object, a GeoJSON-style [lng,lat] array, or
// a JSON-string-encoded object. Malformed input yields nil, never an error.
func ParseCoordinates(raw json.RawMessage) *entities.Coordinates {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil
	}

	// Object form: {"lat": ..., "lng": ...}
	var obj struct {
		Lat *float64 `json:"lat"`
		Lng *float64 `json:"lng"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Lat != nil && obj.Lng != nil {
		return &entities.Coordinates{Lat: *obj.Lat, Lng: *obj.Lng}
	}

	// GeoJSON-style array form: [lng, lat]
	var arr []float64
	if err := json.Unmarshal(raw, &arr); err == nil && len(arr) >= 2 {
		return &entities.Coordinates{Lat: arr[1], Lng: arr[0]}
	}

	// String-encoded object form: "{\"lat\": ..., \"lng\": ...}"
	var encoded string
	if err := json.Unmarshal(raw, &encoded); err == nil && encoded != "" {
		if err := json.Unmarshal([]byte(encoded), &obj); err == nil && obj.Lat != nil && obj.Lng != nil {
			return &entities.Coordinates{Lat: *obj.Lat, Lng: *obj.Lng}
		}
	}

	return nil
}

// NormalizeStatus maps the open upstream status vocabulary onto the
// canonical set {available, online, busy, offline, ""}.
func NormalizeStatus(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "available", "open", "active":
		return entities.StatusAvailable
	case "online":
		return entities.StatusOnline
	case "busy", "occupied":
		return entities.StatusBusy
	case "offline", "inactive", "closed":
		return entities.StatusOffline
	default:
		return ""
	}
}

// NormalizeProvider converts a raw feed record into a strict Provider. All
// "maybe it's a string, maybe it's JSON, maybe it's an array" handling lives
// here so the matching and ranking core only ever sees clean records.
// cityMatchRadiusKm controls GPS-to-city resolution for records whose city
// field is missing.
func NormalizeProvider(record providerapi.RawProviderRecord, cityMatchRadiusKm float64) *entities.Provider {
	id := strings.TrimSpace(record.ID)
	if id == "" {
		id = strings.TrimSpace(record.DocID)
	}
	if id == "" {
		id = uuid.NewString()
	}

	kind := entities.ProviderTypeTherapist
	if strings.EqualFold(strings.TrimSpace(record.Kind), string(entities.ProviderTypePlace)) {
		kind = entities.ProviderTypePlace
	}

	status := NormalizeStatus(record.Status)
	if status == "" {
		status = NormalizeStatus(record.Availability)
	}

	coords := ParseCoordinates(record.Coordinates)

	city := strings.TrimSpace(record.City)
	if city == "" && coords != nil {
		// City is GPS-derived and most authoritative; backfill it from the
		// catalog when the record only carries coordinates.
		if matched := entities.MatchToCity(*coords, cityMatchRadiusKm); matched != nil {
			city = matched.LocationID
		}
	}

	gender := strings.ToLower(strings.TrimSpace(record.TherapistGender))
	if gender == "" {
		gender = strings.ToLower(strings.TrimSpace(record.Gender))
	}

	rating := numberOr(record.AverageRating, 0)
	if rating == 0 {
		rating = numberOr(record.Rating, 0)
	}

	missed := int(numberOr(record.MissedBookingsCount, -1))
	if missed < 0 {
		missed = int(numberOr(record.MissedBookings, 0))
	}

	price := numberOr(record.Price, 0)
	if price == 0 {
		price = numberOr(record.BasePrice, 0)
	}
	if price == 0 {
		price = numberOr(record.HourlyRate, 0)
	}

	services := parseStringList(record.Services)
	if len(services) == 0 {
		services = parseStringList(record.MassageTypes)
	}

	lastSeen := parseTimestamp(record.LastSeen)
	if lastSeen.IsZero() {
		lastSeen = parseTimestamp(record.DocUpdatedAt)
	}
	if lastSeen.IsZero() {
		lastSeen = parseTimestamp(record.UpdatedAt)
	}

	return &entities.Provider{
		ID:                   id,
		Name:                 strings.TrimSpace(record.Name),
		Type:                 kind,
		Coordinates:          coords,
		City:                 city,
		LocationID:           strings.TrimSpace(record.LocationID),
		Location:             strings.TrimSpace(record.Location),
		Status:               status,
		IsLive:               record.IsLive != nil && *record.IsLive,
		IsAvailable:          status == entities.StatusAvailable || status == entities.StatusOnline,
		Rating:               rating,
		ReviewCount:          int(numberOr(record.ReviewCount, 0)),
		OrderCount:           int(numberOr(record.OrderCount, 0)),
		MissedBookings:       missed,
		IsVerified:           record.IsVerified,
		HasIndustryStandards: record.HasIndustryStandards,
		IsPremium:            record.IsPremium,
		AccountType:          strings.ToLower(strings.TrimSpace(record.AccountType)),
		Certifications:       record.Certifications,
		Gender:               gender,
		ClientPreferences:    strings.ToLower(strings.TrimSpace(record.ClientPreferences)),
		Services:             services,
		Specialties:          parseStringList(record.Specialties),
		ServiceAreas:         parseStringList(record.ServiceAreas),
		HomeService:          record.HomeService || record.MobileService,
		Price:                price,
		LastSeen:             lastSeen,
		IsFeaturedSample:     record.IsFeaturedSample,
	}
}

// parseStringList handles array, JSON-string-encoded array, and plain
// comma-separated string encodings. Malformed input yields nil.
func parseStringList(raw json.RawMessage) []string {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return cleanList(list)
	}

	var encoded string
	if err := json.Unmarshal(raw, &encoded); err != nil {
		return nil
	}
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil
	}
	if strings.HasPrefix(encoded, "[") {
		if err := json.Unmarshal([]byte(encoded), &list); err == nil {
			return cleanList(list)
		}
		return nil
	}
	return cleanList(strings.Split(encoded, ","))
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func numberOr(n json.Number, fallback float64) float64 {
	if n == "" {
		return fallback
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return fallback
}

func parseTimestamp(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
