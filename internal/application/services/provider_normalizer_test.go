package services

import (
	"encoding/json"
	"testing"

	"github.com/indastreet/providerdiscovery/internal/domain/entities"
	"github.com/indastreet/providerdiscovery/internal/infrastructure/clients/providerapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCoordinates_ObjectForm(t *testing.T) {
	coords := ParseCoordinates(json.RawMessage(`{"lat": -6.2, "lng": 106.8}`))
	require.NotNil(t, coords)
	assert.Equal(t, -6.2, coords.Lat)
	assert.Equal(t, 106.8, coords.Lng)
}

func TestParseCoordinates_ArrayFormIsLngLat(t *testing.T) {
	coords := ParseCoordinates(json.RawMessage(`[106.8, -6.2]`))
	require.NotNil(t, coords)
	assert.Equal(t, -6.2, coords.Lat)
	assert.Equal(t, 106.8, coords.Lng)
}

func TestParseCoordinates_StringEncodedObject(t *testing.T) {
	coords := ParseCoordinates(json.RawMessage(`"{\"lat\":-6.2,\"lng\":106.8}"`))
	require.NotNil(t, coords)
	assert.Equal(t, -6.2, coords.Lat)
	assert.Equal(t, 106.8, coords.Lng)
}

func TestParseCoordinates_MalformedYieldsNil(t *testing.T) {
	for _, raw := range []string{"", "null", `"not json"`, `{"lat": -6.2}`, `[106.8]`, `42`} {
		assert.Nil(t, ParseCoordinates(json.RawMessage(raw)), "input %q", raw)
	}
}

func TestNormalizeStatus(t *testing.T) {
	assert.Equal(t, entities.StatusAvailable, NormalizeStatus("Available"))
	assert.Equal(t, entities.StatusAvailable, NormalizeStatus(" open "))
	assert.Equal(t, entities.StatusOnline, NormalizeStatus("ONLINE"))
	assert.Equal(t, entities.StatusBusy, NormalizeStatus("occupied"))
	assert.Equal(t, entities.StatusOffline, NormalizeStatus("inactive"))
	assert.Equal(t, "", NormalizeStatus("on holiday"))
}

func TestNormalizeProvider_BasicFields(t *testing.T) {
	live := true
	record := providerapi.RawProviderRecord{
		ID:          "t-1",
		Name:        "Sari Wellness",
		Kind:        "therapist",
		City:        "Yogyakarta",
		Status:      "available",
		IsLive:      &live,
		Rating:      json.Number("4.8"),
		OrderCount:  json.Number("120"),
		Price:       json.Number("150000"),
		Gender:      "female",
		Services:    json.RawMessage(`["Balinese Massage", "Aromatherapy"]`),
		Coordinates: json.RawMessage(`{"lat": -7.7956, "lng": 110.3695}`),
	}

	p := NormalizeProvider(record, 25)
	assert.Equal(t, "t-1", p.ID)
	assert.Equal(t, entities.ProviderTypeTherapist, p.Type)
	assert.Equal(t, "yogyakarta", p.EffectiveCity())
	assert.Equal(t, entities.StatusAvailable, p.Status)
	assert.True(t, p.IsLive)
	assert.Equal(t, 4.8, p.Rating)
	assert.Equal(t, 120, p.OrderCount)
	assert.Equal(t, 150000.0, p.Price)
	assert.Equal(t, []string{"Balinese Massage", "Aromatherapy"}, p.Services)
	require.NotNil(t, p.Coordinates)
}

func TestNormalizeProvider_GPSCityBackfill(t *testing.T) {
	record := providerapi.RawProviderRecord{
		ID:          "t-2",
		Name:        "No City Therapist",
		Kind:        "therapist",
		Coordinates: json.RawMessage(`{"lat": -7.80, "lng": 110.37}`),
	}

	p := NormalizeProvider(record, 25)
	assert.Equal(t, "yogyakarta", p.City)
}

func TestNormalizeProvider_FallbackFields(t *testing.T) {
	record := providerapi.RawProviderRecord{
		DocID:               "doc-9",
		Name:                "Fallback Spa",
		Kind:                "place",
		Availability:        "busy",
		AverageRating:       json.Number("4.1"),
		MissedBookingsCount: json.Number("3"),
		BasePrice:           json.Number("200000"),
		TherapistGender:     "male",
		MassageTypes:        json.RawMessage(`"[\"Hot Stone\"]"`),
	}

	p := NormalizeProvider(record, 25)
	assert.Equal(t, "doc-9", p.ID)
	assert.Equal(t, entities.StatusBusy, p.Status)
	assert.Equal(t, 4.1, p.Rating)
	assert.Equal(t, 3, p.MissedBookings)
	assert.Equal(t, 200000.0, p.Price)
	assert.Equal(t, "male", p.Gender)
	assert.Equal(t, []string{"Hot Stone"}, p.Services)
}

func TestNormalizeProvider_GeneratesIDWhenMissing(t *testing.T) {
	p := NormalizeProvider(providerapi.RawProviderRecord{Name: "Anonymous"}, 25)
	assert.NotEmpty(t, p.ID)
}

func TestParseStringList_CommaString(t *testing.T) {
	got := parseStringList(json.RawMessage(`"Swedish, Deep Tissue , "`))
	assert.Equal(t, []string{"Swedish", "Deep Tissue"}, got)
}
