package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance_ZeroForSamePoint(t *testing.T) {
	p := Coordinates{Lat: -7.7956, Lng: 110.3695}
	assert.Equal(t, 0.0, Distance(p, p))
}

func TestDistance_Symmetric(t *testing.T) {
	jakarta := Coordinates{Lat: -6.2088, Lng: 106.8456}
	yogyakarta := Coordinates{Lat: -7.7956, Lng: 110.3695}

	assert.InDelta(t, Distance(jakarta, yogyakarta), Distance(yogyakarta, jakarta), 1e-9)
}

func TestDistance_KnownPair(t *testing.T) {
	jakarta := Coordinates{Lat: -6.2088, Lng: 106.8456}
	bandung := Coordinates{Lat: -6.9175, Lng: 107.6191}

	// Jakarta-Bandung is roughly 115 km great-circle.
	d := Distance(jakarta, bandung)
	assert.InDelta(t, 115, d, 10)
}

func TestFindCityByName_MatchesNameIDAndAlias(t *testing.T) {
	byName := FindCityByName("Yogyakarta")
	require.NotNil(t, byName)
	assert.Equal(t, "yogyakarta", byName.LocationID)

	byID := FindCityByName("nusa-dua")
	require.NotNil(t, byID)
	assert.Equal(t, "Nusa Dua", byID.Name)

	byAlias := FindCityByName("jogja")
	require.NotNil(t, byAlias)
	assert.Equal(t, "yogyakarta", byAlias.LocationID)

	assert.Nil(t, FindCityByName("atlantis"))
}

func TestMatchToCity_WithinRadius(t *testing.T) {
	// A point in central Yogyakarta, slightly off the catalog center.
	point := Coordinates{Lat: -7.80, Lng: 110.37}

	city := MatchToCity(point, 25)
	require.NotNil(t, city)
	assert.Equal(t, "yogyakarta", city.LocationID)
}

func TestMatchToCity_NilOutsideRadius(t *testing.T) {
	// Middle of the Indian Ocean.
	point := Coordinates{Lat: -20.0, Lng: 90.0}
	assert.Nil(t, MatchToCity(point, 25))
}

func TestNearestCities_SortedByDistance(t *testing.T) {
	denpasar := Coordinates{Lat: -8.6705, Lng: 115.2126}

	nearest := NearestCities(denpasar, 50, 3)
	require.NotEmpty(t, nearest)
	assert.Equal(t, "denpasar", nearest[0].LocationID)

	for i := 1; i < len(nearest); i++ {
		assert.LessOrEqual(t,
			Distance(denpasar, nearest[i-1].Coordinates),
			Distance(denpasar, nearest[i].Coordinates),
		)
	}
}

func TestEffectiveCity_FallbackChain(t *testing.T) {
	p := &Provider{City: "Yogyakarta ", LocationID: "bandung", Location: "Jakarta"}
	assert.Equal(t, "yogyakarta", p.EffectiveCity())

	p = &Provider{LocationID: "bandung", Location: "Jakarta"}
	assert.Equal(t, "bandung", p.EffectiveCity())

	p = &Provider{Location: "Jakarta"}
	assert.Equal(t, "jakarta", p.EffectiveCity())

	p = &Provider{}
	assert.Equal(t, "", p.EffectiveCity())
}

func TestIsListable(t *testing.T) {
	assert.True(t, (&Provider{IsLive: true, Status: StatusAvailable}).IsListable())
	assert.True(t, (&Provider{IsLive: false, Status: StatusBusy}).IsListable())
	assert.False(t, (&Provider{IsLive: false, Status: StatusOffline}).IsListable())
	assert.False(t, (&Provider{IsLive: false, Status: ""}).IsListable())
	// Featured samples are always listable.
	assert.True(t, (&Provider{IsFeaturedSample: true}).IsListable())
}
