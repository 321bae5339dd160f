package services

import (
	"testing"

	"github.com/indastreet/providerdiscovery/internal/domain/entities"
	"github.com/stretchr/testify/assert"
)

func cityProvider(id, city, locationID, location string) *entities.Provider {
	return &entities.Provider{ID: id, Name: id, City: city, LocationID: locationID, Location: location, IsLive: true, Status: entities.StatusAvailable}
}

func TestFilterByCity_AllAndEmptyReturnEverything(t *testing.T) {
	svc := NewCityFilterService()
	providers := []*entities.Provider{
		cityProvider("a", "yogyakarta", "", ""),
		cityProvider("b", "", "", ""),
	}

	assert.Len(t, svc.FilterByCity(providers, ""), 2)
	assert.Len(t, svc.FilterByCity(providers, "all"), 2)
	assert.Len(t, svc.FilterByCity(providers, "ALL"), 2)
}

func TestFilterByCity_ExactCaseInsensitiveMatch(t *testing.T) {
	svc := NewCityFilterService()
	providers := []*entities.Provider{
		cityProvider("a", "Yogyakarta", "", ""),
		cityProvider("b", "bandung", "", ""),
		cityProvider("c", "yogyakarta barat", "", ""),
	}

	got := svc.FilterByCity(providers, "yogyakarta")
	assert.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}

func TestFilterByCity_ResolutionOrder(t *testing.T) {
	svc := NewCityFilterService()
	providers := []*entities.Provider{
		// City wins over conflicting locationId.
		cityProvider("a", "bandung", "yogyakarta", ""),
		// locationId used when city empty.
		cityProvider("b", "", "yogyakarta", ""),
		// location used last.
		cityProvider("c", "", "", "Yogyakarta"),
	}

	got := svc.FilterByCity(providers, "yogyakarta")
	assert.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
}

func TestFilterByCity_NoLocationExcluded(t *testing.T) {
	svc := NewCityFilterService()
	providers := []*entities.Provider{
		cityProvider("a", "", "", ""),
	}

	assert.Empty(t, svc.FilterByCity(providers, "yogyakarta"))
}

func TestFilterByCity_DoesNotMutateInput(t *testing.T) {
	svc := NewCityFilterService()
	providers := []*entities.Provider{
		cityProvider("a", "yogyakarta", "", ""),
		cityProvider("b", "bandung", "", ""),
	}

	_ = svc.FilterByCity(providers, "yogyakarta")
	assert.Len(t, providers, 2)
	assert.Equal(t, "a", providers[0].ID)
	assert.Equal(t, "b", providers[1].ID)
}

func TestFilterListable_HidesOfflineUnpublished(t *testing.T) {
	svc := NewCityFilterService()
	providers := []*entities.Provider{
		{ID: "live", IsLive: true, Status: entities.StatusAvailable},
		{ID: "offline", IsLive: false, Status: entities.StatusOffline},
		{ID: "nostatus", IsLive: false, Status: ""},
		{ID: "sample", IsFeaturedSample: true},
	}

	got := svc.FilterListable(providers)
	ids := make([]string, 0, len(got))
	for _, p := range got {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"live", "sample"}, ids)
}
