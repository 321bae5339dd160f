package services

import (
	"strings"

	"github.com/indastreet/providerdiscovery/internal/domain/entities"
)

// CityAll is the sentinel target meaning "no city restriction".
const CityAll = "all"

// CityFilterService selects providers whose location exactly matches a
// target city. Matching is exact, case-insensitive string equality — no
// partial or fuzzy matching, so "yogyakarta" never picks up
// "yogyakarta selatan".
type CityFilterService struct{}

// NewCityFilterService creates a new city filter service
func NewCityFilterService() *CityFilterService {
	return &CityFilterService{}
}

// FilterByCity returns the providers whose effective city equals targetCity.
//
// Policy: a target of "all" or "" returns the input unchanged ("show all").
// The legacy code was split between "show all" and "show nothing" for unset
// targets; "show all" is canonical here since an unset city means the caller
// wants the whole catalog.
//
// Providers with no resolvable city field are excluded, never silently
// included. The input slice is not mutated.
func (s *CityFilterService) FilterByCity(providers []*entities.Provider, targetCity string) []*entities.Provider {
	target := strings.ToLower(strings.TrimSpace(targetCity))
	if target == "" || target == CityAll {
		return providers
	}

	filtered := make([]*entities.Provider, 0, len(providers))
	for _, p := range providers {
		city := p.EffectiveCity()
		if city == "" {
			continue
		}
		if city == target {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// FilterListable drops providers that may not appear in live listings
// (unpublished with offline/empty status, unless featured samples).
func (s *CityFilterService) FilterListable(providers []*entities.Provider) []*entities.Provider {
	listable := make([]*entities.Provider, 0, len(providers))
	for _, p := range providers {
		if p.IsListable() {
			listable = append(listable, p)
		}
	}
	return listable
}
