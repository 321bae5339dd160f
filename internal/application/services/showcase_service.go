package services

import (
	"math/rand"
	"strings"

	"github.com/indastreet/providerdiscovery/internal/domain/entities"
)

// ShowcaseService keeps city listings from going empty: when a target city
// has no real providers, it shows relabeled, non-bookable copies of the
// reference city's providers.
type ShowcaseService struct {
	referenceCity string
	showcaseSize  int
}

// NewShowcaseService creates a new showcase service. referenceCity is the
// canonical location ID whose providers are borrowed (yogyakarta in
// production); size is how many showcase entries are produced.
func NewShowcaseService(referenceCity string, size int) *ShowcaseService {
	if size <= 0 {
		size = 5
	}
	return &ShowcaseService{
		referenceCity: strings.ToLower(strings.TrimSpace(referenceCity)),
		showcaseSize:  size,
	}
}

// ReferenceCity returns the configured reference city ID.
func (s *ShowcaseService) ReferenceCity() string {
	return s.referenceCity
}

// IsReferenceCity reports whether the target resolves to the reference city
// itself (by catalog name, ID, or alias).
func (s *ShowcaseService) IsReferenceCity(targetCity string) bool {
	target := strings.ToLower(strings.TrimSpace(targetCity))
	if target == s.referenceCity {
		return true
	}
	if city := entities.FindCityByName(target); city != nil {
		return city.LocationID == s.referenceCity
	}
	return false
}

// CountRealProviders counts providers that can satisfy a city on their own:
// showcase clones and curated featured samples never count.
func (s *ShowcaseService) CountRealProviders(providers []*entities.Provider) int {
	count := 0
	for _, p := range providers {
		if p.IsShowcaseProfile || p.IsFeaturedSample {
			continue
		}
		count++
	}
	return count
}

// BuildShowcase selects reference-city providers from the full dataset,
// expands them cyclically to the configured size when there are fewer,
// shuffles, and clones the first entries relabeled for targetCity. The
// clones are always busy and never bookable; IsShowcaseProfile is the
// contract downstream renderers use to distinguish them. Original IDs are
// kept so share links keep working.
func (s *ShowcaseService) BuildShowcase(allProviders []*entities.Provider, targetCity string, rng *rand.Rand) []*entities.Provider {
	if len(allProviders) == 0 || s.IsReferenceCity(targetCity) {
		return nil
	}

	source := make([]*entities.Provider, 0)
	for _, p := range allProviders {
		if p.IsShowcaseProfile {
			// Clones never seed further clones.
			continue
		}
		if p.EffectiveCity() == s.referenceCity {
			source = append(source, p)
		}
	}
	if len(source) == 0 {
		return nil
	}

	// Cyclic expansion up to the showcase size, then Fisher-Yates shuffle
	// so each city sees a different sample.
	expanded := make([]*entities.Provider, 0, s.showcaseSize)
	for i := 0; len(expanded) < s.showcaseSize && i < s.showcaseSize*len(source); i++ {
		expanded = append(expanded, source[i%len(source)])
	}
	for i := len(expanded) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		expanded[i], expanded[j] = expanded[j], expanded[i]
	}

	take := s.showcaseSize
	if take > len(expanded) {
		take = len(expanded)
	}

	target := strings.ToLower(strings.TrimSpace(targetCity))
	clones := make([]*entities.Provider, 0, take)
	for _, src := range expanded[:take] {
		clone := *src
		clone.Status = entities.StatusBusy
		clone.IsAvailable = false
		clone.IsLive = false
		clone.City = target
		clone.LocationID = target
		clone.Location = titleCaseCity(target) + ", Indonesia"
		clone.IsShowcaseProfile = true
		clone.ShowcaseSourceID = src.ID
		clone.ShowcaseCity = target
		clones = append(clones, &clone)
	}
	return clones
}

// NeedsShowcase reports whether the showcase trigger holds: a non-reference
// target city whose filtered set contains zero real providers.
func (s *ShowcaseService) NeedsShowcase(cityFiltered []*entities.Provider, targetCity string) bool {
	target := strings.ToLower(strings.TrimSpace(targetCity))
	if target == "" || target == CityAll || s.IsReferenceCity(target) {
		return false
	}
	return s.CountRealProviders(cityFiltered) == 0
}

func titleCaseCity(city string) string {
	if found := entities.FindCityByName(city); found != nil {
		return found.Name
	}
	words := strings.Split(city, " ")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
