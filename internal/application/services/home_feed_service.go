package services

import (
	"math/rand"
	"sort"
	"time"

	"github.com/indastreet/providerdiscovery/internal/domain/entities"
	"github.com/indastreet/providerdiscovery/pkg/config"
)

// HomeFeedService composes the home listing pipeline: city filter →
// attribute filters → empty-page fallback → showcase backfill → display
// status → ranking → grouping. It is a pure, synchronous transformation of
// its inputs; callers re-run it whenever the provider list, user location,
// or filter selections change.
type HomeFeedService struct {
	cityFilter    *CityFilterService
	ranking       *RankingService
	displayStatus *DisplayStatusService
	showcase      *ShowcaseService
	cfg           config.PipelineConfig
}

// NewHomeFeedService creates a new home feed service
func NewHomeFeedService(
	cityFilter *CityFilterService,
	ranking *RankingService,
	displayStatus *DisplayStatusService,
	showcase *ShowcaseService,
	cfg config.PipelineConfig,
) *HomeFeedService {
	return &HomeFeedService{
		cityFilter:    cityFilter,
		ranking:       ranking,
		displayStatus: displayStatus,
		showcase:      showcase,
		cfg:           cfg,
	}
}

// Build runs the pipeline over a fresh provider snapshot. userLocation may
// be nil (geolocation denied or unavailable); distance annotation and the
// distance tie-break are skipped in that case, nothing else degrades.
func (s *HomeFeedService) Build(
	providers []*entities.Provider,
	userLocation *entities.Coordinates,
	selection entities.FeedSelection,
	now time.Time,
	rng *rand.Rand,
) *entities.HomeFeed {
	listable := s.cityFilter.FilterListable(providers)
	if selection.ProviderType != "" {
		byType := listable[:0:0]
		for _, p := range listable {
			if p.Type == selection.ProviderType {
				byType = append(byType, p)
			}
		}
		listable = byType
	}

	cityFiltered := s.cityFilter.FilterByCity(listable, selection.City)

	baseList := s.ranking.ApplyAttributeFilters(cityFiltered, selection)

	// When optional filters remove everyone but the city has providers,
	// show the full city list rather than an empty page.
	if len(baseList) == 0 && len(cityFiltered) > 0 {
		baseList = cityFiltered
	}

	showcaseUsed := false
	if s.showcase.NeedsShowcase(cityFiltered, selection.City) {
		clones := s.showcase.BuildShowcase(listable, selection.City, rng)
		if len(clones) > 0 {
			baseList = append(append([]*entities.Provider{}, baseList...), clones...)
			showcaseUsed = true
		}
	}

	annotated := s.annotate(baseList, userLocation)
	s.ranking.Rank(annotated, now, rng)

	if s.cfg.MaxPerCity > 0 && selection.City != "" && selection.City != CityAll && len(annotated) > s.cfg.MaxPerCity {
		annotated = annotated[:s.cfg.MaxPerCity]
	}

	byArea := make(map[string][]entities.RankedProvider)
	for _, rp := range annotated {
		byArea[rp.LocationArea] = append(byArea[rp.LocationArea], rp)
	}
	areas := make([]string, 0, len(byArea))
	for area := range byArea {
		areas = append(areas, area)
	}
	sort.Strings(areas)

	return &entities.HomeFeed{
		Providers:    annotated,
		ByArea:       byArea,
		Areas:        areas,
		Total:        len(annotated),
		ShowcaseUsed: showcaseUsed,
	}
}

// annotate attaches distance, location area, and display status to each
// provider. The location area prefers the GPS-matched catalog city and falls
// back to the provider's own location fields.
func (s *HomeFeedService) annotate(providers []*entities.Provider, userLocation *entities.Coordinates) []entities.RankedProvider {
	annotated := make([]entities.RankedProvider, 0, len(providers))
	for _, p := range providers {
		rp := entities.RankedProvider{Provider: *p}

		rp.LocationArea = p.EffectiveCity()
		if rp.LocationArea == "" {
			rp.LocationArea = "unknown"
		}

		if p.Coordinates != nil {
			if matched := entities.MatchToCity(*p.Coordinates, s.cfg.CityMatchRadiusKm); matched != nil {
				rp.LocationArea = matched.LocationID
			}
			if userLocation != nil {
				d := entities.Distance(*userLocation, *p.Coordinates)
				rp.DistanceKm = &d
			}
		}

		rp.RealStatus = s.displayStatus.RealStatus(p)
		rp.DisplayStatus = s.displayStatus.DisplayStatus(p)

		annotated = append(annotated, rp)
	}
	return annotated
}

// DetectCity resolves device coordinates to the nearest catalog city using
// the wider auto-detect radius, or nil when the user is nowhere near a
// known city.
func (s *HomeFeedService) DetectCity(point entities.Coordinates) *entities.CityLocation {
	return entities.MatchToCity(point, s.cfg.AutoDetectRadiusKm)
}
