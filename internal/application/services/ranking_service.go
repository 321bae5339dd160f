package services

import (
	"math"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/indastreet/providerdiscovery/internal/domain/entities"
)

// Priority score contributions. Status dominates everything else so that
// bookable providers always rank above busy ones regardless of quality
// signals.
const (
	scoreStatusAvailable = 10000
	scoreStatusBusy      = 5000
	scorePremium         = 500
	scoreVerified        = 300
	scoreMissedPerCount  = 100
	scoreMissedFloor     = 500
)

// recencyBuckets maps "hours since last activity" to score boosts.
var recencyBuckets = []struct {
	maxHours float64
	boost    int
}{
	{1, 200},
	{6, 150},
	{24, 100},
	{72, 50},
	{168, 25},
}

// techniqueKeywords maps special-feature selections to the substring matched
// against a provider's service text.
var techniqueKeywords = map[string]string{
	"coin-rub":      "coin",
	"body-scrub":    "scrub",
	"hot-stones":    "hot stone",
	"aromatherapy":  "aroma",
	"deep-pressure": "deep",
}

// serviceForKeywords maps audience selections to accepted client-preference
// keywords.
var serviceForKeywords = map[string][]string{
	"women":    {"women", "female", "ladies"},
	"men":      {"men", "male", "gentleman"},
	"children": {"children", "kids", "family"},
}

// RankingService assigns priority scores and produces the display order for
// a filtered provider list.
type RankingService struct{}

// NewRankingService creates a new ranking service
func NewRankingService() *RankingService {
	return &RankingService{}
}

// PriorityScore computes the additive ranking score for a provider at the
// given time.
func (s *RankingService) PriorityScore(p *entities.Provider, now time.Time) int {
	score := 0

	switch p.Status {
	case entities.StatusAvailable, entities.StatusOnline:
		score += scoreStatusAvailable
	case entities.StatusBusy:
		score += scoreStatusBusy
	}

	if p.IsPremium || p.AccountType == "premium" {
		score += scorePremium
	}

	if p.IsVerified || p.HasIndustryStandards || len(p.Certifications) > 0 {
		score += scoreVerified
	}

	if !p.LastSeen.IsZero() {
		hoursAgo := now.Sub(p.LastSeen).Hours()
		for _, bucket := range recencyBuckets {
			if hoursAgo <= bucket.maxHours {
				score += bucket.boost
				break
			}
		}
	}

	penalty := p.MissedBookings * scoreMissedPerCount
	if penalty > scoreMissedFloor {
		penalty = scoreMissedFloor
	}
	score -= penalty

	switch {
	case p.Rating >= 4.5:
		score += 100
	case p.Rating >= 4.0:
		score += 75
	case p.Rating >= 3.5:
		score += 50
	}

	switch {
	case p.OrderCount >= 50:
		score += 50
	case p.OrderCount >= 20:
		score += 30
	case p.OrderCount >= 10:
		score += 20
	}

	return score
}

// ApplyAttributeFilters applies the optional, AND-combined attribute filters
// from the selection. The caller owns the empty-result fallback policy.
func (s *RankingService) ApplyAttributeFilters(providers []*entities.Provider, selection entities.FeedSelection) []*entities.Provider {
	if !selection.HasAttributeFilters() {
		return providers
	}

	filtered := make([]*entities.Provider, 0, len(providers))
	for _, p := range providers {
		if matchesAttributes(p, selection) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func matchesAttributes(p *entities.Provider, selection entities.FeedSelection) bool {
	if selection.Gender != "" && p.Gender != strings.ToLower(selection.Gender) {
		return false
	}

	if selection.ServiceFor != "" {
		keywords := serviceForKeywords[strings.ToLower(selection.ServiceFor)]
		prefs := p.ClientPreferences
		matched := prefs == "all" || prefs == "everyone"
		for _, kw := range keywords {
			if strings.Contains(prefs, kw) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	if selection.MassageType != "" {
		if !strings.Contains(p.AllServiceText(), strings.ToLower(selection.MassageType)) {
			return false
		}
	}

	if selection.SpecialFeature != "" && !matchesSpecialFeature(p, strings.ToLower(selection.SpecialFeature)) {
		return false
	}

	if selection.Area != "" {
		inArea := false
		for _, area := range p.ServiceAreas {
			if strings.EqualFold(area, selection.Area) {
				inArea = true
				break
			}
		}
		if !inArea {
			return false
		}
	}

	// Price range is only enforced for providers with a known price.
	if p.Price > 0 {
		if selection.PriceMin > 0 && p.Price < selection.PriceMin {
			return false
		}
		if selection.PriceMax > 0 && p.Price > selection.PriceMax {
			return false
		}
	}

	return true
}

func matchesSpecialFeature(p *entities.Provider, feature string) bool {
	switch feature {
	case "verified-only":
		return p.IsVerified || p.HasIndustryStandards
	case "with-facial":
		return strings.Contains(p.AllServiceText(), "facial")
	case "highly-rated":
		return p.Rating >= 4.5
	case "home-service":
		return p.HomeService
	default:
		if keyword, ok := techniqueKeywords[feature]; ok {
			return strings.Contains(p.AllServiceText(), keyword)
		}
		// Unknown feature selections never match anything; the fallback
		// policy upstream keeps the page from going empty.
		return false
	}
}

// Rank orders the annotated providers in place: priority score descending,
// then distance ascending (only when both sides have one), then price
// ascending with unknown prices last, then a random tiebreak.
//
// The random tiebreak is intentional non-determinism for listing variety:
// ordering is stable within one invocation but not across invocations.
// Callers inject the RNG so tests can pin the seed.
func (s *RankingService) Rank(providers []entities.RankedProvider, now time.Time, rng *rand.Rand) {
	type rankable struct {
		item entities.RankedProvider
		seed float64
	}

	sortable := make([]rankable, len(providers))
	for i := range providers {
		providers[i].PriorityScore = s.PriorityScore(&providers[i].Provider, now)
		sortable[i] = rankable{item: providers[i], seed: rng.Float64()}
	}

	sort.SliceStable(sortable, func(i, j int) bool {
		a, b := &sortable[i].item, &sortable[j].item
		if a.PriorityScore != b.PriorityScore {
			return a.PriorityScore > b.PriorityScore
		}

		if a.DistanceKm != nil && b.DistanceKm != nil && *a.DistanceKm != *b.DistanceKm {
			return *a.DistanceKm < *b.DistanceKm
		}

		pa, pb := priceOrInf(&a.Provider), priceOrInf(&b.Provider)
		if pa != pb {
			return pa < pb
		}

		return sortable[i].seed < sortable[j].seed
	})

	for i := range sortable {
		providers[i] = sortable[i].item
	}
}

func priceOrInf(p *entities.Provider) float64 {
	if p.Price > 0 {
		return p.Price
	}
	return math.Inf(1)
}
