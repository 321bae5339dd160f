package entities

// FeedSelection carries the user's filter selections for one home feed
// request. All attribute fields are optional and AND-combined.
type FeedSelection struct {
	// City is the canonical target location ID. "all" or "" means no city
	// restriction.
	City string `json:"city"`

	ProviderType ProviderType `json:"provider_type,omitempty"`

	Gender         string `json:"gender,omitempty"`
	ServiceFor     string `json:"service_for,omitempty"`
	MassageType    string `json:"massage_type,omitempty"`
	SpecialFeature string `json:"special_feature,omitempty"`
	Area           string `json:"area,omitempty"`

	// Price range in IDR. Both zero means no price filter.
	PriceMin float64 `json:"price_min,omitempty"`
	PriceMax float64 `json:"price_max,omitempty"`
}

// HasAttributeFilters reports whether any optional attribute filter is set.
func (s FeedSelection) HasAttributeFilters() bool {
	return s.Gender != "" ||
		s.ServiceFor != "" ||
		s.MassageType != "" ||
		s.SpecialFeature != "" ||
		s.Area != "" ||
		s.PriceMin > 0 ||
		s.PriceMax > 0
}

// RankedProvider is a provider annotated by the home feed pipeline.
type RankedProvider struct {
	Provider

	// DistanceKm is the distance to the requesting user, nil when either
	// side has no resolvable coordinates.
	DistanceKm *float64 `json:"_distance,omitempty"`

	// LocationArea is the area key used for sectioned rendering: the
	// GPS-matched catalog city when coordinates resolve, otherwise the
	// provider's own location fields.
	LocationArea string `json:"_location_area"`

	PriorityScore int           `json:"priority_score"`
	RealStatus    bool          `json:"real_status"`
	DisplayStatus DisplayStatus `json:"display_status"`
}

// HomeFeed is the ordered, annotated, grouped pipeline output.
type HomeFeed struct {
	Providers []RankedProvider            `json:"providers"`
	ByArea    map[string][]RankedProvider `json:"by_area"`
	// Areas is the sorted list of ByArea keys.
	Areas        []string `json:"areas"`
	Total        int      `json:"total"`
	ShowcaseUsed bool     `json:"showcase_used"`
}
