package entities

import (
	"math"
	"sort"
	"strings"
)

// CityLocation is a catalog entry for an Indonesian city or tourist
// destination used for location matching.
type CityLocation struct {
	Name                 string      `json:"name"`
	LocationID           string      `json:"location_id"`
	Province             string      `json:"province"`
	Coordinates          Coordinates `json:"coordinates"`
	IsMainCity           bool        `json:"is_main_city"`
	IsTouristDestination bool        `json:"is_tourist_destination"`
	Aliases              []string    `json:"aliases,omitempty"`
}

// Cities is the flattened catalog of known city centers. Order matters: when
// two centers are exactly equidistant from a point, the one listed first wins.
var Cities = []CityLocation{
	{Name: "Denpasar", LocationID: "denpasar", Province: "Bali", Coordinates: Coordinates{Lat: -8.6705, Lng: 115.2126}, IsMainCity: true},
	{Name: "Ubud", LocationID: "ubud", Province: "Bali", Coordinates: Coordinates{Lat: -8.5069, Lng: 115.2625}, IsTouristDestination: true},
	{Name: "Canggu", LocationID: "canggu", Province: "Bali", Coordinates: Coordinates{Lat: -8.6482, Lng: 115.1436}, IsTouristDestination: true},
	{Name: "Seminyak", LocationID: "seminyak", Province: "Bali", Coordinates: Coordinates{Lat: -8.6953, Lng: 115.1668}, IsTouristDestination: true},
	{Name: "Kuta", LocationID: "kuta", Province: "Bali", Coordinates: Coordinates{Lat: -8.7205, Lng: 115.1693}, IsTouristDestination: true},
	{Name: "Sanur", LocationID: "sanur", Province: "Bali", Coordinates: Coordinates{Lat: -8.6882, Lng: 115.2613}, IsTouristDestination: true},
	{Name: "Nusa Dua", LocationID: "nusa-dua", Province: "Bali", Coordinates: Coordinates{Lat: -8.7968, Lng: 115.2285}, IsTouristDestination: true},
	{Name: "Jimbaran", LocationID: "jimbaran", Province: "Bali", Coordinates: Coordinates{Lat: -8.7679, Lng: 115.1668}, IsTouristDestination: true},
	{Name: "Jakarta", LocationID: "jakarta", Province: "DKI Jakarta", Coordinates: Coordinates{Lat: -6.2088, Lng: 106.8456}, IsMainCity: true, Aliases: []string{"DKI Jakarta", "Jakarta Pusat"}},
	{Name: "Surabaya", LocationID: "surabaya", Province: "East Java", Coordinates: Coordinates{Lat: -7.2575, Lng: 112.7521}, IsMainCity: true},
	{Name: "Bandung", LocationID: "bandung", Province: "West Java", Coordinates: Coordinates{Lat: -6.9175, Lng: 107.6191}, IsMainCity: true},
	{Name: "Yogyakarta", LocationID: "yogyakarta", Province: "Special Region of Yogyakarta", Coordinates: Coordinates{Lat: -7.7956, Lng: 110.3695}, IsMainCity: true, Aliases: []string{"Jogja", "Yogya", "Jogjakarta"}},
	{Name: "Semarang", LocationID: "semarang", Province: "Central Java", Coordinates: Coordinates{Lat: -6.9667, Lng: 110.4167}, IsMainCity: true},
	{Name: "Solo", LocationID: "solo", Province: "Central Java", Coordinates: Coordinates{Lat: -7.5755, Lng: 110.8243}, IsMainCity: true, Aliases: []string{"Surakarta"}},
	{Name: "Malang", LocationID: "malang", Province: "East Java", Coordinates: Coordinates{Lat: -7.9666, Lng: 112.6326}, IsMainCity: true},
	{Name: "Bekasi", LocationID: "bekasi", Province: "West Java", Coordinates: Coordinates{Lat: -6.2349, Lng: 106.9896}, IsMainCity: true},
	{Name: "Depok", LocationID: "depok", Province: "West Java", Coordinates: Coordinates{Lat: -6.4025, Lng: 106.7942}, IsMainCity: true},
	{Name: "Bogor", LocationID: "bogor", Province: "West Java", Coordinates: Coordinates{Lat: -6.5944, Lng: 106.7892}, IsMainCity: true},
	{Name: "Banyuwangi", LocationID: "banyuwangi", Province: "East Java", Coordinates: Coordinates{Lat: -8.2191, Lng: 114.3689}, IsTouristDestination: true},
	{Name: "Mataram", LocationID: "mataram", Province: "West Nusa Tenggara", Coordinates: Coordinates{Lat: -8.5833, Lng: 116.1167}, IsMainCity: true},
	{Name: "Senggigi", LocationID: "senggigi", Province: "West Nusa Tenggara", Coordinates: Coordinates{Lat: -8.4864, Lng: 116.0447}, IsTouristDestination: true},
	{Name: "Labuan Bajo", LocationID: "labuan-bajo", Province: "East Nusa Tenggara", Coordinates: Coordinates{Lat: -8.4964, Lng: 119.8877}, IsTouristDestination: true},
	{Name: "Medan", LocationID: "medan", Province: "North Sumatra", Coordinates: Coordinates{Lat: 3.5952, Lng: 98.6722}, IsMainCity: true},
	{Name: "Palembang", LocationID: "palembang", Province: "South Sumatra", Coordinates: Coordinates{Lat: -2.9761, Lng: 104.7754}, IsMainCity: true},
	{Name: "Padang", LocationID: "padang", Province: "West Sumatra", Coordinates: Coordinates{Lat: -0.9492, Lng: 100.3543}, IsMainCity: true},
	{Name: "Pekanbaru", LocationID: "pekanbaru", Province: "Riau", Coordinates: Coordinates{Lat: 0.5333, Lng: 101.45}, IsMainCity: true},
	{Name: "Bandar Lampung", LocationID: "bandar-lampung", Province: "Lampung", Coordinates: Coordinates{Lat: -5.4292, Lng: 105.261}, IsMainCity: true},
	{Name: "Makassar", LocationID: "makassar", Province: "South Sulawesi", Coordinates: Coordinates{Lat: -5.1477, Lng: 119.4327}, IsMainCity: true, Aliases: []string{"Ujung Pandang"}},
	{Name: "Balikpapan", LocationID: "balikpapan", Province: "East Kalimantan", Coordinates: Coordinates{Lat: -1.2379, Lng: 116.8529}, IsMainCity: true},
}

const earthRadiusKm = 6371.0

// Distance returns the great-circle distance between two points in
// kilometers, using the Haversine formula.
func Distance(a, b Coordinates) float64 {
	dLat := degreesToRadians(b.Lat - a.Lat)
	dLng := degreesToRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(degreesToRadians(a.Lat))*math.Cos(degreesToRadians(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// FindCityByName looks a city up by name, location ID, or alias with exact,
// case-insensitive matching. Partial matches are deliberately not supported:
// "Yogyakarta" must not match "Yogyakarta Selatan".
func FindCityByName(name string) *CityLocation {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return nil
	}

	for i := range Cities {
		city := &Cities[i]
		if strings.ToLower(city.Name) == normalized || city.LocationID == normalized {
			return city
		}
		for _, alias := range city.Aliases {
			if strings.ToLower(alias) == normalized {
				return city
			}
		}
	}
	return nil
}

// NearestCities returns up to limit catalog cities within maxKm of the point,
// closest first. The sort is stable over catalog order.
func NearestCities(point Coordinates, maxKm float64, limit int) []CityLocation {
	type cityDistance struct {
		city CityLocation
		dist float64
	}

	candidates := make([]cityDistance, 0, len(Cities))
	for _, city := range Cities {
		d := Distance(point, city.Coordinates)
		if d <= maxKm {
			candidates = append(candidates, cityDistance{city: city, dist: d})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].dist < candidates[j].dist
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}

	result := make([]CityLocation, len(candidates))
	for i, c := range candidates {
		result[i] = c.city
	}
	return result
}

// MatchToCity maps a point to the nearest catalog city within maxKm, or nil
// when no center qualifies.
func MatchToCity(point Coordinates, maxKm float64) *CityLocation {
	nearest := NearestCities(point, maxKm, 1)
	if len(nearest) == 0 {
		return nil
	}
	return &nearest[0]
}
