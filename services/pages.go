package services

import (
	"sort"

	"fomezero/models"
)

const (
	DefaultTableLimit = 10
	MinTableLimit     = 1
	MaxTableLimit     = 20

	topCountryDefaults = 4
	topCities          = 10
	topRatedCities     = 7
	topRestaurants     = 5
	topCuisines        = 9

	highRating = 4.0
	lowRating  = 2.5
)

// Page defaults used by the city and cuisine views when nothing is selected.
var (
	PageDefaultCountries = []string{"India", "Brazil", "Canada", "South Africa", "Singapure"}
	PageDefaultCuisines  = []string{"Brazilian", "Japanese", "Italian", "Arabian", "BBQ"}
)

// TopCountries returns the n country names with the most records.
func TopCountries(rs []models.Restaurant, n int) []string {
	stats := Ranked(rs, []Dimension{ByCountry}, MetricRows, true, n)
	names := make([]string, 0, len(stats))
	for _, s := range stats {
		names = append(names, s.CountryName)
	}
	return names
}

// FilterOptions lists what the sidebar selectors can offer.
func FilterOptions(s *Snapshot) models.FilterOptions {
	return models.FilterOptions{
		Countries:        DistinctCountries(s.Restaurants),
		Cuisines:         DistinctCuisines(s.Restaurants),
		DefaultCountries: TopCountries(s.Restaurants, topCountryDefaults),
		PageCountries:    PageDefaultCountries,
		PageCuisines:     PageDefaultCuisines,
		MinLimit:         MinTableLimit,
		MaxLimit:         MaxTableLimit,
		DefaultLimit:     DefaultTableLimit,
	}
}

// HomePage builds the overview metrics over the whole dataset.
func HomePage(s *Snapshot) models.HomePage {
	return models.HomePage{
		Overview: Summarize(s.Restaurants),
		Snapshot: s.Info(),
	}
}

// MapPage returns restaurant markers for the selected countries, defaulting
// to the four countries with the most restaurants.
func MapPage(s *Snapshot, countries []string) models.MapPage {
	if len(countries) == 0 {
		countries = TopCountries(s.Restaurants, topCountryDefaults)
	}
	selected := Filter{Countries: countries}.Apply(s.Restaurants)
	markers := make([]models.Marker, 0, len(selected))
	for _, r := range selected {
		markers = append(markers, models.Marker{
			RestaurantName:  r.RestaurantName,
			CountryName:     r.CountryName,
			Latitude:        r.Latitude,
			Longitude:       r.Longitude,
			AggregateRating: r.AggregateRating,
		})
	}
	return models.MapPage{Countries: countries, Markers: markers}
}

// CountriesPage builds the leader cards (whole dataset) and the per-country
// series (selected countries, default top four).
func CountriesPage(s *Snapshot, countries []string) models.CountriesPage {
	if len(countries) == 0 {
		countries = TopCountries(s.Restaurants, topCountryDefaults)
	}
	all := s.Restaurants
	selected := Filter{Countries: countries}.Apply(all)
	byCountry := []Dimension{ByCountry}

	page := models.CountriesPage{
		Countries:   countries,
		Leaders:     []models.Leader{},
		Restaurants: Ranked(selected, byCountry, MetricRestaurants, true, 0),
		Cities:      Ranked(selected, byCountry, MetricCities, true, 0),
		Votes:       Ranked(selected, byCountry, MetricVotes, true, 0),
		Rating:      Ranked(selected, byCountry, MetricRating, true, 0),
		Cuisines:    Ranked(selected, byCountry, MetricCuisines, true, 0),
		CostUSD:     Ranked(selected, byCountry, MetricCostUSD, true, 0),
		Share:       Ranked(all, byCountry, MetricRows, true, 0),
	}

	cards := []struct {
		title  string
		metric Metric
	}{
		{"Most registered restaurants", MetricRestaurants},
		{"Most registered cities", MetricCities},
		{"Most votes", MetricVotes},
		{"Best mean rating", MetricRating},
		{"Most cuisines offered", MetricCuisines},
		{"Highest mean cost for two (USD)", MetricCostUSD},
	}
	for _, c := range cards {
		top := Ranked(all, byCountry, c.metric, true, 1)
		if len(top) == 0 {
			continue
		}
		v := top[0].Value
		if c.metric == MetricCostUSD {
			v = RoundTo(v, 2)
		}
		page.Leaders = append(page.Leaders, models.Leader{Title: c.title, Label: top[0].CountryName, Value: v})
	}
	return page
}

// CitiesPage ranks cities within the selected countries.
func CitiesPage(s *Snapshot, countries []string) models.CitiesPage {
	if len(countries) == 0 {
		countries = PageDefaultCountries
	}
	selected := Filter{Countries: countries}.Apply(s.Restaurants)
	byCity := []Dimension{ByCountry, ByCity}

	high := Where(selected, func(r models.Restaurant) bool { return r.AggregateRating > highRating })
	low := Where(selected, func(r models.Restaurant) bool { return r.AggregateRating < lowRating })

	return models.CitiesPage{
		Countries:       countries,
		TopRestaurants:  Ranked(selected, byCity, MetricRestaurants, true, topCities),
		TopCuisines:     Ranked(selected, byCity, MetricCuisines, true, topCities),
		TopCostUSD:      Ranked(selected, byCity, MetricCostUSD, true, topCities),
		HighRatedCities: Ranked(high, byCity, MetricRows, true, topRatedCities),
		LowRatedCities:  Ranked(low, byCity, MetricRows, true, topRatedCities),
	}
}

// CuisinesPage builds the restaurant rankings and the best/worst cuisines.
// limit is the size of the filtered restaurant table.
func CuisinesPage(s *Snapshot, countries, cuisines []string, limit int) models.CuisinesPage {
	if len(countries) == 0 {
		countries = PageDefaultCountries
	}
	if len(cuisines) == 0 {
		cuisines = PageDefaultCuisines
	}
	all := s.Restaurants
	selected := Filter{Countries: countries, Cuisines: cuisines}.Apply(all)
	rated := Where(all, func(r models.Restaurant) bool { return r.AggregateRating != 0 })

	return models.CuisinesPage{
		Countries:     countries,
		Cuisines:      cuisines,
		TopRated:      TopRatedRestaurants(all, topRestaurants),
		Table:         TopRatedRestaurants(selected, limit),
		BestCuisines:  Ranked(all, []Dimension{ByCuisine}, MetricRating, true, topCuisines),
		WorstCuisines: Ranked(rated, []Dimension{ByCuisine}, MetricRating, false, topCuisines),
	}
}

// TopRatedRestaurants returns at most n restaurants by rating, one row per
// restaurant id. Ties go to the lower id.
func TopRatedRestaurants(rs []models.Restaurant, n int) []models.RestaurantRow {
	best := make(map[int64]models.Restaurant)
	for _, r := range rs {
		if prev, ok := best[r.RestaurantID]; !ok || r.AggregateRating > prev.AggregateRating {
			best[r.RestaurantID] = r
		}
	}

	unique := make([]models.Restaurant, 0, len(best))
	for _, r := range best {
		unique = append(unique, r)
	}
	sort.Slice(unique, func(i, j int) bool {
		if unique[i].AggregateRating != unique[j].AggregateRating {
			return unique[i].AggregateRating > unique[j].AggregateRating
		}
		return unique[i].RestaurantID < unique[j].RestaurantID
	})
	if n >= 0 && len(unique) > n {
		unique = unique[:n]
	}

	rows := make([]models.RestaurantRow, 0, len(unique))
	for _, r := range unique {
		rows = append(rows, models.RestaurantRow{
			RestaurantID:              r.RestaurantID,
			RestaurantName:            r.RestaurantName,
			CountryName:               r.CountryName,
			City:                      r.City,
			Cuisines:                  r.Cuisines,
			AverageCostForTwoUSDollar: r.AverageCostForTwoUSDollar,
			AggregateRating:           r.AggregateRating,
			Votes:                     r.Votes,
		})
	}
	return rows
}

// Page returns the 1-based page of rs with size entries per page, and the
// number of pages.
func Page(rs []models.Restaurant, page, size int) ([]models.Restaurant, int) {
	if size <= 0 {
		size = len(rs)
	}
	if size == 0 {
		return []models.Restaurant{}, 0
	}
	pages := (len(rs) + size - 1) / size
	if page < 1 || page > pages {
		return []models.Restaurant{}, pages
	}
	start := (page - 1) * size
	end := start + size
	if end > len(rs) {
		end = len(rs)
	}
	return rs[start:end], pages
}
