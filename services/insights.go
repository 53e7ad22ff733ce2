package services

import (
	"math"
	"sort"
	"strconv"

	"fomezero/models"
)

// Dimension is a column a table can be grouped by.
type Dimension int

const (
	ByCountry Dimension = iota
	ByCity
	ByCuisine
)

// Metric is what an aggregated table measures per group.
type Metric int

const (
	MetricRestaurants Metric = iota // distinct restaurant ids
	MetricCities                    // distinct cities
	MetricCuisines                  // distinct cuisines
	MetricVotes                     // sum of votes
	MetricRating                    // mean aggregate rating
	MetricCostUSD                   // mean cost for two in USD
	MetricRows                      // number of records
)

// Filter restricts records by country display name and cuisine. An empty
// list places no restriction on that field.
type Filter struct {
	Countries []string
	Cuisines  []string
}

func (f Filter) Apply(rs []models.Restaurant) []models.Restaurant {
	countries := toSet(f.Countries)
	cuisines := toSet(f.Cuisines)
	return Where(rs, func(r models.Restaurant) bool {
		if countries != nil {
			if _, ok := countries[r.CountryName]; !ok {
				return false
			}
		}
		if cuisines != nil {
			if _, ok := cuisines[r.Cuisines]; !ok {
				return false
			}
		}
		return true
	})
}

func toSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

// Where returns the records matching keep, in order.
func Where(rs []models.Restaurant, keep func(models.Restaurant) bool) []models.Restaurant {
	out := make([]models.Restaurant, 0, len(rs))
	for _, r := range rs {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

type groupKey struct {
	country, city, cuisine string
}

type accumulator struct {
	rows     int
	sum      float64
	distinct map[string]struct{}
}

// Aggregate groups rs by dims and computes metric per group. Groups come back
// in first-seen order; use SortStats for ranking.
func Aggregate(rs []models.Restaurant, dims []Dimension, metric Metric) []models.GroupStat {
	var order []groupKey
	groups := make(map[groupKey]*accumulator)

	for _, r := range rs {
		k := keyFor(r, dims)
		acc, ok := groups[k]
		if !ok {
			acc = &accumulator{distinct: make(map[string]struct{})}
			groups[k] = acc
			order = append(order, k)
		}
		acc.rows++
		switch metric {
		case MetricRestaurants:
			acc.distinct[strconv.FormatInt(r.RestaurantID, 10)] = struct{}{}
		case MetricCities:
			acc.distinct[r.City] = struct{}{}
		case MetricCuisines:
			acc.distinct[r.Cuisines] = struct{}{}
		case MetricVotes:
			acc.sum += float64(r.Votes)
		case MetricRating:
			acc.sum += r.AggregateRating
		case MetricCostUSD:
			acc.sum += r.AverageCostForTwoUSDollar
		}
	}

	stats := make([]models.GroupStat, 0, len(order))
	for _, k := range order {
		acc := groups[k]
		var v float64
		switch metric {
		case MetricRestaurants, MetricCities, MetricCuisines:
			v = float64(len(acc.distinct))
		case MetricVotes:
			v = acc.sum
		case MetricRating, MetricCostUSD:
			v = acc.sum / float64(acc.rows)
		case MetricRows:
			v = float64(acc.rows)
		}
		stats = append(stats, models.GroupStat{CountryName: k.country, City: k.city, Cuisine: k.cuisine, Value: v})
	}
	return stats
}

func keyFor(r models.Restaurant, dims []Dimension) groupKey {
	var k groupKey
	for _, d := range dims {
		switch d {
		case ByCountry:
			k.country = r.CountryName
		case ByCity:
			k.city = r.City
		case ByCuisine:
			k.cuisine = r.Cuisines
		}
	}
	return k
}

// SortStats orders stats by value, descending or ascending. Equal values are
// ordered by their keys so the ranking is stable across runs.
func SortStats(stats []models.GroupStat, desc bool) {
	sort.SliceStable(stats, func(i, j int) bool {
		a, b := stats[i], stats[j]
		if a.Value != b.Value {
			if desc {
				return a.Value > b.Value
			}
			return a.Value < b.Value
		}
		if a.CountryName != b.CountryName {
			return a.CountryName < b.CountryName
		}
		if a.City != b.City {
			return a.City < b.City
		}
		return a.Cuisine < b.Cuisine
	})
}

// TopN truncates stats to at most n entries.
func TopN(stats []models.GroupStat, n int) []models.GroupStat {
	if n < 0 {
		n = 0
	}
	if len(stats) > n {
		return stats[:n]
	}
	return stats
}

// Ranked is Aggregate + SortStats + TopN. n <= 0 keeps every group.
func Ranked(rs []models.Restaurant, dims []Dimension, metric Metric, desc bool, n int) []models.GroupStat {
	stats := Aggregate(rs, dims, metric)
	SortStats(stats, desc)
	if n > 0 {
		stats = TopN(stats, n)
	}
	return stats
}

// Summarize computes the whole-dataset counters of the home page.
func Summarize(rs []models.Restaurant) models.Overview {
	ids := make(map[int64]struct{})
	countries := make(map[int]struct{})
	cities := make(map[string]struct{})
	cuisines := make(map[string]struct{})
	var votes int64
	for _, r := range rs {
		ids[r.RestaurantID] = struct{}{}
		countries[r.CountryCode] = struct{}{}
		cities[r.City] = struct{}{}
		cuisines[r.Cuisines] = struct{}{}
		votes += r.Votes
	}
	return models.Overview{
		Restaurants: len(ids),
		Countries:   len(countries),
		Cities:      len(cities),
		Cuisines:    len(cuisines),
		TotalVotes:  votes,
	}
}

// DistinctCountries lists country names in first-seen order.
func DistinctCountries(rs []models.Restaurant) []string {
	return distinct(rs, func(r models.Restaurant) string { return r.CountryName })
}

// DistinctCuisines lists cuisines in first-seen order.
func DistinctCuisines(rs []models.Restaurant) []string {
	return distinct(rs, func(r models.Restaurant) string { return r.Cuisines })
}

func distinct(rs []models.Restaurant, field func(models.Restaurant) string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, r := range rs {
		v := field(r)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// RoundTo rounds v to the given number of decimals for display.
func RoundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
