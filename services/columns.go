package services

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/iancoleman/strcase"
)

const (
	ColRestaurantID      = "restaurant_id"
	ColRestaurantName    = "restaurant_name"
	ColCountryCode       = "country_code"
	ColCity              = "city"
	ColAddress           = "address"
	ColLocality          = "locality"
	ColLongitude         = "longitude"
	ColLatitude          = "latitude"
	ColCuisines          = "cuisines"
	ColAverageCostForTwo = "average_cost_for_two"
	ColCurrency          = "currency"
	ColHasTableBooking   = "has_table_booking"
	ColHasOnlineDelivery = "has_online_delivery"
	ColIsDeliveringNow   = "is_delivering_now"
	ColPriceRange        = "price_range"
	ColAggregateRating   = "aggregate_rating"
	ColRatingColor       = "rating_color"
	ColRatingText        = "rating_text"
	ColVotes             = "votes"
)

// RequiredColumns must be present after normalization.
var RequiredColumns = []string{
	ColRestaurantID,
	ColRestaurantName,
	ColCountryCode,
	ColCity,
	ColLongitude,
	ColLatitude,
	ColCuisines,
	ColAverageCostForTwo,
	ColCurrency,
	ColAggregateRating,
	ColVotes,
}

// NormalizeColumn canonicalizes one raw label: every word is title-cased,
// spaces are dropped and the result is snake-cased.
// "Restaurant ID" -> "restaurant_id", "Average Cost for two" -> "average_cost_for_two".
func NormalizeColumn(label string) string {
	words := strings.Fields(label)
	for i, w := range words {
		words[i] = titleWord(w)
	}
	return strcase.ToSnake(strings.Join(words, ""))
}

func titleWord(w string) string {
	runes := []rune(strings.ToLower(w))
	for i, r := range runes {
		if unicode.IsLetter(r) {
			runes[i] = unicode.ToUpper(r)
			break
		}
	}
	return string(runes)
}

// NormalizeColumns canonicalizes a header row, preserving order. Two labels
// that collapse to the same name are a SchemaError, not a silent merge.
func NormalizeColumns(labels []string) ([]string, error) {
	out := make([]string, len(labels))
	seen := make(map[string]string, len(labels))
	for i, label := range labels {
		name := NormalizeColumn(label)
		if name == "" {
			return nil, &SchemaError{Column: label, Reason: "label normalizes to an empty name"}
		}
		if prev, ok := seen[name]; ok {
			return nil, &SchemaError{Column: name, Reason: fmt.Sprintf("labels %q and %q normalize to the same name", prev, label)}
		}
		seen[name] = label
		out[i] = name
	}
	return out, nil
}

// CheckRequired reports the first required column missing from columns.
func CheckRequired(columns []string) error {
	present := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		present[c] = struct{}{}
	}
	for _, want := range RequiredColumns {
		if _, ok := present[want]; !ok {
			return &SchemaError{Column: want, Reason: "required column is missing"}
		}
	}
	return nil
}
