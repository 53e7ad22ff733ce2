package services

import (
	"strconv"
	"strings"

	"fomezero/models"
)

// naTokens are the cell values a tabular reader treats as missing.
var naTokens = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

// IsMissing reports whether a raw cell counts as a missing value.
func IsMissing(v string) bool {
	_, ok := naTokens[v]
	return ok
}

// IsComplete reports whether every column of rec has a value.
func IsComplete(rec models.RawRecord, columns []string) bool {
	for _, c := range columns {
		v, ok := rec.Values[c]
		if !ok || IsMissing(v) {
			return false
		}
	}
	return true
}

// DropIncomplete keeps only the records with a value in every column,
// preserving their relative order.
func DropIncomplete(records []models.RawRecord, columns []string) []models.RawRecord {
	kept := make([]models.RawRecord, 0, len(records))
	for _, r := range records {
		if IsComplete(r, columns) {
			kept = append(kept, r)
		}
	}
	return kept
}

// SimplifyCuisine keeps the first entry of a comma-separated cuisine list.
// The entry is not trimmed.
func SimplifyCuisine(cuisines string) string {
	return strings.SplitN(cuisines, ",", 2)[0]
}

// ParseRestaurant types the raw values of a complete record. Derived fields
// (currency code, USD cost, country name) are left empty.
func ParseRestaurant(rec models.RawRecord) (models.Restaurant, error) {
	p := fieldParser{rec: rec}
	r := models.Restaurant{
		RestaurantID:      p.integer(ColRestaurantID),
		RestaurantName:    rec.Values[ColRestaurantName],
		CountryCode:       int(p.integer(ColCountryCode)),
		City:              rec.Values[ColCity],
		Address:           rec.Values[ColAddress],
		Locality:          rec.Values[ColLocality],
		Latitude:          p.number(ColLatitude),
		Longitude:         p.number(ColLongitude),
		Cuisines:          rec.Values[ColCuisines],
		Currency:          rec.Values[ColCurrency],
		AverageCostForTwo: p.number(ColAverageCostForTwo),
		Votes:             p.integer(ColVotes),
		AggregateRating:   p.number(ColAggregateRating),
		RatingColor:       rec.Values[ColRatingColor],
		RatingText:        rec.Values[ColRatingText],
		HasTableBooking:   p.yesNo(ColHasTableBooking),
		HasOnlineDelivery: p.yesNo(ColHasOnlineDelivery),
		IsDeliveringNow:   p.yesNo(ColIsDeliveringNow),
		Line:              rec.Line,
	}
	if _, ok := rec.Values[ColPriceRange]; ok {
		r.PriceRange = int(p.integer(ColPriceRange))
	}
	if p.err != nil {
		return models.Restaurant{}, p.err
	}
	return r, nil
}

// fieldParser records the first conversion failure and turns later calls into no-ops.
type fieldParser struct {
	rec models.RawRecord
	err error
}

func (p *fieldParser) fail(col, reason string) {
	if p.err == nil {
		p.err = &SchemaError{Column: col, Line: p.rec.Line, Reason: reason}
	}
}

func (p *fieldParser) integer(col string) int64 {
	if p.err != nil {
		return 0
	}
	s := strings.TrimSpace(p.rec.Values[col])
	n, err := strconv.ParseInt(s, 10, 64)
	if err == nil {
		return n
	}
	// integer columns sometimes arrive as "12.0"
	f, ferr := strconv.ParseFloat(s, 64)
	if ferr != nil || f != float64(int64(f)) {
		p.fail(col, "not an integer: "+strconv.Quote(s))
		return 0
	}
	return int64(f)
}

func (p *fieldParser) number(col string) float64 {
	if p.err != nil {
		return 0
	}
	s := strings.TrimSpace(p.rec.Values[col])
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		p.fail(col, "not a number: "+strconv.Quote(s))
		return 0
	}
	return f
}

func (p *fieldParser) yesNo(col string) bool {
	v, ok := p.rec.Values[col]
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "yes", "true", "1":
		return true
	default:
		return false
	}
}
