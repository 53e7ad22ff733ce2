package reference

import (
	"fmt"
	"sort"
)

// LookupError reports a key that is absent from one of the closed reference tables.
type LookupError struct {
	Table string
	Key   string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s: no entry for %q", e.Table, e.Key)
}

// countryNames keeps the display names exactly as the dashboards have always shown them.
var countryNames = map[int]string{
	1:   "India",
	14:  "Australia",
	30:  "Brazil",
	37:  "Canada",
	94:  "Indonesia",
	148: "New Zeland",
	162: "Philippines",
	166: "Qatar",
	184: "Singapure",
	189: "South Africa",
	191: "Sri Lanka",
	208: "Turkey",
	214: "United Arab Emirates",
	215: "England",
	216: "United States of America",
}

// CountryTable resolves integer country codes to display names. Closed set.
type CountryTable struct {
	names map[int]string
}

// DefaultCountries returns the 15-country table the dataset is known to use.
func DefaultCountries() *CountryTable {
	names := make(map[int]string, len(countryNames))
	for k, v := range countryNames {
		names[k] = v
	}
	return &CountryTable{names: names}
}

// Name returns the display name for code, or a *LookupError.
func (t *CountryTable) Name(code int) (string, error) {
	name, ok := t.names[code]
	if !ok {
		return "", &LookupError{Table: "country", Key: fmt.Sprint(code)}
	}
	return name, nil
}

// Codes lists the known codes in ascending order.
func (t *CountryTable) Codes() []int {
	codes := make([]int, 0, len(t.names))
	for c := range t.names {
		codes = append(codes, c)
	}
	sort.Ints(codes)
	return codes
}

func (t *CountryTable) Len() int { return len(t.names) }
