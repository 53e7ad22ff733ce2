package reference

import (
	"fmt"
	"strings"
)

// Tables bundles the three closed lookups the preparer consults.
type Tables struct {
	Countries  *CountryTable
	Currencies *CurrencyTable
	Rates      *RateTable
}

// Load builds the tables for mode. An empty ratesPath selects the bundled rates.
func Load(mode CurrencyMode, ratesPath string) (*Tables, error) {
	currencies, err := NewCurrencyTable(mode)
	if err != nil {
		return nil, err
	}

	var rates *RateTable
	if ratesPath == "" {
		rates, err = BundledRates()
	} else {
		rates, err = LoadRates(ratesPath)
	}
	if err != nil {
		return nil, err
	}

	t := &Tables{Countries: DefaultCountries(), Currencies: currencies, Rates: rates}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks that every code the currency table can emit is convertible.
func (t *Tables) Validate() error {
	if t.Countries == nil || t.Currencies == nil || t.Rates == nil {
		return fmt.Errorf("reference tables are incomplete")
	}
	if missing := t.Rates.Missing(t.Currencies.OutputCodes()); len(missing) > 0 {
		return fmt.Errorf("rate table has no rate for %s", strings.Join(missing, ", "))
	}
	return nil
}
