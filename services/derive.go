package services

import (
	"fomezero/models"
	"fomezero/reference"
)

// ResolveCurrencyCode fills CurrencyCode from the record's currency label.
func ResolveCurrencyCode(r *models.Restaurant, currencies *reference.CurrencyTable) error {
	code, err := currencies.Code(r.Currency, r.CountryCode)
	if err != nil {
		return err
	}
	r.CurrencyCode = code
	return nil
}

// ConvertCost fills AverageCostForTwoUSDollar. CurrencyCode must already be set.
func ConvertCost(r *models.Restaurant, rates *reference.RateTable) error {
	usd, err := rates.ToUSD(r.AverageCostForTwo, r.CurrencyCode)
	if err != nil {
		return err
	}
	r.AverageCostForTwoUSDollar = usd
	return nil
}

// ResolveCountryName fills CountryName from the country code.
func ResolveCountryName(r *models.Restaurant, countries *reference.CountryTable) error {
	name, err := countries.Name(r.CountryCode)
	if err != nil {
		return err
	}
	r.CountryName = name
	return nil
}
