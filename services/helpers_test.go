package services

import (
	"bytes"
	"encoding/csv"
	"io"
	"math"
	"strconv"
	"testing"

	"fomezero/models"
	"fomezero/reference"
	"fomezero/utils"
)

var zomatoHeader = []string{
	"Restaurant ID", "Restaurant Name", "Country Code", "City", "Address", "Locality",
	"Locality Verbose", "Longitude", "Latitude", "Cuisines", "Average Cost for two", "Currency",
	"Has Table booking", "Has Online delivery", "Is delivering now", "Switch to order menu",
	"Price range", "Aggregate rating", "Rating color", "Rating text", "Votes",
}

type rawRow struct {
	id       int64
	name     string
	country  int
	city     string
	cuisines string
	cost     string
	currency string
	rating   string
	votes    int64
}

func (r rawRow) fields() []string {
	return []string{
		strconv.FormatInt(r.id, 10), r.name, strconv.Itoa(r.country), r.city,
		"1 Main St", "Centre", "Centre, " + r.city, "-43.17", "-22.90",
		r.cuisines, r.cost, r.currency, "No", "Yes", "No", "No", "3",
		r.rating, "Green", "Very Good", strconv.FormatInt(r.votes, 10),
	}
}

func buildCSV(t *testing.T, rows ...rawRow) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(zomatoHeader); err != nil {
		t.Fatal(err)
	}
	for _, r := range rows {
		if err := w.Write(r.fields()); err != nil {
			t.Fatal(err)
		}
	}
	w.Flush()
	return buf.Bytes()
}

func readCSV(t *testing.T, rows ...rawRow) *RawTable {
	t.Helper()
	table, err := ReadRaw(bytes.NewReader(buildCSV(t, rows...)))
	if err != nil {
		t.Fatalf("ReadRaw: %v", err)
	}
	return table
}

func testRates(t *testing.T) *reference.RateTable {
	t.Helper()
	rates, err := reference.NewRateTable(map[string]float64{
		"INR": 0.012, "AUD": 0.65, "BRL": 0.2, "CAD": 0.73, "IDR": 0.000063,
		"NZD": 0.6, "PHP": 0.018, "QAR": 0.27, "SGD": 0.74, "ZAR": 0.053,
		"LKR": 0.0033, "TRY": 0.031, "AED": 0.27, "GBP": 1.26, "USD": 1.0,
	})
	if err != nil {
		t.Fatal(err)
	}
	return rates
}

func testTables(t *testing.T, mode reference.CurrencyMode) *reference.Tables {
	t.Helper()
	currencies, err := reference.NewCurrencyTable(mode)
	if err != nil {
		t.Fatal(err)
	}
	return &reference.Tables{Countries: reference.DefaultCountries(), Currencies: currencies, Rates: testRates(t)}
}

func testLogger() *utils.Logger {
	return utils.NewWriterLogger(utils.LevelError, io.Discard)
}

func newTestPreparer(t *testing.T, mode reference.CurrencyMode) *Preparer {
	t.Helper()
	p, err := NewPreparer(testTables(t, mode), DefaultOutlierRules(), 10000, testLogger())
	if err != nil {
		t.Fatalf("NewPreparer: %v", err)
	}
	return p
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9
}

func restaurant(id int64, country, city, cuisine string, rating, costUSD float64, votes int64) models.Restaurant {
	return models.Restaurant{
		RestaurantID:              id,
		RestaurantName:            "R" + strconv.FormatInt(id, 10),
		CountryName:               country,
		City:                      city,
		Cuisines:                  cuisine,
		AggregateRating:           rating,
		AverageCostForTwoUSDollar: costUSD,
		Votes:                     votes,
	}
}
