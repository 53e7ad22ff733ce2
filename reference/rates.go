package reference

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

//go:embed data/currencies.csv
var bundledRates []byte

const (
	baseCurrency  = "EUR"
	quoteCurrency = "USD"
)

// RateTable holds how many US dollars one unit of each currency is worth.
type RateTable struct {
	usdPerUnit map[string]float64
	asOf       map[string]time.Time
}

// NewRateTable builds a table from direct code -> USD-per-unit rates.
func NewRateTable(rates map[string]float64) (*RateTable, error) {
	t := &RateTable{usdPerUnit: make(map[string]float64, len(rates)+1), asOf: map[string]time.Time{}}
	for code, r := range rates {
		if r <= 0 {
			return nil, fmt.Errorf("rate for %s must be positive, got %v", code, r)
		}
		t.usdPerUnit[strings.ToUpper(code)] = r
	}
	if _, ok := t.usdPerUnit[quoteCurrency]; !ok {
		t.usdPerUnit[quoteCurrency] = 1
	}
	return t, nil
}

// BundledRates parses the rate history shipped with the binary.
func BundledRates() (*RateTable, error) {
	return ParseRates(bytes.NewReader(bundledRates))
}

// LoadRates reads a rate history file from disk.
func LoadRates(path string) (*RateTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rates file: %w", err)
	}
	defer f.Close()

	t, err := ParseRates(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ParseRates reads the wide historical format: a Date column followed by one
// column per currency, each value quoted per EUR, "N/A" for gaps. For every
// currency the most recent date where both it and USD are quoted wins.
func ParseRates(r io.Reader) (*RateTable, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New("rates file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("read rates header: %w", err)
	}
	if len(header) < 2 || !strings.EqualFold(strings.TrimSpace(header[0]), "Date") {
		return nil, fmt.Errorf("rates header must start with Date, got %v", header)
	}

	cols := make([]string, len(header))
	usdCol := -1
	for i, h := range header[1:] {
		code := strings.ToUpper(strings.TrimSpace(h))
		cols[i+1] = code
		if code == quoteCurrency {
			usdCol = i + 1
		}
	}
	if usdCol < 0 {
		return nil, errors.New("rates file has no USD column")
	}

	t := &RateTable{usdPerUnit: make(map[string]float64), asOf: make(map[string]time.Time)}
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read rates line %d: %w", line, err)
		}
		date, err := time.Parse("2006-01-02", strings.TrimSpace(row[0]))
		if err != nil {
			return nil, fmt.Errorf("rates line %d: bad date %q", line, row[0])
		}
		usdPerEUR, ok := parseRate(row, usdCol)
		if !ok {
			continue
		}
		t.observe(baseCurrency, date, usdPerEUR)

		for i := 1; i < len(row) && i < len(cols); i++ {
			code := cols[i]
			if code == "" {
				continue
			}
			perEUR, ok := parseRate(row, i)
			if !ok {
				continue
			}
			t.observe(code, date, usdPerEUR/perEUR)
		}
	}

	if len(t.usdPerUnit) == 0 {
		return nil, errors.New("rates file has no usable rows")
	}
	return t, nil
}

func (t *RateTable) observe(code string, date time.Time, usdPerUnit float64) {
	if prev, ok := t.asOf[code]; ok && !date.After(prev) {
		return
	}
	t.asOf[code] = date
	t.usdPerUnit[code] = usdPerUnit
}

func parseRate(row []string, i int) (float64, bool) {
	if i >= len(row) {
		return 0, false
	}
	s := strings.TrimSpace(row[i])
	if s == "" || strings.EqualFold(s, "N/A") {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// USDPerUnit returns the rate for code, or a *LookupError.
func (t *RateTable) USDPerUnit(code string) (float64, error) {
	r, ok := t.usdPerUnit[code]
	if !ok {
		return 0, &LookupError{Table: "rate", Key: code}
	}
	return r, nil
}

// ToUSD converts amount from code into US dollars. No rounding is applied.
func (t *RateTable) ToUSD(amount float64, code string) (float64, error) {
	r, err := t.USDPerUnit(code)
	if err != nil {
		return 0, err
	}
	return amount * r, nil
}

// Missing returns the codes not present in the table.
func (t *RateTable) Missing(codes []string) []string {
	var out []string
	for _, c := range codes {
		if _, ok := t.usdPerUnit[c]; !ok {
			out = append(out, c)
		}
	}
	sort.Strings(out)
	return out
}

// Codes lists the currencies the table can convert.
func (t *RateTable) Codes() []string {
	out := make([]string, 0, len(t.usdPerUnit))
	for c := range t.usdPerUnit {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// AsOf returns the most recent quote date in the table, or "n/a" for tables
// built from direct rates.
func (t *RateTable) AsOf() string {
	var latest time.Time
	for _, d := range t.asOf {
		if d.After(latest) {
			latest = d
		}
	}
	if latest.IsZero() {
		return "n/a"
	}
	return latest.Format("2006-01-02")
}
