package reference

import (
	"fmt"
	"sort"
)

type CurrencyMode string

const (
	// ModeCompat reproduces the authored mapping, where the four "Dollar($)"
	// entries collapse onto the last one (USD).
	ModeCompat CurrencyMode = "compat"
	// ModeCorrected resolves "Dollar($)" by the record's country instead.
	ModeCorrected CurrencyMode = "corrected"
)

const dollarLabel = "Dollar($)"

// authoredCurrencies is the mapping in its original order, duplicates included.
var authoredCurrencies = []struct {
	label string
	code  string
}{
	{"Indian Rupees(Rs.)", "INR"},
	{dollarLabel, "AUD"},
	{"Brazilian Real(R$)", "BRL"},
	{dollarLabel, "CAD"},
	{"Indonesian Rupiah(IDR)", "IDR"},
	{"NewZealand($)", "NZD"},
	{"Botswana Pula(P)", "PHP"},
	{"Qatari Rial(QR)", "QAR"},
	{dollarLabel, "SGD"},
	{"Rand(R)", "ZAR"},
	{"Sri Lankan Rupee(LKR)", "LKR"},
	{"Turkish Lira(TL)", "TRY"},
	{"Emirati Diram(AED)", "AED"},
	{"Pounds(£)", "GBP"},
	{dollarLabel, "USD"},
}

// dollarByCountry is what each "Dollar($)" entry was meant to be.
var dollarByCountry = map[int]string{
	14:  "AUD",
	37:  "CAD",
	184: "SGD",
	216: "USD",
}

// Collision describes a label defined more than once in the authored mapping.
type Collision struct {
	Label    string
	Codes    []string // every code the label was given, in authored order
	Resolved string   // what compat mode returns
}

// CurrencyTable maps a currency display label to a 3-letter code.
type CurrencyTable struct {
	mode       CurrencyMode
	codes      map[string]string
	collisions []Collision
}

// NewCurrencyTable builds the table for the given mode.
func NewCurrencyTable(mode CurrencyMode) (*CurrencyTable, error) {
	if mode != ModeCompat && mode != ModeCorrected {
		return nil, fmt.Errorf("unknown currency mode %q", mode)
	}

	t := &CurrencyTable{mode: mode, codes: make(map[string]string)}
	seen := make(map[string][]string)
	var order []string
	for _, e := range authoredCurrencies {
		if _, ok := seen[e.label]; !ok {
			order = append(order, e.label)
		}
		seen[e.label] = append(seen[e.label], e.code)
		t.codes[e.label] = e.code
	}
	for _, label := range order {
		if codes := seen[label]; len(codes) > 1 {
			t.collisions = append(t.collisions, Collision{Label: label, Codes: codes, Resolved: t.codes[label]})
		}
	}
	return t, nil
}

func (t *CurrencyTable) Mode() CurrencyMode { return t.mode }

// Collisions returns the labels whose authored entries overwrite each other.
// In corrected mode these are resolved per country and do not collide.
func (t *CurrencyTable) Collisions() []Collision {
	return t.collisions
}

// Code resolves label for a record located in countryCode.
func (t *CurrencyTable) Code(label string, countryCode int) (string, error) {
	if t.mode == ModeCorrected && label == dollarLabel {
		code, ok := dollarByCountry[countryCode]
		if !ok {
			return "", &LookupError{Table: "currency", Key: fmt.Sprintf("%s@%d", label, countryCode)}
		}
		return code, nil
	}
	code, ok := t.codes[label]
	if !ok {
		return "", &LookupError{Table: "currency", Key: label}
	}
	return code, nil
}

// Labels lists the known labels in sorted order.
func (t *CurrencyTable) Labels() []string {
	labels := make([]string, 0, len(t.codes))
	for l := range t.codes {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

// OutputCodes lists every code Code can return in this mode.
func (t *CurrencyTable) OutputCodes() []string {
	set := make(map[string]struct{})
	for label, code := range t.codes {
		if t.mode == ModeCorrected && label == dollarLabel {
			continue
		}
		set[code] = struct{}{}
	}
	if t.mode == ModeCorrected {
		for _, code := range dollarByCountry {
			set[code] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
