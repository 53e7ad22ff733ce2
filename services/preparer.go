package services

import (
	"fmt"
	"time"

	"fomezero/models"
	"fomezero/reference"
	"fomezero/utils"
)

// Snapshot is one fully prepared, read-only working set shared by every page.
type Snapshot struct {
	Restaurants []models.Restaurant
	Warnings    []models.Warning

	Source            string
	PreparedAt        time.Time
	CurrencyMode      reference.CurrencyMode
	RawRows           int
	DroppedIncomplete int
	Excluded          int
}

// Info summarizes the snapshot for API consumers.
func (s *Snapshot) Info() models.SnapshotInfo {
	return models.SnapshotInfo{
		Source:            s.Source,
		PreparedAt:        s.PreparedAt.UTC().Format(time.RFC3339),
		CurrencyMode:      string(s.CurrencyMode),
		RawRows:           s.RawRows,
		DroppedIncomplete: s.DroppedIncomplete,
		Excluded:          s.Excluded,
		Rows:              len(s.Restaurants),
		Warnings:          len(s.Warnings),
	}
}

// Preparer turns a raw table into a Snapshot. It holds only immutable
// configuration, so one value can serve any number of runs.
type Preparer struct {
	tables        *reference.Tables
	outliers      []OutlierRule
	costSanityUSD float64
	logger        *utils.Logger
	now           func() time.Time
}

// NewPreparer validates the reference tables and builds a Preparer.
func NewPreparer(tables *reference.Tables, outliers []OutlierRule, costSanityUSD float64, logger *utils.Logger) (*Preparer, error) {
	if err := tables.Validate(); err != nil {
		return nil, err
	}
	for _, c := range tables.Currencies.Collisions() {
		if tables.Currencies.Mode() == reference.ModeCompat {
			logger.Warn("Currency label %q is defined for %v; compat mode resolves it to %s", c.Label, c.Codes, c.Resolved)
		}
	}
	return &Preparer{
		tables:        tables,
		outliers:      outliers,
		costSanityUSD: costSanityUSD,
		logger:        logger,
		now:           time.Now,
	}, nil
}

// PrepareFile reads path and runs the full pipeline over it.
func (p *Preparer) PrepareFile(path string) (*Snapshot, error) {
	raw, err := ReadRawFile(path)
	if err != nil {
		return nil, err
	}
	snap, err := p.Prepare(raw)
	if err != nil {
		return nil, err
	}
	snap.Source = path
	return snap, nil
}

// Prepare runs: null-row removal, typing, cuisine simplification, currency
// code resolution, USD conversion, outlier exclusion, country naming.
// Any lookup or parse failure aborts the run with a *RecordError.
func (p *Preparer) Prepare(raw *RawTable) (*Snapshot, error) {
	complete := DropIncomplete(raw.Records, raw.Columns)
	dropped := len(raw.Records) - len(complete)
	if dropped > 0 {
		p.logger.Info("Dropped %d of %d rows with missing values", dropped, len(raw.Records))
	}

	restaurants := make([]models.Restaurant, 0, len(complete))
	for _, rec := range complete {
		r, err := p.derive(rec)
		if err != nil {
			return nil, err
		}
		restaurants = append(restaurants, r)
	}

	kept, warnings := ExcludeOutliers(restaurants, p.outliers)
	excluded := len(restaurants) - len(kept)

	for i := range kept {
		if err := ResolveCountryName(&kept[i], p.tables.Countries); err != nil {
			return nil, recordError(kept[i], err)
		}
	}

	warnings = append(warnings, FlagImplausibleCosts(kept, p.costSanityUSD)...)
	for _, w := range warnings {
		p.logger.Warn("Data quality [%s] line %d %q: %s", w.Kind, w.Line, w.RestaurantName, w.Message)
	}

	snap := &Snapshot{
		Restaurants:       kept,
		Warnings:          warnings,
		PreparedAt:        p.now(),
		CurrencyMode:      p.tables.Currencies.Mode(),
		RawRows:           len(raw.Records),
		DroppedIncomplete: dropped,
		Excluded:          excluded,
	}
	p.logger.Info("Prepared %d restaurants from %d raw rows (%d dropped, %d excluded)",
		len(kept), len(raw.Records), dropped, excluded)
	return snap, nil
}

func (p *Preparer) derive(rec models.RawRecord) (models.Restaurant, error) {
	r, err := ParseRestaurant(rec)
	if err != nil {
		return models.Restaurant{}, &RecordError{Line: rec.Line, RestaurantName: rec.Values[ColRestaurantName], Err: err}
	}
	r.Cuisines = SimplifyCuisine(r.Cuisines)
	if err := ResolveCurrencyCode(&r, p.tables.Currencies); err != nil {
		return models.Restaurant{}, recordError(r, err)
	}
	if err := ConvertCost(&r, p.tables.Rates); err != nil {
		return models.Restaurant{}, recordError(r, err)
	}
	return r, nil
}

func recordError(r models.Restaurant, err error) error {
	return &RecordError{Line: r.Line, RestaurantID: r.RestaurantID, RestaurantName: r.RestaurantName, Err: err}
}

// Describe is a one-line summary used by the CLI.
func (s *Snapshot) Describe() string {
	return fmt.Sprintf("%d raw rows, %d dropped incomplete, %d excluded, %d prepared, %d warnings",
		s.RawRows, s.DroppedIncomplete, s.Excluded, len(s.Restaurants), len(s.Warnings))
}
