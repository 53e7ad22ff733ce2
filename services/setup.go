package services

import (
	"fomezero/config"
	"fomezero/reference"
	"fomezero/utils"
)

// OutlierRulesFromConfig returns the configured exclusion rule, or none when
// OUTLIER_NAME is blank.
func OutlierRulesFromConfig(cfg *config.Config) []OutlierRule {
	if cfg.OutlierName == "" {
		return nil
	}
	return []OutlierRule{{Name: cfg.OutlierName, MinCostUSD: cfg.OutlierMinCostUSD}}
}

// PreparerFromConfig loads the reference tables for the configured currency
// mode and rate file and builds a Preparer around them.
func PreparerFromConfig(cfg *config.Config, logger *utils.Logger) (*Preparer, error) {
	tables, err := reference.Load(reference.CurrencyMode(cfg.CurrencyMode), cfg.RatesPath)
	if err != nil {
		return nil, err
	}
	logger.Info("Reference tables loaded: %d countries, %d rates (as of %s), currency mode %s",
		tables.Countries.Len(), len(tables.Rates.Codes()), tables.Rates.AsOf(), cfg.CurrencyMode)
	return NewPreparer(tables, OutlierRulesFromConfig(cfg), cfg.CostSanityUSD, logger)
}
