package services

import (
	"fmt"

	"fomezero/models"
)

const (
	WarnOutlierExcluded  = "outlier_excluded"
	WarnOutlierUnmatched = "outlier_rule_unmatched"
	WarnImplausibleCost  = "implausible_cost"
)

// OutlierRule names one known-bad record: it is excluded when its name matches
// exactly and its USD cost is at least MinCostUSD.
type OutlierRule struct {
	Name       string
	MinCostUSD float64
}

func (o OutlierRule) Matches(r models.Restaurant) bool {
	return r.RestaurantName == o.Name && r.AverageCostForTwoUSDollar >= o.MinCostUSD
}

// DefaultOutlierRules covers the one record whose cost was entered with a
// misplaced magnitude.
func DefaultOutlierRules() []OutlierRule {
	return []OutlierRule{{Name: "d'Arry's Verandah Restaurant", MinCostUSD: 1000000}}
}

// ExcludeOutliers drops every record matched by a rule, independent of its
// position. Each exclusion, and each rule that matched nothing, yields a warning.
func ExcludeOutliers(rs []models.Restaurant, rules []OutlierRule) ([]models.Restaurant, []DataQualityWarning) {
	kept := make([]models.Restaurant, 0, len(rs))
	hits := make([]int, len(rules))
	var warnings []DataQualityWarning

	for _, r := range rs {
		matched := -1
		for i, rule := range rules {
			if rule.Matches(r) {
				matched = i
				break
			}
		}
		if matched < 0 {
			kept = append(kept, r)
			continue
		}
		hits[matched]++
		warnings = append(warnings, models.Warning{
			Kind:           WarnOutlierExcluded,
			Line:           r.Line,
			RestaurantID:   r.RestaurantID,
			RestaurantName: r.RestaurantName,
			CostUSD:        r.AverageCostForTwoUSDollar,
			Message:        fmt.Sprintf("excluded: cost %.2f USD is at or above %.2f", r.AverageCostForTwoUSDollar, rules[matched].MinCostUSD),
		})
	}

	for i, rule := range rules {
		if hits[i] == 0 {
			warnings = append(warnings, models.Warning{
				Kind:           WarnOutlierUnmatched,
				RestaurantName: rule.Name,
				Message:        fmt.Sprintf("no record named %q costs %.2f USD or more", rule.Name, rule.MinCostUSD),
			})
		}
	}
	return kept, warnings
}

// FlagImplausibleCosts reports, without dropping, records whose USD cost is
// above limit. A limit of 0 disables the check.
func FlagImplausibleCosts(rs []models.Restaurant, limit float64) []DataQualityWarning {
	if limit <= 0 {
		return nil
	}
	var warnings []DataQualityWarning
	for _, r := range rs {
		if r.AverageCostForTwoUSDollar > limit {
			warnings = append(warnings, models.Warning{
				Kind:           WarnImplausibleCost,
				Line:           r.Line,
				RestaurantID:   r.RestaurantID,
				RestaurantName: r.RestaurantName,
				CostUSD:        r.AverageCostForTwoUSDollar,
				Message:        fmt.Sprintf("cost %.2f USD exceeds sanity limit %.2f", r.AverageCostForTwoUSDollar, limit),
			})
		}
	}
	return warnings
}
