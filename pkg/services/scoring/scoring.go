// Package scoring converts a validated receipt into its reward-point
// total. Every rule is a pure function of the receipt, evaluated
// independently and summed, so the engine is safe to call concurrently
// and a single rule can be audited or tested in isolation.
package scoring

import (
	"errors"

	"github.com/loyalty-tools/receipt-points/pkg/models/domain"
)

// ErrNoItems is returned for receipts whose item list is empty. The
// engine treats that as a contract violation rather than scoring the
// remaining rules.
var ErrNoItems = errors.New("receipt has no items")

// RulePoints is one rule's contribution to the total.
type RulePoints struct {
	Rule   string
	Points int64
}

type rule struct {
	name string
	eval func(domain.Receipt) int64
}

var rules = []rule{
	{"retailer_name", retailerNamePoints},
	{"round_dollar_total", roundDollarPoints},
	{"quarter_multiple_total", quarterMultiplePoints},
	{"item_pairs", itemPairPoints},
	{"item_descriptions", itemDescriptionPoints},
	{"odd_purchase_day", oddPurchaseDayPoints},
	{"afternoon_window", afternoonWindowPoints},
}

// Score returns the receipt's total points.
func Score(r domain.Receipt) (int64, error) {
	if len(r.Items) == 0 {
		return 0, ErrNoItems
	}

	var total int64
	for _, rule := range rules {
		total += rule.eval(r)
	}
	return total, nil
}

// Explain returns the per-rule breakdown in evaluation order. The sum of
// the contributions equals Score for the same receipt.
func Explain(r domain.Receipt) ([]RulePoints, error) {
	if len(r.Items) == 0 {
		return nil, ErrNoItems
	}

	breakdown := make([]RulePoints, 0, len(rules))
	for _, rule := range rules {
		breakdown = append(breakdown, RulePoints{Rule: rule.name, Points: rule.eval(r)})
	}
	return breakdown, nil
}
