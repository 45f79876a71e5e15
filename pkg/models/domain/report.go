package domain

import "time"

// ScoreReport is the offline scoring result rendered by the CLI.
type ScoreReport struct {
	Retailer      string
	PurchaseDate  time.Time
	PurchaseTime  ClockTime
	Total         string
	Contributions []RuleContribution
	TotalPoints   int64
}

// RuleContribution is one rule's share of the total.
type RuleContribution struct {
	Rule   string
	Points int64
}
