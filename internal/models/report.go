package models

import (
	"github.com/shopspring/decimal"
)

// ReportRow is one aggregated line of a report: the net, spent and earned
// totals for a title in one currency. Spent accumulates negative amounts and
// stays non-positive; Earned accumulates positive amounts and stays
// non-negative; Sum is always Spent+Earned.
type ReportRow struct {
	Title    string          `json:"title"`
	Currency Currency        `json:"currency"`
	Spent    decimal.Decimal `json:"spent"`
	Earned   decimal.Decimal `json:"earned"`
	Sum      decimal.Decimal `json:"sum"`
}
