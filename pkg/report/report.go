// Package report holds the pure aggregation functions behind the /api/reports
// endpoints: category roll-ups, budget progress, cash-flow bucketing,
// schedule grouping and goal math. Nothing in this package touches storage or
// returns an error; missing related entities degrade to "Unknown" or zero.
// Sums run through shopspring/decimal so bucket totals and percentages do not
// accumulate float drift.
package report

import "github.com/shopspring/decimal"

// round2 rounds to two decimal places, the precision every report exposes.
func round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
