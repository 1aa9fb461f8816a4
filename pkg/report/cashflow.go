package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tincan-finance/tincan/pkg/domain"
)

// Granularity is the cash-flow bucket size, chosen from the report span.
type Granularity string

const (
	Daily   Granularity = "day"
	Weekly  Granularity = "week"
	Monthly Granularity = "month"
)

// GranularityFor picks buckets from the total span: a month or less gets
// daily buckets, a quarter or less weekly, anything longer monthly.
func GranularityFor(start, end time.Time) Granularity {
	days := int(end.Sub(start).Hours()/24) + 1
	switch {
	case days <= 31:
		return Daily
	case days <= 90:
		return Weekly
	default:
		return Monthly
	}
}

// CashFlowBucket is one interval of the cash-flow report. Expense is
// negative; Net = Income + Expense.
type CashFlowBucket struct {
	Start   time.Time `json:"start"`
	Label   string    `json:"label"`
	Income  float64   `json:"income"`
	Expense float64   `json:"expense"`
	Net     float64   `json:"net"`
}

// CashFlow buckets the transactions dated within [start, end]. Daily buckets
// are calendar days, weekly buckets are 7-day windows anchored at start,
// monthly buckets are calendar months.
func CashFlow(transactions []*domain.Transaction, start, end time.Time) []CashFlowBucket {
	if end.Before(start) {
		return nil
	}
	gran := GranularityFor(start, end)
	starts := bucketStarts(start, end, gran)

	type sums struct{ income, expense decimal.Decimal }
	totals := make([]sums, len(starts))
	for _, t := range transactions {
		if t.Date.Before(start) || t.Date.After(end) {
			continue
		}
		i := bucketIndex(starts, t.Date)
		if i < 0 {
			continue
		}
		d := decimal.NewFromFloat(t.Amount)
		if d.IsPositive() {
			totals[i].income = totals[i].income.Add(d)
		} else {
			totals[i].expense = totals[i].expense.Add(d)
		}
	}

	out := make([]CashFlowBucket, len(starts))
	for i, s := range starts {
		out[i] = CashFlowBucket{
			Start:   s,
			Label:   bucketLabel(s, gran),
			Income:  round2(totals[i].income),
			Expense: round2(totals[i].expense),
			Net:     round2(totals[i].income.Add(totals[i].expense)),
		}
	}
	return out
}

func bucketStarts(start, end time.Time, gran Granularity) []time.Time {
	var starts []time.Time
	switch gran {
	case Daily:
		cur := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
		for !cur.After(end) {
			starts = append(starts, cur)
			cur = cur.AddDate(0, 0, 1)
		}
	case Weekly:
		cur := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
		for !cur.After(end) {
			starts = append(starts, cur)
			cur = cur.AddDate(0, 0, 7)
		}
	default:
		cur := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
		for !cur.After(end) {
			starts = append(starts, cur)
			cur = cur.AddDate(0, 1, 0)
		}
	}
	return starts
}

// bucketIndex finds the last bucket starting on or before date.
func bucketIndex(starts []time.Time, date time.Time) int {
	for i := len(starts) - 1; i >= 0; i-- {
		if !date.Before(starts[i]) {
			return i
		}
	}
	return -1
}

func bucketLabel(start time.Time, gran Granularity) string {
	if gran == Monthly {
		return start.Format("Jan 2006")
	}
	return start.Format("Jan 2")
}
