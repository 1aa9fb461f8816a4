package report

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/tincan-finance/tincan/pkg/domain"
)

// groupOrder is the fixed display priority for frequency groups.
var groupOrder = []string{
	"One-time",
	"Daily",
	"7 days",
	"14 days",
	"30 days",
	"60 days",
	"90 days",
	"Bi-annual",
	"Annual",
	"Other",
}

// FrequencyGroupLabel maps a schedule to its human frequency group. Custom
// intervals get the matching named bucket (60 days, Bi-annual) or a literal
// "N days" label; only an unrecognized frequency lands in Other.
func FrequencyGroupLabel(s *domain.Schedule) string {
	switch s.Frequency {
	case domain.FreqOnce:
		return "One-time"
	case domain.FreqDaily:
		return "Daily"
	case domain.FreqWeekly:
		return "7 days"
	case domain.FreqBiweekly:
		return "14 days"
	case domain.FreqMonthly:
		return "30 days"
	case domain.FreqQuarterly:
		return "90 days"
	case domain.FreqYearly:
		return "Annual"
	case domain.FreqCustom:
		switch s.CustomDays {
		case 60:
			return "60 days"
		case 180:
			return "Bi-annual"
		default:
			return fmt.Sprintf("%d days", s.CustomDays)
		}
	default:
		return "Other"
	}
}

// ScheduleGroup is one frequency bucket of the recurring report.
type ScheduleGroup struct {
	Label     string             `json:"label"`
	Schedules []*domain.Schedule `json:"schedules"`
	Total     float64            `json:"total"` // signed sum of the group
}

// GroupSchedules buckets schedules by frequency label, ordered by the fixed
// priority list; labels outside the list sort after it, alphabetically.
func GroupSchedules(schedules []*domain.Schedule) []ScheduleGroup {
	byLabel := map[string][]*domain.Schedule{}
	for _, s := range schedules {
		label := FrequencyGroupLabel(s)
		byLabel[label] = append(byLabel[label], s)
	}

	labels := make([]string, 0, len(byLabel))
	for label := range byLabel {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		ri, rj := groupRank(labels[i]), groupRank(labels[j])
		if ri != rj {
			return ri < rj
		}
		return labels[i] < labels[j]
	})

	out := make([]ScheduleGroup, 0, len(labels))
	for _, label := range labels {
		group := ScheduleGroup{Label: label, Schedules: byLabel[label]}
		var total decimal.Decimal
		for _, s := range group.Schedules {
			total = total.Add(decimal.NewFromFloat(s.SignedAmount()))
		}
		group.Total = round2(total)
		out = append(out, group)
	}
	return out
}

func groupRank(label string) int {
	for i, l := range groupOrder {
		if l == label {
			return i
		}
	}
	return len(groupOrder)
}

// RecurringSummary is the grouped recurring report: schedules bucketed by
// frequency plus active income and expense totals (both magnitudes).
type RecurringSummary struct {
	Groups  []ScheduleGroup `json:"groups"`
	Income  float64         `json:"income"`
	Expense float64         `json:"expense"`
}

// Recurring builds the recurring report over a user's schedules. Only active
// schedules count toward the totals; the groups include inactive ones.
func Recurring(schedules []*domain.Schedule) RecurringSummary {
	var in, out decimal.Decimal
	for _, s := range schedules {
		if !s.IsActive {
			continue
		}
		amt := decimal.NewFromFloat(s.Amount).Abs()
		switch s.Type {
		case domain.ScheduleIncome:
			in = in.Add(amt)
		case domain.ScheduleExpense, domain.ScheduleCredit:
			out = out.Add(amt)
		}
	}
	return RecurringSummary{
		Groups:  GroupSchedules(schedules),
		Income:  round2(in),
		Expense: round2(out),
	}
}
