package core

import (
	"math"
	"sort"
	"time"
)

// Amounter is satisfied by every ledger record type.
type Amounter interface {
	AmountValue() float64
}

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// TotalOf sums the amounts of a collection snapshot. NaN amounts count
// as 0, so a partially corrupted stored record cannot poison a total.
// The result is invariant under reordering of the input.
func TotalOf[T Amounter](items []T) float64 {
	var sum float64
	for _, it := range items {
		v := it.AmountValue()
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		sum += v
	}
	return sum
}

// Balance is total income minus total expenses; it may be negative.
func Balance(incomes []IncomeRecord, expenses []ExpenseRecord) float64 {
	return TotalOf(incomes) - TotalOf(expenses)
}

// DaysUntil returns the number of calendar days between now and the
// due date, as ceil((due-now)/24h): negative when overdue, zero when
// due today. The second return is false for an unparsable due date.
func DaysUntil(dueDate string, now time.Time) (int, bool) {
	due, err := ParseDate(dueDate)
	if err != nil {
		return 0, false
	}
	diff := due.Sub(now)
	return int(math.Ceil(diff.Hours() / 24)), true
}

// Upcoming returns the n bills due soonest, stable-sorted by due date
// ascending so insertion order breaks ties. Bills whose due date does
// not parse sort last.
func Upcoming(bills []BillRecord, n int) []BillRecord {
	sorted := make([]BillRecord, len(bills))
	copy(sorted, bills)
	sort.SliceStable(sorted, func(i, j int) bool {
		di, erri := ParseDate(sorted[i].DueDate)
		dj, errj := ParseDate(sorted[j].DueDate)
		if erri != nil {
			return false
		}
		if errj != nil {
			return true
		}
		return di.Before(dj)
	})
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// DueWithin sums the amounts of bills falling due inside the window:
// 0 <= daysUntil <= windowDays. Overdue bills, far-future bills and
// bills with unparsable due dates are excluded.
func DueWithin(bills []BillRecord, windowDays int, now time.Time) float64 {
	var sum float64
	for _, b := range bills {
		d, ok := DaysUntil(b.DueDate, now)
		if !ok {
			continue
		}
		if d >= 0 && d <= windowDays {
			v := b.AmountValue()
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			sum += v
		}
	}
	return sum
}

// CategoryTotals aggregates expense amounts by category, ordered by
// descending total with name as tiebreaker.
func CategoryTotals(expenses []ExpenseRecord) []CategoryAmount {
	byName := make(map[string]float64)
	for _, e := range expenses {
		v := e.AmountValue()
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		byName[e.Category] += v
	}
	out := make([]CategoryAmount, 0, len(byName))
	for name, amount := range byName {
		out = append(out, CategoryAmount{Name: name, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// SavingsTotal sums a savings breakdown.
func SavingsTotal(savings map[string]float64) float64 {
	var sum float64
	for _, v := range savings {
		sum += v
	}
	return sum
}

// SavingsAdvice picks the static advisory message for a savings
// breakdown: healthy total first, then travel-versus-health skew,
// otherwise the generic encouragement.
func SavingsAdvice(savings map[string]float64) string {
	switch {
	case SavingsTotal(savings) > 10000:
		return "Great job! You're saving over 10,000 this month. Consider investing in mutual funds for long-term growth."
	case savings["Travel"] > savings["Health"]:
		return "You're spending more on Travel than Health. Maybe balance your priorities a bit!"
	default:
		return "Keep building your savings! Even small consistent investments in RD/FD can grow steadily."
	}
}
