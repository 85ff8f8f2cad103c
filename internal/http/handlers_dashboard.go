package http

import (
	"net/http"

	"arthika/internal/core"
)

const (
	dueSoonWindowDays  = 7
	dueMonthWindowDays = 30
	upcomingBillCount  = 5
)

type upcomingBill struct {
	core.BillRecord
	DaysLeft *int `json:"daysLeft,omitempty"`
}

// handleDashboard aggregates the three ledgers into the numbers the
// balance page renders in one round trip.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := s.now()

	incomes := s.incomes.List(ctx)
	expenses := s.expenses.List(ctx)
	bills := s.bills.List(ctx)

	upcoming := make([]upcomingBill, 0, upcomingBillCount)
	for _, b := range core.Upcoming(bills, upcomingBillCount) {
		entry := upcomingBill{BillRecord: b}
		if d, ok := core.DaysUntil(b.DueDate, now); ok {
			entry.DaysLeft = &d
		}
		upcoming = append(upcoming, entry)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"totalIncome":   core.TotalOf(incomes),
		"totalExpenses": core.TotalOf(expenses),
		"balance":       core.Balance(incomes, expenses),
		"dueThisWeek":   core.DueWithin(bills, dueSoonWindowDays, now),
		"dueThisMonth":  core.DueWithin(bills, dueMonthWindowDays, now),
		"upcomingBills": upcoming,
		"categories":    core.CategoryTotals(expenses),
	})
}
