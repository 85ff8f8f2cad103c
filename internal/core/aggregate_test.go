package core

import (
	"math"
	"strings"
	"testing"
	"time"
)

var aggNow = time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

func TestTotalOfSkipsNonFiniteAmounts(t *testing.T) {
	items := []ExpenseRecord{
		{Category: "Food", Amount: 10},
		{Category: "Food", Amount: math.NaN()},
		{Category: "Food", Amount: math.Inf(1)},
		{Category: "Food", Amount: 2.5},
	}
	if got := TotalOf(items); got != 12.5 {
		t.Fatalf("TotalOf = %v, want 12.5", got)
	}
}

func TestBalanceMayGoNegative(t *testing.T) {
	incomes := []IncomeRecord{{Source: "Salary", Amount: 100}}
	expenses := []ExpenseRecord{{Category: "Rent", Amount: 250}}
	if got := Balance(incomes, expenses); got != -150 {
		t.Fatalf("Balance = %v, want -150", got)
	}
}

func TestDaysUntil(t *testing.T) {
	cases := []struct {
		due  string
		want int
		ok   bool
	}{
		{"2026-08-31", 3, true},
		{"2026-08-28", 0, true},
		{"2026-08-25", -3, true},
		{"tomorrow", 0, false},
	}
	for _, tc := range cases {
		got, ok := DaysUntil(tc.due, aggNow)
		if ok != tc.ok || got != tc.want {
			t.Errorf("DaysUntil(%q) = (%d, %v), want (%d, %v)", tc.due, got, ok, tc.want, tc.ok)
		}
	}
}

func TestDaysUntilDueTodayAfterMidnight(t *testing.T) {
	// A bill due today counts as zero days even late in the day:
	// the date parses to midnight, so the raw difference is negative.
	lateToday := time.Date(2026, 8, 28, 23, 30, 0, 0, time.UTC)
	if got, ok := DaysUntil("2026-08-28", lateToday); !ok || got != 0 {
		t.Fatalf("DaysUntil = (%d, %v), want (0, true)", got, ok)
	}
}

func TestUpcomingSortsByDueDateUnparsableLast(t *testing.T) {
	bills := []BillRecord{
		{Name: "C", DueDate: "2026-09-20"},
		{Name: "Broken", DueDate: "someday"},
		{Name: "A", DueDate: "2026-08-30"},
		{Name: "B", DueDate: "2026-09-01"},
	}
	got := Upcoming(bills, 3)
	want := []string{"A", "B", "C"}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("Upcoming[%d] = %q, want %q", i, got[i].Name, name)
		}
	}

	all := Upcoming(bills, 10)
	if all[len(all)-1].Name != "Broken" {
		t.Errorf("unparsable bill sorted to %q, want last", all[len(all)-1].Name)
	}
}

func TestUpcomingPreservesInsertionOrderOnTies(t *testing.T) {
	bills := []BillRecord{
		{Name: "First", DueDate: "2026-09-01"},
		{Name: "Second", DueDate: "2026-09-01"},
	}
	got := Upcoming(bills, 2)
	if got[0].Name != "First" || got[1].Name != "Second" {
		t.Fatalf("tie order = %q, %q", got[0].Name, got[1].Name)
	}
}

func TestDueWithin(t *testing.T) {
	bills := []BillRecord{
		{Name: "overdue", Amount: 10, DueDate: "2026-08-20"},
		{Name: "today", Amount: 20, DueDate: "2026-08-28"},
		{Name: "in window", Amount: 40, DueDate: "2026-09-03"},
		{Name: "past window", Amount: 80, DueDate: "2026-09-10"},
		{Name: "broken", Amount: 160, DueDate: "nope"},
	}
	if got := DueWithin(bills, 7, aggNow); got != 60 {
		t.Fatalf("DueWithin(7) = %v, want 60", got)
	}
	if got := DueWithin(bills, 30, aggNow); got != 140 {
		t.Fatalf("DueWithin(30) = %v, want 140", got)
	}
}

func TestCategoryTotalsOrdering(t *testing.T) {
	expenses := []ExpenseRecord{
		{Category: "Food", Amount: 30},
		{Category: "Transport", Amount: 50},
		{Category: "Food", Amount: 20},
		{Category: "Books", Amount: 50},
	}
	got := CategoryTotals(expenses)
	want := []CategoryAmount{
		{Name: "Books", Amount: 50},
		{Name: "Food", Amount: 50},
		{Name: "Transport", Amount: 50},
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("CategoryTotals[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSavingsAdvice(t *testing.T) {
	cases := []struct {
		name    string
		savings map[string]float64
		substr  string
	}{
		{"healthy total", map[string]float64{"FD": 12000}, "mutual funds"},
		{"travel heavy", map[string]float64{"Travel": 500, "Health": 100}, "priorities"},
		{"default", map[string]float64{"Health": 500}, "Keep building"},
		{"empty", nil, "Keep building"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SavingsAdvice(tc.savings)
			if !strings.Contains(got, tc.substr) {
				t.Errorf("SavingsAdvice = %q, want it to mention %q", got, tc.substr)
			}
		})
	}
}
