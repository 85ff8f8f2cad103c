package core

import (
	"errors"
	"testing"
)

func TestIncomeValidate(t *testing.T) {
	good := IncomeRecord{Source: "Salary", Amount: 5000, Date: "2026-08-01"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name string
		rec  IncomeRecord
		want error
	}{
		{"empty source", IncomeRecord{Amount: 1, Date: "2026-08-01"}, ErrEmptySource},
		{"blank source", IncomeRecord{Source: "  ", Amount: 1, Date: "2026-08-01"}, ErrEmptySource},
		{"negative amount", IncomeRecord{Source: "a", Amount: -1, Date: "2026-08-01"}, ErrInvalidAmount},
		{"missing date", IncomeRecord{Source: "a", Amount: 1}, ErrEmptyDate},
		{"garbage date", IncomeRecord{Source: "a", Amount: 1, Date: "soon"}, ErrInvalidDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.rec.Validate()
			if !errors.Is(err, tc.want) {
				t.Fatalf("Validate() = %v, want %v", err, tc.want)
			}
			if !errors.Is(err, ErrValidation) {
				t.Fatalf("Validate() = %v, want wrapped ErrValidation", err)
			}
		})
	}

	// Zero income is legal: a month without earnings is still a row.
	zero := IncomeRecord{Source: "Freelance", Amount: 0, Date: "2026-08-01"}
	if err := zero.Validate(); err != nil {
		t.Fatalf("zero amount income: %v", err)
	}
}

func TestExpenseValidate(t *testing.T) {
	good := ExpenseRecord{Category: "Food", Amount: 12.5, Date: "2026-08-15"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := (ExpenseRecord{Amount: 1, Date: "2026-08-15"}).Validate(); !errors.Is(err, ErrEmptyCategory) {
		t.Fatalf("missing category: %v", err)
	}
}

func TestBillValidateRequiresPositiveAmount(t *testing.T) {
	good := BillRecord{Name: "Rent", Amount: 1200, DueDate: "2026-09-01", Category: "Rent"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	zero := good
	zero.Amount = 0
	if err := zero.Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("zero amount bill: %v", err)
	}

	noName := good
	noName.Name = " "
	if err := noName.Validate(); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("blank name bill: %v", err)
	}

	badDate := good
	badDate.DueDate = "01/09/2026"
	if err := badDate.Validate(); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("bad due date: %v", err)
	}
}

func TestNormalizeCategory(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Rent", "Rent"},
		{" Internet ", "Internet"},
		{"", DefaultBillCategory},
		{"Groceries", DefaultBillCategory},
		{"rent", DefaultBillCategory}, // matching is case sensitive
	}
	for _, tc := range cases {
		if got := NormalizeCategory(tc.in); got != tc.want {
			t.Errorf("NormalizeCategory(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestBillSetField(t *testing.T) {
	b := BillRecord{Name: "Water", Amount: 30, DueDate: "2026-09-05", Category: "Water"}

	b.SetField("name", "Water & Sewage")
	if b.Name != "Water & Sewage" {
		t.Errorf("name = %q", b.Name)
	}

	b.SetField("amount", "35.5")
	if b.Amount != 35.5 {
		t.Errorf("amount = %v, want 35.5", b.Amount)
	}

	b.SetField("amount", "not a number")
	if b.Amount != 0 {
		t.Errorf("amount after garbage edit = %v, want 0", b.Amount)
	}

	b.SetField("category", "made up")
	if b.Category != DefaultBillCategory {
		t.Errorf("category = %q, want %q", b.Category, DefaultBillCategory)
	}

	before := b
	b.SetField("id", "42")
	if b != before {
		t.Errorf("unknown field mutated record: %+v", b)
	}
}

func TestUserProfileValidate(t *testing.T) {
	good := UserProfile{Name: "Asha", Email: "asha@example.com", Password: "secret1"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []UserProfile{
		{Email: "asha@example.com", Password: "secret1"},
		{Name: "Asha", Email: "not-an-email", Password: "secret1"},
		{Name: "Asha", Email: "asha@example.com", Password: "short"},
	}
	for i, u := range bads {
		if err := u.Validate(); !errors.Is(err, ErrValidation) {
			t.Errorf("case %d: Validate() = %v, want validation error", i, err)
		}
	}
}
