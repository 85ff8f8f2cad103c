package core

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// DateLayout is the calendar-date wire format used by every record,
// the same shape an HTML date input produces.
const DateLayout = "2006-01-02"

// BillCategories is the fixed set of categories a bill may carry.
var BillCategories = []string{
	"Mobile Recharge",
	"Credit Card",
	"Electricity",
	"Rent",
	"Internet",
	"Water",
	"Other",
}

// DefaultBillCategory is applied when a bill arrives without a category.
const DefaultBillCategory = "Other"

// PaidBillCategory is the expense category used when a bill without a
// category of its own is converted into an expense.
const PaidBillCategory = "Bills"

type (
	// IncomeRecord is one row of the incomes ledger. ID is the creation
	// timestamp in Unix milliseconds, unique within its collection.
	IncomeRecord struct {
		ID     int64   `json:"id"`
		Source string  `json:"source"`
		Amount float64 `json:"amount"`
		Date   string  `json:"date"`
	}

	// ExpenseRecord is one row of the expenses ledger. Name is only set
	// when the expense was materialized from a paid bill.
	ExpenseRecord struct {
		ID       int64   `json:"id"`
		Name     string  `json:"name,omitempty"`
		Category string  `json:"category"`
		Amount   float64 `json:"amount"`
		Date     string  `json:"date"`
	}

	// BillRecord is one row of the bills ledger.
	BillRecord struct {
		ID       int64   `json:"id"`
		Name     string  `json:"name"`
		Amount   float64 `json:"amount"`
		DueDate  string  `json:"dueDate"`
		Category string  `json:"category"`
	}

	// UserProfile holds the scalar profile fields. Password is stored
	// and compared in plain text; this is not a security boundary.
	UserProfile struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Photo    string `json:"photo,omitempty"`
	}
)

// ErrValidation is the base of every write-boundary validation error.
// Callers use errors.Is against it to map failures to a user notice.
var ErrValidation = errors.New("validation failed")

var (
	ErrEmptySource   = fmt.Errorf("%w: source is required", ErrValidation)
	ErrEmptyCategory = fmt.Errorf("%w: category is required", ErrValidation)
	ErrEmptyName     = fmt.Errorf("%w: name is required", ErrValidation)
	ErrEmptyDate     = fmt.Errorf("%w: date is required", ErrValidation)
	ErrInvalidDate   = fmt.Errorf("%w: invalid calendar date", ErrValidation)
	ErrInvalidAmount = fmt.Errorf("%w: invalid amount", ErrValidation)
)

// ParseDate parses a calendar date string in the record wire format.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

func validDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return ErrEmptyDate
	}
	if _, err := ParseDate(s); err != nil {
		return err
	}
	return nil
}

func validAmount(v float64, requirePositive bool) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ErrInvalidAmount
	}
	if v < 0 {
		return ErrInvalidAmount
	}
	if requirePositive && v == 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (r IncomeRecord) RecordID() int64       { return r.ID }
func (r *IncomeRecord) SetRecordID(id int64) { r.ID = id }

func (r IncomeRecord) Validate() error {
	if strings.TrimSpace(r.Source) == "" {
		return ErrEmptySource
	}
	if err := validAmount(r.Amount, false); err != nil {
		return err
	}
	return validDate(r.Date)
}

func (r IncomeRecord) AmountValue() float64 { return r.Amount }

func (r ExpenseRecord) RecordID() int64       { return r.ID }
func (r *ExpenseRecord) SetRecordID(id int64) { r.ID = id }

func (r ExpenseRecord) Validate() error {
	if strings.TrimSpace(r.Category) == "" {
		return ErrEmptyCategory
	}
	if err := validAmount(r.Amount, false); err != nil {
		return err
	}
	return validDate(r.Date)
}

func (r ExpenseRecord) AmountValue() float64 { return r.Amount }

func (r BillRecord) RecordID() int64       { return r.ID }
func (r *BillRecord) SetRecordID(id int64) { r.ID = id }

// Validate requires a name, a parseable due date, and a strictly
// positive amount. An unknown category is not rejected here; callers
// normalize it with NormalizeCategory first.
func (r BillRecord) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrEmptyName
	}
	if err := validAmount(r.Amount, true); err != nil {
		return err
	}
	if strings.TrimSpace(r.DueDate) == "" {
		return ErrEmptyDate
	}
	if _, err := ParseDate(r.DueDate); err != nil {
		return err
	}
	return nil
}

func (r BillRecord) AmountValue() float64 { return r.Amount }

// NormalizeCategory maps an empty or unrecognized category to the
// default. The known set mirrors the bill form's select options.
func NormalizeCategory(category string) string {
	category = strings.TrimSpace(category)
	for _, c := range BillCategories {
		if category == c {
			return category
		}
	}
	return DefaultBillCategory
}

// SetField replaces a single editable field on the bill. Amount input
// is coerced numerically with 0 substituted for garbage, matching the
// inline-edit behavior of the bills table. Unknown fields are ignored.
func (r *BillRecord) SetField(field, value string) {
	switch field {
	case "name":
		r.Name = value
	case "amount":
		r.Amount = CoerceAmount(value)
	case "dueDate":
		r.DueDate = value
	case "category":
		r.Category = NormalizeCategory(value)
	}
}

func (u UserProfile) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return ErrEmptyName
	}
	if !strings.Contains(u.Email, "@") || !strings.Contains(u.Email, ".") {
		return fmt.Errorf("%w: invalid email", ErrValidation)
	}
	if len(u.Password) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}
	return nil
}
