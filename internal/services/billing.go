package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"arthika/internal/core"
	"arthika/internal/ledger"
	"arthika/internal/store"
)

// PaidResult reports the outcome of a paid-bill transition.
type PaidResult struct {
	Found   bool
	Expense core.ExpenseRecord
}

// BillingService owns the paid-bill transition: a bill leaves the bills
// collection and a matching expense enters the expenses collection in
// one atomic store write.
type BillingService struct {
	store     store.RecordStore
	bills     *ledger.Collection[core.BillRecord, *core.BillRecord]
	expenses  *ledger.Collection[core.ExpenseRecord, *core.ExpenseRecord]
	publisher SyncPublisher
	now       func() time.Time
}

func NewBillingService(
	s store.RecordStore,
	bills *ledger.Collection[core.BillRecord, *core.BillRecord],
	expenses *ledger.Collection[core.ExpenseRecord, *core.ExpenseRecord],
	publisher SyncPublisher,
) *BillingService {
	return &BillingService{
		store:     s,
		bills:     bills,
		expenses:  expenses,
		publisher: publisher,
		now:       time.Now,
	}
}

// WithClock overrides the expense-date clock, for tests.
func (b *BillingService) WithClock(now func() time.Time) *BillingService {
	b.now = now
	return b
}

// MarkPaid converts the bill with the given id into an expense dated
// today. The bill keeps its category unless it has none, in which case
// the expense is filed under the paid-bill category. An absent id
// leaves both collections untouched and reports Found false.
//
// Both collection writes go through a single SetMulti: the bill cannot
// disappear without the expense appearing, and vice versa.
func (b *BillingService) MarkPaid(ctx context.Context, id int64) (PaidResult, error) {
	bills := b.bills.Load(ctx)

	var paid *core.BillRecord
	remaining := make([]core.BillRecord, 0, len(bills))
	for i := range bills {
		if bills[i].ID == id {
			paid = &bills[i]
			continue
		}
		remaining = append(remaining, bills[i])
	}
	if paid == nil {
		return PaidResult{Found: false}, nil
	}

	category := paid.Category
	if category == "" {
		category = core.PaidBillCategory
	}
	expense := core.ExpenseRecord{
		ID:       b.expenses.NextID(),
		Name:     paid.Name,
		Category: category,
		Amount:   paid.Amount,
		Date:     b.now().Format(core.DateLayout),
	}

	expenses := append(b.expenses.Load(ctx), expense)

	billsRaw, err := b.bills.Encode(remaining)
	if err != nil {
		return PaidResult{}, err
	}
	expensesRaw, err := b.expenses.Encode(expenses)
	if err != nil {
		return PaidResult{}, err
	}

	if err := b.store.SetMulti(ctx, map[string][]byte{
		b.bills.Key():    billsRaw,
		b.expenses.Key(): expensesRaw,
	}); err != nil {
		return PaidResult{}, fmt.Errorf("persist paid bill %d: %w", id, err)
	}

	b.publishPaid(ctx, id, expense.ID)

	return PaidResult{Found: true, Expense: expense}, nil
}

func (b *BillingService) publishPaid(ctx context.Context, billID, expenseID int64) {
	if b.publisher == nil {
		return
	}
	if err := b.publisher.PublishLedgerSync(ctx, b.bills.Key(), billID, "delete"); err != nil {
		slog.ErrorContext(ctx, "Failed to publish bill removal", "id", billID, "error", err)
	}
	if err := b.publisher.PublishLedgerSync(ctx, b.expenses.Key(), expenseID, "upsert"); err != nil {
		slog.ErrorContext(ctx, "Failed to publish paid expense", "id", expenseID, "error", err)
	}
}
