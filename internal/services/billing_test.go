package services

import (
	"context"
	"testing"
	"time"

	"arthika/internal/core"
	"arthika/internal/ledger"
	"arthika/internal/store"
)

type recordedPublish struct {
	key string
	id  int64
	op  string
}

type fakePublisher struct {
	published []recordedPublish
}

func (f *fakePublisher) PublishLedgerSync(_ context.Context, key string, id int64, op string) error {
	f.published = append(f.published, recordedPublish{key, id, op})
	return nil
}

func newBillingFixture(t *testing.T) (*BillingService, *ledger.Collection[core.BillRecord, *core.BillRecord], *ledger.Collection[core.ExpenseRecord, *core.ExpenseRecord], *fakePublisher) {
	t.Helper()
	s := store.NewMemoryStore()
	bills := ledger.NewCollection[core.BillRecord, *core.BillRecord](s, store.KeyBills)
	expenses := ledger.NewCollection[core.ExpenseRecord, *core.ExpenseRecord](s, store.KeyExpenses)
	pub := &fakePublisher{}
	svc := NewBillingService(s, bills, expenses, pub).
		WithClock(func() time.Time { return time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC) })
	return svc, bills, expenses, pub
}

func TestMarkPaidMovesBillToExpenses(t *testing.T) {
	svc, bills, expenses, _ := newBillingFixture(t)
	ctx := context.Background()

	bill, err := bills.Add(ctx, core.BillRecord{
		Name:     "Rent",
		Amount:   1200,
		DueDate:  "2026-09-01",
		Category: "Rent",
	})
	if err != nil {
		t.Fatalf("add bill: %v", err)
	}

	result, err := svc.MarkPaid(ctx, bill.ID)
	if err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	if !result.Found {
		t.Fatal("expected bill to be found")
	}

	if got := len(bills.Load(ctx)); got != 0 {
		t.Fatalf("expected bills to be empty, got %d", got)
	}

	exp := expenses.Load(ctx)
	if len(exp) != 1 {
		t.Fatalf("expected 1 expense, got %d", len(exp))
	}
	if exp[0].Name != "Rent" || exp[0].Category != "Rent" || exp[0].Amount != 1200 {
		t.Fatalf("unexpected expense: %+v", exp[0])
	}
	if exp[0].Date != "2026-08-28" {
		t.Fatalf("expected payment date 2026-08-28, got %s", exp[0].Date)
	}
	if exp[0].ID == bill.ID {
		t.Fatal("expense must carry a fresh id, not the bill id")
	}
	if result.Expense.ID != exp[0].ID {
		t.Fatalf("result expense id %d does not match stored %d", result.Expense.ID, exp[0].ID)
	}
}

func TestMarkPaidDefaultsEmptyCategory(t *testing.T) {
	svc, bills, expenses, _ := newBillingFixture(t)
	ctx := context.Background()

	// Category can be absent on records written by older clients.
	bill, err := bills.Add(ctx, core.BillRecord{
		Name:    "Electricity",
		Amount:  300,
		DueDate: "2026-09-05",
	})
	if err != nil {
		t.Fatalf("add bill: %v", err)
	}
	found, err := bills.Update(ctx, bill.ID, func(b *core.BillRecord) { b.Category = "" })
	if err != nil || !found {
		t.Fatalf("clear category: found=%v err=%v", found, err)
	}

	result, err := svc.MarkPaid(ctx, bill.ID)
	if err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	if result.Expense.Category != core.PaidBillCategory {
		t.Fatalf("expected category %q, got %q", core.PaidBillCategory, result.Expense.Category)
	}

	exp := expenses.Load(ctx)
	if len(exp) != 1 || exp[0].Category != core.PaidBillCategory {
		t.Fatalf("stored expense category mismatch: %+v", exp)
	}
}

func TestMarkPaidAbsentBill(t *testing.T) {
	svc, bills, expenses, pub := newBillingFixture(t)
	ctx := context.Background()

	if _, err := bills.Add(ctx, core.BillRecord{
		Name: "Internet", Amount: 50, DueDate: "2026-09-10", Category: "Internet",
	}); err != nil {
		t.Fatalf("add bill: %v", err)
	}

	result, err := svc.MarkPaid(ctx, 999)
	if err != nil {
		t.Fatalf("mark paid: %v", err)
	}
	if result.Found {
		t.Fatal("expected Found=false for absent id")
	}
	if got := len(bills.Load(ctx)); got != 1 {
		t.Fatalf("bills must be untouched, got %d", got)
	}
	if got := len(expenses.Load(ctx)); got != 0 {
		t.Fatalf("expenses must be untouched, got %d", got)
	}
	if len(pub.published) != 0 {
		t.Fatalf("no sync messages expected, got %d", len(pub.published))
	}
}

func TestMarkPaidPublishesBothSides(t *testing.T) {
	svc, bills, _, pub := newBillingFixture(t)
	ctx := context.Background()

	bill, err := bills.Add(ctx, core.BillRecord{
		Name: "Water", Amount: 40, DueDate: "2026-09-03", Category: "Water",
	})
	if err != nil {
		t.Fatalf("add bill: %v", err)
	}

	result, err := svc.MarkPaid(ctx, bill.ID)
	if err != nil {
		t.Fatalf("mark paid: %v", err)
	}

	if len(pub.published) != 2 {
		t.Fatalf("expected 2 sync messages, got %d", len(pub.published))
	}
	if pub.published[0].key != store.KeyBills || pub.published[0].op != "delete" || pub.published[0].id != bill.ID {
		t.Fatalf("unexpected bill message: %+v", pub.published[0])
	}
	if pub.published[1].key != store.KeyExpenses || pub.published[1].op != "upsert" || pub.published[1].id != result.Expense.ID {
		t.Fatalf("unexpected expense message: %+v", pub.published[1])
	}
}
