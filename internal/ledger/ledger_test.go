package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"arthika/internal/core"
	"arthika/internal/store"
)

func testCollection(t *testing.T) (*Collection[core.ExpenseRecord, *core.ExpenseRecord], *store.MemoryStore) {
	t.Helper()
	s := store.NewMemoryStore()
	c := NewCollection[core.ExpenseRecord, *core.ExpenseRecord](s, store.KeyExpenses)
	return c, s
}

func TestLoadMissingKeyIsEmpty(t *testing.T) {
	c, _ := testCollection(t)

	items := c.Load(context.Background())
	if items == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(items) != 0 {
		t.Fatalf("expected 0 records, got %d", len(items))
	}
}

func TestLoadMalformedValueIsEmpty(t *testing.T) {
	c, s := testCollection(t)
	ctx := context.Background()

	if err := s.Set(ctx, store.KeyExpenses, []byte(`{"not":"an array"`)); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	if got := len(c.Load(ctx)); got != 0 {
		t.Fatalf("expected malformed value to read as empty, got %d records", got)
	}
}

func TestAddPersistsAndStampsID(t *testing.T) {
	c, _ := testCollection(t)
	ctx := context.Background()

	rec, err := c.Add(ctx, core.ExpenseRecord{
		Category: "Food",
		Amount:   250,
		Date:     "2026-08-01",
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if rec.ID == 0 {
		t.Fatal("expected a non-zero id")
	}

	items := c.Load(ctx)
	if len(items) != 1 {
		t.Fatalf("expected 1 record after add, got %d", len(items))
	}
	if items[0].ID != rec.ID || items[0].Amount != 250 {
		t.Fatalf("stored record mismatch: %+v", items[0])
	}
}

func TestAddRejectsInvalidRecord(t *testing.T) {
	c, _ := testCollection(t)
	ctx := context.Background()

	_, err := c.Add(ctx, core.ExpenseRecord{Category: "", Amount: 10, Date: "2026-08-01"})
	if !errors.Is(err, core.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	if got := len(c.Load(ctx)); got != 0 {
		t.Fatalf("rejected record must not be persisted, got %d records", got)
	}
}

func TestIDsUniqueWithinSameMillisecond(t *testing.T) {
	c, _ := testCollection(t)
	frozen := time.UnixMilli(1756339200000)
	c.WithClock(func() time.Time { return frozen })
	ctx := context.Background()

	seen := map[int64]bool{}
	for i := 0; i < 3; i++ {
		rec, err := c.Add(ctx, core.ExpenseRecord{
			Category: "Food",
			Amount:   10,
			Date:     "2026-08-01",
		})
		if err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
		if seen[rec.ID] {
			t.Fatalf("duplicate id %d", rec.ID)
		}
		seen[rec.ID] = true
	}
}

func TestUpdateMutatesMatchingRecord(t *testing.T) {
	c, _ := testCollection(t)
	ctx := context.Background()

	rec, err := c.Add(ctx, core.ExpenseRecord{Category: "Food", Amount: 100, Date: "2026-08-01"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	found, err := c.Update(ctx, rec.ID, func(e *core.ExpenseRecord) {
		e.Amount = 175
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !found {
		t.Fatal("expected record to be found")
	}

	items := c.Load(ctx)
	if items[0].Amount != 175 {
		t.Fatalf("expected updated amount 175, got %v", items[0].Amount)
	}
}

func TestUpdateAbsentIDIsNoOp(t *testing.T) {
	c, _ := testCollection(t)

	found, err := c.Update(context.Background(), 42, func(e *core.ExpenseRecord) {
		e.Amount = 999
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if found {
		t.Fatal("expected absent id to report not found")
	}
}

func TestRemoveFiltersRecord(t *testing.T) {
	c, _ := testCollection(t)
	ctx := context.Background()

	first, err := c.Add(ctx, core.ExpenseRecord{Category: "Food", Amount: 100, Date: "2026-08-01"})
	if err != nil {
		t.Fatalf("add first: %v", err)
	}
	second, err := c.Add(ctx, core.ExpenseRecord{Category: "Travel", Amount: 200, Date: "2026-08-02"})
	if err != nil {
		t.Fatalf("add second: %v", err)
	}

	if err := c.Remove(ctx, first.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	items := c.Load(ctx)
	if len(items) != 1 {
		t.Fatalf("expected 1 record after remove, got %d", len(items))
	}
	if items[0].ID != second.ID {
		t.Fatalf("wrong record removed, kept id %d", items[0].ID)
	}

	// Removing an id that is already gone stays silent.
	if err := c.Remove(ctx, first.ID); err != nil {
		t.Fatalf("second remove: %v", err)
	}
}
