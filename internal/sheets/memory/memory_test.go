package memory

import (
	"context"
	"testing"
)

func TestStoreRecordsLatestExport(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.ExportCollection(ctx, "expenses", []string{"ID", "Amount"}, [][]any{{1, 100.0}}); err != nil {
		t.Fatalf("export: %v", err)
	}
	if err := s.ExportCollection(ctx, "expenses", []string{"ID", "Amount"}, [][]any{{1, 100.0}, {2, 50.0}}); err != nil {
		t.Fatalf("second export: %v", err)
	}

	last, ok := s.Last("expenses")
	if !ok {
		t.Fatal("expected recorded export")
	}
	if len(last.Rows) != 2 {
		t.Fatalf("expected latest snapshot with 2 rows, got %d", len(last.Rows))
	}
	if s.ExportCount() != 2 {
		t.Fatalf("expected 2 exports counted, got %d", s.ExportCount())
	}

	if _, ok := s.Last("bills"); ok {
		t.Fatal("unexpected export recorded for bills")
	}
}
