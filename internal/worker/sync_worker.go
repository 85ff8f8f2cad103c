// Package worker mirrors ledger collections to the configured
// spreadsheet exporter, driven by AMQP sync messages.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"arthika/internal/amqp"
	"arthika/internal/core"
	"arthika/internal/ledger"
	"arthika/internal/sheets"
	"arthika/internal/store"
)

// SyncWorker re-exports a whole collection whenever any record in it
// changes. Messages carry only the collection key; the store is the
// source of truth, so missed or reordered messages cannot corrupt the
// sheet, only delay it.
type SyncWorker struct {
	incomes  *ledger.Collection[core.IncomeRecord, *core.IncomeRecord]
	expenses *ledger.Collection[core.ExpenseRecord, *core.ExpenseRecord]
	bills    *ledger.Collection[core.BillRecord, *core.BillRecord]
	exporter sheets.CollectionExporter
}

func NewSyncWorker(s store.RecordStore, exporter sheets.CollectionExporter) *SyncWorker {
	return &SyncWorker{
		incomes:  ledger.NewCollection[core.IncomeRecord, *core.IncomeRecord](s, store.KeyIncomes),
		expenses: ledger.NewCollection[core.ExpenseRecord, *core.ExpenseRecord](s, store.KeyExpenses),
		bills:    ledger.NewCollection[core.BillRecord, *core.BillRecord](s, store.KeyBills),
		exporter: exporter,
	}
}

// HandleSyncMessage exports the collection named by the message.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.LedgerSyncMessage) error {
	slog.InfoContext(ctx, "Processing ledger sync message",
		"key", msg.Key,
		"id", msg.ID,
		"op", msg.Op)

	if err := w.exportKey(ctx, msg.Key); err != nil {
		return fmt.Errorf("export collection %q: %w", msg.Key, err)
	}
	return nil
}

// ExportAll snapshots every collection, in parallel. Run at startup to
// recover from messages missed while the worker was down.
func (w *SyncWorker) ExportAll(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, key := range []string{store.KeyIncomes, store.KeyExpenses, store.KeyBills} {
		g.Go(func() error {
			if err := w.exportKey(ctx, key); err != nil {
				return fmt.Errorf("export collection %q: %w", key, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	slog.InfoContext(ctx, "Startup export completed")
	return nil
}

func (w *SyncWorker) exportKey(ctx context.Context, key string) error {
	switch key {
	case store.KeyIncomes:
		return w.exportIncomes(ctx)
	case store.KeyExpenses:
		return w.exportExpenses(ctx)
	case store.KeyBills:
		return w.exportBills(ctx)
	default:
		return fmt.Errorf("unknown collection key %q", key)
	}
}

func (w *SyncWorker) exportIncomes(ctx context.Context) error {
	items := w.incomes.Load(ctx)
	rows := make([][]any, 0, len(items))
	for _, it := range items {
		rows = append(rows, []any{it.ID, it.Source, it.Amount, it.Date})
	}
	return w.exporter.ExportCollection(ctx, store.KeyIncomes,
		[]string{"ID", "Source", "Amount", "Date"}, rows)
}

func (w *SyncWorker) exportExpenses(ctx context.Context) error {
	items := w.expenses.Load(ctx)
	rows := make([][]any, 0, len(items))
	for _, it := range items {
		rows = append(rows, []any{it.ID, it.Name, it.Category, it.Amount, it.Date})
	}
	return w.exporter.ExportCollection(ctx, store.KeyExpenses,
		[]string{"ID", "Name", "Category", "Amount", "Date"}, rows)
}

func (w *SyncWorker) exportBills(ctx context.Context) error {
	items := w.bills.Load(ctx)
	rows := make([][]any, 0, len(items))
	for _, it := range items {
		rows = append(rows, []any{it.ID, it.Name, it.Category, it.Amount, it.DueDate})
	}
	return w.exporter.ExportCollection(ctx, store.KeyBills,
		[]string{"ID", "Name", "Category", "Amount", "Due Date"}, rows)
}
