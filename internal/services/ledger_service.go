// Package services orchestrates ledger mutations across the record
// store and the optional AMQP export pipeline.
package services

import (
	"context"
	"log/slog"

	"arthika/internal/ledger"
)

// SyncPublisher publishes a ledger change notification. Implemented by
// amqp.Client; nil means export is disabled.
type SyncPublisher interface {
	PublishLedgerSync(ctx context.Context, key string, id int64, op string) error
}

// LedgerService wraps one ledger collection and publishes a sync
// message after every completed mutation. Publish failures are logged
// and swallowed: the local write already succeeded and the worker
// reconciles from store state, not from the message payload.
type LedgerService[T any, PT ledger.Record[T]] struct {
	col       *ledger.Collection[T, PT]
	publisher SyncPublisher
}

func NewLedgerService[T any, PT ledger.Record[T]](col *ledger.Collection[T, PT], publisher SyncPublisher) *LedgerService[T, PT] {
	return &LedgerService[T, PT]{col: col, publisher: publisher}
}

func (s *LedgerService[T, PT]) List(ctx context.Context) []T {
	return s.col.Load(ctx)
}

func (s *LedgerService[T, PT]) Add(ctx context.Context, rec T) (T, error) {
	added, err := s.col.Add(ctx, rec)
	if err != nil {
		return added, err
	}
	s.publish(ctx, PT(&added).RecordID(), "upsert")
	return added, nil
}

func (s *LedgerService[T, PT]) Update(ctx context.Context, id int64, mutate func(PT)) (bool, error) {
	found, err := s.col.Update(ctx, id, mutate)
	if err != nil || !found {
		return found, err
	}
	s.publish(ctx, id, "upsert")
	return true, nil
}

func (s *LedgerService[T, PT]) Remove(ctx context.Context, id int64) error {
	if err := s.col.Remove(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, id, "delete")
	return nil
}

func (s *LedgerService[T, PT]) publish(ctx context.Context, id int64, op string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishLedgerSync(ctx, s.col.Key(), id, op); err != nil {
		slog.ErrorContext(ctx, "Failed to publish ledger sync message",
			"key", s.col.Key(), "id", id, "op", op, "error", err)
	}
}
