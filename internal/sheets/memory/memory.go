// Package memory provides an in-process exporter used in tests and
// when no spreadsheet is configured.
package memory

import (
	"context"
	"sync"

	ports "arthika/internal/sheets"
)

// Export is one recorded snapshot.
type Export struct {
	Header []string
	Rows   [][]any
}

// Store records the latest export per collection key.
type Store struct {
	mu      sync.Mutex
	exports map[string]Export
	count   int
}

var _ ports.CollectionExporter = (*Store)(nil)

func New() *Store {
	return &Store{exports: make(map[string]Export)}
}

func (s *Store) ExportCollection(_ context.Context, key string, header []string, rows [][]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.exports[key] = Export{Header: header, Rows: rows}
	s.count++
	return nil
}

// Last returns the most recent export for a key.
func (s *Store) Last(key string) (Export, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.exports[key]
	return e, ok
}

// ExportCount returns the total number of exports recorded.
func (s *Store) ExportCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}
