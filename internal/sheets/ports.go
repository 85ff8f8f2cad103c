package sheets

import "context"

// Ports for outbound adapters.
type (
	// CollectionExporter rewrites the full sheet backing one ledger
	// collection. Exports are idempotent snapshots, not appends, so a
	// replayed sync message cannot duplicate rows.
	CollectionExporter interface {
		ExportCollection(ctx context.Context, key string, header []string, rows [][]any) error
	}
)
