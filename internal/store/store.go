// Package store provides the durable record store: a flat key space of
// JSON-encoded values that every ledger collection and the profile
// editor read and write through the same interface.
package store

import "context"

// Fixed keys of the record store. Collection keys hold JSON arrays;
// the user* keys hold scalars, user holds one JSON object and
// userSavings a JSON object mapping category name to number.
const (
	KeyIncomes      = "incomes"
	KeyExpenses     = "expenses"
	KeyBills        = "bills"
	KeyUser         = "user"
	KeyUserName     = "userName"
	KeyUserEmail    = "userEmail"
	KeyUserPassword = "userPassword"
	KeyUserPhoto    = "userPhoto"
	KeyUserSavings  = "userSavings"
)

// RecordStore is the persistence boundary. Implementations must treat
// Set as a full replacement of the value under key; there is no
// partial-write API. A missing key is reported via the bool, not an
// error, so first-run reads stay on the happy path.
type RecordStore interface {
	// Get returns the raw value stored under key, or ok=false when the
	// key has never been written.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	// Set replaces the value under key.
	Set(ctx context.Context, key string, value []byte) error

	// SetMulti replaces several keys in one atomic step. The paid-bill
	// transition relies on this to keep the bills and expenses
	// collections from diverging if execution is interrupted.
	SetMulti(ctx context.Context, values map[string][]byte) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
