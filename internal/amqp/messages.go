package amqp

import (
	"encoding/json"
	"time"
)

// Ledger sync operations carried on the wire.
const (
	OpUpsert = "upsert"
	OpDelete = "delete"
)

// LedgerSyncMessage tells the worker that one ledger collection changed.
// It carries only the collection key, the record id and the operation;
// the worker reads the current collection state from the record store.
type LedgerSyncMessage struct {
	Key       string    `json:"key"`
	ID        int64     `json:"id"`
	Op        string    `json:"op"`
	Timestamp time.Time `json:"timestamp"`
}

func NewLedgerSyncMessage(key string, id int64, op string) *LedgerSyncMessage {
	return &LedgerSyncMessage{
		Key:       key,
		ID:        id,
		Op:        op,
		Timestamp: time.Now(),
	}
}

func (m *LedgerSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func LedgerSyncMessageFromJSON(data []byte) (*LedgerSyncMessage, error) {
	var msg LedgerSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
