package amqp

import (
	"encoding/json"
	"time"
)

// BalanceChangeMessage is the audit event published when an
// administrator rewrites the initial balance setting. The worker
// journals it into the audit log; amounts travel in minor units.
type BalanceChangeMessage struct {
	Key       string    `json:"key"`
	OldCents  int64     `json:"old_cents"`
	NewCents  int64     `json:"new_cents"`
	Actor     string    `json:"actor"`
	Timestamp time.Time `json:"timestamp"`
}

func NewBalanceChangeMessage(key string, oldCents, newCents int64, actor string) *BalanceChangeMessage {
	return &BalanceChangeMessage{
		Key:       key,
		OldCents:  oldCents,
		NewCents:  newCents,
		Actor:     actor,
		Timestamp: time.Now(),
	}
}

func (m *BalanceChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func BalanceChangeMessageFromJSON(data []byte) (*BalanceChangeMessage, error) {
	var msg BalanceChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
