package amqp

import (
	"encoding/json"
	"time"
)

// SummarySyncMessage tells the worker that the ledger changed. It is
// deliberately lightweight: the worker reloads the state from storage and
// recomputes the summary itself, so a lost message only delays the mirror
// until the next one or the periodic reconcile.
type SummarySyncMessage struct {
	PayPeriodEnd string    `json:"payPeriodEnd"`
	Revision     int64     `json:"revision"`
	Timestamp    time.Time `json:"timestamp"`
}

// NewSummarySyncMessage builds a message for the given ledger revision.
func NewSummarySyncMessage(payPeriodEnd string, revision int64) *SummarySyncMessage {
	return &SummarySyncMessage{
		PayPeriodEnd: payPeriodEnd,
		Revision:     revision,
		Timestamp:    time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *SummarySyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// SummarySyncMessageFromJSON creates a message from JSON bytes
func SummarySyncMessageFromJSON(data []byte) (*SummarySyncMessage, error) {
	var msg SummarySyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
