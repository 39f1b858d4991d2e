package amqp

import (
	"testing"
	"time"
)

func TestNewSummarySyncMessage(t *testing.T) {
	msg := NewSummarySyncMessage("2024-03-16", 7)

	if msg.PayPeriodEnd != "2024-03-16" {
		t.Errorf("NewSummarySyncMessage() PayPeriodEnd = %v, want 2024-03-16", msg.PayPeriodEnd)
	}
	if msg.Revision != 7 {
		t.Errorf("NewSummarySyncMessage() Revision = %v, want 7", msg.Revision)
	}
	if msg.Timestamp.IsZero() {
		t.Error("NewSummarySyncMessage() Timestamp should not be zero")
	}
	if time.Since(msg.Timestamp) > time.Second {
		t.Error("NewSummarySyncMessage() Timestamp should be recent")
	}
}

func TestSummarySyncMessage_JSON(t *testing.T) {
	timestamp := time.Date(2024, 3, 16, 12, 0, 0, 0, time.UTC)
	msg := &SummarySyncMessage{
		PayPeriodEnd: "2024-03-16",
		Revision:     3,
		Timestamp:    timestamp,
	}

	jsonBytes, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	parsedMsg, err := SummarySyncMessageFromJSON(jsonBytes)
	if err != nil {
		t.Fatalf("SummarySyncMessageFromJSON() error = %v", err)
	}

	if parsedMsg.PayPeriodEnd != msg.PayPeriodEnd {
		t.Errorf("Parsed PayPeriodEnd = %v, want %v", parsedMsg.PayPeriodEnd, msg.PayPeriodEnd)
	}
	if parsedMsg.Revision != msg.Revision {
		t.Errorf("Parsed Revision = %v, want %v", parsedMsg.Revision, msg.Revision)
	}
	if !parsedMsg.Timestamp.Equal(msg.Timestamp) {
		t.Errorf("Parsed Timestamp = %v, want %v", parsedMsg.Timestamp, msg.Timestamp)
	}
}

func TestSummarySyncMessage_EmptyPayPeriod(t *testing.T) {
	// A session clear publishes an empty pay period end; that must survive
	// the round trip rather than being rejected.
	msg := NewSummarySyncMessage("", 4)
	jsonBytes, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}
	parsed, err := SummarySyncMessageFromJSON(jsonBytes)
	if err != nil {
		t.Fatalf("SummarySyncMessageFromJSON() error = %v", err)
	}
	if parsed.PayPeriodEnd != "" {
		t.Errorf("Parsed PayPeriodEnd = %q, want empty", parsed.PayPeriodEnd)
	}
}

func TestSummarySyncMessage_InvalidJSON(t *testing.T) {
	invalidJSON := []byte(`{"revision": "not_a_number"}`)

	_, err := SummarySyncMessageFromJSON(invalidJSON)
	if err == nil {
		t.Error("SummarySyncMessageFromJSON() should fail with invalid JSON")
	}
}
