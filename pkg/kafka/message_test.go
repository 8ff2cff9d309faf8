package kafka

import "testing"

func TestMessageBuilder(t *testing.T) {
	msg := NewMessage().
		WithKey("42").
		WithValue(map[string]any{"id": 42}).
		WithEventType("reservation.created").
		WithSource("scheduler").
		Build()

	if msg.Key != "42" {
		t.Errorf("key = %q, want 42", msg.Key)
	}
	if msg.GetEventType() != "reservation.created" {
		t.Errorf("event type = %q", msg.GetEventType())
	}
	if src, ok := msg.GetHeader(HeaderSource); !ok || src != "scheduler" {
		t.Errorf("source header = %q, %v", src, ok)
	}
	if msg.GetEventID() == "" {
		t.Error("event id not assigned")
	}
	if ts, ok := msg.GetHeader(HeaderTimestamp); !ok || ts == "" {
		t.Error("timestamp header not assigned")
	}

	var payload struct {
		ID int `json:"id"`
	}
	if err := msg.DecodeValue(&payload); err != nil {
		t.Fatalf("DecodeValue: %v", err)
	}
	if payload.ID != 42 {
		t.Errorf("payload id = %d, want 42", payload.ID)
	}
}

func TestMessageBuilderDistinctEventIDs(t *testing.T) {
	a := NewMessage().WithValue("a").Build()
	b := NewMessage().WithValue("b").Build()

	if a.GetEventID() == b.GetEventID() {
		t.Error("two messages share an event id")
	}
}
