package log

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"
)

func sampleEvent() Event {
	return Event{
		Timestamp:    time.Now().UTC(),
		ConnectionID: "conn-1",
		Direction:    DirectionOut,
		Layer:        LayerChannel,
		Category:     CategoryMessage,
		Message: &MessageEvent{
			MsgID:    7,
			ArgCount: 2,
			Size:     31,
		},
	}
}

func TestEventRoundTrip(t *testing.T) {
	ev := sampleEvent()
	data, err := EncodeEvent(ev)
	if err != nil {
		t.Fatalf("EncodeEvent() error: %v", err)
	}

	got, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent() error: %v", err)
	}
	if got.ConnectionID != ev.ConnectionID {
		t.Errorf("ConnectionID = %q, want %q", got.ConnectionID, ev.ConnectionID)
	}
	if got.Direction != DirectionOut || got.Layer != LayerChannel {
		t.Errorf("direction/layer = %s/%s", got.Direction, got.Layer)
	}
	if got.Message == nil || got.Message.MsgID != 7 || got.Message.ArgCount != 2 {
		t.Errorf("Message = %+v", got.Message)
	}
	if got.Frame != nil || got.Error != nil {
		t.Error("unset payloads should stay nil")
	}
}

func TestErrorEventRoundTrip(t *testing.T) {
	ev := Event{
		Timestamp: time.Now().UTC(),
		Layer:     LayerChannel,
		Category:  CategoryError,
		Error:     &ErrorEvent{Message: "decode failed", Context: "receive"},
	}
	data, err := EncodeEvent(ev)
	if err != nil {
		t.Fatalf("EncodeEvent() error: %v", err)
	}
	got, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent() error: %v", err)
	}
	if got.Error == nil || got.Error.Message != "decode failed" || got.Error.Context != "receive" {
		t.Errorf("Error = %+v", got.Error)
	}
}

func TestReadEvents(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)
	for i := 0; i < 3; i++ {
		ev := sampleEvent()
		ev.Message.MsgID = uint32(i)
		if err := enc.Encode(ev); err != nil {
			t.Fatalf("Encode() error: %v", err)
		}
	}

	events, err := ReadEvents(&buf)
	if err != nil {
		t.Fatalf("ReadEvents() error: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	for i, ev := range events {
		if ev.Message.MsgID != uint32(i) {
			t.Errorf("event %d MsgID = %d", i, ev.Message.MsgID)
		}
	}
}

func TestFileLoggerRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.cbor")

	fl, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger() error: %v", err)
	}
	fl.Log(sampleEvent())
	fl.Log(sampleEvent())
	if err := fl.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	// Close is idempotent and later logs are dropped silently.
	if err := fl.Close(); err != nil {
		t.Fatalf("second Close() error: %v", err)
	}
	fl.Log(sampleEvent())

	events, err := ReadEventsFile(path)
	if err != nil {
		t.Fatalf("ReadEventsFile() error: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("got %d events, want 2", len(events))
	}
}

type countingLogger struct {
	n int
}

func (c *countingLogger) Log(Event) { c.n++ }

func TestMultiLoggerFansOut(t *testing.T) {
	a := &countingLogger{}
	b := &countingLogger{}
	m := NewMultiLogger(a, b)
	m.Log(sampleEvent())
	m.Log(sampleEvent())
	if a.n != 2 || b.n != 2 {
		t.Errorf("fan-out counts = %d, %d; want 2, 2", a.n, b.n)
	}
}

func TestNoopLogger(t *testing.T) {
	// Must not panic, including as a zero value.
	var l NoopLogger
	l.Log(sampleEvent())
}
