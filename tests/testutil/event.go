package testutil

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/institute/backend/internal/domain/shared"
)

type eventLog struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func (l *eventLog) record(events ...shared.DomainEvent) {
	l.mu.Lock()
	l.events = append(l.events, events...)
	l.mu.Unlock()
}

// Events returns a copy of everything recorded so far.
func (l *eventLog) Events() []shared.DomainEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]shared.DomainEvent(nil), l.events...)
}

func (l *eventLog) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}

// OfType filters the recorded events by type.
func (l *eventLog) OfType(eventType string) []shared.DomainEvent {
	var out []shared.DomainEvent
	for _, e := range l.Events() {
		if e.EventType() == eventType {
			out = append(out, e)
		}
	}
	return out
}

func (l *eventLog) types() []string {
	events := l.Events()
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.EventType()
	}
	return out
}

// RecordingPublisher is a shared.EventPublisher that keeps what it is given.
type RecordingPublisher struct {
	eventLog
}

func (p *RecordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.record(events...)
	return nil
}

// EventTypes lists the published event types in publish order.
func (p *RecordingPublisher) EventTypes() []string {
	return p.types()
}

// RecordingHandler is a bus subscriber for tests. It returns the configured
// failure, if any, after recording.
type RecordingHandler struct {
	eventLog
	subscribed []string

	failMu sync.Mutex
	fail   error
}

func NewRecordingHandler(eventTypes ...string) *RecordingHandler {
	return &RecordingHandler{subscribed: eventTypes}
}

func (h *RecordingHandler) EventTypes() []string { return h.subscribed }

func (h *RecordingHandler) Handle(_ context.Context, event shared.DomainEvent) error {
	h.record(event)
	h.failMu.Lock()
	defer h.failMu.Unlock()
	return h.fail
}

// FailWith makes later Handle calls return err. Pass nil to recover.
func (h *RecordingHandler) FailWith(err error) {
	h.failMu.Lock()
	h.fail = err
	h.failMu.Unlock()
}

// TestEvent is a bare event with a payload string.
type TestEvent struct {
	shared.BaseDomainEvent
	Data string
}

func NewTestEvent(eventType string, centerID uuid.UUID) *TestEvent {
	return &TestEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, "TestAggregate", uuid.New(), centerID, time.Now()),
		Data:            "test-data",
	}
}

// Eventually polls cond until it holds or timeout elapses.
func Eventually(t *testing.T, cond func() bool, timeout time.Duration) bool {
	t.Helper()
	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()
	deadline := time.After(timeout)
	for !cond() {
		select {
		case <-deadline:
			return cond()
		case <-ticker.C:
		}
	}
	return true
}
