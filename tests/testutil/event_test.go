package testutil

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordingHandler(t *testing.T) {
	h := NewRecordingHandler("FeeLedgerCreated", "PaymentSucceeded")
	assert.Equal(t, []string{"FeeLedgerCreated", "PaymentSucceeded"}, h.EventTypes())
	assert.Zero(t, h.Count())

	centerID := uuid.New()
	created := NewTestEvent("FeeLedgerCreated", centerID)
	require.NoError(t, h.Handle(context.Background(), created))
	require.NoError(t, h.Handle(context.Background(), NewTestEvent("PaymentSucceeded", centerID)))

	assert.Equal(t, 2, h.Count())
	assert.Same(t, created, h.Events()[0])
	assert.Len(t, h.OfType("PaymentSucceeded"), 1)

	h.FailWith(assert.AnError)
	assert.ErrorIs(t, h.Handle(context.Background(), created), assert.AnError)
	assert.Equal(t, 3, h.Count(), "failed deliveries are still recorded")

	h.FailWith(nil)
	assert.NoError(t, h.Handle(context.Background(), created))
}

func TestNewTestEvent(t *testing.T) {
	centerID := uuid.New()
	event := NewTestEvent("CertificateIssued", centerID)

	assert.NotEqual(t, uuid.Nil, event.EventID())
	assert.Equal(t, "CertificateIssued", event.EventType())
	assert.Equal(t, centerID, event.CenterID())
	assert.Equal(t, "TestAggregate", event.AggregateType())
	assert.False(t, event.OccurredAt().IsZero())
}

func TestEventually(t *testing.T) {
	t.Run("condition met", func(t *testing.T) {
		var flag atomic.Bool
		time.AfterFunc(20*time.Millisecond, func() { flag.Store(true) })
		assert.True(t, Eventually(t, flag.Load, 500*time.Millisecond))
	})

	t.Run("times out", func(t *testing.T) {
		assert.False(t, Eventually(t, func() bool { return false }, 30*time.Millisecond))
	})

	t.Run("handler catches up", func(t *testing.T) {
		h := NewRecordingHandler("FeeLedgerCreated")
		go func() {
			_ = h.Handle(context.Background(), NewTestEvent("FeeLedgerCreated", uuid.New()))
			_ = h.Handle(context.Background(), NewTestEvent("FeeLedgerCreated", uuid.New()))
		}()
		assert.True(t, Eventually(t, func() bool { return h.Count() == 2 }, 500*time.Millisecond))
	})
}
