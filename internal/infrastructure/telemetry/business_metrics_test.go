package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"

	"github.com/institute/backend/internal/domain/certification"
	"github.com/institute/backend/internal/domain/exam"
	"github.com/institute/backend/internal/domain/fee"
	"github.com/institute/backend/internal/domain/shared"
)

var testNow = time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

func newTestMetrics(t *testing.T) (*BusinessMetrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	bm, err := NewBusinessMetrics(mp.Meter("institute"), zap.NewNop())
	require.NoError(t, err)
	return bm, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := make(map[string]metricdata.Aggregation)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func sumWhere(t *testing.T, data metricdata.Aggregation, key attribute.Key, value string) int64 {
	t.Helper()
	sum, ok := data.(metricdata.Sum[int64])
	require.True(t, ok, "expected int64 sum, got %T", data)
	var total int64
	for _, dp := range sum.DataPoints {
		if v, ok := dp.Attributes.Value(key); ok && v.AsString() == value {
			total += dp.Value
		}
	}
	return total
}

func TestNewBusinessMetrics_RequiresMeter(t *testing.T) {
	_, err := NewBusinessMetrics(nil, nil)
	assert.ErrorIs(t, err, ErrMeterNil)
}

func TestBusinessMetrics_Payments(t *testing.T) {
	bm, reader := newTestMetrics(t)
	ctx := context.Background()
	centerID := uuid.New()

	base := func(eventType string) shared.BaseDomainEvent {
		return shared.NewBaseDomainEvent(eventType, fee.AggregateTypePaymentAttempt, uuid.New(), centerID, testNow)
	}
	require.NoError(t, bm.Handle(ctx, &fee.PaymentSucceededEvent{
		BaseDomainEvent: base(fee.EventTypePaymentSucceeded),
		Amount:          decimal.NewFromInt(2500),
		Method:          fee.PaymentMethodUPI,
	}))
	require.NoError(t, bm.Handle(ctx, &fee.PaymentFailedEvent{
		BaseDomainEvent: base(fee.EventTypePaymentFailed),
		Method:          fee.PaymentMethodUPI,
	}))
	require.NoError(t, bm.Handle(ctx, &fee.PaymentFailedEvent{
		BaseDomainEvent: base(fee.EventTypePaymentFailed),
		Method:          fee.PaymentMethodCash,
	}))

	data := collect(t, reader)
	require.Contains(t, data, "institute_payment_total")
	assert.Equal(t, int64(1), sumWhere(t, data["institute_payment_total"], AttrPaymentOutcome, "success"))
	assert.Equal(t, int64(2), sumWhere(t, data["institute_payment_total"], AttrPaymentOutcome, "failed"))
	assert.Equal(t, int64(3), sumWhere(t, data["institute_payment_total"], AttrCenterID, centerID.String()))

	hist, ok := data["institute_payment_amount"].(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, 2500.0, hist.DataPoints[0].Sum)
}

func TestBusinessMetrics_ExamsAndCertificates(t *testing.T) {
	bm, reader := newTestMetrics(t)
	ctx := context.Background()
	centerID := uuid.New()

	require.NoError(t, bm.Handle(ctx, &exam.ResultRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(exam.EventTypeResultRecorded, exam.AggregateTypeExamResult, uuid.New(), centerID, testNow),
		Percentage:      decimal.NewFromFloat(82.5),
		Grade:           exam.GradeA,
		ResultStatus:    exam.ResultStatusPass,
	}))
	require.NoError(t, bm.Handle(ctx, &exam.ResultPublishedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(exam.EventTypeResultPublished, exam.AggregateTypeExamResult, uuid.New(), centerID, testNow),
		ResultStatus:    exam.ResultStatusPass,
	}))
	require.NoError(t, bm.Handle(ctx, &certification.CertificateIssuedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(certification.EventTypeCertificateIssued, certification.AggregateTypeCertificate, uuid.New(), centerID, testNow),
	}))
	require.NoError(t, bm.Handle(ctx, &certification.CertificateRevokedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(certification.EventTypeCertificateRevoked, certification.AggregateTypeCertificate, uuid.New(), centerID, testNow),
	}))
	bm.RecordVerification(ctx, true)

	data := collect(t, reader)
	assert.Equal(t, int64(1), sumWhere(t, data["institute_exam_results_recorded_total"], AttrGrade, "A"))
	assert.Equal(t, int64(1), sumWhere(t, data["institute_exam_results_published_total"], AttrResultStatus, "PASS"))
	assert.Equal(t, int64(1), sumWhere(t, data["institute_certificates_issued_total"], AttrCenterID, centerID.String()))
	assert.Equal(t, int64(1), sumWhere(t, data["institute_certificate_status_changes_total"], AttrCertificateStatus, "REVOKED"))
	assert.Contains(t, data, "institute_certificate_verifications_total")
	assert.Contains(t, data, "institute_exam_result_percentage")
}

func TestBusinessMetrics_EventTypes(t *testing.T) {
	bm, _ := newTestMetrics(t)
	types := bm.EventTypes()
	assert.Contains(t, types, fee.EventTypePaymentSucceeded)
	assert.Contains(t, types, certification.EventTypeCertificateIssued)
	assert.NotContains(t, types, fee.EventTypeFeeLedgerCreated)
}
