package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/institute/backend/internal/domain/certification"
	"github.com/institute/backend/internal/domain/exam"
	"github.com/institute/backend/internal/domain/fee"
	"github.com/institute/backend/internal/domain/shared"
)

// ErrMeterNil is returned when BusinessMetrics is built without a meter
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// BusinessMetrics counts fee, exam and certificate activity.
// It subscribes to the event bus; every counter is labelled with the center.
type BusinessMetrics struct {
	logger *zap.Logger

	paymentTotal        *Counter
	paymentAmount       *Histogram
	feeStatusChanges    *Counter
	resultsRecorded     *Counter
	resultPercentage    *Histogram
	resultsPublished    *Counter
	certificatesIssued  *Counter
	certificateChanges  *Counter
	certificateVerifies *Counter
}

// NewBusinessMetrics creates the institute business metrics on meter
func NewBusinessMetrics(meter metric.Meter, logger *zap.Logger) (*BusinessMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	bm := &BusinessMetrics{logger: logger}

	counters := []struct {
		dst               **Counter
		name, desc, units string
	}{
		{&bm.paymentTotal, "institute_payment_total", "Payment attempts resolved, by method and outcome", "{payments}"},
		{&bm.feeStatusChanges, "institute_fee_status_changes_total", "Fee ledger status transitions", "{changes}"},
		{&bm.resultsRecorded, "institute_exam_results_recorded_total", "Exam results recorded or re-evaluated", "{results}"},
		{&bm.resultsPublished, "institute_exam_results_published_total", "Exam results published to students", "{results}"},
		{&bm.certificatesIssued, "institute_certificates_issued_total", "Certificates issued", "{certificates}"},
		{&bm.certificateChanges, "institute_certificate_status_changes_total", "Certificate status changes including revocations", "{changes}"},
		{&bm.certificateVerifies, "institute_certificate_verifications_total", "Public verification lookups", "{lookups}"},
	}
	for _, c := range counters {
		counter, err := NewCounter(meter, c.name, c.desc, c.units)
		if err != nil {
			return nil, err
		}
		*c.dst = counter
	}

	var err error
	bm.paymentAmount, err = NewHistogram(meter, HistogramOpts{
		Name:        "institute_payment_amount",
		Description: "Amounts of successful payments",
		Unit:        "{currency}",
	})
	if err != nil {
		return nil, err
	}
	bm.resultPercentage, err = NewHistogram(meter, HistogramOpts{
		Name:        "institute_exam_result_percentage",
		Description: "Distribution of recorded exam percentages",
		Unit:        "%",
		Boundaries:  PercentageBuckets,
	})
	if err != nil {
		return nil, err
	}
	return bm, nil
}

// EventTypes returns the events that feed the metrics
func (bm *BusinessMetrics) EventTypes() []string {
	return []string{
		fee.EventTypeFeeStatusChanged,
		fee.EventTypePaymentSucceeded,
		fee.EventTypePaymentFailed,
		fee.EventTypePaymentCancelled,
		exam.EventTypeResultRecorded,
		exam.EventTypeResultPublished,
		certification.EventTypeCertificateIssued,
		certification.EventTypeCertificateRevoked,
		certification.EventTypeCertificateStatusChanged,
	}
}

// Handle records the metric for a single event
func (bm *BusinessMetrics) Handle(ctx context.Context, event shared.DomainEvent) error {
	center := AttrCenterID.String(event.CenterID().String())

	switch e := event.(type) {
	case *fee.FeeStatusChangedEvent:
		bm.feeStatusChanges.Inc(ctx, center, AttrFeeStatus.String(string(e.ToStatus)))
	case *fee.PaymentSucceededEvent:
		bm.paymentTotal.Inc(ctx, center, AttrPaymentMethod.String(string(e.Method)), AttrPaymentOutcome.String("success"))
		amount, _ := e.Amount.Float64()
		bm.paymentAmount.Record(ctx, amount, center, AttrPaymentMethod.String(string(e.Method)))
	case *fee.PaymentFailedEvent:
		bm.paymentTotal.Inc(ctx, center, AttrPaymentMethod.String(string(e.Method)), AttrPaymentOutcome.String("failed"))
	case *fee.PaymentCancelledEvent:
		bm.paymentTotal.Inc(ctx, center, AttrPaymentMethod.String(string(e.Method)), AttrPaymentOutcome.String("cancelled"))
	case *exam.ResultRecordedEvent:
		attrs := []attribute.KeyValue{center, AttrResultStatus.String(string(e.ResultStatus)), AttrGrade.String(string(e.Grade))}
		bm.resultsRecorded.Inc(ctx, attrs...)
		pct, _ := e.Percentage.Float64()
		bm.resultPercentage.Record(ctx, pct, center)
	case *exam.ResultPublishedEvent:
		bm.resultsPublished.Inc(ctx, center, AttrResultStatus.String(string(e.ResultStatus)))
	case *certification.CertificateIssuedEvent:
		bm.certificatesIssued.Inc(ctx, center)
	case *certification.CertificateRevokedEvent:
		bm.certificateChanges.Inc(ctx, center, AttrCertificateStatus.String(string(certification.CertificateStatusRevoked)))
	case *certification.CertificateStatusChangedEvent:
		bm.certificateChanges.Inc(ctx, center, AttrCertificateStatus.String(string(e.ToStatus)))
	default:
		bm.logger.Debug("No business metric for event", zap.String("event_type", event.EventType()))
	}
	return nil
}

// RecordVerification counts a public verification lookup
func (bm *BusinessMetrics) RecordVerification(ctx context.Context, found bool) {
	bm.certificateVerifies.Inc(ctx, attribute.Bool("found", found))
}

var _ shared.EventHandler = (*BusinessMetrics)(nil)
