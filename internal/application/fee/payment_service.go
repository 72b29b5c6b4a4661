package fee

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/institute/backend/internal/domain/academic"
	"github.com/institute/backend/internal/domain/fee"
	"github.com/institute/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ErrGatewayNotConfigured is returned for online payments when no gateway is wired
var ErrGatewayNotConfigured = shared.NewInvalidStateError("Online payment gateway is not configured")

// PaymentService handles payment attempts against fee ledgers
type PaymentService struct {
	ledgerRepo     fee.FeeLedgerRepository
	paymentRepo    fee.PaymentAttemptRepository
	studentRepo    academic.StudentRepository
	courseRepo     academic.CourseRepository
	txScope        TransactionScope
	gateway        PaymentGateway
	seen           shared.IdempotencyStore
	seenTTL        time.Duration
	ids            shared.IDGenerator
	clock          shared.Clock
	formatter      *ReceiptFormatter
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	ledgerRepo fee.FeeLedgerRepository,
	paymentRepo fee.PaymentAttemptRepository,
	studentRepo academic.StudentRepository,
	courseRepo academic.CourseRepository,
	txScope TransactionScope,
) *PaymentService {
	return &PaymentService{
		ledgerRepo:     ledgerRepo,
		paymentRepo:    paymentRepo,
		studentRepo:    studentRepo,
		courseRepo:     courseRepo,
		txScope:        txScope,
		ids:            shared.UUIDGenerator{},
		clock:          shared.SystemClock{},
		formatter:      NewReceiptFormatter("en", "INR"),
		eventPublisher: shared.NoopEventPublisher{},
		logger:         zap.NewNop(),
	}
}

// SetGateway wires the hosted checkout provider for ONLINE_PAYMENT
func (s *PaymentService) SetGateway(gateway PaymentGateway) {
	s.gateway = gateway
}

// SetNotificationStore makes repeated gateway notifications a no-op for ttl
func (s *PaymentService) SetNotificationStore(store shared.IdempotencyStore, ttl time.Duration) {
	if ttl <= 0 {
		ttl = shared.DefaultIdempotencyTTL
	}
	s.seen = store
	s.seenTTL = ttl
}

// SetIDGenerator replaces the receipt number source
func (s *PaymentService) SetIDGenerator(ids shared.IDGenerator) {
	s.ids = ids
}

// SetClock replaces the time source
func (s *PaymentService) SetClock(clock shared.Clock) {
	s.clock = clock
}

// SetReceiptFormatter replaces the receipt money formatter
func (s *PaymentService) SetReceiptFormatter(formatter *ReceiptFormatter) {
	s.formatter = formatter
}

// SetEventPublisher sets the publisher for domain events
func (s *PaymentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetLogger sets the logger
func (s *PaymentService) SetLogger(logger *zap.Logger) {
	s.logger = logger
}

// Create opens a PENDING attempt. The amount may not exceed what is still
// owed on the ledger. Online payments also get a hosted checkout.
func (s *PaymentService) Create(ctx context.Context, centerID uuid.UUID, req CreatePaymentRequest) (*PaymentResponse, error) {
	if req.Method.UsesGateway() {
		if s.gateway == nil {
			return nil, ErrGatewayNotConfigured
		}
		if checker, ok := s.gateway.(CheckoutAmountChecker); ok {
			if err := checker.CheckAmount(req.Amount); err != nil {
				return nil, err
			}
		}
	}

	var (
		payment *fee.PaymentAttempt
		ledger  *fee.FeeLedger
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		ledger, err = repos.LedgerRepo().FindByIDForUpdate(ctx, centerID, req.FeeID)
		if err != nil {
			return err
		}
		if ledger.IsCancelled() {
			return shared.NewInvalidStateError("Cannot pay a cancelled fee")
		}
		if req.Amount.GreaterThan(ledger.RemainingAmount()) {
			return shared.NewInvalidInputError(fmt.Sprintf("Payment amount %s exceeds remaining amount %s",
				req.Amount.StringFixed(2), ledger.RemainingAmount().StringFixed(2)))
		}

		payment, err = fee.NewPaymentAttempt(centerID, req.FeeID, req.Amount, req.Method, req.Notes, s.clock.Now())
		if err != nil {
			return err
		}
		return repos.PaymentRepo().Save(ctx, payment)
	})
	if err != nil {
		return nil, err
	}

	if req.Method.UsesGateway() {
		if err := s.openCheckout(ctx, payment, ledger); err != nil {
			return nil, err
		}
	}

	s.logger.Info("Payment attempt created",
		zap.String("payment_id", payment.ID.String()),
		zap.String("fee_id", payment.FeeID.String()),
		zap.String("method", string(payment.Method)),
		zap.String("amount", payment.Amount.String()))

	resp := ToPaymentResponse(payment)
	return &resp, nil
}

func (s *PaymentService) openCheckout(ctx context.Context, payment *fee.PaymentAttempt, ledger *fee.FeeLedger) error {
	checkout := CheckoutRequest{
		PaymentID: payment.ID,
		Amount:    payment.Amount,
		ItemName:  "Course fee",
	}
	if student, err := s.studentRepo.FindByIDForCenter(ctx, ledger.CenterID, ledger.StudentID); err == nil {
		checkout.CustomerName = student.FullName()
		checkout.CustomerEmail = student.Email
		checkout.CustomerPhone = student.Phone
	}
	if course, err := s.courseRepo.FindByIDForCenter(ctx, ledger.CenterID, ledger.CourseID); err == nil {
		checkout.ItemName = course.Name
	}

	session, err := s.gateway.CreateCheckout(ctx, checkout)
	if err != nil {
		s.logger.Error("Failed to open checkout",
			zap.String("payment_id", payment.ID.String()),
			zap.Error(err))
		s.abandon(ctx, payment)
		return fmt.Errorf("failed to open checkout: %w", err)
	}

	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		locked, err := repos.PaymentRepo().FindByIDForUpdate(ctx, payment.CenterID, payment.ID)
		if err != nil {
			return err
		}
		if err := locked.AttachCheckout(session.Token, session.RedirectURL, s.clock.Now()); err != nil {
			return err
		}
		if err := repos.PaymentRepo().SaveWithLock(ctx, locked); err != nil {
			return err
		}
		*payment = *locked
		return nil
	})
}

// abandon cancels an attempt whose checkout could not be opened so no
// PENDING attempt without a checkout is left behind.
func (s *PaymentService) abandon(ctx context.Context, payment *fee.PaymentAttempt) {
	_, err := s.mutate(ctx, payment.CenterID, payment.ID, func(p *fee.PaymentAttempt) error {
		return p.MarkCancelled(s.clock.Now())
	})
	if err != nil {
		s.logger.Error("Failed to cancel attempt after checkout failure",
			zap.String("payment_id", payment.ID.String()),
			zap.Error(err))
	}
}

// GetByID retrieves a payment attempt
func (s *PaymentService) GetByID(ctx context.Context, centerID, id uuid.UUID) (*PaymentResponse, error) {
	payment, err := s.paymentRepo.FindByIDForCenter(ctx, centerID, id)
	if err != nil {
		return nil, err
	}
	resp := ToPaymentResponse(payment)
	return &resp, nil
}

// List retrieves payment attempts matching the filter
func (s *PaymentService) List(ctx context.Context, centerID uuid.UUID, filter PaymentListFilter) ([]PaymentResponse, int64, error) {
	payments, total, err := s.paymentRepo.FindAllForCenter(ctx, centerID, fee.PaymentFilter{
		Filter:    shared.NewFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, ""),
		FeeID:     filter.FeeID,
		StudentID: filter.StudentID,
		Status:    filter.Status,
		Method:    filter.Method,
	})
	if err != nil {
		return nil, 0, err
	}
	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPaymentResponse(&payments[i])
	}
	return responses, total, nil
}

// ListByFee retrieves the attempts of one ledger
func (s *PaymentService) ListByFee(ctx context.Context, centerID, feeID uuid.UUID, filter PaymentListFilter) ([]PaymentResponse, int64, error) {
	if _, err := s.ledgerRepo.FindByIDForCenter(ctx, centerID, feeID); err != nil {
		return nil, 0, err
	}
	filter.FeeID = &feeID
	return s.List(ctx, centerID, filter)
}

// ListByStudent retrieves the attempts against any of a student's ledgers
func (s *PaymentService) ListByStudent(ctx context.Context, centerID, studentID uuid.UUID, filter PaymentListFilter) ([]PaymentResponse, int64, error) {
	if _, err := s.studentRepo.FindByIDForCenter(ctx, centerID, studentID); err != nil {
		return nil, 0, err
	}
	filter.StudentID = &studentID
	return s.List(ctx, centerID, filter)
}

// Process applies an outcome to an attempt. Success settles the attempt and
// records the amount on the ledger in the same transaction.
func (s *PaymentService) Process(ctx context.Context, centerID, id uuid.UUID, req ProcessPaymentRequest) (*PaymentResponse, error) {
	payment, ledger, err := s.process(ctx, centerID, id, req)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, payment, ledger)

	resp := ToPaymentResponse(payment)
	return &resp, nil
}

func (s *PaymentService) process(ctx context.Context, centerID, id uuid.UUID, req ProcessPaymentRequest) (*fee.PaymentAttempt, *fee.FeeLedger, error) {
	var (
		payment *fee.PaymentAttempt
		ledger  *fee.FeeLedger
	)
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		payment, err = repos.PaymentRepo().FindByIDForUpdate(ctx, centerID, id)
		if err != nil {
			return err
		}
		now := s.clock.Now()

		if !req.Success {
			if err := payment.MarkFailed(req.GatewayResponse, now); err != nil {
				return err
			}
			return repos.PaymentRepo().SaveWithLock(ctx, payment)
		}

		ledger, err = repos.LedgerRepo().FindByIDForUpdate(ctx, centerID, payment.FeeID)
		if err != nil {
			return err
		}
		if err := payment.MarkSuccessful(req.TransactionID, req.GatewayReference, s.ids.ReceiptNumber(now), now); err != nil {
			return err
		}
		if err := ledger.RecordPayment(payment.Amount, now); err != nil {
			return err
		}
		if err := repos.PaymentRepo().SaveWithLock(ctx, payment); err != nil {
			return err
		}
		return repos.LedgerRepo().SaveWithLock(ctx, ledger)
	})
	if err != nil {
		return nil, nil, err
	}

	fields := []zap.Field{
		zap.String("payment_id", payment.ID.String()),
		zap.String("status", string(payment.Status)),
		zap.Int("retry_count", payment.RetryCount),
	}
	if ledger != nil {
		fields = append(fields, zap.String("fee_status", string(ledger.Status)))
	}
	s.logger.Info("Payment processed", fields...)
	return payment, ledger, nil
}

// Retry returns a failed attempt to PENDING while retries remain
func (s *PaymentService) Retry(ctx context.Context, centerID, id uuid.UUID) (*PaymentResponse, error) {
	return s.mutate(ctx, centerID, id, func(p *fee.PaymentAttempt) error {
		return p.Retry(s.clock.Now())
	})
}

// Cancel cancels a pending or failed attempt
func (s *PaymentService) Cancel(ctx context.Context, centerID, id uuid.UUID) (*PaymentResponse, error) {
	return s.mutate(ctx, centerID, id, func(p *fee.PaymentAttempt) error {
		return p.MarkCancelled(s.clock.Now())
	})
}

// Receipt builds the receipt of a successful payment
func (s *PaymentService) Receipt(ctx context.Context, centerID, paymentID uuid.UUID) (*ReceiptResponse, error) {
	payment, err := s.paymentRepo.FindByIDForCenter(ctx, centerID, paymentID)
	if err != nil {
		return nil, err
	}
	if !payment.IsSuccessful() || payment.PaymentDate == nil {
		return nil, shared.NewInvalidStateError(fmt.Sprintf("No receipt for payment in %s status", payment.Status))
	}
	ledger, err := s.ledgerRepo.FindByIDForCenter(ctx, centerID, payment.FeeID)
	if err != nil {
		return nil, err
	}

	receipt := &ReceiptResponse{
		ReceiptNumber:      payment.ReceiptNumber,
		PaymentID:          payment.ID,
		FeeID:              ledger.ID,
		StudentID:          ledger.StudentID,
		Amount:             payment.Amount,
		AmountFormatted:    s.formatter.Format(payment.Amount),
		Method:             string(payment.Method),
		PaymentDate:        *payment.PaymentDate,
		TotalPaid:          ledger.PaidAmount,
		Remaining:          ledger.RemainingAmount(),
		RemainingFormatted: s.formatter.Format(ledger.RemainingAmount()),
		FeeStatus:          string(ledger.Status),
	}
	if payment.TransactionID != nil {
		receipt.TransactionID = *payment.TransactionID
	}
	if student, err := s.studentRepo.FindByIDForCenter(ctx, centerID, ledger.StudentID); err == nil {
		receipt.StudentName = student.FullName()
	}
	if course, err := s.courseRepo.FindByIDForCenter(ctx, centerID, ledger.CourseID); err == nil {
		receipt.CourseCode = course.Code
		receipt.CourseName = course.Name
	}
	return receipt, nil
}

// HandleGatewayNotification resolves an online attempt from a gateway
// notification. Notifications for already settled attempts are ignored.
func (s *PaymentService) HandleGatewayNotification(ctx context.Context, body []byte) error {
	if s.gateway == nil {
		return ErrGatewayNotConfigured
	}
	notification, err := s.gateway.ParseNotification(ctx, body)
	if err != nil {
		return err
	}

	payment, err := s.paymentRepo.FindByID(ctx, notification.PaymentID)
	if err != nil {
		return err
	}

	logger := s.logger.With(
		zap.String("payment_id", payment.ID.String()),
		zap.String("transaction_id", notification.TransactionID),
		zap.String("outcome", string(notification.Outcome)))

	if notification.Outcome == NotificationOutcomePending {
		logger.Info("Gateway notification pending, nothing to do")
		return nil
	}
	key := notificationKey(notification)
	if s.alreadySeen(ctx, key, logger) {
		logger.Info("Duplicate gateway notification ignored")
		return nil
	}
	if payment.Status.IsTerminal() || (payment.Status == fee.PaymentStatusFailed && notification.Outcome == NotificationOutcomeFailed) {
		logger.Info("Gateway notification for settled payment ignored",
			zap.String("status", string(payment.Status)))
		s.markSeen(ctx, key, logger)
		return nil
	}

	if payment.Status == fee.PaymentStatusFailed && notification.Outcome == NotificationOutcomeSuccess {
		logger.Info("Late success for a failed attempt")
	}

	req := ProcessPaymentRequest{
		Success:          notification.Outcome == NotificationOutcomeSuccess,
		TransactionID:    notification.TransactionID,
		GatewayReference: notification.PaymentType,
		GatewayResponse:  notification.StatusMessage,
	}
	processed, ledger, err := s.process(ctx, payment.CenterID, payment.ID, req)
	if err != nil {
		var domainErr *shared.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == shared.CodeInvalidState {
			logger.Warn("Gateway notification rejected by payment state", zap.Error(err))
			s.markSeen(ctx, key, logger)
			return nil
		}
		return err
	}
	s.markSeen(ctx, key, logger)

	if err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		locked, err := repos.PaymentRepo().FindByIDForUpdate(ctx, processed.CenterID, processed.ID)
		if err != nil {
			return err
		}
		locked.RecordGatewayPayload(notification.RawPayload, notification.GatewayFee)
		locked.IncrementVersion()
		return repos.PaymentRepo().SaveWithLock(ctx, locked)
	}); err != nil {
		logger.Warn("Failed to store gateway payload", zap.Error(err))
	}

	s.publish(ctx, processed, ledger)
	return nil
}

func notificationKey(n *GatewayNotification) string {
	return fmt.Sprintf("gateway:%s:%s:%s", n.PaymentID, n.TransactionID, n.Outcome)
}

// alreadySeen treats store errors as unseen; payment state still guards
// against double application
func (s *PaymentService) alreadySeen(ctx context.Context, key string, logger *zap.Logger) bool {
	if s.seen == nil {
		return false
	}
	done, err := s.seen.IsProcessed(ctx, key)
	if err != nil {
		logger.Warn("Failed to check gateway notification key", zap.Error(err))
		return false
	}
	return done
}

func (s *PaymentService) markSeen(ctx context.Context, key string, logger *zap.Logger) {
	if s.seen == nil {
		return
	}
	if _, err := s.seen.MarkProcessed(ctx, key, s.seenTTL); err != nil {
		logger.Warn("Failed to record gateway notification key", zap.Error(err))
	}
}

func (s *PaymentService) mutate(ctx context.Context, centerID, id uuid.UUID, fn func(*fee.PaymentAttempt) error) (*PaymentResponse, error) {
	var payment *fee.PaymentAttempt
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		payment, err = repos.PaymentRepo().FindByIDForUpdate(ctx, centerID, id)
		if err != nil {
			return err
		}
		version := payment.GetVersion()
		if err := fn(payment); err != nil {
			return err
		}
		if payment.GetVersion() == version {
			return nil
		}
		return repos.PaymentRepo().SaveWithLock(ctx, payment)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, payment)

	resp := ToPaymentResponse(payment)
	return &resp, nil
}

func (s *PaymentService) publish(ctx context.Context, payment *fee.PaymentAttempt, ledgers ...*fee.FeeLedger) {
	aggregates := []shared.AggregateRoot{payment}
	for _, l := range ledgers {
		if l != nil {
			aggregates = append(aggregates, l)
		}
	}
	events := shared.PullDomainEvents(aggregates...)
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish payment events", zap.Error(err))
	}
}
