package fee

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/institute/backend/internal/domain/academic"
	"github.com/institute/backend/internal/domain/fee"
	"github.com/institute/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// FeeService handles fee ledger operations
type FeeService struct {
	ledgerRepo     fee.FeeLedgerRepository
	paymentRepo    fee.PaymentAttemptRepository
	studentRepo    academic.StudentRepository
	courseRepo     academic.CourseRepository
	txScope        TransactionScope
	clock          shared.Clock
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewFeeService creates a new FeeService
func NewFeeService(
	ledgerRepo fee.FeeLedgerRepository,
	paymentRepo fee.PaymentAttemptRepository,
	studentRepo academic.StudentRepository,
	courseRepo academic.CourseRepository,
	txScope TransactionScope,
) *FeeService {
	return &FeeService{
		ledgerRepo:     ledgerRepo,
		paymentRepo:    paymentRepo,
		studentRepo:    studentRepo,
		courseRepo:     courseRepo,
		txScope:        txScope,
		clock:          shared.SystemClock{},
		eventPublisher: shared.NoopEventPublisher{},
		logger:         zap.NewNop(),
	}
}

// SetClock replaces the time source
func (s *FeeService) SetClock(clock shared.Clock) {
	s.clock = clock
}

// SetEventPublisher sets the publisher for domain events
func (s *FeeService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetLogger sets the logger
func (s *FeeService) SetLogger(logger *zap.Logger) {
	s.logger = logger
}

// Create bills a student for a course
func (s *FeeService) Create(ctx context.Context, centerID uuid.UUID, req CreateFeeRequest) (*FeeResponse, error) {
	if _, err := s.studentRepo.FindByIDForCenter(ctx, centerID, req.StudentID); err != nil {
		return nil, err
	}
	course, err := s.courseRepo.FindByIDForCenter(ctx, centerID, req.CourseID)
	if err != nil {
		return nil, err
	}

	total := course.DiscountedFees()
	if req.TotalAmount != nil {
		total = *req.TotalAmount
	}

	now := s.clock.Now()
	ledger, err := fee.NewFeeLedger(centerID, req.StudentID, req.CourseID, fee.LedgerTerms{
		TotalAmount:    total,
		DiscountAmount: req.DiscountAmount,
		DiscountReason: req.DiscountReason,
		LateFee:        req.LateFee,
		DueDate:        req.DueDate,
		PaymentPlan:    req.PaymentPlan,
		Installments:   req.Installments,
	}, now)
	if err != nil {
		return nil, err
	}

	if err := s.ledgerRepo.Save(ctx, ledger); err != nil {
		return nil, fmt.Errorf("failed to save fee ledger: %w", err)
	}
	s.publish(ctx, ledger)

	s.logger.Info("Fee ledger created",
		zap.String("fee_id", ledger.ID.String()),
		zap.String("student_id", ledger.StudentID.String()),
		zap.String("net_amount", ledger.NetAmount().String()))

	resp := ToFeeResponse(ledger, now)
	return &resp, nil
}

// GetByID retrieves a ledger
func (s *FeeService) GetByID(ctx context.Context, centerID, id uuid.UUID) (*FeeResponse, error) {
	ledger, err := s.ledgerRepo.FindByIDForCenter(ctx, centerID, id)
	if err != nil {
		return nil, err
	}
	resp := ToFeeResponse(ledger, s.clock.Now())
	return &resp, nil
}

// List retrieves ledgers matching the filter
func (s *FeeService) List(ctx context.Context, centerID uuid.UUID, filter FeeListFilter) ([]FeeResponse, int64, error) {
	ledgers, total, err := s.ledgerRepo.FindAllForCenter(ctx, centerID, fee.FeeLedgerFilter{
		Filter:    shared.NewFilter(filter.Page, filter.PageSize, filter.OrderBy, filter.OrderDir, filter.Search),
		StudentID: filter.StudentID,
		CourseID:  filter.CourseID,
		Status:    filter.Status,
	})
	if err != nil {
		return nil, 0, err
	}

	now := s.clock.Now()
	responses := make([]FeeResponse, len(ledgers))
	for i := range ledgers {
		responses[i] = ToFeeResponse(&ledgers[i], now)
	}
	return responses, total, nil
}

// Update replaces a ledger's billing terms
func (s *FeeService) Update(ctx context.Context, centerID, id uuid.UUID, req UpdateFeeRequest) (*FeeResponse, error) {
	return s.mutate(ctx, centerID, id, func(ledger *fee.FeeLedger) error {
		return ledger.UpdateTerms(fee.LedgerTerms{
			TotalAmount:    req.TotalAmount,
			DiscountAmount: req.DiscountAmount,
			DiscountReason: req.DiscountReason,
			LateFee:        req.LateFee,
			DueDate:        req.DueDate,
			PaymentPlan:    req.PaymentPlan,
			Installments:   req.Installments,
		}, s.clock.Now())
	})
}

// ApplyDiscount replaces a ledger's discount
func (s *FeeService) ApplyDiscount(ctx context.Context, centerID, id uuid.UUID, req ApplyDiscountRequest) (*FeeResponse, error) {
	return s.mutate(ctx, centerID, id, func(ledger *fee.FeeLedger) error {
		return ledger.ApplyDiscount(req.Amount, req.Reason, s.clock.Now())
	})
}

// ApplyLateFee replaces a ledger's late fee
func (s *FeeService) ApplyLateFee(ctx context.Context, centerID, id uuid.UUID, req ApplyLateFeeRequest) (*FeeResponse, error) {
	return s.mutate(ctx, centerID, id, func(ledger *fee.FeeLedger) error {
		return ledger.ApplyLateFee(req.Amount, s.clock.Now())
	})
}

// Cancel voids a ledger without payments
func (s *FeeService) Cancel(ctx context.Context, centerID, id uuid.UUID) (*FeeResponse, error) {
	return s.mutate(ctx, centerID, id, func(ledger *fee.FeeLedger) error {
		return ledger.Cancel(s.clock.Now())
	})
}

// Delete removes a ledger that has no payment attempts
func (s *FeeService) Delete(ctx context.Context, centerID, id uuid.UUID) error {
	return s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if _, err := repos.LedgerRepo().FindByIDForUpdate(ctx, centerID, id); err != nil {
			return err
		}
		count, err := repos.PaymentRepo().CountByFee(ctx, centerID, id)
		if err != nil {
			return fmt.Errorf("failed to count payments: %w", err)
		}
		if count > 0 {
			return shared.NewInvalidStateError(fmt.Sprintf("Cannot delete a fee with %d payment attempts", count))
		}
		return repos.LedgerRepo().Delete(ctx, centerID, id)
	})
}

// RefreshOverdue re-derives the status of every PENDING or PARTIAL ledger
// that is past due and returns how many changed. Ledgers that fail are
// skipped and reported together in the returned error alongside the count.
func (s *FeeService) RefreshOverdue(ctx context.Context, centerID uuid.UUID) (int, error) {
	now := s.clock.Now()
	candidates, err := s.ledgerRepo.FindOverdueCandidates(ctx, centerID, shared.DateOf(now))
	if err != nil {
		return 0, fmt.Errorf("failed to load overdue candidates: %w", err)
	}

	var errs []error
	updated := 0
	for _, candidate := range candidates {
		var changed *fee.FeeLedger
		err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
			ledger, err := repos.LedgerRepo().FindByIDForUpdate(ctx, centerID, candidate.ID)
			if err != nil {
				return err
			}
			if !ledger.RecalculateStatus(now) {
				return nil
			}
			ledger.Touch(now)
			ledger.IncrementVersion()
			if err := repos.LedgerRepo().SaveWithLock(ctx, ledger); err != nil {
				return err
			}
			changed = ledger
			return nil
		})
		if errors.Is(err, shared.ErrNotFound) {
			continue
		}
		if err != nil {
			s.logger.Warn("Failed to refresh fee status",
				zap.String("fee_id", candidate.ID.String()),
				zap.Error(err))
			errs = append(errs, fmt.Errorf("fee %s: %w", candidate.ID, err))
			continue
		}
		if changed != nil {
			updated++
			s.publish(ctx, changed)
		}
	}

	s.logger.Info("Overdue fees refreshed",
		zap.String("center_id", centerID.String()),
		zap.Int("candidates", len(candidates)),
		zap.Int("updated", updated),
		zap.Int("failed", len(errs)))
	if len(errs) > 0 {
		return updated, fmt.Errorf("failed to refresh %d of %d overdue fees: %w", len(errs), len(candidates), errors.Join(errs...))
	}
	return updated, nil
}

func (s *FeeService) mutate(ctx context.Context, centerID, id uuid.UUID, fn func(*fee.FeeLedger) error) (*FeeResponse, error) {
	var ledger *fee.FeeLedger
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		ledger, err = repos.LedgerRepo().FindByIDForUpdate(ctx, centerID, id)
		if err != nil {
			return err
		}
		if err := fn(ledger); err != nil {
			return err
		}
		return repos.LedgerRepo().SaveWithLock(ctx, ledger)
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, ledger)

	resp := ToFeeResponse(ledger, s.clock.Now())
	return &resp, nil
}

func (s *FeeService) publish(ctx context.Context, aggregates ...shared.AggregateRoot) {
	events := shared.PullDomainEvents(aggregates...)
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish fee events", zap.Error(err))
	}
}
