package fee

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/institute/backend/internal/domain/fee"
	"github.com/institute/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPaymentGateway struct{ mock.Mock }

func (m *MockPaymentGateway) CreateCheckout(ctx context.Context, req CheckoutRequest) (*CheckoutSession, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*CheckoutSession), args.Error(1)
}

func (m *MockPaymentGateway) ParseNotification(ctx context.Context, body []byte) (*GatewayNotification, error) {
	args := m.Called(ctx, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*GatewayNotification), args.Error(1)
}

// wholeAmountGateway only accepts whole currency units
type wholeAmountGateway struct{ *MockPaymentGateway }

func (wholeAmountGateway) CheckAmount(amount decimal.Decimal) error {
	if !amount.Equal(amount.Truncate(0)) {
		return shared.NewInvalidInputError("amount must be whole currency units")
	}
	return nil
}

type memoryStore struct{ keys map[string]bool }

func (m *memoryStore) MarkProcessed(_ context.Context, key string, _ time.Duration) (bool, error) {
	if m.keys[key] {
		return false, nil
	}
	m.keys[key] = true
	return true, nil
}

func (m *memoryStore) IsProcessed(_ context.Context, key string) (bool, error) {
	return m.keys[key], nil
}

func (m *memoryStore) Close() error { return nil }

type fixedIDs struct{}

func (fixedIDs) CertificateID(time.Time) string { return "CERT-1-00000000" }
func (fixedIDs) VerificationCode() string       { return "000000000000" }
func (fixedIDs) ReceiptNumber(time.Time) string { return "RCPT-20260315-0000ABCD" }

func (f *feeFixture) paymentService() *PaymentService {
	svc := NewPaymentService(f.ledgers, f.payments, f.students, f.courses, NewNoOpTransactionScope(f.ledgers, f.payments))
	svc.SetClock(f.clock)
	svc.SetIDGenerator(fixedIDs{})
	svc.SetEventPublisher(f.publisher)
	return svc
}

func (f *feeFixture) payment(t *testing.T, ledger *fee.FeeLedger, amount string, method fee.PaymentMethod) *fee.PaymentAttempt {
	t.Helper()
	p, err := fee.NewPaymentAttempt(f.centerID, ledger.ID, decimal.RequireFromString(amount), method, "", testNow)
	require.NoError(t, err)
	return p
}

func TestPaymentService_Create(t *testing.T) {
	t.Run("creates pending attempt", func(t *testing.T) {
		f := newFeeFixture()
		ledger := f.ledger(t, "500", testNow.AddDate(0, 1, 0))
		f.ledgers.On("FindByIDForUpdate", mock.Anything, f.centerID, ledger.ID).Return(ledger, nil)
		f.payments.On("Save", mock.Anything, mock.AnythingOfType("*fee.PaymentAttempt")).Return(nil)

		resp, err := f.paymentService().Create(context.Background(), f.centerID, CreatePaymentRequest{
			FeeID:  ledger.ID,
			Amount: decimal.NewFromInt(200),
			Method: fee.PaymentMethodCash,
		})

		require.NoError(t, err)
		assert.Equal(t, string(fee.PaymentStatusPending), resp.Status)
		assert.Equal(t, 0, resp.RetryCount)
		f.payments.AssertExpectations(t)
	})

	t.Run("amount above remaining is rejected", func(t *testing.T) {
		f := newFeeFixture()
		ledger := f.ledger(t, "500", testNow.AddDate(0, 1, 0))
		f.ledgers.On("FindByIDForUpdate", mock.Anything, f.centerID, ledger.ID).Return(ledger, nil)

		_, err := f.paymentService().Create(context.Background(), f.centerID, CreatePaymentRequest{
			FeeID:  ledger.ID,
			Amount: decimal.RequireFromString("500.01"),
			Method: fee.PaymentMethodUPI,
		})

		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		assert.Contains(t, err.Error(), "exceeds remaining amount 500.00")
		f.payments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("cancelled fee is rejected", func(t *testing.T) {
		f := newFeeFixture()
		ledger := f.ledger(t, "500", testNow.AddDate(0, 1, 0))
		require.NoError(t, ledger.Cancel(testNow))
		f.ledgers.On("FindByIDForUpdate", mock.Anything, f.centerID, ledger.ID).Return(ledger, nil)

		_, err := f.paymentService().Create(context.Background(), f.centerID, CreatePaymentRequest{
			FeeID:  ledger.ID,
			Amount: decimal.NewFromInt(10),
			Method: fee.PaymentMethodCash,
		})

		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})

	t.Run("online payment without gateway", func(t *testing.T) {
		f := newFeeFixture()

		_, err := f.paymentService().Create(context.Background(), f.centerID, CreatePaymentRequest{
			FeeID:  uuid.New(),
			Amount: decimal.NewFromInt(10),
			Method: fee.PaymentMethodOnlinePayment,
		})

		assert.ErrorIs(t, err, ErrGatewayNotConfigured)
	})

	t.Run("online payment opens checkout", func(t *testing.T) {
		f := newFeeFixture()
		student := f.student(t)
		course := f.course(t)
		ledger, err := fee.NewFeeLedger(f.centerID, student.ID, course.ID, fee.LedgerTerms{
			TotalAmount: decimal.NewFromInt(1080),
			DueDate:     testNow.AddDate(0, 1, 0),
		}, testNow)
		require.NoError(t, err)

		var saved *fee.PaymentAttempt
		f.ledgers.On("FindByIDForUpdate", mock.Anything, f.centerID, ledger.ID).Return(ledger, nil)
		f.payments.On("Save", mock.Anything, mock.AnythingOfType("*fee.PaymentAttempt")).
			Run(func(args mock.Arguments) { saved = args.Get(1).(*fee.PaymentAttempt) }).
			Return(nil)
		lookup := f.payments.On("FindByIDForUpdate", mock.Anything, f.centerID, mock.AnythingOfType("uuid.UUID")).Return(nil, nil)
		lookup.Run(func(mock.Arguments) { lookup.ReturnArguments = mock.Arguments{saved, nil} })
		f.payments.On("SaveWithLock", mock.Anything, mock.AnythingOfType("*fee.PaymentAttempt")).Return(nil)
		f.students.On("FindByIDForCenter", mock.Anything, f.centerID, student.ID).Return(student, nil)
		f.courses.On("FindByIDForCenter", mock.Anything, f.centerID, course.ID).Return(course, nil)

		gateway := new(MockPaymentGateway)
		gateway.On("CreateCheckout", mock.Anything, mock.MatchedBy(func(req CheckoutRequest) bool {
			return req.CustomerName == "Asha Verma" && req.ItemName == "Go Fundamentals" && req.Amount.Equal(decimal.NewFromInt(400))
		})).Return(&CheckoutSession{Token: "snap-token", RedirectURL: "https://pay.example.com/snap"}, nil)

		svc := f.paymentService()
		svc.SetGateway(gateway)
		resp, err := svc.Create(context.Background(), f.centerID, CreatePaymentRequest{
			FeeID:  ledger.ID,
			Amount: decimal.NewFromInt(400),
			Method: fee.PaymentMethodOnlinePayment,
		})

		require.NoError(t, err)
		assert.Equal(t, "https://pay.example.com/snap", resp.CheckoutURL)
		gateway.AssertExpectations(t)
	})

	t.Run("checkout failure cancels the attempt", func(t *testing.T) {
		f := newFeeFixture()
		student := f.student(t)
		course := f.course(t)
		ledger, err := fee.NewFeeLedger(f.centerID, student.ID, course.ID, fee.LedgerTerms{
			TotalAmount: decimal.NewFromInt(1080),
			DueDate:     testNow.AddDate(0, 1, 0),
		}, testNow)
		require.NoError(t, err)

		var saved *fee.PaymentAttempt
		f.ledgers.On("FindByIDForUpdate", mock.Anything, f.centerID, ledger.ID).Return(ledger, nil)
		f.payments.On("Save", mock.Anything, mock.AnythingOfType("*fee.PaymentAttempt")).
			Run(func(args mock.Arguments) { saved = args.Get(1).(*fee.PaymentAttempt) }).
			Return(nil).Once()
		lookup := f.payments.On("FindByIDForUpdate", mock.Anything, f.centerID, mock.AnythingOfType("uuid.UUID")).Return(nil, nil)
		lookup.Run(func(mock.Arguments) { lookup.ReturnArguments = mock.Arguments{saved, nil} })
		f.payments.On("SaveWithLock", mock.Anything, mock.AnythingOfType("*fee.PaymentAttempt")).Return(nil).Once()
		f.students.On("FindByIDForCenter", mock.Anything, f.centerID, student.ID).Return(student, nil)
		f.courses.On("FindByIDForCenter", mock.Anything, f.centerID, course.ID).Return(course, nil)

		gateway := new(MockPaymentGateway)
		gateway.On("CreateCheckout", mock.Anything, mock.AnythingOfType("fee.CheckoutRequest")).
			Return(nil, errors.New("gateway down"))

		svc := f.paymentService()
		svc.SetGateway(gateway)
		resp, err := svc.Create(context.Background(), f.centerID, CreatePaymentRequest{
			FeeID:  ledger.ID,
			Amount: decimal.NewFromInt(400),
			Method: fee.PaymentMethodOnlinePayment,
		})

		require.Error(t, err)
		assert.Nil(t, resp)
		assert.Contains(t, err.Error(), "gateway down")
		require.NotNil(t, saved)
		assert.Equal(t, fee.PaymentStatusCancelled, saved.Status)
		assert.Equal(t, []string{fee.EventTypePaymentCancelled}, f.publisher.EventTypes())
		f.payments.AssertExpectations(t)
		gateway.AssertExpectations(t)
	})

	t.Run("fractional online amount is rejected before saving", func(t *testing.T) {
		f := newFeeFixture()
		gateway := new(MockPaymentGateway)

		svc := f.paymentService()
		svc.SetGateway(wholeAmountGateway{gateway})
		_, err := svc.Create(context.Background(), f.centerID, CreatePaymentRequest{
			FeeID:  uuid.New(),
			Amount: decimal.RequireFromString("400.50"),
			Method: fee.PaymentMethodOnlinePayment,
		})

		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		f.ledgers.AssertNotCalled(t, "FindByIDForUpdate", mock.Anything, mock.Anything, mock.Anything)
		f.payments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		gateway.AssertNotCalled(t, "CreateCheckout", mock.Anything, mock.Anything)
	})
}

func TestPaymentService_Process(t *testing.T) {
	t.Run("success records on ledger", func(t *testing.T) {
		f := newFeeFixture()
		ledger := f.ledger(t, "500", testNow.AddDate(0, 1, 0))
		payment := f.payment(t, ledger, "200", fee.PaymentMethodCash)
		f.payments.On("FindByIDForUpdate", mock.Anything, f.centerID, payment.ID).Return(payment, nil)
		f.ledgers.On("FindByIDForUpdate", mock.Anything, f.centerID, ledger.ID).Return(ledger, nil)
		f.payments.On("SaveWithLock", mock.Anything, payment).Return(nil)
		f.ledgers.On("SaveWithLock", mock.Anything, ledger).Return(nil)

		resp, err := f.paymentService().Process(context.Background(), f.centerID, payment.ID, ProcessPaymentRequest{
			Success:       true,
			TransactionID: "TXN-1",
		})

		require.NoError(t, err)
		assert.Equal(t, string(fee.PaymentStatusSuccess), resp.Status)
		assert.Equal(t, "RCPT-20260315-0000ABCD", resp.ReceiptNumber)
		assert.Equal(t, "200", ledger.PaidAmount.String())
		assert.Equal(t, fee.FeeStatusPartial, ledger.Status)
		assert.Equal(t, []string{fee.EventTypePaymentSucceeded, fee.EventTypeFeeStatusChanged}, f.publisher.EventTypes())
	})

	t.Run("full payment settles ledger", func(t *testing.T) {
		f := newFeeFixture()
		ledger := f.ledger(t, "500", testNow.AddDate(0, 1, 0))
		payment := f.payment(t, ledger, "500", fee.PaymentMethodBankTransfer)
		f.payments.On("FindByIDForUpdate", mock.Anything, f.centerID, payment.ID).Return(payment, nil)
		f.ledgers.On("FindByIDForUpdate", mock.Anything, f.centerID, ledger.ID).Return(ledger, nil)
		f.payments.On("SaveWithLock", mock.Anything, payment).Return(nil)
		f.ledgers.On("SaveWithLock", mock.Anything, ledger).Return(nil)

		_, err := f.paymentService().Process(context.Background(), f.centerID, payment.ID, ProcessPaymentRequest{Success: true})

		require.NoError(t, err)
		assert.Equal(t, fee.FeeStatusPaid, ledger.Status)
		assert.True(t, ledger.RemainingAmount().IsZero())
	})

	t.Run("failure leaves ledger untouched", func(t *testing.T) {
		f := newFeeFixture()
		ledger := f.ledger(t, "500", testNow.AddDate(0, 1, 0))
		payment := f.payment(t, ledger, "200", fee.PaymentMethodCreditCard)
		f.payments.On("FindByIDForUpdate", mock.Anything, f.centerID, payment.ID).Return(payment, nil)
		f.payments.On("SaveWithLock", mock.Anything, payment).Return(nil)

		resp, err := f.paymentService().Process(context.Background(), f.centerID, payment.ID, ProcessPaymentRequest{
			GatewayResponse: "card declined",
		})

		require.NoError(t, err)
		assert.Equal(t, string(fee.PaymentStatusFailed), resp.Status)
		assert.Equal(t, 1, resp.RetryCount)
		assert.True(t, ledger.PaidAmount.IsZero())
		f.ledgers.AssertNotCalled(t, "FindByIDForUpdate", mock.Anything, mock.Anything, mock.Anything)
		assert.Equal(t, []string{fee.EventTypePaymentFailed}, f.publisher.EventTypes())
	})

	t.Run("settled attempt cannot be processed again", func(t *testing.T) {
		f := newFeeFixture()
		ledger := f.ledger(t, "500", testNow.AddDate(0, 1, 0))
		payment := f.payment(t, ledger, "200", fee.PaymentMethodCash)
		require.NoError(t, payment.MarkSuccessful("TXN-1", "", "RCPT-1", testNow))
		f.payments.On("FindByIDForUpdate", mock.Anything, f.centerID, payment.ID).Return(payment, nil)
		f.ledgers.On("FindByIDForUpdate", mock.Anything, f.centerID, ledger.ID).Return(ledger, nil)

		_, err := f.paymentService().Process(context.Background(), f.centerID, payment.ID, ProcessPaymentRequest{Success: true})

		assert.ErrorIs(t, err, shared.ErrInvalidState)
		assert.True(t, ledger.PaidAmount.IsZero())
	})
}

func TestPaymentService_RetryLimit(t *testing.T) {
	f := newFeeFixture()
	ledger := f.ledger(t, "500", testNow.AddDate(0, 1, 0))
	payment := f.payment(t, ledger, "200", fee.PaymentMethodUPI)
	f.payments.On("FindByIDForUpdate", mock.Anything, f.centerID, payment.ID).Return(payment, nil)
	f.payments.On("SaveWithLock", mock.Anything, payment).Return(nil)
	svc := f.paymentService()
	ctx := context.Background()

	for i := 0; i < fee.MaxPaymentRetries; i++ {
		_, err := svc.Process(ctx, f.centerID, payment.ID, ProcessPaymentRequest{GatewayResponse: "timeout"})
		require.NoError(t, err)
		if i < fee.MaxPaymentRetries-1 {
			_, err = svc.Retry(ctx, f.centerID, payment.ID)
			require.NoError(t, err)
		}
	}

	_, err := svc.Retry(ctx, f.centerID, payment.ID)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
	assert.Equal(t, fee.MaxPaymentRetries, payment.RetryCount)
}

func TestPaymentService_Cancel_Twice(t *testing.T) {
	f := newFeeFixture()
	ledger := f.ledger(t, "500", testNow.AddDate(0, 1, 0))
	payment := f.payment(t, ledger, "200", fee.PaymentMethodCheque)
	f.payments.On("FindByIDForUpdate", mock.Anything, f.centerID, payment.ID).Return(payment, nil)
	f.payments.On("SaveWithLock", mock.Anything, payment).Return(nil).Once()
	svc := f.paymentService()

	_, err := svc.Cancel(context.Background(), f.centerID, payment.ID)
	require.NoError(t, err)
	resp, err := svc.Cancel(context.Background(), f.centerID, payment.ID)
	require.NoError(t, err)

	assert.Equal(t, string(fee.PaymentStatusCancelled), resp.Status)
	f.payments.AssertNumberOfCalls(t, "SaveWithLock", 1)
}

func TestPaymentService_Receipt(t *testing.T) {
	t.Run("successful payment", func(t *testing.T) {
		f := newFeeFixture()
		student := f.student(t)
		course := f.course(t)
		ledger, err := fee.NewFeeLedger(f.centerID, student.ID, course.ID, fee.LedgerTerms{
			TotalAmount: decimal.NewFromInt(1500),
			DueDate:     testNow.AddDate(0, 1, 0),
		}, testNow)
		require.NoError(t, err)
		payment := f.payment(t, ledger, "1234.5", fee.PaymentMethodCash)
		require.NoError(t, payment.MarkSuccessful("TXN-9", "", "RCPT-20260315-0000ABCD", testNow))
		require.NoError(t, ledger.RecordPayment(payment.Amount, testNow))

		f.payments.On("FindByIDForCenter", mock.Anything, f.centerID, payment.ID).Return(payment, nil)
		f.ledgers.On("FindByIDForCenter", mock.Anything, f.centerID, ledger.ID).Return(ledger, nil)
		f.students.On("FindByIDForCenter", mock.Anything, f.centerID, student.ID).Return(student, nil)
		f.courses.On("FindByIDForCenter", mock.Anything, f.centerID, course.ID).Return(course, nil)

		receipt, err := f.paymentService().Receipt(context.Background(), f.centerID, payment.ID)

		require.NoError(t, err)
		assert.Equal(t, "RCPT-20260315-0000ABCD", receipt.ReceiptNumber)
		assert.Equal(t, "Asha Verma", receipt.StudentName)
		assert.Equal(t, "GO-101", receipt.CourseCode)
		assert.Equal(t, "TXN-9", receipt.TransactionID)
		assert.Equal(t, "INR 1,234.50", receipt.AmountFormatted)
		assert.Equal(t, "INR 265.50", receipt.RemainingFormatted)
		assert.Equal(t, string(fee.FeeStatusPartial), receipt.FeeStatus)
	})

	t.Run("pending payment has no receipt", func(t *testing.T) {
		f := newFeeFixture()
		ledger := f.ledger(t, "500", testNow.AddDate(0, 1, 0))
		payment := f.payment(t, ledger, "200", fee.PaymentMethodCash)
		f.payments.On("FindByIDForCenter", mock.Anything, f.centerID, payment.ID).Return(payment, nil)

		_, err := f.paymentService().Receipt(context.Background(), f.centerID, payment.ID)

		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})
}

func TestPaymentService_HandleGatewayNotification(t *testing.T) {
	body := []byte(`{"order_id":"x"}`)

	setup := func(t *testing.T) (*feeFixture, *fee.FeeLedger, *fee.PaymentAttempt, *MockPaymentGateway, *PaymentService) {
		f := newFeeFixture()
		ledger := f.ledger(t, "500", testNow.AddDate(0, 1, 0))
		payment := f.payment(t, ledger, "500", fee.PaymentMethodOnlinePayment)
		gateway := new(MockPaymentGateway)
		svc := f.paymentService()
		svc.SetGateway(gateway)
		return f, ledger, payment, gateway, svc
	}

	t.Run("settlement pays ledger and stores payload", func(t *testing.T) {
		f, ledger, payment, gateway, svc := setup(t)
		gateway.On("ParseNotification", mock.Anything, body).Return(&GatewayNotification{
			PaymentID:     payment.ID,
			TransactionID: "mid-123",
			Outcome:       NotificationOutcomeSuccess,
			GatewayFee:    decimal.RequireFromString("4.50"),
			RawPayload:    map[string]any{"transaction_status": "settlement"},
			PaymentType:   "bank_transfer",
		}, nil)
		f.payments.On("FindByID", mock.Anything, payment.ID).Return(payment, nil)
		f.payments.On("FindByIDForUpdate", mock.Anything, f.centerID, payment.ID).Return(payment, nil)
		f.ledgers.On("FindByIDForUpdate", mock.Anything, f.centerID, ledger.ID).Return(ledger, nil)
		f.payments.On("SaveWithLock", mock.Anything, payment).Return(nil)
		f.ledgers.On("SaveWithLock", mock.Anything, ledger).Return(nil)

		require.NoError(t, svc.HandleGatewayNotification(context.Background(), body))

		assert.Equal(t, fee.PaymentStatusSuccess, payment.Status)
		assert.Equal(t, "bank_transfer", payment.GatewayReference)
		assert.Equal(t, "4.5", payment.GatewayFee.String())
		assert.Equal(t, "settlement", payment.GatewayPayload["transaction_status"])
		assert.Equal(t, fee.FeeStatusPaid, ledger.Status)
		f.payments.AssertNumberOfCalls(t, "SaveWithLock", 2)
	})

	t.Run("pending notification is ignored", func(t *testing.T) {
		f, _, payment, gateway, svc := setup(t)
		gateway.On("ParseNotification", mock.Anything, body).Return(&GatewayNotification{
			PaymentID: payment.ID,
			Outcome:   NotificationOutcomePending,
		}, nil)
		f.payments.On("FindByID", mock.Anything, payment.ID).Return(payment, nil)

		require.NoError(t, svc.HandleGatewayNotification(context.Background(), body))
		assert.Equal(t, fee.PaymentStatusPending, payment.Status)
		f.payments.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})

	t.Run("duplicate settlement is ignored", func(t *testing.T) {
		f, _, payment, gateway, svc := setup(t)
		require.NoError(t, payment.MarkSuccessful("mid-123", "", "RCPT-1", testNow))
		gateway.On("ParseNotification", mock.Anything, body).Return(&GatewayNotification{
			PaymentID: payment.ID,
			Outcome:   NotificationOutcomeSuccess,
		}, nil)
		f.payments.On("FindByID", mock.Anything, payment.ID).Return(payment, nil)

		require.NoError(t, svc.HandleGatewayNotification(context.Background(), body))
		f.ledgers.AssertNotCalled(t, "FindByIDForUpdate", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("redelivered notification is skipped", func(t *testing.T) {
		f, ledger, payment, gateway, svc := setup(t)
		store := &memoryStore{keys: map[string]bool{}}
		svc.SetNotificationStore(store, 0)
		gateway.On("ParseNotification", mock.Anything, body).Return(&GatewayNotification{
			PaymentID:     payment.ID,
			TransactionID: "mid-9",
			Outcome:       NotificationOutcomeSuccess,
		}, nil)
		f.payments.On("FindByID", mock.Anything, payment.ID).Return(payment, nil)
		f.payments.On("FindByIDForUpdate", mock.Anything, f.centerID, payment.ID).Return(payment, nil)
		f.ledgers.On("FindByIDForUpdate", mock.Anything, f.centerID, ledger.ID).Return(ledger, nil)
		f.payments.On("SaveWithLock", mock.Anything, payment).Return(nil)
		f.ledgers.On("SaveWithLock", mock.Anything, ledger).Return(nil)

		require.NoError(t, svc.HandleGatewayNotification(context.Background(), body))
		require.NoError(t, svc.HandleGatewayNotification(context.Background(), body))

		assert.True(t, store.keys["gateway:"+payment.ID.String()+":mid-9:SUCCESS"])
		f.ledgers.AssertNumberOfCalls(t, "FindByIDForUpdate", 1)
		f.payments.AssertNumberOfCalls(t, "SaveWithLock", 2)
	})

	t.Run("invalid signature", func(t *testing.T) {
		_, _, _, gateway, svc := setup(t)
		gateway.On("ParseNotification", mock.Anything, body).Return(nil, shared.NewInvalidInputError("Invalid notification signature"))

		err := svc.HandleGatewayNotification(context.Background(), body)
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("repository failure surfaces", func(t *testing.T) {
		f, _, payment, gateway, svc := setup(t)
		gateway.On("ParseNotification", mock.Anything, body).Return(&GatewayNotification{
			PaymentID: payment.ID,
			Outcome:   NotificationOutcomeFailed,
		}, nil)
		f.payments.On("FindByID", mock.Anything, payment.ID).Return(nil, errors.New("db down"))

		err := svc.HandleGatewayNotification(context.Background(), body)
		assert.EqualError(t, err, "db down")
	})
}
