package worker

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"yatra-booking/internal/config"
	"yatra-booking/internal/domain"
	"yatra-booking/internal/infrastructure/payment"
)

type mockJournal struct {
	mock.Mock
}

func (m *mockJournal) Record(ctx context.Context, s *domain.Settlement) error {
	return m.Called(ctx, s).Error(0)
}

func (m *mockJournal) Fail(ctx context.Context, orderID string, cause string) error {
	return m.Called(ctx, orderID, cause).Error(0)
}

func (m *mockJournal) Advance(ctx context.Context, orderID string, phase domain.SettlementPhase) error {
	return m.Called(ctx, orderID, phase).Error(0)
}

func (m *mockJournal) Annotate(ctx context.Context, orderID string, note string) error {
	return m.Called(ctx, orderID, note).Error(0)
}

func (m *mockJournal) FindByPhase(ctx context.Context, phase domain.SettlementPhase, olderThan time.Time, maxAttempts, limit int) ([]domain.Settlement, error) {
	args := m.Called(ctx, phase, olderThan, maxAttempts, limit)
	return args.Get(0).([]domain.Settlement), args.Error(1)
}

func (m *mockJournal) ListOpen(ctx context.Context) ([]domain.Settlement, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Settlement), args.Error(1)
}

type mockPayments struct {
	mock.Mock
}

func (m *mockPayments) CreatePayment(ctx context.Context, tx *sql.Tx, p *domain.Payment) error {
	return m.Called(ctx, tx, p).Error(0)
}

func (m *mockPayments) FindByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *mockPayments) FindByGatewayOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *mockPayments) MarkCaptured(ctx context.Context, tx *sql.Tx, orderID, paymentID, signature string) (*domain.Payment, error) {
	args := m.Called(ctx, tx, orderID, paymentID, signature)
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *mockPayments) List(ctx context.Context, limit int) ([]domain.Payment, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *mockPayments) FindPendingBefore(ctx context.Context, before time.Time, limit int) ([]domain.Payment, error) {
	args := m.Called(ctx, before, limit)
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *mockPayments) CountByStatus(ctx context.Context, status domain.PaymentStatus) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}

type mockSettler struct {
	mock.Mock
}

func (m *mockSettler) ResumeSettlement(ctx context.Context, entry domain.Settlement) error {
	return m.Called(ctx, entry).Error(0)
}

func TestReconciliationWorker_RunOnce(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	cutoff := now.Add(-2 * time.Minute)

	journal := new(mockJournal)
	payments := new(mockPayments)
	settler := new(mockSettler)
	sandbox := payment.NewSandbox("", payment.NewSigner("secret"))

	paidOrder, err := sandbox.CreateOrder(ctx, payment.OrderRequest{Amount: 250000, Currency: "INR"})
	require.NoError(t, err)
	_, _, err = sandbox.Capture(paidOrder.ID)
	require.NoError(t, err)
	openOrder, err := sandbox.CreateOrder(ctx, payment.OrderRequest{Amount: 1000, Currency: "INR"})
	require.NoError(t, err)

	bookingA, bookingB := uuid.New(), uuid.New()
	good := domain.Settlement{GatewayOrderID: "order_good", BookingID: &bookingA, Phase: domain.PhasePaymentCaptured}
	bad := domain.Settlement{GatewayOrderID: "order_bad", BookingID: &bookingB, Phase: domain.PhasePaymentCaptured, Attempts: 2}

	journal.On("FindByPhase", ctx, domain.PhasePaymentCaptured, cutoff, 10, 50).Return([]domain.Settlement{good, bad}, nil)
	journal.On("FindByPhase", ctx, domain.PhaseOrderOrphaned, cutoff, 10, 50).Return([]domain.Settlement{
		{GatewayOrderID: paidOrder.ID, Phase: domain.PhaseOrderOrphaned},
		{GatewayOrderID: openOrder.ID, Phase: domain.PhaseOrderOrphaned},
		{GatewayOrderID: "order_unknown", Phase: domain.PhaseOrderOrphaned},
	}, nil)
	settler.On("ResumeSettlement", ctx, good).Return(nil)
	settler.On("ResumeSettlement", ctx, bad).Return(domain.NewNotFound("Booking not found"))

	journal.On("Annotate", ctx, paidOrder.ID, mock.MatchedBy(func(n string) bool {
		return strings.HasPrefix(n, "gateway status paid")
	})).Return(nil)
	journal.On("Annotate", ctx, openOrder.ID, mock.MatchedBy(func(n string) bool {
		return strings.HasPrefix(n, "gateway status created")
	})).Return(nil)
	journal.On("Fail", ctx, "order_unknown", payment.ErrOrderNotFound.Error()).Return(nil)

	payments.On("FindPendingBefore", ctx, cutoff, 50).Return([]domain.Payment{{ID: uuid.New()}}, nil)

	core, logs := observer.New(zap.InfoLevel)
	rw := NewReconciliationWorker(journal, payments, settler, sandbox, zap.New(core), config.ReconcileConfig{
		Interval: time.Minute,
		Grace:    2 * time.Minute,
	})
	rw.now = func() time.Time { return now }

	report, err := rw.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, Report{Resumed: 1, ResumeFailed: 1, OrphansSeen: 3, OrphansPaid: 1, StalePending: 1}, report)

	journal.AssertExpectations(t)
	settler.AssertExpectations(t)
	journal.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
	payments.AssertNotCalled(t, "CreatePayment", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, 1, logs.FilterMessage("customer paid a gateway order with no local payment record").Len())
}

func TestReconciliationWorker_StopsRetryingAtMaxAttempts(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	cutoff := now.Add(-time.Minute)

	journal := new(mockJournal)
	payments := new(mockPayments)
	settler := new(mockSettler)

	bookingID := uuid.New()
	lastTry := domain.Settlement{GatewayOrderID: "order_gone", BookingID: &bookingID, Phase: domain.PhasePaymentCaptured, Attempts: 2}
	early := domain.Settlement{GatewayOrderID: "order_early", BookingID: &bookingID, Phase: domain.PhasePaymentCaptured}

	journal.On("FindByPhase", ctx, domain.PhasePaymentCaptured, cutoff, 3, 50).Return([]domain.Settlement{lastTry, early}, nil)
	journal.On("FindByPhase", ctx, domain.PhaseOrderOrphaned, cutoff, 3, 50).Return([]domain.Settlement{}, nil)
	settler.On("ResumeSettlement", ctx, lastTry).Return(domain.NewNotFound("Booking not found"))
	settler.On("ResumeSettlement", ctx, early).Return(domain.NewNotFound("Booking not found"))
	journal.On("Annotate", ctx, "order_gone", mock.MatchedBy(func(n string) bool {
		return strings.HasPrefix(n, "retries stopped after 3 attempts") && strings.HasSuffix(n, "Booking not found")
	})).Return(nil)
	payments.On("FindPendingBefore", ctx, cutoff, 50).Return([]domain.Payment{}, nil)

	core, logs := observer.New(zap.InfoLevel)
	rw := NewReconciliationWorker(journal, payments, settler, nil, zap.New(core), config.ReconcileConfig{
		Interval: time.Minute, Grace: time.Minute, MaxAttempts: 3,
	})
	rw.now = func() time.Time { return now }

	report, err := rw.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, Report{ResumeFailed: 2, Exhausted: 1}, report)

	journal.AssertExpectations(t)
	journal.AssertNotCalled(t, "Annotate", ctx, "order_early", mock.Anything)
	journal.AssertNotCalled(t, "Advance", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, 1, logs.FilterMessage("settlement retries exhausted, manual follow-up needed").Len())
}

func TestReconciliationWorker_StoreError(t *testing.T) {
	ctx := context.Background()
	journal := new(mockJournal)
	journal.On("FindByPhase", ctx, domain.PhasePaymentCaptured, mock.Anything, 3, 10).
		Return([]domain.Settlement(nil), errors.New("connection reset"))

	rw := NewReconciliationWorker(journal, new(mockPayments), new(mockSettler), nil, zap.NewNop(), config.ReconcileConfig{
		Interval: time.Minute, Grace: time.Minute, Batch: 10, MaxAttempts: 3,
	})
	_, err := rw.RunOnce(ctx)
	assert.ErrorContains(t, err, "connection reset")
}

func TestReconciliationWorker_RunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	journal := new(mockJournal)
	journal.On("FindByPhase", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return([]domain.Settlement{}, nil)
	payments := new(mockPayments)
	payments.On("FindPendingBefore", mock.Anything, mock.Anything, mock.Anything).Return([]domain.Payment{}, nil)

	rw := NewReconciliationWorker(journal, payments, new(mockSettler), nil, zap.NewNop(), config.ReconcileConfig{
		Interval: 5 * time.Millisecond, Grace: time.Minute, Batch: 10,
	})

	done := make(chan struct{})
	go func() {
		rw.Run(ctx)
		close(done)
	}()
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop after cancel")
	}
}
