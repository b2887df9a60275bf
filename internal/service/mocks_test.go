package service_test

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"yatra-booking/internal/domain"
	"yatra-booking/internal/infrastructure/payment"
)

type MockPaymentRepo struct {
	mock.Mock
}

func (m *MockPaymentRepo) CreatePayment(ctx context.Context, tx *sql.Tx, p *domain.Payment) error {
	return m.Called(ctx, tx, p).Error(0)
}

func (m *MockPaymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepo) FindByGatewayOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepo) MarkCaptured(ctx context.Context, tx *sql.Tx, orderID, paymentID, signature string) (*domain.Payment, error) {
	args := m.Called(ctx, tx, orderID, paymentID, signature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepo) List(ctx context.Context, limit int) ([]domain.Payment, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepo) FindPendingBefore(ctx context.Context, before time.Time, limit int) ([]domain.Payment, error) {
	args := m.Called(ctx, before, limit)
	return args.Get(0).([]domain.Payment), args.Error(1)
}

func (m *MockPaymentRepo) CountByStatus(ctx context.Context, status domain.PaymentStatus) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}

type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) CreateBooking(ctx context.Context, tx *sql.Tx, b *domain.Booking) error {
	return m.Called(ctx, tx, b).Error(0)
}

func (m *MockBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) List(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) Settle(ctx context.Context, tx *sql.Tx, id uuid.UUID, paid decimal.Decimal) (*domain.Booking, error) {
	args := m.Called(ctx, tx, id, paid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) UpdateAdmin(ctx context.Context, id uuid.UUID, status *domain.BookingStatus, notes *string) (*domain.Booking, error) {
	args := m.Called(ctx, id, status, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockSettlementRepo struct {
	mock.Mock
}

func (m *MockSettlementRepo) Record(ctx context.Context, s *domain.Settlement) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSettlementRepo) Fail(ctx context.Context, orderID string, cause string) error {
	return m.Called(ctx, orderID, cause).Error(0)
}

func (m *MockSettlementRepo) Advance(ctx context.Context, orderID string, phase domain.SettlementPhase) error {
	return m.Called(ctx, orderID, phase).Error(0)
}

func (m *MockSettlementRepo) Annotate(ctx context.Context, orderID string, note string) error {
	return m.Called(ctx, orderID, note).Error(0)
}

func (m *MockSettlementRepo) FindByPhase(ctx context.Context, phase domain.SettlementPhase, olderThan time.Time, maxAttempts, limit int) ([]domain.Settlement, error) {
	args := m.Called(ctx, phase, olderThan, maxAttempts, limit)
	return args.Get(0).([]domain.Settlement), args.Error(1)
}

func (m *MockSettlementRepo) ListOpen(ctx context.Context) ([]domain.Settlement, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Settlement), args.Error(1)
}

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateOrder(ctx context.Context, req payment.OrderRequest) (*payment.Order, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Order), args.Error(1)
}

func (m *MockGateway) FetchOrder(ctx context.Context, orderID string) (*payment.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Order), args.Error(1)
}

func (m *MockGateway) KeyID() string {
	return "rzp_test_key"
}

type MockTourRepo struct {
	mock.Mock
}

func (m *MockTourRepo) ListActive(ctx context.Context) ([]domain.Tour, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Tour), args.Error(1)
}

func (m *MockTourRepo) FindBySlug(ctx context.Context, slug string) (*domain.Tour, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tour), args.Error(1)
}

func (m *MockTourRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Tour, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tour), args.Error(1)
}

func (m *MockTourRepo) CreateTour(ctx context.Context, t *domain.Tour) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTourRepo) UpdateTour(ctx context.Context, t *domain.Tour) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTourRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockTourRepo) ListDepartures(ctx context.Context, tourID uuid.UUID) ([]domain.Departure, error) {
	args := m.Called(ctx, tourID)
	return args.Get(0).([]domain.Departure), args.Error(1)
}

func (m *MockTourRepo) CreateDeparture(ctx context.Context, d *domain.Departure) error {
	return m.Called(ctx, d).Error(0)
}

type MockInquiryRepo struct {
	mock.Mock
}

func (m *MockInquiryRepo) CreateInquiry(ctx context.Context, i *domain.Inquiry) error {
	return m.Called(ctx, i).Error(0)
}

func (m *MockInquiryRepo) List(ctx context.Context) ([]domain.Inquiry, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Inquiry), args.Error(1)
}

func (m *MockInquiryRepo) UpdateInquiry(ctx context.Context, id uuid.UUID, status, adminNotes *string) (*domain.Inquiry, error) {
	args := m.Called(ctx, id, status, adminNotes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Inquiry), args.Error(1)
}

func (m *MockInquiryRepo) CountByStatus(ctx context.Context, status string) (int, error) {
	args := m.Called(ctx, status)
	return args.Int(0), args.Error(1)
}

func (m *MockInquiryRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockTestimonialRepo struct {
	mock.Mock
}

func (m *MockTestimonialRepo) CreateTestimonial(ctx context.Context, t *domain.Testimonial) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTestimonialRepo) List(ctx context.Context) ([]domain.Testimonial, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Testimonial), args.Error(1)
}

func (m *MockTestimonialRepo) ListFeatured(ctx context.Context) ([]domain.Testimonial, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Testimonial), args.Error(1)
}

func (m *MockTestimonialRepo) UpdateFlags(ctx context.Context, id uuid.UUID, approved, featured *bool) (*domain.Testimonial, error) {
	args := m.Called(ctx, id, approved, featured)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Testimonial), args.Error(1)
}

func (m *MockTestimonialRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type MockAdminRepo struct {
	mock.Mock
}

func (m *MockAdminRepo) CreateAdmin(ctx context.Context, a *domain.Admin) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAdminRepo) FindByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Admin), args.Error(1)
}

func (m *MockAdminRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Admin, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Admin), args.Error(1)
}
