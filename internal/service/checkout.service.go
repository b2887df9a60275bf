package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"yatra-booking/internal/domain"
	"yatra-booking/internal/infrastructure/payment"
	"yatra-booking/internal/repo"
)

type CheckoutService interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResult, error)
	VerifyPayment(ctx context.Context, req VerifyPaymentRequest) (*domain.Payment, error)
	GetPayment(ctx context.Context, orderID string) (*domain.Payment, error)
	// ResumeSettlement retries the booking update for a journal entry left
	// in payment_captured.
	ResumeSettlement(ctx context.Context, entry domain.Settlement) error
}

type checkoutService struct {
	payments    repo.PaymentRepo
	bookings    repo.BookingRepo
	settlements repo.SettlementRepo
	gateway     payment.Gateway
	signer      *payment.Signer
	logger      *zap.Logger
	now         func() time.Time
}

func NewCheckoutService(
	payments repo.PaymentRepo,
	bookings repo.BookingRepo,
	settlements repo.SettlementRepo,
	gateway payment.Gateway,
	signer *payment.Signer,
	logger *zap.Logger,
) CheckoutService {
	return &checkoutService{
		payments:    payments,
		bookings:    bookings,
		settlements: settlements,
		gateway:     gateway,
		signer:      signer,
		logger:      logger,
		now:         time.Now,
	}
}

func (s *checkoutService) CreateOrder(ctx context.Context, req CreateOrderRequest) (*CreateOrderResult, error) {
	if err := check(req); err != nil {
		return nil, err
	}
	if req.Amount.GreaterThan(domain.MaxOrderAmount) {
		return nil, domain.NewValidationError("Invalid request",
			[]domain.FieldError{{Field: "amount", Rule: "lte"}})
	}
	minor, ok := domain.ToMinor(*req.Amount)
	if !ok || minor <= 0 {
		return nil, domain.NewValidationError("Invalid request",
			[]domain.FieldError{{Field: "amount", Rule: "gt"}})
	}

	notes := domain.Notes{
		"customerEmail": req.CustomerEmail,
		"customerPhone": req.CustomerPhone,
	}
	if req.BookingID != nil {
		notes["bookingId"] = req.BookingID.String()
	}
	if req.TourName != "" {
		notes["tourName"] = req.TourName
	}
	if req.CustomerName != "" {
		notes["customerName"] = req.CustomerName
	}

	receipt := fmt.Sprintf("receipt_%d", s.now().UnixMilli())
	order, err := s.gateway.CreateOrder(ctx, payment.OrderRequest{
		Amount:   minor,
		Currency: domain.CurrencyINR,
		Receipt:  receipt,
		Notes:    notes,
	})
	if err != nil {
		s.logger.Error("gateway order creation failed",
			zap.Error(err),
			zap.Int64("amount", minor),
			zap.String("receipt", receipt),
		)
		return nil, domain.NewUpstreamError("Failed to create payment order", err)
	}

	now := s.now().UTC()
	p := &domain.Payment{
		ID:             uuid.New(),
		BookingID:      req.BookingID,
		GatewayOrderID: order.ID,
		Amount:         minor,
		Currency:       domain.CurrencyINR,
		Status:         domain.PaymentPending,
		CustomerEmail:  req.CustomerEmail,
		CustomerPhone:  req.CustomerPhone,
		Receipt:        receipt,
		Notes:          notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.payments.CreatePayment(ctx, nil, p); err != nil {
		// The gateway order stays open with nothing local pointing at it.
		s.logger.Error("payment persistence failed, gateway order orphaned",
			zap.Error(err),
			zap.String("gateway_order_id", order.ID),
			zap.String("phase", string(domain.PhaseOrderOrphaned)),
		)
		cause := err.Error()
		if jerr := s.settlements.Record(ctx, &domain.Settlement{
			GatewayOrderID: order.ID,
			BookingID:      req.BookingID,
			Phase:          domain.PhaseOrderOrphaned,
			LastError:      &cause,
		}); jerr != nil {
			s.logger.Error("settlement journal write failed",
				zap.Error(jerr),
				zap.String("gateway_order_id", order.ID),
			)
		}
		return nil, domain.NewPersistenceError("Failed to create payment order", err)
	}

	s.logger.Info("payment order created",
		zap.String("gateway_order_id", order.ID),
		zap.String("payment_id", p.ID.String()),
		zap.Int64("amount", minor),
	)
	return &CreateOrderResult{
		OrderID:   order.ID,
		Amount:    minor,
		Currency:  domain.CurrencyINR,
		PaymentID: p.ID,
		KeyID:     s.gateway.KeyID(),
	}, nil
}

func (s *checkoutService) VerifyPayment(ctx context.Context, req VerifyPaymentRequest) (*domain.Payment, error) {
	if err := check(req); err != nil {
		return nil, err
	}
	if !s.signer.Verify(req.GatewayOrderID, req.GatewayPaymentID, req.GatewaySignature) {
		s.logger.Warn("payment signature mismatch",
			zap.String("gateway_order_id", req.GatewayOrderID),
			zap.String("gateway_payment_id", req.GatewayPaymentID),
		)
		return nil, domain.NewSignatureInvalid()
	}

	existing, err := s.GetPayment(ctx, req.GatewayOrderID)
	if err != nil {
		return nil, err
	}
	if req.BookingID != nil && existing.BookingID != nil && *existing.BookingID != *req.BookingID {
		s.logger.Warn("verified order was created for a different booking",
			zap.String("gateway_order_id", req.GatewayOrderID),
			zap.String("order_booking_id", existing.BookingID.String()),
			zap.String("booking_id", req.BookingID.String()),
		)
	}

	// Phase 1: the gateway says the money moved; record it.
	captured, err := s.payments.MarkCaptured(ctx, nil, req.GatewayOrderID, req.GatewayPaymentID, req.GatewaySignature)
	if err != nil {
		s.logger.Error("payment capture update failed",
			zap.Error(err),
			zap.String("gateway_order_id", req.GatewayOrderID),
		)
		return nil, domain.NewPersistenceError("Failed to update payment", err)
	}
	s.journal(ctx, &domain.Settlement{
		GatewayOrderID: req.GatewayOrderID,
		PaymentID:      &captured.ID,
		BookingID:      req.BookingID,
		Phase:          domain.PhasePaymentCaptured,
	})

	if req.BookingID == nil {
		s.advance(ctx, req.GatewayOrderID)
		return captured, nil
	}

	// Phase 2: reflect the payment on the booking.
	if err := s.settle(ctx, captured, *req.BookingID); err != nil {
		return nil, err
	}
	return captured, nil
}

func (s *checkoutService) GetPayment(ctx context.Context, orderID string) (*domain.Payment, error) {
	p, err := s.payments.FindByGatewayOrderID(ctx, orderID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NewNotFound("Payment not found")
	}
	if err != nil {
		return nil, domain.NewPersistenceError("Failed to fetch payment", err)
	}
	return p, nil
}

func (s *checkoutService) ResumeSettlement(ctx context.Context, entry domain.Settlement) error {
	if entry.Phase != domain.PhasePaymentCaptured {
		return fmt.Errorf("settlement %s is in phase %s", entry.GatewayOrderID, entry.Phase)
	}
	p, err := s.GetPayment(ctx, entry.GatewayOrderID)
	if err != nil {
		s.recordFailure(ctx, entry.GatewayOrderID, err)
		return err
	}
	if p.Status != domain.PaymentCaptured {
		err := fmt.Errorf("payment for %s is %s, not captured", entry.GatewayOrderID, p.Status)
		s.recordFailure(ctx, entry.GatewayOrderID, err)
		return err
	}
	if entry.BookingID == nil {
		s.advance(ctx, entry.GatewayOrderID)
		return nil
	}
	return s.settle(ctx, p, *entry.BookingID)
}

func (s *checkoutService) settle(ctx context.Context, p *domain.Payment, bookingID uuid.UUID) error {
	paid := domain.ToMajor(p.Amount)
	booking, err := s.bookings.Settle(ctx, nil, bookingID, paid)
	if err != nil {
		s.logger.Error("booking settlement failed, payment captured but booking unpaid",
			zap.Error(err),
			zap.String("gateway_order_id", p.GatewayOrderID),
			zap.String("booking_id", bookingID.String()),
			zap.String("phase", string(domain.PhasePaymentCaptured)),
		)
		s.recordFailure(ctx, p.GatewayOrderID, err)
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewNotFound("Booking not found")
		}
		return domain.NewPersistenceError("Failed to update booking", err)
	}

	if booking.Overpaid(paid) {
		s.logger.Warn("booking paid amount exceeds total",
			zap.String("booking_id", bookingID.String()),
			zap.String("paid_amount", paid.String()),
			zap.Int64("total_amount", booking.TotalAmount),
		)
	}
	s.advance(ctx, p.GatewayOrderID)
	return nil
}

func (s *checkoutService) journal(ctx context.Context, entry *domain.Settlement) {
	if err := s.settlements.Record(ctx, entry); err != nil {
		s.logger.Error("settlement journal write failed",
			zap.Error(err),
			zap.String("gateway_order_id", entry.GatewayOrderID),
			zap.String("phase", string(entry.Phase)),
		)
	}
}

// recordFailure bumps the journal entry's attempts so the worker can stop
// retrying it.
func (s *checkoutService) recordFailure(ctx context.Context, orderID string, cause error) {
	if err := s.settlements.Fail(ctx, orderID, cause.Error()); err != nil {
		s.logger.Error("settlement journal write failed",
			zap.Error(err),
			zap.String("gateway_order_id", orderID),
		)
	}
}

func (s *checkoutService) advance(ctx context.Context, orderID string) {
	if err := s.settlements.Advance(ctx, orderID, domain.PhaseSettled); err != nil {
		s.logger.Error("settlement journal write failed",
			zap.Error(err),
			zap.String("gateway_order_id", orderID),
			zap.String("phase", string(domain.PhaseSettled)),
		)
	}
}
