package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"yatra-booking/internal/domain"
	"yatra-booking/internal/repo"
)

type BookingService interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error)
	// GetBooking takes the raw id from the request; an id that does not
	// parse is reported as not found.
	GetBooking(ctx context.Context, id string) (*domain.Booking, error)
	ListBookings(ctx context.Context) ([]domain.Booking, error)
	UpdateBooking(ctx context.Context, id uuid.UUID, req UpdateBookingRequest) (*domain.Booking, error)
}

type bookingService struct {
	bookings repo.BookingRepo
	logger   *zap.Logger
}

func NewBookingService(bookings repo.BookingRepo, logger *zap.Logger) BookingService {
	return &bookingService{bookings: bookings, logger: logger}
}

func (s *bookingService) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	if err := check(req); err != nil {
		return nil, err
	}

	status := domain.BookingConfirmed
	if req.BookingStatus != nil {
		status = *req.BookingStatus
	}
	now := time.Now().UTC()
	b := &domain.Booking{
		ID:                uuid.New(),
		InquiryID:         req.InquiryID,
		TourID:            req.TourID,
		DepartureID:       req.DepartureID,
		CustomerName:      req.CustomerName,
		CustomerEmail:     req.CustomerEmail,
		CustomerPhone:     req.CustomerPhone,
		NumberOfTravelers: req.NumberOfTravelers,
		TotalAmount:       *req.TotalAmount,
		PaidAmount:        decimal.Zero,
		PaymentStatus:     domain.BookingPaymentPending,
		BookingStatus:     status,
		SpecialRequests:   req.SpecialRequests,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.bookings.CreateBooking(ctx, nil, b); err != nil {
		s.logger.Error("booking insert failed", zap.Error(err), zap.String("customer_email", b.CustomerEmail))
		return nil, domain.NewPersistenceError("Failed to create booking", err)
	}
	s.logger.Info("booking created", zap.String("booking_id", b.ID.String()))
	return b, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	if id == "" {
		return nil, domain.NewValidationError("Booking ID is required",
			[]domain.FieldError{{Field: "id", Rule: "required"}})
	}
	bookingID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.NewNotFound("Booking not found")
	}
	b, err := s.bookings.FindByID(ctx, bookingID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NewNotFound("Booking not found")
	}
	if err != nil {
		s.logger.Error("booking lookup failed", zap.Error(err), zap.String("booking_id", id))
		return nil, domain.NewPersistenceError("Failed to fetch booking", err)
	}
	return b, nil
}

func (s *bookingService) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	bookings, err := s.bookings.List(ctx)
	if err != nil {
		return nil, domain.NewPersistenceError("Failed to fetch bookings", err)
	}
	return bookings, nil
}

func (s *bookingService) UpdateBooking(ctx context.Context, id uuid.UUID, req UpdateBookingRequest) (*domain.Booking, error) {
	if err := check(req); err != nil {
		return nil, err
	}
	b, err := s.bookings.UpdateAdmin(ctx, id, req.BookingStatus, req.AdminNotes)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NewNotFound("Booking not found")
	}
	if err != nil {
		s.logger.Error("booking update failed", zap.Error(err), zap.String("booking_id", id.String()))
		return nil, domain.NewPersistenceError("Failed to update booking", err)
	}
	return b, nil
}
