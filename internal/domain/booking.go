package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingPaymentStatus string

const (
	BookingPaymentPending   BookingPaymentStatus = "pending"
	BookingPaymentCompleted BookingPaymentStatus = "completed"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCancelled:
		return true
	}
	return false
}

type Booking struct {
	ID                uuid.UUID            `json:"id"`
	InquiryID         *uuid.UUID           `json:"inquiryId"`
	TourID            *uuid.UUID           `json:"tourId"`
	DepartureID       *uuid.UUID           `json:"departureId"`
	CustomerName      string               `json:"customerName"`
	CustomerEmail     string               `json:"customerEmail"`
	CustomerPhone     string               `json:"customerPhone"`
	NumberOfTravelers int                  `json:"numberOfTravelers"`
	TotalAmount       int64                `json:"totalAmount"`
	PaidAmount        decimal.Decimal      `json:"paidAmount"`
	PaymentStatus     BookingPaymentStatus `json:"paymentStatus"`
	BookingStatus     BookingStatus        `json:"bookingStatus"`
	SpecialRequests   *string              `json:"specialRequests"`
	AdminNotes        *string              `json:"adminNotes"`
	CreatedAt         time.Time            `json:"createdAt"`
	UpdatedAt         time.Time            `json:"updatedAt"`
}

// Overpaid reports whether paid would push the booking past its total.
func (b *Booking) Overpaid(paid decimal.Decimal) bool {
	return paid.GreaterThan(decimal.NewFromInt(b.TotalAmount))
}
