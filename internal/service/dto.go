package service

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"yatra-booking/internal/domain"
)

type CreateOrderRequest struct {
	// Amount is in major units (rupees), at most domain.MaxOrderAmount.
	Amount        *decimal.Decimal `json:"amount" validate:"required"`
	CustomerEmail string           `json:"customerEmail" validate:"required,email"`
	CustomerPhone string           `json:"customerPhone" validate:"required"`
	BookingID     *uuid.UUID       `json:"bookingId"`
	TourName      string           `json:"tourName"`
	CustomerName  string           `json:"customerName"`
}

type CreateOrderResult struct {
	OrderID   string    `json:"orderId"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
	PaymentID uuid.UUID `json:"paymentId"`
	KeyID     string    `json:"keyId"`
}

type VerifyPaymentRequest struct {
	GatewayOrderID   string     `json:"gatewayOrderId" validate:"required"`
	GatewayPaymentID string     `json:"gatewayPaymentId" validate:"required"`
	GatewaySignature string     `json:"gatewaySignature" validate:"required"`
	BookingID        *uuid.UUID `json:"bookingId"`
}

type CreateBookingRequest struct {
	InquiryID         *uuid.UUID            `json:"inquiryId"`
	TourID            *uuid.UUID            `json:"tourId"`
	DepartureID       *uuid.UUID            `json:"departureId"`
	CustomerName      string                `json:"customerName" validate:"required"`
	CustomerEmail     string                `json:"customerEmail" validate:"required,email"`
	CustomerPhone     string                `json:"customerPhone" validate:"required"`
	NumberOfTravelers int                   `json:"numberOfTravelers" validate:"required,gte=1"`
	TotalAmount       *int64                `json:"totalAmount" validate:"required,gte=0"`
	BookingStatus     *domain.BookingStatus `json:"bookingStatus" validate:"omitempty,oneof=pending confirmed cancelled"`
	SpecialRequests   *string               `json:"specialRequests"`
}

type UpdateBookingRequest struct {
	BookingStatus *domain.BookingStatus `json:"bookingStatus" validate:"omitempty,oneof=pending confirmed cancelled"`
	AdminNotes    *string               `json:"adminNotes"`
}

type Quote struct {
	Total    int64  `json:"total"`
	Deposit  int64  `json:"deposit"`
	Currency string `json:"currency"`
}

type CreateInquiryRequest struct {
	TourID            *uuid.UUID `json:"tourId"`
	TourName          *string    `json:"tourName"`
	Name              string     `json:"name" validate:"required"`
	Email             string     `json:"email" validate:"required,email"`
	Phone             string     `json:"phone" validate:"required"`
	NumberOfTravelers *int       `json:"numberOfTravelers" validate:"omitempty,gte=1"`
	PreferredDate     *string    `json:"preferredDate"`
	Message           *string    `json:"message"`
	Source            *string    `json:"source"`
}

type UpdateInquiryRequest struct {
	Status     *string `json:"status" validate:"omitempty,oneof=new contacted converted closed"`
	AdminNotes *string `json:"adminNotes"`
}

type CreateTestimonialRequest struct {
	TourID   *uuid.UUID `json:"tourId"`
	TourName *string    `json:"tourName"`
	Name     string     `json:"name" validate:"required"`
	Location *string    `json:"location"`
	Rating   int        `json:"rating" validate:"required,min=1,max=5"`
	Review   string     `json:"review" validate:"required"`
	PhotoURL *string    `json:"photoUrl" validate:"omitempty,url"`
	Year     *string    `json:"year"`
}

type UpdateTestimonialRequest struct {
	IsApproved *bool `json:"isApproved"`
	IsFeatured *bool `json:"isFeatured"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type TourRequest struct {
	Name               string           `json:"name" validate:"required"`
	Slug               string           `json:"slug" validate:"required"`
	ShortDescription   string           `json:"shortDescription" validate:"required"`
	Description        string           `json:"description" validate:"required"`
	Duration           string           `json:"duration" validate:"required"`
	Category           string           `json:"category" validate:"required"`
	Highlights         []string         `json:"highlights"`
	PricePerPerson     int64            `json:"pricePerPerson" validate:"required,gt=0"`
	OriginalPrice      *int64           `json:"originalPrice" validate:"omitempty,gt=0"`
	MaxAltitude        *string          `json:"maxAltitude"`
	Difficulty         *string          `json:"difficulty"`
	ImageURL           *string          `json:"imageUrl"`
	GalleryImages      []string         `json:"galleryImages"`
	Inclusions         []string         `json:"inclusions"`
	Exclusions         []string         `json:"exclusions"`
	Itinerary          domain.Itinerary `json:"itinerary" validate:"dive"`
	Requirements       []string         `json:"requirements"`
	CancellationPolicy *string          `json:"cancellationPolicy"`
	IsActive           *bool            `json:"isActive"`
	IsFeatured         bool             `json:"isFeatured"`
	IsPremium          bool             `json:"isPremium"`
	SortOrder          int              `json:"sortOrder"`
}

type DepartureRequest struct {
	DepartureDate  string  `json:"departureDate" validate:"required,datetime=2006-01-02"`
	ReturnDate     *string `json:"returnDate" validate:"omitempty,datetime=2006-01-02"`
	AvailableSeats int     `json:"availableSeats" validate:"gte=0,ltefield=TotalSeats"`
	TotalSeats     int     `json:"totalSeats" validate:"required,gt=0"`
	PriceOverride  *int64  `json:"priceOverride" validate:"omitempty,gt=0"`
	Status         *string `json:"status" validate:"omitempty,oneof=upcoming full cancelled completed"`
	Notes          *string `json:"notes"`
}
