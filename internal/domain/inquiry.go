package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	InquiryNew        = "new"
	InquirySourceSite = "website"
)

type Inquiry struct {
	ID                uuid.UUID  `json:"id"`
	TourID            *uuid.UUID `json:"tourId"`
	TourName          *string    `json:"tourName"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Phone             string     `json:"phone"`
	NumberOfTravelers int        `json:"numberOfTravelers"`
	PreferredDate     *string    `json:"preferredDate"`
	Message           *string    `json:"message"`
	Source            string     `json:"source"`
	Status            string     `json:"status"`
	AdminNotes        *string    `json:"adminNotes"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

type Testimonial struct {
	ID         uuid.UUID  `json:"id"`
	TourID     *uuid.UUID `json:"tourId"`
	TourName   *string    `json:"tourName"`
	Name       string     `json:"name"`
	Location   *string    `json:"location"`
	Rating     int        `json:"rating"`
	Review     string     `json:"review"`
	PhotoURL   *string    `json:"photoUrl"`
	Year       *string    `json:"year"`
	IsApproved bool       `json:"isApproved"`
	IsFeatured bool       `json:"isFeatured"`
	CreatedAt  time.Time  `json:"createdAt"`
}

type Admin struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Name         *string   `json:"name"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}

// DisplayName falls back to the username when no name is set.
func (a *Admin) DisplayName() string {
	if a.Name != nil && *a.Name != "" {
		return *a.Name
	}
	return a.Username
}

type Stats struct {
	TotalTours        int `json:"totalTours"`
	TotalInquiries    int `json:"totalInquiries"`
	NewInquiries      int `json:"newInquiries"`
	TotalTestimonials int `json:"totalTestimonials"`
	TotalBookings     int `json:"totalBookings"`
	PendingPayments   int `json:"pendingPayments"`
	OpenSettlements   int `json:"openSettlements"`
}
