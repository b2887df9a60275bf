package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

type Tour struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Slug               string    `json:"slug"`
	ShortDescription   string    `json:"shortDescription"`
	Description        string    `json:"description"`
	Duration           string    `json:"duration"`
	Category           string    `json:"category"`
	Highlights         []string  `json:"highlights"`
	PricePerPerson     int64     `json:"pricePerPerson"`
	OriginalPrice      *int64    `json:"originalPrice"`
	MaxAltitude        *string   `json:"maxAltitude"`
	Difficulty         *string   `json:"difficulty"`
	ImageURL           *string   `json:"imageUrl"`
	GalleryImages      []string  `json:"galleryImages"`
	Inclusions         []string  `json:"inclusions"`
	Exclusions         []string  `json:"exclusions"`
	Itinerary          Itinerary `json:"itinerary"`
	Requirements       []string  `json:"requirements"`
	CancellationPolicy *string   `json:"cancellationPolicy"`
	IsActive           bool      `json:"isActive"`
	IsFeatured         bool      `json:"isFeatured"`
	IsPremium          bool      `json:"isPremium"`
	SortOrder          int       `json:"sortOrder"`
}

// Total is the quoted price for a party of the given size.
func (t *Tour) Total(travelers int) int64 {
	return t.PricePerPerson * int64(travelers)
}

type ItineraryDay struct {
	Day           int    `json:"day" validate:"gte=1"`
	Title         string `json:"title" validate:"required"`
	Description   string `json:"description" validate:"required"`
	Distance      string `json:"distance,omitempty"`
	Duration      string `json:"duration,omitempty"`
	Meals         string `json:"meals,omitempty"`
	Accommodation string `json:"accommodation,omitempty"`
}

type Itinerary []ItineraryDay

func (it Itinerary) Value() (driver.Value, error) {
	if it == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(it)
}

func (it *Itinerary) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*it = Itinerary{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("itinerary: unsupported scan type")
	}
	return json.Unmarshal(raw, it)
}

type Departure struct {
	ID             uuid.UUID  `json:"id"`
	TourID         uuid.UUID  `json:"tourId"`
	DepartureDate  time.Time  `json:"departureDate"`
	ReturnDate     *time.Time `json:"returnDate"`
	AvailableSeats int        `json:"availableSeats"`
	TotalSeats     int        `json:"totalSeats"`
	PriceOverride  *int64     `json:"priceOverride"`
	Status         string     `json:"status"`
	Notes          *string    `json:"notes"`
}
