package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"yatra-booking/internal/domain"
	"yatra-booking/internal/repo"
)

const paymentListLimit = 200

// TourPatch carries the admin-editable tour fields; nil leaves a field as is.
type TourPatch struct {
	Name               *string           `json:"name" validate:"omitempty,min=1"`
	ShortDescription   *string           `json:"shortDescription"`
	Description        *string           `json:"description"`
	Duration           *string           `json:"duration"`
	Highlights         []string          `json:"highlights"`
	PricePerPerson     *int64            `json:"pricePerPerson" validate:"omitempty,gt=0"`
	OriginalPrice      *int64            `json:"originalPrice" validate:"omitempty,gt=0"`
	ImageURL           *string           `json:"imageUrl"`
	Itinerary          *domain.Itinerary `json:"itinerary" validate:"omitempty,dive"`
	CancellationPolicy *string           `json:"cancellationPolicy"`
	IsActive           *bool             `json:"isActive"`
	IsFeatured         *bool             `json:"isFeatured"`
	IsPremium          *bool             `json:"isPremium"`
	SortOrder          *int              `json:"sortOrder"`
}

type AdminService interface {
	Login(ctx context.Context, req LoginRequest) (*domain.Admin, error)
	GetAdmin(ctx context.Context, id uuid.UUID) (*domain.Admin, error)
	CreateAdmin(ctx context.Context, username, password string, name *string) (*domain.Admin, error)
	Stats(ctx context.Context) (*domain.Stats, error)

	ListInquiries(ctx context.Context) ([]domain.Inquiry, error)
	UpdateInquiry(ctx context.Context, id uuid.UUID, req UpdateInquiryRequest) (*domain.Inquiry, error)
	ListTestimonials(ctx context.Context) ([]domain.Testimonial, error)
	UpdateTestimonial(ctx context.Context, id uuid.UUID, req UpdateTestimonialRequest) (*domain.Testimonial, error)

	CreateTour(ctx context.Context, req TourRequest) (*domain.Tour, error)
	UpdateTour(ctx context.Context, id uuid.UUID, patch TourPatch) (*domain.Tour, error)
	CreateDeparture(ctx context.Context, tourID uuid.UUID, req DepartureRequest) (*domain.Departure, error)

	ListPayments(ctx context.Context) ([]domain.Payment, error)
	ListSettlements(ctx context.Context) ([]domain.Settlement, error)
}

type adminService struct {
	repos  *repo.Repositories
	logger *zap.Logger
}

func NewAdminService(repos *repo.Repositories, logger *zap.Logger) AdminService {
	return &adminService{repos: repos, logger: logger}
}

var errInvalidCredentials = domain.NewUnauthorized("Invalid credentials")

func (s *adminService) Login(ctx context.Context, req LoginRequest) (*domain.Admin, error) {
	if err := check(req); err != nil {
		return nil, err
	}
	a, err := s.repos.Admins.FindByUsername(ctx, req.Username)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, errInvalidCredentials
	}
	if err != nil {
		s.logger.Error("admin lookup failed", zap.Error(err))
		return nil, domain.NewPersistenceError("Login failed", err)
	}
	if !a.IsActive {
		s.logger.Warn("login attempt on disabled admin", zap.String("username", a.Username))
		return nil, errInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errInvalidCredentials
	}
	s.logger.Info("admin logged in", zap.String("username", a.Username))
	return a, nil
}

func (s *adminService) GetAdmin(ctx context.Context, id uuid.UUID) (*domain.Admin, error) {
	a, err := s.repos.Admins.FindByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NewUnauthorized("Not authenticated")
	}
	if err != nil {
		return nil, domain.NewPersistenceError("Failed to fetch admin", err)
	}
	if !a.IsActive {
		return nil, domain.NewUnauthorized("Not authenticated")
	}
	return a, nil
}

func (s *adminService) CreateAdmin(ctx context.Context, username, password string, name *string) (*domain.Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" || len(password) < 8 {
		return nil, domain.NewValidationError("Username and a password of at least 8 characters are required", nil)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	a := &domain.Admin{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
		Name:         name,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repos.Admins.CreateAdmin(ctx, a); err != nil {
		return nil, domain.NewPersistenceError("Failed to create admin", err)
	}
	return a, nil
}

func (s *adminService) Stats(ctx context.Context) (*domain.Stats, error) {
	var (
		st  domain.Stats
		err error
	)
	counts := []struct {
		dst *int
		fn  func() (int, error)
	}{
		{&st.TotalTours, func() (int, error) { return s.repos.Tours.Count(ctx) }},
		{&st.TotalInquiries, func() (int, error) { return s.repos.Inquiries.Count(ctx) }},
		{&st.NewInquiries, func() (int, error) { return s.repos.Inquiries.CountByStatus(ctx, domain.InquiryNew) }},
		{&st.TotalTestimonials, func() (int, error) { return s.repos.Testimonials.Count(ctx) }},
		{&st.TotalBookings, func() (int, error) { return s.repos.Bookings.Count(ctx) }},
		{&st.PendingPayments, func() (int, error) { return s.repos.Payments.CountByStatus(ctx, domain.PaymentPending) }},
	}
	for _, c := range counts {
		if *c.dst, err = c.fn(); err != nil {
			return nil, domain.NewPersistenceError("Failed to fetch stats", err)
		}
	}
	open, err := s.repos.Settlements.ListOpen(ctx)
	if err != nil {
		return nil, domain.NewPersistenceError("Failed to fetch stats", err)
	}
	st.OpenSettlements = len(open)
	return &st, nil
}

func (s *adminService) ListInquiries(ctx context.Context) ([]domain.Inquiry, error) {
	out, err := s.repos.Inquiries.List(ctx)
	if err != nil {
		return nil, domain.NewPersistenceError("Failed to fetch inquiries", err)
	}
	return out, nil
}

func (s *adminService) UpdateInquiry(ctx context.Context, id uuid.UUID, req UpdateInquiryRequest) (*domain.Inquiry, error) {
	if err := check(req); err != nil {
		return nil, err
	}
	inq, err := s.repos.Inquiries.UpdateInquiry(ctx, id, req.Status, req.AdminNotes)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NewNotFound("Inquiry not found")
	}
	if err != nil {
		return nil, domain.NewPersistenceError("Failed to update inquiry", err)
	}
	return inq, nil
}

func (s *adminService) ListTestimonials(ctx context.Context) ([]domain.Testimonial, error) {
	out, err := s.repos.Testimonials.List(ctx)
	if err != nil {
		return nil, domain.NewPersistenceError("Failed to fetch testimonials", err)
	}
	return out, nil
}

func (s *adminService) UpdateTestimonial(ctx context.Context, id uuid.UUID, req UpdateTestimonialRequest) (*domain.Testimonial, error) {
	t, err := s.repos.Testimonials.UpdateFlags(ctx, id, req.IsApproved, req.IsFeatured)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NewNotFound("Testimonial not found")
	}
	if err != nil {
		return nil, domain.NewPersistenceError("Failed to update testimonial", err)
	}
	return t, nil
}

func (s *adminService) CreateTour(ctx context.Context, req TourRequest) (*domain.Tour, error) {
	if err := check(req); err != nil {
		return nil, err
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	t := &domain.Tour{
		ID:                 uuid.New(),
		Name:               req.Name,
		Slug:               strings.ToLower(strings.TrimSpace(req.Slug)),
		ShortDescription:   req.ShortDescription,
		Description:        req.Description,
		Duration:           req.Duration,
		Category:           req.Category,
		Highlights:         req.Highlights,
		PricePerPerson:     req.PricePerPerson,
		OriginalPrice:      req.OriginalPrice,
		MaxAltitude:        req.MaxAltitude,
		Difficulty:         req.Difficulty,
		ImageURL:           req.ImageURL,
		GalleryImages:      req.GalleryImages,
		Inclusions:         req.Inclusions,
		Exclusions:         req.Exclusions,
		Itinerary:          req.Itinerary,
		Requirements:       req.Requirements,
		CancellationPolicy: req.CancellationPolicy,
		IsActive:           active,
		IsFeatured:         req.IsFeatured,
		IsPremium:          req.IsPremium,
		SortOrder:          req.SortOrder,
	}
	if err := s.repos.Tours.CreateTour(ctx, t); err != nil {
		s.logger.Error("tour insert failed", zap.Error(err), zap.String("slug", t.Slug))
		return nil, domain.NewPersistenceError("Failed to create tour", err)
	}
	return t, nil
}

func (s *adminService) UpdateTour(ctx context.Context, id uuid.UUID, patch TourPatch) (*domain.Tour, error) {
	if err := check(patch); err != nil {
		return nil, err
	}
	t, err := s.repos.Tours.FindByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NewNotFound("Tour not found")
	}
	if err != nil {
		return nil, domain.NewPersistenceError("Failed to fetch tour", err)
	}
	patch.apply(t)
	if err := s.repos.Tours.UpdateTour(ctx, t); err != nil {
		return nil, domain.NewPersistenceError("Failed to update tour", err)
	}
	return t, nil
}

func (p TourPatch) apply(t *domain.Tour) {
	setIf(&t.Name, p.Name)
	setIf(&t.ShortDescription, p.ShortDescription)
	setIf(&t.Description, p.Description)
	setIf(&t.Duration, p.Duration)
	setIf(&t.PricePerPerson, p.PricePerPerson)
	setIf(&t.IsActive, p.IsActive)
	setIf(&t.IsFeatured, p.IsFeatured)
	setIf(&t.IsPremium, p.IsPremium)
	setIf(&t.SortOrder, p.SortOrder)
	setIf(&t.Itinerary, p.Itinerary)
	if p.Highlights != nil {
		t.Highlights = p.Highlights
	}
	if p.OriginalPrice != nil {
		t.OriginalPrice = p.OriginalPrice
	}
	if p.ImageURL != nil {
		t.ImageURL = p.ImageURL
	}
	if p.CancellationPolicy != nil {
		t.CancellationPolicy = p.CancellationPolicy
	}
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func (s *adminService) CreateDeparture(ctx context.Context, tourID uuid.UUID, req DepartureRequest) (*domain.Departure, error) {
	if err := check(req); err != nil {
		return nil, err
	}
	if _, err := s.repos.Tours.FindByID(ctx, tourID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewNotFound("Tour not found")
		}
		return nil, domain.NewPersistenceError("Failed to fetch tour", err)
	}

	// Validated by the datetime tag above.
	depart, _ := time.Parse(time.DateOnly, req.DepartureDate)
	d := &domain.Departure{
		ID:             uuid.New(),
		TourID:         tourID,
		DepartureDate:  depart,
		AvailableSeats: req.AvailableSeats,
		TotalSeats:     req.TotalSeats,
		PriceOverride:  req.PriceOverride,
		Status:         "upcoming",
		Notes:          req.Notes,
	}
	if req.ReturnDate != nil {
		ret, _ := time.Parse(time.DateOnly, *req.ReturnDate)
		if ret.Before(depart) {
			return nil, domain.NewValidationError("Invalid request",
				[]domain.FieldError{{Field: "returnDate", Rule: "gtefield"}})
		}
		d.ReturnDate = &ret
	}
	if req.Status != nil {
		d.Status = *req.Status
	}
	if err := s.repos.Tours.CreateDeparture(ctx, d); err != nil {
		return nil, domain.NewPersistenceError("Failed to create departure", err)
	}
	return d, nil
}

func (s *adminService) ListPayments(ctx context.Context) ([]domain.Payment, error) {
	out, err := s.repos.Payments.List(ctx, paymentListLimit)
	if err != nil {
		return nil, domain.NewPersistenceError("Failed to fetch payments", err)
	}
	return out, nil
}

// ListSettlements returns journal entries that have not reached settled:
// orphaned gateway orders and captured payments whose booking is unpaid.
func (s *adminService) ListSettlements(ctx context.Context) ([]domain.Settlement, error) {
	out, err := s.repos.Settlements.ListOpen(ctx)
	if err != nil {
		return nil, domain.NewPersistenceError("Failed to fetch settlements", err)
	}
	return out, nil
}
