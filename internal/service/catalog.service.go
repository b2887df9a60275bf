package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"yatra-booking/internal/domain"
	"yatra-booking/internal/repo"
)

// CatalogService serves the public storefront: tours, quotes, inquiries
// and testimonials.
type CatalogService interface {
	ListTours(ctx context.Context) ([]domain.Tour, error)
	GetTour(ctx context.Context, slug string) (*domain.Tour, error)
	ListDepartures(ctx context.Context, slug string) ([]domain.Departure, error)
	Quote(ctx context.Context, slug string, travelers int) (*Quote, error)

	CreateInquiry(ctx context.Context, req CreateInquiryRequest) (*domain.Inquiry, error)
	FeaturedTestimonials(ctx context.Context) ([]domain.Testimonial, error)
	SubmitTestimonial(ctx context.Context, req CreateTestimonialRequest) (*domain.Testimonial, error)
}

type catalogService struct {
	tours        repo.TourRepo
	inquiries    repo.InquiryRepo
	testimonials repo.TestimonialRepo
	logger       *zap.Logger
}

func NewCatalogService(tours repo.TourRepo, inquiries repo.InquiryRepo, testimonials repo.TestimonialRepo, logger *zap.Logger) CatalogService {
	return &catalogService{
		tours:        tours,
		inquiries:    inquiries,
		testimonials: testimonials,
		logger:       logger,
	}
}

func (s *catalogService) ListTours(ctx context.Context) ([]domain.Tour, error) {
	tours, err := s.tours.ListActive(ctx)
	if err != nil {
		s.logger.Error("tour listing failed", zap.Error(err))
		return nil, domain.NewPersistenceError("Failed to fetch tours", err)
	}
	return tours, nil
}

func (s *catalogService) GetTour(ctx context.Context, slug string) (*domain.Tour, error) {
	t, err := s.tours.FindBySlug(ctx, slug)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NewNotFound("Tour not found")
	}
	if err != nil {
		s.logger.Error("tour lookup failed", zap.Error(err), zap.String("slug", slug))
		return nil, domain.NewPersistenceError("Failed to fetch tour", err)
	}
	return t, nil
}

func (s *catalogService) ListDepartures(ctx context.Context, slug string) ([]domain.Departure, error) {
	t, err := s.GetTour(ctx, slug)
	if err != nil {
		return nil, err
	}
	deps, err := s.tours.ListDepartures(ctx, t.ID)
	if err != nil {
		return nil, domain.NewPersistenceError("Failed to fetch departures", err)
	}
	return deps, nil
}

func (s *catalogService) Quote(ctx context.Context, slug string, travelers int) (*Quote, error) {
	if travelers < 1 {
		return nil, domain.NewValidationError("Invalid request",
			[]domain.FieldError{{Field: "travelers", Rule: "gte"}})
	}
	t, err := s.GetTour(ctx, slug)
	if err != nil {
		return nil, err
	}
	total := t.Total(travelers)
	return &Quote{
		Total:    total,
		Deposit:  domain.DepositFor(t.Slug, total),
		Currency: domain.CurrencyINR,
	}, nil
}

func (s *catalogService) CreateInquiry(ctx context.Context, req CreateInquiryRequest) (*domain.Inquiry, error) {
	if err := check(req); err != nil {
		return nil, err
	}
	travelers := 1
	if req.NumberOfTravelers != nil {
		travelers = *req.NumberOfTravelers
	}
	source := domain.InquirySourceSite
	if req.Source != nil && *req.Source != "" {
		source = *req.Source
	}
	now := time.Now().UTC()
	inq := &domain.Inquiry{
		ID:                uuid.New(),
		TourID:            req.TourID,
		TourName:          req.TourName,
		Name:              req.Name,
		Email:             req.Email,
		Phone:             req.Phone,
		NumberOfTravelers: travelers,
		PreferredDate:     req.PreferredDate,
		Message:           req.Message,
		Source:            source,
		Status:            domain.InquiryNew,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.inquiries.CreateInquiry(ctx, inq); err != nil {
		s.logger.Error("inquiry insert failed", zap.Error(err))
		return nil, domain.NewPersistenceError("Failed to submit inquiry", err)
	}
	return inq, nil
}

func (s *catalogService) FeaturedTestimonials(ctx context.Context) ([]domain.Testimonial, error) {
	ts, err := s.testimonials.ListFeatured(ctx)
	if err != nil {
		return nil, domain.NewPersistenceError("Failed to fetch testimonials", err)
	}
	return ts, nil
}

// SubmitTestimonial stores a visitor review. It stays hidden until an
// admin approves it.
func (s *catalogService) SubmitTestimonial(ctx context.Context, req CreateTestimonialRequest) (*domain.Testimonial, error) {
	if err := check(req); err != nil {
		return nil, err
	}
	t := &domain.Testimonial{
		ID:        uuid.New(),
		TourID:    req.TourID,
		TourName:  req.TourName,
		Name:      req.Name,
		Location:  req.Location,
		Rating:    req.Rating,
		Review:    req.Review,
		PhotoURL:  req.PhotoURL,
		Year:      req.Year,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.testimonials.CreateTestimonial(ctx, t); err != nil {
		s.logger.Error("testimonial insert failed", zap.Error(err))
		return nil, domain.NewPersistenceError("Failed to submit testimonial", err)
	}
	return t, nil
}
