package repo

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"yatra-booking/internal/domain"
)

type TestimonialRepo interface {
	CreateTestimonial(ctx context.Context, t *domain.Testimonial) error
	List(ctx context.Context) ([]domain.Testimonial, error)
	ListFeatured(ctx context.Context) ([]domain.Testimonial, error)
	UpdateFlags(ctx context.Context, id uuid.UUID, approved, featured *bool) (*domain.Testimonial, error)
	Count(ctx context.Context) (int, error)
}

type testimonialRepo struct {
	db *sql.DB
}

func NewTestimonialRepo(db *sql.DB) TestimonialRepo {
	return &testimonialRepo{db: db}
}

const testimonialColumns = `id, tour_id, tour_name, name, location, rating, review, photo_url, year,
	is_approved, is_featured, created_at`

func scanTestimonial(row scanner) (*domain.Testimonial, error) {
	var t domain.Testimonial
	err := row.Scan(
		&t.ID,
		&t.TourID,
		&t.TourName,
		&t.Name,
		&t.Location,
		&t.Rating,
		&t.Review,
		&t.PhotoURL,
		&t.Year,
		&t.IsApproved,
		&t.IsFeatured,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

func (r *testimonialRepo) CreateTestimonial(ctx context.Context, t *domain.Testimonial) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO testimonials (id, tour_id, tour_name, name, location, rating, review, photo_url, year,
			is_approved, is_featured, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		t.ID, t.TourID, t.TourName, t.Name, t.Location, t.Rating, t.Review, t.PhotoURL, t.Year,
		t.IsApproved, t.IsFeatured, t.CreatedAt,
	)
	return err
}

func (r *testimonialRepo) List(ctx context.Context) ([]domain.Testimonial, error) {
	return r.list(ctx, `SELECT `+testimonialColumns+` FROM testimonials ORDER BY created_at DESC`)
}

func (r *testimonialRepo) ListFeatured(ctx context.Context) ([]domain.Testimonial, error) {
	return r.list(ctx, `SELECT `+testimonialColumns+` FROM testimonials
		WHERE is_approved AND is_featured
		ORDER BY created_at DESC`)
}

func (r *testimonialRepo) UpdateFlags(ctx context.Context, id uuid.UUID, approved, featured *bool) (*domain.Testimonial, error) {
	query := `
		UPDATE testimonials
		SET is_approved = COALESCE($2, is_approved),
		    is_featured = COALESCE($3, is_featured)
		WHERE id = $1
		RETURNING ` + testimonialColumns
	return scanTestimonial(r.db.QueryRowContext(ctx, query, id, approved, featured))
}

func (r *testimonialRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM testimonials`).Scan(&n)
	return n, err
}

func (r *testimonialRepo) list(ctx context.Context, query string) ([]domain.Testimonial, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Testimonial{}
	for rows.Next() {
		t, err := scanTestimonial(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}
