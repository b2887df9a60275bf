package repo

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"yatra-booking/internal/domain"
)

type InquiryRepo interface {
	CreateInquiry(ctx context.Context, inquiry *domain.Inquiry) error
	List(ctx context.Context) ([]domain.Inquiry, error)
	UpdateInquiry(ctx context.Context, id uuid.UUID, status, adminNotes *string) (*domain.Inquiry, error)
	CountByStatus(ctx context.Context, status string) (int, error)
	Count(ctx context.Context) (int, error)
}

type inquiryRepo struct {
	db *sql.DB
}

func NewInquiryRepo(db *sql.DB) InquiryRepo {
	return &inquiryRepo{db: db}
}

const inquiryColumns = `id, tour_id, tour_name, name, email, phone, number_of_travelers, preferred_date,
	message, source, status, admin_notes, created_at, updated_at`

func scanInquiry(row scanner) (*domain.Inquiry, error) {
	var i domain.Inquiry
	err := row.Scan(
		&i.ID,
		&i.TourID,
		&i.TourName,
		&i.Name,
		&i.Email,
		&i.Phone,
		&i.NumberOfTravelers,
		&i.PreferredDate,
		&i.Message,
		&i.Source,
		&i.Status,
		&i.AdminNotes,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return &i, nil
}

func (r *inquiryRepo) CreateInquiry(ctx context.Context, i *domain.Inquiry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO inquiries (id, tour_id, tour_name, name, email, phone, number_of_travelers,
			preferred_date, message, source, status, admin_notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		i.ID, i.TourID, i.TourName, i.Name, i.Email, i.Phone, i.NumberOfTravelers,
		i.PreferredDate, i.Message, i.Source, i.Status, i.AdminNotes, i.CreatedAt, i.UpdatedAt,
	)
	return err
}

func (r *inquiryRepo) List(ctx context.Context) ([]domain.Inquiry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+inquiryColumns+` FROM inquiries ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Inquiry{}
	for rows.Next() {
		i, err := scanInquiry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *i)
	}
	return out, rows.Err()
}

func (r *inquiryRepo) UpdateInquiry(ctx context.Context, id uuid.UUID, status, adminNotes *string) (*domain.Inquiry, error) {
	query := `
		UPDATE inquiries
		SET status = COALESCE($2, status),
		    admin_notes = COALESCE($3, admin_notes),
		    updated_at = now()
		WHERE id = $1
		RETURNING ` + inquiryColumns
	return scanInquiry(r.db.QueryRowContext(ctx, query, id, status, adminNotes))
}

func (r *inquiryRepo) CountByStatus(ctx context.Context, status string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM inquiries WHERE status = $1`, status).Scan(&n)
	return n, err
}

func (r *inquiryRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM inquiries`).Scan(&n)
	return n, err
}
