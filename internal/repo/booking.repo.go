package repo

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"yatra-booking/internal/domain"
)

type BookingRepo interface {
	CreateBooking(ctx context.Context, tx *sql.Tx, booking *domain.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	List(ctx context.Context) ([]domain.Booking, error)
	// Settle records a confirmed payment against the booking.
	Settle(ctx context.Context, tx *sql.Tx, id uuid.UUID, paid decimal.Decimal) (*domain.Booking, error)
	UpdateAdmin(ctx context.Context, id uuid.UUID, status *domain.BookingStatus, notes *string) (*domain.Booking, error)
	Count(ctx context.Context) (int, error)
}

type bookingRepo struct {
	db *sql.DB
}

func NewBookingRepo(db *sql.DB) BookingRepo {
	return &bookingRepo{db: db}
}

const bookingColumns = `id, inquiry_id, tour_id, departure_id, customer_name, customer_email, customer_phone,
	number_of_travelers, total_amount, paid_amount, payment_status, booking_status,
	special_requests, admin_notes, created_at, updated_at`

func scanBooking(row scanner) (*domain.Booking, error) {
	var b domain.Booking
	err := row.Scan(
		&b.ID,
		&b.InquiryID,
		&b.TourID,
		&b.DepartureID,
		&b.CustomerName,
		&b.CustomerEmail,
		&b.CustomerPhone,
		&b.NumberOfTravelers,
		&b.TotalAmount,
		&b.PaidAmount,
		&b.PaymentStatus,
		&b.BookingStatus,
		&b.SpecialRequests,
		&b.AdminNotes,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

func (r *bookingRepo) CreateBooking(ctx context.Context, tx *sql.Tx, b *domain.Booking) error {
	query := `INSERT INTO bookings (id, inquiry_id, tour_id, departure_id, customer_name, customer_email,
		customer_phone, number_of_travelers, total_amount, paid_amount, payment_status, booking_status,
		special_requests, admin_notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err := on(r.db, tx).ExecContext(ctx, query,
		b.ID, b.InquiryID, b.TourID, b.DepartureID, b.CustomerName, b.CustomerEmail,
		b.CustomerPhone, b.NumberOfTravelers, b.TotalAmount, b.PaidAmount, b.PaymentStatus, b.BookingStatus,
		b.SpecialRequests, b.AdminNotes, b.CreatedAt, b.UpdatedAt,
	)
	return err
}

func (r *bookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	return scanBooking(r.db.QueryRowContext(ctx, query, id))
}

func (r *bookingRepo) List(ctx context.Context) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+bookingColumns+` FROM bookings ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookings := []domain.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

func (r *bookingRepo) Settle(ctx context.Context, tx *sql.Tx, id uuid.UUID, paid decimal.Decimal) (*domain.Booking, error) {
	query := `
		UPDATE bookings
		SET payment_status = $2,
		    paid_amount = $3,
		    updated_at = now()
		WHERE id = $1
		RETURNING ` + bookingColumns
	return scanBooking(on(r.db, tx).QueryRowContext(ctx, query, id, domain.BookingPaymentCompleted, paid))
}

func (r *bookingRepo) UpdateAdmin(ctx context.Context, id uuid.UUID, status *domain.BookingStatus, notes *string) (*domain.Booking, error) {
	query := `
		UPDATE bookings
		SET booking_status = COALESCE($2, booking_status),
		    admin_notes = COALESCE($3, admin_notes),
		    updated_at = now()
		WHERE id = $1
		RETURNING ` + bookingColumns
	var st *string
	if status != nil {
		v := string(*status)
		st = &v
	}
	return scanBooking(r.db.QueryRowContext(ctx, query, id, st, notes))
}

func (r *bookingRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM bookings`).Scan(&n)
	return n, err
}
