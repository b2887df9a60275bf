package repo

import (
	"context"
	"database/sql"
	"errors"

	"yatra-booking/internal/domain"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// on returns tx when the caller is inside a transaction, otherwise the pool.
func on(db *sql.DB, tx *sql.Tx) DBTX {
	if tx != nil {
		return tx
	}
	return db
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

type Repositories struct {
	Payments     PaymentRepo
	Bookings     BookingRepo
	Settlements  SettlementRepo
	Tours        TourRepo
	Inquiries    InquiryRepo
	Testimonials TestimonialRepo
	Admins       AdminRepo
}

func NewRepositories(db *sql.DB) *Repositories {
	return &Repositories{
		Payments:     NewPaymentRepo(db),
		Bookings:     NewBookingRepo(db),
		Settlements:  NewSettlementRepo(db),
		Tours:        NewTourRepo(db),
		Inquiries:    NewInquiryRepo(db),
		Testimonials: NewTestimonialRepo(db),
		Admins:       NewAdminRepo(db),
	}
}
