package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"yatra-booking/internal/domain"
)

type PaymentRepo interface {
	// tx may be nil; the statement then runs on the pool.
	CreatePayment(ctx context.Context, tx *sql.Tx, payment *domain.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error)
	FindByGatewayOrderID(ctx context.Context, orderID string) (*domain.Payment, error)
	// MarkCaptured moves the payment for orderID to captured and returns the
	// updated row. Repeating it with the same ids is a no-op in effect.
	MarkCaptured(ctx context.Context, tx *sql.Tx, orderID, paymentID, signature string) (*domain.Payment, error)
	List(ctx context.Context, limit int) ([]domain.Payment, error)
	FindPendingBefore(ctx context.Context, before time.Time, limit int) ([]domain.Payment, error)
	CountByStatus(ctx context.Context, status domain.PaymentStatus) (int, error)
}

type paymentRepo struct {
	db *sql.DB
}

func NewPaymentRepo(db *sql.DB) PaymentRepo {
	return &paymentRepo{db: db}
}

const paymentColumns = `id, booking_id, gateway_order_id, gateway_payment_id, gateway_signature,
	amount, currency, status, customer_email, customer_phone, receipt, notes, created_at, updated_at`

func scanPayment(row scanner) (*domain.Payment, error) {
	var p domain.Payment
	err := row.Scan(
		&p.ID,
		&p.BookingID,
		&p.GatewayOrderID,
		&p.GatewayPaymentID,
		&p.GatewaySignature,
		&p.Amount,
		&p.Currency,
		&p.Status,
		&p.CustomerEmail,
		&p.CustomerPhone,
		&p.Receipt,
		&p.Notes,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (r *paymentRepo) CreatePayment(ctx context.Context, tx *sql.Tx, payment *domain.Payment) error {
	query := `INSERT INTO payments (id, booking_id, gateway_order_id, amount, currency, status,
		customer_email, customer_phone, receipt, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := on(r.db, tx).ExecContext(
		ctx, query,
		payment.ID, payment.BookingID, payment.GatewayOrderID, payment.Amount, payment.Currency, payment.Status,
		payment.CustomerEmail, payment.CustomerPhone, payment.Receipt, payment.Notes, payment.CreatedAt, payment.UpdatedAt,
	)
	return err
}

func (r *paymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	return scanPayment(r.db.QueryRowContext(ctx, query, id))
}

func (r *paymentRepo) FindByGatewayOrderID(ctx context.Context, orderID string) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE gateway_order_id = $1`
	return scanPayment(r.db.QueryRowContext(ctx, query, orderID))
}

func (r *paymentRepo) MarkCaptured(ctx context.Context, tx *sql.Tx, orderID, paymentID, signature string) (*domain.Payment, error) {
	query := `
		UPDATE payments
		SET status = $2,
		    gateway_payment_id = $3,
		    gateway_signature = $4,
		    updated_at = now()
		WHERE gateway_order_id = $1
		RETURNING ` + paymentColumns
	return scanPayment(on(r.db, tx).QueryRowContext(ctx, query, orderID, domain.PaymentCaptured, paymentID, signature))
}

func (r *paymentRepo) List(ctx context.Context, limit int) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments ORDER BY created_at DESC LIMIT $1`
	return r.list(ctx, query, limit)
}

// FindPendingBefore lists checkouts that were opened but never verified.
func (r *paymentRepo) FindPendingBefore(ctx context.Context, before time.Time, limit int) ([]domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + ` FROM payments
		WHERE status = $1
		AND created_at < $2
		ORDER BY created_at
		LIMIT $3
	`
	return r.list(ctx, query, domain.PaymentPending, before, limit)
}

func (r *paymentRepo) CountByStatus(ctx context.Context, status domain.PaymentStatus) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM payments WHERE status = $1`, status).Scan(&n)
	return n, err
}

func (r *paymentRepo) list(ctx context.Context, query string, args ...any) ([]domain.Payment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := []domain.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}
