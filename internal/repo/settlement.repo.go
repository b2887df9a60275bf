package repo

import (
	"context"
	"database/sql"
	"time"

	"yatra-booking/internal/domain"
)

// SettlementRepo is the journal of the two-phase payment/booking update.
type SettlementRepo interface {
	// Record upserts the entry for s.GatewayOrderID, overwriting phase and ids.
	Record(ctx context.Context, s *domain.Settlement) error
	// Fail stores the error from a failed attempt and bumps attempts.
	Fail(ctx context.Context, orderID string, cause string) error
	Advance(ctx context.Context, orderID string, phase domain.SettlementPhase) error
	Annotate(ctx context.Context, orderID string, note string) error
	// FindByPhase returns entries idle since before olderThan that have
	// failed fewer than maxAttempts times, oldest first.
	FindByPhase(ctx context.Context, phase domain.SettlementPhase, olderThan time.Time, maxAttempts, limit int) ([]domain.Settlement, error)
	ListOpen(ctx context.Context) ([]domain.Settlement, error)
}

type settlementRepo struct {
	db *sql.DB
}

func NewSettlementRepo(db *sql.DB) SettlementRepo {
	return &settlementRepo{db: db}
}

const settlementColumns = `gateway_order_id, payment_id, booking_id, phase, attempts, last_error, note, created_at, updated_at`

func scanSettlement(row scanner) (*domain.Settlement, error) {
	var s domain.Settlement
	err := row.Scan(
		&s.GatewayOrderID,
		&s.PaymentID,
		&s.BookingID,
		&s.Phase,
		&s.Attempts,
		&s.LastError,
		&s.Note,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func (r *settlementRepo) Record(ctx context.Context, s *domain.Settlement) error {
	query := `
		INSERT INTO settlements (gateway_order_id, payment_id, booking_id, phase, last_error, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (gateway_order_id) DO UPDATE
		SET payment_id = COALESCE(EXCLUDED.payment_id, settlements.payment_id),
		    booking_id = COALESCE(EXCLUDED.booking_id, settlements.booking_id),
		    phase = EXCLUDED.phase,
		    last_error = EXCLUDED.last_error,
		    updated_at = now()
	`
	_, err := r.db.ExecContext(ctx, query,
		s.GatewayOrderID, s.PaymentID, s.BookingID, string(s.Phase), s.LastError, s.Note,
	)
	return err
}

func (r *settlementRepo) Fail(ctx context.Context, orderID string, cause string) error {
	return r.exec(ctx, `
		UPDATE settlements
		SET attempts = attempts + 1,
		    last_error = $2,
		    updated_at = now()
		WHERE gateway_order_id = $1`, orderID, cause)
}

func (r *settlementRepo) Advance(ctx context.Context, orderID string, phase domain.SettlementPhase) error {
	return r.exec(ctx, `
		UPDATE settlements
		SET phase = $2,
		    last_error = NULL,
		    updated_at = now()
		WHERE gateway_order_id = $1`, orderID, string(phase))
}

func (r *settlementRepo) Annotate(ctx context.Context, orderID string, note string) error {
	return r.exec(ctx, `
		UPDATE settlements
		SET note = $2,
		    updated_at = now()
		WHERE gateway_order_id = $1`, orderID, note)
}

func (r *settlementRepo) FindByPhase(ctx context.Context, phase domain.SettlementPhase, olderThan time.Time, maxAttempts, limit int) ([]domain.Settlement, error) {
	query := `SELECT ` + settlementColumns + ` FROM settlements
		WHERE phase = $1 AND updated_at < $2 AND attempts < $3
		ORDER BY updated_at
		LIMIT $4`
	return r.list(ctx, query, string(phase), olderThan, maxAttempts, limit)
}

func (r *settlementRepo) ListOpen(ctx context.Context) ([]domain.Settlement, error) {
	query := `SELECT ` + settlementColumns + ` FROM settlements
		WHERE phase <> $1
		ORDER BY updated_at DESC`
	return r.list(ctx, query, string(domain.PhaseSettled))
}

func (r *settlementRepo) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *settlementRepo) list(ctx context.Context, query string, args ...any) ([]domain.Settlement, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Settlement{}
	for rows.Next() {
		s, err := scanSettlement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}
