package repo

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"yatra-booking/internal/domain"
)

type AdminRepo interface {
	CreateAdmin(ctx context.Context, admin *domain.Admin) error
	FindByUsername(ctx context.Context, username string) (*domain.Admin, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Admin, error)
}

type adminRepo struct {
	db *sql.DB
}

func NewAdminRepo(db *sql.DB) AdminRepo {
	return &adminRepo{db: db}
}

const adminColumns = `id, username, password_hash, name, is_active, created_at`

func scanAdmin(row scanner) (*domain.Admin, error) {
	var a domain.Admin
	if err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.Name, &a.IsActive, &a.CreatedAt); err != nil {
		return nil, notFound(err)
	}
	return &a, nil
}

func (r *adminRepo) CreateAdmin(ctx context.Context, a *domain.Admin) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO admins (id, username, password_hash, name, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.Username, a.PasswordHash, a.Name, a.IsActive, a.CreatedAt,
	)
	return err
}

func (r *adminRepo) FindByUsername(ctx context.Context, username string) (*domain.Admin, error) {
	return scanAdmin(r.db.QueryRowContext(ctx, `SELECT `+adminColumns+` FROM admins WHERE username = $1`, username))
}

func (r *adminRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Admin, error) {
	return scanAdmin(r.db.QueryRowContext(ctx, `SELECT `+adminColumns+` FROM admins WHERE id = $1`, id))
}
