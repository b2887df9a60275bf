package repo

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"yatra-booking/internal/domain"
)

type TourRepo interface {
	ListActive(ctx context.Context) ([]domain.Tour, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Tour, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Tour, error)
	CreateTour(ctx context.Context, tour *domain.Tour) error
	UpdateTour(ctx context.Context, tour *domain.Tour) error
	Count(ctx context.Context) (int, error)

	ListDepartures(ctx context.Context, tourID uuid.UUID) ([]domain.Departure, error)
	CreateDeparture(ctx context.Context, d *domain.Departure) error
}

type tourRepo struct {
	db *sql.DB
	// text[] columns go through pgx's type map; database/sql has no array support.
	types *pgtype.Map
}

func NewTourRepo(db *sql.DB) TourRepo {
	return &tourRepo{db: db, types: pgtype.NewMap()}
}

const tourColumns = `id, name, slug, short_description, description, duration, category, highlights,
	price_per_person, original_price, max_altitude, difficulty, image_url, gallery_images,
	inclusions, exclusions, itinerary, requirements, cancellation_policy,
	is_active, is_featured, is_premium, sort_order`

func (r *tourRepo) scanTour(row scanner) (*domain.Tour, error) {
	var t domain.Tour
	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Slug,
		&t.ShortDescription,
		&t.Description,
		&t.Duration,
		&t.Category,
		r.types.SQLScanner(&t.Highlights),
		&t.PricePerPerson,
		&t.OriginalPrice,
		&t.MaxAltitude,
		&t.Difficulty,
		&t.ImageURL,
		r.types.SQLScanner(&t.GalleryImages),
		r.types.SQLScanner(&t.Inclusions),
		r.types.SQLScanner(&t.Exclusions),
		&t.Itinerary,
		r.types.SQLScanner(&t.Requirements),
		&t.CancellationPolicy,
		&t.IsActive,
		&t.IsFeatured,
		&t.IsPremium,
		&t.SortOrder,
	)
	if err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

func (r *tourRepo) ListActive(ctx context.Context) ([]domain.Tour, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+tourColumns+` FROM tours WHERE is_active ORDER BY sort_order, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tours := []domain.Tour{}
	for rows.Next() {
		t, err := r.scanTour(rows)
		if err != nil {
			return nil, err
		}
		tours = append(tours, *t)
	}
	return tours, rows.Err()
}

func (r *tourRepo) FindBySlug(ctx context.Context, slug string) (*domain.Tour, error) {
	return r.scanTour(r.db.QueryRowContext(ctx, `SELECT `+tourColumns+` FROM tours WHERE slug = $1`, slug))
}

func (r *tourRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Tour, error) {
	return r.scanTour(r.db.QueryRowContext(ctx, `SELECT `+tourColumns+` FROM tours WHERE id = $1`, id))
}

func (r *tourRepo) CreateTour(ctx context.Context, t *domain.Tour) error {
	query := `INSERT INTO tours (` + tourColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)`
	_, err := r.db.ExecContext(ctx, query, r.tourArgs(t)...)
	return err
}

func (r *tourRepo) UpdateTour(ctx context.Context, t *domain.Tour) error {
	query := `
		UPDATE tours
		SET name = $2, slug = $3, short_description = $4, description = $5, duration = $6,
		    category = $7, highlights = $8, price_per_person = $9, original_price = $10,
		    max_altitude = $11, difficulty = $12, image_url = $13, gallery_images = $14,
		    inclusions = $15, exclusions = $16, itinerary = $17, requirements = $18,
		    cancellation_policy = $19, is_active = $20, is_featured = $21, is_premium = $22,
		    sort_order = $23
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, r.tourArgs(t)...)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *tourRepo) tourArgs(t *domain.Tour) []any {
	return []any{
		t.ID, t.Name, t.Slug, t.ShortDescription, t.Description, t.Duration, t.Category,
		nonNil(t.Highlights), t.PricePerPerson, t.OriginalPrice, t.MaxAltitude, t.Difficulty,
		t.ImageURL, nonNil(t.GalleryImages), nonNil(t.Inclusions), nonNil(t.Exclusions),
		t.Itinerary, nonNil(t.Requirements), t.CancellationPolicy,
		t.IsActive, t.IsFeatured, t.IsPremium, t.SortOrder,
	}
}

func (r *tourRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM tours`).Scan(&n)
	return n, err
}

func (r *tourRepo) ListDepartures(ctx context.Context, tourID uuid.UUID) ([]domain.Departure, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, tour_id, departure_date, return_date, available_seats, total_seats, price_override, status, notes
		FROM departures
		WHERE tour_id = $1
		ORDER BY departure_date`, tourID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	departures := []domain.Departure{}
	for rows.Next() {
		var d domain.Departure
		if err := rows.Scan(
			&d.ID,
			&d.TourID,
			&d.DepartureDate,
			&d.ReturnDate,
			&d.AvailableSeats,
			&d.TotalSeats,
			&d.PriceOverride,
			&d.Status,
			&d.Notes,
		); err != nil {
			return nil, err
		}
		departures = append(departures, d)
	}
	return departures, rows.Err()
}

func (r *tourRepo) CreateDeparture(ctx context.Context, d *domain.Departure) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO departures (id, tour_id, departure_date, return_date, available_seats, total_seats, price_override, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		d.ID, d.TourID, d.DepartureDate, d.ReturnDate, d.AvailableSeats, d.TotalSeats, d.PriceOverride, d.Status, d.Notes,
	)
	return err
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
