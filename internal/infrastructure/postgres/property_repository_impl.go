package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/property-marketplace/internal/domain/entity"
	"github.com/oksasatya/property-marketplace/internal/domain/errs"
	"github.com/oksasatya/property-marketplace/internal/domain/repository"
)

type PropertyRepository struct {
	pool *pgxpool.Pool
}

func NewPropertyRepository(pool *pgxpool.Pool) *PropertyRepository {
	return &PropertyRepository{pool: pool}
}

func (r *PropertyRepository) Create(ctx context.Context, p *entity.Property) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO properties (name, image, city_id, price, date_created, active, available)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, p.Name, p.Image, p.Location.ID, p.Price, p.DateCreated, p.Active, p.Available)

	if err := row.Scan(&p.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return errs.Conflict("property name already taken")
		}
		return err
	}
	return nil
}

func (r *PropertyRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Property, error) {
	p := &entity.Property{}
	row := r.pool.QueryRow(ctx, `
		SELECT p.id, p.name, p.image, p.price, p.date_created, p.active, p.available,
		       c.id, c.name, c.min_price
		FROM properties p
		JOIN cities c ON c.id = p.city_id
		WHERE p.id = $1
	`, id)
	if err := row.Scan(&p.ID, &p.Name, &p.Image, &p.Price, &p.DateCreated, &p.Active, &p.Available,
		&p.Location.ID, &p.Location.Name, &p.Location.MinPrice); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NotFound("property not found")
		}
		return nil, err
	}
	return p, nil
}

func (r *PropertyRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM properties
			WHERE name = $1 AND active = true AND available = true
		)
	`, name).Scan(&exists)
	return exists, err
}

func (r *PropertyRepository) Find(ctx context.Context, minPrice, maxPrice *float64, limit, offset int) ([]entity.Property, int64, error) {
	const filter = `
		FROM properties p
		JOIN cities c ON c.id = p.city_id
		WHERE p.active = true AND p.available = true
		  AND ($1::numeric IS NULL OR p.price >= $1)
		  AND ($2::numeric IS NULL OR p.price <= $2)
	`

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) `+filter, minPrice, maxPrice).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT p.id, p.name, p.image, p.price, p.date_created, p.active, p.available,
		       c.id, c.name, c.min_price
	`+filter+`
		ORDER BY p.date_created DESC, p.name
		LIMIT $3 OFFSET $4
	`, minPrice, maxPrice, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []entity.Property
	for rows.Next() {
		var p entity.Property
		if err := rows.Scan(&p.ID, &p.Name, &p.Image, &p.Price, &p.DateCreated, &p.Active, &p.Available,
			&p.Location.ID, &p.Location.Name, &p.Location.MinPrice); err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

func (r *PropertyRepository) UpdateImage(ctx context.Context, id uuid.UUID, image string) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE properties SET image = $1 WHERE id = $2
	`, image, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return errs.NotFound("property not found")
	}
	return nil
}

func (r *PropertyRepository) DeleteStaleBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.pool.Exec(ctx, `
		DELETE FROM properties
		WHERE active = false AND date_created < $1
	`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected(), nil
}

var _ repository.PropertyRepository = (*PropertyRepository)(nil)
