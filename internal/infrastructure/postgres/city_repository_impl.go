package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/property-marketplace/internal/domain/entity"
	"github.com/oksasatya/property-marketplace/internal/domain/errs"
	"github.com/oksasatya/property-marketplace/internal/domain/repository"
)

type CityRepository struct {
	pool *pgxpool.Pool
}

func NewCityRepository(pool *pgxpool.Pool) *CityRepository {
	return &CityRepository{pool: pool}
}

func (r *CityRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.City, error) {
	c := &entity.City{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, min_price
		FROM cities
		WHERE id = $1
	`, id)
	if err := row.Scan(&c.ID, &c.Name, &c.MinPrice); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NotFound("city not found")
		}
		return nil, err
	}
	return c, nil
}

var _ repository.CityRepository = (*CityRepository)(nil)
