package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/property-marketplace/internal/domain/entity"
	"github.com/oksasatya/property-marketplace/internal/domain/repository"
	"github.com/oksasatya/property-marketplace/pkg/helpers"
)

// CachedCityRepository is a redis read-through cache in front of the city
// lookup. Cities change rarely, so misses are only taken once per TTL.
// Cache failures fall back to the inner repository.
type CachedCityRepository struct {
	inner repository.CityRepository
	rdb   *redis.Client
	ttl   time.Duration
}

func NewCachedCityRepository(inner repository.CityRepository, rdb *redis.Client, ttl time.Duration) *CachedCityRepository {
	return &CachedCityRepository{inner: inner, rdb: rdb, ttl: ttl}
}

func cityKey(id uuid.UUID) string { return "city:" + id.String() }

func (r *CachedCityRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.City, error) {
	if r.rdb != nil {
		var cached entity.City
		if ok, err := helpers.RedisGetJSON(ctx, r.rdb, cityKey(id), &cached); err == nil && ok {
			return &cached, nil
		}
	}
	c, err := r.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.rdb != nil {
		_ = helpers.RedisSetJSON(ctx, r.rdb, cityKey(id), c, r.ttl)
	}
	return c, nil
}

var _ repository.CityRepository = (*CachedCityRepository)(nil)
