package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/oksasatya/property-marketplace/internal/domain/entity"
)

// CityRepository looks up the cities that properties reference.
type CityRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.City, error)
}
