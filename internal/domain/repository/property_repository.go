package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/property-marketplace/internal/domain/entity"
)

// PropertyRepository stores listings. Create assigns the id and enforces
// name uniqueness at the storage level; ExistsByName is the best-effort
// pre-check over active+available rows.
type PropertyRepository interface {
	Create(ctx context.Context, p *entity.Property) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Property, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	// Find returns one page of active+available listings within the given
	// price bounds (either bound may be nil) plus the total match count.
	Find(ctx context.Context, minPrice, maxPrice *float64, limit, offset int) ([]entity.Property, int64, error)
	UpdateImage(ctx context.Context, id uuid.UUID, image string) error
	// DeleteStaleBefore removes inactive listings created before cutoff
	// and returns how many rows went away.
	DeleteStaleBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
