package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/oksasatya/property-marketplace/internal/domain/entity"
)

// UserRepository is the user directory consumed by the core. Create
// assigns the id and enforces email uniqueness at the storage level.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
