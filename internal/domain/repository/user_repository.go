package repository

import (
	"context"

	"github.com/kosman/kosman-api/internal/domain/entity"
)

// UserRepository defines the persistence port for operator accounts.
type UserRepository interface {
	// Create returns domain.ErrConflict when the email is already registered.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
