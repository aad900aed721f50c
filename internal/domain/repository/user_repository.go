package repository

import (
	"context"

	"github.com/oksasatya/securetask/internal/domain/entity"
)

// UserRepository defines the interface for user-related storage operations.
// Create fails with ErrDuplicate when the email is already registered.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
}
