package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-credential-service/internal/domain/entity"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// UserRepository defines the persistence contract for users.
// Create must enforce email uniqueness atomically and report ErrDuplicateEmail;
// callers never check-then-insert.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
