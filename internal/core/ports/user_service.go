package ports

import (
	"context"

	"github.com/storefront/shop-api/internal/core/domain"
)

// UpdateUserInput is the already-validated partial user payload. Password is
// plaintext here and is hashed by the service.
type UpdateUserInput struct {
	Username *string
	Email    *string
	Password *string
}

// UserService covers account management after registration.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
