package ports

import (
	"context"

	"github.com/storefront/shop-api/internal/core/domain"
)

// UserPatch carries a partial user update. Nil fields are left untouched.
type UserPatch struct {
	Username     *string
	Email        *string
	PasswordHash *string
}

// Empty reports whether the patch changes nothing.
func (p UserPatch) Empty() bool {
	return p.Username == nil && p.Email == nil && p.PasswordHash == nil
}

// UserRepository defines the persistence operations for user accounts.
// Lookups by id return domain.ErrUserNotFound (wrapping domain.ErrMalformedID
// when the id has the wrong shape).
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// Update applies patch and returns the stored document after the update.
	Update(ctx context.Context, id string, patch UserPatch) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
