package ports

import (
	"context"

	"github.com/storefront/shop-api/internal/core/domain"
)

// RegisterInput is the already-validated registration payload.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// AuthResult pairs an account with a freshly issued token.
type AuthResult struct {
	User  *domain.User
	Token string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, username, password string) (*AuthResult, error)
}

// TokenIssuer signs identities into bearer tokens.
type TokenIssuer interface {
	Issue(id domain.Identity) (string, error)
}

// TokenVerifier decodes bearer tokens. Implementations must not perform I/O.
type TokenVerifier interface {
	Verify(token string) (domain.Identity, error)
}
