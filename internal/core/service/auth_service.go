package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/storefront/shop-api/internal/core/domain"
	"github.com/storefront/shop-api/internal/core/ports"
)

// AuthService implements registration and login.
type AuthService struct {
	repo   ports.UserRepository
	tokens ports.TokenIssuer
	events ports.EventSink
	log    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens ports.TokenIssuer, events ports.EventSink, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, events: events, log: log}
}

// Register creates a non-admin account and returns it with a token.
// Both username and email must be unused.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	if err := s.ensureFree(ctx, in.Username, in.Email); err != nil {
		return nil, err
	}

	created, err := s.create(ctx, in.Username, in.Email, in.Password, false)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(domain.Identity{SubjectID: created.ID, IsAdmin: created.IsAdmin})
	if err != nil {
		return nil, err
	}

	s.events.Enqueue(domain.NewEvent(domain.EventUserRegistered, created.ID, map[string]any{
		"username": created.Username,
		"email":    created.Email,
	}))
	s.log.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("user registered")

	return &ports.AuthResult{User: created, Token: token}, nil
}

// Login checks credentials. An unknown username and a wrong password are
// indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.AuthResult, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(domain.Identity{SubjectID: user.ID, IsAdmin: user.IsAdmin})
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{User: user, Token: token}, nil
}

// EnsureAdmin seeds an admin account unless the username is already taken.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, email, password string) error {
	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	created, err := s.create(ctx, username, email, password, true)
	if err != nil {
		return err
	}
	s.log.Info().Str("user_id", created.ID).Str("username", created.Username).Msg("admin account seeded")
	return nil
}

func (s *AuthService) ensureFree(ctx context.Context, username, email string) error {
	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}
	return nil
}

func (s *AuthService) create(ctx context.Context, username, email, password string, admin bool) (*domain.User, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return s.repo.Create(ctx, &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsAdmin:      admin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

// hashPassword bcrypt-hashes password. bcrypt only accepts up to 72 bytes.
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", domain.NewValidationError("password", "password length must be less than or equal to 72 characters long")
		}
		return "", err
	}
	return string(hash), nil
}
