package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/storefront/shop-api/internal/core/domain"
	"github.com/storefront/shop-api/internal/core/ports"
)

// UserService implements account management. Authorization is enforced by the
// caller before any method runs.
type UserService struct {
	repo   ports.UserRepository
	events ports.EventSink
	log    zerolog.Logger
}

func NewUserService(repo ports.UserRepository, events ports.EventSink, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, events: events, log: log}
}

func (s *UserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.FindByID(ctx, id)
}

// Update applies only the supplied fields. A new password is hashed before it
// reaches the repository; a username or email owned by another account is
// rejected with domain.ErrUserExists.
func (s *UserService) Update(ctx context.Context, id string, in ports.UpdateUserInput) (*domain.User, error) {
	var patch ports.UserPatch

	// A missing user is reported before any uniqueness conflict.
	if in.Username != nil || in.Email != nil {
		if _, err := s.repo.FindByID(ctx, id); err != nil {
			return nil, err
		}
	}

	if in.Username != nil {
		if err := s.ensureNotTaken(ctx, id, s.repo.FindByUsername, *in.Username); err != nil {
			return nil, err
		}
		patch.Username = in.Username
	}
	if in.Email != nil {
		if err := s.ensureNotTaken(ctx, id, s.repo.FindByEmail, *in.Email); err != nil {
			return nil, err
		}
		patch.Email = in.Email
	}
	if in.Password != nil {
		hash, err := hashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		patch.PasswordHash = &hash
	}

	if patch.Empty() {
		return s.repo.FindByID(ctx, id)
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.events.Enqueue(domain.NewEvent(domain.EventUserUpdated, updated.ID, map[string]any{
		"username":         updated.Username,
		"email":            updated.Email,
		"password_changed": patch.PasswordHash != nil,
	}))
	s.log.Info().Str("user_id", updated.ID).Msg("user updated")

	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.events.Enqueue(domain.NewEvent(domain.EventUserDeleted, id, nil))
	s.log.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

func (s *UserService) ensureNotTaken(
	ctx context.Context,
	id string,
	find func(context.Context, string) (*domain.User, error),
	value string,
) error {
	owner, err := find(ctx, value)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		return err
	}
	if owner.ID != id {
		return domain.ErrUserExists
	}
	return nil
}
