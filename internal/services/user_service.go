package services

import (
	"context"
	"fmt"

	"jurnal/internal/apperrors"
	"jurnal/internal/models"
	"jurnal/internal/repositories"

	"github.com/rs/zerolog"
)

// ProfileInput carries the editable profile fields of a user.
type ProfileInput struct {
	FullName string
	Email    string
	Bio      string
}

// UserService handles account management after signup.
type UserService struct {
	repo repositories.UserRepository
	log  zerolog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(repo repositories.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{
		repo: repo,
		log:  log,
	}
}

// GetUserByID retrieves a single user by its ID.
func (s *UserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}

// GetUserByUsername retrieves a single user by username.
func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.repo.GetByUsername(ctx, username)
}

// ListUsers pages through users matching filter.
func (s *UserService) ListUsers(ctx context.Context, filter repositories.UserFilter, req models.PageRequest) (*models.Page[models.User], error) {
	if filter.Role != "" && !filter.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, filter.Role)
	}
	return s.repo.List(ctx, filter, req)
}

// CountUsers returns the number of accounts.
func (s *UserService) CountUsers(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// UpdateProfile overwrites the profile fields of a user. A changed email must
// not belong to another account.
func (s *UserService) UpdateProfile(ctx context.Context, id string, in ProfileInput) (*models.User, error) {
	var updated *models.User
	err := s.repo.WithTx(ctx, func(repo repositories.UserRepository) error {
		user, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if in.Email != user.Email {
			taken, err := repo.ExistsByEmail(ctx, in.Email)
			if err != nil {
				return err
			}
			if taken {
				return fmt.Errorf("%w: email '%s' already registered", apperrors.ErrConflict, in.Email)
			}
		}
		user.FullName = in.FullName
		user.Email = in.Email
		user.Bio = in.Bio
		if err := repo.Update(ctx, user); err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", id).Msg("Profile updated")
	return updated, nil
}

// UpdateRole assigns a new role to a user.
func (s *UserService) UpdateRole(ctx context.Context, id string, role models.Role) (*models.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", apperrors.ErrValidation, role)
	}
	user, err := s.mutate(ctx, id, func(u *models.User) { u.Role = role })
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", id).Str("role", string(role)).Msg("User role changed")
	return user, nil
}

// ActivateUser re-enables a disabled account.
func (s *UserService) ActivateUser(ctx context.Context, id string) (*models.User, error) {
	return s.setActive(ctx, id, true)
}

// DeactivateUser disables an account; its tokens stop working immediately.
func (s *UserService) DeactivateUser(ctx context.Context, id string) (*models.User, error) {
	return s.setActive(ctx, id, false)
}

func (s *UserService) setActive(ctx context.Context, id string, active bool) (*models.User, error) {
	user, err := s.mutate(ctx, id, func(u *models.User) { u.IsActive = active })
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", id).Bool("active", active).Msg("User active flag changed")
	return user, nil
}

func (s *UserService) mutate(ctx context.Context, id string, apply func(*models.User)) (*models.User, error) {
	var updated *models.User
	err := s.repo.WithTx(ctx, func(repo repositories.UserRepository) error {
		user, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		apply(user)
		if err := repo.Update(ctx, user); err != nil {
			return err
		}
		updated = user
		return nil
	})
	return updated, err
}

// DeleteUser removes a user and all of their articles.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id).Msg("User deleted")
	return nil
}
