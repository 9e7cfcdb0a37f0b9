package repositories

import (
	"context"

	"jurnal/internal/models"
)

// UserFilter narrows a user listing. Zero values mean "no constraint".
type UserFilter struct {
	Role   models.Role
	Active *bool
	Query  string // substring of full name, username or email
}

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, filter UserFilter, req models.PageRequest) (*models.Page[models.User], error)
	Count(ctx context.Context) (int64, error)
	// WithTx runs fn against a repository bound to a single transaction.
	WithTx(ctx context.Context, fn func(repo UserRepository) error) error
}
