package user

import (
	"context"

	"github.com/fitpulse/gym-api/internal/models"
)

// Repository is the credential store contract. Implementations return
// httperr business codes for the expected failures:
//
//	user_not_found — id or email does not resolve
//	email_taken    — Create hit the unique email index
type Repository interface {
	FindByEmail(
		ctx context.Context,
		email string,
	) (*models.User, error)

	FindByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	Create(
		ctx context.Context,
		u *models.User,
	) error

	Update(
		ctx context.Context,
		u *models.User,
	) error

	// UpdateName renames the user and, when a trainer profile exists,
	// its denormalized name copy, in one transaction.
	UpdateName(
		ctx context.Context,
		id uint,
		name string,
	) (*models.User, error)
}
