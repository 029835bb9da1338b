package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	domain "github.com/fitpulse/gym-api/internal/domain/user"
	"github.com/fitpulse/gym-api/internal/httperr"
	"github.com/fitpulse/gym-api/internal/models"
)

type SignUp struct {
	users domain.Repository
}

func NewSignUp(users domain.Repository) *SignUp {
	return &SignUp{users: users}
}

func (uc *SignUp) Execute(
	ctx context.Context,
	name string,
	email string,
	password string,
) (*models.User, error) {

	email = strings.ToLower(strings.TrimSpace(email))

	// Pre-check for a friendly conflict; the unique index catches races.
	if _, err := uc.users.FindByEmail(ctx, email); err == nil {
		return nil, httperr.ErrBusiness("email_taken")
	} else if !httperr.IsBusiness(err, "user_not_found") {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Name:                   name,
		Email:                  email,
		PasswordHash:           string(hashed),
		Role:                   models.RoleMember,
		RequiresPasswordChange: false,
	}

	if err := uc.users.Create(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}
