package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	domain "github.com/fitpulse/gym-api/internal/domain/user"
	"github.com/fitpulse/gym-api/internal/httperr"
)

type ChangePassword struct {
	users domain.Repository
}

func NewChangePassword(users domain.Repository) *ChangePassword {
	return &ChangePassword{users: users}
}

// Execute rotates the credential after verifying the current one. The
// forced-setup flow is the only path that skips that verification; it
// lives in CompleteForcedPasswordSetup.
func (uc *ChangePassword) Execute(
	ctx context.Context,
	userID uint,
	currentPassword string,
	newPassword string,
) error {

	u, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword(
		[]byte(u.PasswordHash),
		[]byte(currentPassword),
	); err != nil {
		return httperr.ErrBusiness("invalid_credentials")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	u.PasswordHash = string(hashed)
	u.RequiresPasswordChange = false

	return uc.users.Update(ctx, u)
}
