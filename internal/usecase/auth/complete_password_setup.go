package auth

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	domain "github.com/fitpulse/gym-api/internal/domain/user"
	"github.com/fitpulse/gym-api/internal/httperr"
	"github.com/fitpulse/gym-api/internal/models"
	"github.com/fitpulse/gym-api/internal/session"
)

type CompleteForcedPasswordSetup struct {
	users    domain.Repository
	sessions session.Store
	secret   string
	ttl      time.Duration
}

func NewCompleteForcedPasswordSetup(
	users domain.Repository,
	sessions session.Store,
	secret string,
	ttl time.Duration,
) *CompleteForcedPasswordSetup {
	return &CompleteForcedPasswordSetup{
		users:    users,
		sessions: sessions,
		secret:   secret,
		ttl:      ttl,
	}
}

// Execute finishes the forced-rotation flow for freshly provisioned
// trainer accounts. The current password is not checked; the flag is the
// only gate. The old session is revoked and a new one issued so the
// caller stays signed in under the new credential.
func (uc *CompleteForcedPasswordSetup) Execute(
	ctx context.Context,
	userID uint,
	currentSID string,
	newPassword string,
) (*models.User, string, error) {

	u, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	if !u.RequiresPasswordChange {
		return nil, "", httperr.ErrBusiness("password_change_not_required")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	u.PasswordHash = string(hashed)
	u.RequiresPasswordChange = false

	if err := uc.users.Update(ctx, u); err != nil {
		return nil, "", err
	}

	if currentSID != "" {
		if err := uc.sessions.Destroy(ctx, currentSID); err != nil {
			return nil, "", err
		}
	}

	sid := session.NewID()
	if err := uc.sessions.Save(ctx, sid, u.ID, uc.ttl); err != nil {
		return nil, "", err
	}

	token, err := signToken(uc.secret, u, sid, uc.ttl)
	if err != nil {
		return nil, "", err
	}

	return u, token, nil
}
