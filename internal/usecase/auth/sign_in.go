package auth

import (
	"context"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	domain "github.com/fitpulse/gym-api/internal/domain/user"
	"github.com/fitpulse/gym-api/internal/httperr"
	"github.com/fitpulse/gym-api/internal/models"
	"github.com/fitpulse/gym-api/internal/session"
)

type SignIn struct {
	users    domain.Repository
	sessions session.Store
	secret   string
	ttl      time.Duration
}

func NewSignIn(
	users domain.Repository,
	sessions session.Store,
	secret string,
	ttl time.Duration,
) *SignIn {
	return &SignIn{
		users:    users,
		sessions: sessions,
		secret:   secret,
		ttl:      ttl,
	}
}

// Execute verifies the credential and registers a fresh session. Unknown
// email and bad password are indistinguishable to the caller.
func (uc *SignIn) Execute(
	ctx context.Context,
	email string,
	password string,
) (*models.User, string, error) {

	email = strings.ToLower(strings.TrimSpace(email))

	u, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		if httperr.IsBusiness(err, "user_not_found") {
			return nil, "", httperr.ErrBusiness("invalid_credentials")
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword(
		[]byte(u.PasswordHash),
		[]byte(password),
	); err != nil {
		return nil, "", httperr.ErrBusiness("invalid_credentials")
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
