package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store is the server-side session registry. Tokens carry a session id;
// a token whose id is no longer registered is dead regardless of its
// expiry, which is what makes sign-out effective immediately.
type Store interface {
	Save(ctx context.Context, sid string, userID uint, ttl time.Duration) error

	// UserID resolves a session id. The bool is false for unknown or
	// expired sessions.
	UserID(ctx context.Context, sid string) (uint, bool, error)

	// Destroy removes a session. Destroying an absent session is a
	// no-op, so sign-out is idempotent.
	Destroy(ctx context.Context, sid string) error
}

func NewID() string {
	return uuid.NewString()
}
