package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fitpulse/gym-api/internal/models"
)

// signToken issues an HS256 token bound to a registered session id. The
// sid claim is what lets sign-out kill the token server-side before its
// exp.
func signToken(
	secret string,
	user *models.User,
	sid string,
	ttl time.Duration,
) (string, error) {

	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"sid":  sid,
		"exp":  time.Now().Add(ttl).Unix(),
		"iat":  time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
