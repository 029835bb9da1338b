package auth

import (
	"context"
	"strings"

	domain "github.com/fitpulse/gym-api/internal/domain/user"
	"github.com/fitpulse/gym-api/internal/httperr"
	"github.com/fitpulse/gym-api/internal/models"
)

type UpdateName struct {
	users domain.Repository
}

func NewUpdateName(users domain.Repository) *UpdateName {
	return &UpdateName{users: users}
}

func (uc *UpdateName) Execute(
	ctx context.Context,
	userID uint,
	name string,
) (*models.User, error) {

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, httperr.ErrBusiness("invalid_request")
	}

	return uc.users.UpdateName(ctx, userID, name)
}
