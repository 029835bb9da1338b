package booking

import (
	"context"

	"github.com/fitpulse/gym-api/internal/audit"
	domain "github.com/fitpulse/gym-api/internal/domain/booking"
	"github.com/fitpulse/gym-api/internal/httperr"
)

type Cancel struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancel(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *Cancel {
	return &Cancel{
		repo:  repo,
		audit: audit,
	}
}

// Execute frees the seat held by bookingID. Only the owner may cancel;
// cancelling an already-gone booking is booking_not_found, never a
// silent success.
func (uc *Cancel) Execute(
	ctx context.Context,
	bookingID uint,
	requestingUserID uint,
) error {

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return err
	}

	if b.UserID != requestingUserID {
		return httperr.ErrBusiness("not_booking_owner")
	}

	if err := uc.repo.DeleteBooking(ctx, bookingID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &requestingUserID,
		Action:   "booking_cancelled",
		Entity:   "booking",
		EntityID: &bookingID,
	})

	return nil
}
