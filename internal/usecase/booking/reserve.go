package booking

import (
	"context"

	"github.com/fitpulse/gym-api/internal/audit"
	domain "github.com/fitpulse/gym-api/internal/domain/booking"
	"github.com/fitpulse/gym-api/internal/httperr"
	"github.com/fitpulse/gym-api/internal/models"
)

type Reserve struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewReserve(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *Reserve {
	return &Reserve{
		repo:  repo,
		audit: audit,
	}
}

// Execute reserves one seat for userID in classID. Order of failures:
// class_not_found, already_booked, class_full. The pre-check for an
// existing booking gives the common case a clean answer; the atomic
// capacity re-check and the unique index inside ReserveSeat decide
// under contention.
func (uc *Reserve) Execute(
	ctx context.Context,
	userID uint,
	classID uint,
) (*models.Booking, error) {

	if _, err := uc.repo.GetClass(ctx, classID); err != nil {
		return nil, err
	}

	booked, err := uc.repo.HasBooking(ctx, userID, classID)
	if err != nil {
		return nil, err
	}
	if booked {
		return nil, httperr.ErrBusiness("already_booked")
	}

	b, err := uc.repo.ReserveSeat(ctx, userID, classID)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
