package booking

import (
	"context"
	"sort"

	domain "github.com/fitpulse/gym-api/internal/domain/booking"
	"github.com/fitpulse/gym-api/internal/domain/schedule"
)

type ListForUser struct {
	repo domain.Repository
}

func NewListForUser(repo domain.Repository) *ListForUser {
	return &ListForUser{repo: repo}
}

// Execute returns the user's bookings ordered by the canonical weekday
// sequence, then start time.
func (uc *ListForUser) Execute(
	ctx context.Context,
	userID uint,
) ([]domain.Detail, error) {

	details, err := uc.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(details, func(i, j int) bool {
		di := schedule.Weekday(details[i].Class.DayOfWeek)
		dj := schedule.Weekday(details[j].Class.DayOfWeek)
		if di != dj {
			return schedule.Less(di, dj)
		}
		return details[i].Class.StartTime < details[j].Class.StartTime
	})

	return details, nil
}
