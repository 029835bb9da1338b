package schedule

import (
	"context"
	"sort"

	domain "github.com/fitpulse/gym-api/internal/domain/booking"
	dayorder "github.com/fitpulse/gym-api/internal/domain/schedule"
)

// ClassView is one schedule entry with live availability.
type ClassView struct {
	domain.ClassDetail
	SpotsRemaining int `json:"spots_remaining"`
}

// DaySchedule groups one weekday's classes, ordered by start time.
type DaySchedule struct {
	Day     dayorder.Weekday `json:"day"`
	Classes []ClassView      `json:"classes"`
}

// Projector composes the weekly schedule view. It is read-only; reserve
// and cancel go through the booking use cases.
type Projector struct {
	repo domain.Repository
}

func NewProjector(repo domain.Repository) *Projector {
	return &Projector{repo: repo}
}

// Execute groups all classes by weekday in canonical order and sorts
// each group by start time. Days with no classes are omitted.
func (uc *Projector) Execute(ctx context.Context) ([]DaySchedule, error) {

	details, err := uc.repo.ListClassesWithOccupancy(ctx)
	if err != nil {
		return nil, err
	}

	byDay := make(map[dayorder.Weekday][]ClassView)
	for _, d := range details {
		day := dayorder.Weekday(d.DayOfWeek)
		byDay[day] = append(byDay[day], ClassView{
			ClassDetail:    d,
			SpotsRemaining: d.SpotsRemaining(),
		})
	}

	out := make([]DaySchedule, 0, len(byDay))
	for _, day := range dayorder.Weekdays() {
		classes, ok := byDay[day]
		if !ok {
			continue
		}

		sort.SliceStable(classes, func(i, j int) bool {
			return classes[i].StartTime < classes[j].StartTime
		})

		out = append(out, DaySchedule{
			Day:     day,
			Classes: classes,
		})
	}

	return out, nil
}
