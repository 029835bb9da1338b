package booking

import (
	"context"

	"github.com/fitpulse/gym-api/internal/models"
)

// Repository is the storage contract for the booking engine. The store
// is the single source of truth: every capacity decision reads fresh
// counts inside ReserveSeat, never a cached value.
//
// Business codes surfaced by implementations:
//
//	class_not_found   — classID does not resolve
//	booking_not_found — bookingID does not resolve
//	class_full        — transactional capacity re-check failed
//	already_booked    — unique (user, class) index rejected the insert
type Repository interface {
	GetClass(
		ctx context.Context,
		classID uint,
	) (*models.GymClass, error)

	HasBooking(
		ctx context.Context,
		userID uint,
		classID uint,
	) (bool, error)

	// ReserveSeat re-checks occupancy against capacity and inserts the
	// booking as one atomic unit with respect to concurrent reserves on
	// the same class.
	ReserveSeat(
		ctx context.Context,
		userID uint,
		classID uint,
	) (*models.Booking, error)

	GetBooking(
		ctx context.Context,
		bookingID uint,
	) (*models.Booking, error)

	DeleteBooking(
		ctx context.Context,
		bookingID uint,
	) error

	CountForClass(
		ctx context.Context,
		classID uint,
	) (int64, error)

	// ListForUser returns the user's bookings joined with class and
	// trainer detail, unordered; callers sort by the canonical weekday
	// order.
	ListForUser(
		ctx context.Context,
		userID uint,
	) ([]Detail, error)

	// ListClassesWithOccupancy returns every class annotated with its
	// live booking count and trainer name, unordered.
	ListClassesWithOccupancy(
		ctx context.Context,
	) ([]ClassDetail, error)
}
