package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/fitpulse/gym-api/internal/domain/booking"
	"github.com/fitpulse/gym-api/internal/httperr"
	"github.com/fitpulse/gym-api/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

func (r *BookingGormRepository) GetClass(
	ctx context.Context,
	classID uint,
) (*models.GymClass, error) {

	var gc models.GymClass
	if err := r.db.WithContext(ctx).First(&gc, classID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("class_not_found")
		}
		return nil, err
	}
	return &gc, nil
}

func (r *BookingGormRepository) HasBooking(
	ctx context.Context,
	userID uint,
	classID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("user_id = ? AND class_id = ?", userID, classID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ReserveSeat locks the class row so the occupancy count and the insert
// commit as one unit with respect to concurrent reserves on the same
// class. Reserves on different classes lock different rows and proceed
// independently. The unique (user_id, class_id) index is the backstop:
// a raced duplicate surfaces as already_booked, not a storage error.
func (r *BookingGormRepository) ReserveSeat(
	ctx context.Context,
	userID uint,
	classID uint,
) (*models.Booking, error) {

	var created models.Booking

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var gc models.GymClass
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&gc, classID).Error; err != nil {

			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness("class_not_found")
			}
			return err
		}

		var count int64
		if err := tx.
			Model(&models.Booking{}).
			Where("class_id = ?", classID).
			Count(&count).Error; err != nil {
			return err
		}

		if count >= int64(gc.Capacity) {
			return httperr.ErrBusiness("class_full")
		}

		b := models.Booking{
			UserID:  userID,
			ClassID: classID,
		}
		if err := tx.Create(&b).Error; err != nil {
			if IsUniqueViolation(err) {
				return httperr.ErrBusiness("already_booked")
			}
			return err
		}

		created = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	bookingID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).First(&b, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("booking_not_found")
		}
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) DeleteBooking(
	ctx context.Context,
	bookingID uint,
) error {

	res := r.db.WithContext(ctx).Delete(&models.Booking{}, bookingID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("booking_not_found")
	}
	return nil
}

func (r *BookingGormRepository) CountForClass(
	ctx context.Context,
	classID uint,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("class_id = ?", classID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *BookingGormRepository) ListForUser(
	ctx context.Context,
	userID uint,
) ([]domain.Detail, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("GymClass").
		Preload("GymClass.Trainer").
		Where("user_id = ?", userID).
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	counts, err := r.occupancyByClass(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Detail, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, domain.Detail{
			BookingID: b.ID,
			CreatedAt: b.CreatedAt,
			Class:     classDetail(&b.GymClass, counts),
		})
	}
	return out, nil
}

func (r *BookingGormRepository) ListClassesWithOccupancy(
	ctx context.Context,
) ([]domain.ClassDetail, error) {

	var classes []models.GymClass
	if err := r.db.WithContext(ctx).
		Preload("Trainer").
		Find(&classes).Error; err != nil {
		return nil, err
	}

	counts, err := r.occupancyByClass(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.ClassDetail, 0, len(classes))
	for i := range classes {
		out = append(out, classDetail(&classes[i], counts))
	}
	return out, nil
}

type classCount struct {
	ClassID uint
	Total   int64
}

func (r *BookingGormRepository) occupancyByClass(
	ctx context.Context,
) (map[uint]int, error) {

	var rows []classCount
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Select("class_id, COUNT(*) AS total").
		Group("class_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[uint]int, len(rows))
	for _, row := range rows {
		counts[row.ClassID] = int(row.Total)
	}
	return counts, nil
}

func classDetail(gc *models.GymClass, counts map[uint]int) domain.ClassDetail {
	d := domain.ClassDetail{
		ID:           gc.ID,
		ServiceTitle: gc.ServiceTitle,
		TrainerID:    gc.TrainerID,
		DayOfWeek:    gc.DayOfWeek,
		StartTime:    gc.StartTime,
		EndTime:      gc.EndTime,
		Capacity:     gc.Capacity,
		BookedCount:  counts[gc.ID],
	}
	if gc.Trainer != nil {
		d.TrainerName = gc.Trainer.Name
	}
	return d
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
