package models

import "time"

// Booking reserves one seat in one class for one user. The composite
// unique index is the backstop against raced duplicate reserves.
type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint `gorm:"not null;uniqueIndex:idx_bookings_user_class" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ClassID  uint     `gorm:"not null;uniqueIndex:idx_bookings_user_class" json:"class_id"`
	GymClass GymClass `gorm:"foreignKey:ClassID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}
