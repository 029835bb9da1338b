package models

import "time"

// GymClass is a recurring weekly offering. StartTime and EndTime are
// wall-clock "15:04" strings; DayOfWeek holds one of the schedule weekday
// values.
type GymClass struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ServiceTitle string `gorm:"size:100;not null" json:"service_title"`

	TrainerID *uint    `json:"trainer_id"`
	Trainer   *Trainer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"trainer,omitempty"`

	DayOfWeek string `gorm:"size:10;not null" json:"day_of_week"`
	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"`

	Capacity int `gorm:"not null" json:"capacity"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
