package booking

import "time"

// ClassDetail is a class annotated with live occupancy, the read shape
// shared by the schedule projection and the admin class listing.
type ClassDetail struct {
	ID           uint   `json:"id"`
	ServiceTitle string `json:"service_title"`
	TrainerID    *uint  `json:"trainer_id"`
	TrainerName  string `json:"trainer_name,omitempty"`
	DayOfWeek    string `json:"day_of_week"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Capacity     int    `json:"capacity"`
	BookedCount  int    `json:"booked_count"`
}

// SpotsRemaining never reports negative even if a row predates the
// capacity being lowered.
func (c ClassDetail) SpotsRemaining() int {
	if r := c.Capacity - c.BookedCount; r > 0 {
		return r
	}
	return 0
}

// Detail is one of a user's bookings joined with its class.
type Detail struct {
	BookingID uint        `json:"booking_id"`
	CreatedAt time.Time   `json:"created_at"`
	Class     ClassDetail `json:"class"`
}
