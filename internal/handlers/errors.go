package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fitpulse/gym-api/internal/httperr"
)

type errorSpec struct {
	status  int
	message string
}

// One place maps business codes to statuses and user-facing copy so the
// handlers stay thin and storage internals never leak.
var businessErrors = map[string]errorSpec{
	"user_not_found":    {http.StatusNotFound, "User not found."},
	"class_not_found":   {http.StatusNotFound, "Class not found."},
	"booking_not_found": {http.StatusNotFound, "Booking not found or already cancelled."},
	"trainer_not_found": {http.StatusNotFound, "Trainer not found."},
	"plan_not_found":    {http.StatusNotFound, "Membership plan not found."},

	"email_taken":    {http.StatusConflict, "A user with this email already exists."},
	"already_booked": {http.StatusConflict, "You have already booked this class."},

	"class_full":                   {http.StatusBadRequest, "Sorry, this class is already full."},
	"invalid_capacity":             {http.StatusBadRequest, "Capacity must be at least 1."},
	"invalid_time_window":          {http.StatusBadRequest, "Start time must be before end time."},
	"invalid_day_of_week":          {http.StatusBadRequest, "Unknown day of week."},
	"invalid_request":              {http.StatusBadRequest, "Invalid request."},
	"password_change_not_required": {http.StatusBadRequest, "This account does not require a password change."},

	"invalid_credentials": {http.StatusUnauthorized, "Invalid email or password."},

	"not_booking_owner": {http.StatusForbidden, "You are not allowed to cancel this booking."},
}

// writeError translates a use-case failure. Unexpected errors are
// logged and surfaced as a generic internal failure.
func writeError(c *gin.Context, err error) {
	if code := httperr.BusinessCode(err); code != "" {
		if spec, ok := businessErrors[code]; ok {
			httperr.Write(c, spec.status, code, spec.message)
			return
		}
		httperr.BadRequest(c, code, "Request could not be processed.")
		return
	}

	log.Printf("internal error: %v", err)
	httperr.Internal(c, "internal_error", "Something went wrong. Please try again.")
}
