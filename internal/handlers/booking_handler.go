package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/fitpulse/gym-api/internal/httperr"
	"github.com/fitpulse/gym-api/internal/httpresp"
	"github.com/fitpulse/gym-api/internal/middleware"
	ucbooking "github.com/fitpulse/gym-api/internal/usecase/booking"
)

type BookingHandler struct {
	reserve *ucbooking.Reserve
	cancel  *ucbooking.Cancel
	list    *ucbooking.ListForUser
}

func NewBookingHandler(
	reserve *ucbooking.Reserve,
	cancel *ucbooking.Cancel,
	list *ucbooking.ListForUser,
) *BookingHandler {
	return &BookingHandler{
		reserve: reserve,
		cancel:  cancel,
		list:    list,
	}
}

type ReserveRequest struct {
	ClassID uint `json:"class_id" binding:"required"`
}

func (h *BookingHandler) Reserve(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req ReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "A class id is required.")
		return
	}

	b, err := h.reserve.Execute(c.Request.Context(), userID, req.ClassID)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, gin.H{
		"booking": b,
		"message": "Class booked successfully!",
	})
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid booking id.")
		return
	}

	if err := h.cancel.Execute(c.Request.Context(), uint(bookingID), userID); err != nil {
		writeError(c, err)
		return
	}

	httpresp.Confirm(c, "Booking cancelled successfully.")
}

func (h *BookingHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	details, err := h.list.Execute(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, details)
}
