package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fitpulse/gym-api/internal/audit"
	domain "github.com/fitpulse/gym-api/internal/domain/booking"
	"github.com/fitpulse/gym-api/internal/domain/schedule"
	"github.com/fitpulse/gym-api/internal/httperr"
	"github.com/fitpulse/gym-api/internal/httpresp"
	"github.com/fitpulse/gym-api/internal/middleware"
	"github.com/fitpulse/gym-api/internal/models"
	"github.com/fitpulse/gym-api/internal/timeofday"
)

type ClassHandler struct {
	db       *gorm.DB
	bookings domain.Repository
	audit    *audit.Dispatcher
}

func NewClassHandler(
	db *gorm.DB,
	bookings domain.Repository,
	audit *audit.Dispatcher,
) *ClassHandler {
	return &ClassHandler{
		db:       db,
		bookings: bookings,
		audit:    audit,
	}
}

// --------- Requests ---------

type CreateClassRequest struct {
	ServiceTitle string `json:"service_title" binding:"required"`
	TrainerID    *uint  `json:"trainer_id"`
	DayOfWeek    string `json:"day_of_week" binding:"required"`
	StartTime    string `json:"start_time" binding:"required"`
	EndTime      string `json:"end_time" binding:"required"`
	Capacity     int    `json:"capacity" binding:"required"`
}

type UpdateClassRequest struct {
	ServiceTitle *string `json:"service_title,omitempty"`
	TrainerID    *uint   `json:"trainer_id,omitempty"`
	Unassign     bool    `json:"unassign_trainer,omitempty"`
	DayOfWeek    *string `json:"day_of_week,omitempty"`
	StartTime    *string `json:"start_time,omitempty"`
	EndTime      *string `json:"end_time,omitempty"`
	Capacity     *int    `json:"capacity,omitempty"`
}

// --------- Handlers ---------

func (h *ClassHandler) List(c *gin.Context) {
	details, err := h.bookings.ListClassesWithOccupancy(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, details)
}

func (h *ClassHandler) Create(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Service title, day, time window and capacity are required.")
		return
	}

	day, err := schedule.Parse(req.DayOfWeek)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := timeofday.ValidateWindow(req.StartTime, req.EndTime); err != nil {
		writeError(c, err)
		return
	}

	if req.Capacity < 1 {
		writeError(c, httperr.ErrBusiness("invalid_capacity"))
		return
	}

	if req.TrainerID != nil {
		if err := h.trainerExists(*req.TrainerID); err != nil {
			writeError(c, err)
			return
		}
	}

	gc := models.GymClass{
		ServiceTitle: req.ServiceTitle,
		TrainerID:    req.TrainerID,
		DayOfWeek:    string(day),
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Capacity:     req.Capacity,
	}

	if err := h.db.Create(&gc).Error; err != nil {
		writeError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "class_created",
		Entity:   "gym_class",
		EntityID: &gc.ID,
	})

	httpresp.Created(c, gc)
}

func (h *ClassHandler) Update(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var gc models.GymClass
	if err := h.db.First(&gc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, httperr.ErrBusiness("class_not_found"))
			return
		}
		writeError(c, err)
		return
	}

	var req UpdateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request.")
		return
	}

	if req.ServiceTitle != nil {
		gc.ServiceTitle = *req.ServiceTitle
	}
	if req.Unassign {
		gc.TrainerID = nil
	} else if req.TrainerID != nil {
		if err := h.trainerExists(*req.TrainerID); err != nil {
			writeError(c, err)
			return
		}
		gc.TrainerID = req.TrainerID
	}
	if req.DayOfWeek != nil {
		day, err := schedule.Parse(*req.DayOfWeek)
		if err != nil {
			writeError(c, err)
			return
		}
		gc.DayOfWeek = string(day)
	}
	if req.StartTime != nil {
		gc.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		gc.EndTime = *req.EndTime
	}
	if err := timeofday.ValidateWindow(gc.StartTime, gc.EndTime); err != nil {
		writeError(c, err)
		return
	}
	if req.Capacity != nil {
		if *req.Capacity < 1 {
			writeError(c, httperr.ErrBusiness("invalid_capacity"))
			return
		}
		gc.Capacity = *req.Capacity
	}

	if err := h.db.Save(&gc).Error; err != nil {
		writeError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "class_updated",
		Entity:   "gym_class",
		EntityID: &gc.ID,
	})

	httpresp.OK(c, gc)
}

// Delete removes a class and its bookings in one transaction. The FK
// cascade would cover the bookings too; the explicit delete keeps the
// behavior independent of migration state.
func (h *ClassHandler) Delete(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid class id.")
		return
	}
	classID := uint(id)

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("class_id = ?", classID).Delete(&models.Booking{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.GymClass{}, "id = ?", classID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrBusiness("class_not_found")
		}
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "class_deleted",
		Entity:   "gym_class",
		EntityID: &classID,
	})

	httpresp.Confirm(c, "Class deleted successfully.")
}

func (h *ClassHandler) trainerExists(trainerID uint) error {
	var count int64
	if err := h.db.Model(&models.Trainer{}).
		Where("id = ?", trainerID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return httperr.ErrBusiness("trainer_not_found")
	}
	return nil
}
