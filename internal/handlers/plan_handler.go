package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fitpulse/gym-api/internal/httperr"
	"github.com/fitpulse/gym-api/internal/httpresp"
	"github.com/fitpulse/gym-api/internal/middleware"
	"github.com/fitpulse/gym-api/internal/models"
	"github.com/fitpulse/gym-api/internal/payments"
)

type PlanHandler struct {
	db       *gorm.DB
	checkout *payments.Checkout
}

// NewPlanHandler takes a nil checkout when Mercado Pago is not
// configured; the listing still works.
func NewPlanHandler(db *gorm.DB, checkout *payments.Checkout) *PlanHandler {
	return &PlanHandler{db: db, checkout: checkout}
}

func (h *PlanHandler) List(c *gin.Context) {
	var plans []models.MembershipPlan
	if err := h.db.
		Where("active = ?", true).
		Order("price ASC").
		Find(&plans).Error; err != nil {
		writeError(c, err)
		return
	}

	httpresp.List(c, plans)
}

func (h *PlanHandler) Checkout(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	if h.checkout == nil {
		httperr.BadRequest(c, "payments_disabled", "Online payment is not configured.")
		return
	}

	var plan models.MembershipPlan
	if err := h.db.
		Where("id = ? AND active = ?", id, true).
		First(&plan).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, httperr.ErrBusiness("plan_not_found"))
			return
		}
		writeError(c, err)
		return
	}

	link, err := h.checkout.CreateForPlan(c.Request.Context(), &plan, userID)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, link)
}
