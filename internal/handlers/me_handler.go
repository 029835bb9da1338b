package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fitpulse/gym-api/internal/httperr"
	"github.com/fitpulse/gym-api/internal/httpresp"
	"github.com/fitpulse/gym-api/internal/middleware"
	"github.com/fitpulse/gym-api/internal/models"
	ucauth "github.com/fitpulse/gym-api/internal/usecase/auth"
)

type MeHandler struct {
	db         *gorm.DB
	updateName *ucauth.UpdateName
}

func NewMeHandler(db *gorm.DB, updateName *ucauth.UpdateName) *MeHandler {
	return &MeHandler{db: db, updateName: updateName}
}

// GetMe always reads fresh state so a rename or password rotation in the
// same session is immediately visible.
func (h *MeHandler) GetMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "user_not_found", "User not found.")
			return
		}
		writeError(c, err)
		return
	}

	resp := gin.H{"user": userPayload(&user)}

	if user.Role == models.RoleTrainer {
		var trainer models.Trainer
		if err := h.db.Where("user_id = ?", userID).First(&trainer).Error; err == nil {
			resp["trainer"] = trainer
		}
	}

	httpresp.OK(c, resp)
}

type UpdateNameRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *MeHandler) UpdateName(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req UpdateNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "A name is required.")
		return
	}

	u, err := h.updateName.Execute(c.Request.Context(), userID, req.Name)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"user": userPayload(u)})
}
