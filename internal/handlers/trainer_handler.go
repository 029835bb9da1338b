package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/fitpulse/gym-api/internal/audit"
	"github.com/fitpulse/gym-api/internal/config"
	"github.com/fitpulse/gym-api/internal/httperr"
	"github.com/fitpulse/gym-api/internal/httpresp"
	infraRepo "github.com/fitpulse/gym-api/internal/infra/repository"
	"github.com/fitpulse/gym-api/internal/middleware"
	"github.com/fitpulse/gym-api/internal/models"
	"github.com/fitpulse/gym-api/internal/storage"
	"github.com/fitpulse/gym-api/internal/validators"
)

const defaultTrainerImage = "https://placehold.co/300x300.png"

type TrainerHandler struct {
	db       *gorm.DB
	config   *config.Config
	uploader *storage.Uploader
	audit    *audit.Dispatcher
}

func NewTrainerHandler(
	db *gorm.DB,
	cfg *config.Config,
	uploader *storage.Uploader,
	audit *audit.Dispatcher,
) *TrainerHandler {
	return &TrainerHandler{
		db:       db,
		config:   cfg,
		uploader: uploader,
		audit:    audit,
	}
}

// --------- Requests ---------

type CreateTrainerRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Specialty string `json:"specialty" binding:"required"`
	ImageURL  string `json:"image_url"`
}

type UpdateTrainerRequest struct {
	Name      *string `json:"name,omitempty"`
	Specialty *string `json:"specialty,omitempty"`
	ImageURL  *string `json:"image_url,omitempty"`
}

type trainerView struct {
	models.Trainer
	Email string `json:"email"`
}

// --------- Handlers ---------

func (h *TrainerHandler) List(c *gin.Context) {
	var trainers []models.Trainer
	if err := h.db.
		Preload("User").
		Order("name ASC").
		Find(&trainers).Error; err != nil {
		writeError(c, err)
		return
	}

	out := make([]trainerView, 0, len(trainers))
	for _, t := range trainers {
		out = append(out, trainerView{Trainer: t, Email: t.User.Email})
	}

	httpresp.List(c, out)
}

// Create provisions the TRAINER account and its profile together. The
// initial credential is hashed like any other password; the
// requires_password_change flag forces rotation on first sign-in.
func (h *TrainerHandler) Create(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Name, email and specialty are required.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validators.HasEmailShape(email) {
		httperr.BadRequest(c, "invalid_email", "The email address does not look valid.")
		return
	}

	if !validators.IsEmailDomainValid(email) {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not appear to exist.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword(
		[]byte(h.config.TrainerInitialPassword),
		bcrypt.DefaultCost,
	)
	if err != nil {
		writeError(c, err)
		return
	}

	imageURL := req.ImageURL
	if imageURL == "" {
		imageURL = defaultTrainerImage
	}

	var trainer models.Trainer

	err = h.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).
			Where("email = ?", email).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return httperr.ErrBusiness("email_taken")
		}

		user := models.User{
			Name:                   req.Name,
			Email:                  email,
			PasswordHash:           string(hashed),
			Role:                   models.RoleTrainer,
			RequiresPasswordChange: true,
		}
		if err := tx.Create(&user).Error; err != nil {
			// The count above can race a concurrent signup; the unique
			// email index is the authority.
			if infraRepo.IsUniqueViolation(err) {
				return httperr.ErrBusiness("email_taken")
			}
			return err
		}

		trainer = models.Trainer{
			UserID:    user.ID,
			Name:      req.Name,
			Specialty: req.Specialty,
			ImageURL:  imageURL,
		}
		return tx.Create(&trainer).Error
	})
	if err != nil {
		writeError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "trainer_created",
		Entity:   "trainer",
		EntityID: &trainer.ID,
	})

	httpresp.Created(c, trainerView{Trainer: trainer, Email: email})
}

func (h *TrainerHandler) Update(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	var trainer models.Trainer
	if err := h.db.First(&trainer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, httperr.ErrBusiness("trainer_not_found"))
			return
		}
		writeError(c, err)
		return
	}

	var req UpdateTrainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request.")
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if req.Name != nil && *req.Name != "" {
			trainer.Name = *req.Name
			// Keep the account name in sync with the profile.
			if err := tx.Model(&models.User{}).
				Where("id = ?", trainer.UserID).
				Update("name", *req.Name).Error; err != nil {
				return err
			}
		}
		if req.Specialty != nil {
			trainer.Specialty = *req.Specialty
		}
		if req.ImageURL != nil {
			trainer.ImageURL = *req.ImageURL
			if trainer.ImageURL == "" {
				trainer.ImageURL = defaultTrainerImage
			}
		}
		return tx.Save(&trainer).Error
	})
	if err != nil {
		writeError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "trainer_updated",
		Entity:   "trainer",
		EntityID: &trainer.ID,
	})

	httpresp.OK(c, trainer)
}

// Delete removes the profile and unassigns its classes. The account is
// kept; classes survive with no trainer attached.
func (h *TrainerHandler) Delete(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid trainer id.")
		return
	}
	trainerID := uint(id)

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.GymClass{}).
			Where("trainer_id = ?", trainerID).
			Update("trainer_id", nil).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.Trainer{}, "id = ?", trainerID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return httperr.ErrBusiness("trainer_not_found")
		}
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "trainer_deleted",
		Entity:   "trainer",
		EntityID: &trainerID,
	})

	httpresp.Confirm(c, "Trainer profile deleted successfully.")
}

// UploadPhoto accepts a multipart "photo" file, normalizes it to webp
// and stores it in the bucket.
func (h *TrainerHandler) UploadPhoto(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)
	id := c.Param("id")

	if !h.uploader.Enabled() {
		httperr.BadRequest(c, "uploads_disabled", "Photo uploads are not configured.")
		return
	}

	var trainer models.Trainer
	if err := h.db.First(&trainer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, httperr.ErrBusiness("trainer_not_found"))
			return
		}
		writeError(c, err)
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "invalid_request", "A photo file is required.")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		writeError(c, err)
		return
	}
	defer file.Close()

	data, err := storage.NormalizeTrainerPhoto(file)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "The file could not be read as an image.")
		return
	}

	url, err := h.uploader.UploadTrainerPhoto(c.Request.Context(), trainer.ID, data)
	if err != nil {
		writeError(c, err)
		return
	}

	trainer.ImageURL = url
	if err := h.db.Save(&trainer).Error; err != nil {
		writeError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "trainer_photo_uploaded",
		Entity:   "trainer",
		EntityID: &trainer.ID,
	})

	httpresp.OK(c, gin.H{"image_url": url})
}
