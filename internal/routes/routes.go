package routes

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fitpulse/gym-api/internal/audit"
	"github.com/fitpulse/gym-api/internal/config"
	"github.com/fitpulse/gym-api/internal/handlers"
	infraRepo "github.com/fitpulse/gym-api/internal/infra/repository"
	"github.com/fitpulse/gym-api/internal/middleware"
	"github.com/fitpulse/gym-api/internal/models"
	"github.com/fitpulse/gym-api/internal/payments"
	"github.com/fitpulse/gym-api/internal/session"
	"github.com/fitpulse/gym-api/internal/storage"
	ucauth "github.com/fitpulse/gym-api/internal/usecase/auth"
	ucbooking "github.com/fitpulse/gym-api/internal/usecase/booking"
	ucschedule "github.com/fitpulse/gym-api/internal/usecase/schedule"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	sessions session.Store,
) {

	// ------------------------------
	// Infra (singletons)
	// ------------------------------
	userRepo := infraRepo.NewUserGormRepository(db)
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	uploader := storage.NewUploader(cfg)

	var checkout *payments.Checkout
	if cfg.MercadoPagoAccessToken != "" {
		var err error
		checkout, err = payments.NewCheckout(cfg.MercadoPagoAccessToken)
		if err != nil {
			log.Printf("payments disabled: %v", err)
		}
	}

	sessionTTL := time.Duration(cfg.SessionTTLHours) * time.Hour

	// ------------------------------
	// Use cases
	// ------------------------------
	signUpUC := ucauth.NewSignUp(userRepo)
	signInUC := ucauth.NewSignIn(userRepo, sessions, cfg.JWTSecret, sessionTTL)
	changePasswordUC := ucauth.NewChangePassword(userRepo)
	completeSetupUC := ucauth.NewCompleteForcedPasswordSetup(userRepo, sessions, cfg.JWTSecret, sessionTTL)
	updateNameUC := ucauth.NewUpdateName(userRepo)

	reserveUC := ucbooking.NewReserve(bookingRepo, auditDispatcher)
	cancelUC := ucbooking.NewCancel(bookingRepo, auditDispatcher)
	listBookingsUC := ucbooking.NewListForUser(bookingRepo)

	projectorUC := ucschedule.NewProjector(bookingRepo)

	// ------------------------------
	// Handlers
	// ------------------------------
	authHandler := handlers.NewAuthHandler(signUpUC, signInUC, changePasswordUC, completeSetupUC, sessions)
	meHandler := handlers.NewMeHandler(db, updateNameUC)
	bookingHandler := handlers.NewBookingHandler(reserveUC, cancelUC, listBookingsUC)
	scheduleHandler := handlers.NewScheduleHandler(projectorUC)
	trainerHandler := handlers.NewTrainerHandler(db, cfg, uploader, auditDispatcher)
	classHandler := handlers.NewClassHandler(db, bookingRepo, auditDispatcher)
	planHandler := handlers.NewPlanHandler(db, checkout)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ------------------------------
	// Routes
	// ------------------------------
	api := r.Group("/api")
	{
		// Public
		api.POST("/auth/signup", authHandler.SignUp)
		api.POST("/auth/signin", authHandler.SignIn)
		api.GET("/schedule", scheduleHandler.Get)
		api.GET("/plans", planHandler.List)

		// Any signed-in role
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg, sessions))
		{
			secured.POST("/auth/signout", authHandler.SignOut)
			secured.POST("/auth/change-password", authHandler.ChangePassword)
			secured.POST("/auth/set-password", authHandler.SetPassword)

			secured.GET("/me", meHandler.GetMe)
			secured.PATCH("/me/name", meHandler.UpdateName)

			secured.POST("/me/bookings", bookingHandler.Reserve)
			secured.GET("/me/bookings", bookingHandler.List)
			secured.DELETE("/me/bookings/:id", bookingHandler.Cancel)

			secured.POST("/plans/:id/checkout", planHandler.Checkout)
		}

		// Admin only
		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(cfg, sessions))
		admin.Use(middleware.RequireRole(models.RoleAdmin))
		{
			admin.GET("/trainers", trainerHandler.List)
			admin.POST("/trainers", trainerHandler.Create)
			admin.PATCH("/trainers/:id", trainerHandler.Update)
			admin.DELETE("/trainers/:id", trainerHandler.Delete)
			admin.POST("/trainers/:id/photo", trainerHandler.UploadPhoto)

			admin.GET("/classes", classHandler.List)
			admin.POST("/classes", classHandler.Create)
			admin.PATCH("/classes/:id", classHandler.Update)
			admin.DELETE("/classes/:id", classHandler.Delete)

			admin.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
