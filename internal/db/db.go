package db

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/fitpulse/gym-api/internal/config"
	"github.com/fitpulse/gym-api/internal/models"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Trainer{},
		&models.GymClass{},
		&models.Booking{},
		&models.MembershipPlan{},
		&models.AuditLog{},
	); err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	seedAdmin(db, cfg)
	seedPlans(db)

	return db
}

// seedAdmin provisions the admin account on first boot so the admin
// dashboard is reachable without manual SQL.
func seedAdmin(db *gorm.DB, cfg *config.Config) {
	var count int64
	db.Model(&models.User{}).Where("email = ?", cfg.AdminEmail).Count(&count)
	if count > 0 {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash admin password: %v", err)
	}

	admin := models.User{
		Name:         "Admin",
		Email:        cfg.AdminEmail,
		PasswordHash: string(hashed),
		Role:         models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}

	log.Printf("seeded admin user %s", cfg.AdminEmail)
}

func seedPlans(db *gorm.DB) {
	var count int64
	db.Model(&models.MembershipPlan{}).Count(&count)
	if count > 0 {
		return
	}

	plans := []models.MembershipPlan{
		{Name: "Basic", Description: "Gym floor access", Price: 29.90, Active: true},
		{Name: "Plus", Description: "Gym floor plus group classes", Price: 49.90, Active: true},
		{Name: "Unlimited", Description: "All classes and personal training discounts", Price: 79.90, Active: true},
	}
	if err := db.Create(&plans).Error; err != nil {
		log.Printf("failed to seed membership plans: %v", err)
	}
}
