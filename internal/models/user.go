package models

import "time"

const (
	RoleMember  = "MEMBER"
	RoleTrainer = "TRAINER"
	RoleAdmin   = "ADMIN"
)

// IsValidRole reports whether role is one of the closed set. Roles are
// stored upper-case; callers normalize before checking.
func IsValidRole(role string) bool {
	switch role {
	case RoleMember, RoleTrainer, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:20;default:'MEMBER'" json:"role"`

	RequiresPasswordChange bool `gorm:"default:false" json:"requires_password_change"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
