package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domain "github.com/fitpulse/gym-api/internal/domain/user"
	"github.com/fitpulse/gym-api/internal/httperr"
	"github.com/fitpulse/gym-api/internal/models"
)

const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether err is a postgres unique-index
// violation. Callers racing an insert against a unique constraint use
// it to translate the driver error into the matching business code.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) FindByEmail(
	ctx context.Context,
	email string,
) (*models.User, error) {

	email = strings.ToLower(strings.TrimSpace(email))

	var u models.User
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("user_not_found")
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserGormRepository) FindByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("user_not_found")
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserGormRepository) Create(
	ctx context.Context,
	u *models.User,
) error {

	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if IsUniqueViolation(err) {
			return httperr.ErrBusiness("email_taken")
		}
		return err
	}
	return nil
}

func (r *UserGormRepository) Update(
	ctx context.Context,
	u *models.User,
) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *UserGormRepository) UpdateName(
	ctx context.Context,
	id uint,
	name string,
) (*models.User, error) {

	var u models.User

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&u, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness("user_not_found")
			}
			return err
		}

		u.Name = name
		if err := tx.Save(&u).Error; err != nil {
			return err
		}

		// Keep the trainer profile's denormalized copy in sync.
		return tx.Model(&models.Trainer{}).
			Where("user_id = ?", id).
			Update("name", name).Error
	})
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// Compile-time check
var _ domain.Repository = (*UserGormRepository)(nil)
