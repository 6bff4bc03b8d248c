// Package repositories contains the data access layer. Repositories talk
// to gorm and the cache; "not found" is reported as a nil result, never
// as an error, so services can distinguish missing rows from failures.
package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/product-catalog/api/app/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByEmail returns the user with the given email, or nil when no such
// user exists.
func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID returns the user with the given ID, or nil when absent.
func (r *UserRepository) FindByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// EmailTaken reports whether a user with this email already exists.
func (r *UserRepository) EmailTaken(email string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create persists a new user. The caller hashes the password first.
func (r *UserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}
