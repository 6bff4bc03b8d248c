package repositories

import (
	"gorm.io/gorm"

	"github.com/product-catalog/api/app/models"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Exists reports whether a category with the given ID is present.
func (r *CategoryRepository) Exists(id uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Category{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
