package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/product-catalog/api/app/models"
	"github.com/product-catalog/api/pkg/cache"
)

const (
	productListCacheKey = "products:all"
	productListCacheTTL = 5 * time.Minute
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// GetAll returns every product with its category preloaded, through a
// read-through cache. Writes invalidate the cached list.
func (r *ProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if cache.Get(productListCacheKey, &products) {
		return products, nil
	}

	if err := r.db.Preload("Category").Order("id").Find(&products).Error; err != nil {
		return nil, err
	}

	_ = cache.Set(productListCacheKey, products, productListCacheTTL)
	return products, nil
}

// FindByID returns the product with its category, or nil when absent.
func (r *ProductRepository) FindByID(id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.Preload("Category").First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// FindByName returns the product whose name matches case-insensitively,
// or nil when none does. Ties resolve to the lowest ID.
func (r *ProductRepository) FindByName(name string) (*models.Product, error) {
	var product models.Product
	err := r.db.Preload("Category").
		Where("LOWER(name) = LOWER(?)", name).
		Order("id").
		First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Create persists a new product and reloads it with the category
// association populated.
func (r *ProductRepository) Create(product *models.Product) error {
	if err := r.db.Create(product).Error; err != nil {
		return err
	}
	_ = cache.Forget(productListCacheKey)
	return r.db.Preload("Category").First(product, product.ID).Error
}

// Update applies the given column changes to the product with the given
// ID and returns the updated row, or nil when the product does not exist.
func (r *ProductRepository) Update(id uint, fields map[string]interface{}) (*models.Product, error) {
	var product models.Product
	err := r.db.First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := r.db.Model(&product).Updates(fields).Error; err != nil {
		return nil, err
	}
	_ = cache.Forget(productListCacheKey)

	if err := r.db.Preload("Category").First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// Delete removes the product with the given ID. Returns false when no
// such product exists.
func (r *ProductRepository) Delete(id uint) (bool, error) {
	res := r.db.Delete(&models.Product{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	_ = cache.Forget(productListCacheKey)
	return true, nil
}
