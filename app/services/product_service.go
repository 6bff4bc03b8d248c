package services

import (
	"errors"

	"github.com/product-catalog/api/app/models"
	"github.com/product-catalog/api/app/requests"
)

// ProductStore is the slice of the product repository the service needs.
type ProductStore interface {
	GetAll() ([]models.Product, error)
	FindByID(id uint) (*models.Product, error)
	FindByName(name string) (*models.Product, error)
	Create(product *models.Product) error
	Update(id uint, fields map[string]interface{}) (*models.Product, error)
	Delete(id uint) (bool, error)
}

// ErrInvalidPrice guards the price business rule at the service boundary,
// independent of request validation. The text doubles as the API message.
var ErrInvalidPrice = errors.New("Product price must be positive.")

type ProductService struct {
	products ProductStore
}

func NewProductService(products ProductStore) *ProductService {
	return &ProductService{products: products}
}

// List returns all products with their categories.
func (s *ProductService) List() ([]models.Product, error) {
	return s.products.GetAll()
}

// GetByID returns one product, or nil when it does not exist.
func (s *ProductService) GetByID(id uint) (*models.Product, error) {
	return s.products.FindByID(id)
}

// GetByName returns the product matching name case-insensitively, or nil.
func (s *ProductService) GetByName(name string) (*models.Product, error) {
	return s.products.FindByName(name)
}

// Create persists a new product after enforcing the positive-price rule.
func (s *ProductService) Create(req requests.StoreProductRequest) (*models.Product, error) {
	if req.Price <= 0 {
		return nil, ErrInvalidPrice
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
	}
	if err := s.products.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update applies only the supplied fields to the product. Returns nil
// (without persisting anything) when the product does not exist.
func (s *ProductService) Update(id uint, req requests.UpdateProductRequest) (*models.Product, error) {
	if req.Price != nil && *req.Price <= 0 {
		return nil, ErrInvalidPrice
	}

	fields := map[string]interface{}{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Price != nil {
		fields["price"] = *req.Price
	}
	if req.CategoryID != nil {
		fields["category_id"] = *req.CategoryID
	}

	return s.products.Update(id, fields)
}

// Delete removes the product. Returns false when it does not exist.
func (s *ProductService) Delete(id uint) (bool, error) {
	return s.products.Delete(id)
}
