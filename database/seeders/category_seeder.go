package seeders

import (
	"gorm.io/gorm"

	"github.com/product-catalog/api/app/models"
)

func init() {
	register(Seeder{Name: "categories", Run: seedCategories})
}

func seedCategories(db *gorm.DB) error {
	names := []string{
		"Eletrônicos",
		"Roupas",
		"Alimentos",
		"Livros",
		"Esportes",
	}

	for _, name := range names {
		var cat models.Category
		err := db.Where("name = ?", name).FirstOrCreate(&cat, models.Category{Name: name}).Error
		if err != nil {
			return err
		}
	}
	return nil
}
