package migrations

import (
	"gorm.io/gorm"

	"github.com/product-catalog/api/app/models"
	"github.com/product-catalog/api/pkg/migration"
)

func init() {
	migration.Register(migration.Migration{
		Name: "0003_create_products_table",
		Up: func(db *gorm.DB) error {
			return db.AutoMigrate(&models.Product{})
		},
		Down: func(db *gorm.DB) error {
			return db.Migrator().DropTable(&models.Product{})
		},
	})
}
