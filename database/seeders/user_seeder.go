package seeders

import (
	"gorm.io/gorm"

	"github.com/product-catalog/api/app/models"
	"github.com/product-catalog/api/pkg/auth"
)

func init() {
	register(Seeder{Name: "demo-user", Run: seedDemoUser})
}

// seedDemoUser creates a known login for local development.
func seedDemoUser(db *gorm.DB) error {
	var existing models.User
	err := db.Where("email = ?", "demo@example.com").First(&existing).Error
	if err == nil {
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	hash, err := auth.HashPassword("password")
	if err != nil {
		return err
	}

	return db.Create(&models.User{
		Name:     "Demo User",
		Email:    "demo@example.com",
		Password: hash,
	}).Error
}
