// Package seeders populates reference data for development and demos.
package seeders

import (
	"fmt"

	"gorm.io/gorm"
)

// Seeder is one named data seeder. Seeders are idempotent: running them
// twice must not duplicate rows.
type Seeder struct {
	Name string
	Run  func(db *gorm.DB) error
}

var registry []Seeder

func register(s Seeder) {
	registry = append(registry, s)
}

// RunAll executes every registered seeder in registration order.
func RunAll(db *gorm.DB) error {
	for _, s := range registry {
		if err := s.Run(db); err != nil {
			return fmt.Errorf("seeder %s: %w", s.Name, err)
		}
	}
	return nil
}
