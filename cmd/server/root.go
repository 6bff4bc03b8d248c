package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/product-catalog/api/config"
	"github.com/product-catalog/api/pkg/database"
)

var rootCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Product catalog API server and management commands",
	// running the binary with no subcommand starts the HTTP server
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

// bootDB loads the environment and opens the database connection. Shared
// by every command that touches the database.
func bootDB() (*gorm.DB, error) {
	config.Load()
	if err := database.Connect(); err != nil {
		return nil, fmt.Errorf("boot: %w", err)
	}
	return database.DB, nil
}
