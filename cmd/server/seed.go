package main

import (
	"fmt"

	"github.com/spf13/cobra"

	_ "github.com/product-catalog/api/database/migrations"

	"github.com/product-catalog/api/database/seeders"
	"github.com/product-catalog/api/pkg/migration"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run the database seeders",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := bootDB()
		if err != nil {
			return err
		}

		// make sure the schema exists before seeding into it
		if _, err := migration.Run(db); err != nil {
			return err
		}

		if err := seeders.RunAll(db); err != nil {
			return err
		}
		fmt.Println("Database seeded.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
