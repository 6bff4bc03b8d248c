package main

import (
	"fmt"

	"github.com/spf13/cobra"

	_ "github.com/product-catalog/api/database/migrations"

	"github.com/product-catalog/api/pkg/migration"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := bootDB()
		if err != nil {
			return err
		}

		ran, err := migration.Run(db)
		if err != nil {
			return err
		}
		if len(ran) == 0 {
			fmt.Println("Nothing to migrate.")
			return nil
		}
		for _, name := range ran {
			fmt.Printf("Migrated: %s\n", name)
		}
		return nil
	},
}

var migrateRollbackCmd = &cobra.Command{
	Use:   "migrate:rollback",
	Short: "Roll back the most recent migration batch",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := bootDB()
		if err != nil {
			return err
		}

		rolled, err := migration.Rollback(db)
		if err != nil {
			return err
		}
		if len(rolled) == 0 {
			fmt.Println("Nothing to roll back.")
			return nil
		}
		for _, name := range rolled {
			fmt.Printf("Rolled back: %s\n", name)
		}
		return nil
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "migrate:status",
	Short: "Show the status of every migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := bootDB()
		if err != nil {
			return err
		}

		statuses, err := migration.List(db)
		if err != nil {
			return err
		}
		for _, s := range statuses {
			state := "pending"
			if s.Applied {
				state = fmt.Sprintf("applied (batch %d)", s.Batch)
			}
			fmt.Printf("%-50s %s\n", s.Name, state)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd, migrateRollbackCmd, migrateStatusCmd)
}
