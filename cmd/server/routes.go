package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/product-catalog/api/app/routes"
	"github.com/product-catalog/api/pkg/router"
)

var routeListCmd = &cobra.Command{
	Use:   "route:list",
	Short: "Print every registered HTTP route",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := bootDB()
		if err != nil {
			return err
		}

		r := router.New()
		routes.RegisterAPI(r, db)

		for _, route := range r.Routes() {
			fmt.Printf("%-7s %s\n", route.Method, route.Pattern)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(routeListCmd)
}
