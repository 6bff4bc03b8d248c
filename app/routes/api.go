// Package routes wires controllers onto the router.
package routes

import (
	"gorm.io/gorm"

	"github.com/product-catalog/api/app/controllers"
	"github.com/product-catalog/api/app/repositories"
	"github.com/product-catalog/api/app/services"
	"github.com/product-catalog/api/pkg/middleware"
	"github.com/product-catalog/api/pkg/router"
)

// RegisterAPI builds the repository → service → controller chain and
// mounts every API route. Login and register are public; everything else
// sits behind the Auth middleware.
func RegisterAPI(r *router.Router, db *gorm.DB) {
	users := repositories.NewUserRepository(db)
	products := repositories.NewProductRepository(db)
	categories := repositories.NewCategoryRepository(db)

	authCtrl := controllers.NewAuthController(services.NewAuthService(users))
	productCtrl := controllers.NewProductController(services.NewProductService(products), categories)

	r.Group("/api/auth", func(g *router.Group) {
		g.Post("/login", authCtrl.Login)
		g.Post("/register", authCtrl.Register)

		g.Group("", func(auth *router.Group) {
			auth.Post("/logout", authCtrl.Logout)
			auth.Post("/refresh", authCtrl.Refresh)
			auth.Get("/me", authCtrl.Me)
		}, middleware.Auth())
	})

	r.Group("/api/products", func(g *router.Group) {
		g.Get("", productCtrl.Index)
		g.Get("/search", productCtrl.Search)
		g.Get("/{id}", productCtrl.Show)
		g.Post("", productCtrl.Store)
		g.Put("/{id}", productCtrl.Update)
		g.Patch("/{id}", productCtrl.Update)
		g.Delete("/{id}", productCtrl.Destroy)
	}, middleware.Auth())
}
