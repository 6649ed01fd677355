package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/elkisamara/internal/config"
	"github.com/example/elkisamara/internal/handlers"
	"github.com/example/elkisamara/internal/middleware"
	"github.com/example/elkisamara/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	telegramService := services.NewTelegramService(cfg.TelegramBotToken, cfg.TelegramAdminChat)
	catalogService := services.NewCatalogService(db)
	cartService := services.NewCartService(db)
	checkoutService := services.NewCheckoutService(db, telegramService)

	authHandler := handlers.NewAuthHandler(db, cfg)
	catalogHandler := handlers.NewCatalogHandler(db, catalogService)
	productHandler := handlers.NewProductHandler(db)
	cartHandler := handlers.NewCartHandler(db, cartService)
	orderHandler := handlers.NewOrderHandler(db, checkoutService)
	profileHandler := handlers.NewProfileHandler(db)
	adminHandler := handlers.NewAdminHandler(db)

	api := app.Group("/api")

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	// Storefront catalog
	api.Get("/products/latest", catalogHandler.LatestProducts)
	api.Get("/products", productHandler.ListProducts)
	api.Get("/products/:kind/:slug", productHandler.GetProduct)

	categories := api.Group("/categories")
	categories.Get("/", catalogHandler.ListCategories)
	categories.Get("/sidebar", catalogHandler.Sidebar)
	categories.Get("/:slug", catalogHandler.GetCategory)

	api.Get("/size-variants", productHandler.ListSizeVariants)

	// Protected customer routes
	protected := api.Group("", middleware.AuthMiddleware(cfg))

	cart := protected.Group("/cart")
	cart.Get("/", cartHandler.GetCart)
	cart.Post("/items", cartHandler.AddItem)
	cart.Delete("/items/:id", cartHandler.RemoveItem)
	cart.Put("/items/:id/quantity", cartHandler.ChangeQuantity)
	cart.Put("/items/:id/variant", cartHandler.ChangeVariant)

	protected.Post("/checkout", orderHandler.Checkout)
	protected.Get("/orders", orderHandler.ListOrders)
	protected.Get("/orders/:id", orderHandler.GetOrder)

	protected.Get("/profile", profileHandler.GetProfile)
	protected.Put("/profile", profileHandler.UpdateProfile)

	// Back-office routes
	admin := api.Group("/admin", middleware.AuthMiddleware(cfg), middleware.StaffOnly(db))

	admin.Post("/categories", catalogHandler.CreateCategory)
	admin.Put("/categories/:id", catalogHandler.UpdateCategory)
	admin.Delete("/categories/:id", catalogHandler.DeleteCategory)

	admin.Post("/products", productHandler.CreateProduct)
	admin.Put("/products/:id", productHandler.UpdateProduct)
	admin.Delete("/products/:id", productHandler.DeleteProduct)
	admin.Post("/products/:id/image", productHandler.UploadProductImage)
	admin.Post("/products/:id/size-variants/:variantID", productHandler.AttachSizeVariant)
	admin.Delete("/products/:id/size-variants/:variantID", productHandler.DetachSizeVariant)

	admin.Post("/size-variants", productHandler.CreateSizeVariant)
	admin.Put("/size-variants/:id", productHandler.UpdateSizeVariant)
	admin.Delete("/size-variants/:id", productHandler.DeleteSizeVariant)

	admin.Put("/orders/:id/status", orderHandler.ChangeStatus)
	admin.Get("/orders", adminHandler.ListAllOrders)
	admin.Get("/customers", adminHandler.ListAllCustomers)
	admin.Get("/stats", adminHandler.DashboardStats)
	admin.Get("/orders/recent", adminHandler.RecentOrders)
}
