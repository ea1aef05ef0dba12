// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/hiennd325/QL-kho-sub000/internal/config"
	"github.com/hiennd325/QL-kho-sub000/internal/interfaces/http/handlers"
	"github.com/hiennd325/QL-kho-sub000/internal/interfaces/http/middleware"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// SetupRoutes wires every API route group
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	setupAuthRoutes(rg, db, cfg)
	setupCatalogRoutes(rg, db, cfg)
	setupInventoryRoutes(rg, db, cfg)
	setupDocumentRoutes(rg, db, cfg)
	setupReportRoutes(rg, db, cfg)
	setupAdminRoutes(rg, db, cfg)
}

// setupAuthRoutes sets up authentication related routes
func setupAuthRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db, cfg)

	auth := rg.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)

		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.POST("/logout", authHandler.Logout)
			protected.GET("/profile", authHandler.GetProfile)
		}
	}
}

// setupCatalogRoutes sets up product, supplier and warehouse routes
func setupCatalogRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	productHandler := handlers.NewProductHandler(db, cfg)
	supplierHandler := handlers.NewSupplierHandler(db, cfg)
	warehouseHandler := handlers.NewWarehouseHandler(db, cfg)

	products := rg.Group("/products")
	products.Use(middleware.AuthMiddleware(cfg))
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/:id", productHandler.GetProduct)
		products.POST("", productHandler.CreateProduct)
		products.PUT("/:id", productHandler.UpdateProduct)
		products.DELETE("/:id", productHandler.DeleteProduct)
	}

	suppliers := rg.Group("/suppliers")
	suppliers.Use(middleware.AuthMiddleware(cfg))
	{
		suppliers.GET("", supplierHandler.GetSuppliers)
		suppliers.GET("/:id", supplierHandler.GetSupplier)
		suppliers.POST("", supplierHandler.CreateSupplier)
		suppliers.PUT("/:id", supplierHandler.UpdateSupplier)
		suppliers.DELETE("/:id", supplierHandler.DeleteSupplier)
	}

	warehouses := rg.Group("/warehouses")
	warehouses.Use(middleware.AuthMiddleware(cfg))
	{
		warehouses.GET("", warehouseHandler.GetWarehouses)
		warehouses.GET("/:id", warehouseHandler.GetWarehouse)
		warehouses.POST("", warehouseHandler.CreateWarehouse)
		warehouses.PUT("/:id", warehouseHandler.UpdateWarehouse)
		warehouses.DELETE("/:id", warehouseHandler.DeleteWarehouse)
		warehouses.POST("/:id/recompute", warehouseHandler.RecomputeUsage)
	}
}

// setupInventoryRoutes sets up stock state, batch movement and ledger routes
func setupInventoryRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	inventoryHandler := handlers.NewInventoryHandler(db, cfg)

	inv := rg.Group("/inventory")
	inv.Use(middleware.AuthMiddleware(cfg))
	{
		inv.GET("", inventoryHandler.GetInventory)
		inv.GET("/quantity", inventoryHandler.GetQuantity)
		inv.POST("/import", inventoryHandler.ImportStock)
		inv.POST("/export", inventoryHandler.ExportStock)
		inv.GET("/transactions", inventoryHandler.GetTransactions)
		inv.GET("/transactions/export", inventoryHandler.ExportTransactionsCSV)
	}
}

// setupDocumentRoutes sets up transfer, audit and order routes
func setupDocumentRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	transferHandler := handlers.NewTransferHandler(db, cfg)
	auditHandler := handlers.NewAuditHandler(db, cfg)
	orderHandler := handlers.NewOrderHandler(db, cfg)
	salesHandler := handlers.NewSalesHandler(db, cfg)

	transfers := rg.Group("/transfers")
	transfers.Use(middleware.AuthMiddleware(cfg))
	{
		transfers.GET("", transferHandler.GetTransfers)
		transfers.GET("/:id", transferHandler.GetTransfer)
		transfers.POST("", transferHandler.CreateTransfer)
		transfers.PUT("/:id/status", transferHandler.UpdateTransferStatus)
		transfers.DELETE("/:id", transferHandler.DeleteTransfer)
	}

	audits := rg.Group("/inventory/audits")
	audits.Use(middleware.AuthMiddleware(cfg))
	{
		audits.GET("", auditHandler.GetAudits)
		audits.GET("/:id", auditHandler.GetAudit)
		audits.POST("", auditHandler.CreateAudit)
		audits.DELETE("/:id", auditHandler.DeleteAudit)
	}

	orders := rg.Group("/orders")
	orders.Use(middleware.AuthMiddleware(cfg))
	{
		orders.GET("", orderHandler.GetOrders)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.POST("", orderHandler.CreateOrder)
		orders.PUT("/:id/status", orderHandler.UpdateOrderStatus)
		orders.DELETE("/:id", orderHandler.DeleteOrder)
	}

	salesOrders := rg.Group("/sales")
	salesOrders.Use(middleware.AuthMiddleware(cfg))
	{
		salesOrders.GET("", salesHandler.GetSalesOrders)
		salesOrders.GET("/:id", salesHandler.GetSalesOrder)
		salesOrders.POST("", salesHandler.CreateSalesOrder)
		salesOrders.PUT("/:id/status", salesHandler.UpdateSalesOrderStatus)
		salesOrders.DELETE("/:id", salesHandler.DeleteSalesOrder)
	}
}

// setupReportRoutes sets up dashboard and reporting routes
func setupReportRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	reportHandler := handlers.NewReportHandler(db, cfg)

	reports := rg.Group("/reports")
	reports.Use(middleware.AuthMiddleware(cfg))
	{
		reports.GET("/dashboard", reportHandler.GetDashboard)
		reports.GET("/low-stock", reportHandler.GetLowStock)
		reports.GET("/movements", reportHandler.GetMovementTotals)
	}
}

// setupAdminRoutes sets up admin-only routes
func setupAdminRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	userHandler := handlers.NewUserHandler(db, cfg)

	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg))
	admin.Use(middleware.AdminMiddleware())
	{
		users := admin.Group("/users")
		{
			users.GET("", userHandler.GetUsers)
			users.PUT("/:id/status", userHandler.SetActive)
			users.DELETE("/:id", userHandler.DeleteUser)
		}
	}
}
