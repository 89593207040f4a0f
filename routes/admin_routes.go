package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Rahul-624/FreshMart/controllers"
	"github.com/Rahul-624/FreshMart/middleware"
)

// initAdminRoutes initializes all back-office routes
func initAdminRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	{
		// Public admin routes
		admin.POST("/login", controllers.AdminLogin)
		admin.POST("/logout", controllers.AdminLogout)

		// Protected admin routes
		admin.Use(middleware.AdminAuthMiddleware())
		{
			// Account
			admin.PUT("/password", controllers.ChangeAdminPassword)

			// Category management
			admin.POST("/categories", controllers.CreateCategory)
			admin.GET("/categories", controllers.ListCategories)
			admin.GET("/categories/:id", controllers.GetCategory)
			admin.PUT("/categories/:id", controllers.UpdateCategory)
			admin.PATCH("/categories/:id/block", controllers.ToggleCategoryBlock)
			admin.DELETE("/categories/:id", controllers.DeleteCategory)

			// Product management
			admin.POST("/products", controllers.CreateProduct)
			admin.PUT("/products/:id", controllers.UpdateProduct)
			admin.PATCH("/products/:id/image", controllers.UpdateProductImage)
			admin.PATCH("/products/:id/block", controllers.ToggleProductBlock)

			// Bulk price updates and audit trail
			admin.PUT("/prices/bulk", controllers.BulkUpdatePrices)
			admin.GET("/products/:id/price-history", controllers.GetProductPriceHistory)
			admin.GET("/price-changes", controllers.GetRecentPriceChanges)
			admin.GET("/price-changes/range", controllers.GetPriceChangesByDateRange)
			admin.GET("/price-changes/export", controllers.ExportPriceHistoryExcel)
			admin.GET("/price-list/pdf", controllers.DownloadPriceListPDF)

			// Customer management
			admin.POST("/customers", controllers.CreateCustomer)
			admin.GET("/customers", controllers.ListCustomers)
			admin.GET("/customers/:id", controllers.GetCustomer)
			admin.PUT("/customers/:id", controllers.UpdateCustomer)
			admin.PATCH("/customers/:id/block", controllers.ToggleCustomerBlock)

			// Order management
			admin.GET("/orders", controllers.ListOrders)
			admin.GET("/orders/:id", controllers.GetOrderDetails)
			admin.PATCH("/orders/:id/status", controllers.UpdateOrderStatus)

			// Promotional broadcasts
			admin.POST("/broadcast", controllers.BroadcastMessage)
		}
	}
}
