package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Rahul-624/FreshMart/controllers"
	"github.com/Rahul-624/FreshMart/middleware"
)

// initShopRoutes initializes the storefront routes used at the counter.
// They run under admin auth: customers do not log in themselves.
func initShopRoutes(router *gin.RouterGroup) {
	shop := router.Group("/shop")
	shop.Use(middleware.AdminAuthMiddleware())
	{
		// Catalog browsing
		shop.GET("/products", controllers.ListProducts)
		shop.GET("/products/:id", controllers.GetProductDetails)

		// Cart
		shop.POST("/cart", controllers.AddToCart)
		shop.PUT("/cart/:id", controllers.UpdateCartItem)
		shop.DELETE("/cart/:id", controllers.RemoveCartItem)
		shop.GET("/cart/customer/:customerId", controllers.GetCart)

		// Checkout and payment
		shop.POST("/checkout", controllers.Checkout)
		shop.POST("/payment/initiate", controllers.InitiateRazorpayPayment)
		shop.POST("/payment/verify", controllers.VerifyRazorpayPayment)
	}
}
