package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Rahul-624/FreshMart/config"
	"github.com/Rahul-624/FreshMart/models"
	"github.com/Rahul-624/FreshMart/utils"
)

// AdminAuthMiddleware authenticates back-office requests and loads the
// admin into the request context. API clients send a Bearer JWT; browser
// clients fall back to the cookie session set at login.
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var adminID uint

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString := strings.Replace(authHeader, "Bearer ", "", 1)
			if tokenString == authHeader {
				utils.LogError("Invalid Bearer token format")
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Please login for access"})
				c.Abort()
				return
			}

			if os.Getenv("JWT_SECRET") == "" {
				utils.LogError("JWT secret not configured")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "JWT secret not configured"})
				c.Abort()
				return
			}

			id, err := utils.ValidateAdminToken(tokenString)
			if err != nil {
				utils.LogError("Invalid admin token: %v", err)
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Please login for access"})
				c.Abort()
				return
			}
			adminID = id
		} else {
			adminID = AdminIDFromSession(c)
			if adminID == 0 {
				utils.LogError("Request without token or session")
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
				c.Abort()
				return
			}
		}

		var admin models.Admin
		if err := config.DB.First(&admin, adminID).Error; err != nil {
			utils.LogError("Admin not found: %v", err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin not found"})
			c.Abort()
			return
		}

		if !admin.IsActive {
			utils.LogError("Inactive admin attempted access: %d", admin.ID)
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin account is inactive"})
			c.Abort()
			return
		}

		c.Set("admin", admin)
		c.Next()
	}
}
