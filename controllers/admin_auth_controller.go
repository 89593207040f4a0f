package controllers

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Rahul-624/FreshMart/config"
	"github.com/Rahul-624/FreshMart/middleware"
	"github.com/Rahul-624/FreshMart/models"
	"github.com/Rahul-624/FreshMart/utils"
)

// AdminLoginRequest represents the admin login request
type AdminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AdminLogin handles admin authentication. A successful login returns a
// JWT and also binds the admin to the cookie session.
func AdminLogin(c *gin.Context) {
	utils.LogInfo("AdminLogin called")
	var req AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid login request: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}
	utils.LogDebug("Processing login request for email: %s", req.Email)

	var admin models.Admin
	if err := config.DB.Where("email = ?", req.Email).First(&admin).Error; err != nil {
		utils.LogError("Admin not found for email: %s: %v", req.Email, err)
		utils.Unauthorized(c, "Invalid credentials")
		return
	}

	if !admin.IsActive {
		utils.LogError("Inactive admin account attempted login: %s", admin.Email)
		utils.Forbidden(c, "Admin account is inactive")
		return
	}

	if !utils.CheckPassword(req.Password, admin.Password) {
		utils.LogError("Invalid password for admin: %s", admin.Email)
		utils.Unauthorized(c, "Invalid credentials")
		return
	}
	utils.LogDebug("Password verified for admin: %s", admin.Email)

	// Update last login
	admin.LastLogin = time.Now()
	if err := config.DB.Save(&admin).Error; err != nil {
		utils.LogError("Failed to update last login for admin: %s: %v", admin.Email, err)
	}

	if os.Getenv("JWT_SECRET") == "" {
		utils.LogError("JWT secret not configured")
		utils.InternalServerError(c, "JWT secret not configured", nil)
		return
	}

	tokenString, err := utils.GenerateAdminToken(&admin)
	if err != nil {
		utils.LogError("Failed to sign JWT token for admin: %s: %v", admin.Email, err)
		utils.InternalServerError(c, "Failed to generate token", err.Error())
		return
	}

	if err := middleware.SetAdminSession(c, admin.ID); err != nil {
		utils.LogError("Failed to save session for admin: %s: %v", admin.Email, err)
	}

	utils.LogInfo("Admin login successful: %s", admin.Email)
	utils.Success(c, "Login successful", gin.H{
		"token": tokenString,
		"admin": gin.H{
			"id":        admin.ID,
			"email":     admin.Email,
			"firstName": admin.FirstName,
			"lastName":  admin.LastName,
		},
	})
}

// AdminLogout clears the admin session; the client discards its JWT copy
func AdminLogout(c *gin.Context) {
	utils.LogInfo("AdminLogout called")
	if err := middleware.ClearAdminSession(c); err != nil {
		utils.LogError("Failed to clear admin session: %v", err)
	}
	utils.Success(c, "Logged out successfully", nil)
}

// ChangePasswordRequest represents the password change payload
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// ChangeAdminPassword lets the logged-in admin rotate their password
func ChangeAdminPassword(c *gin.Context) {
	utils.LogInfo("ChangeAdminPassword called")
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid password change request: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}

	adminVal, _ := c.Get("admin")
	admin := adminVal.(models.Admin)

	if !utils.CheckPassword(req.CurrentPassword, admin.Password) {
		utils.LogError("Wrong current password for admin: %s", admin.Email)
		utils.Unauthorized(c, "Current password is incorrect")
		return
	}

	if ok, msg := utils.ValidatePassword(req.NewPassword); !ok {
		utils.BadRequest(c, "Weak password", msg)
		return
	}

	hashed, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		utils.LogError("Failed to hash new password for admin: %s: %v", admin.Email, err)
		utils.InternalServerError(c, "Failed to update password", nil)
		return
	}

	if err := config.DB.Model(&admin).Update("password", hashed).Error; err != nil {
		utils.LogError("Failed to update password for admin: %s: %v", admin.Email, err)
		utils.InternalServerError(c, "Failed to update password", err.Error())
		return
	}

	utils.LogInfo("Password changed for admin: %s", admin.Email)
	utils.Success(c, "Password updated successfully", nil)
}

// CreateSampleAdmin seeds a default admin account when none exists. It is
// called once on startup so a fresh deployment can log in.
func CreateSampleAdmin() error {
	var count int64
	if err := config.DB.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		utils.LogInfo("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin seeding")
		return nil
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.Admin{
		Email:     email,
		Password:  hashed,
		FirstName: "Store",
		LastName:  "Admin",
		IsActive:  true,
	}
	if err := config.DB.Create(&admin).Error; err != nil {
		return err
	}
	utils.LogInfo("Seeded admin account: %s", email)
	return nil
}
