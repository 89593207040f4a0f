package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Rahul-624/FreshMart/config"
	"github.com/Rahul-624/FreshMart/models"
	"github.com/Rahul-624/FreshMart/utils"
)

// CategoryRequest represents the category create/update payload
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreateCategory handles category creation
func CreateCategory(c *gin.Context) {
	utils.LogInfo("CreateCategory called")
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid category request: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}

	req.Name = utils.SanitizeString(req.Name)
	if ok, msg := utils.ValidateName(req.Name); !ok {
		utils.BadRequest(c, "Invalid category name", msg)
		return
	}

	var existing models.Category
	if err := config.DB.Where("LOWER(name) = LOWER(?)", req.Name).First(&existing).Error; err == nil {
		utils.LogError("Category already exists: %s", req.Name)
		utils.Conflict(c, "Category already exists", nil)
		return
	}

	category := models.Category{
		Name:        req.Name,
		Description: utils.SanitizeString(req.Description),
	}
	if err := config.DB.Create(&category).Error; err != nil {
		utils.LogError("Failed to create category: %v", err)
		utils.InternalServerError(c, "Failed to create category", err.Error())
		return
	}

	utils.Cache.Invalidate(utils.CategoryCachePrefix)
	utils.LogInfo("Category created: %s (ID: %d)", category.Name, category.ID)
	utils.Created(c, "Category created successfully", category)
}

// ListCategories returns all categories with pagination
func ListCategories(c *gin.Context) {
	utils.LogInfo("ListCategories called")
	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.Category{})
	if search := c.Query("search"); search != "" {
		query = query.Where("name ILIKE ?", "%"+utils.SanitizeString(search)+"%")
	}
	if c.Query("include_blocked") != "true" {
		query = query.Where("blocked = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count categories: %v", err)
		utils.InternalServerError(c, "Failed to fetch categories", err.Error())
		return
	}

	var categories []models.Category
	if err := query.Order("name ASC").Offset(pagination.Offset).Limit(pagination.Limit).Find(&categories).Error; err != nil {
		utils.LogError("Failed to fetch categories: %v", err)
		utils.InternalServerError(c, "Failed to fetch categories", err.Error())
		return
	}

	utils.SuccessWithPagination(c, "Categories retrieved successfully", categories, total, pagination.Page, pagination.Limit)
}

// GetCategory returns a single category with its products
func GetCategory(c *gin.Context) {
	utils.LogInfo("GetCategory called")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid category ID", nil)
		return
	}

	var category models.Category
	if err := config.DB.Preload("Products", "is_active = ?", true).First(&category, uint(id)).Error; err != nil {
		utils.LogError("Category not found: %d: %v", id, err)
		utils.NotFound(c, "Category not found")
		return
	}

	utils.Success(c, "Category retrieved successfully", category)
}

// UpdateCategory handles category updates
func UpdateCategory(c *gin.Context) {
	utils.LogInfo("UpdateCategory called")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid category ID", nil)
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid category request: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}

	var category models.Category
	if err := config.DB.First(&category, uint(id)).Error; err != nil {
		utils.NotFound(c, "Category not found")
		return
	}

	req.Name = utils.SanitizeString(req.Name)
	var existing models.Category
	if err := config.DB.Where("LOWER(name) = LOWER(?) AND id != ?", req.Name, category.ID).First(&existing).Error; err == nil {
		utils.Conflict(c, "Another category already uses this name", nil)
		return
	}

	category.Name = req.Name
	category.Description = utils.SanitizeString(req.Description)
	if err := config.DB.Save(&category).Error; err != nil {
		utils.LogError("Failed to update category %d: %v", category.ID, err)
		utils.InternalServerError(c, "Failed to update category", err.Error())
		return
	}

	utils.Cache.Invalidate(utils.CategoryCachePrefix)
	utils.LogInfo("Category updated: %s (ID: %d)", category.Name, category.ID)
	utils.Success(c, "Category updated successfully", category)
}

// ToggleCategoryBlock blocks or unblocks a category. Products in a blocked
// category stay in the catalog but are hidden from storefront listings.
func ToggleCategoryBlock(c *gin.Context) {
	utils.LogInfo("ToggleCategoryBlock called")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid category ID", nil)
		return
	}

	var category models.Category
	if err := config.DB.First(&category, uint(id)).Error; err != nil {
		utils.NotFound(c, "Category not found")
		return
	}

	category.Blocked = !category.Blocked
	if err := config.DB.Save(&category).Error; err != nil {
		utils.LogError("Failed to toggle block for category %d: %v", category.ID, err)
		utils.InternalServerError(c, "Failed to update category", err.Error())
		return
	}

	utils.Cache.Invalidate(utils.CategoryCachePrefix)
	utils.Cache.Invalidate(utils.ProductCachePrefix)
	message := "Category unblocked successfully"
	if category.Blocked {
		message = "Category blocked successfully"
	}
	utils.Success(c, message, gin.H{"id": category.ID, "blocked": category.Blocked})
}

// DeleteCategory removes a category that has no products
func DeleteCategory(c *gin.Context) {
	utils.LogInfo("DeleteCategory called")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid category ID", nil)
		return
	}

	var category models.Category
	if err := config.DB.First(&category, uint(id)).Error; err != nil {
		utils.NotFound(c, "Category not found")
		return
	}

	var productCount int64
	if err := config.DB.Model(&models.Product{}).Where("category_id = ?", category.ID).Count(&productCount).Error; err != nil {
		utils.InternalServerError(c, "Failed to check category products", err.Error())
		return
	}
	if productCount > 0 {
		utils.Conflict(c, "Cannot delete category with products", gin.H{"product_count": productCount})
		return
	}

	if err := config.DB.Delete(&category).Error; err != nil {
		utils.LogError("Failed to delete category %d: %v", category.ID, err)
		utils.InternalServerError(c, "Failed to delete category", err.Error())
		return
	}

	utils.Cache.Invalidate(utils.CategoryCachePrefix)
	utils.LogInfo("Category deleted: %s (ID: %d)", category.Name, category.ID)
	utils.Success(c, "Category deleted successfully", nil)
}
