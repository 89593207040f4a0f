package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Rahul-624/FreshMart/config"
	"github.com/Rahul-624/FreshMart/models"
	"github.com/Rahul-624/FreshMart/pricing"
	"github.com/Rahul-624/FreshMart/utils"
)

// engine is the shared pricing engine for the catalog controllers.
// Unit-conversion fallbacks are logged through the error log.
var engine = pricing.NewEngine(utils.LogError)

// CreateProduct handles product creation. The initial price, stock and
// unit are set here; later changes must go through the bulk price-update
// endpoint so they land in the audit trail.
func CreateProduct(c *gin.Context) {
	utils.LogInfo("CreateProduct called")

	name := utils.SanitizeString(c.PostForm("name"))
	description := utils.SanitizeString(c.PostForm("description"))
	categoryIDStr := c.PostForm("category_id")
	priceStr := c.PostForm("regular_price")
	stockStr := c.DefaultPostForm("stock_quantity", "0")
	stockUnit := c.DefaultPostForm("stock_unit", "pc")

	if ok, msg := utils.ValidateName(name); !ok {
		utils.BadRequest(c, "Invalid product name", msg)
		return
	}

	categoryID, err := strconv.ParseUint(categoryIDStr, 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid category ID", nil)
		return
	}
	var category models.Category
	if err := config.DB.First(&category, uint(categoryID)).Error; err != nil {
		utils.LogError("Category not found: %s: %v", categoryIDStr, err)
		utils.NotFound(c, "Category not found")
		return
	}

	price, err := decimal.NewFromString(priceStr)
	if err != nil || price.IsNegative() {
		utils.BadRequest(c, "Invalid regular price", nil)
		return
	}
	stock, err := decimal.NewFromString(stockStr)
	if err != nil || stock.IsNegative() {
		utils.BadRequest(c, "Invalid stock quantity", nil)
		return
	}
	if !engine.Units().Knows(stockUnit) {
		utils.BadRequest(c, "Unknown stock unit", gin.H{"unit": stockUnit})
		return
	}

	var imageURL string
	if file, err := c.FormFile("image"); err == nil {
		if err := utils.ValidateImageFile(file); err != nil {
			utils.BadRequest(c, "Invalid image file", err.Error())
			return
		}
		path, err := utils.SaveUploadedFile(file, "uploads/products")
		if err != nil {
			utils.LogError("Failed to save product image: %v", err)
			utils.InternalServerError(c, "Failed to save image", err.Error())
			return
		}
		imageURL = "/" + path
	}

	adminVal, _ := c.Get("admin")
	admin := adminVal.(models.Admin)

	product := models.Product{
		Name:          name,
		Description:   description,
		CategoryID:    uint(categoryID),
		RegularPrice:  price.Round(2),
		StockQuantity: stock,
		StockUnit:     stockUnit,
		ImageURL:      imageURL,
		IsActive:      true,
		UpdatedBy:     admin.ID,
	}
	if err := config.DB.Create(&product).Error; err != nil {
		utils.LogError("Failed to create product: %v", err)
		utils.InternalServerError(c, "Failed to create product", err.Error())
		return
	}

	utils.Cache.Invalidate(utils.ProductCachePrefix)
	utils.LogInfo("Product created: %s (ID: %d)", product.Name, product.ID)
	utils.Created(c, "Product created successfully", product)
}

// UpdateProductRequest covers the editable non-price fields. Price, stock
// and discounts are deliberately absent here.
type UpdateProductRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	CategoryID  *uint   `json:"category_id"`
	StockUnit   *string `json:"stock_unit"`
}

// UpdateProduct handles updates to a product's descriptive fields
func UpdateProduct(c *gin.Context) {
	utils.LogInfo("UpdateProduct called")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid product update request: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}

	var product models.Product
	if err := config.DB.First(&product, uint(id)).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	if req.Name != nil {
		name := utils.SanitizeString(*req.Name)
		if ok, msg := utils.ValidateName(name); !ok {
			utils.BadRequest(c, "Invalid product name", msg)
			return
		}
		product.Name = name
	}
	if req.Description != nil {
		product.Description = utils.SanitizeString(*req.Description)
	}
	if req.CategoryID != nil {
		var category models.Category
		if err := config.DB.First(&category, *req.CategoryID).Error; err != nil {
			utils.NotFound(c, "Category not found")
			return
		}
		product.CategoryID = *req.CategoryID
	}
	if req.StockUnit != nil {
		if !engine.Units().Knows(*req.StockUnit) {
			utils.BadRequest(c, "Unknown stock unit", gin.H{"unit": *req.StockUnit})
			return
		}
		product.StockUnit = *req.StockUnit
	}

	adminVal, _ := c.Get("admin")
	product.UpdatedBy = adminVal.(models.Admin).ID

	if err := config.DB.Save(&product).Error; err != nil {
		utils.LogError("Failed to update product %d: %v", product.ID, err)
		utils.InternalServerError(c, "Failed to update product", err.Error())
		return
	}

	utils.Cache.Invalidate(utils.ProductCachePrefix)
	utils.LogInfo("Product updated: %s (ID: %d)", product.Name, product.ID)
	utils.Success(c, "Product updated successfully", product)
}

// UpdateProductImage replaces a product's image
func UpdateProductImage(c *gin.Context) {
	utils.LogInfo("UpdateProductImage called")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var product models.Product
	if err := config.DB.First(&product, uint(id)).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		utils.BadRequest(c, "Image file is required", err.Error())
		return
	}
	if err := utils.ValidateImageFile(file); err != nil {
		utils.BadRequest(c, "Invalid image file", err.Error())
		return
	}

	path, err := utils.SaveUploadedFile(file, "uploads/products")
	if err != nil {
		utils.LogError("Failed to save product image: %v", err)
		utils.InternalServerError(c, "Failed to save image", err.Error())
		return
	}

	oldImage := product.ImageURL
	product.ImageURL = "/" + path
	if err := config.DB.Save(&product).Error; err != nil {
		utils.LogError("Failed to update product image %d: %v", product.ID, err)
		utils.InternalServerError(c, "Failed to update product", err.Error())
		return
	}
	if oldImage != "" {
		if err := utils.DeleteFile(oldImage[1:]); err != nil {
			utils.LogError("Failed to remove old product image %s: %v", oldImage, err)
		}
	}

	utils.Cache.Invalidate(utils.ProductCachePrefix)
	utils.Success(c, "Product image updated successfully", gin.H{"image_url": product.ImageURL})
}

// ToggleProductBlock activates or deactivates a product
func ToggleProductBlock(c *gin.Context) {
	utils.LogInfo("ToggleProductBlock called")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var product models.Product
	if err := config.DB.First(&product, uint(id)).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	product.IsActive = !product.IsActive
	if err := config.DB.Save(&product).Error; err != nil {
		utils.LogError("Failed to toggle block for product %d: %v", product.ID, err)
		utils.InternalServerError(c, "Failed to update product", err.Error())
		return
	}

	utils.Cache.Invalidate(utils.ProductCachePrefix)
	message := "Product activated successfully"
	if !product.IsActive {
		message = "Product deactivated successfully"
	}
	utils.Success(c, message, gin.H{"id": product.ID, "is_active": product.IsActive})
}
