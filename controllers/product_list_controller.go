package controllers

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Rahul-624/FreshMart/config"
	"github.com/Rahul-624/FreshMart/models"
	"github.com/Rahul-624/FreshMart/pricing"
	"github.com/Rahul-624/FreshMart/utils"
)

// productListEntry is the storefront view of one product with its
// computed selling price.
type productListEntry struct {
	ID                 uint            `json:"id"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	CategoryID         uint            `json:"category_id"`
	CategoryName       string          `json:"category_name"`
	RegularPrice       decimal.Decimal `json:"regular_price"`
	SellingPrice       decimal.Decimal `json:"selling_price"`
	HasDiscount        bool            `json:"has_discount"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	StockQuantity      decimal.Decimal `json:"stock_quantity"`
	StockUnit          string          `json:"stock_unit"`
	ImageURL           string          `json:"image_url"`
	IsActive           bool            `json:"is_active"`
}

func toListEntry(product *models.Product) productListEntry {
	return productListEntry{
		ID:                 product.ID,
		Name:               product.Name,
		Description:        product.Description,
		CategoryID:         product.CategoryID,
		CategoryName:       product.Category.Name,
		RegularPrice:       product.RegularPrice.Round(2),
		SellingPrice:       engine.EffectivePrice(product),
		HasDiscount:        pricing.ActiveDiscount(product) != nil,
		DiscountPercentage: engine.DiscountPercentage(product),
		StockQuantity:      product.StockQuantity,
		StockUnit:          product.StockUnit,
		ImageURL:           product.ImageURL,
		IsActive:           product.IsActive,
	}
}

// productListCacheKey derives a stable cache key from the filter set
func productListCacheKey(c *gin.Context, pagination *utils.Pagination) string {
	raw := fmt.Sprintf("search=%s&category=%s&sort=%s&include_inactive=%s&page=%d&limit=%d",
		c.Query("search"), c.Query("category_id"), c.Query("sort"),
		c.Query("include_inactive"), pagination.Page, pagination.Limit)
	sum := sha256.Sum256([]byte(raw))
	return utils.ProductCachePrefix + hex.EncodeToString(sum[:16])
}

// ListProducts returns the product catalog with filters and pagination.
// Results are cached briefly; any write through the catalog or pricing
// endpoints invalidates the whole prefix.
func ListProducts(c *gin.Context) {
	utils.LogInfo("ListProducts called")
	pagination := utils.NewPagination(c)

	cacheKey := productListCacheKey(c, pagination)
	if cached, ok := utils.Cache.Get(cacheKey); ok {
		utils.LogDebug("Product list served from cache: %s", cacheKey)
		c.Data(http.StatusOK, "application/json", []byte(cached))
		return
	}

	query := config.DB.Model(&models.Product{}).
		Joins("JOIN categories ON categories.id = products.category_id").
		Where("categories.blocked = ?", false).
		Preload("Category").
		Preload("Discounts")

	if c.Query("include_inactive") != "true" {
		query = query.Where("products.is_active = ?", true)
	}
	if search := c.Query("search"); search != "" {
		term := "%" + utils.SanitizeString(search) + "%"
		query = query.Where("products.name ILIKE ? OR products.description ILIKE ?", term, term)
	}
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("products.category_id = ?", categoryID)
	}

	switch c.Query("sort") {
	case "price_asc":
		query = query.Order("products.regular_price ASC")
	case "price_desc":
		query = query.Order("products.regular_price DESC")
	case "newest":
		query = query.Order("products.created_at DESC")
	default:
		query = query.Order("products.name ASC")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count products: %v", err)
		utils.InternalServerError(c, "Failed to fetch products", err.Error())
		return
	}

	var products []models.Product
	if err := query.Offset(pagination.Offset).Limit(pagination.Limit).Find(&products).Error; err != nil {
		utils.LogError("Failed to fetch products: %v", err)
		utils.InternalServerError(c, "Failed to fetch products", err.Error())
		return
	}

	entries := make([]productListEntry, 0, len(products))
	for i := range products {
		entries = append(entries, toListEntry(&products[i]))
	}

	payload := gin.H{
		"status":  "success",
		"message": "Products retrieved successfully",
		"data":    entries,
		"pagination": gin.H{
			"total":       total,
			"page":        pagination.Page,
			"per_page":    pagination.Limit,
			"total_pages": (total + int64(pagination.Limit) - 1) / int64(pagination.Limit),
		},
	}

	if body, err := json.Marshal(payload); err == nil {
		utils.Cache.Put(cacheKey, string(body), 2*time.Minute)
	}
	c.JSON(http.StatusOK, payload)
}
