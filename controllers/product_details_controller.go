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

// GetProductDetails returns a product with its full price breakdown.
// Optional quantity/unit query parameters price a specific amount, e.g.
// ?quantity=250&unit=g for a product stocked in kg.
func GetProductDetails(c *gin.Context) {
	utils.LogInfo("GetProductDetails called")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid product ID", nil)
		return
	}

	var product models.Product
	if err := config.DB.Preload("Category").Preload("Discounts").First(&product, uint(id)).Error; err != nil {
		utils.LogError("Product not found: %d: %v", id, err)
		utils.NotFound(c, "Product not found")
		return
	}

	quantity := decimal.NewFromInt(1)
	unit := product.StockUnit
	if q := c.Query("quantity"); q != "" {
		parsed, err := decimal.NewFromString(q)
		if err != nil || !parsed.IsPositive() {
			utils.BadRequest(c, "Invalid quantity", nil)
			return
		}
		quantity = parsed
	}
	if u := c.Query("unit"); u != "" {
		if !engine.Units().Knows(u) {
			utils.BadRequest(c, "Unknown unit", gin.H{"unit": u})
			return
		}
		unit = u
	}

	breakdown := engine.PriceBreakdown(&product, quantity, unit)

	var activeDiscount gin.H
	if d := pricing.ActiveDiscount(&product); d != nil {
		activeDiscount = gin.H{
			"discount_type":  d.DiscountType,
			"discount_value": d.DiscountValue,
			"start_date":     d.StartDate,
			"end_date":       d.EndDate,
		}
	}

	utils.Success(c, "Product retrieved successfully", gin.H{
		"product": toListEntry(&product),
		"pricing": gin.H{
			"quantity":  quantity,
			"unit":      unit,
			"breakdown": breakdown,
		},
		"active_discount": activeDiscount,
	})
}
