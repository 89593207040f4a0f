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

// AddToCartRequest represents the add-to-cart payload. Quantity is in
// the given unit, which may differ from the product's stock unit.
type AddToCartRequest struct {
	CustomerID uint            `json:"customer_id" binding:"required"`
	ProductID  uint            `json:"product_id" binding:"required"`
	Quantity   decimal.Decimal `json:"quantity" binding:"required"`
	Unit       string          `json:"unit"`
}

func loadCartCustomer(c *gin.Context, customerID uint) (*models.Customer, bool) {
	var customer models.Customer
	if err := config.DB.First(&customer, customerID).Error; err != nil {
		utils.LogError("Customer not found: %d: %v", customerID, err)
		utils.NotFound(c, "Customer not found")
		return nil, false
	}
	if customer.Blocked {
		utils.Forbidden(c, "Customer is blocked")
		return nil, false
	}
	return &customer, true
}

// AddToCart adds a product line to a customer's cart, merging with an
// existing line for the same product and unit.
func AddToCart(c *gin.Context) {
	utils.LogInfo("AddToCart called")
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid add-to-cart request: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}
	if !req.Quantity.IsPositive() {
		utils.BadRequest(c, "Quantity must be positive", nil)
		return
	}

	if _, ok := loadCartCustomer(c, req.CustomerID); !ok {
		return
	}

	product, err := findSaleProduct(req.ProductID)
	if err != nil {
		if utils.IsNotFoundError(err) {
			utils.LogError("Product not found: %d", req.ProductID)
		}
		utils.RespondError(c, err)
		return
	}

	unit := req.Unit
	if unit == "" {
		unit = product.StockUnit
	}
	if !engine.Units().Knows(unit) {
		utils.BadRequest(c, "Unknown unit", gin.H{"unit": unit})
		return
	}
	if err := ensureStockAvailable(product, req.Quantity, unit); err != nil {
		utils.RespondError(c, err)
		return
	}

	var line models.Cart
	err = config.DB.Where("customer_id = ? AND product_id = ? AND unit = ?", req.CustomerID, req.ProductID, unit).First(&line).Error
	if err == nil {
		line.Quantity = line.Quantity.Add(req.Quantity)
		if err := config.DB.Save(&line).Error; err != nil {
			utils.LogError("Failed to update cart line %d: %v", line.ID, err)
			utils.InternalServerError(c, "Failed to update cart", err.Error())
			return
		}
	} else {
		line = models.Cart{
			CustomerID: req.CustomerID,
			ProductID:  req.ProductID,
			Quantity:   req.Quantity,
			Unit:       unit,
		}
		if err := config.DB.Create(&line).Error; err != nil {
			utils.LogError("Failed to add cart line: %v", err)
			utils.InternalServerError(c, "Failed to add to cart", err.Error())
			return
		}
	}

	utils.LogInfo("Cart line saved for customer %d, product %d", req.CustomerID, req.ProductID)
	utils.Success(c, "Added to cart successfully", line)
}

// UpdateCartItem changes the quantity on a cart line
func UpdateCartItem(c *gin.Context) {
	utils.LogInfo("UpdateCartItem called")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid cart item ID", nil)
		return
	}

	var req struct {
		Quantity decimal.Decimal `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}
	if !req.Quantity.IsPositive() {
		utils.BadRequest(c, "Quantity must be positive", nil)
		return
	}

	var line models.Cart
	if err := config.DB.First(&line, uint(id)).Error; err != nil {
		utils.NotFound(c, "Cart item not found")
		return
	}

	line.Quantity = req.Quantity
	if err := config.DB.Save(&line).Error; err != nil {
		utils.LogError("Failed to update cart line %d: %v", line.ID, err)
		utils.InternalServerError(c, "Failed to update cart", err.Error())
		return
	}

	utils.Success(c, "Cart updated successfully", line)
}

// RemoveCartItem deletes a cart line
func RemoveCartItem(c *gin.Context) {
	utils.LogInfo("RemoveCartItem called")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid cart item ID", nil)
		return
	}

	var line models.Cart
	if err := config.DB.First(&line, uint(id)).Error; err != nil {
		utils.NotFound(c, "Cart item not found")
		return
	}

	if err := config.DB.Delete(&line).Error; err != nil {
		utils.LogError("Failed to remove cart line %d: %v", line.ID, err)
		utils.InternalServerError(c, "Failed to remove from cart", err.Error())
		return
	}

	utils.Success(c, "Removed from cart successfully", nil)
}

// GetCart returns a customer's cart with per-line pricing and totals
func GetCart(c *gin.Context) {
	utils.LogInfo("GetCart called")
	customerID, err := strconv.ParseUint(c.Param("customerId"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid customer ID", nil)
		return
	}

	if _, ok := loadCartCustomer(c, uint(customerID)); !ok {
		return
	}

	var lines []models.Cart
	if err := config.DB.Preload("Product").Preload("Product.Discounts").
		Where("customer_id = ?", uint(customerID)).Order("created_at ASC").Find(&lines).Error; err != nil {
		utils.LogError("Failed to fetch cart for customer %d: %v", customerID, err)
		utils.InternalServerError(c, "Failed to fetch cart", err.Error())
		return
	}

	items := make([]pricing.CartItem, 0, len(lines))
	view := make([]gin.H, 0, len(lines))
	for i := range lines {
		line := &lines[i]
		item := pricing.CartItem{Product: &line.Product, Quantity: line.Quantity, Unit: line.Unit}
		items = append(items, item)

		lineTotal := engine.PriceForQuantity(&line.Product, line.Quantity, line.Unit)
		view = append(view, gin.H{
			"id":            line.ID,
			"product_id":    line.ProductID,
			"product_name":  line.Product.Name,
			"quantity":      line.Quantity,
			"unit":          line.Unit,
			"regular_price": line.Product.RegularPrice.Round(2),
			"selling_price": engine.EffectivePrice(&line.Product),
			"line_total":    lineTotal,
			"available":     line.Product.IsActive,
		})
	}

	summary := engine.CartTotal(items)
	utils.Success(c, "Cart retrieved successfully", gin.H{
		"items":   view,
		"summary": summary,
	})
}
