package controllers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm/clause"

	"github.com/Rahul-624/FreshMart/config"
	"github.com/Rahul-624/FreshMart/models"
	"github.com/Rahul-624/FreshMart/utils"
)

// CheckoutRequest represents the checkout payload
type CheckoutRequest struct {
	CustomerID    uint   `json:"customer_id" binding:"required"`
	PaymentMethod string `json:"payment_method" binding:"required"`
}

// Checkout converts a customer's cart into an order. The whole flow runs
// in one transaction with each product row locked, so stock checks and
// decrements cannot race with a concurrent checkout or price update.
// Line prices are snapshotted onto the order items.
func Checkout(c *gin.Context) {
	utils.LogInfo("Checkout called")
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid checkout request: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}
	if req.PaymentMethod != "COD" && req.PaymentMethod != "RAZORPAY" {
		utils.BadRequest(c, "Unsupported payment method", gin.H{"payment_method": req.PaymentMethod})
		return
	}

	customer, ok := loadCartCustomer(c, req.CustomerID)
	if !ok {
		return
	}

	var lines []models.Cart
	if err := config.DB.Where("customer_id = ?", req.CustomerID).Order("created_at ASC").Find(&lines).Error; err != nil {
		utils.LogError("Failed to fetch cart for customer %d: %v", req.CustomerID, err)
		utils.InternalServerError(c, "Failed to fetch cart", err.Error())
		return
	}
	if len(lines) == 0 {
		utils.BadRequest(c, "Cart is empty", nil)
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start checkout transaction: %v", tx.Error)
		utils.InternalServerError(c, "Failed to start checkout", tx.Error.Error())
		return
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			utils.LogError("Checkout panicked for customer %d: %v", req.CustomerID, r)
			utils.InternalServerError(c, "Checkout failed", nil)
		}
	}()

	order := models.Order{
		CustomerID:    customer.ID,
		Status:        models.OrderStatusPlaced,
		PaymentMethod: req.PaymentMethod,
		Reference:     uuid.New().String(),
	}

	var orderItems []models.OrderItem
	for _, line := range lines {
		var product models.Product
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Preload("Discounts").First(&product, line.ProductID).Error; err != nil {
			tx.Rollback()
			utils.LogError("Product not found during checkout: %d: %v", line.ProductID, err)
			utils.NotFound(c, fmt.Sprintf("Product %d is no longer available", line.ProductID))
			return
		}
		if !product.IsActive {
			tx.Rollback()
			utils.BadRequest(c, fmt.Sprintf("%s is no longer available", product.Name), nil)
			return
		}

		factor, err := engine.Units().Factor(product.StockUnit, line.Unit)
		if err != nil {
			tx.Rollback()
			utils.LogError("Unit conversion failed during checkout for product %d: %v", product.ID, err)
			utils.BadRequest(c, fmt.Sprintf("Cannot price %s in unit %q", product.Name, line.Unit), nil)
			return
		}
		qtyInStock := line.Quantity.Div(factor)

		if product.StockQuantity.LessThan(qtyInStock) {
			tx.Rollback()
			utils.LogError("Insufficient stock for product %d: have %s, need %s", product.ID, product.StockQuantity, qtyInStock)
			utils.Conflict(c, fmt.Sprintf("Insufficient stock for %s", product.Name), gin.H{
				"available": product.StockQuantity,
				"requested": qtyInStock,
				"unit":      product.StockUnit,
			})
			return
		}

		effective := engine.EffectivePrice(&product)
		lineTotal := effective.Mul(qtyInStock).Round(2)
		lineDiscount := product.RegularPrice.Sub(effective).Mul(qtyInStock).Round(2)

		product.StockQuantity = product.StockQuantity.Sub(qtyInStock)
		if err := tx.Model(&models.Product{}).Where("id = ?", product.ID).
			Update("stock_quantity", product.StockQuantity).Error; err != nil {
			tx.Rollback()
			utils.LogError("Failed to decrement stock for product %d: %v", product.ID, err)
			utils.InternalServerError(c, "Failed to reserve stock", err.Error())
			return
		}

		orderItems = append(orderItems, models.OrderItem{
			ProductID:    product.ID,
			Quantity:     line.Quantity,
			Unit:         line.Unit,
			RegularPrice: product.RegularPrice.Round(2),
			Price:        effective,
			Discount:     lineDiscount,
			Total:        lineTotal,
		})

		order.Subtotal = order.Subtotal.Add(lineTotal)
		order.Discount = order.Discount.Add(lineDiscount)
	}

	order.Subtotal = order.Subtotal.Round(2)
	order.Discount = order.Discount.Round(2)
	order.Total = order.Subtotal
	order.OrderItems = orderItems

	if err := tx.Create(&order).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to create order for customer %d: %v", customer.ID, err)
		utils.InternalServerError(c, "Failed to create order", err.Error())
		return
	}

	if err := tx.Where("customer_id = ?", customer.ID).Delete(&models.Cart{}).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to clear cart for customer %d: %v", customer.ID, err)
		utils.InternalServerError(c, "Failed to clear cart", err.Error())
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit checkout for customer %d: %v", customer.ID, err)
		utils.InternalServerError(c, "Failed to complete checkout", err.Error())
		return
	}

	utils.Cache.Invalidate(utils.ProductCachePrefix)

	if customer.Email != "" {
		go func(email, name, reference string, total decimal.Decimal) {
			if err := utils.SendOrderConfirmation(email, name, reference, total.StringFixed(2)); err != nil {
				utils.LogError("Failed to send order confirmation to %s: %v", email, err)
			}
		}(customer.Email, customer.Name, order.Reference, order.Total)
	}

	utils.LogInfo("Order %s placed for customer %d, total %s", order.Reference, customer.ID, order.Total)
	utils.Created(c, "Order placed successfully", gin.H{
		"order_id":       order.ID,
		"reference":      order.Reference,
		"subtotal":       order.Subtotal,
		"discount":       order.Discount,
		"total":          order.Total,
		"status":         order.Status,
		"payment_method": order.PaymentMethod,
		"items":          len(orderItems),
	})
}
