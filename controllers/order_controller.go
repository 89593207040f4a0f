package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Rahul-624/FreshMart/config"
	"github.com/Rahul-624/FreshMart/models"
	"github.com/Rahul-624/FreshMart/utils"
)

// ListOrders returns orders with filters and pagination
func ListOrders(c *gin.Context) {
	utils.LogInfo("ListOrders called")
	pagination := utils.NewPagination(c)

	query := config.DB.Model(&models.Order{}).Preload("Customer")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if customerID := c.Query("customer_id"); customerID != "" {
		query = query.Where("customer_id = ?", customerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.LogError("Failed to count orders: %v", err)
		utils.InternalServerError(c, "Failed to fetch orders", err.Error())
		return
	}

	var orders []models.Order
	if err := query.Order("created_at DESC").Offset(pagination.Offset).Limit(pagination.Limit).Find(&orders).Error; err != nil {
		utils.LogError("Failed to fetch orders: %v", err)
		utils.InternalServerError(c, "Failed to fetch orders", err.Error())
		return
	}

	utils.SuccessWithPagination(c, "Orders retrieved successfully", orders, total, pagination.Page, pagination.Limit)
}

// GetOrderDetails returns one order with its lines
func GetOrderDetails(c *gin.Context) {
	utils.LogInfo("GetOrderDetails called")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var order models.Order
	if err := config.DB.Preload("Customer").Preload("OrderItems").Preload("OrderItems.Product").
		First(&order, uint(id)).Error; err != nil {
		utils.LogError("Order not found: %d: %v", id, err)
		utils.NotFound(c, "Order not found")
		return
	}

	utils.Success(c, "Order retrieved successfully", order)
}

// validStatusTransitions pins the allowed order lifecycle moves
var validStatusTransitions = map[string][]string{
	models.OrderStatusPlaced:    {models.OrderStatusPaid, models.OrderStatusDelivered, models.OrderStatusCancelled},
	models.OrderStatusPaid:      {models.OrderStatusDelivered, models.OrderStatusCancelled},
	models.OrderStatusDelivered: {},
	models.OrderStatusCancelled: {},
}

// UpdateOrderStatus moves an order through its lifecycle
func UpdateOrderStatus(c *gin.Context) {
	utils.LogInfo("UpdateOrderStatus called")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid order ID", nil)
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}

	var order models.Order
	if err := config.DB.First(&order, uint(id)).Error; err != nil {
		utils.NotFound(c, "Order not found")
		return
	}

	allowed, known := validStatusTransitions[order.Status]
	if !known {
		utils.InternalServerError(c, "Order is in an unknown state", gin.H{"status": order.Status})
		return
	}
	permitted := false
	for _, s := range allowed {
		if s == req.Status {
			permitted = true
			break
		}
	}
	if !permitted {
		utils.BadRequest(c, "Invalid status transition", gin.H{
			"from":    order.Status,
			"to":      req.Status,
			"allowed": allowed,
		})
		return
	}

	// Cancelling returns the reserved stock
	if req.Status == models.OrderStatusCancelled {
		var items []models.OrderItem
		if err := config.DB.Where("order_id = ?", order.ID).Find(&items).Error; err != nil {
			utils.LogError("Failed to fetch items for order %d: %v", order.ID, err)
			utils.InternalServerError(c, "Failed to cancel order", err.Error())
			return
		}
		tx := config.DB.Begin()
		for _, item := range items {
			var product models.Product
			if err := tx.First(&product, item.ProductID).Error; err != nil {
				continue
			}
			factor, err := engine.Units().Factor(product.StockUnit, item.Unit)
			if err != nil {
				utils.LogError("Unit conversion failed while restocking product %d: %v", product.ID, err)
				continue
			}
			restock := item.Quantity.Div(factor)
			if err := tx.Model(&models.Product{}).Where("id = ?", product.ID).
				Update("stock_quantity", product.StockQuantity.Add(restock)).Error; err != nil {
				tx.Rollback()
				utils.LogError("Failed to restock product %d: %v", product.ID, err)
				utils.InternalServerError(c, "Failed to cancel order", err.Error())
				return
			}
		}
		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).Update("status", req.Status).Error; err != nil {
			tx.Rollback()
			utils.LogError("Failed to cancel order %d: %v", order.ID, err)
			utils.InternalServerError(c, "Failed to cancel order", err.Error())
			return
		}
		if err := tx.Commit().Error; err != nil {
			utils.LogError("Failed to commit cancellation for order %d: %v", order.ID, err)
			utils.InternalServerError(c, "Failed to cancel order", err.Error())
			return
		}
		utils.Cache.Invalidate(utils.ProductCachePrefix)
	} else {
		if err := config.DB.Model(&order).Update("status", req.Status).Error; err != nil {
			utils.LogError("Failed to update status for order %d: %v", order.ID, err)
			utils.InternalServerError(c, "Failed to update order", err.Error())
			return
		}
	}

	utils.LogInfo("Order %d status: %s -> %s", order.ID, order.Status, req.Status)
	utils.Success(c, "Order status updated successfully", gin.H{"id": order.ID, "status": req.Status})
}
