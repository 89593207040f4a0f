package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Rahul-624/FreshMart/config"
	"github.com/Rahul-624/FreshMart/models"
	"github.com/Rahul-624/FreshMart/pricing"
	"github.com/Rahul-624/FreshMart/pricing/gormstore"
	"github.com/Rahul-624/FreshMart/utils"
)

// BulkPriceUpdateRequest wraps the submitted batch
type BulkPriceUpdateRequest struct {
	Updates []pricing.UpdateRequest `json:"updates" binding:"required"`
}

// BulkUpdatePrices applies a batch of price/stock/discount changes. The
// batch runs in one transaction with each product row locked; a failing
// item is reported in the response without rolling back the others.
// Every applied change writes a price_updates audit row.
func BulkUpdatePrices(c *gin.Context) {
	utils.LogInfo("BulkUpdatePrices called")

	var req BulkPriceUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError("Invalid bulk update request: %v", err)
		utils.BadRequest(c, "Invalid input", err.Error())
		return
	}
	if len(req.Updates) > utils.MaxBulkUpdateItems {
		utils.BadRequest(c, "Too many items in batch", gin.H{
			"submitted": len(req.Updates),
			"max":       utils.MaxBulkUpdateItems,
		})
		return
	}

	adminVal, _ := c.Get("admin")
	admin := adminVal.(models.Admin)
	utils.LogInfo("Processing bulk price update of %d items by admin %d", len(req.Updates), admin.ID)

	updater := pricing.NewBulkUpdater(gormstore.New(config.DB), engine, utils.LogError)
	result := updater.BulkUpdatePrices(req.Updates, admin.ID)

	if result.Success && result.Updated > 0 {
		utils.Cache.Invalidate(utils.ProductCachePrefix)
	}

	status := http.StatusOK
	if !result.Success {
		status = http.StatusInternalServerError
	}
	utils.LogInfo("Bulk price update finished: success=%t updated=%d errors=%d",
		result.Success, result.Updated, len(result.Errors))
	c.JSON(status, result)
}
