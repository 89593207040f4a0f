package controllers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"

	"github.com/Rahul-624/FreshMart/config"
	"github.com/Rahul-624/FreshMart/models"
	"github.com/Rahul-624/FreshMart/pricing"
	"github.com/Rahul-624/FreshMart/pricing/gormstore"
	"github.com/Rahul-624/FreshMart/utils"
)

func priceLedger() *pricing.Ledger {
	return pricing.NewLedger(gormstore.New(config.DB).Audits())
}

// historyEntry is the API view of one audit row
func historyEntry(record *models.PriceUpdate) gin.H {
	return gin.H{
		"id":                 record.ID,
		"product_id":         record.ProductID,
		"old_regular_price":  record.OldRegularPrice,
		"new_regular_price":  record.NewRegularPrice,
		"old_discount_type":  record.OldDiscountType,
		"new_discount_type":  record.NewDiscountType,
		"old_discount_value": record.OldDiscountValue,
		"new_discount_value": record.NewDiscountValue,
		"old_stock_quantity": record.OldStockQuantity,
		"new_stock_quantity": record.NewStockQuantity,
		"new_selling_price":  record.NewSellingPrice,
		"updated_by":         record.UpdatedBy,
		"created_at":         record.CreatedAt,
	}
}

// GetProductPriceHistory returns the audit trail for one product,
// newest first.
func GetProductPriceHistory(c *gin.Context) {
	utils.LogInfo("GetProductPriceHistory called")
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

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	records, err := priceLedger().History(product.ID, limit)
	if err != nil {
		utils.LogError("Failed to fetch price history for product %d: %v", product.ID, err)
		utils.InternalServerError(c, "Failed to fetch price history", err.Error())
		return
	}

	entries := make([]gin.H, 0, len(records))
	for i := range records {
		entries = append(entries, historyEntry(&records[i]))
	}
	utils.Success(c, "Price history retrieved successfully", gin.H{
		"product_id":   product.ID,
		"product_name": product.Name,
		"history":      entries,
	})
}

// GetRecentPriceChanges returns the latest audit rows across all products
func GetRecentPriceChanges(c *gin.Context) {
	utils.LogInfo("GetRecentPriceChanges called")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	records, err := priceLedger().Recent(limit)
	if err != nil {
		utils.LogError("Failed to fetch recent price changes: %v", err)
		utils.InternalServerError(c, "Failed to fetch price changes", err.Error())
		return
	}

	entries := make([]gin.H, 0, len(records))
	for i := range records {
		entries = append(entries, historyEntry(&records[i]))
	}
	utils.Success(c, "Recent price changes retrieved successfully", entries)
}

// parseHistoryRange reads start/end date query params (YYYY-MM-DD)
func parseHistoryRange(c *gin.Context) (time.Time, time.Time, bool) {
	startStr := c.Query("start_date")
	endStr := c.Query("end_date")
	if startStr == "" || endStr == "" {
		utils.BadRequest(c, "start_date and end_date are required (YYYY-MM-DD)", nil)
		return time.Time{}, time.Time{}, false
	}
	start, err := time.ParseInLocation("2006-01-02", startStr, time.Local)
	if err != nil {
		utils.BadRequest(c, "Invalid start_date", startStr)
		return time.Time{}, time.Time{}, false
	}
	end, err := time.ParseInLocation("2006-01-02", endStr, time.Local)
	if err != nil {
		utils.BadRequest(c, "Invalid end_date", endStr)
		return time.Time{}, time.Time{}, false
	}
	if end.Before(start) {
		utils.BadRequest(c, "end_date must not be before start_date", nil)
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// GetPriceChangesByDateRange returns audit rows within a date range.
// Both endpoint days are included in full.
func GetPriceChangesByDateRange(c *gin.Context) {
	utils.LogInfo("GetPriceChangesByDateRange called")
	start, end, ok := parseHistoryRange(c)
	if !ok {
		return
	}

	records, err := priceLedger().ByDateRange(start, end)
	if err != nil {
		utils.LogError("Failed to fetch price changes by date range: %v", err)
		utils.InternalServerError(c, "Failed to fetch price changes", err.Error())
		return
	}

	entries := make([]gin.H, 0, len(records))
	for i := range records {
		entries = append(entries, historyEntry(&records[i]))
	}
	utils.Success(c, "Price changes retrieved successfully", gin.H{
		"start_date": start.Format("2006-01-02"),
		"end_date":   end.Format("2006-01-02"),
		"count":      len(records),
		"changes":    entries,
	})
}

// ExportPriceHistoryExcel downloads the audit trail for a date range
// as an Excel workbook.
func ExportPriceHistoryExcel(c *gin.Context) {
	utils.LogInfo("ExportPriceHistoryExcel called")
	start, end, ok := parseHistoryRange(c)
	if !ok {
		return
	}

	records, err := priceLedger().ByDateRange(start, end)
	if err != nil {
		utils.LogError("Failed to fetch price changes for export: %v", err)
		utils.InternalServerError(c, "Failed to fetch price changes", err.Error())
		return
	}

	// Resolve product names in one query
	productNames := map[uint]string{}
	ids := make([]uint, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ProductID)
	}
	if len(ids) > 0 {
		var products []models.Product
		if err := config.DB.Unscoped().Where("id IN ?", ids).Find(&products).Error; err == nil {
			for _, p := range products {
				productNames[p.ID] = p.Name
			}
		}
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Price History")
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to create Excel sheet", err.Error())
		return
	}

	titleRow := sheet.AddRow()
	titleRow.AddCell().SetString("FRESHMART - Price Change History")
	periodRow := sheet.AddRow()
	periodRow.AddCell().SetString("Period: " + start.Format("2006-01-02") + " to " + end.Format("2006-01-02"))
	sheet.AddRow() // spacing

	headers := []string{"ID", "Product", "Date", "Old Price", "New Price",
		"Old Discount", "New Discount", "Old Stock", "New Stock", "Selling Price", "Updated By"}
	headerRow := sheet.AddRow()
	for _, h := range headers {
		cell := headerRow.AddCell()
		cell.SetString(h)
		style := xlsx.NewStyle()
		font := xlsx.DefaultFont()
		font.Bold = true
		style.Font = *font
		cell.SetStyle(style)
	}

	for _, record := range records {
		name := productNames[record.ProductID]
		if name == "" {
			name = fmt.Sprintf("#%d", record.ProductID)
		}
		row := sheet.AddRow()
		row.AddCell().SetInt(int(record.ID))
		row.AddCell().SetString(name)
		row.AddCell().SetString(record.CreatedAt.Format("2006-01-02 15:04"))
		row.AddCell().SetString(record.OldRegularPrice.StringFixed(2))
		row.AddCell().SetString(record.NewRegularPrice.StringFixed(2))
		row.AddCell().SetString(record.OldDiscountType + " " + record.OldDiscountValue.StringFixed(2))
		row.AddCell().SetString(record.NewDiscountType + " " + record.NewDiscountValue.StringFixed(2))
		row.AddCell().SetString(record.OldStockQuantity.String())
		row.AddCell().SetString(record.NewStockQuantity.String())
		row.AddCell().SetString(record.NewSellingPrice.StringFixed(2))
		row.AddCell().SetInt(int(record.UpdatedBy))
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=price_history_%s_%s.xlsx",
		start.Format("20060102"), end.Format("20060102")))
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
		utils.InternalServerError(c, "Failed to write Excel file", err.Error())
		return
	}
	utils.LogInfo("Exported %d price changes to Excel", len(records))
}
