package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"

	"github.com/Rahul-624/FreshMart/config"
	"github.com/Rahul-624/FreshMart/models"
	"github.com/Rahul-624/FreshMart/pricing"
	"github.com/Rahul-624/FreshMart/utils"
)

// buildPriceListPDF renders the price list document. Products must
// arrive sorted by category; a header row is emitted whenever the
// category changes.
func buildPriceListPDF(products []models.Product) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(100, 10, "FreshMart")
	pdf.SetFont("Arial", "", 12)
	pdf.Ln(8)
	pdf.Cell(100, 8, "Fresh groceries, fair prices")
	pdf.Ln(8)
	pdf.Cell(100, 8, "Price list as of "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(12)

	// Table header
	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(105, 8, "Product", "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 8, "Unit", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 8, "Regular", "1", 0, "R", true, 0, "")
	pdf.CellFormat(30, 8, "Selling", "1", 0, "R", true, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	currentCategory := ""
	for i := range products {
		product := &products[i]
		if product.Category.Name != currentCategory {
			currentCategory = product.Category.Name
			pdf.SetFont("Arial", "B", 11)
			pdf.SetFillColor(225, 235, 225)
			pdf.CellFormat(185, 7, currentCategory, "1", 0, "L", true, 0, "")
			pdf.Ln(7)
			pdf.SetFont("Arial", "", 10)
		}

		selling := engine.EffectivePrice(product)
		style := ""
		if pricing.ActiveDiscount(product) != nil {
			style = "B"
		}

		pdf.CellFormat(105, 7, product.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 7, product.StockUnit, "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 7, product.RegularPrice.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.SetFont("Arial", style, 10)
		pdf.CellFormat(30, 7, selling.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "I", 9)
	pdf.Cell(100, 6, "Prices in bold carry an active discount.")
	return pdf
}

// DownloadPriceListPDF generates a printable price list of active
// products with their current selling prices, grouped by category.
func DownloadPriceListPDF(c *gin.Context) {
	utils.LogInfo("DownloadPriceListPDF called")

	query := config.DB.Model(&models.Product{}).
		Joins("JOIN categories ON categories.id = products.category_id").
		Where("products.is_active = ? AND categories.blocked = ?", true, false).
		Preload("Category").
		Preload("Discounts").
		Order("categories.name ASC, products.name ASC")
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("products.category_id = ?", categoryID)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		utils.LogError("Failed to fetch products for price list: %v", err)
		utils.InternalServerError(c, "Failed to fetch products", err.Error())
		return
	}

	pdf := buildPriceListPDF(products)

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", "attachment; filename=price_list_"+time.Now().Format("20060102")+".pdf")
	if err := pdf.Output(c.Writer); err != nil {
		utils.LogError("Failed to write price list PDF: %v", err)
		utils.InternalServerError(c, "Failed to generate PDF", err.Error())
		return
	}
	utils.LogInfo("Generated price list PDF with %d products", len(products))
}
