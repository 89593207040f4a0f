package controllers

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Rahul-624/FreshMart/models"
)

func priceListProduct(id uint, name, category, price, unit string) models.Product {
	return models.Product{
		Model:         gorm.Model{ID: id},
		Name:          name,
		Category:      models.Category{Name: category},
		RegularPrice:  decimal.RequireFromString(price),
		StockQuantity: decimal.NewFromInt(10),
		StockUnit:     unit,
		IsActive:      true,
	}
}

func renderPriceList(t *testing.T, products []models.Product) int {
	t.Helper()
	pdf := buildPriceListPDF(products)
	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
	require.NotZero(t, buf.Len())
	return buf.Len()
}

func TestBuildPriceListPDF(t *testing.T) {
	products := []models.Product{
		priceListProduct(1, "Basmati Rice", "Grains", "100.00", "kg"),
		priceListProduct(2, "Loose Jaggery", "Grains", "50.00", "kg"),
		priceListProduct(3, "Sunflower Oil", "Oils", "80.00", "l"),
	}

	withRows := renderPriceList(t, products)
	empty := renderPriceList(t, nil)
	assert.Greater(t, withRows, empty, "product and category rows must land in the document")
}

func TestBuildPriceListPDFCategoryHeaders(t *testing.T) {
	// Same rows, once under one category and once under three: the
	// extra header rows must grow the rendered document.
	oneCategory := []models.Product{
		priceListProduct(1, "Basmati Rice", "Grains", "100.00", "kg"),
		priceListProduct(2, "Loose Jaggery", "Grains", "50.00", "kg"),
		priceListProduct(3, "Sunflower Oil", "Grains", "80.00", "l"),
	}
	threeCategories := []models.Product{
		priceListProduct(1, "Basmati Rice", "Grains", "100.00", "kg"),
		priceListProduct(2, "Loose Jaggery", "Sweeteners", "50.00", "kg"),
		priceListProduct(3, "Sunflower Oil", "Oils", "80.00", "l"),
	}

	assert.Greater(t, renderPriceList(t, threeCategories), renderPriceList(t, oneCategory))
}
