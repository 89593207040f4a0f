package controllers

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Rahul-624/FreshMart/config"
	"github.com/Rahul-624/FreshMart/models"
	"github.com/Rahul-624/FreshMart/utils"
)

// findSaleProduct loads a product for a storefront operation. The errors
// carry their HTTP status so handlers reply with utils.RespondError.
func findSaleProduct(id uint) (*models.Product, error) {
	var product models.Product
	if err := config.DB.Preload("Discounts").First(&product, id).Error; err != nil {
		return nil, utils.NotFoundError("Product not found", err)
	}
	if !product.IsActive {
		return nil, utils.BadRequestError("Product is not available", nil)
	}
	return &product, nil
}

// ensureStockAvailable checks that a quantity expressed in unit can be
// covered by the product's stock.
func ensureStockAvailable(product *models.Product, quantity decimal.Decimal, unit string) error {
	factor, err := engine.Units().Factor(product.StockUnit, unit)
	if err != nil {
		return utils.BadRequestError(fmt.Sprintf("Cannot price %s in unit %q", product.Name, unit), err)
	}
	if product.StockQuantity.LessThan(quantity.Div(factor)) {
		return utils.ConflictError(fmt.Sprintf("Insufficient stock for %s", product.Name), nil)
	}
	return nil
}
