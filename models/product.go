package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product represents a grocery item in the catalog.
// RegularPrice and StockQuantity are never negative; the computed selling
// price never exceeds RegularPrice. Price, stock and discount fields are
// mutated only through the bulk price-update transaction so every change
// lands in the price_updates audit trail.
type Product struct {
	gorm.Model
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	CategoryID    uint            `json:"category_id"`
	Category      Category        `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	RegularPrice  decimal.Decimal `json:"regular_price" gorm:"type:decimal(10,2);not null;default:0"`
	StockQuantity decimal.Decimal `json:"stock_quantity" gorm:"type:decimal(12,3);not null;default:0"`
	StockUnit     string          `json:"stock_unit" gorm:"default:'pc'"`
	ImageURL      string          `json:"image_url"`
	IsActive      bool            `json:"is_active" gorm:"default:true"`
	UpdatedBy     uint            `json:"updated_by"`
	Discounts     []Discount      `json:"discounts,omitempty" gorm:"foreignKey:ProductID"`
}
