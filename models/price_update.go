package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceUpdate is an append-only audit record capturing a before/after
// snapshot of a product's price-relevant fields. Rows are written inside
// the same transaction as the mutation they describe and are never
// updated or deleted afterwards; deliberately no UpdatedAt/DeletedAt.
type PriceUpdate struct {
	ID               uint            `json:"id" gorm:"primaryKey"`
	ProductID        uint            `json:"product_id" gorm:"not null;index"`
	Product          Product         `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	OldRegularPrice  decimal.Decimal `json:"old_regular_price" gorm:"type:decimal(10,2)"`
	NewRegularPrice  decimal.Decimal `json:"new_regular_price" gorm:"type:decimal(10,2)"`
	OldDiscountType  string          `json:"old_discount_type" gorm:"default:'none'"`
	NewDiscountType  string          `json:"new_discount_type" gorm:"default:'none'"`
	OldDiscountValue decimal.Decimal `json:"old_discount_value" gorm:"type:decimal(10,2)"`
	NewDiscountValue decimal.Decimal `json:"new_discount_value" gorm:"type:decimal(10,2)"`
	OldStockQuantity decimal.Decimal `json:"old_stock_quantity" gorm:"type:decimal(12,3)"`
	NewStockQuantity decimal.Decimal `json:"new_stock_quantity" gorm:"type:decimal(12,3)"`
	NewSellingPrice  decimal.Decimal `json:"new_selling_price" gorm:"type:decimal(10,2)"`
	UpdatedBy        uint            `json:"updated_by"`
	CreatedAt        time.Time       `json:"created_at"`
}
