package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Discount types
const (
	DiscountTypeNone       = "none"
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

// Discount represents a price reduction on a product, optionally bounded
// by an inclusive date window. At most one discount per product is expected
// to be active at a time. Discounts are deactivated, never deleted.
type Discount struct {
	gorm.Model
	ProductID     uint            `json:"product_id" gorm:"not null;index"`
	DiscountType  string          `json:"discount_type" gorm:"not null;default:'none'"`
	DiscountValue decimal.Decimal `json:"discount_value" gorm:"type:decimal(10,2);not null;default:0"`
	StartDate     *time.Time      `json:"start_date"`
	EndDate       *time.Time      `json:"end_date"`
	Active        bool            `json:"active" gorm:"default:true"`
}
