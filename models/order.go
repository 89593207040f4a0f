package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order statuses
const (
	OrderStatusPlaced    = "Placed"
	OrderStatusPaid      = "Paid"
	OrderStatusDelivered = "Delivered"
	OrderStatusCancelled = "Cancelled"
)

// Cart holds a customer's pending line before checkout. Quantity is
// expressed in Unit, which may differ from the product's stock unit.
type Cart struct {
	gorm.Model
	CustomerID uint            `json:"customer_id" gorm:"not null;index"`
	Customer   Customer        `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	ProductID  uint            `json:"product_id" gorm:"not null"`
	Product    Product         `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity   decimal.Decimal `json:"quantity" gorm:"type:decimal(12,3);not null"`
	Unit       string          `json:"unit"`
}

// Order represents a placed customer order. Line prices are snapshotted at
// checkout, so later price changes never affect past orders.
type Order struct {
	gorm.Model
	CustomerID      uint            `json:"customer_id" gorm:"not null;index"`
	Customer        Customer        `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	OrderItems      []OrderItem     `json:"order_items" gorm:"foreignKey:OrderID"`
	Subtotal        decimal.Decimal `json:"subtotal" gorm:"type:decimal(12,2)"`
	Discount        decimal.Decimal `json:"discount" gorm:"type:decimal(12,2)"`
	Total           decimal.Decimal `json:"total" gorm:"type:decimal(12,2)"`
	Status          string          `json:"status" gorm:"default:'Placed'"`
	PaymentMethod   string          `json:"payment_method"`
	RazorpayOrderID string          `json:"razorpay_order_id,omitempty"`
	Reference       string          `json:"reference" gorm:"uniqueIndex"`
}

// OrderItem is a single priced line within an order.
type OrderItem struct {
	gorm.Model
	OrderID      uint            `json:"order_id" gorm:"not null;index"`
	ProductID    uint            `json:"product_id" gorm:"not null"`
	Product      Product         `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity     decimal.Decimal `json:"quantity" gorm:"type:decimal(12,3);not null"`
	Unit         string          `json:"unit"`
	RegularPrice decimal.Decimal `json:"regular_price" gorm:"type:decimal(10,2)"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	Discount     decimal.Decimal `json:"discount" gorm:"type:decimal(12,2)"`
	Total        decimal.Decimal `json:"total" gorm:"type:decimal(12,2)"`
}
