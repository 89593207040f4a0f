package pricing

import (
	"time"

	"github.com/Rahul-624/FreshMart/models"
	"github.com/shopspring/decimal"
)

// Snapshot captures a product's price-relevant state at a point in time.
// It is populated fully at read time so a missing discount is the explicit
// "none"/zero case rather than an absent map key.
type Snapshot struct {
	RegularPrice  decimal.Decimal
	StockQuantity decimal.Decimal
	DiscountType  string
	DiscountValue decimal.Decimal
}

// TakeSnapshot reads the product's current price, stock and active
// discount into a Snapshot.
func TakeSnapshot(product *models.Product) Snapshot {
	snap := Snapshot{
		RegularPrice:  product.RegularPrice,
		StockQuantity: product.StockQuantity,
		DiscountType:  models.DiscountTypeNone,
		DiscountValue: decimal.Zero,
	}
	if d := ActiveDiscount(product); d != nil {
		snap.DiscountType = d.DiscountType
		snap.DiscountValue = d.DiscountValue
	}
	return snap
}

// DiscountChange describes the discount to upsert for a product.
type DiscountChange struct {
	Type      string
	Value     decimal.Decimal
	StartDate *time.Time
	EndDate   *time.Time
}

// ProductStore accesses product rows inside a transaction.
type ProductStore interface {
	// FindByIDForUpdate fetches the product under a row-level lock,
	// discounts preloaded. Returns ErrProductNotFound when no row exists.
	FindByIDForUpdate(id uint) (*models.Product, error)
	Save(product *models.Product) error
	// Refresh re-reads the product in place so selling-price computation
	// sees discounts applied earlier in the same transaction.
	Refresh(product *models.Product) error
}

// DiscountStore accesses discount rows inside a transaction.
type DiscountStore interface {
	ActiveFor(productID uint) (*models.Discount, error)
	UpsertActive(productID uint, change DiscountChange) (*models.Discount, error)
	Deactivate(productID uint) error
}

// AuditStore persists and queries append-only PriceUpdate rows.
type AuditStore interface {
	Insert(record *models.PriceUpdate) error
	ByProduct(productID uint, limit int) ([]models.PriceUpdate, error)
	ByDateRange(start, end time.Time) ([]models.PriceUpdate, error)
	Recent(limit int) ([]models.PriceUpdate, error)
}

// Tx groups the stores bound to one open database transaction.
type Tx interface {
	Products() ProductStore
	Discounts() DiscountStore
	Audits() AuditStore
	Commit() error
	Rollback() error
}

// TxBeginner opens transactions; the single seam between the pricing core
// and whatever database the caller wired in.
type TxBeginner interface {
	Begin() (Tx, error)
}
