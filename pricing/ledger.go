package pricing

import (
	"time"

	"github.com/Rahul-624/FreshMart/models"
	"github.com/shopspring/decimal"
)

// Ledger writes and queries the append-only price-change audit trail.
// Record must be called with an AuditStore bound to the same transaction
// as the product/discount mutation it describes; the queries usually run
// against a plain store outside any transaction.
type Ledger struct {
	audits AuditStore
}

// NewLedger wraps an audit store.
func NewLedger(audits AuditStore) *Ledger {
	return &Ledger{audits: audits}
}

// Record appends one audit row capturing the before/after snapshots and
// the freshly computed selling price. Rows are never updated afterwards.
func (l *Ledger) Record(product *models.Product, old, updated Snapshot, newSellingPrice decimal.Decimal, updatedBy uint) (*models.PriceUpdate, error) {
	record := &models.PriceUpdate{
		ProductID:        product.ID,
		OldRegularPrice:  old.RegularPrice.Round(2),
		NewRegularPrice:  updated.RegularPrice.Round(2),
		OldDiscountType:  old.DiscountType,
		NewDiscountType:  updated.DiscountType,
		OldDiscountValue: old.DiscountValue.Round(2),
		NewDiscountValue: updated.DiscountValue.Round(2),
		OldStockQuantity: old.StockQuantity,
		NewStockQuantity: updated.StockQuantity,
		NewSellingPrice:  newSellingPrice.Round(2),
		UpdatedBy:        updatedBy,
	}
	if err := l.audits.Insert(record); err != nil {
		return nil, err
	}
	return record, nil
}

// History returns up to limit audit rows for a product, newest first.
func (l *Ledger) History(productID uint, limit int) ([]models.PriceUpdate, error) {
	return l.audits.ByProduct(productID, limit)
}

// ByDateRange returns audit rows created between the two dates, newest
// first. Both endpoint days are included: start is widened to 00:00:00
// and end to 23:59:59 local time.
func (l *Ledger) ByDateRange(start, end time.Time) ([]models.PriceUpdate, error) {
	from := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	to := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 999999999, end.Location())
	return l.audits.ByDateRange(from, to)
}

// Recent returns the latest audit rows across all products, newest first.
func (l *Ledger) Recent(limit int) ([]models.PriceUpdate, error) {
	return l.audits.Recent(limit)
}
