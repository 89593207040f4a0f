package pricing

import (
	"fmt"
	"strings"
	"time"

	"github.com/Rahul-624/FreshMart/models"
	"github.com/shopspring/decimal"
)

// UpdateRequest is one per-product entry in a bulk price-update batch.
// Only fields present in the request are considered for change; nil means
// "leave as is".
type UpdateRequest struct {
	ProductID         uint             `json:"product_id"`
	RegularPrice      *decimal.Decimal `json:"regular_price,omitempty"`
	StockQuantity     *decimal.Decimal `json:"stock_quantity,omitempty"`
	DiscountType      *string          `json:"discount_type,omitempty"`
	DiscountValue     *decimal.Decimal `json:"discount_value,omitempty"`
	DiscountStartDate *time.Time       `json:"discount_start_date,omitempty"`
	DiscountEndDate   *time.Time       `json:"discount_end_date,omitempty"`
}

// ItemChanges flags which field groups actually changed for one item.
type ItemChanges struct {
	Price    bool `json:"price"`
	Stock    bool `json:"stock"`
	Discount bool `json:"discount"`
}

// ItemResult is the per-item outcome for an entry that processed cleanly.
// Updated is false when the request matched the current state (no-op).
type ItemResult struct {
	ProductID   uint        `json:"product_id"`
	ProductName string      `json:"product_name"`
	Updated     bool        `json:"updated"`
	Changes     ItemChanges `json:"changes"`
}

// ItemError reports an entry that could not be processed. Index is the
// entry's position in the submitted batch.
type ItemError struct {
	ProductID uint   `json:"product_id"`
	Index     int    `json:"index"`
	Error     string `json:"error"`
}

// BulkUpdateResult summarises a whole batch. Success=true means the batch
// transaction committed; individual items may still have failed, so
// callers must report Errors alongside Results.
type BulkUpdateResult struct {
	Success bool         `json:"success"`
	Updated int          `json:"updated"`
	Errors  []ItemError  `json:"errors"`
	Results []ItemResult `json:"results"`
	Error   string       `json:"error,omitempty"`
}

// BulkUpdater applies batches of price/stock/discount updates. Each batch
// runs inside one transaction; each product row is fetched under a
// row-level lock so concurrent batches touching the same product
// serialize there. Items are processed sequentially in request order and
// a failing item never rolls back the others.
type BulkUpdater struct {
	db     TxBeginner
	engine *Engine
	logf   func(format string, v ...interface{})
}

// NewBulkUpdater wires the updater. logf receives per-item failure logs;
// pass nil to discard them.
func NewBulkUpdater(db TxBeginner, engine *Engine, logf func(format string, v ...interface{})) *BulkUpdater {
	if logf == nil {
		logf = func(string, ...interface{}) {}
	}
	return &BulkUpdater{db: db, engine: engine, logf: logf}
}

// BulkUpdatePrices processes the batch on behalf of userID and returns the
// aggregate result. An empty batch returns immediately without opening a
// transaction. Only a failure of the transaction machinery itself aborts
// the whole batch.
func (u *BulkUpdater) BulkUpdatePrices(updates []UpdateRequest, userID uint) BulkUpdateResult {
	result := BulkUpdateResult{
		Success: true,
		Errors:  []ItemError{},
		Results: []ItemResult{},
	}
	if len(updates) == 0 {
		return result
	}

	tx, err := u.db.Begin()
	if err != nil {
		u.logf("bulk price update: failed to start transaction: %v", err)
		result.Success = false
		result.Error = "Failed to start transaction"
		return result
	}

	for i, req := range updates {
		itemResult, err := u.runItem(tx, req, userID)
		if err != nil {
			u.logf("bulk price update: item %d (product %d) failed: %v", i, req.ProductID, err)
			result.Errors = append(result.Errors, ItemError{
				ProductID: req.ProductID,
				Index:     i,
				Error:     err.Error(),
			})
			continue
		}
		result.Results = append(result.Results, itemResult)
	}

	if err := tx.Commit(); err != nil {
		u.logf("bulk price update: commit failed, rolling back: %v", err)
		tx.Rollback()
		result.Success = false
		result.Error = "Failed to apply price updates"
		result.Updated = len(result.Results)
		result.Results = []ItemResult{}
		return result
	}

	result.Updated = len(result.Results)
	return result
}

// runItem shields the batch from panics inside a single item.
func (u *BulkUpdater) runItem(tx Tx, req UpdateRequest, userID uint) (itemResult ItemResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("unexpected failure: %v", r)
		}
	}()
	return u.applyItem(tx, req, userID)
}

func (u *BulkUpdater) applyItem(tx Tx, req UpdateRequest, userID uint) (ItemResult, error) {
	if req.ProductID == 0 {
		return ItemResult{}, ErrMissingProductID
	}
	// Reject invalid amounts before taking the row lock.
	if req.RegularPrice != nil && req.RegularPrice.IsNegative() {
		return ItemResult{}, ErrNegativePrice
	}
	if req.StockQuantity != nil && req.StockQuantity.IsNegative() {
		return ItemResult{}, ErrNegativeStock
	}

	product, err := tx.Products().FindByIDForUpdate(req.ProductID)
	if err != nil {
		return ItemResult{}, err
	}

	old := TakeSnapshot(product)

	priceChanged := req.RegularPrice != nil && !req.RegularPrice.Equal(old.RegularPrice)
	stockChanged := req.StockQuantity != nil && !req.StockQuantity.Equal(old.StockQuantity)
	discountChanged, newType, newValue := proposeDiscount(req, old)

	changed := priceChanged || stockChanged || discountChanged
	if !changed {
		return ItemResult{
			ProductID:   product.ID,
			ProductName: product.Name,
			Updated:     false,
			Changes:     ItemChanges{},
		}, nil
	}

	// Discount first so the refreshed product already carries it when the
	// new selling price is computed.
	if discountChanged {
		if newType == models.DiscountTypeNone {
			if err := tx.Discounts().Deactivate(product.ID); err != nil {
				return ItemResult{}, err
			}
		} else {
			change := DiscountChange{
				Type:      newType,
				Value:     newValue,
				StartDate: req.DiscountStartDate,
				EndDate:   req.DiscountEndDate,
			}
			if _, err := tx.Discounts().UpsertActive(product.ID, change); err != nil {
				return ItemResult{}, err
			}
		}
	}

	if priceChanged {
		product.RegularPrice = *req.RegularPrice
	}
	if stockChanged {
		product.StockQuantity = *req.StockQuantity
	}
	product.UpdatedBy = userID
	if err := tx.Products().Save(product); err != nil {
		return ItemResult{}, err
	}

	if err := tx.Products().Refresh(product); err != nil {
		return ItemResult{}, err
	}

	newSellingPrice := u.engine.EffectivePrice(product)
	updated := Snapshot{
		RegularPrice:  product.RegularPrice,
		StockQuantity: product.StockQuantity,
		DiscountType:  newType,
		DiscountValue: newValue,
	}
	ledger := NewLedger(tx.Audits())
	if _, err := ledger.Record(product, old, updated, newSellingPrice, userID); err != nil {
		return ItemResult{}, err
	}

	return ItemResult{
		ProductID:   product.ID,
		ProductName: product.Name,
		Updated:     true,
		Changes: ItemChanges{
			Price:    priceChanged,
			Stock:    stockChanged,
			Discount: discountChanged,
		},
	}, nil
}

// proposeDiscount decides whether the request implies a discount change
// and what the resulting type/value are. Rules:
//   - no discount_type in the request: no change;
//   - "none" when nothing is active: no-op, not a change;
//   - a non-"none" type without a positive value is invalid input and is
//     treated as no change rather than a failure;
//   - otherwise changed iff the type differs, or the types match and the
//     values differ numerically. Window-only edits ride along with the
//     type/value and never count as a change on their own.
func proposeDiscount(req UpdateRequest, old Snapshot) (bool, string, decimal.Decimal) {
	newType := old.DiscountType
	newValue := old.DiscountValue

	if req.DiscountType == nil {
		return false, newType, newValue
	}

	switch requested := strings.ToLower(strings.TrimSpace(*req.DiscountType)); requested {
	case models.DiscountTypeNone:
		if old.DiscountType == models.DiscountTypeNone {
			return false, newType, newValue
		}
		return true, models.DiscountTypeNone, decimal.Zero
	case models.DiscountTypePercentage, models.DiscountTypeFixed:
		if req.DiscountValue == nil || !req.DiscountValue.IsPositive() {
			return false, newType, newValue
		}
		if requested == old.DiscountType && req.DiscountValue.Equal(old.DiscountValue) {
			return false, newType, newValue
		}
		return true, requested, *req.DiscountValue
	default:
		return false, newType, newValue
	}
}
