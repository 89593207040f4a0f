package pricing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rahul-624/FreshMart/models"
	"github.com/Rahul-624/FreshMart/pricing"
)

func auditRow(id uint, productID uint, createdAt time.Time) models.PriceUpdate {
	return models.PriceUpdate{
		ID:              id,
		ProductID:       productID,
		OldRegularPrice: dec("100"),
		NewRegularPrice: dec("110"),
		CreatedAt:       createdAt,
	}
}

func TestLedgerByDateRangeIncludesEndpointDays(t *testing.T) {
	db := newFakeDB()
	db.audits = []models.PriceUpdate{
		auditRow(1, 1, time.Date(2026, 8, 9, 23, 30, 0, 0, time.Local)),  // day before
		auditRow(2, 1, time.Date(2026, 8, 10, 0, 15, 0, 0, time.Local)),  // start day, early
		auditRow(3, 1, time.Date(2026, 8, 12, 23, 45, 0, 0, time.Local)), // end day, late
		auditRow(4, 1, time.Date(2026, 8, 13, 0, 5, 0, 0, time.Local)),   // day after
	}
	ledger := pricing.NewLedger(&fakeAudits{db: db})

	// Midday query instants; the ledger widens them to whole days.
	rows, err := ledger.ByDateRange(
		time.Date(2026, 8, 10, 14, 0, 0, 0, time.Local),
		time.Date(2026, 8, 12, 9, 0, 0, 0, time.Local),
	)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, uint(3), rows[0].ID, "newest first")
	assert.Equal(t, uint(2), rows[1].ID)
}

func TestLedgerRecordRoundsMoneyFields(t *testing.T) {
	db := newFakeDB()
	ledger := pricing.NewLedger(&fakeAudits{db: db})
	product := &models.Product{Name: "Basmati Rice"}
	product.ID = 5

	old := pricing.Snapshot{
		RegularPrice:  dec("99.999"),
		StockQuantity: dec("10"),
		DiscountType:  models.DiscountTypeNone,
	}
	updated := pricing.Snapshot{
		RegularPrice:  dec("120.005"),
		StockQuantity: dec("10"),
		DiscountType:  models.DiscountTypePercentage,
		DiscountValue: dec("10"),
	}

	record, err := ledger.Record(product, old, updated, dec("108.0045"), 2)
	require.NoError(t, err)
	assert.Equal(t, uint(5), record.ProductID)
	assert.Equal(t, "100.00", record.OldRegularPrice.StringFixed(2))
	assert.Equal(t, "120.01", record.NewRegularPrice.StringFixed(2))
	assert.Equal(t, "108.00", record.NewSellingPrice.StringFixed(2))
	assert.Equal(t, uint(2), record.UpdatedBy)
	require.Len(t, db.audits, 1)
}
