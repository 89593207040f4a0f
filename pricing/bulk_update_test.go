package pricing_test

import (
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Rahul-624/FreshMart/models"
	"github.com/Rahul-624/FreshMart/pricing"
)

// fakeDB is an in-memory implementation of the pricing collaborator
// contracts, shared by the stores a fake transaction hands out.
type fakeDB struct {
	products  map[uint]models.Product
	discounts map[uint][]models.Discount
	audits    []models.PriceUpdate

	beginErr  error
	commitErr error
	begins    int
	commits   int
	rollbacks int

	nextDiscountID uint
	nextAuditID    uint
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		products:  map[uint]models.Product{},
		discounts: map[uint][]models.Discount{},
	}
}

func (f *fakeDB) addProduct(id uint, name, price, stock, unit string) {
	f.products[id] = models.Product{
		Model:         gorm.Model{ID: id},
		Name:          name,
		RegularPrice:  dec(price),
		StockQuantity: dec(stock),
		StockUnit:     unit,
	}
}

func (f *fakeDB) addActiveDiscount(productID uint, dtype, value string) {
	f.nextDiscountID++
	f.discounts[productID] = append(f.discounts[productID], models.Discount{
		Model:         gorm.Model{ID: f.nextDiscountID, CreatedAt: time.Now()},
		ProductID:     productID,
		DiscountType:  dtype,
		DiscountValue: dec(value),
		Active:        true,
	})
}

func (f *fakeDB) Begin() (pricing.Tx, error) {
	f.begins++
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	return &fakeTx{db: f}, nil
}

type fakeTx struct {
	db *fakeDB
}

func (t *fakeTx) Products() pricing.ProductStore   { return &fakeProducts{db: t.db} }
func (t *fakeTx) Discounts() pricing.DiscountStore { return &fakeDiscounts{db: t.db} }
func (t *fakeTx) Audits() pricing.AuditStore       { return &fakeAudits{db: t.db} }

func (t *fakeTx) Commit() error {
	t.db.commits++
	return t.db.commitErr
}

func (t *fakeTx) Rollback() error {
	t.db.rollbacks++
	return nil
}

type fakeProducts struct {
	db *fakeDB
}

func (s *fakeProducts) FindByIDForUpdate(id uint) (*models.Product, error) {
	p, ok := s.db.products[id]
	if !ok {
		return nil, pricing.ErrProductNotFound
	}
	p.Discounts = append([]models.Discount(nil), s.db.discounts[id]...)
	return &p, nil
}

func (s *fakeProducts) Save(product *models.Product) error {
	saved := *product
	saved.Discounts = nil
	s.db.products[product.ID] = saved
	return nil
}

func (s *fakeProducts) Refresh(product *models.Product) error {
	fresh, ok := s.db.products[product.ID]
	if !ok {
		return pricing.ErrProductNotFound
	}
	fresh.Discounts = append([]models.Discount(nil), s.db.discounts[product.ID]...)
	*product = fresh
	return nil
}

type fakeDiscounts struct {
	db *fakeDB
}

func (s *fakeDiscounts) ActiveFor(productID uint) (*models.Discount, error) {
	var picked *models.Discount
	list := s.db.discounts[productID]
	for i := range list {
		d := &list[i]
		if !d.Active {
			continue
		}
		if picked == nil || d.ID > picked.ID {
			picked = d
		}
	}
	if picked == nil {
		return nil, nil
	}
	copied := *picked
	return &copied, nil
}

func (s *fakeDiscounts) UpsertActive(productID uint, change pricing.DiscountChange) (*models.Discount, error) {
	list := s.db.discounts[productID]
	for i := range list {
		if list[i].Active {
			list[i].DiscountType = change.Type
			list[i].DiscountValue = change.Value
			list[i].StartDate = change.StartDate
			list[i].EndDate = change.EndDate
			copied := list[i]
			return &copied, nil
		}
	}
	s.db.nextDiscountID++
	d := models.Discount{
		Model:         gorm.Model{ID: s.db.nextDiscountID, CreatedAt: time.Now()},
		ProductID:     productID,
		DiscountType:  change.Type,
		DiscountValue: change.Value,
		StartDate:     change.StartDate,
		EndDate:       change.EndDate,
		Active:        true,
	}
	s.db.discounts[productID] = append(s.db.discounts[productID], d)
	return &d, nil
}

func (s *fakeDiscounts) Deactivate(productID uint) error {
	list := s.db.discounts[productID]
	for i := range list {
		list[i].Active = false
	}
	return nil
}

type fakeAudits struct {
	db *fakeDB
}

func (s *fakeAudits) Insert(record *models.PriceUpdate) error {
	s.db.nextAuditID++
	record.ID = s.db.nextAuditID
	record.CreatedAt = time.Now()
	s.db.audits = append(s.db.audits, *record)
	return nil
}

func (s *fakeAudits) newestFirst() []models.PriceUpdate {
	out := append([]models.PriceUpdate(nil), s.db.audits...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (s *fakeAudits) ByProduct(productID uint, limit int) ([]models.PriceUpdate, error) {
	var out []models.PriceUpdate
	for _, r := range s.newestFirst() {
		if r.ProductID == productID {
			out = append(out, r)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *fakeAudits) ByDateRange(start, end time.Time) ([]models.PriceUpdate, error) {
	var out []models.PriceUpdate
	for _, r := range s.newestFirst() {
		if !r.CreatedAt.Before(start) && !r.CreatedAt.After(end) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeAudits) Recent(limit int) ([]models.PriceUpdate, error) {
	out := s.newestFirst()
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func newUpdater(db *fakeDB) *pricing.BulkUpdater {
	return pricing.NewBulkUpdater(db, pricing.NewEngine(nil), nil)
}

func strPtr(s string) *string                 { return &s }
func decPtr(s string) *decimal.Decimal        { d := dec(s); return &d }

func TestBulkUpdateEmptyBatch(t *testing.T) {
	db := newFakeDB()
	db.beginErr = errors.New("must not be called")

	result := newUpdater(db).BulkUpdatePrices(nil, 1)

	assert.True(t, result.Success)
	assert.Equal(t, 0, result.Updated)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Results)
	assert.Equal(t, 0, db.begins, "empty batch must not open a transaction")
}

func TestBulkUpdateMixedBatch(t *testing.T) {
	db := newFakeDB()
	db.addProduct(1, "Basmati Rice", "100", "50", "kg")
	db.addProduct(2, "Sunflower Oil", "80", "40", "l")

	result := newUpdater(db).BulkUpdatePrices([]pricing.UpdateRequest{
		{ProductID: 1, RegularPrice: decPtr("120")},
		{ProductID: 2, DiscountType: strPtr("percentage"), DiscountValue: decPtr("10")},
		{ProductID: 999, RegularPrice: decPtr("10")},
	}, 7)

	assert.True(t, result.Success)
	assert.Equal(t, 2, result.Updated)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, uint(999), result.Errors[0].ProductID)
	assert.Equal(t, 2, result.Errors[0].Index)
	assert.Equal(t, "Product not found", result.Errors[0].Error)
	assert.Equal(t, 1, db.commits)

	// Product 1: plain price bump.
	require.Len(t, db.audits, 2)
	first := db.audits[0]
	assert.Equal(t, uint(1), first.ProductID)
	assert.Equal(t, "100.00", first.OldRegularPrice.StringFixed(2))
	assert.Equal(t, "120.00", first.NewRegularPrice.StringFixed(2))
	assert.Equal(t, "120.00", first.NewSellingPrice.StringFixed(2))
	assert.Equal(t, uint(7), first.UpdatedBy)
	assert.True(t, db.products[1].RegularPrice.Equal(dec("120")))

	// Product 2: new percentage discount.
	second := db.audits[1]
	assert.Equal(t, uint(2), second.ProductID)
	assert.Equal(t, models.DiscountTypeNone, second.OldDiscountType)
	assert.Equal(t, models.DiscountTypePercentage, second.NewDiscountType)
	assert.Equal(t, "72.00", second.NewSellingPrice.StringFixed(2))

	active, err := (&fakeDiscounts{db: db}).ActiveFor(2)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.True(t, active.DiscountValue.Equal(dec("10")))
}

func TestBulkUpdateIdempotentNoOp(t *testing.T) {
	db := newFakeDB()
	db.addProduct(1, "Basmati Rice", "100", "50", "kg")
	db.addActiveDiscount(1, models.DiscountTypePercentage, "25")

	result := newUpdater(db).BulkUpdatePrices([]pricing.UpdateRequest{
		{
			ProductID:     1,
			RegularPrice:  decPtr("100.00"),
			StockQuantity: decPtr("50.000"),
			DiscountType:  strPtr("percentage"),
			DiscountValue: decPtr("25.0"),
		},
	}, 1)

	assert.True(t, result.Success)
	require.Len(t, result.Results, 1)
	assert.False(t, result.Results[0].Updated)
	assert.Empty(t, db.audits, "a no-op must write no audit rows")
}

func TestBulkUpdateMissingProductID(t *testing.T) {
	db := newFakeDB()
	db.addProduct(1, "Basmati Rice", "100", "50", "kg")

	result := newUpdater(db).BulkUpdatePrices([]pricing.UpdateRequest{
		{RegularPrice: decPtr("10")},
		{ProductID: 1, RegularPrice: decPtr("110")},
	}, 1)

	assert.True(t, result.Success)
	assert.Equal(t, 1, result.Updated)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 0, result.Errors[0].Index)
	assert.Equal(t, "Product ID is required", result.Errors[0].Error)
	assert.True(t, db.products[1].RegularPrice.Equal(dec("110")),
		"later items still commit")
}

func TestBulkUpdateNoneToNoneIsNoOp(t *testing.T) {
	db := newFakeDB()
	db.addProduct(1, "Basmati Rice", "100", "50", "kg")

	result := newUpdater(db).BulkUpdatePrices([]pricing.UpdateRequest{
		{ProductID: 1, DiscountType: strPtr("none")},
	}, 1)

	assert.True(t, result.Success)
	require.Len(t, result.Results, 1)
	assert.False(t, result.Results[0].Updated)
	assert.False(t, result.Results[0].Changes.Discount)
	assert.Empty(t, db.audits)
}

func TestBulkUpdateRemovesDiscount(t *testing.T) {
	db := newFakeDB()
	db.addProduct(1, "Basmati Rice", "100", "50", "kg")
	db.addActiveDiscount(1, models.DiscountTypeFixed, "20")

	result := newUpdater(db).BulkUpdatePrices([]pricing.UpdateRequest{
		{ProductID: 1, DiscountType: strPtr("none")},
	}, 1)

	assert.True(t, result.Success)
	require.Len(t, result.Results, 1)
	assert.True(t, result.Results[0].Updated)
	assert.True(t, result.Results[0].Changes.Discount)

	require.Len(t, db.audits, 1)
	assert.Equal(t, models.DiscountTypeFixed, db.audits[0].OldDiscountType)
	assert.Equal(t, models.DiscountTypeNone, db.audits[0].NewDiscountType)
	assert.Equal(t, "100.00", db.audits[0].NewSellingPrice.StringFixed(2))

	active, err := (&fakeDiscounts{db: db}).ActiveFor(1)
	require.NoError(t, err)
	assert.Nil(t, active, "discount rows are deactivated, not deleted")
	assert.Len(t, db.discounts[1], 1)
}

func TestBulkUpdateRejectsNegativeValues(t *testing.T) {
	db := newFakeDB()
	db.addProduct(1, "Basmati Rice", "100", "50", "kg")
	db.addProduct(2, "Sunflower Oil", "80", "40", "l")

	result := newUpdater(db).BulkUpdatePrices([]pricing.UpdateRequest{
		{ProductID: 1, RegularPrice: decPtr("-5"), StockQuantity: decPtr("-3")},
		{ProductID: 2, StockQuantity: decPtr("-0.001")},
		{ProductID: 2, RegularPrice: decPtr("90")},
	}, 1)

	assert.True(t, result.Success)
	assert.Equal(t, 1, result.Updated, "the valid item still commits")
	require.Len(t, result.Errors, 2)
	assert.Equal(t, "Regular price must not be negative", result.Errors[0].Error)
	assert.Equal(t, 0, result.Errors[0].Index)
	assert.Equal(t, "Stock quantity must not be negative", result.Errors[1].Error)
	assert.Equal(t, 1, result.Errors[1].Index)

	assert.False(t, db.products[1].RegularPrice.IsNegative())
	assert.False(t, db.products[1].StockQuantity.IsNegative())
	assert.True(t, db.products[1].RegularPrice.Equal(dec("100")), "rejected item leaves the row untouched")
	assert.True(t, db.products[2].StockQuantity.Equal(dec("40")))
	require.Len(t, db.audits, 1, "rejected items write no audit rows")
	assert.Equal(t, uint(2), db.audits[0].ProductID)
}

func TestBulkUpdateInvalidDiscountValueIgnored(t *testing.T) {
	db := newFakeDB()
	db.addProduct(1, "Basmati Rice", "100", "50", "kg")

	result := newUpdater(db).BulkUpdatePrices([]pricing.UpdateRequest{
		{ProductID: 1, DiscountType: strPtr("percentage")}, // value missing
		{ProductID: 1, DiscountType: strPtr("fixed"), DiscountValue: decPtr("-5")},
	}, 1)

	assert.True(t, result.Success)
	assert.Empty(t, result.Errors, "bad discount input is not a hard failure")
	require.Len(t, result.Results, 2)
	assert.False(t, result.Results[0].Updated)
	assert.False(t, result.Results[1].Updated)
	assert.Empty(t, db.audits)
}

func TestBulkUpdateFixedDiscountFloorsSellingPrice(t *testing.T) {
	db := newFakeDB()
	db.addProduct(1, "Loose Jaggery", "50", "20", "kg")

	result := newUpdater(db).BulkUpdatePrices([]pricing.UpdateRequest{
		{ProductID: 1, DiscountType: strPtr("fixed"), DiscountValue: decPtr("60")},
	}, 1)

	assert.True(t, result.Success)
	require.Len(t, db.audits, 1)
	assert.Equal(t, "0.00", db.audits[0].NewSellingPrice.StringFixed(2))
}

func TestBulkUpdateAuditHistoryAppendOnly(t *testing.T) {
	db := newFakeDB()
	db.addProduct(1, "Basmati Rice", "100", "50", "kg")
	updater := newUpdater(db)

	updater.BulkUpdatePrices([]pricing.UpdateRequest{
		{ProductID: 1, RegularPrice: decPtr("110")},
	}, 1)
	firstRow := db.audits[0]

	updater.BulkUpdatePrices([]pricing.UpdateRequest{
		{ProductID: 1, RegularPrice: decPtr("120")},
	}, 1)

	ledger := pricing.NewLedger(&fakeAudits{db: db})
	history, err := ledger.History(1, 10)
	require.NoError(t, err)
	require.Len(t, history, 2)

	// Newest first, with consistent old/new chaining.
	assert.Equal(t, "110.00", history[0].OldRegularPrice.StringFixed(2))
	assert.Equal(t, "120.00", history[0].NewRegularPrice.StringFixed(2))
	assert.Equal(t, firstRow, history[1], "prior rows are untouched")
}

func TestBulkUpdateStockOnlyChange(t *testing.T) {
	db := newFakeDB()
	db.addProduct(1, "Basmati Rice", "100", "50", "kg")

	result := newUpdater(db).BulkUpdatePrices([]pricing.UpdateRequest{
		{ProductID: 1, StockQuantity: decPtr("75.5")},
	}, 3)

	assert.True(t, result.Success)
	require.Len(t, result.Results, 1)
	assert.True(t, result.Results[0].Updated)
	assert.True(t, result.Results[0].Changes.Stock)
	assert.False(t, result.Results[0].Changes.Price)

	require.Len(t, db.audits, 1)
	assert.Equal(t, "50.000", db.audits[0].OldStockQuantity.StringFixed(3))
	assert.Equal(t, "75.500", db.audits[0].NewStockQuantity.StringFixed(3))
}

func TestBulkUpdateCommitFailureRollsBackBatch(t *testing.T) {
	db := newFakeDB()
	db.addProduct(1, "Basmati Rice", "100", "50", "kg")
	db.commitErr = errors.New("connection lost")

	result := newUpdater(db).BulkUpdatePrices([]pricing.UpdateRequest{
		{ProductID: 1, RegularPrice: decPtr("120")},
	}, 1)

	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
	assert.Equal(t, 1, result.Updated, "partial count is reported")
	assert.Equal(t, 1, db.rollbacks)
}

func TestBulkUpdateBeginFailure(t *testing.T) {
	db := newFakeDB()
	db.beginErr = errors.New("too many connections")

	result := newUpdater(db).BulkUpdatePrices([]pricing.UpdateRequest{
		{ProductID: 1, RegularPrice: decPtr("120")},
	}, 1)

	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
}
