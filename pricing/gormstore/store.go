package gormstore

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Rahul-624/FreshMart/models"
	"github.com/Rahul-624/FreshMart/pricing"
)

// DB adapts a gorm connection to the pricing collaborator contracts.
type DB struct {
	db *gorm.DB
}

// New wraps the connection.
func New(db *gorm.DB) *DB {
	return &DB{db: db}
}

// Begin opens a transaction and returns stores bound to it.
func (d *DB) Begin() (pricing.Tx, error) {
	tx := d.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &storeTx{db: tx}, nil
}

// Audits returns an audit store outside any transaction, for history and
// report queries.
func (d *DB) Audits() pricing.AuditStore {
	return &auditStore{db: d.db}
}

type storeTx struct {
	db *gorm.DB
}

func (t *storeTx) Products() pricing.ProductStore   { return &productStore{db: t.db} }
func (t *storeTx) Discounts() pricing.DiscountStore { return &discountStore{db: t.db} }
func (t *storeTx) Audits() pricing.AuditStore       { return &auditStore{db: t.db} }

func (t *storeTx) Commit() error {
	return t.db.Commit().Error
}

func (t *storeTx) Rollback() error {
	return t.db.Rollback().Error
}

type productStore struct {
	db *gorm.DB
}

// FindByIDForUpdate locks the product row (SELECT ... FOR UPDATE) so
// concurrent bulk updates touching the same product serialize here.
func (s *productStore) FindByIDForUpdate(id uint) (*models.Product, error) {
	var product models.Product
	err := s.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Discounts").
		First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pricing.ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (s *productStore) Save(product *models.Product) error {
	return s.db.Omit("Discounts", "Category").Save(product).Error
}

func (s *productStore) Refresh(product *models.Product) error {
	var fresh models.Product
	if err := s.db.Preload("Discounts").First(&fresh, product.ID).Error; err != nil {
		return err
	}
	*product = fresh
	return nil
}

type discountStore struct {
	db *gorm.DB
}

func (s *discountStore) ActiveFor(productID uint) (*models.Discount, error) {
	var discount models.Discount
	err := s.db.Where("product_id = ? AND active = ?", productID, true).
		Order("created_at DESC, id DESC").
		First(&discount).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &discount, nil
}

// UpsertActive updates the product's active discount in place, or creates
// one when none exists. Superseded discounts stay in the table.
func (s *discountStore) UpsertActive(productID uint, change pricing.DiscountChange) (*models.Discount, error) {
	existing, err := s.ActiveFor(productID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.DiscountType = change.Type
		existing.DiscountValue = change.Value
		existing.StartDate = change.StartDate
		existing.EndDate = change.EndDate
		existing.Active = true
		if err := s.db.Save(existing).Error; err != nil {
			return nil, err
		}
		return existing, nil
	}

	discount := &models.Discount{
		ProductID:     productID,
		DiscountType:  change.Type,
		DiscountValue: change.Value,
		StartDate:     change.StartDate,
		EndDate:       change.EndDate,
		Active:        true,
	}
	if err := s.db.Create(discount).Error; err != nil {
		return nil, err
	}
	return discount, nil
}

func (s *discountStore) Deactivate(productID uint) error {
	return s.db.Model(&models.Discount{}).
		Where("product_id = ? AND active = ?", productID, true).
		Update("active", false).Error
}

type auditStore struct {
	db *gorm.DB
}

func (s *auditStore) Insert(record *models.PriceUpdate) error {
	return s.db.Create(record).Error
}

func (s *auditStore) ByProduct(productID uint, limit int) ([]models.PriceUpdate, error) {
	var records []models.PriceUpdate
	err := s.db.Where("product_id = ?", productID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

func (s *auditStore) ByDateRange(start, end time.Time) ([]models.PriceUpdate, error) {
	var records []models.PriceUpdate
	err := s.db.Where("created_at >= ? AND created_at <= ?", start, end).
		Order("created_at DESC, id DESC").
		Find(&records).Error
	return records, err
}

func (s *auditStore) Recent(limit int) ([]models.PriceUpdate, error) {
	var records []models.PriceUpdate
	err := s.db.Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}
