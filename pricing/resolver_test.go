package pricing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Rahul-624/FreshMart/models"
	"github.com/Rahul-624/FreshMart/pricing"
)

// dec parses a decimal literal, failing loudly at test setup on typos.
func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func discount(id uint, dtype string, value string, active bool, createdAt time.Time) models.Discount {
	return models.Discount{
		Model:         gorm.Model{ID: id, CreatedAt: createdAt},
		DiscountType:  dtype,
		DiscountValue: dec(value),
		Active:        active,
	}
}

func TestActiveDiscountPicksActiveRecord(t *testing.T) {
	now := time.Now()
	product := &models.Product{
		RegularPrice: dec("100"),
		Discounts: []models.Discount{
			discount(1, models.DiscountTypePercentage, "10", false, now.Add(-2*time.Hour)),
			discount(2, models.DiscountTypePercentage, "25", true, now.Add(-time.Hour)),
		},
	}

	d := pricing.ActiveDiscountAt(product, now)
	require.NotNil(t, d)
	assert.Equal(t, uint(2), d.ID)
}

func TestActiveDiscountNoneWhenEmpty(t *testing.T) {
	product := &models.Product{RegularPrice: dec("100")}
	assert.Nil(t, pricing.ActiveDiscountAt(product, time.Now()))
}

func TestActiveDiscountRespectsDateWindow(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.Local)
	start := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)
	end := time.Date(2026, 3, 20, 0, 0, 0, 0, time.Local)

	d := discount(1, models.DiscountTypeFixed, "5", true, now.Add(-time.Hour))
	d.StartDate = &start
	d.EndDate = &end
	product := &models.Product{Discounts: []models.Discount{d}}

	assert.NotNil(t, pricing.ActiveDiscountAt(product, now))
	assert.NotNil(t, pricing.ActiveDiscountAt(product, start), "start day is inclusive")
	assert.NotNil(t, pricing.ActiveDiscountAt(product, end), "end day is inclusive")
	assert.Nil(t, pricing.ActiveDiscountAt(product, start.Add(-time.Second)))
	assert.Nil(t, pricing.ActiveDiscountAt(product, end.Add(time.Second)))
}

func TestActiveDiscountMissingBoundIsUnbounded(t *testing.T) {
	now := time.Now()
	end := now.Add(24 * time.Hour)

	d := discount(1, models.DiscountTypePercentage, "10", true, now.Add(-time.Hour))
	d.EndDate = &end
	product := &models.Product{Discounts: []models.Discount{d}}

	assert.NotNil(t, pricing.ActiveDiscountAt(product, now.Add(-365*24*time.Hour)),
		"no start date means active since forever")
}

func TestActiveDiscountNewestCreatedWins(t *testing.T) {
	now := time.Now()
	product := &models.Product{
		Discounts: []models.Discount{
			discount(1, models.DiscountTypePercentage, "10", true, now.Add(-3*time.Hour)),
			discount(2, models.DiscountTypeFixed, "5", true, now.Add(-time.Hour)),
			discount(3, models.DiscountTypePercentage, "20", true, now.Add(-2*time.Hour)),
		},
	}

	d := pricing.ActiveDiscountAt(product, now)
	require.NotNil(t, d)
	assert.Equal(t, uint(2), d.ID)
}
