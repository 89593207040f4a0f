package pricing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rahul-624/FreshMart/models"
	"github.com/Rahul-624/FreshMart/pricing"
)

func product(price, stock, unit string, discounts ...models.Discount) *models.Product {
	return &models.Product{
		Name:          "Basmati Rice",
		RegularPrice:  dec(price),
		StockQuantity: dec(stock),
		StockUnit:     unit,
		Discounts:     discounts,
	}
}

func TestPercentageDiscountMath(t *testing.T) {
	engine := pricing.NewEngine(nil)
	p := product("100", "50", "kg",
		discount(1, models.DiscountTypePercentage, "25", true, time.Now()))

	assert.Equal(t, "75.00", engine.EffectivePrice(p).StringFixed(2))
	assert.Equal(t, "25.00", engine.DiscountAmount(p).StringFixed(2))
	assert.Equal(t, "25.00", engine.DiscountPercentage(p).StringFixed(2))
}

func TestFixedDiscountFlooredAtZero(t *testing.T) {
	engine := pricing.NewEngine(nil)
	p := product("50", "10", "kg",
		discount(1, models.DiscountTypeFixed, "60", true, time.Now()))

	// The amount is capped at the regular price, never the raw 60.
	assert.Equal(t, "0.00", engine.EffectivePrice(p).StringFixed(2))
	assert.Equal(t, "50.00", engine.DiscountAmount(p).StringFixed(2))
	assert.Equal(t, "100.00", engine.DiscountPercentage(p).StringFixed(2))
}

func TestNoDiscountUsesRegularPrice(t *testing.T) {
	engine := pricing.NewEngine(nil)
	p := product("42.50", "5", "kg")

	assert.Equal(t, "42.50", engine.EffectivePrice(p).StringFixed(2))
	assert.Equal(t, "0.00", engine.DiscountAmount(p).StringFixed(2))
	assert.Equal(t, "0.00", engine.DiscountPercentage(p).StringFixed(2))
}

func TestEffectivePriceNeverNegativeNorAboveRegular(t *testing.T) {
	engine := pricing.NewEngine(nil)
	prices := []string{"0", "0.01", "9.99", "100", "12345.67"}
	discounts := []models.Discount{
		discount(1, models.DiscountTypePercentage, "150", true, time.Now()),
		discount(1, models.DiscountTypeFixed, "99999", true, time.Now()),
		discount(1, models.DiscountTypePercentage, "0.5", true, time.Now()),
	}

	for _, price := range prices {
		for _, d := range discounts {
			p := product(price, "1", "kg", d)
			effective := engine.EffectivePrice(p)
			assert.False(t, effective.IsNegative(),
				"price %s with %s %s went negative", price, d.DiscountType, d.DiscountValue)
			assert.True(t, effective.LessThanOrEqual(p.RegularPrice),
				"price %s with %s %s exceeds regular", price, d.DiscountType, d.DiscountValue)
		}
	}
}

func TestDiscountPercentageZeroRegularPrice(t *testing.T) {
	engine := pricing.NewEngine(nil)
	p := product("0", "1", "kg",
		discount(1, models.DiscountTypeFixed, "10", true, time.Now()))

	assert.Equal(t, "0.00", engine.DiscountPercentage(p).StringFixed(2))
}

func TestPriceForQuantitySameUnit(t *testing.T) {
	engine := pricing.NewEngine(nil)
	p := product("80", "100", "kg")

	assert.Equal(t, "200.00", engine.PriceForQuantity(p, dec("2.5"), "kg").StringFixed(2))
}

func TestPriceForQuantityConvertsUnits(t *testing.T) {
	engine := pricing.NewEngine(nil)
	p := product("80", "100", "kg")

	// 500 g of an 80/kg product.
	assert.Equal(t, "40.00", engine.PriceForQuantity(p, dec("500"), "g").StringFixed(2))
}

func TestPriceForQuantityRoundTrip(t *testing.T) {
	engine := pricing.NewEngine(nil)
	p := product("64.37", "100", "kg",
		discount(1, models.DiscountTypePercentage, "12.5", true, time.Now()))

	inStockUnit := engine.PriceForQuantity(p, dec("3.2"), "kg")

	factor, err := engine.Units().Factor("kg", "g")
	require.NoError(t, err)
	inGrams := engine.PriceForQuantity(p, dec("3.2").Mul(factor), "g")

	diff := inStockUnit.Sub(inGrams).Abs()
	assert.True(t, diff.LessThanOrEqual(dec("0.01")),
		"round trip drifted: %s vs %s", inStockUnit, inGrams)
}

func TestPriceForQuantityFallsBackOnUnknownUnit(t *testing.T) {
	var warned bool
	engine := pricing.NewEngine(func(string, ...interface{}) { warned = true })
	p := product("80", "100", "kg")

	// Unknown unit: quantity is treated as already being in kg.
	got := engine.PriceForQuantity(p, dec("2"), "crate")
	assert.Equal(t, "160.00", got.StringFixed(2))
	assert.True(t, warned, "fallback should log a warning")
}

func TestCartTotal(t *testing.T) {
	engine := pricing.NewEngine(nil)
	rice := product("100", "50", "kg",
		discount(1, models.DiscountTypePercentage, "25", true, time.Now()))
	milk := product("30", "200", "l")

	summary := engine.CartTotal([]pricing.CartItem{
		{Product: rice, Quantity: dec("2"), Unit: "kg"},     // 2 x 75.00
		{Product: milk, Quantity: dec("500"), Unit: "ml"},   // 0.5 x 30.00
		{Product: nil, Quantity: dec("1"), Unit: "kg"},      // skipped
	})

	assert.Equal(t, "165.00", summary.Subtotal.StringFixed(2))
	assert.Equal(t, "50.00", summary.Discount.StringFixed(2))
	// The discount is informational; it is already embedded in the subtotal.
	assert.Equal(t, summary.Subtotal.StringFixed(2), summary.Total.StringFixed(2))
}

func TestPriceBreakdown(t *testing.T) {
	engine := pricing.NewEngine(nil)
	p := product("100", "50", "kg",
		discount(1, models.DiscountTypePercentage, "25", true, time.Now()))

	b := engine.PriceBreakdown(p, dec("2"), "kg")

	assert.Equal(t, "100.00", b.RegularPrice.StringFixed(2))
	assert.Equal(t, "75.00", b.EffectivePrice.StringFixed(2))
	assert.True(t, b.HasDiscount)
	assert.Equal(t, "25.00", b.DiscountPercentage.StringFixed(2))
	assert.Equal(t, "25.00", b.DiscountAmount.StringFixed(2))
	assert.Equal(t, "150.00", b.Subtotal.StringFixed(2))
	// Back-calculated from the rounded effective price.
	assert.Equal(t, "200.00", b.RegularSubtotal.StringFixed(2))
}

func TestPriceBreakdownFullyDiscounted(t *testing.T) {
	engine := pricing.NewEngine(nil)
	p := product("50", "10", "kg",
		discount(1, models.DiscountTypeFixed, "75", true, time.Now()))

	b := engine.PriceBreakdown(p, dec("3"), "kg")

	assert.Equal(t, "0.00", b.EffectivePrice.StringFixed(2))
	assert.Equal(t, "0.00", b.Subtotal.StringFixed(2))
	assert.Equal(t, "150.00", b.RegularSubtotal.StringFixed(2))
}
