package pricing

import (
	"strings"

	"github.com/Rahul-624/FreshMart/models"
	"github.com/shopspring/decimal"
)

var (
	zero    = decimal.Zero
	hundred = decimal.NewFromInt(100)
)

// Engine computes selling prices, discount figures and order totals.
// All operations are pure reads; monetary results are rounded to two
// decimals at the point of reporting, never between chained steps.
type Engine struct {
	units *UnitConverter
	warnf func(format string, v ...interface{})
}

// NewEngine creates an Engine. warnf receives degrade-gracefully warnings
// (failed unit conversions); pass nil to discard them.
func NewEngine(warnf func(format string, v ...interface{})) *Engine {
	if warnf == nil {
		warnf = func(string, ...interface{}) {}
	}
	return &Engine{units: NewUnitConverter(), warnf: warnf}
}

// Units exposes the engine's unit conversion tables.
func (e *Engine) Units() *UnitConverter {
	return e.units
}

// DiscountAmount returns the amount taken off the regular price by the
// product's active discount: value% of the regular price for percentage
// discounts, the raw value for fixed ones. The result is clamped to the
// range [0, regularPrice] so a fixed discount larger than the price never
// produces a negative selling price.
func (e *Engine) DiscountAmount(product *models.Product) decimal.Decimal {
	d := ActiveDiscount(product)
	if d == nil {
		return zero
	}

	var amount decimal.Decimal
	switch d.DiscountType {
	case models.DiscountTypePercentage:
		amount = product.RegularPrice.Mul(d.DiscountValue).Div(hundred)
	case models.DiscountTypeFixed:
		amount = d.DiscountValue
	default:
		return zero
	}

	if amount.LessThan(zero) {
		amount = zero
	}
	if amount.GreaterThan(product.RegularPrice) {
		amount = product.RegularPrice
	}
	return amount.Round(2)
}

// EffectivePrice returns the current selling price: the regular price less
// the active discount, floored at zero and rounded to two decimals.
func (e *Engine) EffectivePrice(product *models.Product) decimal.Decimal {
	price := product.RegularPrice.Sub(e.DiscountAmount(product))
	if price.LessThan(zero) {
		price = zero
	}
	return price.Round(2)
}

// DiscountPercentage returns the discount as a percentage of the regular
// price. Percentage discounts report their configured value; fixed
// discounts are back-calculated from the clamped amount (0 when the
// regular price is 0).
func (e *Engine) DiscountPercentage(product *models.Product) decimal.Decimal {
	d := ActiveDiscount(product)
	if d == nil {
		return zero
	}
	if d.DiscountType == models.DiscountTypePercentage {
		return d.DiscountValue
	}
	if product.RegularPrice.IsZero() {
		return zero
	}
	return e.DiscountAmount(product).Div(product.RegularPrice).Mul(hundred).Round(2)
}

// quantityInStockUnits converts a requested quantity into the product's
// stock unit. When the requested unit cannot be converted the quantity is
// treated as already being in the stock unit and a warning is logged;
// an unusable unit must never block an order.
func (e *Engine) quantityInStockUnits(product *models.Product, quantity decimal.Decimal, unit string) decimal.Decimal {
	if unit == "" || strings.EqualFold(unit, product.StockUnit) {
		return quantity
	}
	factor, err := e.units.Factor(product.StockUnit, unit)
	if err != nil || factor.IsZero() {
		e.warnf("price calculation: cannot convert %s to %s for product %d, using quantity as-is: %v",
			unit, product.StockUnit, product.ID, err)
		return quantity
	}
	return quantity.Div(factor)
}

// PriceForQuantity prices a quantity of the product expressed in the given
// unit, converting into the stock unit first. Rounded to two decimals.
func (e *Engine) PriceForQuantity(product *models.Product, quantity decimal.Decimal, unit string) decimal.Decimal {
	qty := e.quantityInStockUnits(product, quantity, unit)
	return e.EffectivePrice(product).Mul(qty).Round(2)
}

// CartItem is one storefront line to be priced.
type CartItem struct {
	Product  *models.Product
	Quantity decimal.Decimal
	Unit     string
}

// CartSummary aggregates the computed totals for a set of cart lines.
// Discount is informational: it is already embedded in Subtotal, so
// Total equals Subtotal.
type CartSummary struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
}

// CartTotal prices every line and sums them. Each per-item figure is
// rounded to two decimals before summing so the totals match the per-line
// amounts a customer sees.
func (e *Engine) CartTotal(items []CartItem) CartSummary {
	var summary CartSummary
	for _, item := range items {
		if item.Product == nil {
			continue
		}
		qty := e.quantityInStockUnits(item.Product, item.Quantity, item.Unit)
		lineTotal := e.EffectivePrice(item.Product).Mul(qty).Round(2)
		lineDiscount := item.Product.RegularPrice.Sub(e.EffectivePrice(item.Product)).Mul(qty).Round(2)

		summary.Subtotal = summary.Subtotal.Add(lineTotal)
		summary.Discount = summary.Discount.Add(lineDiscount)
	}
	summary.Subtotal = summary.Subtotal.Round(2)
	summary.Discount = summary.Discount.Round(2)
	summary.Total = summary.Subtotal
	return summary
}

// Breakdown is a diagnostic pricing view for product detail screens.
type Breakdown struct {
	RegularPrice       decimal.Decimal `json:"regular_price"`
	EffectivePrice     decimal.Decimal `json:"effective_price"`
	HasDiscount        bool            `json:"has_discount"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	DiscountAmount     decimal.Decimal `json:"discount_amount"`
	RegularSubtotal    decimal.Decimal `json:"regular_subtotal"`
	Subtotal           decimal.Decimal `json:"subtotal"`
}

// PriceBreakdown combines the engine's figures for one line. The regular
// subtotal is back-calculated from the already-rounded effective price so
// the displayed numbers stay mutually consistent on screen.
func (e *Engine) PriceBreakdown(product *models.Product, quantity decimal.Decimal, unit string) Breakdown {
	effective := e.EffectivePrice(product)
	subtotal := e.PriceForQuantity(product, quantity, unit)

	var regularSubtotal decimal.Decimal
	if effective.IsZero() {
		qty := e.quantityInStockUnits(product, quantity, unit)
		regularSubtotal = product.RegularPrice.Mul(qty).Round(2)
	} else {
		regularSubtotal = product.RegularPrice.Mul(subtotal.Div(effective)).Round(2)
	}

	return Breakdown{
		RegularPrice:       product.RegularPrice.Round(2),
		EffectivePrice:     effective,
		HasDiscount:        ActiveDiscount(product) != nil,
		DiscountPercentage: e.DiscountPercentage(product),
		DiscountAmount:     e.DiscountAmount(product),
		RegularSubtotal:    regularSubtotal,
		Subtotal:           subtotal,
	}
}
