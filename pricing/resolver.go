package pricing

import (
	"time"

	"github.com/Rahul-624/FreshMart/models"
)

// ActiveDiscountAt returns the single discount on the product that is
// active at the given instant, or nil when none applies. A discount is
// active when its Active flag is set and its optional date window contains
// now (a missing bound leaves that side unbounded; bounds are inclusive).
// If more than one record qualifies, the most recently created one wins,
// with the higher ID breaking ties.
func ActiveDiscountAt(product *models.Product, now time.Time) *models.Discount {
	var picked *models.Discount
	for i := range product.Discounts {
		d := &product.Discounts[i]
		if !d.Active || d.DiscountType == models.DiscountTypeNone {
			continue
		}
		if d.StartDate != nil && now.Before(*d.StartDate) {
			continue
		}
		if d.EndDate != nil && now.After(*d.EndDate) {
			continue
		}
		if picked == nil ||
			d.CreatedAt.After(picked.CreatedAt) ||
			(d.CreatedAt.Equal(picked.CreatedAt) && d.ID > picked.ID) {
			picked = d
		}
	}
	return picked
}

// ActiveDiscount resolves the product's active discount at the current time.
func ActiveDiscount(product *models.Product) *models.Discount {
	return ActiveDiscountAt(product, time.Now())
}
