package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// UnitConverter maps unit names within a measurement family to conversion
// factors. Families are static configuration; the converter holds no state.
type UnitConverter struct {
	families []map[string]decimal.Decimal
}

// NewUnitConverter returns a converter loaded with the standard grocery
// families: weight (anchored at grams), volume (millilitres) and count.
func NewUnitConverter() *UnitConverter {
	return &UnitConverter{
		families: []map[string]decimal.Decimal{
			{
				"mg": decimal.RequireFromString("0.001"),
				"g":  decimal.NewFromInt(1),
				"kg": decimal.NewFromInt(1000),
			},
			{
				"ml": decimal.NewFromInt(1),
				"l":  decimal.NewFromInt(1000),
			},
			{
				"pc":    decimal.NewFromInt(1),
				"dozen": decimal.NewFromInt(12),
			},
		},
	}
}

// Factor returns the multiplicative factor converting a quantity expressed
// in from into to. Lookup is case-insensitive. Both units must belong to
// the same family; otherwise ErrUnitConversion is returned.
func (uc *UnitConverter) Factor(from, to string) (decimal.Decimal, error) {
	fromKey := strings.ToLower(strings.TrimSpace(from))
	toKey := strings.ToLower(strings.TrimSpace(to))

	for _, family := range uc.families {
		fromVal, okFrom := family[fromKey]
		toVal, okTo := family[toKey]
		if okFrom && okTo {
			return fromVal.Div(toVal), nil
		}
	}
	return decimal.Zero, fmt.Errorf("%w: %q to %q", ErrUnitConversion, from, to)
}

// Knows reports whether the unit belongs to any known family.
func (uc *UnitConverter) Knows(unit string) bool {
	key := strings.ToLower(strings.TrimSpace(unit))
	for _, family := range uc.families {
		if _, ok := family[key]; ok {
			return true
		}
	}
	return false
}
