package pricing

import "errors"

// Sentinel errors surfaced as per-item entries by the bulk updater.
// The messages are user-visible in API responses, matching the
// response wording used across the controllers.
var (
	// ErrProductNotFound is returned by ProductStore implementations when
	// the locked fetch finds no row for the requested ID.
	ErrProductNotFound = errors.New("Product not found")

	// ErrMissingProductID marks a batch item submitted without a product ID.
	ErrMissingProductID = errors.New("Product ID is required")

	// ErrNegativePrice marks a batch item asking for a negative regular price.
	ErrNegativePrice = errors.New("Regular price must not be negative")

	// ErrNegativeStock marks a batch item asking for a negative stock quantity.
	ErrNegativeStock = errors.New("Stock quantity must not be negative")

	// ErrUnitConversion is returned when a unit is unknown or the two units
	// belong to different measurement families. Callers are expected to
	// degrade to same-unit arithmetic rather than fail hard.
	ErrUnitConversion = errors.New("unit conversion not supported")
)
