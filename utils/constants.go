package utils

// Application constants
const (
	// Application name
	AppName = "FreshMart"

	// API version
	APIVersion = "v1"

	// Default port
	DefaultPort = "8080"

	// JWT token expiration (24 hours)
	JWTExpiration = "24h"

	// Maximum file size for uploads (5MB)
	MaxFileSize = 5 * 1024 * 1024

	// Default pagination limit
	DefaultPaginationLimit = 10

	// Maximum pagination limit
	MaxPaginationLimit = 100

	// Minimum password length
	MinPasswordLength = 8

	// Maximum name length
	MaxNameLength = 100

	// Maximum items accepted in one bulk price-update batch
	MaxBulkUpdateItems = 200

	// Cache key prefixes
	ProductCachePrefix  = "products:"
	CategoryCachePrefix = "categories:"
)
