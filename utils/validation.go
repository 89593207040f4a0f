package utils

import (
	"fmt"
	"html"
	"regexp"
	"strings"
)

// FieldValidationError represents a validation error for a specific field
type FieldValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldValidationErrors represents multiple field validation errors
type FieldValidationErrors []FieldValidationError

// Error implements the error interface
func (e FieldValidationErrors) Error() string {
	var messages []string
	for _, err := range e {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)
	nameRegex  = regexp.MustCompile(`^[a-zA-Z0-9\s\-&'.,()]+$`)
)

// SanitizeString removes potentially dangerous characters and HTML tags
func SanitizeString(input string) string {
	sanitized := html.EscapeString(input)

	htmlTagRegex := regexp.MustCompile(`<[^>]*>`)
	sanitized = htmlTagRegex.ReplaceAllString(sanitized, "")

	return strings.TrimSpace(sanitized)
}

// ValidateEmail checks if the email is well formed
func ValidateEmail(email string) (bool, string) {
	if email == "" {
		return false, "Email is required"
	}
	if !emailRegex.MatchString(email) {
		return false, "Invalid email format"
	}
	return true, ""
}

// ValidatePhone checks if the phone number is a usable WhatsApp target
// (E.164, with or without the leading plus)
func ValidatePhone(phone string) (bool, string) {
	if phone == "" {
		return false, "Phone number is required"
	}
	if !phoneRegex.MatchString(phone) {
		return false, "Invalid phone number format"
	}
	return true, ""
}

// ValidateName checks product/category/customer display names
func ValidateName(name string) (bool, string) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return false, "Name is required"
	}
	if len(trimmed) > MaxNameLength {
		return false, fmt.Sprintf("Name must not exceed %d characters", MaxNameLength)
	}
	if !nameRegex.MatchString(trimmed) {
		return false, "Name contains invalid characters"
	}
	return true, ""
}

// ValidatePassword checks admin password strength
func ValidatePassword(password string) (bool, string) {
	if len(password) < MinPasswordLength {
		return false, fmt.Sprintf("Password must be at least %d characters", MinPasswordLength)
	}
	var hasLower, hasUpper, hasNumber bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= '0' && r <= '9':
			hasNumber = true
		}
	}
	if !hasLower || !hasUpper || !hasNumber {
		return false, "Password must contain lowercase, uppercase and numeric characters"
	}
	return true, ""
}
