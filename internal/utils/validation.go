package utils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// KPI and business unit names are free text such as
	// "Uptime / System Availability" or "Customer & Service".
	validNamePattern = regexp.MustCompile(`^[\p{L}\p{N} _.,&/%()+'-]+$`)

	// Detect potentially dangerous characters - more focused on injection patterns
	dangerousPattern = regexp.MustCompile(`[<>]|--|\/\*|\*\/|;.*--|\.\.`)

	htmlTagPattern = regexp.MustCompile(`<[^>]*>`)
)

// ValidateName checks a business unit, KPI or subdivision name.
func ValidateName(field, name string) error {
	if name == "" {
		return fmt.Errorf("%s cannot be empty", field)
	}

	if len(name) > 100 {
		return fmt.Errorf("%s too long (max 100 characters)", field)
	}

	if !validNamePattern.MatchString(name) || dangerousPattern.MatchString(name) {
		return fmt.Errorf("%s contains invalid characters", field)
	}

	return nil
}

// ValidateQuery validates free-form query strings
func ValidateQuery(query string) error {
	if query == "" {
		return nil
	}

	if len(query) > 200 {
		return errors.New("query too long (max 200 characters)")
	}

	if dangerousPattern.MatchString(query) {
		return errors.New("query contains invalid characters")
	}

	return nil
}

// SanitizeInput removes HTML tags and surrounding whitespace.
func SanitizeInput(input string) string {
	sanitized := htmlTagPattern.ReplaceAllString(input, "")
	return strings.TrimSpace(sanitized)
}
