package middleware

import (
	"fmt"
	"regexp"
	"strings"
)

// Input validation and sanitization utilities

var (
	tenantRe    = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)
	profileIDRe = regexp.MustCompile(`^[a-f0-9]{8}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{4}-[a-f0-9]{12}$`)
)

// ValidateLocator performs a shape check before the domain parses it for real:
// non-empty, no whitespace, no shell metacharacters.
func ValidateLocator(locator string) error {
	if strings.TrimSpace(locator) == "" {
		return fmt.Errorf("locator cannot be empty")
	}
	if len(locator) > 256 {
		return fmt.Errorf("locator too long (max 256 chars)")
	}
	dangerous := []string{"$(", "`", "&", "|", ";", "\n", "\r", " ", "\t"}
	for _, d := range dangerous {
		if strings.Contains(locator, d) {
			return fmt.Errorf("invalid characters in locator")
		}
	}
	return nil
}

// ValidateTenantID validates tenant ID format
func ValidateTenantID(tenant string) error {
	if tenant == "" {
		return fmt.Errorf("tenant ID cannot be empty")
	}
	if !tenantRe.MatchString(tenant) {
		return fmt.Errorf("invalid tenant ID format (alphanumeric, dash, underscore only, max 64 chars)")
	}
	return nil
}

// ValidateProfileID validates profile ID format (UUID)
func ValidateProfileID(id string) error {
	if id == "" {
		return fmt.Errorf("profile ID cannot be empty")
	}
	if !profileIDRe.MatchString(id) {
		return fmt.Errorf("invalid profile ID format")
	}
	return nil
}

// ValidateLimit validates pagination limit
func ValidateLimit(limit int) int {
	if limit <= 0 {
		return 20 // default
	}
	if limit > 100 {
		return 100 // max limit
	}
	return limit
}

// ValidateDays validates days parameter
func ValidateDays(days int) int {
	if days <= 0 {
		return 7 // default
	}
	if days > 365 {
		return 365 // max 1 year
	}
	return days
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")

	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}
	return strings.TrimSpace(result.String())
}
