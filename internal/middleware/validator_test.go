package middleware

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateLocator(t *testing.T) {
	valid := []string{
		"facebook/react",
		"github.com/golang/go",
		"https://github.com/vercel/next.js",
		"git@github.com:rails/rails.git",
	}
	for _, l := range valid {
		assert.NoError(t, ValidateLocator(l), "locator %q", l)
	}

	invalid := []string{
		"",
		"   ",
		"owner/name; rm -rf /",
		"owner/name`id`",
		"owner/name|cat",
		"owner/name\nsecond",
		"owner name",
		strings.Repeat("a", 257),
	}
	for _, l := range invalid {
		assert.Error(t, ValidateLocator(l), "locator %q", l)
	}
}

func TestValidateTenantID(t *testing.T) {
	assert.NoError(t, ValidateTenantID("tenant-a"))
	assert.NoError(t, ValidateTenantID("team_42"))

	assert.Error(t, ValidateTenantID(""))
	assert.Error(t, ValidateTenantID("has space"))
	assert.Error(t, ValidateTenantID("dots.not.allowed"))
	assert.Error(t, ValidateTenantID(strings.Repeat("a", 65)))
}

func TestValidateProfileID(t *testing.T) {
	assert.NoError(t, ValidateProfileID("6ba7b810-9dad-11d1-80b4-00c04fd430c8"))

	assert.Error(t, ValidateProfileID(""))
	assert.Error(t, ValidateProfileID("not-a-uuid"))
	assert.Error(t, ValidateProfileID("6BA7B810-9DAD-11D1-80B4-00C04FD430C8"))
}

func TestValidateLimit(t *testing.T) {
	assert.Equal(t, 20, ValidateLimit(0))
	assert.Equal(t, 20, ValidateLimit(-5))
	assert.Equal(t, 50, ValidateLimit(50))
	assert.Equal(t, 100, ValidateLimit(9999))
}

func TestValidateDays(t *testing.T) {
	assert.Equal(t, 7, ValidateDays(0))
	assert.Equal(t, 30, ValidateDays(30))
	assert.Equal(t, 365, ValidateDays(400))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello", SanitizeString("  hello  "))
	assert.Equal(t, "ab", SanitizeString("a\x00b"))
	assert.Equal(t, "line1\nline2", SanitizeString("line1\nline2"))
	assert.Equal(t, "clean", SanitizeString("clean\x07"))
}
