package validate_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/catalog-service/pkg/validate"
)

func TestNotEmpty(t *testing.T) {
	assert.True(t, validate.NotEmpty("x"))
	assert.True(t, validate.NotEmpty("  x  "))
	assert.False(t, validate.NotEmpty(""))
	assert.False(t, validate.NotEmpty("   "))
	assert.False(t, validate.NotEmpty("\t\n"))
}

func TestValidEmail(t *testing.T) {
	valid := []string{
		"alice@example.com",
		"first.last@example.co.uk",
		"user+tag@sub.example.org",
	}
	for _, email := range valid {
		assert.True(t, validate.ValidEmail(email), email)
	}

	invalid := []string{
		"",
		"plainaddress",
		"@example.com",
		"user@",
		"user@.com",
		"user@example",
		"user name@example.com",
	}
	for _, email := range invalid {
		assert.False(t, validate.ValidEmail(email), email)
	}
}

func TestValidPhoneNumber(t *testing.T) {
	valid := []string{"+12345678901", "491234567890", "+4915123456789"}
	for _, phone := range valid {
		assert.True(t, validate.ValidPhoneNumber(phone), phone)
	}

	invalid := []string{"", "0123456789", "+0123456789", "12345", "phone", "+1 234 567 8901"}
	for _, phone := range invalid {
		assert.False(t, validate.ValidPhoneNumber(phone), phone)
	}
}

func TestPositiveAndNonNegative(t *testing.T) {
	assert.True(t, validate.Positive(decimal.RequireFromString("0.01")))
	assert.False(t, validate.Positive(decimal.Zero))
	assert.False(t, validate.Positive(decimal.RequireFromString("-1")))

	assert.True(t, validate.NonNegative(decimal.Zero))
	assert.True(t, validate.NonNegative(decimal.RequireFromString("3.50")))
	assert.False(t, validate.NonNegative(decimal.RequireFromString("-0.01")))
}

func TestLengthInRange(t *testing.T) {
	assert.True(t, validate.LengthInRange("abc", 3, 50))
	assert.True(t, validate.LengthInRange("abcde", 3, 5))
	assert.False(t, validate.LengthInRange("ab", 3, 50))
	assert.False(t, validate.LengthInRange("abcdef", 3, 5))
	assert.False(t, validate.LengthInRange("", 0, 5), "blank strings never satisfy a length range")
	assert.False(t, validate.LengthInRange("   ", 1, 5))
}
