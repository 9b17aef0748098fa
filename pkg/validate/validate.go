// Package validate provides pure predicate functions used by the stores
// before any mutation is applied.
package validate

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_+&*-]+(?:\.[a-zA-Z0-9_+&*-]+)*@(?:[a-zA-Z0-9-]+\.)+[a-zA-Z]{2,7}$`)

var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{8,14}$`)

// NotEmpty reports whether value contains any non-whitespace character.
func NotEmpty(value string) bool {
	return strings.TrimSpace(value) != ""
}

// ValidEmail reports whether email has a valid address shape.
func ValidEmail(email string) bool {
	return NotEmpty(email) && emailPattern.MatchString(email)
}

// ValidPhoneNumber reports whether phoneNumber is a plausible E.164-style
// number.
func ValidPhoneNumber(phoneNumber string) bool {
	return NotEmpty(phoneNumber) && phonePattern.MatchString(phoneNumber)
}

// Positive reports whether d is strictly greater than zero.
func Positive(d decimal.Decimal) bool {
	return d.IsPositive()
}

// NonNegative reports whether d is zero or greater.
func NonNegative(d decimal.Decimal) bool {
	return !d.IsNegative()
}

// MinLength reports whether value is non-empty and at least min bytes long.
func MinLength(value string, min int) bool {
	return NotEmpty(value) && len(value) >= min
}

// MaxLength reports whether value is at most max bytes long.
func MaxLength(value string, max int) bool {
	return len(value) <= max
}

// LengthInRange reports whether value length falls within [min, max].
func LengthInRange(value string, min, max int) bool {
	return MinLength(value, min) && MaxLength(value, max)
}
