package util

import (
	"errors"
	"fmt"
)

// Error codes surfaced by store operations.
const (
	CodeInvalidField      = "INVALID_FIELD"
	CodeDuplicateKey      = "DUPLICATE_KEY"
	CodeNotFound          = "NOT_FOUND"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeInvalidQuantity   = "INVALID_QUANTITY"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code    string
	Message string
	Details map[string]any
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, Details: details}
}

// NewInvalidField reports a field value that failed its validity predicate.
func NewInvalidField(field, message string) error {
	return NewDomainError(CodeInvalidField, message, map[string]any{"field": field})
}

// NewDuplicateKey reports a uniqueness index collision on create.
func NewDuplicateKey(field, value string) error {
	return NewDomainError(CodeDuplicateKey,
		fmt.Sprintf("%s already exists: %s", field, value),
		map[string]any{"field": field, "value": value})
}

// NewNotFound reports a missing entity id.
func NewNotFound(resource string, id int64) error {
	return NewDomainError(CodeNotFound,
		fmt.Sprintf("%s not found with ID: %d", resource, id),
		map[string]any{"resource": resource, "id": id})
}

// NewInsufficientStock reports a removal exceeding on-hand quantity.
func NewInsufficientStock(available, requested int) error {
	return NewDomainError(CodeInsufficientStock,
		fmt.Sprintf("insufficient stock. Available: %d, Requested: %d", available, requested),
		map[string]any{"available": available, "requested": requested})
}

// NewInvalidQuantity reports a non-positive or otherwise unusable quantity.
func NewInvalidQuantity(message string, quantity int) error {
	return NewDomainError(CodeInvalidQuantity, message, map[string]any{"quantity": quantity})
}

// AsDomainError unwraps err into a DomainError when possible.
func AsDomainError(err error) (*DomainError, bool) {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr, true
	}
	return nil, false
}

// CodeOf returns the domain error code, or empty for foreign errors.
func CodeOf(err error) string {
	if de, ok := AsDomainError(err); ok {
		return de.Code
	}
	return ""
}

// HasCode reports whether err carries the given domain error code.
func HasCode(err error, code string) bool {
	return CodeOf(err) == code
}
