package store

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Every failure the POS can surface to a caller. All of these are
// recoverable: handlers translate them to 4xx responses and the
// process keeps running.
var (
	ErrItemNotFound        = errors.New("item not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrSaleNotFound        = errors.New("sale not found")
	ErrDuplicateItemID     = errors.New("item id already exists")
	ErrDuplicateUsername   = errors.New("username already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrOutOfStock          = errors.New("item out of stock")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrEmptyCart           = errors.New("cart is empty")
	ErrInsufficientPayment = errors.New("insufficient payment amount")
	ErrLastUserDeletion    = errors.New("cannot delete the last remaining user")
)

// ValidationError carries one message per offending field, mirroring
// the per-field errors the inventory and user forms show.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

func (e *ValidationError) Add(field, msg string) {
	e.Fields[field] = msg
}

func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
