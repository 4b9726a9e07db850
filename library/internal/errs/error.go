package errs

import (
	"errors"
	"fmt"
)

// Categories. Every specific error below wraps exactly one of them.
var (
	ErrNotFound          = errors.New("not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrAlreadyClosed     = errors.New("already closed")
	ErrDuplicate         = errors.New("duplicate")
	ErrValidation        = errors.New("validation error")
	ErrConflict          = errors.New("conflict")
)

var (
	ErrBookNotFound     = wrap(ErrNotFound, "book not found")
	ErrUserNotFound     = wrap(ErrNotFound, "user not found")
	ErrBorrowNotFound   = wrap(ErrNotFound, "borrow not found")
	ErrCategoryNotFound = wrap(ErrNotFound, "category not found")
	ErrRoleNotFound     = wrap(ErrNotFound, "role not found")
	ErrReferenceMissing = wrap(ErrNotFound, "referenced user or book not found")

	ErrStockExhausted     = wrap(ErrInsufficientStock, "stock exhausted")
	ErrAlreadyReturned    = wrap(ErrAlreadyClosed, "already returned")
	ErrUserExists         = wrap(ErrDuplicate, "username or email already exists")
	ErrBookHasOpenBorrows = wrap(ErrConflict, "book has open borrows")
)

type categorized struct {
	category error
	msg      string
}

func wrap(category error, msg string) error {
	return &categorized{category: category, msg: msg}
}

func (e *categorized) Error() string { return e.msg }

func (e *categorized) Unwrap() error { return e.category }

// Validation reports malformed caller input.
func Validation(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
