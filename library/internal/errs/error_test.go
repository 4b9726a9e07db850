package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCategories(t *testing.T) {
	tests := []struct {
		err      error
		category error
	}{
		{ErrBookNotFound, ErrNotFound},
		{ErrUserNotFound, ErrNotFound},
		{ErrBorrowNotFound, ErrNotFound},
		{ErrCategoryNotFound, ErrNotFound},
		{ErrRoleNotFound, ErrNotFound},
		{ErrReferenceMissing, ErrNotFound},
		{ErrStockExhausted, ErrInsufficientStock},
		{ErrAlreadyReturned, ErrAlreadyClosed},
		{ErrUserExists, ErrDuplicate},
		{ErrBookHasOpenBorrows, ErrConflict},
		{Validation("page %d", 3), ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			require.ErrorIs(t, tt.err, tt.category)
			require.ErrorIs(t, fmt.Errorf("wrapped: %w", tt.err), tt.category)
		})
	}
	require.False(t, errors.Is(ErrStockExhausted, ErrNotFound))
	require.Equal(t, "validation error: page 3", Validation("page %d", 3).Error())
}
