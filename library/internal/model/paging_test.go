package model_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Astemirdum/library-catalog/library/internal/model"
)

func TestNewPaging(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name             string
		page, size       int
		total            int
		wantPage         int
		wantPages        int
		wantOffset       int
		wantDefaultSized bool
	}{
		{name: "first of two", page: 1, size: 5, total: 8, wantPage: 1, wantPages: 2, wantOffset: 0},
		{name: "second of two", page: 2, size: 5, total: 8, wantPage: 2, wantPages: 2, wantOffset: 5},
		{name: "zero clamps up", page: 0, size: 5, total: 8, wantPage: 1, wantPages: 2, wantOffset: 0},
		{name: "negative clamps up", page: -4, size: 5, total: 8, wantPage: 1, wantPages: 2, wantOffset: 0},
		{name: "past the end clamps down", page: 99, size: 5, total: 8, wantPage: 2, wantPages: 2, wantOffset: 5},
		{name: "exact multiple", page: 2, size: 5, total: 10, wantPage: 2, wantPages: 2, wantOffset: 5},
		{name: "empty has one page", page: 3, size: 5, total: 0, wantPage: 1, wantPages: 1, wantOffset: 0},
		{name: "bad size falls back", page: 2, size: 0, total: 12, wantPage: 2, wantPages: 3, wantOffset: 5, wantDefaultSized: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := model.NewPaging(tt.page, tt.size, tt.total)
			require.Equal(t, tt.wantPage, p.Page)
			require.Equal(t, tt.wantPages, p.TotalPages)
			require.Equal(t, tt.wantOffset, p.Offset())
			require.Equal(t, tt.total, p.TotalElements)
			if tt.wantDefaultSized {
				require.Equal(t, model.DefaultPageSize, p.PageSize)
			}
		})
	}
}

func TestBorrow_Status(t *testing.T) {
	var b model.Borrow
	require.Equal(t, model.BorrowStatusOpen, b.Status())
	now := b.BorrowedAt
	b.ReturnedAt = &now
	require.Equal(t, model.BorrowStatusReturned, b.Status())
}
