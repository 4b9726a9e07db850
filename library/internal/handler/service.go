package handler

import (
	"context"

	"github.com/Astemirdum/library-catalog/library/internal/model"
	"github.com/Astemirdum/library-catalog/library/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type LibraryService interface {
	ListBooks(ctx context.Context, query string, page int) (model.ListBooks, error)
	GetBookDetail(ctx context.Context, id int64) (model.BookDetail, error)
	CreateBook(ctx context.Context, req model.BookRequest) (model.BookView, error)
	UpdateBook(ctx context.Context, id int64, req model.BookRequest) (model.BookView, error)
	DeleteBook(ctx context.Context, id int64) error
	BookOptions(ctx context.Context) (model.BookOptions, error)

	ListAuthors(ctx context.Context) ([]model.Author, error)
	CreateAuthor(ctx context.Context, name string) (model.Author, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, name string) (model.Category, error)

	ListUsers(ctx context.Context) ([]model.UserView, error)
	CreateUser(ctx context.Context, req model.CreateUserRequest) (model.User, error)
	ListRoles(ctx context.Context) ([]model.Role, error)

	Borrow(ctx context.Context, req model.BorrowRequest) (model.Borrow, error)
	Return(ctx context.Context, borrowID int64) (model.Borrow, error)
	ListBorrows(ctx context.Context, page int) (model.ListBorrows, error)

	AddReview(ctx context.Context, req model.ReviewRequest) (model.Review, error)
}

var _ LibraryService = (*service.Service)(nil)
