package model

import (
	"time"
)

const (
	DefaultBorrowDays = 14
	MaxBorrowDays     = 3650
	DefaultPageSize   = 5
)

type Paging struct {
	Page          int `json:"page"`
	PageSize      int `json:"pageSize"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
}

type ListBooks struct {
	Paging `json:",inline"`
	Query  string     `json:"query,omitempty"`
	Items  []BookView `json:"items"`
}

type ListBorrows struct {
	Paging `json:",inline"`
	Items  []BorrowView `json:"items"`
}

type Book struct {
	ID         int64   `json:"id" db:"book_id"`
	Title      string  `json:"title" db:"title"`
	AuthorID   *int64  `json:"authorId,omitempty" db:"author_id"`
	CategoryID *int64  `json:"categoryId,omitempty" db:"category_id"`
	ISBN       *string `json:"isbn,omitempty" db:"isbn"`
	Stock      int     `json:"stock" db:"stock"`
}

// BookView is a book joined with its author and category names.
type BookView struct {
	ID           int64   `json:"id" db:"book_id"`
	Title        string  `json:"title" db:"title"`
	AuthorID     *int64  `json:"authorId,omitempty" db:"author_id"`
	AuthorName   *string `json:"author,omitempty" db:"author_name"`
	CategoryID   *int64  `json:"categoryId,omitempty" db:"category_id"`
	CategoryName *string `json:"category,omitempty" db:"category_name"`
	ISBN         *string `json:"isbn,omitempty" db:"isbn"`
	Stock        int     `json:"stock" db:"stock"`
}

type BookDetail struct {
	Book    BookView     `json:"book"`
	Reviews []ReviewView `json:"reviews"`
}

type BookRequest struct {
	Title      string `json:"title" validate:"required,max=255"`
	AuthorName string `json:"authorName" validate:"max=255"`
	CategoryID *int64 `json:"categoryId" validate:"omitempty,gt=0"`
	ISBN       string `json:"isbn" validate:"max=32"`
	Stock      int    `json:"stock" validate:"gte=0"`
}

type Author struct {
	ID   int64  `json:"id" db:"author_id"`
	Name string `json:"name" db:"name"`
}

type Category struct {
	ID   int64  `json:"id" db:"category_id"`
	Name string `json:"name" db:"name"`
}

type NameRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// BookOptions feeds the author and category dropdowns of a book form.
type BookOptions struct {
	Authors    []Author   `json:"authors"`
	Categories []Category `json:"categories"`
}

type Role struct {
	ID   int64  `json:"id" db:"role_id"`
	Name string `json:"name" db:"name"`
}

const RoleUser = "user"

type User struct {
	ID       int64  `json:"id" db:"user_id"`
	Username string `json:"username" db:"username"`
	Email    string `json:"email" db:"email"`
	RoleID   *int64 `json:"roleId,omitempty" db:"role_id"`
}

type UserView struct {
	ID       int64   `json:"id" db:"user_id"`
	Username string  `json:"username" db:"username"`
	Email    string  `json:"email" db:"email"`
	RoleName *string `json:"role,omitempty" db:"role_name"`
}

type CreateUserRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Email    string `json:"email" validate:"required,email,max=255"`
	RoleID   *int64 `json:"roleId" validate:"omitempty,gt=0"`
}

type BorrowStatus string

const (
	BorrowStatusOpen     BorrowStatus = "OPEN"
	BorrowStatusReturned BorrowStatus = "RETURNED"
)

type Borrow struct {
	ID         int64      `json:"id" db:"borrow_id"`
	UserID     int64      `json:"userId" db:"user_id"`
	BookID     int64      `json:"bookId" db:"book_id"`
	BorrowedAt time.Time  `json:"borrowedAt" db:"borrowed_at"`
	DueAt      time.Time  `json:"dueAt" db:"due_at"`
	ReturnedAt *time.Time `json:"returnedAt,omitempty" db:"returned_at"`
}

func (b Borrow) Status() BorrowStatus {
	if b.ReturnedAt != nil {
		return BorrowStatusReturned
	}
	return BorrowStatusOpen
}

type BorrowView struct {
	ID         int64      `json:"id" db:"borrow_id"`
	UserID     int64      `json:"userId" db:"user_id"`
	Username   string     `json:"username" db:"username"`
	BookID     int64      `json:"bookId" db:"book_id"`
	Title      string     `json:"title" db:"title"`
	BorrowedAt time.Time  `json:"borrowedAt" db:"borrowed_at"`
	DueAt      time.Time  `json:"dueAt" db:"due_at"`
	ReturnedAt *time.Time `json:"returnedAt,omitempty" db:"returned_at"`
}

// BorrowRequest asks to lend one copy of BookID to UserID for Days days.
// A non-positive Days means DefaultBorrowDays; more than MaxBorrowDays is rejected.
type BorrowRequest struct {
	UserID int64 `json:"userId" validate:"required,gt=0"`
	BookID int64 `json:"-"`
	Days   int   `json:"days" validate:"lte=3650"`
}

type Review struct {
	ID        int64     `json:"id" db:"review_id"`
	UserID    int64     `json:"userId" db:"user_id"`
	BookID    int64     `json:"bookId" db:"book_id"`
	Rating    int       `json:"rating" db:"rating"`
	Content   *string   `json:"content,omitempty" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type ReviewView struct {
	ID        int64     `json:"id" db:"review_id"`
	Username  string    `json:"username" db:"username"`
	Rating    int       `json:"rating" db:"rating"`
	Content   *string   `json:"content,omitempty" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type ReviewRequest struct {
	UserID  int64  `json:"userId" validate:"required,gt=0"`
	BookID  int64  `json:"-"`
	Rating  int    `json:"rating"`
	Content string `json:"content"`
}
